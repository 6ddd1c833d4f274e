package witgen

import (
	"strconv"
	"strings"
	"unicode"
)

var keywords = map[string]bool{
	"as": true, "async": true, "bool": true, "borrow": true, "char": true,
	"constructor": true, "enum": true, "export": true, "f32": true, "f64": true,
	"flags": true, "from": true, "func": true, "future": true, "import": true,
	"include": true, "interface": true, "list": true, "option": true, "own": true,
	"package": true, "record": true, "resource": true, "result": true,
	"s8": true, "s16": true, "s32": true, "s64": true, "static": true,
	"stream": true, "string": true, "tuple": true, "type": true,
	"u8": true, "u16": true, "u32": true, "u64": true, "use": true,
	"variant": true, "with": true, "world": true,
}

// Ident converts an S7 identifier to a WIT identifier.
func Ident(name string) string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)):
			flush()
		case unicode.IsUpper(r):
			if i > 0 && len(cur) > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					flush()
				}
			}
			cur = append(cur, unicode.ToLower(r))
		default:
			cur = append(cur, r)
		}
	}
	flush()

	if len(words) == 0 {
		return "field"
	}

	// WIT words start with a letter.
	joined := words[:0]
	for _, w := range words {
		if w[0] >= '0' && w[0] <= '9' {
			if len(joined) > 0 {
				joined[len(joined)-1] += w
				continue
			}
			w = "x" + w
		}
		joined = append(joined, w)
	}

	id := strings.Join(joined, "-")
	if keywords[id] {
		return "%" + id
	}
	return id
}

// namer hands out identifiers unique within one scope.
type namer struct {
	used map[string]int
}

func newNamer() *namer {
	return &namer{used: make(map[string]int)}
}

func (n *namer) unique(id string) string {
	bare := strings.TrimPrefix(id, "%")
	n.used[bare]++
	if c := n.used[bare]; c > 1 {
		return bare + "-v" + strconv.Itoa(c)
	}
	return id
}
