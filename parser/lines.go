package parser

import (
	"regexp"
	"strings"
)

// Keywords recognized inside a definition section.
const (
	keywordVersion      = "VERSION"
	keywordStruct       = "STRUCT"
	keywordEndStruct    = "END_STRUCT"
	keywordInlineStruct = "Struct"
)

// line is a trimmed, non-empty source line with its 1-based line number.
type line struct {
	text string
	no   int
}

// attributeRe matches attribute blocks such as { S7_SetPoint := 'True' }.
var attributeRe = regexp.MustCompile(`\{[^}]*\}`)

// splitLines trims raw and drops empty lines. first is the source line of raw's first line.
func splitLines(raw string, first int) []line {
	var out []line
	for i, l := range strings.Split(raw, "\n") {
		t := strings.TrimSpace(l)
		if t == "" {
			continue
		}
		out = append(out, line{text: t, no: first + i})
	}
	return out
}

// cleanDecl removes attribute blocks and a trailing // comment.
func cleanDecl(s string) string {
	if strings.Contains(s, "{") {
		s = attributeRe.ReplaceAllString(s, "")
	}
	if i := strings.Index(s, "//"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// unquote strips one pair of enclosing double quotes.
func unquote(s string) string {
	if len(s) > 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// typeSpec normalizes the right-hand side of a declaration.
func typeSpec(s string) string {
	s = strings.ReplaceAll(s, ";", "")
	s = strings.ReplaceAll(s, `"`, "")
	return strings.TrimSpace(s)
}

func isStructEnd(text string) bool {
	return strings.HasPrefix(text, keywordEndStruct)
}

// inlineStructName reports whether text opens an inline struct and returns its field name.
func inlineStructName(text string) (string, bool) {
	name, rest, ok := strings.Cut(cleanDecl(text), ":")
	if !ok {
		return "", false
	}
	if typeSpec(rest) != keywordInlineStruct {
		return "", false
	}
	return strings.ReplaceAll(strings.TrimSpace(name), `"`, ""), true
}
