package section

import (
	"strings"

	"github.com/wippyai/s7layout/errors"
)

// Section keywords.
const (
	KeywordType         = "TYPE"
	KeywordEndType      = "END_TYPE"
	KeywordDataBlock    = "DATA_BLOCK"
	KeywordEndDataBlock = "END_DATA_BLOCK"
)

// Kind classifies a section.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindUserDefinedType
	KindDataBlock
)

func (k Kind) String() string {
	switch k {
	case KindUserDefinedType:
		return "type"
	case KindDataBlock:
		return "data_block"
	default:
		return "unknown"
	}
}

// Keywords returns the start and end keyword for k.
func (k Kind) Keywords() (start, end string) {
	switch k {
	case KindUserDefinedType:
		return KeywordType, KeywordEndType
	case KindDataBlock:
		return KeywordDataBlock, KeywordEndDataBlock
	default:
		return "", ""
	}
}

// Section is the raw text of one definition. Raw includes the start and end
// keyword lines. StartLine is the 1-based source line of the start keyword.
type Section struct {
	Raw       string
	Kind      Kind
	StartLine int
}

type state uint8

const (
	stateOutside state = iota
	stateInType
	stateInDataBlock
)

// SplitText splits src into lines and calls Split.
func SplitText(src string) ([]Section, errors.Diagnostics) {
	return Split(strings.Split(src, "\n"))
}

// Split groups lines into closed sections in input order.
func Split(lines []string) ([]Section, errors.Diagnostics) {
	var (
		sections []Section
		diags    errors.Diagnostics
		raw      strings.Builder
		cur      Section
		st       = stateOutside
	)

	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		lineNo := i + 1

		var next state
		switch {
		case strings.HasPrefix(trimmed, KeywordType):
			next = stateInType
		case strings.HasPrefix(trimmed, KeywordDataBlock):
			next = stateInDataBlock
		}

		if next != stateOutside {
			if st != stateOutside {
				diags.Add(errors.PhaseSplit, errors.KindStrayMarker, lineNo,
					"%q while section opened at line %d is still open", trimmed, cur.StartLine)
			} else {
				cur = Section{StartLine: lineNo}
				raw.Reset()
			}
			st = next
			cur.Kind = kindOf(st)
		}

		if st != stateOutside {
			raw.WriteString(line)
			raw.WriteByte('\n')
		}

		if strings.HasPrefix(trimmed, KeywordEndType) || strings.HasPrefix(trimmed, KeywordEndDataBlock) {
			if st == stateOutside {
				diags.Add(errors.PhaseSplit, errors.KindStrayMarker, lineNo,
					"%q outside of any section", trimmed)
				continue
			}
			cur.Raw = raw.String()
			sections = append(sections, cur)
			st = stateOutside
		}
	}

	if st != stateOutside {
		diags.Add(errors.PhaseSplit, errors.KindUnterminatedSection, cur.StartLine,
			"%s section is never closed and was dropped", cur.Kind)
	}

	return sections, diags
}

func kindOf(st state) Kind {
	switch st {
	case stateInType:
		return KindUserDefinedType
	case stateInDataBlock:
		return KindDataBlock
	default:
		return KindUnknown
	}
}
