package parser

import (
	stderrors "errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/s7layout/errors"
	"github.com/wippyai/s7layout/registry"
	"github.com/wippyai/s7layout/section"
	"github.com/wippyai/s7layout/types"
)

// header holds the parts of a section shared by UDTs and data blocks.
type header struct {
	name    string
	version string
	fields  []*types.Field
}

// ParseUserType parses a TYPE section into a named UDT. The result is not registered.
func ParseUserType(sec section.Section, reg *registry.Registry) (*types.UserDefined, errors.Diagnostics, error) {
	h, diags, err := parseDefinition(sec, section.KindUserDefinedType, reg)
	if err != nil {
		return nil, diags, err
	}
	udt := types.NewUserDefined(h.name, h.version, h.fields)
	Logger().Debug("parsed user type",
		zap.String("name", udt.Name()),
		zap.String("version", udt.Version),
		zap.Int("fields", len(udt.Fields)),
		zap.Int("size", udt.Size()))
	return udt, diags, nil
}

// ParseDataBlock parses a DATA_BLOCK section into a resolved data block.
func ParseDataBlock(sec section.Section, reg *registry.Registry) (*types.DataBlock, errors.Diagnostics, error) {
	h, diags, err := parseDefinition(sec, section.KindDataBlock, reg)
	if err != nil {
		return nil, diags, err
	}
	db := types.NewDataBlock(h.name, h.version, h.fields)
	Logger().Debug("parsed data block",
		zap.String("name", db.Name),
		zap.String("version", db.Version),
		zap.Int("fields", len(db.Fields)),
		zap.Int("size", db.Size))
	return db, diags, nil
}

func parseDefinition(sec section.Section, kind section.Kind, reg *registry.Registry) (*header, errors.Diagnostics, error) {
	var diags errors.Diagnostics
	if sec.Kind != kind {
		return nil, diags, malformed("", sec.StartLine, "expected a %s section, got %s", kind, sec.Kind)
	}
	startKw, endKw := sec.Kind.Keywords()
	first := sec.StartLine
	if first == 0 {
		first = 1
	}
	lines := splitLines(sec.Raw, first)

	start, end, version, structStart, structEnd := -1, -1, -1, -1, -1
	for i, ln := range lines {
		switch {
		case strings.HasPrefix(ln.text, startKw):
			if start < 0 {
				start = i
			}
		case strings.HasPrefix(ln.text, endKw):
			if end < 0 {
				end = i
			}
		case strings.HasPrefix(ln.text, keywordVersion):
			if version < 0 {
				version = i
			}
		case strings.HasPrefix(ln.text, keywordStruct):
			if structStart < 0 {
				structStart = i
			}
		case isStructEnd(ln.text):
			// Inline structs close with the same marker; the last one closes the body.
			structEnd = i
		}
	}

	name := ""
	if start >= 0 {
		name = definitionName(startKw, lines[start].text)
	}

	if start < 0 || end <= start {
		return nil, diags, malformed(name, sec.StartLine, "missing or misplaced %s / %s", startKw, endKw)
	}
	if structStart < 0 || structEnd <= structStart {
		return nil, diags, malformed(name, lines[start].no, "missing or misplaced STRUCT / END_STRUCT")
	}

	h := &header{name: name}
	if version >= 0 {
		h.version = versionOf(lines[version].text)
	} else {
		diags.Add(errors.PhaseParse, errors.KindMissingVersion, lines[start].no,
			"%s %q has no VERSION line", startKw, name)
	}

	fields, err := layoutLines(name, lines[structStart+1:structEnd], reg)
	if err != nil {
		var e *errors.Error
		if stderrors.As(err, &e) && e.Section == "" {
			e.Section = name
		}
		return nil, diags, err
	}
	h.fields = fields
	return h, diags, nil
}

// definitionName returns the text after the keyword without enclosing quotes.
func definitionName(keyword, text string) string {
	return unquote(strings.TrimSpace(strings.TrimPrefix(text, keyword)))
}

// versionOf returns the text after the first ':' or "".
func versionOf(text string) string {
	_, v, ok := strings.Cut(text, ":")
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}

func malformed(name string, lineNo int, format string, args ...any) error {
	err := errors.MalformedSection(name, fmt.Sprintf(format, args...))
	err.Line = lineNo
	return err
}
