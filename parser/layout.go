package parser

import (
	stderrors "errors"
	"strings"

	"github.com/wippyai/s7layout/errors"
	"github.com/wippyai/s7layout/registry"
	"github.com/wippyai/s7layout/types"
)

// engine lays out a struct body. pos is the cursor into lines; every call of
// fields consumes the lines of exactly one struct frame.
type engine struct {
	reg   *registry.Registry
	lines []line
	pos   int
}

// LayoutStruct lays out the declarations of a struct body, excluding its own
// STRUCT and END_STRUCT lines. name prefixes field paths in errors.
func LayoutStruct(name string, body []string, reg *registry.Registry) ([]*types.Field, error) {
	var lines []line
	for i, b := range body {
		if t := strings.TrimSpace(b); t != "" {
			lines = append(lines, line{text: t, no: i + 1})
		}
	}
	return layoutLines(name, lines, reg)
}

func layoutLines(name string, lines []line, reg *registry.Registry) ([]*types.Field, error) {
	e := &engine{reg: reg, lines: lines}
	var path []string
	if name != "" {
		path = []string{name}
	}
	return e.fields(path, 0)
}

// fields consumes declarations until the END_STRUCT closing the current frame
// (depth > 0) or the end of input (depth 0).
func (e *engine) fields(path []string, depth int) ([]*types.Field, error) {
	var out []*types.Field
	offset := 0

	for e.pos < len(e.lines) {
		ln := e.lines[e.pos]
		e.pos++

		if isStructEnd(ln.text) {
			if depth == 0 {
				return nil, annotate(errors.UnterminatedInlineStruct(path,
					"END_STRUCT without a matching Struct"), path, ln.no)
			}
			return out, nil
		}

		if name, ok := inlineStructName(ln.text); ok {
			inner, err := e.fields(childPath(path, name), depth+1)
			if err != nil {
				return nil, err
			}
			st := types.NewInlineStruct(name, inner)
			f := types.NewField(name, types.AlignOffset(offset, st.Alignment()), st)
			offset = f.End()
			out = append(out, f)
			continue
		}

		f, err := e.field(path, ln, offset)
		if err != nil {
			return nil, err
		}
		offset = f.End()
		out = append(out, f)
	}

	if depth > 0 {
		return nil, errors.UnterminatedInlineStruct(path, "Struct is never closed by END_STRUCT")
	}
	return out, nil
}

// field parses one ordinary declaration placed after offset.
func (e *engine) field(path []string, ln line, offset int) (*types.Field, error) {
	decl := cleanDecl(ln.text)
	parts := strings.Split(decl, ":")
	if len(parts) < 2 {
		return nil, annotate(errors.MalformedFieldLine(path, ln.text), path, ln.no)
	}

	name := strings.ReplaceAll(strings.TrimSpace(parts[0]), `"`, "")
	if name == "" {
		return nil, annotate(errors.MalformedFieldLine(path, ln.text), path, ln.no)
	}
	fieldPath := childPath(path, name)

	t, err := ResolveType(typeSpec(parts[1]), e.reg)
	if err != nil {
		return nil, annotate(err, fieldPath, ln.no)
	}

	return types.NewField(name, types.AlignOffset(offset, t.Alignment()), t), nil
}

// annotate fills in the path and line of a structured error when unset.
func annotate(err error, path []string, lineNo int) error {
	var e *errors.Error
	if !stderrors.As(err, &e) {
		return err
	}
	if len(e.Path) == 0 {
		e.Path = path
	}
	if e.Line == 0 {
		e.Line = lineNo
	}
	return err
}

func childPath(path []string, name string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, name)
}
