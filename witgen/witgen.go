package witgen

import (
	"fmt"
	"io"
	"strings"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/s7layout/errors"
	"github.com/wippyai/s7layout/types"
	"github.com/wippyai/s7layout/witgen/internal/abi"
)

// DefaultPackage is used when Render is given an empty package name.
const DefaultPackage = "s7:layout"

// Interface is the name of the interface holding the generated records.
const Interface = "data-blocks"

type record struct {
	def    *wit.TypeDef
	source string
	bits   int
	// plc holds the bit offset of each field within the S7 struct.
	plc []int
}

// Generator accumulates WIT records for data blocks. Referenced UDTs are
// emitted once no matter how many blocks use them.
type Generator struct {
	calc    *abi.Calculator
	names   *namer
	udts    map[*types.UserDefined]*wit.TypeDef
	records []record
}

// New creates an empty Generator.
func New() *Generator {
	return &Generator{
		calc:  abi.NewCalculator(),
		names: newNamer(),
		udts:  make(map[*types.UserDefined]*wit.TypeDef),
	}
}

// DataBlock adds db and every struct it references.
func (g *Generator) DataBlock(db *types.DataBlock) (*wit.TypeDef, error) {
	return g.record(db.Name, db.Fields, db.Size)
}

// Records returns the generated records with dependencies before their users.
func (g *Generator) Records() []*wit.TypeDef {
	out := make([]*wit.TypeDef, len(g.records))
	for i, r := range g.records {
		out[i] = r.def
	}
	return out
}

// ABI returns the canonical ABI size and alignment of a generated type, in bytes.
func (g *Generator) ABI(t wit.Type) (size, align uint32) {
	l := g.calc.Of(t)
	return l.Size, l.Align
}

func (g *Generator) record(name string, fields []*types.Field, bits int) (*wit.TypeDef, error) {
	if len(fields) == 0 {
		return nil, errors.New(errors.PhaseExport, errors.KindEmptyRecord).
			Section(name).
			Detail("WIT records need at least one field").
			Build()
	}

	id := g.names.unique(Ident(name))
	rec := &wit.Record{}
	def := &wit.TypeDef{Name: &id, Kind: rec}

	fieldNames := newNamer()
	plc := make([]int, 0, len(fields))
	for _, f := range fields {
		t, err := g.typeOf(id, f.Name, f.Type)
		if err != nil {
			return nil, err
		}
		rec.Fields = append(rec.Fields, wit.Field{
			Name: fieldNames.unique(Ident(f.Name)),
			Type: t,
		})
		plc = append(plc, f.Offset)
	}

	g.records = append(g.records, record{def: def, source: name, bits: bits, plc: plc})
	return def, nil
}

func (g *Generator) typeOf(owner, field string, t types.Type) (wit.Type, error) {
	switch v := t.(type) {
	case *types.Primitive:
		if p, ok := primitive(v); ok {
			return p, nil
		}
	case *types.String:
		return wit.String{}, nil
	case *types.Array:
		elem, err := g.typeOf(owner, field, v.Elem)
		if err != nil {
			return nil, err
		}
		return &wit.TypeDef{Kind: &wit.List{Type: elem}}, nil
	case *types.UserDefined:
		if v.Anonymous {
			name := strings.TrimPrefix(owner, "%") + "-" + strings.TrimPrefix(Ident(field), "%")
			return g.record(name, v.Fields, v.Size())
		}
		if def, ok := g.udts[v]; ok {
			return def, nil
		}
		def, err := g.record(v.Name(), v.Fields, v.Size())
		if err != nil {
			return nil, err
		}
		g.udts[v] = def
		return def, nil
	}
	return nil, errors.New(errors.PhaseExport, errors.KindUnrecognizedType).
		Path(owner, field).
		TypeSpec(t.Name()).
		Detail("no WIT equivalent").
		Build()
}

func primitive(p *types.Primitive) (wit.Type, bool) {
	switch p.Name() {
	case "Bool":
		return wit.Bool{}, true
	case "Byte", "USInt", "Char":
		return wit.U8{}, true
	case "SInt":
		return wit.S8{}, true
	case "Int":
		return wit.S16{}, true
	case "Word":
		return wit.U16{}, true
	case "DInt", "Time":
		return wit.S32{}, true
	case "UDInt", "DWord":
		return wit.U32{}, true
	case "Real":
		return wit.F32{}, true
	}
	return nil, false
}

// Render writes the accumulated records as a WIT package.
func (g *Generator) Render(w io.Writer, pkg string) error {
	if pkg == "" {
		pkg = DefaultPackage
	}

	var b strings.Builder
	fmt.Fprintf(&b, "package %s;\n\ninterface %s {\n", pkg, Interface)
	for i, r := range g.records {
		if i > 0 {
			b.WriteByte('\n')
		}
		l := g.calc.Of(r.def)
		fmt.Fprintf(&b, "  // %s: %d PLC bytes, canonical ABI size %d align %d\n",
			r.source, (r.bits+7)/8, l.Size, l.Align)
		fmt.Fprintf(&b, "  record %s {\n", *r.def.Name)
		for i, f := range r.def.Kind.(*wit.Record).Fields {
			fmt.Fprintf(&b, "    %s: %s, // PLC %d.%d, ABI %d\n",
				f.Name, TypeString(f.Type), r.plc[i]/8, r.plc[i]%8, l.Offsets[i])
		}
		b.WriteString("  }\n")
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// Render converts dbs and writes them as a single WIT package.
func Render(w io.Writer, pkg string, dbs []*types.DataBlock) error {
	g := New()
	for _, db := range dbs {
		if _, err := g.DataBlock(db); err != nil {
			return err
		}
	}
	return g.Render(w, pkg)
}

// TypeString formats a type reference as it appears in WIT source.
func TypeString(t wit.Type) string {
	switch v := t.(type) {
	case wit.Bool:
		return "bool"
	case wit.U8:
		return "u8"
	case wit.S8:
		return "s8"
	case wit.U16:
		return "u16"
	case wit.S16:
		return "s16"
	case wit.U32:
		return "u32"
	case wit.S32:
		return "s32"
	case wit.F32:
		return "f32"
	case wit.String:
		return "string"
	case *wit.TypeDef:
		if v.Name != nil {
			return *v.Name
		}
		if l, ok := v.Kind.(*wit.List); ok {
			return "list<" + TypeString(l.Type) + ">"
		}
		return "typedef"
	default:
		return fmt.Sprintf("%T", t)
	}
}
