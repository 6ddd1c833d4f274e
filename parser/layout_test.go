package parser

import (
	"testing"

	"github.com/wippyai/s7layout/errors"
	"github.com/wippyai/s7layout/registry"
	"github.com/wippyai/s7layout/types"
)

type wantField struct {
	name   string
	offset int
	size   int
}

func checkFields(t *testing.T, got []*types.Field, want []wantField) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("fields: got %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		f := got[i]
		if f.Name != w.name {
			t.Errorf("field %d name: got %s, want %s", i, f.Name, w.name)
		}
		if f.Offset != w.offset {
			t.Errorf("field %s offset: got %d, want %d", w.name, f.Offset, w.offset)
		}
		if f.Type.Size() != w.size {
			t.Errorf("field %s size: got %d, want %d", w.name, f.Type.Size(), w.size)
		}
	}
}

func TestLayoutSequential(t *testing.T) {
	fields, err := LayoutStruct("S", []string{
		"A : Bool;",
		"B : Int;",
		"C : DInt;",
	}, registry.NewDefault())
	if err != nil {
		t.Fatal(err)
	}
	checkFields(t, fields, []wantField{
		{"A", 0, 1},
		{"B", 16, 16},
		{"C", 32, 32},
	})
	if size := fields[len(fields)-1].End(); size != 64 {
		t.Errorf("size: got %d, want 64", size)
	}
}

func TestLayoutAlignment(t *testing.T) {
	fields, err := LayoutStruct("S", []string{
		"A : Bool;",
		"B : Bool;",
		"C : Byte;",
		"D : Bool;",
		"E : Real;",
		"F : Char;",
		"G : Char;",
		"H : Word;",
	}, registry.NewDefault())
	if err != nil {
		t.Fatal(err)
	}
	checkFields(t, fields, []wantField{
		{"A", 0, 1},
		{"B", 1, 1},
		{"C", 8, 8},
		{"D", 16, 1},
		{"E", 32, 32},
		{"F", 64, 8},
		{"G", 72, 8},
		{"H", 80, 16},
	})
}

func TestLayoutEmpty(t *testing.T) {
	fields, err := LayoutStruct("S", nil, registry.NewDefault())
	if err != nil {
		t.Fatal(err)
	}
	if len(fields) != 0 {
		t.Errorf("fields: got %d, want 0", len(fields))
	}
}

func TestLayoutDeclarationNoise(t *testing.T) {
	fields, err := LayoutStruct("S", []string{
		`"Quoted" : Int;   // a comment : with colon`,
		`Sp { S7_SetPoint := 'True'} : Bool;`,
		`Attr { ExternalAccessible := 'False'; ExternalWritable := 'False'} : DInt := 5;`,
		`Udt : "T1";`,
		"",
		"   ",
	}, func() *registry.Registry {
		r := registry.NewDefault()
		r.Register("T1", types.NewUserDefined("T1", "", []*types.Field{types.NewField("X", 0, types.Int)}))
		return r
	}())
	if err != nil {
		t.Fatal(err)
	}
	checkFields(t, fields, []wantField{
		{"Quoted", 0, 16},
		{"Sp", 16, 1},
		{"Attr", 32, 32},
		{"Udt", 64, 16},
	})
}

func TestLayoutArray(t *testing.T) {
	fields, err := LayoutStruct("S", []string{
		"Flag : Bool;",
		"Values : Array[0..3] of Int;",
	}, registry.NewDefault())
	if err != nil {
		t.Fatal(err)
	}
	checkFields(t, fields, []wantField{
		{"Flag", 0, 1},
		{"Values", 16, 64},
	})

	arr, ok := fields[1].Type.(*types.Array)
	if !ok {
		t.Fatalf("type: got %T, want *types.Array", fields[1].Type)
	}
	if arr.Alignment() != 16 {
		t.Errorf("align: got %d, want 16", arr.Alignment())
	}
	checkFields(t, arr.Fields, []wantField{
		{"[0]", 0, 16},
		{"[1]", 16, 16},
		{"[2]", 32, 16},
		{"[3]", 48, 16},
	})
}

func TestLayoutString(t *testing.T) {
	fields, err := LayoutStruct("S", []string{
		"A : Bool;",
		"Short : String[20];",
		"Long : String;",
		"Wide : WString[4];",
	}, registry.NewDefault())
	if err != nil {
		t.Fatal(err)
	}
	checkFields(t, fields, []wantField{
		{"A", 0, 1},
		{"Short", 16, 176},
		{"Long", 192, 2048},
		{"Wide", 2240, 96},
	})
}

func TestLayoutInlineStruct(t *testing.T) {
	fields, err := LayoutStruct("S", []string{
		"A : Bool;",
		"Inner : Struct",
		"X : Bool;",
		"END_STRUCT;",
		"B : Bool;",
	}, registry.NewDefault())
	if err != nil {
		t.Fatal(err)
	}
	checkFields(t, fields, []wantField{
		{"A", 0, 1},
		{"Inner", 16, 1},
		{"B", 17, 1},
	})

	inner, ok := fields[1].Type.(*types.UserDefined)
	if !ok {
		t.Fatalf("type: got %T, want *types.UserDefined", fields[1].Type)
	}
	if !inner.Anonymous || inner.Name() != "Inner" {
		t.Errorf("inner: anonymous=%v name=%s", inner.Anonymous, inner.Name())
	}
	checkFields(t, inner.Fields, []wantField{{"X", 0, 1}})
}

func TestLayoutNestedInlineStructs(t *testing.T) {
	fields, err := LayoutStruct("S", []string{
		`"Outer" : Struct   // level one`,
		"A : Int;",
		"Middle : Struct",
		"Deep : Struct",
		"X : Bool;",
		"END_STRUCT;",
		"Y : Bool;",
		"END_STRUCT;",
		"B : Byte;",
		"END_STRUCT;",
		"After : Int;",
	}, registry.NewDefault())
	if err != nil {
		t.Fatal(err)
	}

	// Deep = {X@0} size 1; Middle = {Deep@0, Y@1} size 2;
	// Outer = {A@0, Middle@16, B@24} size 32.
	checkFields(t, fields, []wantField{
		{"Outer", 0, 32},
		{"After", 32, 16},
	})
	outer := fields[0].Type.(*types.UserDefined)
	checkFields(t, outer.Fields, []wantField{
		{"A", 0, 16},
		{"Middle", 16, 2},
		{"B", 24, 8},
	})
	middle := outer.Fields[1].Type.(*types.UserDefined)
	checkFields(t, middle.Fields, []wantField{
		{"Deep", 0, 1},
		{"Y", 1, 1},
	})
}

func TestLayoutErrors(t *testing.T) {
	tests := []struct {
		name string
		body []string
		kind errors.Kind
		path string
		line int
	}{
		{
			name: "unrecognized_type",
			body: []string{"A : Bool;", `B : "Foo";`},
			kind: errors.KindUnrecognizedType,
			path: "S.B",
			line: 2,
		},
		{
			name: "unrecognized_array_element",
			body: []string{`A : Array[0..1] of "Foo";`},
			kind: errors.KindUnrecognizedType,
			path: "S.A",
			line: 1,
		},
		{
			name: "multi_dimensional_array",
			body: []string{`A : Array[0..1, 0..1] of Int;`},
			kind: errors.KindUnrecognizedType,
		},
		{
			name: "inverted_array_bounds",
			body: []string{`A : Array[3..1] of Int;`},
			kind: errors.KindInvalidArrayBounds,
		},
		{
			name: "oversized_array",
			body: []string{"A : Bool;", `B : Array[0..9223372036854775807] of Int;`},
			kind: errors.KindInvalidArrayBounds,
			path: "S.B",
			line: 2,
		},
		{
			name: "bad_string_length",
			body: []string{`A : String[abc];`},
			kind: errors.KindUnrecognizedType,
		},
		{
			name: "missing_separator",
			body: []string{"A : Bool;", "B Int;"},
			kind: errors.KindMalformedFieldLine,
			path: "S",
			line: 2,
		},
		{
			name: "missing_name",
			body: []string{": Int;"},
			kind: errors.KindMalformedFieldLine,
		},
		{
			name: "close_without_open",
			body: []string{"A : Bool;", "END_STRUCT;"},
			kind: errors.KindUnterminatedInlineStruct,
			line: 2,
		},
		{
			name: "open_without_close",
			body: []string{"Inner : Struct", "X : Bool;"},
			kind: errors.KindUnterminatedInlineStruct,
			path: "S.Inner",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LayoutStruct("S", tc.body, registry.NewDefault())
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsKind(err, tc.kind) {
				t.Fatalf("kind: got %v, want %s", err, tc.kind)
			}
			e := err.(*errors.Error)
			if tc.path != "" && joinPath(e.Path) != tc.path {
				t.Errorf("path: got %s, want %s", joinPath(e.Path), tc.path)
			}
			if tc.line != 0 && e.Line != tc.line {
				t.Errorf("line: got %d, want %d", e.Line, tc.line)
			}
		})
	}
}

func joinPath(p []string) string {
	out := ""
	for i, s := range p {
		if i > 0 {
			out += "."
		}
		out += s
	}
	return out
}
