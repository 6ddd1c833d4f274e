package witgen

import (
	"strings"
	"testing"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/s7layout"
	"github.com/wippyai/s7layout/errors"
	"github.com/wippyai/s7layout/types"
)

const lineSource = `TYPE "Motor"
VERSION : 0.1
STRUCT
   Speed : Real;
   Running : Bool;
END_STRUCT;
END_TYPE

DATA_BLOCK "Line_1"
VERSION : 0.1
STRUCT
   Motors : Array[1..2] of "Motor";
   Label : String[8];
   Status : Struct
      Code : Word;
      Type : Byte;
   END_STRUCT;
END_STRUCT;
END_DATA_BLOCK
`

func TestIdent(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Motor_Data", "motor-data"},
		{"MotorSpeed", "motor-speed"},
		{"DB1", "db1"},
		{"HTTPServer", "http-server"},
		{"Type", "%type"},
		{"String", "%string"},
		{"2ndStage", "x2nd-stage"},
		{"Line_1", "line1"},
		{"Motor_2_Speed", "motor2-speed"},
		{"a  b", "a-b"},
		{"", "field"},
		{"__", "field"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Ident(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNamerUnique(t *testing.T) {
	n := newNamer()
	if got := n.unique("run-mode"); got != "run-mode" {
		t.Errorf("got %q, want run-mode", got)
	}
	if got := n.unique("run-mode"); got != "run-mode-v2" {
		t.Errorf("got %q, want run-mode-v2", got)
	}
	if got := n.unique("%type"); got != "%type" {
		t.Errorf("got %q, want %%type", got)
	}
	if got := n.unique("%type"); got != "type-v2" {
		t.Errorf("got %q, want type-v2", got)
	}
}

func TestPrimitiveMapping(t *testing.T) {
	want := map[string]string{
		"Bool": "bool", "Byte": "u8", "Char": "u8", "USInt": "u8", "SInt": "s8",
		"Int": "s16", "Word": "u16", "DInt": "s32", "Time": "s32",
		"UDInt": "u32", "DWord": "u32", "Real": "f32",
	}
	for _, p := range types.Primitives() {
		t.Run(p.Name(), func(t *testing.T) {
			wt, ok := primitive(p)
			if !ok {
				t.Fatal("no mapping")
			}
			if got := TypeString(wt); got != want[p.Name()] {
				t.Errorf("got %s, want %s", got, want[p.Name()])
			}
		})
	}
}

func TestGeneratorDataBlock(t *testing.T) {
	res, err := s7layout.New().ParseString(lineSource)
	if err != nil {
		t.Fatal(err)
	}

	g := New()
	def, err := g.DataBlock(res.DataBlocks[0])
	if err != nil {
		t.Fatal(err)
	}
	if *def.Name != "line1" {
		t.Errorf("name: got %s, want line1", *def.Name)
	}

	records := g.Records()
	var names []string
	for _, r := range records {
		names = append(names, *r.Name)
	}
	if got := strings.Join(names, ","); got != "motor,line1-status,line1" {
		t.Errorf("records: got %s", got)
	}

	fields := def.Kind.(*wit.Record).Fields
	wantFields := []string{"motors: list<motor>", "label: string", "status: line1-status"}
	for i, f := range fields {
		if got := f.Name + ": " + TypeString(f.Type); got != wantFields[i] {
			t.Errorf("field %d: got %s, want %s", i, got, wantFields[i])
		}
	}

	size, align := g.ABI(def)
	if size != 20 || align != 4 {
		t.Errorf("abi: got size %d align %d, want 20/4", size, align)
	}
	size, align = g.ABI(records[0])
	if size != 8 || align != 4 {
		t.Errorf("motor abi: got size %d align %d, want 8/4", size, align)
	}
}

func TestSharedUserType(t *testing.T) {
	motor := types.NewUserDefined("Motor", "0.1", []*types.Field{
		types.NewField("Speed", 0, types.Real),
	})
	a := types.NewDataBlock("A", "", []*types.Field{types.NewField("M", 0, motor)})
	b := types.NewDataBlock("B", "", []*types.Field{types.NewField("M", 0, motor)})

	g := New()
	for _, db := range []*types.DataBlock{a, b} {
		if _, err := g.DataBlock(db); err != nil {
			t.Fatal(err)
		}
	}
	if len(g.Records()) != 3 {
		t.Errorf("records: got %d, want 3", len(g.Records()))
	}
}

func TestGeneratorErrors(t *testing.T) {
	t.Run("empty_record", func(t *testing.T) {
		_, err := New().DataBlock(types.NewDataBlock("Empty", "", nil))
		if !errors.IsKind(err, errors.KindEmptyRecord) {
			t.Errorf("got %v, want empty_record", err)
		}
	})

	t.Run("unmapped_type", func(t *testing.T) {
		db := types.NewDataBlock("D", "", []*types.Field{types.NewField("X", 0, opaque{})})
		_, err := New().DataBlock(db)
		if !errors.IsKind(err, errors.KindUnrecognizedType) {
			t.Errorf("got %v, want unrecognized_type", err)
		}
	})
}

func TestRender(t *testing.T) {
	res, err := s7layout.New().ParseString(lineSource)
	if err != nil {
		t.Fatal(err)
	}

	var b strings.Builder
	if err := Render(&b, "", res.DataBlocks); err != nil {
		t.Fatal(err)
	}
	out := b.String()

	for _, want := range []string{
		"package s7:layout;",
		"interface data-blocks {",
		"  // Motor: 5 PLC bytes, canonical ABI size 8 align 4",
		"  record motor {\n    speed: f32, // PLC 0.0, ABI 0\n    running: bool, // PLC 4.0, ABI 4\n  }",
		"  record line1-status {\n    code: u16, // PLC 0.0, ABI 0\n    %type: u8, // PLC 2.0, ABI 2\n  }",
		"    motors: list<motor>, // PLC 0.0, ABI 0\n",
		"    label: string, // PLC 10.0, ABI 8\n",
		"    status: line1-status, // PLC 20.0, ABI 16\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	b.Reset()
	if err := Render(&b, "acme:plant", res.DataBlocks); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(b.String(), "package acme:plant;") {
		t.Errorf("package: got %q", b.String()[:30])
	}
}

type opaque struct{}

func (opaque) Name() string     { return "Opaque" }
func (opaque) Size() int        { return 8 }
func (opaque) Alignment() int   { return 8 }
func (opaque) Kind() types.Kind { return types.KindPrimitive }
