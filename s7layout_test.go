package s7layout

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/wippyai/s7layout/errors"
	"github.com/wippyai/s7layout/registry"
	"github.com/wippyai/s7layout/types"
)

const endToEnd = `TYPE "T1"
VERSION : 0.1
   STRUCT
      A : Bool;
      B : Bool;
   END_STRUCT;

END_TYPE

DATA_BLOCK "DB1"
{ S7_Optimized_Access := 'FALSE' }
VERSION : 0.1
NON_RETAIN
   STRUCT
      Field1 : "T1";
      Field2 : Int;
   END_STRUCT;


BEGIN

END_DATA_BLOCK
`

func TestParseEndToEnd(t *testing.T) {
	res, err := New().ParseString(endToEnd)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", res.Diagnostics)
	}
	if len(res.Types) != 1 || res.Types[0].Name() != "T1" {
		t.Fatalf("types: got %v", res.Types)
	}
	if _, ok := res.Registry.Lookup("T1"); !ok {
		t.Error("T1 should be registered")
	}

	db, ok := res.DataBlock("DB1")
	if !ok {
		t.Fatal("DB1 not found")
	}
	if len(db.Fields) != 2 {
		t.Fatalf("fields: got %d, want 2", len(db.Fields))
	}
	f1, f2 := db.Fields[0], db.Fields[1]
	if f1.Name != "Field1" || f1.Offset != 0 || f1.Type.Size() != 2 {
		t.Errorf("Field1: %s@%d size %d", f1.Name, f1.Offset, f1.Type.Size())
	}
	if f2.Name != "Field2" || f2.Offset != 16 {
		t.Errorf("Field2: %s@%d", f2.Name, f2.Offset)
	}
	if db.Size != 32 {
		t.Errorf("size: got %d, want 32", db.Size)
	}

	udt := f1.Type.(*types.UserDefined)
	if udt.Fields[0].Offset != 0 || udt.Fields[1].Offset != 1 {
		t.Errorf("T1 offsets: %d, %d", udt.Fields[0].Offset, udt.Fields[1].Offset)
	}
	if _, ok := res.DataBlock("DB2"); ok {
		t.Error("DB2 should not exist")
	}
}

func TestParseForwardReference(t *testing.T) {
	src := `DATA_BLOCK "DB1"
VERSION : 0.1
STRUCT
   F : "Later";
END_STRUCT;
END_DATA_BLOCK
TYPE "Later"
VERSION : 0.1
STRUCT
   A : Int;
END_STRUCT;
END_TYPE
`
	_, err := New().ParseString(src)
	if !errors.IsKind(err, errors.KindUnrecognizedType) {
		t.Fatalf("got %v, want unrecognized_type", err)
	}
}

func TestParseRedeclaredType(t *testing.T) {
	src := `TYPE "T"
STRUCT
   A : Bool;
END_STRUCT;
END_TYPE
TYPE "T"
STRUCT
   A : DInt;
END_STRUCT;
END_TYPE
DATA_BLOCK "DB"
STRUCT
   X : "T";
END_STRUCT;
END_DATA_BLOCK
`
	res, err := New().ParseString(src)
	if err != nil {
		t.Fatal(err)
	}
	if res.DataBlocks[0].Size != 32 {
		t.Errorf("size: got %d, want 32 from the second declaration", res.DataBlocks[0].Size)
	}
	if res.Diagnostics.Count(errors.KindMissingVersion) != 3 {
		t.Errorf("missing version diagnostics: got %d, want 3", res.Diagnostics.Count(errors.KindMissingVersion))
	}
}

func TestParseFailFast(t *testing.T) {
	src := endToEnd + `DATA_BLOCK "Broken"
VERSION : 0.1
STRUCT
   X Bool;
END_STRUCT;
END_DATA_BLOCK
`
	res, err := New().ParseString(src)
	if err == nil {
		t.Fatal("expected error")
	}
	if res != nil {
		t.Error("a failed run must not return a partial result")
	}
	if !errors.IsKind(err, errors.KindMalformedFieldLine) {
		t.Errorf("got %v, want malformed_field_line", err)
	}
}

func TestParseStrict(t *testing.T) {
	src := "END_TYPE\n" + endToEnd

	res, err := New().ParseString(src)
	if err != nil {
		t.Fatalf("lenient run: %v", err)
	}
	if res.Diagnostics.Count(errors.KindStrayMarker) != 1 {
		t.Errorf("diagnostics: %v", res.Diagnostics)
	}

	_, err = New(WithStrict(true)).ParseString(src)
	if !errors.IsKind(err, errors.KindStrayMarker) {
		t.Fatalf("strict run: got %v, want stray_marker", err)
	}
}

func TestParseFiles(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "types.udt")
	blocks := filepath.Join(dir, "blocks.db")

	if err := os.WriteFile(lib, []byte(`TYPE "Motor"
VERSION : 0.1
STRUCT
   Speed : Real;
   Running : Bool;
END_STRUCT;
END_TYPE
`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(blocks, []byte(`DATA_BLOCK "Line"
VERSION : 0.1
STRUCT
   Motors : Array[1..2] of "Motor";
END_STRUCT;
END_DATA_BLOCK
`), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := New().ParseFiles(lib, blocks)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.DataBlocks) != 1 || res.DataBlocks[0].Size != 66 {
		t.Fatalf("data blocks: %+v", res.DataBlocks)
	}

	_, err = New().ParseFile(blocks)
	if !errors.IsKind(err, errors.KindUnrecognizedType) {
		t.Errorf("without the library: got %v, want unrecognized_type", err)
	}

	_, err = New().ParseFile(filepath.Join(dir, "missing.db"))
	if !errors.IsKind(err, errors.KindFileUnreadable) {
		t.Errorf("missing file: got %v, want file_unreadable", err)
	}
}

func TestParseWithRegistry(t *testing.T) {
	reg := registry.NewDefault()
	p := New(WithRegistry(reg))

	if _, err := p.ParseString("TYPE \"T\"\nSTRUCT\nA : Int;\nEND_STRUCT;\nEND_TYPE\n"); err != nil {
		t.Fatal(err)
	}
	res, err := p.ParseString("DATA_BLOCK \"D\"\nSTRUCT\nX : \"T\";\nEND_STRUCT;\nEND_DATA_BLOCK\n")
	if err != nil {
		t.Fatal(err)
	}
	if res.DataBlocks[0].Size != 16 {
		t.Errorf("size: got %d, want 16", res.DataBlocks[0].Size)
	}
	if res.Registry != reg {
		t.Error("result should expose the supplied registry")
	}
}

func TestParseConcurrent(t *testing.T) {
	p := New()
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := p.ParseString(endToEnd)
			if err != nil {
				errs <- err
				return
			}
			if res.DataBlocks[0].Size != 32 {
				errs <- errors.New(errors.PhaseLayout, errors.KindMalformedSection).Detail("size %d", res.DataBlocks[0].Size).Build()
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
