package types

// StructAlignment is the bit alignment of every UDT, inline struct, array and string.
const StructAlignment = 16

// MaxSize is the largest type in bits: 16 MB, the S7-1500 limit for one data block.
const MaxSize = (16 << 20) * 8

// MaxArrayElements caps the element count of one array. Elements are
// materialized as fields.
const MaxArrayElements = 1 << 20

// Type is implemented by every memory type descriptor.
type Type interface {
	Name() string
	// Size is the footprint in bits.
	Size() int
	// Alignment is the bit boundary a field of this type starts on.
	Alignment() int
	Kind() Kind
}

// Container is implemented by types that own child fields (structs and arrays).
type Container interface {
	Type
	Children() []*Field
}

// Field is a named slot inside a struct, data block or array frame.
// Offset is in bits relative to the start of the immediate container.
type Field struct {
	Type   Type
	Name   string
	Offset int
}

// NewField creates a field.
func NewField(name string, offset int, t Type) *Field {
	return &Field{Name: name, Offset: offset, Type: t}
}

// End returns the first bit after the field.
func (f *Field) End() int {
	return f.Offset + f.Type.Size()
}

// DataBlock is a top-level instantiation of fields. It is never registered
// as a reusable type.
type DataBlock struct {
	Name    string
	Version string
	Fields  []*Field
	Size    int
}

// NewDataBlock creates a data block and derives its size from the last field.
func NewDataBlock(name, version string, fields []*Field) *DataBlock {
	return &DataBlock{
		Name:    name,
		Version: version,
		Fields:  fields,
		Size:    fieldsSize(fields),
	}
}

// AlignOffset rounds offset up to the next multiple of alignment.
func AlignOffset(offset, alignment int) int {
	if alignment <= 0 {
		return offset
	}
	rem := offset % alignment
	if rem == 0 {
		return offset
	}
	return offset + alignment - rem
}

func fieldsSize(fields []*Field) int {
	if len(fields) == 0 {
		return 0
	}
	return fields[len(fields)-1].End()
}
