package types

// Memory classes used for S7 absolute addressing (DBX, DBB, DBW, DBD).
const (
	MemBit    byte = 'X'
	MemByte   byte = 'B'
	MemWord   byte = 'W'
	MemDWord  byte = 'D'
	MemString byte = 'S'
)

// Primitive is an immutable built-in type.
type Primitive struct {
	name        string
	size        int
	alignment   int
	memoryClass byte
}

func (p *Primitive) Name() string      { return p.name }
func (p *Primitive) Size() int         { return p.size }
func (p *Primitive) Alignment() int    { return p.alignment }
func (p *Primitive) Kind() Kind        { return KindPrimitive }
func (p *Primitive) MemoryClass() byte { return p.memoryClass }

var (
	Bool  = &Primitive{"Bool", 1, 1, MemBit}
	Byte  = &Primitive{"Byte", 8, 8, MemByte}
	Char  = &Primitive{"Char", 8, 8, MemByte}
	Int   = &Primitive{"Int", 16, 16, MemWord}
	DInt  = &Primitive{"DInt", 32, 16, MemDWord}
	UDInt = &Primitive{"UDInt", 32, 16, MemDWord}
	Word  = &Primitive{"Word", 16, 16, MemWord}
	USInt = &Primitive{"USInt", 8, 8, MemByte}
	SInt  = &Primitive{"SInt", 8, 8, MemByte}
	DWord = &Primitive{"DWord", 32, 16, MemDWord}
	Real  = &Primitive{"Real", 32, 16, MemDWord}
	Time  = &Primitive{"Time", 32, 16, MemDWord}
)

var primitives = [...]*Primitive{
	Bool, Byte, Char, Int, DInt, UDInt, Word, USInt, SInt, DWord, Real, Time,
}

// Primitives returns the built-in table in declaration order.
func Primitives() []*Primitive {
	out := make([]*Primitive, len(primitives))
	copy(out, primitives[:])
	return out
}

// MemoryClassOf returns the addressing class of t. Aggregates report 0.
func MemoryClassOf(t Type) byte {
	switch v := t.(type) {
	case *Primitive:
		return v.memoryClass
	case *String:
		return MemString
	default:
		return 0
	}
}
