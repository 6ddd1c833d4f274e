package abi

import (
	"go.bytecodealliance.org/wit"
)

// pointerPair is the in-record footprint of a string or list: ptr and len, both u32.
const pointerPair = 8

// Layout is the canonical ABI footprint of a type, in bytes. Offsets holds
// one entry per record field in declaration order and is nil for other types.
type Layout struct {
	Offsets []uint32
	Size    uint32
	Align   uint32
}

// Calculator memoizes record layouts. Records generated for UDTs are shared
// by every data block that uses them, so each is computed once.
type Calculator struct {
	records map[*wit.TypeDef]Layout
}

func NewCalculator() *Calculator {
	return &Calculator{records: make(map[*wit.TypeDef]Layout)}
}

// Of returns the layout of t.
func (c *Calculator) Of(t wit.Type) Layout {
	if def, ok := t.(*wit.TypeDef); ok {
		return c.typeDef(def)
	}
	if w := scalarWidth(t); w > 0 {
		return Layout{Size: w, Align: w}
	}
	if _, ok := t.(wit.String); ok {
		return Layout{Size: pointerPair, Align: 4}
	}
	return Layout{Align: 1}
}

// scalarWidth is the size of a fixed-width value, which is also its alignment.
func scalarWidth(t wit.Type) uint32 {
	switch t.(type) {
	case wit.Bool, wit.U8, wit.S8:
		return 1
	case wit.U16, wit.S16:
		return 2
	case wit.U32, wit.S32, wit.F32, wit.Char:
		return 4
	case wit.U64, wit.S64, wit.F64:
		return 8
	}
	return 0
}

func (c *Calculator) typeDef(def *wit.TypeDef) Layout {
	if l, ok := c.records[def]; ok {
		return l
	}

	var l Layout
	switch kind := def.Kind.(type) {
	case *wit.Record:
		l = c.record(kind.Fields)
	case *wit.List:
		l = Layout{Size: pointerPair, Align: 4}
	case wit.Type:
		l = c.Of(kind)
	default:
		l = Layout{Align: 1}
	}
	c.records[def] = l
	return l
}

// record places fields in order, each at the next multiple of its alignment.
// The record is padded to its widest alignment.
func (c *Calculator) record(fields []wit.Field) Layout {
	l := Layout{Align: 1, Offsets: make([]uint32, len(fields))}
	var end uint32
	for i, f := range fields {
		fl := c.Of(f.Type)
		end = Align(end, fl.Align)
		l.Offsets[i] = end
		end += fl.Size
		l.Align = max(l.Align, fl.Align)
	}
	l.Size = Align(end, l.Align)
	return l
}

// Align rounds n up to a multiple of the power of two a. a == 0 leaves n unchanged.
func Align(n, a uint32) uint32 {
	if a == 0 {
		return n
	}
	return (n + a - 1) &^ (a - 1)
}
