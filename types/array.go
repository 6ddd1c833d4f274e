package types

import "strconv"

// Array is a fixed index range over a single element type. One field per
// index is materialized at construction; all of them share Elem.
type Array struct {
	Elem   Type
	Fields []*Field
	spec   string
	Start  int
	End    int
}

// NewArray expands [start, end] over elem. The caller guarantees end >= start
// and that the range stays within MaxArrayElements and MaxSize.
// spec is the declared specifier and becomes the type name.
func NewArray(spec string, start, end int, elem Type) *Array {
	a := &Array{
		spec:   spec,
		Elem:   elem,
		Start:  start,
		End:    end,
		Fields: make([]*Field, 0, end-start+1),
	}
	elemSize := elem.Size()
	for i := start; i <= end; i++ {
		a.Fields = append(a.Fields, NewField(IndexName(i), (i-start)*elemSize, elem))
	}
	return a
}

// IndexName formats an array index as a field name.
func IndexName(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}

// Len returns the number of elements.
func (a *Array) Len() int { return a.End - a.Start + 1 }

func (a *Array) Name() string       { return a.spec }
func (a *Array) Size() int          { return a.Elem.Size() * a.Len() }
func (a *Array) Alignment() int     { return StructAlignment }
func (a *Array) Kind() Kind         { return KindArray }
func (a *Array) Children() []*Field { return a.Fields }
