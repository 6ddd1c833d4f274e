package report

import (
	"strconv"

	"github.com/wippyai/s7layout/types"
)

// Entry is one row of an offset table.
type Entry struct {
	Path    string `json:"path" yaml:"path"`
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"`
	Kind    string `json:"kind" yaml:"kind"`
	Address string `json:"address,omitempty" yaml:"address,omitempty"`
	Offset  int    `json:"offset" yaml:"offset"`
	Byte    int    `json:"byte" yaml:"byte"`
	Bit     int    `json:"bit" yaml:"bit"`
	Size    int    `json:"size" yaml:"size"`
	Depth   int    `json:"depth" yaml:"depth"`
}

// Location formats the entry offset as byte.bit.
func (e Entry) Location() string {
	return FormatOffset(e.Offset)
}

// FormatOffset formats a bit offset as wholeBytes.remainderBits.
func FormatOffset(bits int) string {
	return strconv.Itoa(bits/8) + "." + strconv.Itoa(bits%8)
}

// Address returns the S7 absolute address of a value of type t at the given
// bit offset, e.g. DBX0.1 or DBW4. Structs and arrays have no address.
func Address(t types.Type, offset int) string {
	b := strconv.Itoa(offset / 8)
	switch types.MemoryClassOf(t) {
	case types.MemBit:
		return "DBX" + b + "." + strconv.Itoa(offset%8)
	case types.MemByte, types.MemString:
		return "DBB" + b
	case types.MemWord:
		return "DBW" + b
	case types.MemDWord:
		return "DBD" + b
	default:
		return ""
	}
}

// Walk calls fn for every field of db in depth-first order. Returning false
// from fn skips the field's children.
func Walk(db *types.DataBlock, fn func(Entry) bool) {
	walk(db.Name, 0, 0, db.Fields, fn)
}

func walk(prefix string, base, depth int, fields []*types.Field, fn func(Entry) bool) {
	for _, f := range fields {
		offset := base + f.Offset
		path := prefix + "." + f.Name
		e := Entry{
			Path:    path,
			Name:    f.Name,
			Type:    f.Type.Name(),
			Kind:    f.Type.Kind().String(),
			Address: Address(f.Type, offset),
			Offset:  offset,
			Byte:    offset / 8,
			Bit:     offset % 8,
			Size:    f.Type.Size(),
			Depth:   depth,
		}
		if !fn(e) {
			continue
		}
		if c, ok := f.Type.(types.Container); ok {
			walk(path, offset, depth+1, c.Children(), fn)
		}
	}
}

// Entries returns every row of db's offset table.
func Entries(db *types.DataBlock) []Entry {
	var out []Entry
	Walk(db, func(e Entry) bool {
		out = append(out, e)
		return true
	})
	return out
}
