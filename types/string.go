package types

import "strconv"

// DefaultStringLength is the declared length of a bare String or WString.
const DefaultStringLength = 254

// String is a length-prefixed character string. The two header units hold
// the maximum and the actual length.
type String struct {
	Length int
	Wide   bool
}

// NewString creates a String[length].
func NewString(length int) *String {
	return &String{Length: length}
}

// NewWString creates a WString[length] with 16-bit characters.
func NewWString(length int) *String {
	return &String{Length: length, Wide: true}
}

func (s *String) Name() string {
	base := "String"
	if s.Wide {
		base = "WString"
	}
	return base + "[" + strconv.Itoa(s.Length) + "]"
}

func (s *String) Size() int {
	unit := 8
	if s.Wide {
		unit = 16
	}
	return (s.Length + 2) * unit
}

func (s *String) Alignment() int { return StructAlignment }
func (s *String) Kind() Kind     { return KindString }
