package types

// Kind discriminates the Type variants.
type Kind uint8

const (
	KindPrimitive Kind = iota
	KindUserDefined
	KindArray
	KindString
)

var kindNames = [...]string{
	KindPrimitive:   "primitive",
	KindUserDefined: "struct",
	KindArray:       "array",
	KindString:      "string",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsAggregate returns true for kinds that own child fields.
func (k Kind) IsAggregate() bool {
	return k == KindUserDefined || k == KindArray
}
