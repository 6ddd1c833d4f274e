package types

// UserDefined is a struct type: either a registered UDT or an anonymous
// struct declared inline in a field position.
type UserDefined struct {
	name      string
	Version   string
	Fields    []*Field
	size      int
	Anonymous bool
}

// NewUserDefined creates a named UDT. Its size is the end of its last field.
func NewUserDefined(name, version string, fields []*Field) *UserDefined {
	return &UserDefined{
		name:    name,
		Version: version,
		Fields:  fields,
		size:    fieldsSize(fields),
	}
}

// NewInlineStruct creates an anonymous struct synthesized from an inline declaration.
func NewInlineStruct(name string, fields []*Field) *UserDefined {
	u := NewUserDefined(name, "", fields)
	u.Anonymous = true
	return u
}

func (u *UserDefined) Name() string       { return u.name }
func (u *UserDefined) Size() int          { return u.size }
func (u *UserDefined) Alignment() int     { return StructAlignment }
func (u *UserDefined) Kind() Kind         { return KindUserDefined }
func (u *UserDefined) Children() []*Field { return u.Fields }
