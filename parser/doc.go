// Package parser turns definition sections into resolved S7 types.
//
// ParseUserType and ParseDataBlock read a section header (name, VERSION,
// STRUCT ... END_STRUCT) and hand the struct body to the layout engine. The
// engine walks the body with a line cursor, resolving each declaration
// against a registry and assigning bit offsets under the alignment rules of
// package types. Inline `Name : Struct ... END_STRUCT;` declarations are
// handled by recursive descent, each level consuming exactly the END_STRUCT
// that closes it.
//
// # Type specifiers
//
//	Int, "MyUdt"             registry lookup
//	String, String[20]       254 or N characters plus a 2 byte header
//	WString, WString[20]     same with 16 bit characters
//	Array[0..3] of "MyUdt"   eagerly expanded, element resolved recursively
//
// Every grammar or resolution failure is returned as an *errors.Error and
// aborts the section. Soft findings such as a missing VERSION line are
// returned as diagnostics.
package parser
