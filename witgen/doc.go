// Package witgen exports parsed data blocks as WebAssembly Interface Type
// records.
//
// Every data block becomes a record. Referenced UDTs become named records
// shared across blocks, inline structs become records named after their
// enclosing record and field, and arrays become lists. Primitive mapping:
//
//	Bool                -> bool
//	Byte, USInt, Char   -> u8
//	SInt                -> s8
//	Int                 -> s16
//	Word                -> u16
//	DInt, Time          -> s32
//	UDInt, DWord        -> u32
//	Real                -> f32
//	String, WString     -> string
//
// Identifiers are converted to kebab-case. A word starting with a digit is
// joined to the word before it (Line_1 becomes line1), or gets an 'x' prefix
// when it comes first. WIT keywords are escaped with '%'.
package witgen
