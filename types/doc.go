// Package types defines the S7 memory type descriptors used by the layout engine.
//
// Every descriptor implements Type and reports its size and alignment in bits.
// There are four variants:
//
//   - Primitive: one entry of the fixed built-in table (Bool, Int, Real, ...)
//   - UserDefined: a named UDT or an anonymous inline struct
//   - Array: a fixed index range over an element type, expanded eagerly
//   - String: String[N] and WString[N] with a two-unit length header
//
// Offsets are always bits relative to the immediate container. AlignOffset
// rounds a running offset up to a type's alignment.
package types
