// Package abi computes where the canonical ABI places the fields of the
// records produced by witgen, so a data block's PLC layout can be compared
// with the layout a WebAssembly component sees for the same record.
//
// Only the types witgen emits are covered: bool, 8/16/32-bit integers, f32,
// string, list and record. Strings and lists are a (pointer, length) pair of
// u32 in the record, their contents live elsewhere in linear memory.
package abi
