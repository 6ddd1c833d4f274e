// Package report flattens resolved data blocks into offset tables.
//
// Walk visits every field depth first with its absolute bit offset, recursing
// into UDTs, inline structs and array elements. The resulting entries are
// written as the classic text table (`DB1.Field1.A 0.0`), as JSON or YAML
// documents, or filtered with a jq expression.
//
// Paths join field names with '.', array elements included:
//
//	DB1.Values.[0]    2.0
package report
