// Package registry holds the name-to-type mapping used while resolving
// field declarations.
//
// A Registry is seeded with the built-in primitive table and grows as UDT
// sections are parsed in file order. Registering an existing name replaces
// the previous entry. A Registry belongs to a single parse run and is not
// safe for concurrent mutation; parse independent files with independent
// registries.
package registry
