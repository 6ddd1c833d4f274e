// Package section splits raw S7 source text into definition sections.
//
// A section runs from a TYPE or DATA_BLOCK line up to and including the
// matching END_TYPE or END_DATA_BLOCK line. Stray markers are reported as
// diagnostics and never abort the scan. A section still open at end of input
// is dropped with a diagnostic.
package section
