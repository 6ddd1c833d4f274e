// Package errors provides structured error types for s7layout.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the section, source line, field path and the type
// specifier involved, plus an optional cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseResolve, errors.KindUnrecognizedType).
//		Section("DB1").
//		Line(12).
//		Path("DB1", "Motor", "Speed").
//		TypeSpec("Foo").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnrecognizedType(path, "Foo")
//	err := errors.MalformedFieldLine(path, line)
//
// Soft problems that must not abort a run are reported as Diagnostic values
// and collected in Diagnostics.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
