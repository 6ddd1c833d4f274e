package errors

import (
	"fmt"

	"go.uber.org/multierr"
)

// Diagnostic is a soft problem found while parsing. It never aborts a run on
// its own.
type Diagnostic struct {
	Phase  Phase
	Kind   Kind
	Detail string
	Line   int
}

// Error implements the error interface so diagnostics can be promoted.
func (d Diagnostic) Error() string {
	if d.Line > 0 {
		return fmt.Sprintf("[%s] %s (line %d): %s", d.Phase, d.Kind, d.Line, d.Detail)
	}
	return fmt.Sprintf("[%s] %s: %s", d.Phase, d.Kind, d.Detail)
}

// Diagnostics is an ordered list of soft problems.
type Diagnostics []Diagnostic

// Add appends a diagnostic.
func (ds *Diagnostics) Add(phase Phase, kind Kind, line int, format string, args ...any) {
	*ds = append(*ds, Diagnostic{
		Phase:  phase,
		Kind:   kind,
		Line:   line,
		Detail: fmt.Sprintf(format, args...),
	})
}

// Count returns the number of diagnostics of the given kind.
func (ds Diagnostics) Count(kind Kind) int {
	n := 0
	for _, d := range ds {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// Err combines all diagnostics into a single error, or nil when empty.
func (ds Diagnostics) Err() error {
	var err error
	for _, d := range ds {
		err = multierr.Append(err, d)
	}
	return err
}
