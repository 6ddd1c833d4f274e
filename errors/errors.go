package errors

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseRead    Phase = "read"    // loading source text
	PhaseSplit   Phase = "split"   // section splitting
	PhaseParse   Phase = "parse"   // definition header parsing
	PhaseLayout  Phase = "layout"  // struct layout
	PhaseResolve Phase = "resolve" // type specifier resolution
	PhaseReport  Phase = "report"  // offset reporting
	PhaseExport  Phase = "export"  // WIT export
	PhaseConfig  Phase = "config"  // configuration loading
)

// Kind categorizes the error
type Kind string

const (
	KindFileUnreadable           Kind = "file_unreadable"
	KindMalformedSection         Kind = "malformed_section"
	KindStrayMarker              Kind = "stray_marker"
	KindUnterminatedSection      Kind = "unterminated_section"
	KindMissingVersion           Kind = "missing_version"
	KindUnrecognizedType         Kind = "unrecognized_type"
	KindMalformedFieldLine       Kind = "malformed_field_line"
	KindUnterminatedInlineStruct Kind = "unterminated_inline_struct"
	KindInvalidArrayBounds       Kind = "invalid_array_bounds"
	KindInvalidQuery             Kind = "invalid_query"
	KindInvalidConfig            Kind = "invalid_config"
	KindEmptyRecord              Kind = "empty_record"
)

// Error is the structured error type used throughout s7layout
type Error struct {
	Cause    error
	Phase    Phase
	Kind     Kind
	Section  string
	TypeSpec string
	Detail   string
	Path     []string
	Line     int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Section != "" {
		b.WriteString(" in ")
		b.WriteString(e.Section)
	}

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Line > 0 {
		b.WriteString(" (line ")
		b.WriteString(strconv.Itoa(e.Line))
		b.WriteByte(')')
	}

	if e.TypeSpec != "" {
		b.WriteString(": type ")
		b.WriteString(strconv.Quote(e.TypeSpec))
	}

	if e.Detail != "" {
		if e.TypeSpec != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// IsKind reports whether any error in err's chain is an *Error of the given kind,
// regardless of phase.
func IsKind(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if !stderrors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Cause
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Section sets the name of the section being parsed
func (b *Builder) Section(name string) *Builder {
	b.err.Section = name
	return b
}

// Line sets the 1-based source line
func (b *Builder) Line(n int) *Builder {
	b.err.Line = n
	return b
}

// TypeSpec sets the offending type specifier
func (b *Builder) TypeSpec(spec string) *Builder {
	b.err.TypeSpec = spec
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// FileUnreadable creates a read failure error
func FileUnreadable(path string, cause error) *Error {
	return &Error{
		Phase:  PhaseRead,
		Kind:   KindFileUnreadable,
		Detail: fmt.Sprintf("unable to read %s", path),
		Cause:  cause,
	}
}

// MalformedSection creates a section boundary error
func MalformedSection(section string, detail string) *Error {
	return &Error{
		Phase:   PhaseParse,
		Kind:    KindMalformedSection,
		Section: section,
		Detail:  detail,
	}
}

// UnrecognizedType creates an unresolved type specifier error
func UnrecognizedType(path []string, spec string) *Error {
	return &Error{
		Phase:    PhaseResolve,
		Kind:     KindUnrecognizedType,
		Path:     path,
		TypeSpec: spec,
		Detail:   "type is not recognized",
	}
}

// MalformedFieldLine creates an error for a declaration without a name/type separator
func MalformedFieldLine(path []string, line string) *Error {
	return &Error{
		Phase:  PhaseLayout,
		Kind:   KindMalformedFieldLine,
		Path:   path,
		Detail: fmt.Sprintf("expected a field in the format Name : Type, got %q", line),
	}
}

// UnterminatedInlineStruct creates an error for unbalanced inline struct markers
func UnterminatedInlineStruct(path []string, detail string) *Error {
	return &Error{
		Phase:  PhaseLayout,
		Kind:   KindUnterminatedInlineStruct,
		Path:   path,
		Detail: detail,
	}
}

// InvalidArrayBounds creates an error for an array whose end index precedes its start
func InvalidArrayBounds(path []string, spec string, start, end int) *Error {
	return &Error{
		Phase:    PhaseResolve,
		Kind:     KindInvalidArrayBounds,
		Path:     path,
		TypeSpec: spec,
		Detail:   fmt.Sprintf("end index %d is lower than start index %d", end, start),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
