package diag

import (
	"fmt"

	"yo/internal/source"
)

// Note attaches supplementary context to a Diagnostic (e.g. "candidate
// declared here" for an ambiguous-call error listing every considered
// overload).
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is the single error representation produced anywhere in the
// semantic core. Formatting with source snippets is explicitly out of scope
// for the core (spec.md §1); Diagnostic only carries enough structure for a
// host (internal/report) to render one.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s[%s]: %s", d.Severity, d.Code, d.Message)
}

// New builds an error-severity Diagnostic at span.
func New(code Code, span source.Span, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Primary:  span,
	}
}

// WithNote appends a Note and returns the receiver for chaining.
func (d *Diagnostic) WithNote(span source.Span, format string, args ...any) *Diagnostic {
	d.Notes = append(d.Notes, Note{Span: span, Msg: fmt.Sprintf(format, args...)})
	return d
}
