package diag

import (
	"wss/internal/source"
)

// Note attaches a secondary location to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// IsError reports whether the diagnostic should fail the build.
func (d *Diagnostic) IsError() bool {
	return d.Severity >= SevError
}
