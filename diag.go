package constrec

import "github.com/rs/zerolog/log"

// Diagnostic is an advisory emitted by a record operation. Advisories are
// informational and never abort the operation that raised them; actual
// failures travel on the error return instead.
type Diagnostic struct {
	// Code identifies the advisory category.
	Code DiagnosticCode

	// Field is the field name involved, if any.
	Field string

	// Renamed is the sanitized form of Field for FIELD_RENAMED advisories.
	Renamed string

	// Message is a human-readable description.
	Message string
}

// DiagnosticCode categorizes advisories.
type DiagnosticCode string

const (
	// DiagFieldRenamed reports that an invalid field name was sanitized
	// into a valid identifier during construction.
	DiagFieldRenamed DiagnosticCode = "FIELD_RENAMED"

	// DiagFieldCleared reports that a locked field was removed.
	DiagFieldCleared DiagnosticCode = "FIELD_CLEARED"

	// DiagConstnessLost reports a conversion to a plain mutable structure.
	DiagConstnessLost DiagnosticCode = "CONSTNESS_LOST"
)

// DiagnosticHandler receives advisories from a record. Handlers may log,
// collect, or ignore them.
type DiagnosticHandler func(Diagnostic)

// LogDiagnostics logs advisories at warn level. It is the handler every
// record starts with.
func LogDiagnostics(d Diagnostic) {
	ev := log.Warn().Str("code", string(d.Code))
	if d.Field != "" {
		ev = ev.Str("field", d.Field)
	}
	if d.Renamed != "" {
		ev = ev.Str("renamed", d.Renamed)
	}
	ev.Msg(d.Message)
}

// DiscardDiagnostics drops all advisories.
func DiscardDiagnostics(Diagnostic) {}

// Option configures a record at construction time.
type Option func(*Record)

// WithDiagnostics sets the handler that receives the record's advisories.
func WithDiagnostics(h DiagnosticHandler) Option {
	return func(r *Record) {
		r.diag = h
	}
}
