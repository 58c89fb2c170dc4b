package diagnostic

import (
	"errors"
	"fmt"
	"go/token"
	"strings"

	"extractor-generator/internal/common"
)

// Diagnostic codes for generation-time failures.
const (
	CodeUnsupportedGenerics      = "unsupported-generics"
	CodeAdapterAlreadySpecified  = "adapter-already-specified"
	CodeMalformedAnnotation      = "malformed-annotation"
	CodeConflictingAdapterConfig = "conflicting-adapter-config"
	CodeUnknownType              = "unknown-type"
	CodeInvalidConfig            = "invalid-config"
)

// Diagnostic represents a single positioned diagnostic message.
// It implements error so generation failures can be returned directly.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Pos is the source position the diagnostic points at.
	// A zero Pos means the diagnostic has no source location.
	Pos token.Position
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Errorf creates an error diagnostic at the given position.
func Errorf(code string, pos token.Position, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
	}
}

// Error implements the error interface, rendering compiler-style output.
func (d *Diagnostic) Error() string {
	return d.String()
}

// String returns a formatted diagnostic string: "file:line:col: message [code]".
func (d *Diagnostic) String() string {
	var sb strings.Builder

	if d.Pos.IsValid() {
		sb.WriteString(d.Pos.String())
		sb.WriteString(": ")
	}

	sb.WriteString(d.Message)

	if d.Code != "" {
		sb.WriteString(" [")
		sb.WriteString(d.Code)
		sb.WriteString("]")
	}

	return sb.String()
}

// Diagnostics holds all diagnostic information from a generation run.
type Diagnostics struct {
	Errors   []*Diagnostic
	Warnings []*Diagnostic
}

// Add records an error or warning, or a wrapped plain error as an
// unpositioned error diagnostic.
func (ds *Diagnostics) Add(err error) {
	if err == nil {
		return
	}

	var d *Diagnostic
	if !errors.As(err, &d) {
		d = &Diagnostic{Severity: DiagnosticError, Message: err.Error()}
	}

	if d.Severity == DiagnosticWarning {
		ds.Warnings = append(ds.Warnings, d)
		return
	}

	ds.Errors = append(ds.Errors, d)
}

// HasErrors returns true if there are any error diagnostics.
func (ds *Diagnostics) HasErrors() bool {
	return len(ds.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (ds *Diagnostics) Merge(other Diagnostics) {
	ds.Errors = append(ds.Errors, other.Errors...)
	ds.Warnings = append(ds.Warnings, other.Warnings...)
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (ds *Diagnostics) Error() error {
	if !ds.HasErrors() {
		return nil
	}

	var parts []string
	for _, e := range ds.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}
