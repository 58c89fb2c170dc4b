package diagnostic

import (
	"errors"
	"go/token"
	"testing"
)

func TestDiagnosticString(t *testing.T) {
	d := Errorf(CodeMalformedAnnotation,
		token.Position{Filename: "types.go", Line: 12, Column: 20},
		"unknown directive %q", "nope")

	want := `types.go:12:20: unknown directive "nope" [malformed-annotation]`
	if d.String() != want {
		t.Errorf("got %q, want %q", d.String(), want)
	}
}

func TestDiagnosticStringNoPosition(t *testing.T) {
	d := &Diagnostic{Severity: DiagnosticError, Message: "boom"}
	if d.String() != "boom" {
		t.Errorf("got %q", d.String())
	}
}

func TestDiagnosticsCollect(t *testing.T) {
	var ds Diagnostics

	ds.Add(nil)
	ds.Add(errors.New("plain failure"))
	ds.Add(Errorf(CodeUnknownType, token.Position{}, "type %s not found", "api.Foo"))
	ds.Add(&Diagnostic{Severity: DiagnosticWarning, Message: "heads up"})

	if len(ds.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(ds.Errors))
	}

	if len(ds.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(ds.Warnings))
	}

	if !ds.HasErrors() {
		t.Fatal("expected errors")
	}

	if ds.Error() == nil {
		t.Fatal("expected combined error")
	}
}

func TestDiagnosticsAddWrapped(t *testing.T) {
	var ds Diagnostics

	inner := Errorf(CodeConflictingAdapterConfig, token.Position{}, "conflict")
	ds.Add(errors.Join(errors.New("while expanding api.Qux"), inner))

	if len(ds.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(ds.Errors))
	}

	if ds.Errors[0].Code != CodeConflictingAdapterConfig {
		t.Errorf("got code %q", ds.Errors[0].Code)
	}
}

func TestSeverityString(t *testing.T) {
	if DiagnosticError.String() != "error" {
		t.Error("severity string mismatch")
	}

	if DiagnosticSeverity(42).String() != "unknown" {
		t.Error("out-of-range severity should be unknown")
	}
}
