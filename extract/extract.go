// Package extract defines the contract generated extractor code compiles
// against. It carries no extraction logic of its own: field and adapter
// types implement Extractor elsewhere, and the generator only emits calls
// into them.
package extract

import (
	"context"
	"net/http"
)

// Extractor is the extraction capability: a type that can populate itself
// from an incoming request. Dispatch works like json.Unmarshaler — the
// generated code declares a value of the target type and calls its
// FromRequest method.
type Extractor interface {
	FromRequest(ctx context.Context, r *http.Request) error
}

// Wrapper is the adapter contract: a single-value wrapper type that
// extracts itself and exposes the wrapped value. Generated code
// instantiates adapters at the field's declared type (or the record type
// itself, for whole-record delegation) and unwraps the result.
type Wrapper[T any] interface {
	Unwrap() T
}
