package plan

import (
	"extractor-generator/internal/analyze"
	"extractor-generator/internal/common"
)

// Strategy selects how the extractor implementation is generated.
//
//go:generate go tool stringer -type=Strategy
type Strategy int

const (
	// StrategyPerField extracts every field independently and assembles
	// the record from the results.
	StrategyPerField Strategy = iota
	// StrategyDelegated extracts the whole record through one adapter
	// wrapper type and unwraps it.
	StrategyDelegated
)

// Implementation is the resolved plan for one record's extractor: a pure
// data tree the serializer renders to source text. Expansion of the same
// record definition always yields an identical tree.
type Implementation struct {
	// Record is the definition this implementation was expanded from.
	Record *analyze.RecordDefinition
	// Strategy is the chosen generation path.
	Strategy Strategy
	// RejectionExpr documents the failure representation of the generated
	// method: the uniform *extract.Response for the per-field strategy,
	// the adapter's own error for delegation.
	RejectionExpr string
	// AdapterPath is the container-level adapter type path
	// (delegated strategy only), e.g. "api.JSON".
	AdapterPath string
	// Steps holds one extraction step per field in declaration order
	// (per-field strategy only). Empty for the unit shape.
	Steps []FieldStep
}

// FieldStep is one field extraction in the per-field strategy.
type FieldStep struct {
	// Member addresses the field in the constructed record value.
	Member analyze.Member
	// TypeExpr is the field's declared type expression.
	TypeExpr string
	// Unwrap is applied to the extracted value before assignment.
	Unwrap Unwrap
}

// UnwrapMode tags how an extracted value becomes the field value.
type UnwrapMode int

const (
	// UnwrapIdentity passes the extracted value through unchanged.
	UnwrapIdentity UnwrapMode = iota
	// UnwrapVia extracts an adapter wrapper instantiated at the field's
	// type and takes its inner value.
	UnwrapVia
)

// String returns a human-readable mode name.
func (m UnwrapMode) String() string {
	switch m {
	case UnwrapIdentity:
		return "identity"
	case UnwrapVia:
		return "via"
	default:
		return common.UnknownStr
	}
}

// Unwrap is the tagged choice {identity, via(path)} applied uniformly to
// every extracted field value.
type Unwrap struct {
	Mode UnwrapMode
	// Path is the adapter type path, set only for UnwrapVia.
	Path string
}
