package plan

import (
	"extractor-generator/internal/analyze"
	"extractor-generator/internal/attr"
	"extractor-generator/internal/diagnostic"
)

// Expand resolves a record definition into its extractor implementation.
// It fails with a positioned diagnostic on generic records, on annotation
// errors at either scope, and on adapter configuration conflicts.
func Expand(rec *analyze.RecordDefinition) (*Implementation, error) {
	// Hard precondition, checked before any attribute resolution.
	if rec.TypeParams != nil {
		return nil, diagnostic.Errorf(diagnostic.CodeUnsupportedGenerics, *rec.TypeParams,
			"extractor generation doesn't support generic types")
	}

	cfg, err := attr.Resolve(rec.Annotations)
	if err != nil {
		return nil, err
	}

	if cfg.Via != nil {
		return expandDelegated(rec, cfg.Via)
	}

	return expandPerField(rec)
}

// expandDelegated plans whole-record extraction through the container's
// adapter type.
func expandDelegated(rec *analyze.RecordDefinition, via *attr.Via) (*Implementation, error) {
	// Field-level adapters are mutually exclusive with a container-level
	// one. The resolved values are unused; this pass only rejects
	// contradictory configuration, and must not be skipped.
	for i := range rec.Fields {
		fieldCfg, err := attr.Resolve(rec.Fields[i].Annotations)
		if err != nil {
			return nil, err
		}

		if fieldCfg.Via != nil {
			return nil, diagnostic.Errorf(diagnostic.CodeConflictingAdapterConfig, fieldCfg.Via.Pos,
				"`via(...)` on a field cannot be used together with `via(...)` on the container")
		}
	}

	return &Implementation{
		Record:        rec,
		Strategy:      StrategyDelegated,
		AdapterPath:   via.Path,
		RejectionExpr: via.Path + "[" + rec.Name + "]'s extraction error",
	}, nil
}

// expandPerField plans independent extraction of every field in
// declaration order.
func expandPerField(rec *analyze.RecordDefinition) (*Implementation, error) {
	impl := &Implementation{
		Record:        rec,
		Strategy:      StrategyPerField,
		RejectionExpr: "*extract.Response",
	}

	for _, field := range rec.Fields {
		fieldCfg, err := attr.Resolve(field.Annotations)
		if err != nil {
			return nil, err
		}

		unwrap := Unwrap{Mode: UnwrapIdentity}
		if fieldCfg.Via != nil {
			unwrap = Unwrap{Mode: UnwrapVia, Path: fieldCfg.Via.Path}
		}

		impl.Steps = append(impl.Steps, FieldStep{
			Member:   field.Member,
			TypeExpr: field.TypeExpr,
			Unwrap:   unwrap,
		})
	}

	return impl, nil
}
