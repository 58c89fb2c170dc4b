// Package plan turns record definitions into extractor implementation
// plans. It selects between the per-field and delegated strategies from
// the container's adapter configuration, validates the mutual exclusion
// of container-level and field-level adapters, and produces a pure data
// tree for the gen package to render.
package plan
