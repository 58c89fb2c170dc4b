// Package analyze discovers record definitions in Go source.
// It uses golang.org/x/tools/go/packages with AST and go/types
// information to catalog struct types together with their comment
// directives, field members, and source positions. The AST walk is
// independent of the loader so discovery can run on any parsed input.
package analyze
