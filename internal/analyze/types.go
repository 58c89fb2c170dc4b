package analyze

import (
	"go/token"
	"strconv"
)

// RecordDefinition describes one struct type eligible for extractor generation.
// It is the input unit of the expansion pipeline: one definition in, one
// generated implementation (or one diagnostic) out.
type RecordDefinition struct {
	// Name is the type identifier, e.g. "Foo".
	Name string
	// PkgPath is the import path of the defining package.
	PkgPath string
	// PkgName is the package name of the defining package.
	PkgName string
	// Dir is the directory of the defining source file. Generated methods
	// must live in the defining package, so output is written here.
	Dir string
	// Fields is the ordered field sequence. Empty for the unit shape.
	Fields []Field
	// Annotations are the container-level comment directives, in
	// declaration order.
	Annotations []Annotation
	// TypeParams is the position of the type parameter list if the struct
	// is generic, nil otherwise. Generic records are rejected before any
	// attribute resolution.
	TypeParams *token.Position
	// Imports maps package qualifiers visible in the defining file to
	// import paths, so generated code can re-import what field type
	// expressions and adapter paths reference.
	Imports map[string]string
	// Pos is the position of the type declaration.
	Pos token.Position
}

// Field is one slot of a record definition.
type Field struct {
	// Member identifies the field by name, or by declaration index for
	// embedded fields.
	Member Member
	// TypeExpr is the declared type rendered as a Go expression,
	// e.g. "[]api.Tag" or "*time.Time".
	TypeExpr string
	// Annotations are the field-level comment directives.
	Annotations []Annotation
	// Pos is the position of the field declaration.
	Pos token.Position
}

// Member identifies a field either by name or by position. Embedded
// (anonymous) fields have no explicit name and are addressed by their
// declaration index.
type Member struct {
	// Name is the field name, empty for embedded fields.
	Name string
	// Index is the zero-based declaration index.
	Index int
}

// Named reports whether the member is addressed by name.
func (m Member) Named() bool {
	return m.Name != ""
}

// String returns the member's name, or its index for embedded fields.
func (m Member) String() string {
	if m.Named() {
		return m.Name
	}

	return "#" + strconv.Itoa(m.Index)
}

// Annotation is one comment line attached to a record or field. The
// attribute resolver decides whether it configures this tool or belongs
// to another one.
type Annotation struct {
	// Text is the comment text without the leading "//".
	Text string
	// Pos is the position of the comment's opening "//".
	Pos token.Position
}

// Catalog indexes the record definitions found in a set of loaded packages.
type Catalog struct {
	// Records lists all struct definitions in discovery order.
	Records []*RecordDefinition

	byID    map[string]*RecordDefinition // "pkgpath.Name"
	byShort map[string][]*RecordDefinition
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		byID:    make(map[string]*RecordDefinition),
		byShort: make(map[string][]*RecordDefinition),
	}
}

// Add registers a record definition under its full and short identifiers.
func (c *Catalog) Add(rec *RecordDefinition) {
	c.Records = append(c.Records, rec)
	c.byID[rec.PkgPath+"."+rec.Name] = rec

	short := rec.PkgName + "." + rec.Name
	c.byShort[short] = append(c.byShort[short], rec)
}

// Lookup finds a record by "pkgpath.Name" or the shorter "pkgname.Name".
// A short name matching structs in multiple packages is ambiguous.
func (c *Catalog) Lookup(name string) (*RecordDefinition, error) {
	if rec, ok := c.byID[name]; ok {
		return rec, nil
	}

	matches := c.byShort[name]

	switch len(matches) {
	case 0:
		return nil, &LookupError{Name: name, Reason: "no struct type with this name in the loaded packages"}
	case 1:
		return matches[0], nil
	default:
		return nil, &LookupError{Name: name, Reason: "ambiguous: matches structs in multiple packages, use the full import path"}
	}
}

// LookupError reports a failed catalog lookup.
type LookupError struct {
	Name   string
	Reason string
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	return "type " + e.Name + ": " + e.Reason
}
