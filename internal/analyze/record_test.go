package analyze

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"
)

const sampleSource = `package api

import (
	stdjson "encoding/json"
	"time"
)

//extract:via(JSON)
type Baz struct {
	A time.Time
	B stdjson.RawMessage
}

// Foo carries one request's worth of input.
type Foo struct {
	Name string //extract:via(JSON)
	Age  int

	// Meta is embedded.
	Meta
	X, Y int
}

type Box[T any] struct {
	V T
}

type NotAStruct int
`

func parseSample(t *testing.T) []*RecordDefinition {
	t.Helper()

	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, "types.go", sampleSource, parser.ParseComments)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	return RecordsFromFiles(fset, "example.com/api", "api", []*ast.File{file})
}

func TestRecordsFromFiles(t *testing.T) {
	records := parseSample(t)

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	baz, foo, box := records[0], records[1], records[2]

	if baz.Name != "Baz" || foo.Name != "Foo" || box.Name != "Box" {
		t.Fatalf("unexpected record order: %s, %s, %s", baz.Name, foo.Name, box.Name)
	}

	// Container annotations come from the doc comment.
	if len(baz.Annotations) != 1 {
		t.Fatalf("expected 1 annotation on Baz, got %d", len(baz.Annotations))
	}

	if baz.Annotations[0].Text != "extract:via(JSON)" {
		t.Errorf("unexpected annotation text %q", baz.Annotations[0].Text)
	}

	if baz.Annotations[0].Pos.Line != 8 {
		t.Errorf("expected annotation at line 8, got %d", baz.Annotations[0].Pos.Line)
	}

	// Imports are resolved with aliases.
	if baz.Imports["stdjson"] != "encoding/json" {
		t.Errorf("expected stdjson alias, got %v", baz.Imports)
	}

	if baz.Imports["time"] != "time" {
		t.Errorf("expected time import, got %v", baz.Imports)
	}

	if baz.TypeParams != nil {
		t.Error("Baz is not generic")
	}

	if box.TypeParams == nil {
		t.Error("Box is generic, TypeParams should be set")
	}
}

func TestRecordFields(t *testing.T) {
	foo := parseSample(t)[1]

	want := []struct {
		name     string
		index    int
		typeExpr string
	}{
		{"Name", 0, "string"},
		{"Age", 1, "int"},
		{"", 2, "Meta"}, // embedded, addressed by index
		{"X", 3, "int"},
		{"Y", 4, "int"},
	}

	if len(foo.Fields) != len(want) {
		t.Fatalf("expected %d fields, got %d", len(want), len(foo.Fields))
	}

	for i, w := range want {
		f := foo.Fields[i]

		if f.Member.Name != w.name || f.Member.Index != w.index {
			t.Errorf("field %d: got member %s/%d, want %s/%d",
				i, f.Member.Name, f.Member.Index, w.name, w.index)
		}

		if f.TypeExpr != w.typeExpr {
			t.Errorf("field %d: got type %q, want %q", i, f.TypeExpr, w.typeExpr)
		}
	}

	if foo.Fields[2].Member.Named() {
		t.Error("embedded member should not be named")
	}

	// The line comment on Name is a field-level annotation.
	if len(foo.Fields[0].Annotations) != 1 {
		t.Fatalf("expected 1 annotation on Name, got %d", len(foo.Fields[0].Annotations))
	}

	if foo.Fields[0].Annotations[0].Text != "extract:via(JSON)" {
		t.Errorf("unexpected field annotation %q", foo.Fields[0].Annotations[0].Text)
	}

	// X and Y share a declaration but are distinct members.
	if foo.Fields[3].Member.Name != "X" || foo.Fields[4].Member.Name != "Y" {
		t.Error("shared declarations should produce one member per name")
	}
}

func TestMemberString(t *testing.T) {
	named := Member{Name: "Body", Index: 1}
	if named.String() != "Body" {
		t.Errorf("got %q", named.String())
	}

	embedded := Member{Index: 2}
	if embedded.String() != "#2" {
		t.Errorf("got %q", embedded.String())
	}
}

func TestCatalogLookup(t *testing.T) {
	catalog := NewCatalog()
	catalog.Add(&RecordDefinition{Name: "Foo", PkgPath: "example.com/a/api", PkgName: "api"})
	catalog.Add(&RecordDefinition{Name: "Foo", PkgPath: "example.com/b/api", PkgName: "api"})
	catalog.Add(&RecordDefinition{Name: "Bar", PkgPath: "example.com/a/api", PkgName: "api"})

	rec, err := catalog.Lookup("api.Bar")
	if err != nil {
		t.Fatalf("short lookup failed: %v", err)
	}

	if rec.Name != "Bar" {
		t.Errorf("got %q", rec.Name)
	}

	if _, err := catalog.Lookup("api.Foo"); err == nil {
		t.Error("ambiguous short name should fail")
	}

	rec, err = catalog.Lookup("example.com/b/api.Foo")
	if err != nil {
		t.Fatalf("full lookup failed: %v", err)
	}

	if rec.PkgPath != "example.com/b/api" {
		t.Errorf("got %q", rec.PkgPath)
	}

	if _, err := catalog.Lookup("api.Missing"); err == nil {
		t.Error("unknown type should fail")
	}
}
