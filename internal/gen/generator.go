package gen

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"sort"
	"strings"
	"text/template"
	"unicode"

	"extractor-generator/internal/common"
	"extractor-generator/internal/plan"
)

// extractPkgPath is the import path of the generated-code contract package.
const extractPkgPath = "extractor-generator/extract"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Suffix is appended to the snake-cased type name to form the output
	// filename, e.g. "foo_extract.go".
	Suffix string
	// GenerateComments enables the doc comment on generated methods.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Suffix:           "_extract.go",
		GenerateComments: true,
	}
}

// Generator renders extractor implementations to Go source files.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the directory of the record's defining package. Methods must
	// live in the defining package, so the file is written there.
	Dir string
	// Filename is the name of the file (e.g. "foo_extract.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate renders one implementation to a formatted source file.
func (g *Generator) Generate(impl *plan.Implementation) (*GeneratedFile, error) {
	data, err := g.buildTemplateData(impl)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := extractorTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		_ = writeDebugUnformatted(impl.Record.Dir, data.Filename, buf.Bytes())

		return &GeneratedFile{
			Dir:      impl.Record.Dir,
			Filename: data.Filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code for %s: %w", impl.Record.Name, err)
	}

	return &GeneratedFile{
		Dir:      impl.Record.Dir,
		Filename: data.Filename,
		Content:  formatted,
	}, nil
}

// importSpec is one rendered import line.
type importSpec struct {
	Alias string
	Path  string
}

// templateData holds all data needed for the extractor template.
type templateData struct {
	PackageName      string
	Filename         string
	Imports          []importSpec
	TypeName         string
	Rejection        string
	Delegated        bool
	AdapterExpr      string
	Steps            []stepData
	GenerateComments bool
}

// stepData represents a single field extraction in the template.
type stepData struct {
	// Var is the local holding the extracted value (f0, f1, ...).
	Var string
	// TypeExpr is the type the extraction operation runs against: the
	// field's declared type, or an adapter wrapper instantiated at it.
	TypeExpr string
	// Name is the member name in the keyed composite literal, empty when
	// the record is assembled positionally.
	Name string
	// Value is the expression assigned into the record.
	Value string
}

// buildTemplateData constructs the template data from an implementation plan.
func (g *Generator) buildTemplateData(impl *plan.Implementation) (*templateData, error) {
	rec := impl.Record

	data := &templateData{
		PackageName:      rec.PkgName,
		Filename:         snakeCase(rec.Name) + g.config.Suffix,
		TypeName:         rec.Name,
		Rejection:        impl.RejectionExpr,
		GenerateComments: g.config.GenerateComments,
	}

	imports := map[string]importSpec{
		"context":  {Path: "context"},
		"net/http": {Path: "net/http"},
	}

	switch impl.Strategy {
	case plan.StrategyDelegated:
		data.Delegated = true
		data.AdapterExpr = impl.AdapterPath + "[" + rec.Name + "]"

		if err := g.addExprImports(data.AdapterExpr, rec.Imports, imports); err != nil {
			return nil, err
		}

	case plan.StrategyPerField:
		if err := g.buildSteps(impl, data, imports); err != nil {
			return nil, err
		}
	}

	// Convert imports map to sorted slice
	for _, imp := range imports {
		data.Imports = append(data.Imports, imp)
	}

	sort.Slice(data.Imports, func(i, j int) bool {
		return data.Imports[i].Path < data.Imports[j].Path
	})

	return data, nil
}

// buildSteps fills per-field extraction steps and their imports.
func (g *Generator) buildSteps(impl *plan.Implementation, data *templateData, imports map[string]importSpec) error {
	if len(impl.Steps) > 0 {
		// The error-conversion glue is only referenced when at least one
		// field is extracted; the unit shape must not import it.
		imports[extractPkgPath] = importSpec{Path: extractPkgPath}
	}

	// Keyed and positional composite literals cannot mix, so one unnamed
	// (embedded) member switches the whole literal to positional form.
	keyed := true
	for _, step := range impl.Steps {
		if !step.Member.Named() {
			keyed = false
			break
		}
	}

	for i, step := range impl.Steps {
		sd := stepData{
			Var:      fmt.Sprintf("f%d", i),
			TypeExpr: step.TypeExpr,
		}

		if keyed {
			sd.Name = step.Member.Name
		}

		sd.Value = sd.Var

		if step.Unwrap.Mode == plan.UnwrapVia {
			sd.TypeExpr = step.Unwrap.Path + "[" + step.TypeExpr + "]"
			sd.Value = sd.Var + ".Unwrap()"
		}

		if err := g.addExprImports(sd.TypeExpr, impl.Record.Imports, imports); err != nil {
			return err
		}

		data.Steps = append(data.Steps, sd)
	}

	return nil
}

// addExprImports re-imports every package qualifier a type expression
// references, resolving qualifiers through the record's defining file.
func (g *Generator) addExprImports(expr string, fileImports map[string]string, imports map[string]importSpec) error {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return fmt.Errorf("parsing type expression %q: %w", expr, err)
	}

	var unresolved []string

	ast.Inspect(node, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}

		qualifier, ok := sel.X.(*ast.Ident)
		if !ok {
			return true
		}

		path, ok := fileImports[qualifier.Name]
		if !ok {
			unresolved = append(unresolved, qualifier.Name)
			return true
		}

		spec := importSpec{Path: path}
		if common.PkgAlias(path) != qualifier.Name {
			spec.Alias = qualifier.Name
		}

		imports[path] = spec

		return true
	})

	if len(unresolved) > 0 {
		return fmt.Errorf("type expression %q references unknown package qualifier %q", expr, unresolved[0])
	}

	return nil
}

// snakeCase converts an exported type name to a snake_case file stem.
func snakeCase(name string) string {
	var sb strings.Builder

	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('_')
			}

			sb.WriteRune(unicode.ToLower(r))

			continue
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

var extractorTemplate = template.Must(
	template.New("extractor").
		Parse(`// Code generated by extractor-gen. DO NOT EDIT.

package {{.PackageName}}

import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})

{{if .Delegated}}{{if .GenerateComments}}// FromRequest populates {{.TypeName}} by delegating extraction of the
// whole value to {{.AdapterExpr}} and unwrapping its result.
// Rejection: {{.Rejection}}.
{{end}}func (v *{{.TypeName}}) FromRequest(ctx context.Context, r *http.Request) error {
	var w {{.AdapterExpr}}
	if err := w.FromRequest(ctx, r); err != nil {
		return err
	}
	*v = w.Unwrap()
	return nil
}
{{else}}{{if .GenerateComments}}// FromRequest populates {{.TypeName}} from the request, extracting each
// field in declaration order and short-circuiting on the first failure.
// Rejection: {{.Rejection}}.
{{end}}func (v *{{.TypeName}}) FromRequest(ctx context.Context, r *http.Request) error {
{{range .Steps}}	var {{.Var}} {{.TypeExpr}}
	if err := {{.Var}}.FromRequest(ctx, r); err != nil {
		return extract.AsResponse(err)
	}
{{end}}	*v = {{.TypeName}}{
{{range .Steps}}		{{if .Name}}{{.Name}}: {{end}}{{.Value}},
{{end}}	}
	return nil
}
{{end}}`))
