package analyze

import (
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"strconv"
	"strings"

	"extractor-generator/internal/common"
)

// RecordsFromFiles builds record definitions from the parsed files of one
// package. It is the AST half of discovery, split from the package loader
// so it can run on any parsed input.
func RecordsFromFiles(fset *token.FileSet, pkgPath, pkgName string, files []*ast.File) []*RecordDefinition {
	var records []*RecordDefinition

	for _, file := range files {
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}

			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				structType, ok := typeSpec.Type.(*ast.StructType)
				if !ok {
					continue
				}

				rec := buildRecord(fset, pkgPath, pkgName, genDecl, typeSpec, structType)
				rec.Imports = fileImports(file)
				records = append(records, rec)
			}
		}
	}

	return records
}

// buildRecord constructs a RecordDefinition from one struct type spec.
func buildRecord(
	fset *token.FileSet,
	pkgPath, pkgName string,
	genDecl *ast.GenDecl,
	typeSpec *ast.TypeSpec,
	structType *ast.StructType,
) *RecordDefinition {
	pos := fset.Position(typeSpec.Pos())

	rec := &RecordDefinition{
		Name:    typeSpec.Name.Name,
		PkgPath: pkgPath,
		PkgName: pkgName,
		Dir:     filepath.Dir(pos.Filename),
		Pos:     pos,
	}

	// The doc comment attaches to the GenDecl for single-spec declarations
	// and to the TypeSpec inside grouped ones.
	rec.Annotations = commentAnnotations(fset, genDecl.Doc, typeSpec.Doc)

	if typeSpec.TypeParams != nil {
		tpPos := fset.Position(typeSpec.TypeParams.Pos())
		rec.TypeParams = &tpPos
	}

	index := 0

	for _, field := range structType.Fields.List {
		annotations := commentAnnotations(fset, field.Doc, field.Comment)
		typeExpr := types.ExprString(field.Type)
		fieldPos := fset.Position(field.Pos())

		if len(field.Names) == 0 {
			// Embedded field: no explicit name, addressed by index.
			rec.Fields = append(rec.Fields, Field{
				Member:      Member{Index: index},
				TypeExpr:    typeExpr,
				Annotations: annotations,
				Pos:         fieldPos,
			})
			index++

			continue
		}

		for _, name := range field.Names {
			rec.Fields = append(rec.Fields, Field{
				Member:      Member{Name: name.Name, Index: index},
				TypeExpr:    typeExpr,
				Annotations: annotations,
				Pos:         fset.Position(name.Pos()),
			})
			index++
		}
	}

	return rec
}

// fileImports maps package qualifiers to import paths for one file.
// Blank and dot imports carry no usable qualifier and are skipped.
func fileImports(file *ast.File) map[string]string {
	imports := make(map[string]string, len(file.Imports))

	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		qualifier := common.PkgAlias(path)
		if spec.Name != nil {
			if spec.Name.Name == "_" || spec.Name.Name == "." {
				continue
			}

			qualifier = spec.Name.Name
		}

		imports[qualifier] = path
	}

	return imports
}

// commentAnnotations flattens comment groups into annotation values in
// declaration order. Only line comments can carry directives; block
// comments never do, so they are dropped here.
func commentAnnotations(fset *token.FileSet, groups ...*ast.CommentGroup) []Annotation {
	var annotations []Annotation

	for _, group := range groups {
		if group == nil {
			continue
		}

		for _, comment := range group.List {
			if !strings.HasPrefix(comment.Text, "//") {
				continue
			}

			annotations = append(annotations, Annotation{
				Text: comment.Text[len("//"):],
				Pos:  fset.Position(comment.Slash),
			})
		}
	}

	return annotations
}
