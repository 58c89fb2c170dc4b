package analyze

import (
	"fmt"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// LoadPackages loads the specified packages and catalogs every struct
// type found in them. Patterns are standard Go package patterns
// (e.g., "./...", "extractor-generator/examples/api").
func LoadPackages(patterns ...string) (*Catalog, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	catalog := NewCatalog()

	for _, pkg := range pkgs {
		for _, rec := range RecordsFromFiles(pkg.Fset, pkg.PkgPath, pkg.Name, pkg.Syntax) {
			catalog.Add(rec)
		}
	}

	return catalog, nil
}
