// Package main provides the CLI entrypoint for extractor-gen.
//
// extractor-gen generates FromRequest extractor implementations for
// annotated struct types: it loads the configured packages, expands each
// configured record into an implementation plan (per-field extraction or
// whole-record delegation through an adapter type), and writes one
// generated file per record into the record's own package.
package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/davecgh/go-spew/spew"
	"golang.org/x/sync/errgroup"

	"extractor-generator/internal/analyze"
	"extractor-generator/internal/config"
	"extractor-generator/internal/diagnostic"
	"extractor-generator/internal/gen"
	"extractor-generator/internal/plan"
)

func main() {
	cfgPath := flag.String("config", "extractors.yaml", "path to the generator config file")
	dump := flag.Bool("dump", false, "dump resolved implementation plans instead of writing files")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "extractor-gen",
	})

	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	if err := run(logger, *cfgPath, *dump); err != nil {
		logger.Fatal(err)
	}
}

func run(logger *log.Logger, cfgPath string, dump bool) error {
	cfg, err := config.LoadFile(cfgPath)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Debug("loading packages", "patterns", cfg.Packages)

	catalog, err := analyze.LoadPackages(cfg.Packages...)
	if err != nil {
		return err
	}

	logger.Debug("cataloged records", "count", len(catalog.Records))

	generator := gen.NewGenerator(gen.GeneratorConfig{
		Suffix:           cfg.Output.Suffix,
		GenerateComments: cfg.Output.CommentsEnabled(),
	})

	impls := make([]*plan.Implementation, len(cfg.Extractors))
	files := make([]*gen.GeneratedFile, len(cfg.Extractors))
	errs := make([]error, len(cfg.Extractors))

	// Records share no state, so expansion and rendering run concurrently.
	// Every record's diagnostic is collected, not just the first.
	var eg errgroup.Group

	for i, name := range cfg.Extractors {
		i, name := i, name

		eg.Go(func() error {
			errs[i] = generateOne(catalog, generator, name, impls, files, i)
			return nil
		})
	}

	_ = eg.Wait()

	var ds diagnostic.Diagnostics
	for _, err := range errs {
		ds.Add(err)
	}

	if ds.HasErrors() {
		for _, d := range ds.Errors {
			logger.Error(d.String())
		}

		return ds.Error()
	}

	if dump {
		for _, impl := range impls {
			spew.Fdump(os.Stdout, impl)
		}

		return nil
	}

	out := make([]gen.GeneratedFile, 0, len(files))

	for i, file := range files {
		logger.Info("generated",
			"type", cfg.Extractors[i],
			"strategy", impls[i].Strategy.String(),
			"file", file.Filename)

		out = append(out, *file)
	}

	return gen.WriteFiles(out)
}

// generateOne expands and renders a single configured record.
func generateOne(
	catalog *analyze.Catalog,
	generator *gen.Generator,
	name string,
	impls []*plan.Implementation,
	files []*gen.GeneratedFile,
	i int,
) error {
	rec, err := catalog.Lookup(name)
	if err != nil {
		return err
	}

	impl, err := plan.Expand(rec)
	if err != nil {
		return err
	}

	impls[i] = impl

	file, err := generator.Generate(impl)
	if err != nil {
		return err
	}

	files[i] = file

	return nil
}
