package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SupportedVersion is the config schema version this build understands.
const SupportedVersion = "1"

// File represents the root of a YAML generator configuration file.
type File struct {
	// Version of the config schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Packages lists Go package patterns to load, e.g. "./...".
	Packages []string `yaml:"packages"`

	// Extractors lists the record types to generate extractors for,
	// as "pkgname.Type" or "full/import/path.Type".
	Extractors []string `yaml:"extractors"`

	// Output holds serialization options.
	Output Output `yaml:"output,omitempty"`
}

// Output configures how generated files are written.
type Output struct {
	// Suffix is appended to the snake-cased type name to form the
	// generated filename. Defaults to "_extract.go".
	Suffix string `yaml:"suffix,omitempty"`

	// Comments enables doc comments on generated methods.
	Comments *bool `yaml:"comments,omitempty"`
}

// CommentsEnabled reports whether generated methods get doc comments.
// Unset means enabled.
func (o Output) CommentsEnabled() bool {
	return o.Comments == nil || *o.Comments
}

// LoadFile loads and parses a YAML config file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a config File.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = SupportedVersion
	}

	if len(f.Packages) == 0 {
		f.Packages = []string{"./..."}
	}

	if f.Output.Suffix == "" {
		f.Output.Suffix = "_extract.go"
	}
}

// Validate checks the config for structural problems.
func (f *File) Validate() error {
	if f.Version != SupportedVersion {
		return fmt.Errorf("unsupported config version %q, want %q", f.Version, SupportedVersion)
	}

	if len(f.Extractors) == 0 {
		return fmt.Errorf("config lists no extractor types")
	}

	seen := make(map[string]struct{}, len(f.Extractors))

	for _, name := range f.Extractors {
		if name == "" {
			return fmt.Errorf("empty extractor type name")
		}

		if _, ok := seen[name]; ok {
			return fmt.Errorf("duplicate extractor type %q", name)
		}

		seen[name] = struct{}{}
	}

	return nil
}
