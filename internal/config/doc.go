// Package config loads the YAML configuration that drives a generation
// run: which packages to load, which record types get extractors, and
// how output files are named.
package config
