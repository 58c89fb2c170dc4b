// Package gen renders extractor implementation plans to Go source.
//
// Generation approach uses text/template + go/format for readable,
// deterministic output: sorted imports, stable local names, and one
// file per record written into the record's own package.
package gen
