// Package tabextract provides a fluent API for rebuilding tables from
// positioned text tokens.
//
// Basic usage:
//
//	table, warnings, err := tabextract.Open("invoice.pdf").Page(2).Table()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", tabextract.FormatWarnings(warnings))
//	}
//
// With options:
//
//	csv, _, err := tabextract.Open("statement.json").
//	    Page(1).
//	    Region(40, 120, 560, 700).
//	    UseLines().
//	    Export(export.CSV)
//
// Tokens already in memory skip the source layer entirely:
//
//	table := tabextract.MustTable(tabextract.FromTokens(tokens).Table())
//
// The lower-level tables, source and export packages are also available.
package tabextract

import (
	"github.com/tsawler/tabextract/model"
	"github.com/tsawler/tabextract/source"
)

// Open returns an Extractor reading from a PDF or a JSON token document.
// The file is opened lazily by the first terminal operation and closed when
// it returns.
//
// Example:
//
//	table, warnings, err := tabextract.Open("report.pdf").Table()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromSource creates an Extractor over an already-opened source.
// The caller is responsible for closing it.
//
// Example:
//
//	src, err := source.Open("report.pdf", nil)
//	if err != nil {
//	    // handle error
//	}
//	defer src.Close()
//	table, warnings, err := tabextract.FromSource(src).Page(3).Table()
func FromSource(src source.Source) *Extractor {
	return &Extractor{
		source:       src,
		ownsSource:   false,
		sourceOpened: true,
		options:      defaultOptions(),
	}
}

// FromTokens creates an Extractor over tokens held in memory. They are
// treated as a single page.
func FromTokens(tokens []model.TextToken) *Extractor {
	return &Extractor{
		tokens:       append([]model.TextToken(nil), tokens...),
		inMemory:     true,
		sourceOpened: true,
		options:      defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := tabextract.Must(tabextract.Open("document.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustTable is a helper that wraps a call to Table(), Result() or Export()
// and panics if the error is non-nil. It discards warnings.
//
// Example:
//
//	table := tabextract.MustTable(tabextract.FromTokens(tokens).Table())
func MustTable[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
