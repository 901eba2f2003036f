// Package export serializes reconstructed tables.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnknownFormat is returned for a format name or value with no serializer.
var ErrUnknownFormat = errors.New("unknown output format")

// Format represents a supported output format.
type Format int

const (
	// JSON is a row-major array of arrays of cell text. It is the default.
	JSON Format = iota
	// CSV is comma-separated values.
	CSV
	// TSV is tab-separated values.
	TSV
	// Markdown is a pipe table with the first row as header.
	Markdown
	// HTML is a single <table> element.
	HTML
	// XLSX is an Excel workbook with one sheet.
	XLSX
)

var formatNames = map[Format]string{
	JSON:     "json",
	CSV:      "csv",
	TSV:      "tsv",
	Markdown: "markdown",
	HTML:     "html",
	XLSX:     "xlsx",
}

// String returns the lower-case name of the format.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case JSON:
		return ".json"
	case CSV:
		return ".csv"
	case TSV:
		return ".tsv"
	case Markdown:
		return ".md"
	case HTML:
		return ".html"
	case XLSX:
		return ".xlsx"
	default:
		return ""
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case JSON:
		return "application/json"
	case CSV:
		return "text/csv"
	case TSV:
		return "text/tab-separated-values"
	case Markdown:
		return "text/markdown"
	case HTML:
		return "text/html"
	case XLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

// ParseFormat resolves a format name, case-insensitively. An empty name
// selects JSON.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return JSON, nil
	case "csv":
		return CSV, nil
	case "tsv", "tab":
		return TSV, nil
	case "markdown", "md":
		return Markdown, nil
	case "html", "htm":
		return HTML, nil
	case "xlsx", "excel":
		return XLSX, nil
	}
	return JSON, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Detect determines the output format from a filename extension. The second
// result is false when the extension is not recognized.
func Detect(filename string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return JSON, true
	case ".csv":
		return CSV, true
	case ".tsv", ".tab":
		return TSV, true
	case ".md", ".markdown":
		return Markdown, true
	case ".html", ".htm":
		return HTML, true
	case ".xlsx":
		return XLSX, true
	default:
		return JSON, false
	}
}
