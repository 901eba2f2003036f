package source

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Kind is the type of an input file.
type Kind int

const (
	// KindUnknown indicates an unrecognized input.
	KindUnknown Kind = iota
	// KindPDF indicates a PDF document.
	KindPDF
	// KindDocument indicates a JSON token document.
	KindDocument
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindPDF:
		return "PDF"
	case KindDocument:
		return "JSON"
	default:
		return "Unknown"
	}
}

var pdfMagic = []byte("%PDF")

// DetectFromMagic determines the input kind from its leading bytes.
func DetectFromMagic(data []byte) Kind {
	if bytes.HasPrefix(data, pdfMagic) {
		return KindPDF
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return KindDocument
	}
	return KindUnknown
}

// Detect reads the start of the file at path and reports its kind.
func Detect(path string) (Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return KindUnknown, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	magic := make([]byte, 512)
	n, err := io.ReadFull(f, magic)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return KindUnknown, fmt.Errorf("read input: %w", err)
	}
	return DetectFromMagic(magic[:n]), nil
}

// IsPDF reports whether the file at path starts with the PDF signature.
func IsPDF(path string) (bool, error) {
	kind, err := Detect(path)
	if err != nil {
		return false, err
	}
	return kind == KindPDF, nil
}
