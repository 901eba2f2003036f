package source

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tsawler/tabextract/model"
)

var (
	// ErrPageOutOfRange is returned when a page number is not in the source.
	ErrPageOutOfRange = errors.New("page out of range")

	// ErrMalformedRuling is returned by NormalizeRulings for rulings that
	// must not reach the engine.
	ErrMalformedRuling = errors.New("malformed ruling")

	// ErrSchema is returned when a token document does not match its schema.
	ErrSchema = errors.New("document does not match schema")
)

// Region selects a page (1-indexed) and an optional rectangle on it.
// A nil Area selects the whole page.
type Region struct {
	Page int
	Area *model.BBox
}

// NewRegion returns a region covering the rectangle spanned by the two
// corners, in either order.
func NewRegion(page int, x1, y1, x2, y2 float64) Region {
	area := model.NewBBoxFromEdges(min(x1, x2), min(y1, y2), max(x1, x2), max(y1, y2))
	return Region{Page: page, Area: &area}
}

// FullPage returns a region covering the whole page.
func FullPage(page int) Region {
	return Region{Page: page}
}

// TokenSource supplies the text tokens of a page region.
type TokenSource interface {
	Tokens(ctx context.Context, region Region) ([]model.TextToken, error)
}

// RulingSource supplies ruling lines for a page, already in page space.
type RulingSource interface {
	Rulings(ctx context.Context, page int) ([]model.Ruling, error)
}

// Source is an opened input that can feed the engine.
type Source interface {
	TokenSource
	RulingSource

	// PageCount returns the number of pages.
	PageCount() int

	// PageSize returns the width and height of a page in page units.
	PageSize(page int) (width, height float64, err error)

	Close() error
}

// Open opens path as a PDF when it starts with the PDF signature and as a
// JSON token document otherwise. A nil logger uses slog.Default().
func Open(path string, logger *slog.Logger) (Source, error) {
	isPDF, err := IsPDF(path)
	if err != nil {
		return nil, err
	}
	if isPDF {
		pdf, err := OpenPDF(path, logger)
		if err != nil {
			return nil, err
		}
		return pdf, nil
	}
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FilterRegion returns the tokens intersecting area, in their original
// order. A nil area returns every token.
func FilterRegion(tokens []model.TextToken, area *model.BBox) []model.TextToken {
	if area == nil {
		return tokens
	}
	var result []model.TextToken
	for _, t := range tokens {
		if area.Intersects(t.BBox()) {
			result = append(result, t)
		}
	}
	return result
}
