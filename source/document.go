package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tsawler/tabextract/model"
)

// Document is a JSON token document: the output of an external text-layer
// extractor and ruling detector, one entry per page.
//
//	{"pages": [{"number": 1, "width": 612, "height": 792,
//	            "tokens": [{"text": "Name", "left": 0, "top": 0, "right": 40, "bottom": 10}],
//	            "rulings": [{"orientation": "horizontal", "position": 12, "start": 0, "end": 130}],
//	            "ruling_scale": 1}]}
//
// Rulings may be stored in raster space; RulingScale converts them to page
// space and defaults to 1.
type Document struct {
	Pages []DocumentPage `json:"pages"`
}

// DocumentPage is one page of a Document.
type DocumentPage struct {
	Number      int               `json:"number"`
	Width       float64           `json:"width,omitempty"`
	Height      float64           `json:"height,omitempty"`
	Tokens      []model.TextToken `json:"tokens"`
	Rulings     []model.Ruling    `json:"rulings,omitempty"`
	RulingScale float64           `json:"ruling_scale,omitempty"`
}

// ParseDocument validates data against the document schema, decodes it and
// checks every token.
func ParseDocument(data []byte) (*Document, error) {
	if err := validateDocument(data); err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	seen := make(map[int]bool, len(doc.Pages))
	for _, p := range doc.Pages {
		if seen[p.Number] {
			return nil, fmt.Errorf("%w: page %d appears more than once", ErrSchema, p.Number)
		}
		seen[p.Number] = true
		if err := model.ValidateTokens(p.Tokens); err != nil {
			return nil, fmt.Errorf("page %d: %w", p.Number, err)
		}
	}
	return &doc, nil
}

// ReadDocument reads and parses a document from r.
func ReadDocument(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return ParseDocument(data)
}

// LoadDocument reads and parses the document file at path.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return ParseDocument(data)
}

// Encode writes the document as indented JSON.
func (d *Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// AddPage appends a page built from p.
func (d *Document) AddPage(p *model.Page) {
	tokens := p.Tokens
	if tokens == nil {
		// the schema requires an array
		tokens = []model.TextToken{}
	}
	d.Pages = append(d.Pages, DocumentPage{
		Number:  p.Number,
		Width:   p.Width,
		Height:  p.Height,
		Tokens:  tokens,
		Rulings: p.Rulings,
	})
}

// Page returns the numbered page with its rulings converted to page space.
// Token text is normalized the way PDF words are, and tokens left with no
// text are dropped.
func (d *Document) Page(number int) (*model.Page, error) {
	for _, dp := range d.Pages {
		if dp.Number != number {
			continue
		}
		page := model.NewPage(dp.Number, dp.Width, dp.Height)
		for _, t := range NormalizeTokens(dp.Tokens) {
			page.AddToken(t)
		}
		scale := dp.RulingScale
		if scale == 0 {
			scale = 1
		}
		rulings, err := NormalizeRulings(dp.Rulings, scale)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", number, err)
		}
		for _, r := range rulings {
			page.AddRuling(r)
		}
		return page, nil
	}
	return nil, fmt.Errorf("%w: page %d not in document", ErrPageOutOfRange, number)
}

// Tokens returns the tokens of the page intersecting the region.
func (d *Document) Tokens(ctx context.Context, region Region) ([]model.TextToken, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page, err := d.Page(region.Page)
	if err != nil {
		return nil, err
	}
	return page.TokensInRegion(region.Area), nil
}

// Rulings returns the page's rulings in page space.
func (d *Document) Rulings(ctx context.Context, page int) ([]model.Ruling, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := d.Page(page)
	if err != nil {
		return nil, err
	}
	return p.Rulings, nil
}

// PageCount returns the number of pages in the document. Page numbers need
// not be contiguous, so Page is the check for whether a number exists.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// PageSize returns the recorded page dimensions, which are zero when the
// extractor did not supply them.
func (d *Document) PageSize(page int) (width, height float64, err error) {
	p, err := d.Page(page)
	if err != nil {
		return 0, 0, err
	}
	return p.Width, p.Height, nil
}

// Close is a no-op; a document is held in memory.
func (d *Document) Close() error {
	return nil
}
