package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	lpdf "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/tsawler/tabextract/model"
)

// PDFFile reads word tokens and vector rulings from a PDF text layer.
// Scanned pages without a text layer yield no tokens. It is safe for
// concurrent use; content stream reads are serialized.
type PDFFile struct {
	mu     sync.Mutex
	path   string
	file   io.Closer
	reader *lpdf.Reader
	sizes  []pageSize
	logger *slog.Logger
}

type pageSize struct {
	width, height float64
}

// OpenPDF validates the PDF at path and opens it for extraction. A nil
// logger uses slog.Default().
func OpenPDF(path string, logger *slog.Logger) (*PDFFile, error) {
	if logger == nil {
		logger = slog.Default()
	}

	sizes, err := readPageSizes(path)
	if err != nil {
		return nil, err
	}

	f, r, err := lpdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	logger.Debug("pdf.open.ok", "path", path, "pages", len(sizes))
	return &PDFFile{
		path:   path,
		file:   f,
		reader: r,
		sizes:  sizes,
		logger: logger,
	}, nil
}

// readPageSizes validates the file and returns the MediaBox size of every
// page, including inherited boxes.
func readPageSizes(path string) ([]pageSize, error) {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pdf context: %w", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("invalid pdf: %w", err)
	}

	sizes := make([]pageSize, ctx.PageCount)
	for i := 1; i <= ctx.PageCount; i++ {
		_, _, attrs, err := ctx.PageDict(i, false)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		// US Letter when no MediaBox is found
		size := pageSize{width: 612, height: 792}
		if attrs != nil && attrs.MediaBox != nil {
			size = pageSize{width: attrs.MediaBox.Width(), height: attrs.MediaBox.Height()}
		}
		sizes[i-1] = size
	}
	return sizes, nil
}

// PageSize returns the MediaBox dimensions of one page of the PDF at path.
func PageSize(path string, page int) (width, height float64, err error) {
	sizes, err := readPageSizes(path)
	if err != nil {
		return 0, 0, err
	}
	if page < 1 || page > len(sizes) {
		return 0, 0, fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, page, len(sizes))
	}
	s := sizes[page-1]
	return s.width, s.height, nil
}

// PageCount returns the number of pages.
func (p *PDFFile) PageCount() int {
	return len(p.sizes)
}

// PageSize returns the page dimensions in points.
func (p *PDFFile) PageSize(page int) (width, height float64, err error) {
	if page < 1 || page > len(p.sizes) {
		return 0, 0, fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, page, len(p.sizes))
	}
	s := p.sizes[page-1]
	return s.width, s.height, nil
}

// Page extracts the word tokens and vector rulings of one page.
func (p *PDFFile) Page(ctx context.Context, number int) (*model.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	width, height, err := p.PageSize(number)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	content, err := p.content(number)
	if err != nil {
		return nil, err
	}

	page := model.NewPage(number, width, height)
	for _, t := range buildWords(glyphsFromText(content.Text), height) {
		page.AddToken(t)
	}
	for _, r := range rulingsFromRects(rectsFromContent(content.Rect), height) {
		page.AddRuling(r)
	}

	p.logger.Debug("pdf.page.extracted",
		"path", p.path,
		"page", number,
		"glyphs", len(content.Text),
		"tokens", len(page.Tokens),
		"rulings", len(page.Rulings),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return page, nil
}

// content reads a page's content stream. The reader panics on malformed
// streams, so the panic is turned into an error.
func (p *PDFFile) content(number int) (content lpdf.Content, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d content: %v", number, r)
		}
	}()
	page := p.reader.Page(number)
	if page.V.IsNull() {
		return lpdf.Content{}, fmt.Errorf("%w: page %d", ErrPageOutOfRange, number)
	}
	return page.Content(), nil
}

// Tokens returns the word tokens of the page intersecting the region.
func (p *PDFFile) Tokens(ctx context.Context, region Region) ([]model.TextToken, error) {
	page, err := p.Page(ctx, region.Page)
	if err != nil {
		return nil, err
	}
	return FilterRegion(page.Tokens, region.Area), nil
}

// Rulings returns the page's vector rulings, drawn as thin rectangles.
func (p *PDFFile) Rulings(ctx context.Context, page int) ([]model.Ruling, error) {
	pg, err := p.Page(ctx, page)
	if err != nil {
		return nil, err
	}
	return pg.Rulings, nil
}

// Close releases the underlying file.
func (p *PDFFile) Close() error {
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// glyphsFromText splits multi-character runs into evenly spaced glyphs.
func glyphsFromText(texts []lpdf.Text) []glyph {
	glyphs := make([]glyph, 0, len(texts))
	for _, t := range texts {
		runes := []rune(t.S)
		if len(runes) == 0 {
			continue
		}
		w := t.W / float64(len(runes))
		for i, r := range runes {
			glyphs = append(glyphs, glyph{
				text:     string(r),
				x:        t.X + float64(i)*w,
				y:        t.Y,
				width:    w,
				fontSize: t.FontSize,
			})
		}
	}
	return glyphs
}

func rectsFromContent(rects []lpdf.Rect) []rect {
	result := make([]rect, len(rects))
	for i, r := range rects {
		result[i] = rect{minX: r.Min.X, minY: r.Min.Y, maxX: r.Max.X, maxY: r.Max.Y}
	}
	return result
}
