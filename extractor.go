package tabextract

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tsawler/tabextract/export"
	"github.com/tsawler/tabextract/model"
	"github.com/tsawler/tabextract/source"
	"github.com/tsawler/tabextract/tables"
)

// Extractor provides a fluent interface for rebuilding one table.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Input: a file name, an opened source or in-memory tokens
	filename string
	source   source.Source
	tokens   []model.TextToken
	inMemory bool

	// Lifecycle
	ownsSource   bool // true if we opened the source and should close it
	sourceOpened bool

	options ExtractOptions

	// Accumulated error (fail-fast)
	err error

	warnings []Warning
}

// Result is the outcome of one extraction: the table plus the tokens and
// rulings it was built from.
type Result struct {
	Page    int
	Table   *model.Table
	Tokens  []model.TextToken
	Rulings []model.Ruling
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:     e.filename,
		source:       e.source,
		tokens:       e.tokens,
		inMemory:     e.inMemory,
		ownsSource:   e.ownsSource,
		sourceOpened: e.sourceOpened,
		options:      e.options.clone(),
		err:          e.err,
		warnings:     append([]Warning(nil), e.warnings...),
	}
}

// ensureSource opens the source if not already open.
func (e *Extractor) ensureSource() error {
	if e.sourceOpened {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	src, err := source.Open(e.filename, e.options.logger)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", e.filename, err)
	}
	e.source = src
	e.ownsSource = true
	e.sourceOpened = true
	return nil
}

// Close releases resources associated with the Extractor.
// It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if e.ownsSource && e.source != nil {
		err := e.source.Close()
		e.source = nil
		e.ownsSource = false
		e.sourceOpened = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration (each returns a new Extractor)
// ============================================================================

// Page selects the 1-indexed page to read. The default is page 1.
func (e *Extractor) Page(n int) *Extractor {
	newExt := e.clone()
	if n < 1 {
		newExt.err = fmt.Errorf("page %d: %w", n, source.ErrPageOutOfRange)
		return newExt
	}
	newExt.options.page = n
	return newExt
}

// Region limits extraction to tokens intersecting the rectangle spanned by
// the two corners, in page coordinates with a top-left origin.
func (e *Extractor) Region(x1, y1, x2, y2 float64) *Extractor {
	newExt := e.clone()
	area := source.NewRegion(1, x1, y1, x2, y2).Area
	if area.IsEmpty() {
		newExt.err = fmt.Errorf("region (%g,%g)-(%g,%g) has no area", x1, y1, x2, y2)
		return newExt
	}
	newExt.options.area = area
	return newExt
}

// UseLines makes ruling lines the row and column boundaries. Rulings given
// with Rulings take precedence; otherwise they are read from the source.
func (e *Extractor) UseLines() *Extractor {
	newExt := e.clone()
	newExt.options.useLines = true
	return newExt
}

// Rulings supplies ruling lines in page space and implies UseLines.
// Rulings from a raster image must go through source.NormalizeRulings first.
func (e *Extractor) Rulings(rulings ...model.Ruling) *Extractor {
	newExt := e.clone()
	newExt.options.useLines = true
	newExt.options.rulings = append([]model.Ruling(nil), rulings...)
	return newExt
}

// WithConfig replaces the engine thresholds. An invalid config is reported
// by the terminal operation.
func (e *Extractor) WithConfig(cfg tables.Config) *Extractor {
	newExt := e.clone()
	if err := cfg.Validate(); err != nil {
		newExt.err = err
		return newExt
	}
	newExt.options.config = cfg
	return newExt
}

// WithLogger sets the logger used by the extractor and the sources it
// opens. A nil logger uses slog.Default().
func (e *Extractor) WithLogger(logger *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = logger
	return newExt
}

// Context sets the context checked while reading tokens and rulings.
func (e *Extractor) Context(ctx context.Context) *Extractor {
	newExt := e.clone()
	newExt.options.ctx = ctx
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Table rebuilds the table for the selected page and region. This is a
// terminal operation that closes a source opened by the Extractor.
//
// Example:
//
//	table, warnings, err := tabextract.Open("invoice.pdf").UseLines().Table()
func (e *Extractor) Table() (*model.Table, []Warning, error) {
	res, warnings, err := e.Result()
	if err != nil {
		return nil, warnings, err
	}
	return res.Table, warnings, nil
}

// Export rebuilds the table and serializes it in the given format.
//
// Example:
//
//	data, _, err := tabextract.Open("invoice.pdf").Export(export.CSV)
func (e *Extractor) Export(f export.Format) ([]byte, []Warning, error) {
	res, warnings, err := e.Result()
	if err != nil {
		return nil, warnings, err
	}
	data, err := export.Serialize(res.Table, f)
	if err != nil {
		return nil, warnings, err
	}
	return data, warnings, nil
}

// Result rebuilds the table and also returns the tokens and rulings that
// produced it.
func (e *Extractor) Result() (*Result, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	// Work on a copy so repeated or concurrent calls do not share warnings.
	// A source opened before this call stays with its owner.
	e = e.clone()
	e.ownsSource = false
	if err := e.ensureSource(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	ctx := e.options.context()
	page := e.options.pageNumber()
	// In-memory tokens are page 1. Sources decide for themselves, since page
	// numbers in a token document need not start at 1 or be contiguous.
	if e.inMemory && page > 1 {
		return nil, nil, fmt.Errorf("page %d out of range (1-1): %w", page, source.ErrPageOutOfRange)
	}

	tokens, rulings, err := e.readPage(ctx, page)
	if err != nil {
		return nil, nil, fmt.Errorf("page %d: %w", page, err)
	}
	if e.options.useLines {
		e.checkRulings(page, rulings)
	}

	strategy := tables.Infer()
	if len(rulings) > 0 {
		strategy = tables.UseRulings(rulings)
	}

	table, err := tables.Reconstruct(tokens, strategy, strategy, e.options.config)
	if err != nil {
		return nil, nil, fmt.Errorf("page %d: %w", page, err)
	}
	e.checkTable(page, table, len(tokens))

	e.options.log().Debug("extract.table.ok",
		"page", page,
		"tokens", len(tokens),
		"rulings", len(rulings),
		"rows", table.RowCount(),
		"cols", table.ColCount(),
		"ruled", table.IsRuled(),
	)

	return &Result{
		Page:    page,
		Table:   table,
		Tokens:  tokens,
		Rulings: rulings,
	}, e.warnings, nil
}

// PageCount returns the number of pages in the input. In-memory tokens
// count as one page. This does NOT close the source.
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.ensureSource(); err != nil {
		return 0, err
	}
	return e.pageCount(), nil
}

// ============================================================================
// Internal helpers
// ============================================================================

func (e *Extractor) pageCount() int {
	if e.inMemory {
		return 1
	}
	return e.source.PageCount()
}

// pageReader is a source that extracts a whole page at once. Reading tokens
// and rulings through it parses the page a single time.
type pageReader interface {
	Page(ctx context.Context, number int) (*model.Page, error)
}

// readPage returns the page's tokens inside the region and, with UseLines,
// its rulings.
func (e *Extractor) readPage(ctx context.Context, page int) ([]model.TextToken, []model.Ruling, error) {
	if pr, ok := e.source.(pageReader); ok && !e.inMemory && e.options.useLines && e.options.rulings == nil {
		p, err := pr.Page(ctx, page)
		if err != nil {
			return nil, nil, err
		}
		return source.FilterRegion(p.Tokens, e.options.area), clipRulings(p.Rulings, e.options.area), nil
	}

	tokens, err := e.readTokens(ctx, page)
	if err != nil {
		return nil, nil, err
	}
	if !e.options.useLines {
		return tokens, nil, nil
	}
	rulings, err := e.readRulings(ctx, page)
	if err != nil {
		return nil, nil, err
	}
	return tokens, rulings, nil
}

func (e *Extractor) readTokens(ctx context.Context, page int) ([]model.TextToken, error) {
	if e.inMemory {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return source.FilterRegion(e.tokens, e.options.area), nil
	}
	return e.source.Tokens(ctx, source.Region{Page: page, Area: e.options.area})
}

// readRulings returns the explicit rulings, or the source's rulings for the
// page, clipped to the region.
func (e *Extractor) readRulings(ctx context.Context, page int) ([]model.Ruling, error) {
	rulings := e.options.rulings
	if rulings == nil && !e.inMemory {
		var err error
		rulings, err = e.source.Rulings(ctx, page)
		if err != nil {
			return nil, err
		}
	}
	return clipRulings(rulings, e.options.area), nil
}

// clipRulings keeps rulings whose position falls inside area. A nil area
// keeps all of them.
func clipRulings(rulings []model.Ruling, area *model.BBox) []model.Ruling {
	if area == nil {
		return rulings
	}
	var kept []model.Ruling
	for _, r := range rulings {
		low, high := area.Left(), area.Right()
		if r.IsHorizontal() {
			low, high = area.Top(), area.Bottom()
		}
		if r.Position >= low && r.Position <= high {
			kept = append(kept, r)
		}
	}
	return kept
}

func (e *Extractor) checkRulings(page int, rulings []model.Ruling) {
	h := len(model.HorizontalRulings(rulings))
	v := len(model.VerticalRulings(rulings))
	switch {
	case h == 0 && v == 0:
		e.warnings = append(e.warnings, Warning{
			Kind:    WarningNoRulings,
			Page:    page,
			Message: "ruling lines requested but none found; boundaries were inferred",
		})
	case h == 0 || v == 0:
		missing := "row"
		if v == 0 {
			missing = "column"
		}
		e.warnings = append(e.warnings, Warning{
			Kind:    WarningPartialRulings,
			Page:    page,
			Message: fmt.Sprintf("no %s rulings found; %s boundaries were inferred", missing, missing),
		})
	}
}

func (e *Extractor) checkTable(page int, table *model.Table, tokens int) {
	if tokens == 0 {
		e.warnings = append(e.warnings, Warning{
			Kind:    WarningEmptyRegion,
			Page:    page,
			Message: "no tokens in the selected region",
		})
		return
	}
	if table.RowCount()*table.ColCount() > 1 && table.Occupancy() < sparseOccupancy {
		e.warnings = append(e.warnings, Warning{
			Kind:    WarningSparseTable,
			Page:    page,
			Message: fmt.Sprintf("only %.0f%% of cells hold text", table.Occupancy()*100),
		})
	}
}
