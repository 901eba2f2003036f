package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/tabextract"
	"github.com/tsawler/tabextract/config"
	"github.com/tsawler/tabextract/debugviz"
	"github.com/tsawler/tabextract/export"
	"github.com/tsawler/tabextract/model"
	"github.com/tsawler/tabextract/source"
)

var regionFlags = []string{"x1", "y1", "x2", "y2"}

func extractAction(c *cli.Context) error {
	logger := newLogger(c).With("request_id", uuid.NewString())
	start := time.Now()

	settings, err := loadSettings(c)
	if err != nil {
		return err
	}
	format, err := outputFormat(c, settings)
	if err != nil {
		return err
	}

	src, err := openInput(c, logger)
	if err != nil {
		return err
	}
	defer src.Close()

	exts, err := buildExtractors(c, src, settings, logger)
	if err != nil {
		return err
	}
	if format == export.XLSX && len(exts) > 1 {
		return fmt.Errorf("xlsx output holds a single table; select one page")
	}

	results, warnings, err := tabextract.Batch(c.Context, exts, c.Int("jobs"))
	if err != nil {
		logger.Error("extract.failed", "error", err)
		return err
	}
	logWarnings(logger, warnings)

	var out bytes.Buffer
	for i, res := range results {
		data, err := export.Serialize(res.Table, format)
		if err != nil {
			return fmt.Errorf("page %d: %w", res.Page, err)
		}
		if i > 0 {
			out.WriteString(separator(format))
		}
		out.Write(data)
	}
	if format != export.XLSX && out.Len() > 0 {
		out.WriteByte('\n')
	}

	if png := c.String("debug-png"); png != "" {
		for _, res := range results {
			path := debugPath(png, res.Page, len(results) > 1)
			if err := writeDebugPNG(path, res); err != nil {
				return err
			}
			logger.Debug("extract.debug_png.ok", "page", res.Page, "path", path)
		}
	}

	if err := writeOutput(c, c.String("output"), out.Bytes()); err != nil {
		return err
	}

	logger.Info("extract.ok",
		"pages", len(results),
		"format", format.String(),
		"warnings", len(warnings),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// bandReport and pageReport are the YAML shape printed by inspect.
type bandReport struct {
	Low    float64 `yaml:"low"`
	High   float64 `yaml:"high"`
	Source string  `yaml:"source"`
}

type pageReport struct {
	Page      int          `yaml:"page"`
	Tokens    int          `yaml:"tokens"`
	Rulings   int          `yaml:"rulings"`
	Rows      []bandReport `yaml:"rows"`
	Columns   []bandReport `yaml:"columns"`
	Occupancy float64      `yaml:"occupancy"`
	Ruled     bool         `yaml:"ruled"`
	Warnings  []string     `yaml:"warnings,omitempty"`
}

func inspectAction(c *cli.Context) error {
	logger := newLogger(c).With("request_id", uuid.NewString())

	settings, err := loadSettings(c)
	if err != nil {
		return err
	}
	src, err := openInput(c, logger)
	if err != nil {
		return err
	}
	defer src.Close()

	exts, err := buildExtractors(c, src, settings, logger)
	if err != nil {
		return err
	}
	results, warnings, err := tabextract.Batch(c.Context, exts, 0)
	if err != nil {
		return err
	}

	reports := make([]pageReport, len(results))
	for i, res := range results {
		reports[i] = newPageReport(res, warnings)
	}

	var out bytes.Buffer
	enc := yaml.NewEncoder(&out)
	enc.SetIndent(2)
	if err := enc.Encode(reports); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return writeOutput(c, "", out.Bytes())
}

func newPageReport(res *tabextract.Result, warnings []tabextract.Warning) pageReport {
	report := pageReport{
		Page:      res.Page,
		Tokens:    len(res.Tokens),
		Rulings:   len(res.Rulings),
		Rows:      bandReports(res.Table.RowBands),
		Columns:   bandReports(res.Table.ColBands),
		Occupancy: res.Table.Occupancy(),
		Ruled:     res.Table.IsRuled(),
	}
	for _, w := range warnings {
		if w.Page == res.Page {
			report.Warnings = append(report.Warnings, w.Message)
		}
	}
	return report
}

func bandReports(bands []model.Band) []bandReport {
	reports := make([]bandReport, len(bands))
	for i, b := range bands {
		reports[i] = bandReport{Low: b.Low, High: b.High, Source: b.Source.String()}
	}
	return reports
}

func tokensAction(c *cli.Context) error {
	logger := newLogger(c)

	path := c.String("pdf")
	if path == "" {
		path = c.Args().First()
	}
	if path == "" {
		return fmt.Errorf("no input: pass --pdf or a file argument")
	}

	pdf, err := source.OpenPDF(path, logger)
	if err != nil {
		return err
	}
	defer pdf.Close()

	pages := c.IntSlice("page")
	if len(pages) == 0 {
		for p := 1; p <= pdf.PageCount(); p++ {
			pages = append(pages, p)
		}
	}

	doc := &source.Document{}
	for _, n := range pages {
		page, err := pdf.Page(c.Context, n)
		if err != nil {
			return err
		}
		doc.AddPage(page)
	}

	var out bytes.Buffer
	if err := doc.Encode(&out); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return writeOutput(c, c.String("output"), out.Bytes())
}

func configAction(c *cli.Context) error {
	settings, err := loadSettings(c)
	if err != nil {
		return err
	}
	return config.Write(c.App.Writer, settings)
}

// ============================================================================
// Helpers
// ============================================================================

func newLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("verbose") {
		logLevel = slog.LevelDebug
	}
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: logLevel}))
}

func loadSettings(c *cli.Context) (config.Settings, error) {
	path := c.String("config")
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// outputFormat picks --format, then the --output extension, then the
// configured default.
func outputFormat(c *cli.Context, settings config.Settings) (export.Format, error) {
	if c.IsSet("format") {
		return export.ParseFormat(c.String("format"))
	}
	if out := c.String("output"); out != "" {
		if f, ok := export.Detect(out); ok {
			return f, nil
		}
	}
	return settings.Format, nil
}

func openInput(c *cli.Context, logger *slog.Logger) (source.Source, error) {
	switch {
	case c.String("tokens") != "":
		doc, err := source.LoadDocument(c.String("tokens"))
		if err != nil {
			return nil, err
		}
		return doc, nil
	case c.String("pdf") != "":
		pdf, err := source.OpenPDF(c.String("pdf"), logger)
		if err != nil {
			return nil, err
		}
		return pdf, nil
	case c.Args().First() != "":
		return source.Open(c.Args().First(), logger)
	default:
		return nil, fmt.Errorf("no input: pass --tokens, --pdf or a file argument")
	}
}

// buildExtractors returns one extractor per requested page.
func buildExtractors(c *cli.Context, src source.Source, settings config.Settings, logger *slog.Logger) ([]*tabextract.Extractor, error) {
	base := tabextract.FromSource(src).
		WithConfig(settings.Tables).
		WithLogger(logger)

	set := 0
	for _, name := range regionFlags {
		if c.IsSet(name) {
			set++
		}
	}
	switch set {
	case 0:
	case len(regionFlags):
		base = base.Region(c.Float64("x1"), c.Float64("y1"), c.Float64("x2"), c.Float64("y2"))
	default:
		return nil, fmt.Errorf("a region needs all of --%s", strings.Join(regionFlags, ", --"))
	}

	if c.Bool("use-lines") {
		base = base.UseLines()
	}

	var raw []model.Ruling
	if path := c.String("rulings"); path != "" {
		var err error
		if raw, err = readRulings(path); err != nil {
			return nil, err
		}
	}
	rasterWidth := settings.RasterWidth
	if c.IsSet("raster-width") {
		rasterWidth = c.Int("raster-width")
	}

	pages := c.IntSlice("page")
	if len(pages) == 0 {
		pages = []int{1}
	}

	exts := make([]*tabextract.Extractor, 0, len(pages))
	for _, p := range pages {
		ext := base.Page(p)
		if raw != nil {
			rulings, err := pageRulings(src, p, raw, rasterWidth)
			if err != nil {
				return nil, err
			}
			ext = ext.Rulings(rulings...)
		}
		exts = append(exts, ext)
	}
	return exts, nil
}

// pageRulings converts raster rulings to the page space of page p.
func pageRulings(src source.Source, p int, raw []model.Ruling, rasterWidth int) ([]model.Ruling, error) {
	width, _, err := src.PageSize(p)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", p, err)
	}
	scale, err := source.RasterScale(width, rasterWidth)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", p, err)
	}
	return source.NormalizeRulings(raw, scale)
}

// readRulings reads a JSON array of rulings.
func readRulings(path string) ([]model.Ruling, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rulings: %w", err)
	}
	rulings := []model.Ruling{}
	if err := json.Unmarshal(data, &rulings); err != nil {
		return nil, fmt.Errorf("%s: %w", path, errors.Join(source.ErrMalformedRuling, err))
	}
	return rulings, nil
}

func logWarnings(logger *slog.Logger, warnings []tabextract.Warning) {
	for _, w := range warnings {
		logger.Warn("extract.warning", "page", w.Page, "kind", w.Kind.String(), "message", w.Message)
	}
}

// separator goes between the tables of several pages.
func separator(f export.Format) string {
	if f == export.JSON {
		return "\n"
	}
	return "\n\n"
}

// debugPath adds the page number to path when several pages are drawn.
func debugPath(path string, page int, multi bool) string {
	if !multi {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-p%d%s", strings.TrimSuffix(path, ext), page, ext)
}

func writeDebugPNG(path string, res *tabextract.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create debug png: %w", err)
	}
	opts := debugviz.Options{Labels: true, ShadeEmpty: true}
	if err := debugviz.WritePNG(f, res.Table, res.Tokens, res.Rulings, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeOutput(c *cli.Context, path string, data []byte) error {
	if path == "" {
		_, err := c.App.Writer.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
