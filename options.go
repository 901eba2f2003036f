package tabextract

import (
	"context"
	"log/slog"

	"github.com/tsawler/tabextract/model"
	"github.com/tsawler/tabextract/tables"
)

// ExtractOptions holds configuration for one extraction.
type ExtractOptions struct {
	// 1-indexed; 0 means the first page
	page int

	// nil means the whole page
	area *model.BBox

	// Ruling lines
	useLines bool
	rulings  []model.Ruling

	config tables.Config
	logger *slog.Logger
	ctx    context.Context
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		config: tables.DefaultConfig(),
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		page:     o.page,
		useLines: o.useLines,
		config:   o.config,
		logger:   o.logger,
		ctx:      o.ctx,
	}

	if o.area != nil {
		area := *o.area
		newOpts.area = &area
	}
	if o.rulings != nil {
		newOpts.rulings = make([]model.Ruling, len(o.rulings))
		copy(newOpts.rulings, o.rulings)
	}

	return newOpts
}

// pageNumber returns the selected page, defaulting to 1.
func (o ExtractOptions) pageNumber() int {
	if o.page == 0 {
		return 1
	}
	return o.page
}

func (o ExtractOptions) context() context.Context {
	if o.ctx == nil {
		return context.Background()
	}
	return o.ctx
}

func (o ExtractOptions) log() *slog.Logger {
	if o.logger == nil {
		return slog.Default()
	}
	return o.logger
}
