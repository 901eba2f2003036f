package tables

import (
	"github.com/tsawler/tabextract/model"
)

// Engine reconstructs tables from positioned tokens. It holds only its
// configuration, so one Engine may serve concurrent requests.
type Engine struct {
	config Config
}

// NewEngine creates an engine with default configuration.
func NewEngine() *Engine {
	return &Engine{
		config: DefaultConfig(),
	}
}

// Configure validates and sets the engine configuration.
func (e *Engine) Configure(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	e.config = config
	return nil
}

// Config returns the active configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Reconstruct runs the row segmenter, the column segmenter and the grid
// assembler. Empty input produces an empty table, not an error.
func (e *Engine) Reconstruct(tokens []model.TextToken, rows, cols Strategy) (*model.Table, error) {
	return Reconstruct(tokens, rows, cols, e.config)
}

// Reconstruct builds a table from tokens with the given per-axis strategies.
// It fails fast when cfg is invalid or a token violates its coordinate
// invariants; identical input always yields an identical table.
func Reconstruct(tokens []model.TextToken, rows, cols Strategy, cfg Config) (*model.Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := model.ValidateTokens(tokens); err != nil {
		return nil, err
	}

	rowBands := SegmentRows(tokens, rows, cfg)
	colBands := SegmentColumns(tokens, cols, cfg)

	return AssembleWithConfig(tokens, rowBands, colBands, cfg), nil
}
