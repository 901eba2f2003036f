package tables

import (
	"errors"
	"fmt"
	"math"

	"github.com/tsawler/tabextract/model"
)

// ErrInvalidConfig is returned by Config.Validate for unusable tunables.
var ErrInvalidConfig = errors.New("invalid table config")

// Config holds the clustering thresholds. All values are in page coordinate
// units unless stated otherwise.
type Config struct {
	// Row split threshold as a multiple of the median token height
	RowGapFactor float64

	// Minimum row split threshold, guards against sub-pixel noise
	MinRowGap float64

	// Column merge threshold as a multiple of the typical character width
	ColumnProximityFactor float64

	// Character width as a fraction of font size
	CharWidthRatio float64

	// Character width used when no token carries a font size
	DefaultCharWidth float64

	// Ruling positions closer than this collapse into one boundary
	RulingEpsilon float64

	// A token center this close to a band boundary goes to the lower band
	TieEpsilon float64

	// Whether tokens continuing a phrase on the same line are kept out of
	// column start candidates. Off by default, so every left edge is a
	// candidate; turn it on for layouts with multi-word cells and wide
	// column gaps.
	MergeWords bool

	// Maximum gap between phrase tokens, as a multiple of the character width
	WordGapFactor float64
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		RowGapFactor:          0.5,
		MinRowGap:             1.0,
		ColumnProximityFactor: 3.0,
		CharWidthRatio:        0.5,
		DefaultCharWidth:      5.0,
		RulingEpsilon:         1.0,
		TieEpsilon:            0.01,
		MergeWords:            false,
		WordGapFactor:         1.0,
	}
}

// Validate reports the first tunable that is negative, NaN or infinite.
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"RowGapFactor", c.RowGapFactor},
		{"MinRowGap", c.MinRowGap},
		{"ColumnProximityFactor", c.ColumnProximityFactor},
		{"CharWidthRatio", c.CharWidthRatio},
		{"DefaultCharWidth", c.DefaultCharWidth},
		{"RulingEpsilon", c.RulingEpsilon},
		{"TieEpsilon", c.TieEpsilon},
		{"WordGapFactor", c.WordGapFactor},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number, got %v", ErrInvalidConfig, f.name, f.value)
		}
	}
	return nil
}

// StrategyKind selects how boundaries on one axis are obtained
type StrategyKind int

const (
	// Inferred clusters token positions
	Inferred StrategyKind = iota
	// Ruled uses ruling line positions as hard boundaries
	Ruled
)

func (k StrategyKind) String() string {
	if k == Ruled {
		return "ruled"
	}
	return "inferred"
}

// Strategy is the segmentation choice for one axis. Build it with Infer or
// UseRulings.
type Strategy struct {
	Kind    StrategyKind
	Rulings []model.Ruling
}

// Infer returns a strategy that clusters token positions.
func Infer() Strategy {
	return Strategy{Kind: Inferred}
}

// UseRulings returns a strategy that places boundaries at ruling positions.
// Rulings of the wrong orientation for an axis are ignored, and an axis with
// no matching rulings falls back to inference.
func UseRulings(rulings []model.Ruling) Strategy {
	return Strategy{Kind: Ruled, Rulings: rulings}
}

// rulingsFor returns the rulings that act as boundaries for orientation o.
func (s Strategy) rulingsFor(o model.Orientation) []model.Ruling {
	if s.Kind != Ruled {
		return nil
	}
	if o == model.Horizontal {
		return model.HorizontalRulings(s.Rulings)
	}
	return model.VerticalRulings(s.Rulings)
}
