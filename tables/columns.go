package tables

import (
	"math"
	"sort"

	"github.com/tsawler/tabextract/model"
)

// SegmentColumns determines column bands, left to right, across the whole
// token set so that every row shares one set of columns.
//
// With a Ruled strategy and at least one vertical ruling, band boundaries are
// the deduplicated ruling positions, extended to the token extent. Otherwise
// token left edges are sorted and merged greedily: an edge within
// ColumnThreshold of the current column start joins that column, anything
// further right starts a new one. Each column extends to the next column's
// start; the last one ends at the rightmost token edge.
//
// An empty token slice yields no bands.
func SegmentColumns(tokens []model.TextToken, strategy Strategy, cfg Config) []model.Band {
	if len(tokens) == 0 {
		return nil
	}

	if rulings := strategy.rulingsFor(model.Vertical); len(rulings) > 0 {
		minLeft, maxRight := horizontalExtent(tokens)
		return rulingBands(rulingPositions(rulings, cfg.RulingEpsilon), minLeft, maxRight)
	}

	return inferColumns(tokens, cfg)
}

// ColumnThreshold returns the proximity within which left edges belong to
// the same column: ColumnProximityFactor times the typical character width.
func ColumnThreshold(tokens []model.TextToken, cfg Config) float64 {
	return cfg.ColumnProximityFactor * charWidth(tokens, cfg)
}

// inferColumns clusters left edges into column start positions.
func inferColumns(tokens []model.TextToken, cfg Config) []model.Band {
	threshold := ColumnThreshold(tokens, cfg)

	edges := columnEdges(tokens, cfg)
	sort.Float64s(edges)

	starts := []float64{edges[0]}
	for _, e := range edges[1:] {
		if e-starts[len(starts)-1] > threshold {
			starts = append(starts, e)
		}
	}

	minLeft, maxRight := horizontalExtent(tokens)
	bands := make([]model.Band, 0, len(starts))
	for i, start := range starts {
		low := start
		if i == 0 {
			low = minLeft
		}
		high := maxRight
		if i+1 < len(starts) {
			high = starts[i+1]
		}
		bands = append(bands, model.Band{Low: low, High: high, Source: model.SourceInferred})
	}
	return bands
}

// columnEdges returns the left edges that may start a column. With
// MergeWords enabled, a token that follows another token on the same line
// within the word gap is part of that phrase and contributes no edge.
func columnEdges(tokens []model.TextToken, cfg Config) []float64 {
	edges := make([]float64, 0, len(tokens))
	if !cfg.MergeWords {
		for _, t := range tokens {
			edges = append(edges, t.Left)
		}
		return edges
	}

	wordGap := cfg.WordGapFactor * charWidth(tokens, cfg)
	for _, t := range tokens {
		if !continuesPhrase(t, tokens, wordGap) {
			edges = append(edges, t.Left)
		}
	}
	return edges
}

// continuesPhrase reports whether some token on the same line starts left of
// t and ends no more than gap before t starts.
func continuesPhrase(t model.TextToken, tokens []model.TextToken, gap float64) bool {
	for _, prev := range tokens {
		if prev.Left >= t.Left {
			continue
		}
		if t.Left-prev.Right > gap {
			continue
		}
		if sameLine(prev, t) {
			return true
		}
	}
	return false
}

// sameLine reports whether a and b overlap vertically by at least half the
// smaller height.
func sameLine(a, b model.TextToken) bool {
	overlap := math.Min(a.Bottom, b.Bottom) - math.Max(a.Top, b.Top)
	return overlap > 0 && overlap >= 0.5*math.Min(a.Height(), b.Height())
}
