package tables

import (
	"math"
	"sort"

	"github.com/tsawler/tabextract/model"
)

// SegmentRows groups tokens into horizontal bands, top to bottom.
//
// With a Ruled strategy and at least one horizontal ruling, band boundaries
// are the deduplicated ruling positions, extended to the token extent.
// Otherwise tokens are clustered by vertical center: a new row starts when a
// center lies more than RowThreshold below the previous center.
//
// An empty token slice yields no bands.
func SegmentRows(tokens []model.TextToken, strategy Strategy, cfg Config) []model.Band {
	if len(tokens) == 0 {
		return nil
	}

	if rulings := strategy.rulingsFor(model.Horizontal); len(rulings) > 0 {
		minTop, maxBottom := verticalExtent(tokens)
		return rulingBands(rulingPositions(rulings, cfg.RulingEpsilon), minTop, maxBottom)
	}

	return inferRows(tokens, cfg)
}

// RowThreshold returns the center separation above which two tokens are in
// different rows: RowGapFactor times the median token height, never less than
// MinRowGap.
func RowThreshold(tokens []model.TextToken, cfg Config) float64 {
	return math.Max(cfg.RowGapFactor*medianHeight(tokens), cfg.MinRowGap)
}

// rowCluster tracks the first and last vertical centers of one row
type rowCluster struct {
	first, last float64
}

// inferRows clusters tokens by vertical center. Boundaries between rows sit
// midway between the last center of one row and the first center of the
// next, so every token's center falls inside its own row's band.
func inferRows(tokens []model.TextToken, cfg Config) []model.Band {
	threshold := RowThreshold(tokens, cfg)

	centers := make([]float64, len(tokens))
	for i, t := range tokens {
		centers[i] = t.CenterY()
	}
	sort.Float64s(centers)

	clusters := []rowCluster{{first: centers[0], last: centers[0]}}
	for _, c := range centers[1:] {
		current := &clusters[len(clusters)-1]
		if c-current.last > threshold {
			clusters = append(clusters, rowCluster{first: c, last: c})
		} else {
			current.last = c
		}
	}

	minTop, maxBottom := verticalExtent(tokens)
	bands := make([]model.Band, 0, len(clusters))
	low := minTop
	for i, cluster := range clusters {
		high := maxBottom
		if i+1 < len(clusters) {
			high = (cluster.last + clusters[i+1].first) / 2
		}
		bands = append(bands, model.Band{Low: low, High: high, Source: model.SourceInferred})
		low = high
	}
	return bands
}
