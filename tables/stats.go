package tables

import (
	"math"
	"sort"

	"github.com/tsawler/tabextract/model"
)

// median returns the median of values, averaging the middle pair for even
// counts. It returns 0 for an empty slice and does not modify values.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// medianHeight returns the median token height
func medianHeight(tokens []model.TextToken) float64 {
	heights := make([]float64, len(tokens))
	for i, t := range tokens {
		heights[i] = t.Height()
	}
	return median(heights)
}

// charWidth estimates the typical character width from the median font size,
// falling back to cfg.DefaultCharWidth when no token has a font size.
func charWidth(tokens []model.TextToken, cfg Config) float64 {
	var sizes []float64
	for _, t := range tokens {
		if t.FontSize > 0 {
			sizes = append(sizes, t.FontSize)
		}
	}
	if len(sizes) == 0 {
		return cfg.DefaultCharWidth
	}
	return median(sizes) * cfg.CharWidthRatio
}

// verticalExtent returns the minimum top and maximum bottom over tokens
func verticalExtent(tokens []model.TextToken) (minTop, maxBottom float64) {
	minTop, maxBottom = math.Inf(1), math.Inf(-1)
	for _, t := range tokens {
		minTop = math.Min(minTop, t.Top)
		maxBottom = math.Max(maxBottom, t.Bottom)
	}
	return minTop, maxBottom
}

// horizontalExtent returns the minimum left and maximum right over tokens
func horizontalExtent(tokens []model.TextToken) (minLeft, maxRight float64) {
	minLeft, maxRight = math.Inf(1), math.Inf(-1)
	for _, t := range tokens {
		minLeft = math.Min(minLeft, t.Left)
		maxRight = math.Max(maxRight, t.Right)
	}
	return minLeft, maxRight
}
