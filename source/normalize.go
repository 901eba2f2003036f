package source

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/tabextract/model"
)

// DefaultRasterWidth is the pixel width of the rendered page image that
// ruling detectors usually run on.
const DefaultRasterWidth = 2048

// RasterScale returns the factor converting raster pixels to page units for
// a page rendered at rasterWidth pixels wide.
func RasterScale(pageWidth float64, rasterWidth int) (float64, error) {
	if rasterWidth <= 0 {
		return 0, fmt.Errorf("raster width must be positive, got %d", rasterWidth)
	}
	if !(pageWidth > 0) || math.IsInf(pageWidth, 0) {
		return 0, fmt.Errorf("page width must be positive, got %v", pageWidth)
	}
	return pageWidth / float64(rasterWidth), nil
}

// NormalizeRulings scales raw detector output into page space and rejects
// rulings with start > end, a negative position or non-finite values. The
// input slice is not modified. A zero-extent ruling is kept.
func NormalizeRulings(raw []model.Ruling, scale float64) ([]model.Ruling, error) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("%w: scale must be positive, got %v", ErrMalformedRuling, scale)
	}

	rulings := make([]model.Ruling, 0, len(raw))
	for i, r := range raw {
		if r.Orientation != model.Horizontal && r.Orientation != model.Vertical {
			return nil, fmt.Errorf("%w: ruling %d has unknown orientation", ErrMalformedRuling, i)
		}
		for _, v := range []float64{r.Position, r.Start, r.End} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: ruling %d has non-finite coordinate", ErrMalformedRuling, i)
			}
		}
		if r.Start > r.End {
			return nil, fmt.Errorf("%w: ruling %d has start %.2f > end %.2f", ErrMalformedRuling, i, r.Start, r.End)
		}
		if r.Position < 0 {
			return nil, fmt.Errorf("%w: ruling %d has negative position %.2f", ErrMalformedRuling, i, r.Position)
		}

		rulings = append(rulings, model.Ruling{
			Orientation: r.Orientation,
			Position:    r.Position * scale,
			Start:       r.Start * scale,
			End:         r.End * scale,
		})
	}
	return rulings, nil
}

// NormalizeText applies NFKC normalization, so ligatures and full-width
// forms compare equal to their plain spellings, and collapses runs of
// whitespace into single spaces.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}

// NormalizeTokens returns the tokens with normalized text, dropping tokens
// whose text is empty afterwards.
func NormalizeTokens(tokens []model.TextToken) []model.TextToken {
	result := make([]model.TextToken, 0, len(tokens))
	for _, t := range tokens {
		t.Text = NormalizeText(t.Text)
		if t.Text != "" {
			result = append(result, t)
		}
	}
	return result
}
