package tables

import (
	"sort"

	"github.com/tsawler/tabextract/model"
)

// rulingPositions returns the ruling positions sorted ascending with runs
// closer than epsilon collapsed onto the lowest position of the run.
func rulingPositions(rulings []model.Ruling, epsilon float64) []float64 {
	if len(rulings) == 0 {
		return nil
	}

	positions := make([]float64, len(rulings))
	for i, r := range rulings {
		positions[i] = r.Position
	}
	sort.Float64s(positions)

	deduped := []float64{positions[0]}
	for _, p := range positions[1:] {
		if p-deduped[len(deduped)-1] > epsilon {
			deduped = append(deduped, p)
		}
	}
	return deduped
}

// rulingBands forms bands between consecutive ruling positions. The token
// extent [minEdge, maxEdge] adds a leading band when tokens start before the
// first ruling and a trailing band when they end after the last one.
func rulingBands(positions []float64, minEdge, maxEdge float64) []model.Band {
	if len(positions) == 0 {
		return nil
	}

	boundaries := make([]float64, 0, len(positions)+2)
	leading := minEdge < positions[0]
	if leading {
		boundaries = append(boundaries, minEdge)
	}
	boundaries = append(boundaries, positions...)
	trailing := maxEdge > positions[len(positions)-1]
	if trailing {
		boundaries = append(boundaries, maxEdge)
	}

	// Every token sits on the single ruling; keep one zero-size band so the
	// assembler still has somewhere to put them.
	if len(boundaries) == 1 {
		return []model.Band{{Low: boundaries[0], High: boundaries[0], Source: model.SourceRuling}}
	}

	last := len(boundaries) - 2
	bands := make([]model.Band, 0, len(boundaries)-1)
	for i := 0; i <= last; i++ {
		source := model.SourceRuling
		if (leading && i == 0) || (trailing && i == last) {
			source = model.SourceInferred
		}
		bands = append(bands, model.Band{
			Low:    boundaries[i],
			High:   boundaries[i+1],
			Source: source,
		})
	}
	return bands
}
