package tables

import (
	"sort"
	"strings"

	"github.com/tsawler/tabextract/model"
)

// Assemble places every token into the cell addressed by its row band
// (vertical center) and column band (horizontal center), using the default
// tie epsilon. See AssembleWithConfig.
func Assemble(tokens []model.TextToken, rowBands, colBands []model.Band) *model.Table {
	return AssembleWithConfig(tokens, rowBands, colBands, DefaultConfig())
}

// AssembleWithConfig builds the full rows x columns grid. Tokens outside all
// bands are clamped to the nearest edge band, and a center within
// cfg.TieEpsilon of a boundary goes to the lower band. Within a cell tokens
// are ordered by left edge, ties keeping extraction order, and their text is
// joined with single spaces.
//
// When either band slice is empty the table has no rows.
func AssembleWithConfig(tokens []model.TextToken, rowBands, colBands []model.Band, cfg Config) *model.Table {
	table := model.NewTable(rowBands, colBands)
	if table.IsEmpty() {
		return table
	}

	for _, tok := range tokens {
		row := locateBand(rowBands, tok.CenterY(), cfg.TieEpsilon)
		col := locateBand(colBands, tok.CenterX(), cfg.TieEpsilon)
		cell := &table.Rows[row][col]
		cell.Tokens = append(cell.Tokens, tok)
	}

	for i := range table.Rows {
		for j := range table.Rows[i] {
			finalizeCell(&table.Rows[i][j])
		}
	}

	return table
}

// locateBand returns the index of the band containing v. Bands must be
// sorted and contiguous. The search picks the first band whose high edge is
// above v-epsilon, which sends values on or just past a boundary to the
// lower band and clamps values below the first band to index 0. Values past
// the last band clamp to the last index.
func locateBand(bands []model.Band, v, epsilon float64) int {
	i := sort.Search(len(bands), func(i int) bool {
		return bands[i].High > v-epsilon
	})
	if i == len(bands) {
		return len(bands) - 1
	}
	return i
}

// finalizeCell orders the cell tokens for reading and derives text and bbox.
func finalizeCell(cell *model.Cell) {
	if len(cell.Tokens) == 0 {
		return
	}

	sort.SliceStable(cell.Tokens, func(i, j int) bool {
		return cell.Tokens[i].Left < cell.Tokens[j].Left
	})

	parts := make([]string, 0, len(cell.Tokens))
	for _, t := range cell.Tokens {
		if t.Text != "" {
			parts = append(parts, t.Text)
		}
	}
	cell.Text = strings.Join(parts, " ")
	cell.BBox = model.TokensBBox(cell.Tokens)
}
