package model

import (
	"fmt"
	"strings"
)

// Table is the row-major grid produced for one extraction request. Every row
// has the same number of cells; cells without tokens are present with empty
// text.
type Table struct {
	Rows     [][]Cell
	RowBands []Band
	ColBands []Band
	BBox     BBox
}

// NewTable creates an empty table with one cell for every pair of row and
// column bands.
func NewTable(rowBands, colBands []Band) *Table {
	table := &Table{
		RowBands: rowBands,
		ColBands: colBands,
	}
	if len(rowBands) == 0 || len(colBands) == 0 {
		return table
	}

	table.Rows = make([][]Cell, len(rowBands))
	for i := range rowBands {
		table.Rows[i] = make([]Cell, len(colBands))
		for j := range colBands {
			table.Rows[i][j] = Cell{Row: i, Col: j}
		}
	}

	first, last := colBands[0], colBands[len(colBands)-1]
	top, bottom := rowBands[0], rowBands[len(rowBands)-1]
	table.BBox = NewBBoxFromEdges(first.Low, top.Low, last.High, bottom.High)
	return table
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of columns in the first row
func (t *Table) ColCount() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

// IsEmpty reports whether the table has no rows
func (t *Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// GetCell returns the cell at the given row and column (0-indexed)
func (t *Table) GetCell(row, col int) *Cell {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return nil
	}
	return &t.Rows[row][col]
}

// SetCell replaces the cell at the given position
func (t *Table) SetCell(row, col int, cell Cell) error {
	if row < 0 || row >= len(t.Rows) {
		return fmt.Errorf("row index %d out of bounds", row)
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return fmt.Errorf("col index %d out of bounds", col)
	}
	cell.Row, cell.Col = row, col
	t.Rows[row][col] = cell
	return nil
}

// Texts returns the cell text grid. The result is never nil so that an empty
// table encodes as an empty array.
func (t *Table) Texts() [][]string {
	texts := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		line := make([]string, len(row))
		for j, cell := range row {
			line[j] = cell.Text
		}
		texts = append(texts, line)
	}
	return texts
}

// TokenCount returns the number of tokens distributed across all cells
func (t *Table) TokenCount() int {
	n := 0
	for _, row := range t.Rows {
		for _, cell := range row {
			n += len(cell.Tokens)
		}
	}
	return n
}

// Occupancy returns the fraction of cells holding at least one token
func (t *Table) Occupancy() float64 {
	total := t.RowCount() * t.ColCount()
	if total == 0 {
		return 0
	}
	occupied := 0
	for _, row := range t.Rows {
		for _, cell := range row {
			if !cell.IsEmpty() {
				occupied++
			}
		}
	}
	return float64(occupied) / float64(total)
}

// IsRuled reports whether every row and column boundary came from a ruling
// line.
func (t *Table) IsRuled() bool {
	if t.IsEmpty() {
		return false
	}
	for _, bands := range [][]Band{t.RowBands, t.ColBands} {
		for _, b := range bands {
			if b.Source != SourceRuling {
				return false
			}
		}
	}
	return true
}

// GetText returns the table as tab-separated lines
func (t *Table) GetText() string {
	var sb strings.Builder
	for _, row := range t.Rows {
		for j, cell := range row {
			sb.WriteString(cell.Text)
			if j < len(row)-1 {
				sb.WriteString("\t")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Cell holds the tokens assigned to one (row band, column band) pair.
// Tokens are in reading order (left to right).
type Cell struct {
	Row    int
	Col    int
	Tokens []TextToken
	Text   string
	BBox   BBox
}

// IsEmpty reports whether no token was assigned to the cell
func (c Cell) IsEmpty() bool {
	return len(c.Tokens) == 0
}
