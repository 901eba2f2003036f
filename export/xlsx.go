package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tsawler/tabextract/model"
)

// SheetName is the name of the worksheet written by ToXLSX.
const SheetName = "Table"

// ToXLSX renders the table as a workbook with a single sheet. Empty cells
// are left unset.
func ToXLSX(table *model.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}

	for i, row := range table.Rows {
		for j, cell := range row {
			if cell.Text == "" {
				continue
			}
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, fmt.Errorf("xlsx cell (%d,%d): %w", i, j, err)
			}
			if err := f.SetCellValue(SheetName, name, cell.Text); err != nil {
				return nil, fmt.Errorf("xlsx cell %s: %w", name, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
