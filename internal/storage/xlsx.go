package storage

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"gridcalc/internal/grid"
	"gridcalc/internal/sheet"
)

// LoadXLSX reads one worksheet. Cells holding a formula come back as
// "=" + formula so they can be replayed; other cells keep their formatted
// value.
func LoadXLSX(path, sheetName string) (*sheet.Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	if sheetName == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheetName = list[0]
	}
	if idx, err := f.GetSheetIndex(sheetName); err != nil || idx == -1 {
		return nil, fmt.Errorf("workbook %s: no sheet named %q", path, sheetName)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
	}

	// GetRows trims trailing empty cells, and a formula saved without a
	// cached value reads as empty, so walk the recorded dimension as well.
	maxR, maxC := len(rows), 0
	for _, row := range rows {
		maxC = max(maxC, len(row))
	}
	if r, c, ok := sheetDimension(f, sheetName); ok {
		maxR, maxC = max(maxR, r), max(maxC, c)
	}

	s := sheet.New(0, 0)
	for r := 0; r < maxR; r++ {
		for c := 0; c < maxC; c++ {
			val := ""
			if r < len(rows) && c < len(rows[r]) {
				val = rows[r][c]
			}
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			formula, err := f.GetCellFormula(sheetName, name)
			if err != nil {
				return nil, fmt.Errorf("read formula %s: %w", name, err)
			}
			if formula != "" {
				val = "=" + formula
			}
			if val != "" {
				s.Set(r, c, grid.Cell{Text: val})
			}
		}
	}
	return s, nil
}

// sheetDimension returns the 1-based bottom-right corner of the used range
// recorded in the worksheet, e.g. 3, 2 for "A1:B3".
func sheetDimension(f *excelize.File, sheetName string) (int, int, bool) {
	dim, err := f.GetSheetDimension(sheetName)
	if err != nil || dim == "" {
		return 0, 0, false
	}
	_, end, found := strings.Cut(dim, ":")
	if !found {
		end = dim
	}
	col, row, err := excelize.CellNameToCoordinates(end)
	if err != nil || row > grid.MaxRows || col > grid.MaxCols {
		return 0, 0, false
	}
	return row, col, true
}
