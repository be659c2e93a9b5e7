// Package storage loads spreadsheet files into a sheet snapshot. Loading is
// one-way: nothing here writes a sheet back out.
package storage

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gridcalc/internal/grid"
	"gridcalc/internal/sheet"
)

// Load opens path as CSV or XLSX depending on its extension. sheetName only
// applies to workbooks; empty picks the first sheet.
func Load(path, sheetName string) (*sheet.Sheet, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return LoadXLSX(path, sheetName)
	default:
		return LoadCSV(path)
	}
}

// LoadCSV loads a CSV file. Cell text is kept raw, formulas included.
func LoadCSV(filename string) (*sheet.Sheet, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("error reading CSV %s: %w", filename, err)
	}
	return s, nil
}

// ReadCSV reads CSV records into a sheet sized to the data. Rows may have
// different lengths.
func ReadCSV(r io.Reader) (*sheet.Sheet, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	s := sheet.New(0, 0)
	for rIdx, row := range records {
		for cIdx, val := range row {
			if val != "" {
				s.Set(rIdx, cIdx, grid.Cell{Text: val})
			}
		}
	}
	return s, nil
}
