package calc

import (
	"regexp"
	"strconv"
	"strings"

	"gridcalc/internal/grid"
)

// CellValueFunc reads the displayed text of a cell. It must return "" for
// empty or out-of-range cells and must not fail.
type CellValueFunc func(row, col int) string

var (
	// $ may sit anywhere in the letter run; it carries no meaning here.
	refPattern       = regexp.MustCompile(`(?i)^([A-Z$]+)(\d+)$`)
	rangePattern     = regexp.MustCompile(`(?i)^([A-Z]+)(\d+):([A-Z]+)(\d+)$`)
	inlineRefPattern = regexp.MustCompile(`(?i)([A-Z$]+)(\d+)`)
)

func emptySheet(int, int) string { return "" }

// refCoord decodes the two halves of a reference. The row may come out
// negative (A0); callers treat such coordinates as outside the sheet.
// Columns past XFD and rows past grid.MaxRows do not decode.
func refCoord(letters, digits string) (grid.Coord, bool) {
	col, ok := grid.ColumnIndex(strings.ReplaceAll(letters, "$", ""))
	if !ok {
		return grid.Coord{}, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n > grid.MaxRows {
		return grid.Coord{}, false
	}
	return grid.Coord{Row: n - 1, Col: col}, true
}

func cellText(c grid.Coord, get CellValueFunc) string {
	if c.Row < 0 || c.Col < 0 {
		return ""
	}
	return get(c.Row, c.Col)
}

func refValue(letters, digits string, get CellValueFunc) string {
	v := ""
	if c, ok := refCoord(letters, digits); ok {
		v = cellText(c, get)
	}
	if v == "" {
		return "0"
	}
	return v
}

// ResolveRef resolves a single reference such as B3 or $B$3. An empty cell
// yields "0". ok is false when token is not a reference.
func ResolveRef(token string, get CellValueFunc) (value string, ok bool) {
	m := refPattern.FindStringSubmatch(token)
	if m == nil {
		return "", false
	}
	return refValue(m[1], m[2], get), true
}

// ResolveRange expands a range such as A1:B2 into the non-empty cell values
// it covers, column by column, top to bottom within a column. Corners may be
// given in any order. ok is false when token is not a range.
func ResolveRange(token string, get CellValueFunc) (values []string, ok bool) {
	m := rangePattern.FindStringSubmatch(token)
	if m == nil {
		return nil, false
	}
	values = []string{}
	start, ok1 := refCoord(m[1], m[2])
	end, ok2 := refCoord(m[3], m[4])
	if !ok1 || !ok2 {
		return values, true
	}
	if area := rangeArea(start, end); area > MaxRangeCells {
		Logger().Debug("calc: range too large", "range", token, "cells", area)
		return values, true
	}
	for col := min(start.Col, end.Col); col <= max(start.Col, end.Col); col++ {
		for row := min(start.Row, end.Row); row <= max(start.Row, end.Row); row++ {
			if v := cellText(grid.Coord{Row: row, Col: col}, get); v != "" {
				values = append(values, v)
			}
		}
	}
	return values, true
}

// MaxRangeCells bounds how many cells one range may cover. Larger ranges
// resolve to no values.
const MaxRangeCells = 1 << 20

func rangeArea(a, b grid.Coord) int {
	rows := max(a.Row, b.Row) - min(a.Row, b.Row) + 1
	cols := max(a.Col, b.Col) - min(a.Col, b.Col) + 1
	return rows * cols
}

// substituteRefs replaces every reference inside an expression with the
// value it resolves to.
func substituteRefs(expr string, get CellValueFunc) string {
	return inlineRefPattern.ReplaceAllStringFunc(expr, func(tok string) string {
		m := inlineRefPattern.FindStringSubmatch(tok)
		return refValue(m[1], m[2], get)
	})
}
