package grid

import (
	"strconv"
	"strings"
)

// Sheet limits, the same as a modern workbook: columns A..XFD and rows
// 1..1048576. References past them do not parse.
const (
	MaxCols = 16384
	MaxRows = 1048576
)

// Coord is a 0-based cell position.
type Coord struct {
	Row int
	Col int
}

// Cell represents a single cell content.
// Text is what the grid shows and what other cells read; Formula keeps the
// original input so an edit surface can show it again.
type Cell struct {
	Text    string
	Formula string
}

// EditText returns the text to put back into an editor for this cell.
func (c Cell) EditText() string {
	if c.Formula != "" {
		return c.Formula
	}
	return c.Text
}

// ColToName: 0 -> A, 25 -> Z, 26 -> AA and so on
func ColToName(col int) string {
	if col < 0 {
		return "?"
	}
	result := ""
	n := col + 1
	for n > 0 {
		n--
		result = string(rune('A'+(n%26))) + result
		n /= 26
	}
	return result
}

// CoordName builds cell name from a 0-based coordinate -> e.g., {0,0} -> "A1"
func CoordName(c Coord) string {
	return ColToName(c.Col) + strconv.Itoa(c.Row+1)
}

// RangeName returns "A1" when both corners are the same cell, otherwise the
// normalized "TopLeft:BottomRight" form.
func RangeName(a, b Coord) string {
	tl := Coord{Row: min(a.Row, b.Row), Col: min(a.Col, b.Col)}
	br := Coord{Row: max(a.Row, b.Row), Col: max(a.Col, b.Col)}
	if tl == br {
		return CoordName(tl)
	}
	return CoordName(tl) + ":" + CoordName(br)
}

// ColumnIndex decodes column letters base-26 (A=0, Z=25, AA=26).
// Letters are case-insensitive; anything else, or a column past XFD, fails.
func ColumnIndex(letters string) (int, bool) {
	if letters == "" {
		return 0, false
	}
	col := 0
	for i := 0; i < len(letters); i++ {
		b := letters[i]
		if !isLetter(b) {
			return 0, false
		}
		col = col*26 + int(upper(b)-'A') + 1
		if col > MaxCols {
			return 0, false
		}
	}
	return col - 1, true
}

// ParseCellRef parses names like A1, AA10 returning 0-based (row, col)
// Accepts sheet prefixes like Sheet!A1 and removes $ signs.
func ParseCellRef(name string) (int, int, bool) {
	name = strings.TrimSpace(name)
	// remove sheet! prefix if present
	if idx := strings.LastIndex(name, "!"); idx != -1 {
		name = strings.TrimSpace(name[idx+1:])
	}
	name = strings.ReplaceAll(name, "$", "")
	if name == "" {
		return 0, 0, false
	}

	i := 0
	for i < len(name) && isLetter(name[i]) {
		i++
	}
	if i == 0 || i >= len(name) {
		return 0, 0, false
	}
	col, ok := ColumnIndex(name[:i])
	if !ok {
		return 0, 0, false
	}
	rowNum, err := strconv.Atoi(name[i:])
	if err != nil {
		return 0, 0, false
	}
	row := rowNum - 1
	if row < 0 || row >= MaxRows || col < 0 {
		return 0, 0, false
	}
	return row, col, true
}

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
