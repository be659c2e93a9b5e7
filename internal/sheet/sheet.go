// Package sheet holds the cells of one grid and commits user input into
// them through the formula evaluator.
package sheet

import (
	"slices"
	"strings"

	"gridcalc/internal/calc"
	"gridcalc/internal/grid"
)

// Sheet is a sparse grid with fixed logical bounds. Cells outside the
// bounds read as empty.
type Sheet struct {
	Rows  int
	Cols  int
	cells map[grid.Coord]grid.Cell
}

func New(rows, cols int) *Sheet {
	return &Sheet{
		Rows:  max(rows, 0),
		Cols:  max(cols, 0),
		cells: map[grid.Coord]grid.Cell{},
	}
}

func (s *Sheet) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < s.Rows && col < s.Cols
}

// Grow extends the bounds so that (row, col) is inside.
func (s *Sheet) Grow(row, col int) {
	s.Rows = max(s.Rows, row+1)
	s.Cols = max(s.Cols, col+1)
}

// Value is the accessor handed to the evaluator: the displayed text of a
// cell, or "" when it is unset or out of bounds.
func (s *Sheet) Value(row, col int) string {
	if !s.InBounds(row, col) {
		return ""
	}
	return s.cells[grid.Coord{Row: row, Col: col}].Text
}

func (s *Sheet) Cell(row, col int) (grid.Cell, bool) {
	c, ok := s.cells[grid.Coord{Row: row, Col: col}]
	return c, ok
}

// EditText is what an editor should show for the cell: its formula when it
// has one, its text otherwise.
func (s *Sheet) EditText(row, col int) string {
	return s.cells[grid.Coord{Row: row, Col: col}].EditText()
}

// Set stores a cell as-is, growing the bounds if needed. An empty cell
// removes the entry.
func (s *Sheet) Set(row, col int, c grid.Cell) {
	k := grid.Coord{Row: row, Col: col}
	if c.Text == "" && c.Formula == "" {
		delete(s.cells, k)
		return
	}
	s.Grow(row, col)
	s.cells[k] = c
}

func (s *Sheet) Clear(row, col int) {
	delete(s.cells, grid.Coord{Row: row, Col: col})
}

func (s *Sheet) Len() int { return len(s.cells) }

// Extent returns the largest populated row and column, or -1, -1 for an
// empty sheet.
func (s *Sheet) Extent() (int, int) {
	maxR, maxC := -1, -1
	for k := range s.cells {
		maxR = max(maxR, k.Row)
		maxC = max(maxC, k.Col)
	}
	return maxR, maxC
}

// Coords lists populated cells in row-major order.
func (s *Sheet) Coords() []grid.Coord {
	out := make([]grid.Coord, 0, len(s.cells))
	for k := range s.cells {
		out = append(out, k)
	}
	slices.SortFunc(out, func(a, b grid.Coord) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
	return out
}

// Commit stores user input into a cell. Formulas are evaluated once against
// the current contents of the sheet and the result becomes the cell's text;
// the formula itself is kept for editing. Nothing that depends on this cell
// is recomputed.
//
// An unknown function stores calc.ErrorMarker and returns the error so the
// caller can report it.
func (s *Sheet) Commit(row, col int, input string) error {
	if input == "" {
		s.Clear(row, col)
		return nil
	}
	if !strings.HasPrefix(input, "=") {
		s.Set(row, col, grid.Cell{Text: input})
		return nil
	}
	v, err := calc.Evaluate(input, s.Value)
	text := v.String()
	if err != nil {
		text = calc.ErrorMarker
	}
	s.Set(row, col, grid.Cell{Text: text, Formula: input})
	return err
}

// Replay commits every cell whose text is a formula, in row-major order,
// as if each had just been typed in. It is meant for freshly loaded sheets
// whose cells still hold raw formula text. Errors are keyed by cell.
func (s *Sheet) Replay() map[grid.Coord]error {
	errs := map[grid.Coord]error{}
	for _, k := range s.Coords() {
		c := s.cells[k]
		if c.Formula != "" || !strings.HasPrefix(c.Text, "=") {
			continue
		}
		if err := s.Commit(k.Row, k.Col, c.Text); err != nil {
			errs[k] = err
		}
	}
	return errs
}

// InsertRow shifts rows at and below idx down by one.
func (s *Sheet) InsertRow(idx int) {
	s.remap(func(k grid.Coord) (grid.Coord, bool) {
		if k.Row >= idx {
			k.Row++
		}
		return k, true
	})
	s.Rows++
}

// InsertCol shifts columns at and right of idx right by one.
func (s *Sheet) InsertCol(idx int) {
	s.remap(func(k grid.Coord) (grid.Coord, bool) {
		if k.Col >= idx {
			k.Col++
		}
		return k, true
	})
	s.Cols++
}

// DeleteRow drops row idx and shifts the rows below it up.
func (s *Sheet) DeleteRow(idx int) {
	if idx < 0 || idx >= s.Rows {
		return
	}
	s.remap(func(k grid.Coord) (grid.Coord, bool) {
		if k.Row == idx {
			return k, false
		}
		if k.Row > idx {
			k.Row--
		}
		return k, true
	})
	s.Rows--
}

// DeleteCol drops column idx and shifts the columns right of it left.
func (s *Sheet) DeleteCol(idx int) {
	if idx < 0 || idx >= s.Cols {
		return
	}
	s.remap(func(k grid.Coord) (grid.Coord, bool) {
		if k.Col == idx {
			return k, false
		}
		if k.Col > idx {
			k.Col--
		}
		return k, true
	})
	s.Cols--
}

// remap moves cells only; formulas keep their text and references are not
// rewritten.
func (s *Sheet) remap(move func(grid.Coord) (grid.Coord, bool)) {
	next := make(map[grid.Coord]grid.Cell, len(s.cells))
	for k, v := range s.cells {
		if nk, keep := move(k); keep {
			next[nk] = v
		}
	}
	s.cells = next
}
