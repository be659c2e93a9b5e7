package app

import (
	"fmt"
	"strconv"
	"strings"

	"gridcalc/internal/calc"
	"gridcalc/internal/grid"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

var (
	headerStyle    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	activeHdrStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	cursorStyle    = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorLightGray)
	selectStyle    = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorLightBlue)
	errorStyle     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	statusStyle    = tcell.StyleDefault.Background(tcell.ColorGray).Foreground(tcell.ColorWhite)
	popupStyle     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorReset)
)

const helpText = `i / Enter - edit cell
= - formula prompt
f - pick a function
v / Shift+arrows - select a range (space re-anchors, Enter inserts)
x / Del - clear cell
Ctrl+arrows - col width / row height
F2/F3 - add row/col
F4/F5 - delete row/col
PgUp/PgDn/Home/End - scroll
:o file [sheet] - open csv or xlsx
:g A1 - go to cell
:cw N | :rh N - sizes
:q - quit`

// ----------------------------- Drawing -----------------------------

func (a *App) Draw(s tcell.Screen) {
	s.Clear()
	w, h := s.Size()

	a.drawHeader(s, w)

	y := 1
	for r := a.ViewRow; r < len(a.RowHeights) && y < h-a.StatusLines; r++ {
		style := headerStyle
		if r == a.CurRow {
			style = activeHdrStyle
		}
		a.printTextFixedWidth(s, 0, y, strconv.Itoa(r+1), style, a.LeftGutter-1)

		hh := a.RowHeights[r]
		x := a.LeftGutter
		for c := a.ViewCol; c < len(a.ColWidths) && x < w; c++ {
			a.drawCell(s, r, c, x, y, min(hh, h-a.StatusLines-y))
			x += a.ColWidths[c]
		}
		y += hh
	}

	a.drawStatus(s, w, h)

	switch {
	case a.HelpVisible:
		a.drawPopupLines(s, "Help", strings.Split(helpText, "\n"), -1)
	case a.Mode == ModePicker:
		a.drawPopupLines(s, "Functions", calc.FunctionNames(), a.PickerIdx)
	}
	s.HideCursor()
	s.Show()
}

func (a *App) drawHeader(s tcell.Screen, w int) {
	x := a.LeftGutter
	for c := a.ViewCol; c < len(a.ColWidths) && x < w; c++ {
		wc := a.ColWidths[c]
		style := headerStyle
		if c == a.CurCol {
			style = activeHdrStyle
			a.printTextFixedWidth(s, x, 0, "", style, wc)
		}
		a.printTextFixedWidth(s, x+a.CellPadding, 0, grid.ColToName(c), style, max(wc-2*a.CellPadding, 0))
		x += wc
	}
}

// drawCell paints one cell rectangle; rows beyond height are left alone.
func (a *App) drawCell(s tcell.Screen, r, c, x, y, height int) {
	wc := a.ColWidths[c]
	text := a.Sheet.Value(r, c)
	style := tcell.StyleDefault
	switch {
	case r == a.CurRow && c == a.CurCol:
		style = cursorStyle
		if a.Mode == ModeInsert {
			text = a.InputBuf
		}
	case a.inSelection(r, c):
		style = selectStyle
	case text == calc.ErrorMarker:
		style = errorStyle
	}

	lines := strings.Split(text, "\n")
	innerW := max(wc-2*a.CellPadding, 0)
	for dy := 0; dy < height; dy++ {
		a.printTextFixedWidth(s, x, y+dy, "", style, wc)
		if dy < len(lines) {
			a.printTextFixedWidth(s, x+a.CellPadding, y+dy, lines[dy], style, innerW)
		}
	}
}

// drawStatus renders the formula bar and the message/prompt line.
func (a *App) drawStatus(s tcell.Screen, w, h int) {
	statusY := max(h-a.StatusLines, 0)
	cur := grid.Coord{Row: a.CurRow, Col: a.CurCol}
	bar := fmt.Sprintf("%s  %s", grid.CoordName(cur), a.Sheet.EditText(a.CurRow, a.CurCol))
	a.printTextFixedWidth(s, 0, statusY, bar, statusStyle, w)
	mode := "[" + a.Mode + "]"
	if mw := runewidth.StringWidth(mode); mw < w {
		a.printTextFixedWidth(s, w-mw, statusY, mode, statusStyle, mw)
	}

	var line string
	switch a.Mode {
	case ModeInsert:
		line = "EDIT: " + a.InputBuf
	case ModeSelect:
		line = "RANGE: " + a.SelectedRange() + " -> " + grid.CoordName(a.Target)
	default:
		line = a.Message
	}
	a.printTextFixedWidth(s, 0, statusY+1, line, statusStyle, w)
}

// printTextFixedWidth writes str clipped and padded to width terminal
// columns.
func (a *App) printTextFixedWidth(s tcell.Screen, x, y int, str string, style tcell.Style, width int) {
	if y < 0 {
		return
	}
	col := 0
	for _, r := range str {
		rw := runewidth.RuneWidth(r)
		if col+rw > width {
			break
		}
		if x+col >= 0 {
			s.SetContent(x+col, y, r, nil, style)
		}
		col += max(rw, 1)
	}
	for ; col < width; col++ {
		if x+col >= 0 {
			s.SetContent(x+col, y, ' ', nil, style)
		}
	}
}

// drawPopupLines draws a framed, centered list. selected < 0 highlights
// nothing.
func (a *App) drawPopupLines(s tcell.Screen, title string, lines []string, selected int) {
	w, h := s.Size()
	innerW := runewidth.StringWidth(title) + 2
	for _, ln := range lines {
		innerW = max(innerW, runewidth.StringWidth(ln))
	}
	innerW = min(innerW+2, w-4)
	innerH := min(len(lines), h-4)
	if innerW < 1 || innerH < 1 {
		return
	}
	left := (w - innerW - 2) / 2
	top := (h - innerH - 2) / 2
	drawFrame(s, left, top, innerW+2, innerH+2, popupStyle)
	a.printTextFixedWidth(s, left+2, top, " "+title+" ", popupStyle, runewidth.StringWidth(title)+2)

	// keep the selection in view when the list is taller than the screen
	first := 0
	if selected >= innerH {
		first = selected - innerH + 1
	}
	for i := 0; i < innerH; i++ {
		style := popupStyle
		if first+i == selected {
			style = cursorStyle
		}
		a.printTextFixedWidth(s, left+1, top+1+i, " "+lines[first+i], style, innerW)
	}
}

func drawFrame(s tcell.Screen, left, top, width, height int, style tcell.Style) {
	right, bottom := left+width-1, top+height-1
	for x := left; x <= right; x++ {
		for y := top; y <= bottom; y++ {
			s.SetContent(x, y, ' ', nil, style)
		}
		s.SetContent(x, top, tcell.RuneHLine, nil, style)
		s.SetContent(x, bottom, tcell.RuneHLine, nil, style)
	}
	for y := top; y <= bottom; y++ {
		s.SetContent(left, y, tcell.RuneVLine, nil, style)
		s.SetContent(right, y, tcell.RuneVLine, nil, style)
	}
	s.SetContent(left, top, tcell.RuneULCorner, nil, style)
	s.SetContent(right, top, tcell.RuneURCorner, nil, style)
	s.SetContent(left, bottom, tcell.RuneLLCorner, nil, style)
	s.SetContent(right, bottom, tcell.RuneLRCorner, nil, style)
}

// ----------------------------- Viewport / Geometry -----------------------------

// span counts how many sizes starting at from fit into limit, at least one.
func span(sizes []int, from, limit int) int {
	n, sum := 0, 0
	for i := from; i < len(sizes); i++ {
		if sum+sizes[i] > limit {
			break
		}
		sum += sizes[i]
		n++
	}
	return max(n, 1)
}

func (a *App) usableArea(s tcell.Screen) (int, int) {
	w, h := s.Size()
	return max(w-a.LeftGutter, 1), max(h-a.StatusLines-1, 1)
}

func (a *App) ComputeVisible(s tcell.Screen) (visibleRows, visibleCols int) {
	uw, uh := a.usableArea(s)
	return span(a.RowHeights, a.ViewRow, uh), span(a.ColWidths, a.ViewCol, uw)
}

// EnsureCursorVisible scrolls the view so the cursor cell is on screen.
func (a *App) EnsureCursorVisible(s tcell.Screen) {
	if s == nil {
		return
	}
	rows, cols := a.ComputeVisible(s)
	a.ViewCol = scrollTo(a.ViewCol, a.CurCol, cols, len(a.ColWidths))
	a.ViewRow = scrollTo(a.ViewRow, a.CurRow, rows, len(a.RowHeights))
}

func scrollTo(view, cur, visible, total int) int {
	if cur < view {
		view = cur
	} else if cur >= view+visible {
		view = cur - visible + 1
	}
	return max(min(view, total-1), 0)
}
