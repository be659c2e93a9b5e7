package app

import (
	"io"
	"log/slog"

	"gridcalc/internal/calc"
	"gridcalc/internal/config"
	"gridcalc/internal/grid"
	"gridcalc/internal/sheet"

	"github.com/gdamore/tcell/v2"
)

const (
	ModeNormal = "normal"
	ModeInsert = "insert"
	ModeSelect = "select"
	ModePicker = "picker"
)

type App struct {
	// layout
	LeftGutter    int
	StatusLines   int
	DefaultWidth  int
	DefaultHeight int

	CellPadding int

	// grid data
	ColWidths  []int
	RowHeights []int
	Sheet      *sheet.Sheet

	// cursor / view
	CurRow  int
	CurCol  int
	ViewRow int
	ViewCol int

	// UI state
	Mode     string // normal | insert | select | picker
	InputBuf string
	Message  string
	Quit     bool

	// editing behavior options
	EnterStartsEdit   bool
	MoveAfterEnter    bool
	SelectAllOnEdit   bool
	ReplaceOnNextRune bool
	Splash            bool

	// UI: help popup visibility
	HelpVisible bool

	// range selection: the formula goes into Target, the range spans
	// Anchor..cursor
	Target grid.Coord
	Anchor grid.Coord

	// function picker
	PickerIdx int

	Log *slog.Logger
}

func NewApp(cfg config.Config) *App {
	a := &App{
		LeftGutter:      4,
		StatusLines:     2,
		DefaultWidth:    cfg.Grid.ColWidth,
		DefaultHeight:   cfg.Grid.RowHeight,
		CellPadding:     1,
		Sheet:           sheet.New(cfg.Grid.Rows, cfg.Grid.Cols),
		Mode:            ModeNormal,
		EnterStartsEdit: true,
		MoveAfterEnter:  cfg.UI.MoveAfterEnter,
		SelectAllOnEdit: true,
		Splash:          cfg.UI.Splash,
		Log:             slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	a.syncSizes()
	return a
}

// syncSizes makes the column/row size tables cover the sheet bounds and the
// other way round.
func (a *App) syncSizes() {
	a.Sheet.Grow(0, 0)
	a.EnsureColExists(a.Sheet.Cols - 1)
	a.EnsureRowExists(a.Sheet.Rows - 1)
}

// Run is the main loop: draw, wait for an event, handle it.
func (a *App) Run(s tcell.Screen) {
	if a.Splash {
		SplashScreen(s)
	}
	for !a.Quit {
		a.EnsureCursorVisible(s)
		a.Draw(s)
		ev := s.PollEvent()
		switch tev := ev.(type) {
		case *tcell.EventKey:
			a.HandleKeyEvent(s, tev)
		case *tcell.EventResize:
			s.Sync()
		case nil:
			// screen finalized
			return
		}
	}
}

// ----------------------------- Events / Input -----------------------------

func (a *App) HandleKeyEvent(s tcell.Screen, ev *tcell.EventKey) {
	switch a.Mode {
	case ModeInsert:
		a.handleInsertKey(ev)
		return
	case ModeSelect:
		a.handleSelectKey(s, ev)
		return
	case ModePicker:
		a.handlePickerKey(s, ev)
		return
	}

	// If help popup is visible, consume most keys and only allow closing with Esc or "?"
	if a.HelpVisible {
		if ev.Key() == tcell.KeyEsc || ev.Rune() == '?' {
			a.HelpVisible = false
		}
		return
	}

	mod := ev.Modifiers()
	if mod&tcell.ModShift != 0 && isArrow(ev.Key()) {
		// shift+arrow starts a range selection at the cursor
		a.Mode = ModeSelect
		a.Target = grid.Coord{Row: a.CurRow, Col: a.CurCol}
		a.Anchor = a.Target
		a.handleSelectKey(s, ev)
		return
	}
	switch ev.Key() {
	case tcell.KeyEsc:
		a.Message = ""
	case tcell.KeyCtrlC:
		a.Quit = true
	case tcell.KeyUp:
		if mod&tcell.ModCtrl != 0 {
			// ctrl+up -> decrease row height
			if a.CurRow < len(a.RowHeights) && a.RowHeights[a.CurRow] > 1 {
				a.RowHeights[a.CurRow]--
			}
		} else {
			a.moveCursor(-1, 0)
		}
	case tcell.KeyDown:
		if mod&tcell.ModCtrl != 0 {
			if a.CurRow < len(a.RowHeights) {
				a.RowHeights[a.CurRow]++
			}
		} else {
			a.moveCursor(1, 0)
		}
	case tcell.KeyLeft:
		if mod&tcell.ModCtrl != 0 {
			if a.CurCol < len(a.ColWidths) && a.ColWidths[a.CurCol] > 4 {
				a.ColWidths[a.CurCol]--
			}
		} else {
			a.moveCursor(0, -1)
		}
	case tcell.KeyRight:
		if mod&tcell.ModCtrl != 0 {
			if a.CurCol < len(a.ColWidths) {
				a.ColWidths[a.CurCol]++
			}
		} else {
			a.moveCursor(0, 1)
		}
	case tcell.KeyPgUp:
		vr, _ := a.ComputeVisible(s)
		a.ViewRow = max(0, a.ViewRow-vr)
	case tcell.KeyPgDn:
		vr, _ := a.ComputeVisible(s)
		a.ViewRow = min(a.ViewRow+vr, max(0, len(a.RowHeights)-1))
	case tcell.KeyHome:
		a.ViewCol = 0
		a.ViewRow = 0
	case tcell.KeyEnd:
		a.ViewCol = max(0, len(a.ColWidths)-1)
		a.ViewRow = max(0, len(a.RowHeights)-1)
	case tcell.KeyDelete:
		a.Sheet.Clear(a.CurRow, a.CurCol)
	case tcell.KeyF2:
		// add row after current
		idx := a.CurRow + 1
		a.RowHeights = insertInt(a.RowHeights, idx, a.DefaultHeight)
		a.Sheet.InsertRow(idx)
	case tcell.KeyF3:
		// add column after current
		idx := a.CurCol + 1
		a.ColWidths = insertInt(a.ColWidths, idx, a.DefaultWidth)
		a.Sheet.InsertCol(idx)
	case tcell.KeyF4:
		// delete current row
		if len(a.RowHeights) > 1 && a.CurRow < len(a.RowHeights) {
			a.RowHeights = append(a.RowHeights[:a.CurRow], a.RowHeights[a.CurRow+1:]...)
			a.Sheet.DeleteRow(a.CurRow)
			a.CurRow = min(a.CurRow, len(a.RowHeights)-1)
		}
	case tcell.KeyF5:
		// delete current column
		if len(a.ColWidths) > 1 && a.CurCol < len(a.ColWidths) {
			a.ColWidths = append(a.ColWidths[:a.CurCol], a.ColWidths[a.CurCol+1:]...)
			a.Sheet.DeleteCol(a.CurCol)
			a.CurCol = min(a.CurCol, len(a.ColWidths)-1)
		}
	case tcell.KeyEnter:
		if a.EnterStartsEdit {
			a.startEdit()
		}
	case tcell.KeyRune:
		a.handleNormalRune(s, ev.Rune())
	}
}

func (a *App) handleNormalRune(s tcell.Screen, r rune) {
	switch r {
	case 'q':
		a.Quit = true
	case 'i':
		// vim-like insert
		a.startEdit()
	case 'x':
		a.Sheet.Clear(a.CurRow, a.CurCol)
	case ':':
		command, ok := a.PopupInput(s, ":", "")
		if ok {
			a.ExecuteCommand(command)
		}
	case '=':
		value, ok := a.PopupInput(s, "", "=")
		if ok {
			a.CommitCurrent(value)
		}
	case 'f':
		a.Mode = ModePicker
		a.PickerIdx = 0
	case 'v':
		a.Mode = ModeSelect
		a.Target = grid.Coord{Row: a.CurRow, Col: a.CurCol}
		a.Anchor = a.Target
	case '?':
		a.HelpVisible = true
	}
}

func (a *App) startEdit() {
	a.Mode = ModeInsert
	a.InputBuf = a.Sheet.EditText(a.CurRow, a.CurCol)
	a.ReplaceOnNextRune = a.SelectAllOnEdit
}

func (a *App) handleInsertKey(ev *tcell.EventKey) {
	mod := ev.Modifiers()
	switch ev.Key() {
	case tcell.KeyEsc:
		// cancel edit
		a.Mode = ModeNormal
		a.InputBuf = ""
		a.ReplaceOnNextRune = false
	case tcell.KeyEnter:
		input := a.InputBuf
		a.Mode = ModeNormal
		a.InputBuf = ""
		a.ReplaceOnNextRune = false
		a.CommitCurrent(input)
		// move after enter unless Ctrl held
		if mod&tcell.ModCtrl == 0 && a.MoveAfterEnter {
			a.moveCursor(1, 0)
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if buf := []rune(a.InputBuf); len(buf) > 0 {
			a.InputBuf = string(buf[:len(buf)-1])
		}
		a.ReplaceOnNextRune = false
	case tcell.KeyRune:
		r := ev.Rune()
		if a.ReplaceOnNextRune {
			a.InputBuf = string(r)
			a.ReplaceOnNextRune = false
		} else {
			a.InputBuf += string(r)
		}
	}
}

// CommitCurrent stores input into the cell under the cursor.
func (a *App) CommitCurrent(input string) {
	a.commitAt(a.CurRow, a.CurCol, input)
}

func (a *App) commitAt(row, col int, input string) {
	a.EnsureColExists(col)
	a.EnsureRowExists(row)
	name := grid.CoordName(grid.Coord{Row: row, Col: col})
	if err := a.Sheet.Commit(row, col, input); err != nil {
		a.Message = name + ": " + err.Error()
		a.Log.Warn("commit failed", "cell", name, "input", input, "err", err)
		return
	}
	a.Message = ""
	a.Log.Debug("commit", "cell", name, "input", input, "value", a.Sheet.Value(row, col))
}

func (a *App) handleSelectKey(s tcell.Screen, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEsc:
		a.Mode = ModeNormal
		a.CurRow, a.CurCol = a.Target.Row, a.Target.Col
	case tcell.KeyUp:
		a.moveCursor(-1, 0)
	case tcell.KeyDown:
		a.moveCursor(1, 0)
	case tcell.KeyLeft:
		a.moveCursor(0, -1)
	case tcell.KeyRight:
		a.moveCursor(0, 1)
	case tcell.KeyEnter:
		rng := a.SelectedRange()
		a.Mode = ModeNormal
		a.CurRow, a.CurCol = a.Target.Row, a.Target.Col
		formula := a.Sheet.EditText(a.CurRow, a.CurCol)
		if len(formula) == 0 || formula[0] != '=' {
			formula = calc.Template("SUM")
		}
		value, ok := a.PopupInput(s, "", calc.InsertRange(formula, rng))
		if ok {
			a.CommitCurrent(value)
		}
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			a.Anchor = grid.Coord{Row: a.CurRow, Col: a.CurCol}
		}
	}
}

// SelectedRange names the block between the anchor and the cursor.
func (a *App) SelectedRange() string {
	return grid.RangeName(a.Anchor, grid.Coord{Row: a.CurRow, Col: a.CurCol})
}

func (a *App) inSelection(r, c int) bool {
	if a.Mode != ModeSelect {
		return false
	}
	return r >= min(a.Anchor.Row, a.CurRow) && r <= max(a.Anchor.Row, a.CurRow) &&
		c >= min(a.Anchor.Col, a.CurCol) && c <= max(a.Anchor.Col, a.CurCol)
}

func (a *App) handlePickerKey(s tcell.Screen, ev *tcell.EventKey) {
	names := calc.FunctionNames()
	switch ev.Key() {
	case tcell.KeyEsc:
		a.Mode = ModeNormal
	case tcell.KeyUp:
		a.PickerIdx = (a.PickerIdx + len(names) - 1) % len(names)
	case tcell.KeyDown:
		a.PickerIdx = (a.PickerIdx + 1) % len(names)
	case tcell.KeyEnter:
		a.Mode = ModeNormal
		value, ok := a.PopupInput(s, "", calc.Template(names[a.PickerIdx]))
		if ok {
			a.CommitCurrent(value)
		}
	}
}

func (a *App) moveCursor(dr, dc int) {
	a.CurRow = max(0, a.CurRow+dr)
	a.CurCol = max(0, a.CurCol+dc)
	a.EnsureRowExists(a.CurRow)
	a.EnsureColExists(a.CurCol)
}

func (a *App) EnsureColExists(idx int) {
	for len(a.ColWidths) <= idx {
		a.ColWidths = append(a.ColWidths, a.DefaultWidth)
	}
	a.Sheet.Grow(0, len(a.ColWidths)-1)
}

func (a *App) EnsureRowExists(idx int) {
	for len(a.RowHeights) <= idx {
		a.RowHeights = append(a.RowHeights, a.DefaultHeight)
	}
	a.Sheet.Grow(len(a.RowHeights)-1, 0)
}

func isArrow(k tcell.Key) bool {
	return k == tcell.KeyUp || k == tcell.KeyDown || k == tcell.KeyLeft || k == tcell.KeyRight
}

func insertInt(s []int, idx, v int) []int {
	idx = min(max(idx, 0), len(s))
	return append(s[:idx], append([]int{v}, s[idx:]...)...)
}
