package app

import (
	"fmt"
	"strconv"
	"strings"

	"gridcalc/internal/grid"
	"gridcalc/internal/storage"
)

// ----------------------------- Commands / Storage -----------------------------

func (a *App) ExecuteCommand(cmd string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}
	switch parts[0] {
	case "q", "quit":
		a.Quit = true
	case "cw":
		if v, ok := intArg(parts, 4); ok {
			for i := range a.ColWidths {
				a.ColWidths[i] = v
			}
			a.DefaultWidth = v
		} else {
			a.Message = "usage: cw N (N >= 4)"
		}
	case "rh":
		if v, ok := intArg(parts, 1); ok {
			for i := range a.RowHeights {
				a.RowHeights[i] = v
			}
			a.DefaultHeight = v
		} else {
			a.Message = "usage: rh N (N >= 1)"
		}
	case "g", "goto":
		if len(parts) < 2 {
			a.Message = "usage: g A1"
			return
		}
		r, c, ok := grid.ParseCellRef(parts[1])
		if !ok {
			a.Message = fmt.Sprintf("bad cell reference %q", parts[1])
			return
		}
		a.CurRow, a.CurCol = r, c
		a.EnsureRowExists(r)
		a.EnsureColExists(c)
	case "o", "open":
		if len(parts) < 2 {
			a.Message = "usage: o file [sheet]"
			return
		}
		sheetName := ""
		if len(parts) >= 3 {
			sheetName = parts[2]
		}
		if err := a.Open(parts[1], sheetName); err != nil {
			a.Message = err.Error()
		}
	default:
		a.Message = fmt.Sprintf("unknown command %q", parts[0])
	}
}

func intArg(parts []string, minVal int) (int, bool) {
	if len(parts) < 2 {
		return 0, false
	}
	v, err := strconv.Atoi(parts[1])
	if err != nil || v < minVal {
		return 0, false
	}
	return v, true
}

// Open replaces the sheet with the contents of a CSV or XLSX file and
// replays its formulas.
func (a *App) Open(path, sheetName string) error {
	sh, err := storage.Load(path, sheetName)
	if err != nil {
		a.Log.Error("open failed", "path", path, "err", err)
		return fmt.Errorf("open %s: %w", path, err)
	}
	errs := sh.Replay()
	for k, e := range errs {
		a.Log.Warn("formula failed", "cell", grid.CoordName(k), "err", e)
	}

	a.Sheet = sh
	a.ColWidths = a.ColWidths[:0]
	a.RowHeights = a.RowHeights[:0]
	a.syncSizes()
	a.CurRow, a.CurCol = 0, 0
	a.ViewRow, a.ViewCol = 0, 0
	a.Message = fmt.Sprintf("loaded %s: %d cells", path, sh.Len())
	if len(errs) > 0 {
		a.Message += fmt.Sprintf(", %d formula errors", len(errs))
	}
	a.Log.Info("opened", "path", path, "cells", sh.Len(), "errors", len(errs))
	return nil
}
