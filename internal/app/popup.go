package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const maxPopupInput = 4096

// PopupInput shows a modal single-line editor over the grid. It returns the
// text and true on Enter, or "" and false on Esc or when the screen goes
// away.
func (a *App) PopupInput(s tcell.Screen, prompt, initial string) (string, bool) {
	buf := []rune(initial)
	pos := len(buf)
	promptW := runewidth.StringWidth(prompt)

	draw := func() {
		w, h := s.Size()
		boxW := min(max(40, promptW+len(buf)+6), w-2)
		left, top := (w-boxW)/2, (h-3)/2
		a.Draw(s)
		drawFrame(s, left, top, boxW, 3, popupStyle)

		x := left + 2
		a.printTextFixedWidth(s, x, top+1, prompt, popupStyle, promptW)
		x += promptW
		field := max(boxW-4-promptW, 1)
		start := max(pos-field+1, 0)
		end := min(len(buf), start+field)
		a.printTextFixedWidth(s, x, top+1, string(buf[start:end]), popupStyle, field)
		s.ShowCursor(x+runewidth.StringWidth(string(buf[start:pos])), top+1)
		s.Show()
	}

	finish := func(text string, ok bool) (string, bool) {
		s.HideCursor()
		a.Draw(s)
		return text, ok
	}

	draw()
	for {
		switch ev := s.PollEvent().(type) {
		case nil:
			return finish("", false)
		case *tcell.EventResize:
			s.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEsc:
				return finish("", false)
			case tcell.KeyEnter:
				return finish(string(buf), true)
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				if pos > 0 {
					buf = append(buf[:pos-1], buf[pos:]...)
					pos--
				}
			case tcell.KeyDelete:
				if pos < len(buf) {
					buf = append(buf[:pos], buf[pos+1:]...)
				}
			case tcell.KeyLeft:
				pos = max(pos-1, 0)
			case tcell.KeyRight:
				pos = min(pos+1, len(buf))
			case tcell.KeyHome:
				pos = 0
			case tcell.KeyEnd:
				pos = len(buf)
			case tcell.KeyRune:
				if len(buf) < maxPopupInput {
					buf = append(buf[:pos], append([]rune{ev.Rune()}, buf[pos:]...)...)
					pos++
				}
			}
		}
		draw()
	}
}
