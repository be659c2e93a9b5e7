package app

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

var splashArt = []string{
	"  ___ ___ ___ ___   ___   _   _    ___ ",
	" / __| _ \\_ _|   \\ / __| /_\\ | |  / __|",
	"| (_ |   /| || |) | (__ / _ \\| |_| (__ ",
	" \\___|_|_\\___|___/ \\___/_/ \\_\\____\\___|",
}

const splashHint = "press any key"

// SplashScreen types the banner out line by line and waits for a key or a
// short timeout.
func SplashScreen(s tcell.Screen) {
	s.Clear()
	w, h := s.Size()
	top := (h - len(splashArt) - 2) / 2
	style := tcell.StyleDefault.Foreground(tcell.ColorYellow)

	for i, line := range splashArt {
		left := (w - runewidth.StringWidth(line)) / 2
		col := 0
		for _, r := range line {
			s.SetContent(left+col, top+i, r, nil, style)
			col += runewidth.RuneWidth(r)
		}
		s.Show()
		time.Sleep(40 * time.Millisecond)
	}
	left := (w - len(splashHint)) / 2
	for i, r := range splashHint {
		s.SetContent(left+i, top+len(splashArt)+1, r, nil, tcell.StyleDefault.Dim(true))
	}
	s.Show()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			switch s.PollEvent().(type) {
			case *tcell.EventKey, *tcell.EventInterrupt, nil:
				return
			}
		}
	}()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		// wake the poller so it does not steal the next key
		_ = s.PostEvent(tcell.NewEventInterrupt(nil))
		<-done
	}
}
