package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Status is the text shown under the map.
type Status struct {
	Title string
	Info  string
	Lore  string
	Help  string
	// Err replaces Lore when set.
	Err string
}

// DrawHUD renders the status block at the bottom of the screen.
func (r *Renderer) DrawHUD(s Status) {
	_, screenH := r.screen.Size()
	hudY := screenH - HUDRows

	r.drawHLine(hudY, styleSeparator)
	line := s.Title
	if s.Info != "" {
		line += "  " + s.Info
	}
	r.drawText(0, hudY+1, line, styleStatus)
	if s.Err != "" {
		r.drawText(0, hudY+2, s.Err, styleError)
	} else {
		r.drawText(0, hudY+2, s.Lore, styleLore)
	}
	r.drawText(0, hudY+3, s.Help, styleHelp)
}

// DrawCentered writes text in the middle of the screen.
func (r *Renderer) DrawCentered(text string, style tcell.Style) {
	w, h := r.screen.Size()
	x := max((w-runewidth.StringWidth(text))/2, 0)
	r.drawText(x, h/2, text, style)
}

func (r *Renderer) drawHLine(y int, style tcell.Style) {
	w, _ := r.screen.Size()
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

// drawText writes text from column x, truncating at the screen edge.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	w, _ := r.screen.Size()
	if x >= w {
		return
	}
	text = runewidth.Truncate(text, w-x, "…")
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += max(runewidth.RuneWidth(ch), 1)
	}
}
