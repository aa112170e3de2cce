package render

import "github.com/gdamore/tcell/v2"

var (
	styleMap       = tcell.StyleDefault.Background(tcell.ColorBlack)
	styleSeparator = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleLore      = tcell.StyleDefault.Foreground(tcell.ColorLightYellow)
	styleHelp      = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleError     = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)
