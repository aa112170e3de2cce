package replay

import "github.com/gdamore/tcell/v2"

// keyToAction maps a key event to a viewer action.
func keyToAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyLeft:
		return ActionPrev
	case tcell.KeyRight:
		return ActionNext
	case tcell.KeyHome:
		return ActionFirst
	case tcell.KeyEnd:
		return ActionLast
	case tcell.KeyUp:
		return ActionPanUp
	case tcell.KeyDown:
		return ActionPanDown
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	}
	switch ev.Rune() {
	case 'h', ',':
		return ActionPrev
	case 'l', '.':
		return ActionNext
	case 'g':
		return ActionFirst
	case 'G':
		return ActionLast
	case ' ', 'p':
		return ActionTogglePlay
	case 'f':
		return ActionToggleFOV
	case 'e':
		return ActionToggleSpawns
	case 'n':
		return ActionNewLevel
	case 'a':
		return ActionPanLeft
	case 'd':
		return ActionPanRight
	case 'w':
		return ActionPanUp
	case 's':
		return ActionPanDown
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}
