package game

import "github.com/gdamore/tcell/v2"

// Action represents a player-requested game action.
type Action uint8

const (
	ActionNone Action = iota
	ActionStart
	ActionPause
	ActionUpgrades
	ActionSpeed
	ActionSave
	ActionLoad
	ActionRestart
	ActionShop
	ActionStats
	ActionThemes
	ActionName
	ActionClose
	ActionQuit
)

// keyToAction maps a tcell key event to a game action outside of panels.
func keyToAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape:
		return ActionClose
	case tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyRune:
	default:
		return ActionNone
	}

	switch ev.Rune() {
	case ' ':
		return ActionStart
	case 'p', 'P':
		return ActionPause
	case 'u', 'U':
		return ActionUpgrades
	case 's', 'S':
		return ActionSpeed
	case 'w', 'W':
		return ActionSave
	case 'l', 'L':
		return ActionLoad
	case 'r', 'R':
		return ActionRestart
	case 'k', 'K':
		return ActionShop
	case 't', 'T':
		return ActionStats
	case 'h', 'H':
		return ActionThemes
	case 'n', 'N':
		return ActionName
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}

// digit returns the 1-based number of a digit key, or 0.
func digit(ev *tcell.EventKey) int {
	if ev.Key() != tcell.KeyRune {
		return 0
	}
	if r := ev.Rune(); r >= '1' && r <= '9' {
		return int(r - '0')
	}
	return 0
}

// letter returns the 0-based index of a lower-case letter key, or -1.
func letter(ev *tcell.EventKey) int {
	if ev.Key() != tcell.KeyRune {
		return -1
	}
	if r := ev.Rune(); r >= 'a' && r <= 'z' {
		return int(r - 'a')
	}
	return -1
}
