// Package screen provides the modal overlays shown above the repository list.
package screen

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Key constants for navigation.
const (
	keyEnter  = "enter"
	keyEsc    = "esc"
	keyEscRaw = "\x1b" // Raw escape byte for terminals that send ESC as a rune
	keyQ      = "q"
)

// Screen represents a modal screen overlay that can handle input and render itself.
type Screen interface {
	// Update processes a key message and returns the updated screen and any command.
	// Returning nil for the Screen signals that this screen should be closed.
	Update(msg tea.KeyMsg) (Screen, tea.Cmd)

	// View renders the screen's content.
	View() string

	// Type returns the screen's type identifier.
	Type() Type
}

// Type identifies the kind of screen being displayed.
type Type int

// Screen type constants.
const (
	TypeNone Type = iota
	TypeInfo
	TypeTreeView
	TypeHelp
	TypeLoading
)

// String returns a human-readable name for the screen type.
func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeInfo:
		return "info"
	case TypeTreeView:
		return "tree-view"
	case TypeHelp:
		return "help"
	case TypeLoading:
		return "loading"
	default:
		return "unknown"
	}
}

func clampInt(value, minValue, maxValue int) int {
	if value < minValue {
		return minValue
	}
	if value > maxValue {
		return maxValue
	}
	return value
}
