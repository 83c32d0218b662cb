// Package theme provides theme definitions for the TUI.
package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/chmouel/lazyclones/internal/models"
)

// Theme defines all colors used in the application UI.
type Theme struct {
	Accent    lipgloss.Color
	AccentFg  lipgloss.Color // Foreground color for text on Accent background
	AccentDim lipgloss.Color
	Border    lipgloss.Color
	BorderDim lipgloss.Color
	MutedFg   lipgloss.Color
	TextFg    lipgloss.Color
	SuccessFg lipgloss.Color
	WarnFg    lipgloss.Color
	ErrorFg   lipgloss.Color
	Cyan      lipgloss.Color
	Pink      lipgloss.Color
}

// Theme names.
const (
	DraculaName    = "dracula"
	NarnaName      = "narna"
	NordName       = "nord"
	CleanLightName = "clean-light"
)

// Dracula returns the Dracula theme (dark background, vibrant colors).
func Dracula() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#BD93F9"), // Purple
		AccentFg:  lipgloss.Color("#282A36"),
		AccentDim: lipgloss.Color("#44475A"), // Current line
		Border:    lipgloss.Color("#6272A4"), // Comment
		BorderDim: lipgloss.Color("#44475A"),
		MutedFg:   lipgloss.Color("#6272A4"),
		TextFg:    lipgloss.Color("#F8F8F2"),
		SuccessFg: lipgloss.Color("#50FA7B"),
		WarnFg:    lipgloss.Color("#FFB86C"),
		ErrorFg:   lipgloss.Color("#FF5555"),
		Cyan:      lipgloss.Color("#8BE9FD"),
		Pink:      lipgloss.Color("#FF79C6"),
	}
}

// Narna returns a balanced dark theme with blue accents.
func Narna() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#41ADFF"),
		AccentFg:  lipgloss.Color("#0D1117"),
		AccentDim: lipgloss.Color("#1A2230"),
		Border:    lipgloss.Color("#30363D"),
		BorderDim: lipgloss.Color("#20252D"),
		MutedFg:   lipgloss.Color("#8B949E"),
		TextFg:    lipgloss.Color("#E6EDF3"),
		SuccessFg: lipgloss.Color("#3FB950"),
		WarnFg:    lipgloss.Color("#E3B341"),
		ErrorFg:   lipgloss.Color("#F47067"),
		Cyan:      lipgloss.Color("#7CE0F3"),
		Pink:      lipgloss.Color("#D2A8FF"),
	}
}

// Nord returns the Nord theme.
func Nord() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#88C0D0"),
		AccentFg:  lipgloss.Color("#2E3440"),
		AccentDim: lipgloss.Color("#3B4252"),
		Border:    lipgloss.Color("#4C566A"),
		BorderDim: lipgloss.Color("#434C5E"),
		MutedFg:   lipgloss.Color("#81A1C1"),
		TextFg:    lipgloss.Color("#E5E9F0"),
		SuccessFg: lipgloss.Color("#A3BE8C"),
		WarnFg:    lipgloss.Color("#EBCB8B"),
		ErrorFg:   lipgloss.Color("#BF616A"),
		Cyan:      lipgloss.Color("#88C0D0"),
		Pink:      lipgloss.Color("#B48EAD"),
	}
}

// CleanLight returns a theme for light terminal backgrounds.
func CleanLight() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#c6dbe5"),
		AccentFg:  lipgloss.Color("#24292F"),
		AccentDim: lipgloss.Color("#DDF4FF"),
		Border:    lipgloss.Color("#D0D7DE"),
		BorderDim: lipgloss.Color("#E1E4E8"),
		MutedFg:   lipgloss.Color("#6E7781"),
		TextFg:    lipgloss.Color("#24292F"),
		SuccessFg: lipgloss.Color("#1A7F37"),
		WarnFg:    lipgloss.Color("#9A6700"),
		ErrorFg:   lipgloss.Color("#CF222E"),
		Cyan:      lipgloss.Color("#0598BC"),
		Pink:      lipgloss.Color("#BF3989"),
	}
}

// GetTheme returns a theme by name, or Dracula if not found.
func GetTheme(name string) *Theme {
	switch name {
	case NarnaName:
		return Narna()
	case NordName:
		return Nord()
	case CleanLightName:
		return CleanLight()
	default:
		return Dracula()
	}
}

// AvailableThemes returns a list of available theme names.
func AvailableThemes() []string {
	return []string{
		DraculaName,
		NarnaName,
		NordName,
		CleanLightName,
	}
}

// StatusColor returns the colour used for a classification label.
func (t *Theme) StatusColor(c models.Classification) lipgloss.Color {
	switch c {
	case models.UpToDate:
		return t.SuccessFg
	case models.NeedsPull:
		return t.Cyan
	case models.HasUnpushed:
		return t.Pink
	case models.HasLocalChanges:
		return t.WarnFg
	case models.Unknown:
		return t.ErrorFg
	default:
		return t.MutedFg
	}
}
