package screen

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chmouel/lazyclones/internal/theme"
)

// Severity levels for InfoScreen.
const (
	SeverityInfo  = "info"
	SeverityError = "error"
)

// InfoScreen displays a modal message with an OK button.
type InfoScreen struct {
	Message  string
	Severity string
	Thm      *theme.Theme

	OnClose func() tea.Cmd
}

// NewInfoScreen creates an informational modal with an OK button.
func NewInfoScreen(message string, thm *theme.Theme) *InfoScreen {
	return &InfoScreen{
		Message:  message,
		Severity: SeverityInfo,
		Thm:      thm,
	}
}

// NewErrorScreen creates a modal titled by an error message.
func NewErrorScreen(message string, thm *theme.Theme) *InfoScreen {
	s := NewInfoScreen(message, thm)
	s.Severity = SeverityError
	return s
}

// Type returns the screen type.
func (s *InfoScreen) Type() Type {
	return TypeInfo
}

// Update closes the dialog on enter, esc or q.
func (s *InfoScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case keyEnter, keyEsc, keyEscRaw, keyQ:
		if s.OnClose != nil {
			return nil, s.OnClose()
		}
		return nil, nil
	}
	return s, nil
}

// View renders the dialog box with a single OK button.
func (s *InfoScreen) View() string {
	width := 60
	height := 11

	accent := s.Thm.Accent
	if s.Severity == SeverityError {
		accent = s.Thm.ErrorFg
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Width(width).
		Height(height)

	messageStyle := lipgloss.NewStyle().
		Width(width-4).
		Height(height-6).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(s.Thm.TextFg)

	okStyle := lipgloss.NewStyle().
		Width(width-6).
		Align(lipgloss.Center).
		Padding(0, 2).
		Foreground(s.Thm.AccentFg).
		Background(accent).
		Bold(true)

	content := fmt.Sprintf("%s\n\n%s",
		messageStyle.Render(s.Message),
		okStyle.Render("[OK]"),
	)

	return boxStyle.Render(content)
}

// SetTheme updates the theme for this screen.
func (s *InfoScreen) SetTheme(thm *theme.Theme) {
	s.Thm = thm
}
