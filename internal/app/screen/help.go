package screen

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chmouel/lazyclones/internal/theme"
)

var helpLines = []string{
	"Navigation",
	"  j / down     Move down",
	"  k / up       Move up",
	"  g / G        First / last repository",
	"  tab          Switch focus between list and sync log",
	"",
	"Repositories",
	"  enter        Show the directory tree of the selection",
	"  double-click Same as enter",
	"  r            Rescan the root directory and classify again",
	"",
	"Status labels",
	"  ✅ Up to Date          nothing to pull, push or commit",
	"  ⬇️ Needs Pull          remote has commits you lack",
	"  ⬆️ Has Unpushed        local commits not on the remote",
	"  ⚠️ Has Local Changes   uncommitted or untracked files",
	"  ❓ Status Unknown      the check failed, see the sync log",
	"",
	"General",
	"  ?            Toggle this help",
	"  q / ctrl+c   Quit",
}

// HelpScreen lists the key bindings.
type HelpScreen struct {
	Viewport viewport.Model
	Width    int
	Height   int
	Thm      *theme.Theme
}

// NewHelpScreen sizes the help popup to the terminal.
func NewHelpScreen(maxWidth, maxHeight int, thm *theme.Theme) *HelpScreen {
	s := &HelpScreen{Thm: thm}
	s.Resize(maxWidth, maxHeight)
	return s
}

// Type returns the screen type.
func (s *HelpScreen) Type() Type {
	return TypeHelp
}

// Resize fits the popup inside the terminal.
func (s *HelpScreen) Resize(maxWidth, maxHeight int) {
	s.Width = clampInt(maxWidth-4, 40, 72)
	s.Height = clampInt(maxHeight-4, 8, len(helpLines)+4)
	s.Viewport.Width = max(1, s.Width-4)
	s.Viewport.Height = max(3, s.Height-4)
	s.Viewport.SetContent(strings.Join(helpLines, "\n"))
}

// Update scrolls or closes the help popup.
func (s *HelpScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case "?", keyQ, keyEsc, keyEscRaw, keyEnter:
		return nil, nil
	case "j", "down":
		s.Viewport.ScrollDown(1)
		return s, nil
	case "k", "up":
		s.Viewport.ScrollUp(1)
		return s, nil
	}
	return s, nil
}

// View renders the help popup.
func (s *HelpScreen) View() string {
	title := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true).
		Render("lazyclones help")
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Padding(0, 1).
		Width(s.Width)
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", s.Viewport.View()))
}
