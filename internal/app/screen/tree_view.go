package screen

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chmouel/lazyclones/internal/theme"
	"github.com/muesli/reflow/wrap"
)

// TreeViewScreen shows a repository's directory tree in a read-only,
// scrollable popup.
type TreeViewScreen struct {
	Title    string
	Content  string
	Viewport viewport.Model
	Width    int
	Height   int
	Thm      *theme.Theme
}

// NewTreeViewScreen creates the popup titled "Contents of <name>".
func NewTreeViewScreen(name, content string, maxWidth, maxHeight int, thm *theme.Theme) *TreeViewScreen {
	s := &TreeViewScreen{
		Title: "Contents of " + name,
		Thm:   thm,
	}
	if strings.TrimSpace(content) == "" {
		content = "  "
	}
	s.Content = content
	s.Resize(maxWidth, maxHeight)
	return s
}

// Type returns the screen type.
func (s *TreeViewScreen) Type() Type {
	return TypeTreeView
}

// Resize updates modal and viewport dimensions based on terminal size.
func (s *TreeViewScreen) Resize(maxWidth, maxHeight int) {
	s.Width = 96
	s.Height = 30
	if maxWidth > 0 {
		s.Width = clampInt(int(float64(maxWidth)*0.8), 40, 120)
	}
	if maxHeight > 0 {
		s.Height = clampInt(int(float64(maxHeight)*0.8), 10, 42)
	}
	s.Viewport.Width = max(1, s.Width-6)
	s.Viewport.Height = max(3, s.Height-6)
	s.setViewportContent()
}

// Update handles scrolling and close keys.
func (s *TreeViewScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case keyQ, keyEsc, keyEscRaw, keyEnter:
		return nil, nil
	case "j", "down":
		s.Viewport.ScrollDown(1)
		return s, nil
	case "k", "up":
		s.Viewport.ScrollUp(1)
		return s, nil
	case "ctrl+d", " ":
		s.Viewport.HalfPageDown()
		return s, nil
	case "ctrl+u":
		s.Viewport.HalfPageUp()
		return s, nil
	case "g":
		s.Viewport.GotoTop()
		return s, nil
	case "G":
		s.Viewport.GotoBottom()
		return s, nil
	}

	var cmd tea.Cmd
	s.Viewport, cmd = s.Viewport.Update(msg)
	return s, cmd
}

// View renders the popup.
func (s *TreeViewScreen) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true).
		Width(s.Width - 4).
		Align(lipgloss.Center)

	footerStyle := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Width(s.Width - 4).
		Align(lipgloss.Center)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Padding(0, 1).
		Width(s.Width).
		Height(s.Height)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(s.Title),
		s.Viewport.View(),
		footerStyle.Render("q close • j/k scroll • Ctrl+D/U half page • g/G top/bottom"),
	)

	return boxStyle.Render(content)
}

// SetTheme updates the screen theme.
func (s *TreeViewScreen) SetTheme(thm *theme.Theme) {
	s.Thm = thm
}

func (s *TreeViewScreen) setViewportContent() {
	if s.Viewport.Width <= 0 {
		return
	}
	s.Viewport.SetContent(wrap.String(s.Content, s.Viewport.Width))
}
