package screen

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazyclones/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestInfoScreenCloses(t *testing.T) {
	thm := theme.Dracula()
	for _, k := range []string{"enter", "esc", "q"} {
		s := NewErrorScreen("Directory not found: /nope", thm)
		next, cmd := s.Update(key(k))
		assert.Nil(t, next, k)
		assert.Nil(t, cmd, k)
	}

	s := NewInfoScreen("hello", thm)
	next, _ := s.Update(key("x"))
	assert.Same(t, s, next)
}

func TestInfoScreenOnClose(t *testing.T) {
	called := false
	s := NewInfoScreen("hello", theme.Dracula())
	s.OnClose = func() tea.Cmd {
		called = true
		return nil
	}
	_, _ = s.Update(key("enter"))
	assert.True(t, called)
}

func TestInfoScreenView(t *testing.T) {
	s := NewErrorScreen("Directory not found: /nope", theme.Nord())
	view := s.View()
	assert.Contains(t, view, "Directory not found: /nope")
	assert.Contains(t, view, "[OK]")
}

func TestTreeViewScreen(t *testing.T) {
	thm := theme.Dracula()
	content := strings.Repeat("  📄 file.txt\n", 100)
	s := NewTreeViewScreen("myrepo", "📂 myrepo\n"+content, 100, 40, thm)

	assert.Equal(t, "Contents of myrepo", s.Title)
	assert.Equal(t, TypeTreeView, s.Type())
	assert.Contains(t, s.View(), "Contents of myrepo")

	next, _ := s.Update(key("j"))
	require.Same(t, s, next)
	assert.Equal(t, 1, s.Viewport.YOffset)

	_, _ = s.Update(key("G"))
	assert.True(t, s.Viewport.AtBottom())
	_, _ = s.Update(key("g"))
	assert.True(t, s.Viewport.AtTop())

	next, _ = s.Update(key("q"))
	assert.Nil(t, next)
}

func TestScreensLeaveCtrlCToModel(t *testing.T) {
	screens := []Screen{
		NewTreeViewScreen("repo", "", 80, 24, theme.Dracula()),
		NewInfoScreen("hello", theme.Dracula()),
		NewHelpScreen(80, 24, theme.Dracula()),
		NewLoadingScreen("Reading repo", theme.Dracula(), nil),
	}
	for _, s := range screens {
		next, cmd := s.Update(key("ctrl+c"))
		assert.Same(t, s, next, s.Type().String())
		assert.Nil(t, cmd, s.Type().String())
	}
}

func TestTreeViewScreenResize(t *testing.T) {
	s := NewTreeViewScreen("repo", "📂 repo", 0, 0, theme.Dracula())
	assert.Equal(t, 96, s.Width)
	assert.Equal(t, 30, s.Height)

	s.Resize(50, 20)
	assert.Equal(t, 40, s.Width)
	assert.Equal(t, 16, s.Height)
	assert.Equal(t, 34, s.Viewport.Width)
}

func TestHelpScreen(t *testing.T) {
	s := NewHelpScreen(100, 40, theme.CleanLight())
	view := s.View()
	assert.Contains(t, view, "lazyclones help")
	assert.Contains(t, view, "Rescan")

	next, _ := s.Update(key("?"))
	assert.Nil(t, next)
}

func TestLoadingScreen(t *testing.T) {
	s := NewLoadingScreen("Reading repo", theme.Dracula(), nil)
	assert.Contains(t, LoadingTips, s.Tip)
	assert.Contains(t, s.View(), "Reading repo")

	s.Tick()
	assert.Equal(t, 1, s.FrameIdx)
	next, _ := s.Update(key("q"))
	assert.Same(t, s, next)
}
