package screen

import (
	"math/rand/v2"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chmouel/lazyclones/internal/theme"
)

// LoadingTips are shown under the spinner while a tree is being walked.
var LoadingTips = []string{
	"Press '?' to view the key bindings.",
	"Press 'r' to rescan the root directory.",
	"Use Tab to move focus to the sync log.",
	"Run 'lazyclones list --json' for scriptable output.",
	"Set lc.root_dir in your git config to pick a default root.",
	"Use --no-fetch to classify against existing remote-tracking refs.",
}

// LoadingScreen displays a modal with a spinner and a random tip.
type LoadingScreen struct {
	Message       string
	FrameIdx      int
	Tip           string
	Thm           *theme.Theme
	SpinnerFrames []string
}

// DefaultSpinnerFrames returns the text-only spinner frames.
func DefaultSpinnerFrames() []string {
	return []string{"...", ".. ", ".  "}
}

// NewLoadingScreen creates a loading modal with the given message.
func NewLoadingScreen(message string, thm *theme.Theme, spinnerFrames []string) *LoadingScreen {
	frames := spinnerFrames
	if len(frames) == 0 {
		frames = DefaultSpinnerFrames()
	}

	tip := LoadingTips[rand.IntN(len(LoadingTips))] //nolint:gosec

	return &LoadingScreen{
		Message:       message,
		Tip:           tip,
		Thm:           thm,
		SpinnerFrames: frames,
	}
}

// Type returns the screen type.
func (s *LoadingScreen) Type() Type {
	return TypeLoading
}

// Update ignores keys; the model handles ctrl+c before any screen.
func (s *LoadingScreen) Update(tea.KeyMsg) (Screen, tea.Cmd) {
	return s, nil
}

// Tick advances the spinner.
func (s *LoadingScreen) Tick() {
	s.FrameIdx = (s.FrameIdx + 1) % len(s.SpinnerFrames)
}

// View renders the loading modal.
func (s *LoadingScreen) View() string {
	width := 60

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Padding(1, 2).
		Width(width)

	spinnerStyle := lipgloss.NewStyle().Foreground(s.Thm.Accent).Bold(true)
	messageStyle := lipgloss.NewStyle().Foreground(s.Thm.TextFg).Bold(true)
	tipStyle := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Italic(true).
		Width(width - 6).
		Align(lipgloss.Center)

	content := lipgloss.JoinVertical(lipgloss.Center,
		spinnerStyle.Render(s.SpinnerFrames[s.FrameIdx%len(s.SpinnerFrames)]),
		"",
		messageStyle.Render(s.Message),
		"",
		tipStyle.Render("Tip: "+s.Tip),
	)

	return boxStyle.Render(content)
}
