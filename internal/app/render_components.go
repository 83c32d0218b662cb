package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/chmouel/lazyclones/internal/models"
)

var summaryOrder = []models.Classification{
	models.UpToDate,
	models.NeedsPull,
	models.HasUnpushed,
	models.HasLocalChanges,
	models.Unknown,
	models.Pending,
}

// renderHeader renders the bold title bar.
func (m *Model) renderHeader(layout layoutDims) string {
	headerStyle := lipgloss.NewStyle().
		Background(m.theme.AccentDim).
		Foreground(m.theme.TextFg).
		Bold(true).
		Width(layout.width).
		Padding(0, 2).
		Align(lipgloss.Center)
	return headerStyle.Render(HeaderTitle)
}

// renderFooter renders key hints and the per-state summary.
func (m *Model) renderFooter(layout layoutDims) string {
	footerStyle := lipgloss.NewStyle().
		Foreground(m.theme.TextFg).
		Padding(0, 1)

	hints := []string{
		m.renderKeyHint("Enter", "Tree"),
		m.renderKeyHint("r", "Refresh"),
		m.renderKeyHint("Tab", "Switch Pane"),
		m.renderKeyHint("?", "Help"),
		m.renderKeyHint("q", "Quit"),
	}
	if m.focusedPane == paneLog {
		hints[0] = m.renderKeyHint("j/k", "Scroll")
	}
	left := strings.Join(hints, "  ")
	summary := m.renderSummary()

	gap := max(layout.width-lipgloss.Width(left)-lipgloss.Width(summary)-2, 1)
	line := left + strings.Repeat(" ", gap) + summary
	return footerStyle.Width(layout.width).MaxHeight(1).Render(line)
}

func (m *Model) renderSummary() string {
	counts := make(map[models.Classification]int)
	for _, e := range m.entries {
		counts[e.Classification]++
	}
	parts := make([]string, 0, len(summaryOrder))
	for _, c := range summaryOrder {
		if counts[c] == 0 {
			continue
		}
		style := lipgloss.NewStyle().Foreground(m.theme.StatusColor(c))
		parts = append(parts, style.Render(fmt.Sprintf("%s %d", statusGlyph(c), counts[c])))
	}
	return strings.Join(parts, " ")
}

func statusGlyph(c models.Classification) string {
	label := c.Label()
	if i := strings.IndexByte(label, ' '); i > 0 {
		return label[:i]
	}
	return label
}

// renderKeyHint renders a single key hint with pill styling.
func (m *Model) renderKeyHint(key, label string) string {
	keyStyle := lipgloss.NewStyle().
		Foreground(m.theme.AccentFg).
		Background(m.theme.Accent).
		Bold(true).
		Padding(0, 1)
	labelStyle := lipgloss.NewStyle().Foreground(m.theme.Accent)
	return fmt.Sprintf("%s %s", keyStyle.Render(key), labelStyle.Render(label))
}

// renderPaneTitle always renders one line; long titles lose their head so
// the entry count stays visible.
func (m *Model) renderPaneTitle(title string, focused bool, width int) string {
	if over := lipgloss.Width(title) - width; over > 0 && width > 1 {
		title = "…" + ansi.TruncateLeft(title, over+1, "")
	}
	titleStyle := lipgloss.NewStyle().Foreground(m.theme.MutedFg).MaxHeight(1)
	if focused {
		titleStyle = titleStyle.Foreground(m.theme.TextFg).Bold(true)
	}
	return titleStyle.Width(width).MaxWidth(width).Render(title)
}

// paneStyle returns a pane style with focus indication.
func (m *Model) paneStyle(focused bool) lipgloss.Style {
	borderColor := m.theme.BorderDim
	if focused {
		borderColor = m.theme.Accent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)
}
