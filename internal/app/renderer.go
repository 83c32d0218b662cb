package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/chmouel/lazyclones/internal/app/screen"
	"github.com/chmouel/lazyclones/internal/models"
)

// View renders the main view and any overlay.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.windowWidth == 0 || m.windowHeight == 0 {
		return "Loading..."
	}

	layout := m.computeLayout()
	m.applyLayout(layout)

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.renderListPane(layout),
		m.renderLogPane(layout),
	)
	body = truncateToHeight(body, layout.height-layout.headerHeight-layout.footerHeight)

	baseView := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(layout),
		body,
		m.renderFooter(layout),
	)

	if m.screens.IsActive() {
		scr := m.screens.Current()
		margin := 3
		if scr.Type() == screen.TypeTreeView {
			margin = 2
		}
		return m.overlayPopup(baseView, scr.View(), margin)
	}
	return baseView
}

func (m *Model) renderListPane(layout layoutDims) string {
	focused := m.focusedPane == paneList
	title := fmt.Sprintf("%s (%d)", m.root, len(m.entries))

	rows := make([]string, 0, layout.listInnerHeight)
	start, end := m.list.visible()
	for i := start; i < end; i++ {
		rows = append(rows, m.renderRow(i, layout.innerWidth))
	}
	if len(m.entries) == 0 {
		rows = append(rows, lipgloss.NewStyle().Foreground(m.theme.MutedFg).Render("No repositories."))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderPaneTitle(title, focused, layout.innerWidth),
		strings.Join(rows, "\n"),
	)
	return m.paneStyle(focused).
		Width(layout.width - 2).
		Height(layout.listHeight - 2).
		MaxHeight(layout.listHeight).
		Render(content)
}

func (m *Model) renderRow(i, width int) string {
	entry := m.entries[i]
	label := ansi.Truncate(entry.DisplayLabel(), width-1, "…")
	style := lipgloss.NewStyle().Foreground(m.theme.StatusColor(entry.Classification)).Width(width)
	if i == m.list.cursor {
		style = style.
			Foreground(m.theme.AccentFg).
			Background(m.theme.Accent).
			Bold(true)
	}
	if counts := trackingCounts(entry); counts != "" && lipgloss.Width(label)+lipgloss.Width(counts)+2 <= width {
		gap := width - lipgloss.Width(label) - lipgloss.Width(counts)
		label += strings.Repeat(" ", gap) + counts
	}
	return style.Render(label)
}

func trackingCounts(entry models.RepoEntry) string {
	var parts []string
	if entry.Ahead > 0 {
		parts = append(parts, fmt.Sprintf("↑%d", entry.Ahead))
	}
	if entry.Behind > 0 {
		parts = append(parts, fmt.Sprintf("↓%d", entry.Behind))
	}
	return strings.Join(parts, " ")
}

func (m *Model) renderLogPane(layout layoutDims) string {
	focused := m.focusedPane == paneLog
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderPaneTitle("Sync log", focused, layout.innerWidth),
		m.logView.View(),
	)
	return m.paneStyle(focused).
		Width(layout.width - 2).
		Height(layout.logHeight - 2).
		MaxHeight(layout.logHeight).
		Render(content)
}

// overlayPopup overlays a popup on top of the base view, preserving
// the portions of the base that fall outside the popup bounds so that
// underlying box borders remain visible.
func (m *Model) overlayPopup(base, popup string, marginTop int) string {
	if base == "" || popup == "" {
		return base
	}

	baseLines := strings.Split(base, "\n")
	popupLines := strings.Split(popup, "\n")

	baseWidth := lipgloss.Width(baseLines[0])
	popupWidth := lipgloss.Width(popupLines[0])

	leftPad := max((baseWidth-popupWidth)/2, 0)

	for i, line := range popupLines {
		row := marginTop + i
		if row >= len(baseLines) {
			break
		}

		leftPart := ansi.Truncate(baseLines[row], leftPad, "")
		if w := lipgloss.Width(leftPart); w < leftPad {
			leftPart += strings.Repeat(" ", leftPad-w)
		}
		rightPart := ansi.TruncateLeft(baseLines[row], leftPad+popupWidth, "")

		newLine := leftPart + line + rightPart
		if w := lipgloss.Width(newLine); w < baseWidth {
			newLine += strings.Repeat(" ", baseWidth-w)
		}
		baseLines[row] = newLine
	}

	return strings.Join(baseLines, "\n")
}

// truncateToHeight ensures output doesn't exceed maxLines.
func truncateToHeight(s string, maxLines int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return strings.Join(lines, "\n")
}
