package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// appendLog adds a line to the sync log, keeping the view pinned to the
// bottom unless the user scrolled up.
func (m *Model) appendLog(severity, message string) {
	m.debugf("%s: %s", severity, message)

	style := lipgloss.NewStyle().Foreground(m.theme.TextFg)
	switch severity {
	case "error":
		style = style.Foreground(m.theme.ErrorFg)
	case "warning":
		style = style.Foreground(m.theme.WarnFg)
	}
	stamp := lipgloss.NewStyle().Foreground(m.theme.MutedFg).Render(m.now().Format("15:04:05"))

	m.logs = append(m.logs, stamp+" "+style.Render(message))
	if len(m.logs) > maxLogLines {
		m.logs = m.logs[len(m.logs)-maxLogLines:]
	}

	atBottom := m.logView.AtBottom()
	m.logView.SetContent(strings.Join(m.logs, "\n"))
	if atBottom || m.focusedPane != paneLog {
		m.logView.GotoBottom()
	}
}

// LogLines returns the sync log without styling.
func (m *Model) LogLines() []string {
	out := make([]string, len(m.logs))
	for i, line := range m.logs {
		out[i] = ansi.Strip(line)
	}
	return out
}
