package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/lazyclones/internal/app/screen"
)

// Update routes messages to the active overlay or the main view.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setWindowSize(msg.Width, msg.Height)
		return m, nil

	case reposLoadedMsg:
		return m, m.handleReposLoaded(msg)

	case classifiedMsg:
		m.handleClassified(msg)
		return m, nil

	case treeRenderedMsg:
		m.handleTreeRendered(msg)
		return m, nil

	case loadingTickMsg:
		if ls, ok := m.screens.Current().(*screen.LoadingScreen); ok {
			ls.Tick()
			return m, loadingTick()
		}
		return m, nil

	case rootChangedMsg:
		return m, m.handleRootChanged()

	case debouncedLoadMsg:
		if m.watch != nil && m.watch.ShouldRefresh(m.now()) {
			return m, m.reload()
		}
		return m, nil

	case notifyMsg:
		m.appendLog(msg.severity, msg.message)
		return m, m.waitForNotification()

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	if m.screens.IsActive() {
		next, cmd := m.screens.Current().Update(msg)
		if next == nil {
			m.screens.Pop()
		}
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m.quit()
	case "r":
		m.appendLog("info", "Refreshing "+m.root)
		return m, m.reload()
	case "?":
		m.screens.Push(screen.NewHelpScreen(m.windowWidth, m.windowHeight, m.theme))
		return m, nil
	case "tab":
		m.focusedPane = (m.focusedPane + 1) % 2
		return m, nil
	}

	if m.focusedPane == paneLog {
		return m, m.handleLogKey(msg)
	}

	switch msg.String() {
	case "enter":
		return m, m.openTree(m.list.cursor)
	case "j", "down":
		m.list.moveDown(1)
	case "k", "up":
		m.list.moveUp(1)
	case "ctrl+d", "pgdown":
		m.list.moveDown(max(m.list.height/2, 1))
	case "ctrl+u", "pgup":
		m.list.moveUp(max(m.list.height/2, 1))
	case "g", "home":
		m.list.gotoTop()
	case "G", "end":
		m.list.gotoBottom()
	}
	return m, nil
}

func (m *Model) handleLogKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "j", "down":
		m.logView.ScrollDown(1)
	case "k", "up":
		m.logView.ScrollUp(1)
	case "g", "home":
		m.logView.GotoTop()
	case "G", "end":
		m.logView.GotoBottom()
	default:
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return cmd
	}
	return nil
}

// handleMouse selects a row on click and opens its tree on a double click.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.screens.IsActive() {
		return nil
	}
	if msg.Action != tea.MouseActionPress {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.list.moveUp(1)
		return nil
	case tea.MouseButtonWheelDown:
		m.list.moveDown(1)
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}

	layout := m.computeLayout()
	idx := m.list.rowAt(msg.Y - layout.listTop)
	if msg.X >= layout.width || idx < 0 {
		m.lastClickRow = -1
		return nil
	}
	m.focusedPane = paneList
	m.list.setCursor(idx)

	now := m.now()
	if idx == m.lastClickRow && now.Sub(m.lastClickAt) <= doubleClickWindow {
		m.lastClickRow = -1
		return m.openTree(idx)
	}
	m.lastClickRow = idx
	m.lastClickAt = now
	return nil
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.Close()
	return m, tea.Quit
}
