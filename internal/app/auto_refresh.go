package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/lazyclones/internal/app/services"
)

func (m *Model) startRootWatcher() tea.Cmd {
	if !m.config.AutoRefresh {
		return nil
	}
	if m.watch == nil {
		m.watch = services.NewRootWatchService(m.debugf)
	}
	started, err := m.watch.Start(m.root)
	if err != nil {
		m.debugf("auto refresh disabled: %v", err)
		return nil
	}
	if !started {
		return nil
	}
	return m.waitForRootEvent()
}

func (m *Model) stopRootWatcher() {
	if m.watch == nil {
		return
	}
	m.watch.Stop()
}

func (m *Model) waitForRootEvent() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	events := m.watch.NextEvent()
	if events == nil {
		return nil
	}
	done := m.watch.Done
	return func() tea.Msg {
		select {
		case _, ok := <-events:
			if !ok {
				return nil
			}
			return rootChangedMsg{}
		case <-done:
			return nil
		}
	}
}

// handleRootChanged reloads now, or once the debounce window has passed.
func (m *Model) handleRootChanged() tea.Cmd {
	m.watch.ResetWaiting()
	wait := m.waitForRootEvent()
	if m.watch.ShouldRefresh(m.now()) {
		m.appendLog("info", "Root directory changed, reloading")
		return tea.Batch(m.reload(), wait)
	}
	delay := tea.Tick(services.RootWatchDebounce, func(time.Time) tea.Msg {
		return debouncedLoadMsg{}
	})
	return tea.Batch(delay, wait)
}
