package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/lazyclones/internal/app/screen"
	"github.com/chmouel/lazyclones/internal/models"
	"github.com/chmouel/lazyclones/internal/repos"
	"github.com/chmouel/lazyclones/internal/status"
	"github.com/chmouel/lazyclones/internal/tree"
)

// reload starts a new enumeration pass. Checks still running from the
// previous pass are cancelled and their results ignored.
func (m *Model) reload() tea.Cmd {
	if m.loadCancel != nil {
		m.loadCancel()
	}
	m.generation++
	m.loadStart = m.now()
	generation := m.generation
	root := m.root
	return func() tea.Msg {
		entries, err := repos.List(root)
		return reposLoadedMsg{generation: generation, entries: entries, err: err}
	}
}

func (m *Model) handleReposLoaded(msg reposLoadedMsg) tea.Cmd {
	if msg.generation != m.generation {
		return nil
	}
	m.entries = msg.entries
	m.pending = 0
	m.list.setLen(len(m.entries))

	if msg.err != nil {
		m.entries = nil
		m.list.setLen(0)
		message := fmt.Sprintf("Cannot read %s: %v", m.root, msg.err)
		if errors.Is(msg.err, repos.ErrRootNotFound) {
			message = "Directory not found: " + m.root
		}
		m.appendLog("error", message)
		m.showError(message)
		return nil
	}

	ctx, cancel := context.WithCancel(m.ctx)
	m.loadCancel = cancel

	m.appendLog("info", fmt.Sprintf("Found %d directories in %s", len(m.entries), m.root))
	cmds := make([]tea.Cmd, 0, len(m.entries))
	for i, entry := range m.entries {
		cmds = append(cmds, m.classifyCmd(ctx, msg.generation, i, entry.Path))
	}
	m.pending = len(cmds)
	return tea.Batch(cmds...)
}

// classifyCmd checks one clone inside its own failure boundary, waiting for
// a free slot first.
func (m *Model) classifyCmd(ctx context.Context, generation, index int, path string) tea.Cmd {
	classifier := m.classifier
	slots := m.slots
	return func() (msg tea.Msg) {
		out := classifiedMsg{generation: generation, index: index, path: path}
		select {
		case slots <- struct{}{}:
		case <-ctx.Done():
			out.err = ctx.Err()
			return out
		}
		defer func() { <-slots }()
		defer func() {
			if r := recover(); r != nil {
				out.result = status.Result{Classification: models.Unknown}
				out.err = fmt.Errorf("panic: %v", r)
				msg = out
			}
		}()

		out.result, out.err = classifier.Classify(ctx, path)
		return out
	}
}

func (m *Model) handleClassified(msg classifiedMsg) {
	if msg.generation != m.generation {
		m.debugf("dropping stale result for %s (generation %d)", msg.path, msg.generation)
		return
	}
	if msg.index < 0 || msg.index >= len(m.entries) || m.entries[msg.index].Path != msg.path {
		return
	}
	if errors.Is(msg.err, context.Canceled) {
		return
	}

	entry := &m.entries[msg.index]
	entry.Ahead = msg.result.Ahead
	entry.Behind = msg.result.Behind
	entry.Err = ""
	switch {
	case errors.Is(msg.err, status.ErrNotRepository):
		entry.Classification = models.NotARepo
		m.appendLog("info", entry.DisplayLabel())
	case msg.err != nil:
		entry.Classification = models.Unknown
		entry.Err = msg.err.Error()
		m.appendLog("error", fmt.Sprintf("%s: %s", entry.Name, entry.Err))
	default:
		entry.Classification = msg.result.Classification
		m.appendLog("info", entry.DisplayLabel())
	}

	if m.pending > 0 {
		m.pending--
		if m.pending == 0 {
			elapsed := m.now().Sub(m.loadStart).Round(10 * time.Millisecond)
			m.appendLog("info", fmt.Sprintf("Checked %d repositories in %s", len(m.entries), elapsed))
		}
	}
}

// openTree renders the tree of the entry at index in the background behind a
// loading overlay.
func (m *Model) openTree(index int) tea.Cmd {
	if index < 0 || index >= len(m.entries) {
		return nil
	}
	entry := m.entries[index]
	m.screens.Push(screen.NewLoadingScreen("Reading "+entry.Name, m.theme, nil))
	return tea.Batch(renderTreeCmd(entry, m.config.ShowIcons), loadingTick())
}

func (m *Model) handleTreeRendered(msg treeRenderedMsg) {
	m.screens.Remove(screen.TypeLoading)
	if msg.err != nil {
		message := fmt.Sprintf("Cannot read %s: %v", msg.entry.Path, msg.err)
		if errors.Is(msg.err, tree.ErrRootMissing) {
			message = "Repository not found: " + msg.entry.Path
		}
		m.appendLog("error", message)
		m.showError(message)
		return
	}
	m.screens.Push(screen.NewTreeViewScreen(msg.entry.Name, msg.content, m.windowWidth, m.windowHeight, m.theme))
}

func renderTreeCmd(entry models.RepoEntry, icons bool) tea.Cmd {
	return func() tea.Msg {
		content, err := tree.Render(entry.Path, tree.Options{Icons: icons})
		return treeRenderedMsg{entry: entry, content: content, err: err}
	}
}

func loadingTick() tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(time.Time) tea.Msg {
		return loadingTickMsg{}
	})
}

func (m *Model) showError(message string) {
	m.screens.Remove(screen.TypeInfo)
	m.screens.Push(screen.NewErrorScreen(message, m.theme))
}
