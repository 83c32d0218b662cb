// Package app implements the lazyclones terminal UI.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/lazyclones/internal/app/screen"
	"github.com/chmouel/lazyclones/internal/app/services"
	"github.com/chmouel/lazyclones/internal/config"
	log "github.com/chmouel/lazyclones/internal/log"
	"github.com/chmouel/lazyclones/internal/models"
	"github.com/chmouel/lazyclones/internal/status"
	"github.com/chmouel/lazyclones/internal/theme"
)

const (
	// WindowTitle is set as the terminal title.
	WindowTitle = "GitHub Repository Viewer"
	// HeaderTitle is the bold header above the list.
	HeaderTitle = "GitHub Repositories"

	doubleClickWindow = 500 * time.Millisecond
	maxLogLines       = 1000

	paneList = 0
	paneLog  = 1
)

// Classifier determines the sync state of one clone.
type Classifier interface {
	Classify(ctx context.Context, path string) (status.Result, error)
}

type notification struct {
	message  string
	severity string
}

// Model is the Bubble Tea model for the repository viewer.
type Model struct {
	config     *config.AppConfig
	theme      *theme.Theme
	classifier Classifier
	root       string

	entries []models.RepoEntry
	list    repoList
	logView viewport.Model
	logs    []string
	screens *screen.Manager

	focusedPane  int
	windowWidth  int
	windowHeight int
	quitting     bool

	// generation increases on every reload; results tagged with an older
	// generation are dropped.
	generation int
	pending    int
	loadStart  time.Time
	loadCancel context.CancelFunc
	slots      chan struct{}

	lastClickRow int
	lastClickAt  time.Time
	now          func() time.Time

	watch    *services.RootWatchService
	notifyCh chan notification

	ctx    context.Context
	cancel context.CancelFunc
}

// NewModel creates the model. A nil classifier selects the git-backed one
// configured from cfg.
func NewModel(cfg *config.AppConfig, classifier Classifier) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	ctx, cancel := context.WithCancel(context.Background())

	limit := cfg.MaxConcurrency
	if limit <= 0 {
		limit = 1
	}

	m := &Model{
		config:       cfg,
		theme:        theme.GetTheme(cfg.Theme),
		classifier:   classifier,
		root:         cfg.RootDir,
		logView:      viewport.New(40, 5),
		screens:      screen.NewManager(),
		slots:        make(chan struct{}, limit),
		lastClickRow: -1,
		now:          time.Now,
		notifyCh:     make(chan notification, 16),
		ctx:          ctx,
		cancel:       cancel,
	}
	if m.classifier == nil {
		m.classifier = status.NewGitClassifier(limit, status.Options{
			Fetch:        cfg.Fetch,
			FetchTimeout: cfg.FetchTimeout,
		}, m.notify)
	}
	return m
}

// Init sets the window title, starts the first load and the root watcher.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(WindowTitle),
		m.reload(),
		m.startRootWatcher(),
		m.waitForNotification(),
	)
}

// Close cancels every background check and stops the watcher. It is safe to
// call more than once.
func (m *Model) Close() {
	m.cancel()
	m.stopRootWatcher()
}

// Entries returns the current repository entries in list order.
func (m *Model) Entries() []models.RepoEntry {
	return m.entries
}

// SelectedEntry returns the entry under the cursor.
func (m *Model) SelectedEntry() (models.RepoEntry, bool) {
	idx := m.list.cursor
	if idx < 0 || idx >= len(m.entries) {
		return models.RepoEntry{}, false
	}
	return m.entries[idx], true
}

// notify is handed to the git service and may run on any goroutine.
func (m *Model) notify(message, severity string) {
	select {
	case m.notifyCh <- notification{message: message, severity: severity}:
	default:
		log.Printf("dropped notification: %s", message)
	}
}

func (m *Model) waitForNotification() tea.Cmd {
	ch := m.notifyCh
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case n := <-ch:
			return notifyMsg(n)
		case <-ctx.Done():
			return nil
		}
	}
}

func (m *Model) debugf(format string, args ...any) {
	log.Printf(format, args...)
}
