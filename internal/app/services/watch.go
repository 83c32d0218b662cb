// Package services holds background helpers used by the TUI model.
package services

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// RootWatchDebounce is the minimum spacing between two reloads triggered by
// the watcher.
const RootWatchDebounce = 600 * time.Millisecond

// RootWatchService watches the top level of the root directory and signals
// when a clone appears, disappears or is renamed.
type RootWatchService struct {
	Started     bool
	Waiting     bool
	Root        string
	Events      chan struct{}
	Done        chan struct{}
	Watcher     *fsnotify.Watcher
	LastRefresh time.Time

	mu   sync.Mutex
	logf func(string, ...any)
}

// NewRootWatchService creates a RootWatchService.
func NewRootWatchService(logf func(string, ...any)) *RootWatchService {
	return &RootWatchService{logf: logf}
}

// Start begins watching root. It is a no-op when already started.
func (w *RootWatchService) Start(root string) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Started {
		return false, nil
	}
	info, err := os.Stat(root)
	if err != nil {
		return false, err
	}
	if !info.IsDir() {
		return false, errors.New(root + " is not a directory")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return false, err
	}
	if err := watcher.Add(root); err != nil {
		_ = watcher.Close()
		return false, err
	}

	w.Started = true
	w.Root = filepath.Clean(root)
	w.Watcher = watcher
	w.Events = make(chan struct{}, 1)
	w.Done = make(chan struct{})

	go w.run(watcher, w.Done)
	return true, nil
}

// Stop stops the watcher.
func (w *RootWatchService) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.Started {
		return
	}
	close(w.Done)
	w.Started = false
	if w.Watcher != nil {
		_ = w.Watcher.Close()
	}
}

// NextEvent returns the event channel unless a listener is already waiting.
func (w *RootWatchService) NextEvent() <-chan struct{} {
	if w.Events == nil || w.Waiting {
		return nil
	}
	w.Waiting = true
	return w.Events
}

// ResetWaiting clears the waiting flag after an event is processed.
func (w *RootWatchService) ResetWaiting() {
	w.Waiting = false
}

// ShouldRefresh applies the debounce window.
func (w *RootWatchService) ShouldRefresh(now time.Time) bool {
	if !w.LastRefresh.IsZero() && now.Sub(w.LastRefresh) < RootWatchDebounce {
		return false
	}
	w.LastRefresh = now
	return true
}

// Signal notifies listeners of watcher activity. Signals coalesce.
func (w *RootWatchService) Signal() {
	select {
	case <-w.Done:
		return
	default:
	}
	select {
	case w.Events <- struct{}{}:
	default:
	}
}

// Relevant reports whether an event on path changes the set of clones.
func (w *RootWatchService) Relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Dir(filepath.Clean(event.Name)) == w.Root
}

func (w *RootWatchService) run(watcher *fsnotify.Watcher, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !w.Relevant(event) {
				continue
			}
			w.debugf("root watcher: %s", event)
			w.Signal()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.debugf("root watcher error: %v", err)
		}
	}
}

func (w *RootWatchService) debugf(format string, args ...any) {
	if w.logf == nil {
		return
	}
	w.logf(format, args...)
}
