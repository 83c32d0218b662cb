// Package cli implements the non-interactive lazyclones commands.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"

	"github.com/chmouel/lazyclones/internal/models"
	"github.com/chmouel/lazyclones/internal/repos"
	"github.com/chmouel/lazyclones/internal/status"
	"github.com/chmouel/lazyclones/internal/tree"
)

// Classifier determines the sync state of one clone.
type Classifier interface {
	Classify(ctx context.Context, path string) (status.Result, error)
}

var boldStyle = lipgloss.NewStyle().Bold(true)

// Collect enumerates root and classifies every entry, running at most limit
// checks at once. A failing check marks only its own entry Unknown.
func Collect(ctx context.Context, root string, classifier Classifier, limit int) ([]models.RepoEntry, error) {
	entries, err := repos.List(root)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 1
	}

	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
	for i := range entries {
		wg.Add(1)
		go func(entry *models.RepoEntry) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				entry.Classification = models.Unknown
				entry.Err = ctx.Err().Error()
				return
			}
			defer func() { <-sem }()
			classifyInto(ctx, classifier, entry)
		}(&entries[i])
	}
	wg.Wait()
	return entries, nil
}

func classifyInto(ctx context.Context, classifier Classifier, entry *models.RepoEntry) {
	defer func() {
		if r := recover(); r != nil {
			entry.Classification = models.Unknown
			entry.Err = fmt.Sprintf("panic: %v", r)
		}
	}()

	result, err := classifier.Classify(ctx, entry.Path)
	entry.Ahead = result.Ahead
	entry.Behind = result.Behind
	switch {
	case errors.Is(err, status.ErrNotRepository):
		entry.Classification = models.NotARepo
	case err != nil:
		entry.Classification = models.Unknown
		entry.Err = err.Error()
	default:
		entry.Classification = result.Classification
	}
}

// WriteTable prints entries as an aligned table.
func WriteTable(w io.Writer, entries []models.RepoEntry) {
	tbl := table.New("NAME", "STATUS", "AHEAD/BEHIND", "PATH").WithWriter(w)
	tbl.WithFirstColumnFormatter(func(format string, vals ...interface{}) string {
		return boldStyle.Render(fmt.Sprintf(format, vals...))
	})
	tbl.WithPadding(2)
	tbl.WithWidthFunc(lipgloss.Width)

	for _, e := range entries {
		label := e.Classification.Label()
		if e.Err != "" && e.Classification == models.Unknown {
			label += " (" + firstLine(e.Err) + ")"
		}
		tbl.AddRow(e.Name, label, aheadBehind(e), e.Path)
	}
	tbl.Print()
}

// WriteJSON prints entries as an indented JSON array.
func WriteJSON(w io.Writer, entries []models.RepoEntry) error {
	if entries == nil {
		entries = []models.RepoEntry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// WriteTree prints the tree of the entry called name under root. name must
// be one of the enumerated entries.
func WriteTree(w io.Writer, root, name string, opts tree.Options) error {
	entries, err := repos.List(root)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Name != name {
			continue
		}
		out, err := tree.Render(e.Path, opts)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, out)
		return err
	}
	return fmt.Errorf("no repository named %q in %s", name, filepath.Clean(root))
}

func aheadBehind(e models.RepoEntry) string {
	if e.Ahead == 0 && e.Behind == 0 {
		return "-"
	}
	return fmt.Sprintf("%d/%d", e.Ahead, e.Behind)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
