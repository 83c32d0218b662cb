// Package tree walks a clone and renders it as indented text.
package tree

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	devicons "github.com/epilande/go-devicons"

	log "github.com/chmouel/lazyclones/internal/log"
	"github.com/chmouel/lazyclones/internal/models"
)

// ErrRootMissing is returned when the directory to walk no longer exists.
var ErrRootMissing = errors.New("repository not found")

const (
	markerDirectory = "📂"
	markerFile      = "📄"
)

// Options control how a listing is formatted.
type Options struct {
	// Icons replaces the emoji markers with Nerd Font glyphs.
	Icons bool
}

// Walk lists root and everything beneath it. The first line is root itself;
// entries directly inside root have depth 0. Nothing is excluded, .git
// included. Directories that cannot be read are skipped. A symlinked root is
// followed; links to directories below it are listed as directories but not
// descended into.
func Walk(root string) ([]models.TreeLine, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRootMissing, root)
		}
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}

	lines := []models.TreeLine{{Kind: models.TreeDirectory, Name: filepath.Base(root), Root: true}}
	err = filepath.WalkDir(resolved, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == resolved {
				return walkErr
			}
			log.Printf("tree: skipping %s: %v", path, walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == resolved {
			return nil
		}
		rel, err := filepath.Rel(resolved, path)
		if err != nil {
			return err
		}
		kind := models.TreeFile
		if d.IsDir() || isDirLink(path, d) {
			kind = models.TreeDirectory
		}
		lines = append(lines, models.TreeLine{
			Depth: strings.Count(rel, string(filepath.Separator)),
			Kind:  kind,
			Name:  d.Name(),
		})
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRootMissing, root)
		}
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return lines, nil
}

func isDirLink(path string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Format renders lines one per row. The root line is not indented; every
// other line is indented two spaces per level below the root.
func Format(lines []models.TreeLine, opts Options) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if !line.Root {
			b.WriteString(strings.Repeat("  ", line.Depth+1))
		}
		b.WriteString(marker(line, opts))
		b.WriteByte(' ')
		b.WriteString(line.Name)
	}
	return b.String()
}

// Render walks root and formats the result.
func Render(root string, opts Options) (string, error) {
	lines, err := Walk(root)
	if err != nil {
		return "", err
	}
	return Format(lines, opts), nil
}

func marker(line models.TreeLine, opts Options) string {
	isDir := line.Kind == models.TreeDirectory
	if opts.Icons {
		if icon := deviconForName(line.Name, isDir); icon != "" {
			return icon
		}
	}
	if isDir {
		return markerDirectory
	}
	return markerFile
}

type iconFileInfo struct {
	name  string
	isDir bool
}

func (i iconFileInfo) Name() string { return i.name }

func (i iconFileInfo) Size() int64 { return 0 }

func (i iconFileInfo) Mode() os.FileMode {
	if i.isDir {
		return os.ModeDir | 0o755
	}
	return 0
}

func (i iconFileInfo) ModTime() time.Time { return time.Time{} }

func (i iconFileInfo) IsDir() bool { return i.isDir }

func (i iconFileInfo) Sys() any { return nil }

func deviconForName(name string, isDir bool) string {
	if name == "" {
		return ""
	}
	return devicons.IconForInfo(iconFileInfo{name: name, isDir: isDir}).Icon
}
