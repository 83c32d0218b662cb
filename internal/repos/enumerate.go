// Package repos enumerates the candidate clones under a root directory.
package repos

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	log "github.com/chmouel/lazyclones/internal/log"
	"github.com/chmouel/lazyclones/internal/models"
)

var (
	// ErrRootNotFound is returned when the root directory does not exist.
	ErrRootNotFound = errors.New("directory not found")
	// ErrRootNotDirectory is returned when the root path is not a directory.
	ErrRootNotDirectory = errors.New("not a directory")
)

// List returns one Pending entry per immediate subdirectory of root, ordered
// by name. Symbolic links count when they resolve to a directory. It never
// returns a partial listing.
func List(root string) ([]models.RepoEntry, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrRootNotDirectory, root)
	}

	dirEntries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", root, err)
	}

	entries := make([]models.RepoEntry, 0, len(dirEntries))
	for _, dirEntry := range dirEntries {
		path := filepath.Join(root, dirEntry.Name())
		if !isDirectory(path, dirEntry) {
			continue
		}
		entries = append(entries, models.RepoEntry{
			Name:           dirEntry.Name(),
			Path:           path,
			Classification: models.Pending,
		})
	}

	log.Printf("enumerated %d candidates under %s", len(entries), root)
	return entries, nil
}

func isDirectory(path string, dirEntry fs.DirEntry) bool {
	if dirEntry.IsDir() {
		return true
	}
	if dirEntry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	target, err := os.Stat(path)
	return err == nil && target.IsDir()
}
