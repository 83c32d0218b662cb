// Package models defines the data objects shared across lazyclones packages.
package models

import "fmt"

// Classification is the sync state of a repository relative to its remote.
type Classification int

// Classification values. Pending and Unknown are shell states: Pending while a
// background check is running, Unknown when the check failed.
const (
	Pending Classification = iota
	UpToDate
	NeedsPull
	HasUnpushed
	HasLocalChanges
	NotARepo
	Unknown
)

// Label returns the human readable label shown next to a repository name.
func (c Classification) Label() string {
	switch c {
	case UpToDate:
		return "✅ Up to Date"
	case NeedsPull:
		return "⬇️ Needs Pull"
	case HasUnpushed:
		return "⬆️ Has Unpushed Commits"
	case HasLocalChanges:
		return "⚠️ Has Local Changes"
	case NotARepo:
		return "Not a Git Repo"
	case Unknown:
		return "❓ Status Unknown"
	default:
		return "… Checking"
	}
}

// String returns a stable machine-friendly identifier.
func (c Classification) String() string {
	switch c {
	case UpToDate:
		return "up-to-date"
	case NeedsPull:
		return "needs-pull"
	case HasUnpushed:
		return "has-unpushed"
	case HasLocalChanges:
		return "has-local-changes"
	case NotARepo:
		return "not-a-repo"
	case Unknown:
		return "unknown"
	default:
		return "pending"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Classification) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Classification) UnmarshalText(text []byte) error {
	for candidate := Pending; candidate <= Unknown; candidate++ {
		if candidate.String() == string(text) {
			*c = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown classification %q", string(text))
}

// RepoEntry is one immediate subdirectory of the root and its sync state.
// Entries are rebuilt on every load; nothing about them persists.
type RepoEntry struct {
	Name           string         `json:"name"`
	Path           string         `json:"path"`
	Classification Classification `json:"status"`
	Ahead          int            `json:"ahead,omitempty"`
	Behind         int            `json:"behind,omitempty"`
	Err            string         `json:"error,omitempty"`
}

// DisplayLabel renders the list label for the entry.
func (e RepoEntry) DisplayLabel() string {
	if e.Classification == NotARepo {
		return fmt.Sprintf("%s (Not a Git Repo)", e.Name)
	}
	return fmt.Sprintf("%s - %s", e.Name, e.Classification.Label())
}

// TreeKind distinguishes directories from files in a tree listing.
type TreeKind int

// TreeKind values.
const (
	TreeDirectory TreeKind = iota
	TreeFile
)

// TreeLine is one line of a directory tree listing.
type TreeLine struct {
	// Depth is the number of directories between the entry and the root.
	// Entries directly inside the root have depth 0.
	Depth int
	Kind  TreeKind
	Name  string
	// Root marks the line describing the walked directory itself.
	Root bool
}
