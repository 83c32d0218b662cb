package repos

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/chmouel/lazyclones/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(entries []models.RepoEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func TestListImmediateSubdirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "beta", "nested"), 0o750))
	require.NoError(t, os.Mkdir(filepath.Join(root, "alpha"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o600))

	entries, err := List(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "beta"}, names(entries))
	for _, e := range entries {
		assert.Equal(t, filepath.Join(root, e.Name), e.Path)
		assert.Equal(t, models.Pending, e.Classification)
	}
}

func TestListEmptyRoot(t *testing.T) {
	entries, err := List(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListMissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone")

	entries, err := List(missing)
	require.ErrorIs(t, err, ErrRootNotFound)
	assert.Nil(t, entries)
	assert.Contains(t, err.Error(), missing)
}

func TestListRootIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	_, err := List(file)
	require.ErrorIs(t, err, ErrRootNotDirectory)
}

func TestListFollowsDirectorySymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	root := t.TempDir()
	target := t.TempDir()
	require.NoError(t, os.Symlink(target, filepath.Join(root, "linked")))
	require.NoError(t, os.Symlink(filepath.Join(root, "missing"), filepath.Join(root, "dangling")))

	entries, err := List(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"linked"}, names(entries))
}
