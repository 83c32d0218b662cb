package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chmouel/lazyclones/internal/models"
	"github.com/chmouel/lazyclones/internal/repos"
	"github.com/chmouel/lazyclones/internal/status"
	"github.com/chmouel/lazyclones/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClassifier map[string]func() (status.Result, error)

func (s stubClassifier) Classify(_ context.Context, path string) (status.Result, error) {
	if fn, ok := s[filepath.Base(path)]; ok {
		return fn()
	}
	return status.Result{Classification: models.UpToDate}, nil
}

func makeRoot(t *testing.T, names ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.MkdirAll(filepath.Join(root, name), 0o750))
	}
	return root
}

func TestCollect(t *testing.T) {
	root := makeRoot(t, "alpha", "beta", "gamma", "delta")
	classifier := stubClassifier{
		"beta": func() (status.Result, error) {
			return status.Result{Classification: models.NeedsPull, Ahead: 1, Behind: 2}, nil
		},
		"gamma": func() (status.Result, error) {
			return status.Result{Classification: models.NotARepo}, status.ErrNotRepository
		},
		"delta": func() (status.Result, error) {
			return status.Result{Classification: models.Unknown}, errors.New("fetch failed")
		},
	}

	entries, err := Collect(context.Background(), root, classifier, 2)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	byName := map[string]models.RepoEntry{}
	for _, e := range entries {
		byName[e.Name] = e
	}
	assert.Equal(t, models.UpToDate, byName["alpha"].Classification)
	assert.Equal(t, models.NeedsPull, byName["beta"].Classification)
	assert.Equal(t, 2, byName["beta"].Behind)
	assert.Equal(t, models.NotARepo, byName["gamma"].Classification)
	assert.Empty(t, byName["gamma"].Err)
	assert.Equal(t, models.Unknown, byName["delta"].Classification)
	assert.Equal(t, "fetch failed", byName["delta"].Err)
}

func TestCollectRecoversPanics(t *testing.T) {
	root := makeRoot(t, "boom", "fine")
	classifier := stubClassifier{
		"boom": func() (status.Result, error) { panic("kaboom") },
	}

	entries, err := Collect(context.Background(), root, classifier, 1)
	require.NoError(t, err)
	assert.Equal(t, models.Unknown, entries[0].Classification)
	assert.Contains(t, entries[0].Err, "kaboom")
	assert.Equal(t, models.UpToDate, entries[1].Classification)
}

func TestCollectMissingRoot(t *testing.T) {
	_, err := Collect(context.Background(), filepath.Join(t.TempDir(), "none"), stubClassifier{}, 1)
	require.ErrorIs(t, err, repos.ErrRootNotFound)
}

func TestWriteTable(t *testing.T) {
	entries := []models.RepoEntry{
		{Name: "alpha", Path: "/src/alpha", Classification: models.UpToDate},
		{Name: "beta", Path: "/src/beta", Classification: models.HasUnpushed, Ahead: 3},
		{Name: "gamma", Path: "/src/gamma", Classification: models.Unknown, Err: "fetch failed\nmore"},
	}
	var buf bytes.Buffer
	WriteTable(&buf, entries)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[0], "AHEAD/BEHIND")
	assert.Contains(t, lines[1], "alpha")
	assert.Contains(t, lines[1], "✅ Up to Date")
	assert.Contains(t, lines[2], "3/0")
	assert.Contains(t, lines[3], "❓ Status Unknown (fetch failed)")
	assert.NotContains(t, buf.String(), "more")
}

func TestWriteJSONRoundTrip(t *testing.T) {
	entries := []models.RepoEntry{
		{Name: "alpha", Path: "/src/alpha", Classification: models.HasLocalChanges},
		{Name: "my - repo", Path: "/src/my - repo", Classification: models.NotARepo},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, entries))
	assert.Contains(t, buf.String(), `"status": "has-local-changes"`)

	var decoded []models.RepoEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, entries, decoded)
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteTree(t *testing.T) {
	root := makeRoot(t, "repo/sub")
	require.NoError(t, os.WriteFile(filepath.Join(root, "repo", "a.txt"), []byte("a"), 0o600))

	var buf bytes.Buffer
	require.NoError(t, WriteTree(&buf, root, "repo", tree.Options{}))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "📂 repo\n"))
	assert.Contains(t, out, "  📄 a.txt")
	assert.Contains(t, out, "  📂 sub")

	err := WriteTree(&buf, root, "other", tree.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no repository named "other"`)

	err = WriteTree(&buf, root, "../"+filepath.Base(root), tree.Options{})
	require.Error(t, err)
}
