package git

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService(t *testing.T) {
	service := NewService(3, nil)

	assert.NotNil(t, service)
	assert.Equal(t, 3, service.Limit())
	assert.NotNil(t, service.notifiedSet)

	count := 0
	for i := 0; i < 5; i++ {
		select {
		case <-service.semaphore:
			count++
		default:
		}
	}
	assert.Equal(t, 3, count)
}

func TestNewServiceDefaultLimit(t *testing.T) {
	service := NewService(0, nil)
	assert.Equal(t, DefaultLimit(), service.Limit())
	assert.GreaterOrEqual(t, DefaultLimit(), 2)
	assert.LessOrEqual(t, DefaultLimit(), 16)
}

func TestNotifyOnceDeduplicates(t *testing.T) {
	var messages []string
	service := NewService(1, func(message, _ string) {
		messages = append(messages, message)
	})

	service.notifyOnce("key", "first", "error")
	service.notifyOnce("key", "second", "error")
	service.notifyOnce("other", "third", "warning")

	assert.Equal(t, []string{"first", "third"}, messages)
}

func TestRunGit(t *testing.T) {
	requireGit(t)
	service := NewService(2, nil)
	ctx := context.Background()

	t.Run("version", func(t *testing.T) {
		out, err := service.RunGit(ctx, []string{"git", "--version"}, "", []int{0}, true)
		require.NoError(t, err)
		assert.Contains(t, out, "git version")
	})

	t.Run("unsupported command", func(t *testing.T) {
		_, err := service.RunGit(ctx, []string{"rm", "-rf", "/"}, "", []int{0}, true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported command")
	})

	t.Run("empty command", func(t *testing.T) {
		_, err := service.RunGit(ctx, nil, "", []int{0}, true)
		require.Error(t, err)
	})

	t.Run("failure carries stderr", func(t *testing.T) {
		_, err := service.RunGit(ctx, []string{"git", "status"}, t.TempDir(), []int{0}, true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "command failed: git status")
		assert.Contains(t, strings.ToLower(err.Error()), "not a git repository")
	})

	t.Run("allowed exit code", func(t *testing.T) {
		_, err := service.RunGit(ctx, []string{"git", "status"}, t.TempDir(), []int{0, 128}, true)
		require.NoError(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := service.RunGit(cancelled, []string{"git", "--version"}, "", []int{0}, true)
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestRunGitMissingBinary(t *testing.T) {
	orig := LookupPath
	LookupPath = func(string) (string, error) { return "", exec.ErrNotFound }
	t.Cleanup(func() { LookupPath = orig })

	var notified []string
	service := NewService(1, func(message, _ string) { notified = append(notified, message) })

	_, err := service.RunGit(context.Background(), []string{"git", "status"}, "", []int{0}, true)
	require.ErrorIs(t, err, exec.ErrNotFound)
	_, _ = service.RunGit(context.Background(), []string{"git", "status"}, "", []int{0}, true)
	assert.Equal(t, []string{"Command not found: git"}, notified)
}

func TestIsWorkingCopy(t *testing.T) {
	service := NewService(1, nil)

	t.Run("plain directory", func(t *testing.T) {
		ok, err := service.IsWorkingCopy(t.TempDir())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("repository", func(t *testing.T) {
		dir := t.TempDir()
		setupGitRepo(t, dir)
		ok, err := service.IsWorkingCopy(dir)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("subdirectory of a repository", func(t *testing.T) {
		dir := t.TempDir()
		setupGitRepo(t, dir)
		sub := filepath.Join(dir, "sub")
		require.NoError(t, os.Mkdir(sub, 0o750))
		ok, err := service.IsWorkingCopy(sub)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("bare repository", func(t *testing.T) {
		requireGit(t)
		dir := t.TempDir()
		runGit(t, dir, "init", "--bare", "--quiet")
		ok, err := service.IsWorkingCopy(dir)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestShortStatusAndBranchStatus(t *testing.T) {
	dir := t.TempDir()
	setupGitRepo(t, dir)
	service := NewService(1, nil)
	ctx := context.Background()

	out, err := service.ShortStatus(ctx, dir)
	require.NoError(t, err)
	assert.Empty(t, out)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("x"), 0o600))
	out, err = service.ShortStatus(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, "?? new.txt", out)

	branch, err := service.BranchStatus(ctx, dir)
	require.NoError(t, err)
	assert.Contains(t, branch, "# branch.head main")
	assert.NotContains(t, branch, "# branch.ab")
	assert.NotContains(t, branch, "new.txt")
}

func TestFetchWithRemote(t *testing.T) {
	remote, clone := setupRemoteAndClone(t)
	service := NewService(1, nil)
	ctx := context.Background()

	other := filepath.Join(t.TempDir(), "other")
	runGit(t, filepath.Dir(other), "clone", "--quiet", remote, other)
	configureUser(t, other)
	require.NoError(t, os.WriteFile(filepath.Join(other, "upstream.txt"), []byte("x"), 0o600))
	runGit(t, other, "add", ".")
	runGit(t, other, "commit", "--quiet", "-m", "upstream")
	runGit(t, other, "push", "--quiet", "origin", "main")

	require.NoError(t, service.Fetch(ctx, clone))

	branch, err := service.BranchStatus(ctx, clone)
	require.NoError(t, err)
	assert.Contains(t, branch, "# branch.upstream origin/main")
	assert.Contains(t, branch, "# branch.ab +0 -1")
}

func TestFetchFailure(t *testing.T) {
	dir := t.TempDir()
	setupGitRepo(t, dir)
	runGit(t, dir, "remote", "add", "origin", filepath.Join(t.TempDir(), "missing.git"))

	err := NewService(1, nil).Fetch(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git fetch")
}
