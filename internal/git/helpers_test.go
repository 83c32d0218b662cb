package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s failed: %v\n%s", strings.Join(args, " "), err, output)
	}
	return strings.TrimSpace(string(output))
}

func configureUser(t *testing.T, dir string) {
	t.Helper()
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")
	runGit(t, dir, "config", "commit.gpgsign", "false")
}

// setupGitRepo creates a repository on branch main with one commit.
func setupGitRepo(t *testing.T, dir string) {
	t.Helper()
	requireGit(t)

	runGit(t, dir, "init", "--quiet", "--initial-branch=main")
	configureUser(t, dir)
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Test Repo"), 0o600); err != nil {
		t.Fatalf("failed to write initial file: %v", err)
	}
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "--quiet", "-m", "Initial commit")
}

// setupRemoteAndClone returns a bare remote and a clone tracking its main
// branch, both holding the initial commit.
func setupRemoteAndClone(t *testing.T) (string, string) {
	t.Helper()
	requireGit(t)

	seed := t.TempDir()
	setupGitRepo(t, seed)

	remote := filepath.Join(t.TempDir(), "remote.git")
	runGit(t, seed, "clone", "--quiet", "--bare", seed, remote)

	clone := filepath.Join(t.TempDir(), "clone")
	runGit(t, filepath.Dir(clone), "clone", "--quiet", remote, clone)
	configureUser(t, clone)
	return remote, clone
}
