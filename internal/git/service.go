// Package git wraps the git commands lazyclones issues against each clone.
package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"slices"
	"strings"
	"sync"

	gogit "github.com/go-git/go-git/v5"
	"go.uber.org/zap"

	log "github.com/chmouel/lazyclones/internal/log"
)

// LookupPath is used to find executables in PATH. Tests replace it to
// simulate a missing git binary.
var LookupPath = exec.LookPath

// NotifyFn receives user-facing notifications.
type NotifyFn func(message string, severity string)

// Service runs read-only git queries, bounding how many run at once.
type Service struct {
	notify      NotifyFn
	semaphore   chan struct{}
	mu          sync.Mutex
	notifiedSet map[string]bool
}

// DefaultLimit returns the number of concurrent git processes used when none
// is configured.
func DefaultLimit() int {
	limit := runtime.NumCPU()
	if limit < 2 {
		limit = 2
	}
	if limit > 16 {
		limit = 16
	}
	return limit
}

// NewService constructs a Service allowing at most limit git processes at a
// time. A non-positive limit falls back to DefaultLimit.
func NewService(limit int, notify NotifyFn) *Service {
	if limit <= 0 {
		limit = DefaultLimit()
	}
	if notify == nil {
		notify = func(string, string) {}
	}

	// The channel starts full; acquire takes a token and release returns it.
	semaphore := make(chan struct{}, limit)
	for i := 0; i < limit; i++ {
		semaphore <- struct{}{}
	}

	return &Service{
		notify:      notify,
		semaphore:   semaphore,
		notifiedSet: make(map[string]bool),
	}
}

// Limit reports the configured concurrency bound.
func (s *Service) Limit() int {
	return cap(s.semaphore)
}

func (s *Service) notifyOnce(key, message, severity string) {
	s.mu.Lock()
	seen := s.notifiedSet[key]
	s.notifiedSet[key] = true
	s.mu.Unlock()
	if !seen {
		s.notify(message, severity)
	}
}

func (s *Service) acquireSemaphore(ctx context.Context) error {
	select {
	case <-s.semaphore:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) releaseSemaphore() {
	s.semaphore <- struct{}{}
}

func prepareAllowedCommand(ctx context.Context, args []string) (*exec.Cmd, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no command provided")
	}
	if args[0] != "git" {
		return nil, fmt.Errorf("unsupported command %q", args[0])
	}
	// #nosec G204 -- arguments come from fixed internal queries and are not shell interpolated
	return exec.CommandContext(ctx, "git", args[1:]...), nil
}

// RunGit executes a git command in cwd. Exit codes listed in okReturncodes
// are treated as success. Failures carry the trimmed stderr.
func (s *Service) RunGit(ctx context.Context, args []string, cwd string, okReturncodes []int, strip bool) (string, error) {
	command := strings.Join(args, " ")
	if command == "" {
		command = "<empty>"
	}
	logger := log.Logger().With(zap.String("cmd", command), zap.String("cwd", cwd))

	cmd, err := prepareAllowedCommand(ctx, args)
	if err != nil {
		logger.Debug("rejected", zap.Error(err))
		return "", err
	}
	if _, err := LookupPath("git"); err != nil {
		s.notifyOnce("cmd_missing:git", "Command not found: git", "error")
		return "", fmt.Errorf("git not found: %w", err)
	}
	if cwd != "" {
		cmd.Dir = cwd
	}

	if err := s.acquireSemaphore(ctx); err != nil {
		return "", err
	}
	defer s.releaseSemaphore()

	logger.Debug("run")
	output, err := cmd.Output()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			logger.Debug("cancelled", zap.Error(ctxErr))
			return "", ctxErr
		}
		var exitError *exec.ExitError
		if !errors.As(err, &exitError) {
			logger.Debug("error", zap.Error(err))
			return "", fmt.Errorf("%s: %w", command, err)
		}
		returnCode := exitError.ExitCode()
		if !slices.Contains(okReturncodes, returnCode) {
			suffix := fmt.Sprintf(" (exit %d)", returnCode)
			if stderr := strings.TrimSpace(string(exitError.Stderr)); stderr != "" {
				suffix = ": " + stderr
			}
			logger.Debug("failed", zap.Int("exit", returnCode), zap.String("stderr", string(exitError.Stderr)))
			return "", fmt.Errorf("command failed: %s%s", command, suffix)
		}
	}

	out := string(output)
	if strip {
		out = strings.TrimSpace(out)
	}
	logger.Debug("ok")
	return out, nil
}

// IsWorkingCopy reports whether path is itself the top of a non-bare git
// working copy. Parent directories are not searched, so a subdirectory of
// another repository is not a working copy.
func (s *Service) IsWorkingCopy(path string) (bool, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit:          false,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return false, nil
		}
		return false, fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := repo.Worktree(); err != nil {
		if errors.Is(err, gogit.ErrIsBareRepository) {
			return false, nil
		}
		return false, fmt.Errorf("worktree %s: %w", path, err)
	}
	return true, nil
}

// Fetch refreshes remote-tracking refs for the clone at path.
func (s *Service) Fetch(ctx context.Context, path string) error {
	_, err := s.RunGit(ctx, []string{"git", "fetch", "--quiet"}, path, []int{0}, true)
	return err
}

// ShortStatus returns the output of `git status --short`, empty for a clean
// working tree.
func (s *Service) ShortStatus(ctx context.Context, path string) (string, error) {
	return s.RunGit(ctx, []string{"git", "status", "--short"}, path, []int{0}, true)
}

// BranchStatus returns the `# branch.*` header lines of
// `git status --porcelain=v2 --branch`. Porcelain output is never translated.
func (s *Service) BranchStatus(ctx context.Context, path string) (string, error) {
	out, err := s.RunGit(ctx, []string{"git", "status", "--porcelain=v2", "--branch", "--untracked-files=no"}, path, []int{0}, false)
	if err != nil {
		return "", err
	}
	var headers []string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "# branch.") {
			headers = append(headers, strings.TrimSpace(line))
		}
	}
	return strings.Join(headers, "\n"), nil
}
