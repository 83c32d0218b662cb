// Package status classifies each clone's sync state against its remote.
package status

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/chmouel/lazyclones/internal/git"
	log "github.com/chmouel/lazyclones/internal/log"
	"github.com/chmouel/lazyclones/internal/models"
)

// ErrNotRepository marks a directory that is not a git working copy.
var ErrNotRepository = errors.New("not a git repository")

// GitRunner is the subset of the git service the classifier needs.
type GitRunner interface {
	IsWorkingCopy(path string) (bool, error)
	Fetch(ctx context.Context, path string) error
	ShortStatus(ctx context.Context, path string) (string, error)
	BranchStatus(ctx context.Context, path string) (string, error)
}

// Options tune a Classifier.
type Options struct {
	// Fetch refreshes remote-tracking refs before comparing.
	Fetch bool
	// FetchTimeout bounds the fetch step. Zero means no limit.
	FetchTimeout time.Duration
}

// Result is the outcome of classifying one clone.
type Result struct {
	Classification models.Classification
	Ahead          int
	Behind         int
}

// Classifier determines the sync state of a clone.
type Classifier struct {
	git  GitRunner
	opts Options
}

// NewClassifier returns a Classifier backed by git.
func NewClassifier(git GitRunner, opts Options) *Classifier {
	return &Classifier{git: git, opts: opts}
}

// NewGitClassifier builds a Classifier on top of a git service allowing
// limit concurrent git processes.
func NewGitClassifier(limit int, opts Options, notify git.NotifyFn) *Classifier {
	return NewClassifier(git.NewService(limit, notify), opts)
}

// Classify inspects the clone at path. A directory that is not a working
// copy yields NotARepo together with ErrNotRepository; any other failure
// returns an error and leaves the result Unknown.
func (c *Classifier) Classify(ctx context.Context, path string) (result Result, err error) {
	result.Classification = models.Unknown
	defer func() {
		if r := recover(); r != nil {
			result = Result{Classification: models.Unknown}
			err = fmt.Errorf("classify %s: panic: %v", path, r)
		}
	}()

	ok, err := c.git.IsWorkingCopy(path)
	if err != nil {
		return result, fmt.Errorf("validity check: %w", err)
	}
	if !ok {
		return Result{Classification: models.NotARepo}, fmt.Errorf("%w: %s", ErrNotRepository, path)
	}

	if c.opts.Fetch {
		if err := c.fetch(ctx, path); err != nil {
			return result, err
		}
	}

	shortStatus, err := c.git.ShortStatus(ctx, path)
	if err != nil {
		return result, err
	}
	branch, err := c.git.BranchStatus(ctx, path)
	if err != nil {
		return result, err
	}

	classification, ahead, behind := Decide(shortStatus, branch)
	log.Logger().Debug("classified",
		zap.String("path", path),
		zap.Stringer("status", classification),
		zap.Int("ahead", ahead),
		zap.Int("behind", behind),
	)
	return Result{Classification: classification, Ahead: ahead, Behind: behind}, nil
}

func (c *Classifier) fetch(ctx context.Context, path string) error {
	if c.opts.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.FetchTimeout)
		defer cancel()
	}
	if err := c.git.Fetch(ctx, path); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("fetch timed out after %s", c.opts.FetchTimeout)
		}
		return err
	}
	return nil
}

// Decide applies the priority order to raw git output: local changes first,
// then behind, then ahead, otherwise up to date. branchStatus holds the
// porcelain v2 `# branch.*` headers; only `# branch.ab` carries counts, so
// branch names never affect the result.
func Decide(shortStatus, branchStatus string) (models.Classification, int, int) {
	ahead, behind := parseTracking(branchStatus)
	switch {
	case strings.TrimSpace(shortStatus) != "":
		return models.HasLocalChanges, ahead, behind
	case behind > 0:
		return models.NeedsPull, ahead, behind
	case ahead > 0:
		return models.HasUnpushed, ahead, behind
	default:
		return models.UpToDate, ahead, behind
	}
}

// parseTracking reads counts from a line such as "# branch.ab +2 -1".
func parseTracking(branchStatus string) (ahead, behind int) {
	for _, line := range strings.Split(branchStatus, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "# branch.ab ") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 4 {
			return 0, 0
		}
		ahead, _ = strconv.Atoi(strings.TrimPrefix(parts[2], "+"))
		behind, _ = strconv.Atoi(strings.TrimPrefix(parts[3], "-"))
		return ahead, behind
	}
	return 0, 0
}
