// Package churn derives per-file change frequency from a repository's commit history.
package churn

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// CommitsPerDay is the assumed commit density used to bound the history walk.
// A window of N days analyzes at most N*CommitsPerDay commits.
const CommitsPerDay = 10

var (
	// ErrRepository marks failures to open a repository or read its history.
	ErrRepository = errors.New("repository error")
	// ErrInvalidWindow is returned for a non-positive window.
	ErrInvalidWindow = errors.New("window must be at least one day")
)

// FrequencyMap maps slash-separated file paths to touches per day.
// Paths never touched in the window are absent.
type FrequencyMap map[string]float64

// Rate returns the change rate of path, 0 when absent.
func (f FrequencyMap) Rate(path string) float64 {
	return f[path]
}

// Analyzer walks commit history and tallies how often each path changes.
type Analyzer struct {
	logger *slog.Logger
}

// NewAnalyzer creates an analyzer. A nil logger discards output.
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Analyzer{logger: logger}
}

// Analyze is shorthand for NewAnalyzer(nil).Analyze.
func Analyze(repoPath string, windowDays int) (FrequencyMap, error) {
	return NewAnalyzer(nil).Analyze(repoPath, windowDays)
}

// Analyze computes the change frequency of every file touched in the most
// recent windowDays*CommitsPerDay non-root commits reachable from HEAD.
//
// Each commit is diffed against its first parent only, so changes that only
// arrive through a merge's other parents are not counted. Root commits are
// skipped and do not count toward the bound. Touches are credited to the
// post-change path and divided by windowDays.
//
// The repository may be rooted at or above repoPath. Keys are relative to
// repoPath; history outside it is dropped.
func (a *Analyzer) Analyze(repoPath string, windowDays int) (FrequencyMap, error) {
	if windowDays <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindow, windowDays)
	}
	start := time.Now()

	absPath, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, fmt.Errorf("%w: resolving %s: %w", ErrRepository, repoPath, err)
	}

	repo, err := git.PlainOpenWithOptions(absPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrRepository, absPath, err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("%w: resolving HEAD: %w", ErrRepository, err)
	}

	commits, err := repo.Log(&git.LogOptions{From: head.Hash(), Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("%w: walking history: %w", ErrRepository, err)
	}
	defer commits.Close()

	maxCommits := windowDays * CommitsPerDay
	counts := make(map[string]int)
	analyzed := 0

	err = commits.ForEach(func(c *object.Commit) error {
		if analyzed >= maxCommits {
			return storer.ErrStop
		}
		if c.NumParents() == 0 {
			return nil
		}
		if err := countCommit(c, counts); err != nil {
			return fmt.Errorf("commit %s: %w", c.Hash, err)
		}
		analyzed++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRepository, err)
	}

	prefix := worktreePrefix(repo, absPath)
	freq := make(FrequencyMap, len(counts))
	for name, count := range counts {
		rel, ok := rebase(name, prefix)
		if !ok {
			continue
		}
		freq[rel] = float64(count) / float64(windowDays)
	}

	a.logger.Info("change frequency analyzed",
		"repo", absPath,
		"windowDays", windowDays,
		"commits", analyzed,
		"paths", len(freq),
		"duration", time.Since(start),
	)
	return freq, nil
}

// countCommit diffs c against its first parent and increments counts for
// every changed path.
func countCommit(c *object.Commit, counts map[string]int) error {
	parent, err := c.Parent(0)
	if err != nil {
		return fmt.Errorf("reading first parent: %w", err)
	}
	parentTree, err := parent.Tree()
	if err != nil {
		return fmt.Errorf("reading parent tree: %w", err)
	}
	commitTree, err := c.Tree()
	if err != nil {
		return fmt.Errorf("reading tree: %w", err)
	}

	changes, err := object.DiffTreeWithOptions(context.Background(), parentTree, commitTree, object.DefaultDiffTreeOptions)
	if err != nil {
		return fmt.Errorf("diffing trees: %w", err)
	}

	for _, change := range changes {
		name := change.To.Name
		if name == "" {
			// Deletion: no post-change path.
			name = change.From.Name
		}
		counts[name]++
	}
	return nil
}

// worktreePrefix returns repoPath relative to the worktree root in slash
// form, or "" when repoPath is the root or the repository is bare.
func worktreePrefix(repo *git.Repository, repoPath string) string {
	wt, err := repo.Worktree()
	if err != nil {
		return ""
	}
	root := wt.Filesystem.Root()
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	if resolved, err := filepath.EvalSymlinks(repoPath); err == nil {
		repoPath = resolved
	}

	rel, err := filepath.Rel(root, repoPath)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	return filepath.ToSlash(rel)
}

// rebase strips prefix from a repository path. Paths outside prefix are rejected.
func rebase(name, prefix string) (string, bool) {
	if prefix == "" {
		return name, true
	}
	rel := strings.TrimPrefix(name, prefix+"/")
	if rel == name {
		return "", false
	}
	return path.Clean(rel), true
}
