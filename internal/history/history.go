// Package history reads the documentation repository's commit history
// through go-git: date-ordered commit listings scoped to path prefixes,
// per-commit changed-file sets, and best-effort section-heading extraction.
package history

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/ngayerie/spm-doc-updates-tracker/internal/config"
	"github.com/ngayerie/spm-doc-updates-tracker/internal/logfields"
)

var (
	// ErrNotDirectory reports a repository path that does not exist or is
	// not a directory.
	ErrNotDirectory = errors.New("repository path is not a directory")
	// ErrNotRepository reports a directory without git metadata.
	ErrNotRepository = errors.New("not a git repository")
)

// Commit is one entry of the repository history. Commits are unique by hash.
type Commit struct {
	Hash    string
	Subject string
	When    time.Time
	Author  string
}

// Repo wraps an opened repository.
type Repo struct {
	path string
	repo *git.Repository
}

// Open validates the repository path and opens it. Both failure modes are
// configuration errors and fatal to the run.
func Open(path string) (*Repo, error) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, path)
	}

	repo, err := git.PlainOpen(path)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("%w: %s", ErrNotRepository, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open repository %s: %w", path, err)
	}

	return &Repo{path: path, repo: repo}, nil
}

// Path returns the repository path this Repo was opened with.
func (r *Repo) Path() string { return r.path }

// CommitsInRange lists commits whose committer date falls within the window
// and that touch at least one of the given path prefixes, in the history's
// native committer-date order. An empty result is not an error.
func (r *Repo) CommitsInRange(window config.DateRange, prefixes []string) ([]Commit, error) {
	since := window.Start
	until := window.UntilExclusive()

	iter, err := r.repo.Log(&git.LogOptions{
		Order: git.LogOrderCommitterTime,
		Since: &since,
		Until: &until,
		PathFilter: func(p string) bool {
			return hasAnyPrefix(p, prefixes)
		},
	})
	if err != nil {
		// An unborn HEAD or empty history is an empty result, not a failure.
		slog.Debug("Commit listing unavailable", logfields.Repository(r.path), logfields.Error(err))
		return nil, nil
	}
	defer iter.Close()

	var commits []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		commits = append(commits, Commit{
			Hash:    c.Hash.String(),
			Subject: subjectOf(c.Message),
			When:    c.Committer.When,
			Author:  c.Committer.Name,
		})
		return nil
	})
	if err != nil {
		// Keep what was traversed; a broken object mid-history must not
		// discard the rest of the batch.
		slog.Debug("Commit traversal stopped early", logfields.Repository(r.path), logfields.Error(err))
	}

	return commits, nil
}

// ChangedFiles returns the paths touched by a commit, diffed against its
// first parent (or the empty tree for a root commit). Unknown hashes and
// unreadable trees yield an empty set so one bad record cannot fail a run.
func (r *Repo) ChangedFiles(hash string) ([]string, error) {
	c, err := r.repo.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		slog.Debug("Unknown commit skipped", logfields.Commit(hash), logfields.Error(err))
		return nil, nil
	}

	tree, err := c.Tree()
	if err != nil {
		return nil, nil
	}

	var parentTree *object.Tree
	if c.NumParents() > 0 {
		if parent, err := c.Parent(0); err == nil {
			parentTree, _ = parent.Tree()
		}
	}

	changes, err := object.DiffTree(parentTree, tree)
	if err != nil {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(changes))
	files := make([]string, 0, len(changes))
	for _, change := range changes {
		name := change.To.Name
		if name == "" {
			name = change.From.Name
		}
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		files = append(files, name)
	}

	return files, nil
}

func subjectOf(message string) string {
	subject, _, _ := strings.Cut(message, "\n")
	return strings.TrimRight(subject, "\r")
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
