// Package git reads release tags and first-parent history for generate-changelog.
// It uses the go-git library so no git binary is needed on the runner.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/rokt/generate-changelog/internal/release"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[git] repository opened successfully")
	return repo, nil
}

// Repository is a read-only view of a local repository. It satisfies release.VCS.
type Repository struct {
	repo *git.Repository
}

var _ release.VCS = (*Repository)(nil)

// Open opens the repository containing path.
func Open(path string) (*Repository, error) {
	repo, err := openRepo(path)
	if err != nil {
		return nil, err
	}
	return &Repository{repo: repo}, nil
}

// Tags returns the short names of all tags.
func (r *Repository) Tags(ctx context.Context) ([]string, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer iter.Close()

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading tags: %w", err)
	}

	logDebug("[git] found %d tags", len(names))
	return names, nil
}

// FirstParentLog walks HEAD through first parents only, newest first. When
// since names a tag, the walk ends at the first commit that is reachable
// from it, matching `git log --first-parent <since>..HEAD`.
func (r *Repository) FirstParentLog(ctx context.Context, since string) ([]release.Commit, error) {
	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD reference: %w", err)
	}

	var stop map[plumbing.Hash]struct{}
	if since != "" {
		sinceHash, err := r.tagCommit(since)
		if err != nil {
			return nil, err
		}
		if stop, err = r.ancestors(ctx, sinceHash); err != nil {
			return nil, err
		}
	}

	current, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("reading HEAD commit: %w", err)
	}

	var commits []release.Commit
	for current != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, ok := stop[current.Hash]; ok {
			break
		}

		commits = append(commits, release.Commit{
			Hash:    current.Hash.String(),
			Message: Subject(current.Message),
		})

		if current.NumParents() == 0 {
			break
		}
		current, err = current.Parent(0)
		if err != nil {
			return nil, fmt.Errorf("reading first parent of %s: %w", commits[len(commits)-1].Hash, err)
		}
	}

	logDebug("[git] %d first-parent commits since %q", len(commits), since)
	return commits, nil
}

// tagCommit resolves a tag name to the commit it points at, peeling
// annotated tags.
func (r *Repository) tagCommit(name string) (plumbing.Hash, error) {
	ref, err := r.repo.Tag(name)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving tag %s: %w", name, err)
	}

	tagObj, err := r.repo.TagObject(ref.Hash())
	switch {
	case errors.Is(err, plumbing.ErrObjectNotFound):
		return ref.Hash(), nil
	case err != nil:
		return plumbing.ZeroHash, fmt.Errorf("reading tag object %s: %w", name, err)
	}

	commit, err := tagObj.Commit()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("peeling tag %s: %w", name, err)
	}
	return commit.Hash, nil
}

// ancestors returns every commit reachable from hash through any parent.
func (r *Repository) ancestors(ctx context.Context, hash plumbing.Hash) (map[plumbing.Hash]struct{}, error) {
	start, err := r.repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", hash, err)
	}

	seen := make(map[plumbing.Hash]struct{})
	iter := object.NewCommitPreorderIter(start, nil, nil)
	defer iter.Close()

	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		seen[c.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking history of %s: %w", hash, err)
	}
	return seen, nil
}

// Subject returns the first paragraph of a commit message folded onto one
// line, like git's %s placeholder.
func Subject(message string) string {
	paragraph, _, _ := strings.Cut(strings.TrimLeft(message, "\n"), "\n\n")
	lines := strings.Split(paragraph, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, " ")
}
