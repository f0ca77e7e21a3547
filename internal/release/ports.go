// Package release turns version-control history into changelog entries:
// it finds the previous release tag, walks the commits since then, resolves
// pull request titles and classifies each commit.
package release

import (
	"context"

	"github.com/rokt/generate-changelog/internal/github"
)

// Commit is one first-parent commit. Message is the subject line only.
type Commit struct {
	Hash    string
	Message string
}

// VCS is the version-control collaborator.
type VCS interface {
	// Tags lists every tag name in the repository.
	Tags(ctx context.Context) ([]string, error)
	// FirstParentLog lists first-parent commits from HEAD, newest first,
	// stopping at commits reachable from since. An empty since walks the
	// whole history.
	FirstParentLog(ctx context.Context, since string) ([]Commit, error)
}

// TitleLookup fetches the authoritative title of a pull request.
type TitleLookup interface {
	LookupTitle(ctx context.Context, number int) github.TitleResult
}

// Logger receives diagnostics from the pipeline. Collaborator failures are
// reported through Warnf and never returned as errors.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Debugf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Debugf(string, ...any) {}

func loggerOrNop(log Logger) Logger {
	if log == nil {
		return nopLogger{}
	}
	return log
}
