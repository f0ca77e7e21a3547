package release

import (
	"context"
	"fmt"
	"sync"

	"github.com/rokt/generate-changelog/internal/github"
)

type fakeVCS struct {
	tags     []string
	commits  []Commit
	tagsErr  error
	logErr   error
	gotSince string
}

func (f *fakeVCS) Tags(context.Context) ([]string, error) {
	return f.tags, f.tagsErr
}

func (f *fakeVCS) FirstParentLog(_ context.Context, since string) ([]Commit, error) {
	f.gotSince = since
	return f.commits, f.logErr
}

// messages builds commits newest first with synthetic hashes.
func messages(msgs ...string) []Commit {
	commits := make([]Commit, len(msgs))
	for i, m := range msgs {
		commits[i] = Commit{Hash: fmt.Sprintf("%040d", i+1), Message: m}
	}
	return commits
}

type fakeLookup struct {
	mu     sync.Mutex
	titles map[int]string
	calls  []int
}

func (f *fakeLookup) LookupTitle(_ context.Context, number int) github.TitleResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, number)
	if title, ok := f.titles[number]; ok {
		return github.Found(title)
	}
	return github.Unavailable("not found")
}

type recordingLogger struct {
	mu    sync.Mutex
	infos []string
	warns []string
	debug []string
}

func (l *recordingLogger) Infof(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Warnf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Debugf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = append(l.debug, fmt.Sprintf(format, args...))
}
