package release

import "context"

// Walker finds the previous release and the commits made since.
type Walker struct {
	vcs    VCS
	prefix string
	log    Logger
}

// NewWalker creates a walker over vcs that treats tags with prefix as releases.
func NewWalker(vcs VCS, prefix string, log Logger) *Walker {
	return &Walker{vcs: vcs, prefix: prefix, log: loggerOrNop(log)}
}

// LastTag returns the latest release tag. A failure to list tags is logged
// and treated as no previous release.
func (w *Walker) LastTag(ctx context.Context) (string, bool) {
	labels, err := w.vcs.Tags(ctx)
	if err != nil {
		w.log.Warnf("could not list tags: %v", err)
		return "", false
	}
	return LatestTag(labels, w.prefix)
}

// Commits returns the first-parent commits after since, newest first, with
// noise commits removed. A failure to read history is logged and yields no
// commits.
func (w *Walker) Commits(ctx context.Context, since string) []Commit {
	history, err := w.vcs.FirstParentLog(ctx, since)
	if err != nil {
		w.log.Warnf("could not read commit history: %v", err)
		return nil
	}

	commits := make([]Commit, 0, len(history))
	for _, c := range history {
		if c.Message == "" {
			continue
		}
		if IsNoise(c.Message) {
			w.log.Debugf("skipping %s: %s", shortHash(c.Hash), c.Message)
			continue
		}
		commits = append(commits, c)
	}
	return commits
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
