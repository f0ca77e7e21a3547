package release

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rokt/generate-changelog/internal/changelog"
	"github.com/rokt/generate-changelog/internal/config"
)

// Plan is everything a run knows before it touches the changelog file.
type Plan struct {
	// LastTag is the previous release, empty when there is none.
	LastTag string
	Entries []changelog.Entry
	// Body is the rendered section body, empty when Entries is empty.
	Body string
	// Notes is Body, or the no-changes sentinel when Body is empty.
	Notes string
}

// HasChanges reports whether any entry qualified.
func (p *Plan) HasChanges() bool {
	return len(p.Entries) > 0
}

// Result is the outcome of Generate.
type Result struct {
	*Plan
	// Updated is false when there was nothing to write.
	Updated bool
	Merge   changelog.MergeResult
}

// Generator runs the changelog pipeline for one release.
type Generator struct {
	cfg      *config.ReleaseConfig
	walker   *Walker
	resolver *Resolver
	log      Logger
}

// NewGenerator wires a generator. lookup may be nil to skip title lookups.
func NewGenerator(cfg *config.ReleaseConfig, vcs VCS, lookup TitleLookup, log Logger) *Generator {
	log = loggerOrNop(log)
	return &Generator{
		cfg:      cfg,
		walker:   NewWalker(vcs, cfg.TagPrefix, log),
		resolver: NewResolver(lookup, log),
		log:      log,
	}
}

// Plan walks history and classifies every commit without writing anything.
func (g *Generator) Plan(ctx context.Context) (*Plan, error) {
	lastTag, ok := g.walker.LastTag(ctx)
	if ok {
		g.log.Infof("Last release tag: %s", lastTag)
	} else {
		g.log.Infof("No previous release tag found, including all commits")
	}

	commits := g.walker.Commits(ctx, lastTag)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := g.entries(ctx, commits)
	if err != nil {
		return nil, err
	}

	body := changelog.BuildSection(entries)
	notes := body
	if notes == "" {
		notes = changelog.NoChangesNotes
	}

	return &Plan{LastTag: lastTag, Entries: entries, Body: body, Notes: notes}, nil
}

// Generate plans the release and applies it.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	plan, err := g.Plan(ctx)
	if err != nil {
		return nil, err
	}
	return g.Apply(plan)
}

// Apply merges a plan into the changelog file. When no entries qualified
// the file is left untouched.
func (g *Generator) Apply(plan *Plan) (*Result, error) {
	result := &Result{Plan: plan}
	if !plan.HasChanges() {
		g.log.Infof("No changelog entries found between %s and HEAD", orBeginning(plan.LastTag))
		return result, nil
	}

	merged, err := changelog.Merge(g.cfg.ChangelogPath, changelog.MergeOptions{
		Version:     g.cfg.Version,
		Date:        g.cfg.Date,
		RepoURL:     g.cfg.RepoURL,
		PreviousTag: plan.LastTag,
		Body:        plan.Body,
	})
	if err != nil {
		return nil, fmt.Errorf("merging release %s: %w", g.cfg.Version, err)
	}

	if merged.Created {
		g.log.Warnf("%s not found, created it", g.cfg.ChangelogPath)
	}
	if !merged.Anchored {
		g.log.Warnf("no [Unreleased] heading in %s, appended %s at the end", g.cfg.ChangelogPath, g.cfg.Version)
	}
	if !merged.LinksUpdated {
		g.log.Debugf("no [unreleased] link in %s, comparison links unchanged", g.cfg.ChangelogPath)
	}

	result.Updated = true
	result.Merge = merged
	return result, nil
}

// entries resolves and classifies commits concurrently. Each result lands
// at its commit's index so newest-first order survives.
func (g *Generator) entries(ctx context.Context, commits []Commit) ([]changelog.Entry, error) {
	slots := make([]*changelog.Entry, len(commits))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(g.cfg.LookupConcurrency, 1))
	for i, c := range commits {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if entry, ok := g.entryFor(ctx, c); ok {
				slots[i] = &entry
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	entries := make([]changelog.Entry, 0, len(slots))
	for _, e := range slots {
		if e != nil {
			entries = append(entries, *e)
		}
	}
	return entries, nil
}

// entryFor turns one commit into an entry, or reports false when the
// commit's type is excluded. Breaking changes are never excluded.
func (g *Generator) entryFor(ctx context.Context, c Commit) (changelog.Entry, bool) {
	res := g.resolver.Resolve(ctx, c.Message)
	cls := changelog.Classify(res.Title)

	if !cls.Breaking && cls.Type != "" && g.cfg.Excludes(cls.Type) {
		g.log.Debugf("excluding %s (%s)", shortHash(c.Hash), cls.Type)
		return changelog.Entry{}, false
	}

	return changelog.Entry{
		Category: cls.Category,
		Text:     changelog.FormatEntry(cls.Description, res.Ref, g.cfg.RepoURL),
	}, true
}

func orBeginning(tag string) string {
	if tag == "" {
		return "beginning"
	}
	return tag
}
