package changelog

import (
	"fmt"
	"regexp"
)

var unreleasedLinkPattern = regexp.MustCompile(`(?i)^\[unreleased\]:`)

// LinkOptions describes the comparison links for a new release.
type LinkOptions struct {
	RepoURL string
	Version string
	// PreviousTag is the prior release; empty links the version to its
	// release page instead of a comparison.
	PreviousTag string
}

// UnreleasedLink returns the rewritten [unreleased] reference line.
func (o LinkOptions) UnreleasedLink() string {
	return fmt.Sprintf("[unreleased]: %s/compare/%s...HEAD", o.RepoURL, o.Version)
}

// VersionLink returns the reference line for the new version.
func (o LinkOptions) VersionLink() string {
	if o.PreviousTag == "" {
		return fmt.Sprintf("[%s]: %s/releases/tag/%s", o.Version, o.RepoURL, o.Version)
	}
	return fmt.Sprintf("[%s]: %s/compare/%s...%s", o.Version, o.RepoURL, o.PreviousTag, o.Version)
}

type linkState int

const (
	searchingLink linkState = iota
	linkRewritten
)

// RewriteLinks replaces the first [unreleased] reference with one that
// compares against the new version and adds the version's own reference
// right after it. Documents without the reference are returned unchanged
// with false.
func RewriteLinks(d Document, opts LinkOptions) (Document, bool) {
	out := make([]string, 0, len(d.Lines)+1)
	state := searchingLink
	trailing := d.TrailingNewline

	for i, line := range d.Lines {
		if state == searchingLink && unreleasedLinkPattern.MatchString(line) {
			out = append(out, opts.UnreleasedLink(), opts.VersionLink())
			state = linkRewritten
			if i == len(d.Lines)-1 {
				trailing = true
			}
			continue
		}
		out = append(out, line)
	}

	if state == searchingLink {
		return d, false
	}
	return Document{Lines: out, TrailingNewline: trailing}, true
}
