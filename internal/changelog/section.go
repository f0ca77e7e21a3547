package changelog

import (
	"fmt"
	"strings"
)

// NoChangesNotes is the release-notes payload used when no entry qualified.
const NoChangesNotes = "No notable changes."

// FormatEntry renders a bullet line for a description. A positive ref
// appends a link to the pull request under repoURL.
func FormatEntry(description string, ref int, repoURL string) string {
	if ref <= 0 {
		return "- " + description
	}
	return fmt.Sprintf("- %s ([#%d](%s/pull/%d))", description, ref, repoURL, ref)
}

// BuildSection renders entries as the body of a release section. Categories
// appear in fixed order, empty ones are omitted, and entries keep their
// input order within a category. No entries yields the empty string.
func BuildSection(entries []Entry) string {
	grouped := make(map[Category][]string, len(entries))
	for _, e := range entries {
		grouped[e.Category] = append(grouped[e.Category], e.Text)
	}

	var lines []string
	for _, cat := range Categories() {
		texts, ok := grouped[cat]
		if !ok {
			continue
		}
		lines = append(lines, "### "+cat.String(), "")
		lines = append(lines, texts...)
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// SectionHeading returns the version heading line for a release.
func SectionHeading(version, date string) string {
	return fmt.Sprintf("## [%s] - %s", version, date)
}

// RenderSection joins the heading and a body built by BuildSection.
func RenderSection(version, date, body string) string {
	return SectionHeading(version, date) + "\n\n" + body
}
