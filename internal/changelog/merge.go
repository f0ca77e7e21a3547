package changelog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// MergeOptions describes the release section to splice into a changelog.
type MergeOptions struct {
	Version     string
	Date        string
	RepoURL     string
	PreviousTag string
	// Body is the section body produced by BuildSection.
	Body string
}

// MergeResult reports what Merge did to the document.
type MergeResult struct {
	// Created is true when the file did not exist and the skeleton was used.
	Created bool
	// Anchored is false when the document had no Unreleased heading and
	// the section was appended at the end instead.
	Anchored     bool
	LinksUpdated bool
}

// Merge reads the changelog at path, inserts the release section below the
// Unreleased heading, updates the comparison links and writes the file back.
// A missing file is created from Skeleton.
func Merge(path string, opts MergeOptions) (MergeResult, error) {
	var result MergeResult

	content, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		content = []byte(Skeleton)
		result.Created = true
	case err != nil:
		return result, fmt.Errorf("reading changelog %s: %w", path, err)
	}

	doc, updated := MergeContent(string(content), opts)
	result.Anchored = updated.Anchored
	result.LinksUpdated = updated.LinksUpdated

	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return result, fmt.Errorf("writing changelog %s: %w", path, err)
	}
	return result, nil
}

// MergeContent applies the insertion and link passes to content in memory.
func MergeContent(content string, opts MergeOptions) (string, MergeResult) {
	var result MergeResult

	doc := ParseDocument(content)
	doc, result.Anchored = InsertSection(doc, RenderSection(opts.Version, opts.Date, opts.Body))
	doc, result.LinksUpdated = RewriteLinks(doc, LinkOptions{
		RepoURL:     opts.RepoURL,
		Version:     opts.Version,
		PreviousTag: opts.PreviousTag,
	})

	return doc.String(), result
}
