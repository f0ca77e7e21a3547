package changelog

import (
	"regexp"
	"strings"
)

// Skeleton is the content written when the changelog file does not exist.
const Skeleton = `<!-- markdownlint-disable MD024 -->

# Changelog

All notable changes to this project will be documented in this file.

The format is based on [Keep a Changelog](https://keepachangelog.com/en/1.1.0/),
and this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html).

## [Unreleased]

`

var (
	unreleasedHeadingPattern = regexp.MustCompile(`(?i)^##\s+\[Unreleased\]`)
	versionHeadingPattern    = regexp.MustCompile(`^##\s+\[.+\]`)
	linkDefinitionPattern    = regexp.MustCompile(`^\[[^\]]+\]:\s`)
)

// Document is a changelog file held as lines without terminators.
type Document struct {
	Lines           []string
	TrailingNewline bool
}

// ParseDocument splits content into lines. A final newline is recorded
// rather than producing an empty trailing line.
func ParseDocument(content string) Document {
	if content == "" {
		return Document{}
	}
	trailing := strings.HasSuffix(content, "\n")
	return Document{
		Lines:           strings.Split(strings.TrimSuffix(content, "\n"), "\n"),
		TrailingNewline: trailing,
	}
}

// String reassembles the document content.
func (d Document) String() string {
	if len(d.Lines) == 0 {
		return ""
	}
	out := strings.Join(d.Lines, "\n")
	if d.TrailingNewline {
		out += "\n"
	}
	return out
}

// HasUnreleasedHeading reports whether the document has an insertion anchor.
func (d Document) HasUnreleasedHeading() bool {
	for _, line := range d.Lines {
		if unreleasedHeadingPattern.MatchString(line) {
			return true
		}
	}
	return false
}

type insertState int

const (
	awaitingInsertion insertState = iota
	inserted
)

// InsertSection places section directly above the first version heading
// that follows the Unreleased heading, or at the end of the document when
// no such heading exists. The second return value is false when the
// document has no Unreleased heading; the section is then appended after
// the last content line, ahead of any trailing link references.
func InsertSection(d Document, section string) (Document, bool) {
	block := sectionLines(section)
	if !d.HasUnreleasedHeading() {
		return appendSection(d, block), false
	}

	out := make([]string, 0, len(d.Lines)+len(block)+2)
	state := awaitingInsertion
	seenUnreleased := false

	for _, line := range d.Lines {
		switch {
		case !seenUnreleased:
			seenUnreleased = unreleasedHeadingPattern.MatchString(line)
		case state == awaitingInsertion && versionHeadingPattern.MatchString(line):
			out = append(out, "")
			out = append(out, block...)
			out = append(out, "")
			state = inserted
		}
		out = append(out, line)
	}

	if state == awaitingInsertion {
		out = append(out, "")
		out = append(out, block...)
		return Document{Lines: out, TrailingNewline: true}, true
	}
	return Document{Lines: out, TrailingNewline: d.TrailingNewline}, true
}

// appendSection adds block after the document's content. A trailing run of
// link reference definitions stays at the bottom, below the new section.
func appendSection(d Document, block []string) Document {
	end := len(d.Lines)
	links := false
	for end > 0 {
		line := d.Lines[end-1]
		if linkDefinitionPattern.MatchString(line) {
			links = true
		} else if strings.TrimSpace(line) != "" {
			break
		}
		end--
	}

	out := make([]string, 0, len(d.Lines)+len(block)+1)
	if !links {
		out = append(out, d.Lines...)
		if len(out) > 0 {
			out = append(out, "")
		}
		out = append(out, block...)
		return Document{Lines: out, TrailingNewline: true}
	}

	out = append(out, d.Lines[:end]...)
	if end > 0 {
		out = append(out, "")
	}
	out = append(out, block...)
	tail := d.Lines[end:]
	for len(tail) > 0 && strings.TrimSpace(tail[0]) == "" {
		tail = tail[1:]
	}
	out = append(out, tail...)
	return Document{Lines: out, TrailingNewline: d.TrailingNewline}
}

// sectionLines splits a rendered section into document lines. A body from
// BuildSection ends in a newline, which becomes a closing blank line.
func sectionLines(section string) []string {
	return strings.Split(section, "\n")
}
