// Package progress shows a spinner while generate-changelog walks history
// and looks up pull request titles. The spinner only runs on an interactive
// terminal; CI logs get nothing.
package progress

import (
	"os"

	"golang.org/x/term"
)

// TerminalCapabilities describes what the attached terminal can display.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
	// InCI is true under GitHub Actions or any runner that sets CI.
	InCI  bool
	Width int
}

// ProgressSymbols are the markers printed when a step finishes.
type ProgressSymbols struct {
	Checkmark  string
	Failure    string
	SpinnerSet int
}

// DetectTerminalCapabilities detects terminal features and returns capabilities.
// Checks: stderr isatty, NO_COLOR, GENERATE_CHANGELOG_ASCII, CI and GITHUB_ACTIONS.
func DetectTerminalCapabilities() TerminalCapabilities {
	fd := int(os.Stderr.Fd())
	isTTY := term.IsTerminal(fd)

	noColor := os.Getenv("NO_COLOR") != ""
	forceASCII := os.Getenv("GENERATE_CHANGELOG_ASCII") == "1"
	inCI := os.Getenv("GITHUB_ACTIONS") == "true" || os.Getenv("CI") != ""

	width := 0
	if isTTY {
		if w, _, err := term.GetSize(fd); err == nil {
			width = w
		}
	}

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor,
		SupportsUnicode: isTTY && !forceASCII,
		InCI:            inCI,
		Width:           width,
	}
}

// SpinnerEnabled reports whether an animated spinner would render cleanly.
func (c TerminalCapabilities) SpinnerEnabled() bool {
	return c.IsTTY && !c.InCI
}

// SelectSymbols returns the appropriate symbol set based on terminal capabilities.
// Unicode: ✓/✗ with braille spinner (set 14). ASCII: [OK]/[FAIL] with |/-\ spinner (set 9).
func SelectSymbols(caps TerminalCapabilities) ProgressSymbols {
	if caps.SupportsUnicode {
		return ProgressSymbols{
			Checkmark:  "✓",
			Failure:    "✗",
			SpinnerSet: 14, // ⠋ ⠙ ⠹ ⠸ ⠼ ⠴ ⠦ ⠧ ⠇ ⠏
		}
	}

	return ProgressSymbols{
		Checkmark:  "[OK]",
		Failure:    "[FAIL]",
		SpinnerSet: 9, // | / - \
	}
}
