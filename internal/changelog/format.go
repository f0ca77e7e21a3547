package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// CategoryStyle defines the color and icon for a changelog category.
type CategoryStyle struct {
	Color *color.Color
	Icon  string
}

// categoryStyles maps categories to their terminal styling.
var categoryStyles = map[Category]CategoryStyle{
	Breaking:   {Color: color.New(color.FgRed, color.Bold), Icon: "!"},
	Removed:    {Color: color.New(color.FgRed), Icon: "✗"},
	Deprecated: {Color: color.New(color.FgRed), Icon: "⚠"},
	Added:      {Color: color.New(color.FgGreen), Icon: "✓"},
	Changed:    {Color: color.New(color.FgBlue), Icon: "~"},
	Fixed:      {Color: color.New(color.FgYellow), Icon: "⚡"},
	Security:   {Color: color.New(color.FgMagenta), Icon: "🔒"},
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes a release preview with color-coded category headers.
func FormatTerminal(version, date string, entries []Entry, w io.Writer, opts FormatOptions) error {
	if err := writeVersionHeader(version, date, w, opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if len(entries) == 0 {
		_, err := fmt.Fprintf(w, "\n%s\n", NoChangesNotes)
		return err
	}

	width := resolveWidth(opts.MaxWidth)
	grouped := make(map[Category][]Entry)
	for _, e := range entries {
		grouped[e.Category] = append(grouped[e.Category], e)
	}

	for _, cat := range Categories() {
		if group, ok := grouped[cat]; ok {
			if err := writeCategorySection(cat, group, w, opts, width); err != nil {
				return fmt.Errorf("formatting %s: %w", cat, err)
			}
		}
	}

	return nil
}

func writeVersionHeader(version, date string, w io.Writer, opts FormatOptions) error {
	header := version
	if date != "" {
		header = fmt.Sprintf("%s (%s)", version, date)
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

func writeCategorySection(cat Category, entries []Entry, w io.Writer, opts FormatOptions, width int) error {
	style := categoryStyles[cat]

	if opts.Plain {
		if _, err := fmt.Fprintf(w, "\n### %s\n", cat); err != nil {
			return err
		}
	} else {
		colored := style.Color.SprintFunc()
		if _, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(cat.String())); err != nil {
			return err
		}
	}

	for _, entry := range entries {
		if err := writeEntry(entry, style, w, opts, width); err != nil {
			return err
		}
	}

	return nil
}

// writeEntry writes a single changelog entry with optional wrapping.
func writeEntry(entry Entry, style CategoryStyle, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "
	text := strings.TrimPrefix(entry.Text, "- ")

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, text)
		return err
	}

	wrapped := wrapText(text, width-len(prefix), "    ")

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, colored(wrapped))
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}
