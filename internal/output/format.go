// Package output writes the run log of generate-changelog. Under GitHub
// Actions it speaks workflow commands (groups, warnings, debug lines);
// elsewhere it prints colored text.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// InGitHubActions reports whether the process runs inside a GitHub Actions job.
func InGitHubActions() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true"
}

// Logger prints progress and diagnostics. Info and workflow commands go to
// out; in a terminal, warnings and debug lines go to errOut.
type Logger struct {
	out     io.Writer
	errOut  io.Writer
	actions bool
	debug   bool
}

// NewLogger creates a logger. actions selects workflow command syntax and
// debug enables Debugf.
func NewLogger(out, errOut io.Writer, actions, debug bool) *Logger {
	return &Logger{out: out, errOut: errOut, actions: actions, debug: debug}
}

// Group opens a collapsible log group.
func (l *Logger) Group(title string) {
	if l.actions {
		fmt.Fprintf(l.out, "::group::%s\n", title)
		return
	}
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Fprintf(l.out, "%s\n", cyan(title))
}

// EndGroup closes the group opened by Group.
func (l *Logger) EndGroup() {
	if l.actions {
		fmt.Fprintln(l.out, "::endgroup::")
	}
}

// Infof prints a plain progress line.
func (l *Logger) Infof(format string, args ...any) {
	fmt.Fprintf(l.out, format+"\n", args...)
}

// Warnf prints a warning, as an annotation under Actions.
func (l *Logger) Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if l.actions {
		fmt.Fprintf(l.out, "::warning::%s\n", escapeData(msg))
		return
	}
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Fprintf(l.errOut, "%s %s\n", yellow("Warning:"), msg)
}

// Debugf prints a diagnostic line when debug is enabled.
func (l *Logger) Debugf(format string, args ...any) {
	if !l.debug {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if l.actions {
		fmt.Fprintf(l.out, "::debug::%s\n", escapeData(msg))
		return
	}
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintln(l.errOut, dim("[debug] "+msg))
}

// PrintStageSuccess prints a green checkmark line.
func PrintStageSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), cyan(message))
}

// PrintBlock prints a titled block of text between rule lines.
func PrintBlock(out io.Writer, title, body string) {
	fmt.Fprintf(out, "%s\n---\n%s\n---\n", title, strings.TrimRight(body, "\n"))
}

// escapeData encodes characters that would end a workflow command early.
func escapeData(s string) string {
	r := strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	return r.Replace(s)
}
