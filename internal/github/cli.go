package github

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// CommandFactory builds the process used to run gh. It exists so tests
// can substitute a helper process.
type CommandFactory func(ctx context.Context, name string, args ...string) *exec.Cmd

// CLILookup asks the gh CLI for pull request titles. gh picks the
// repository from the working directory and its own credentials.
type CLILookup struct {
	// Dir is the working directory for gh, usually the repository root.
	Dir     string
	Timeout time.Duration
	command CommandFactory
}

// NewCLILookup creates a lookup that runs gh in dir.
func NewCLILookup(dir string, timeout time.Duration) *CLILookup {
	return &CLILookup{Dir: dir, Timeout: timeout, command: exec.CommandContext}
}

// WithCommand replaces the process factory.
func (l *CLILookup) WithCommand(factory CommandFactory) *CLILookup {
	l.command = factory
	return l
}

// LookupTitle runs `gh pr view <n> --json title --jq .title`. Any failure,
// including a non-zero exit or empty output, is reported as unavailable.
func (l *CLILookup) LookupTitle(ctx context.Context, number int) TitleResult {
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	cmd := l.command(ctx, "gh", "pr", "view", strconv.Itoa(number), "--json", "title", "--jq", ".title")
	if l.Dir != "" {
		cmd.Dir = l.Dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		reason := fmt.Sprintf("gh pr view #%d: %v", number, err)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			reason += ": " + msg
		}
		return Unavailable(reason)
	}

	title := strings.TrimSpace(stdout.String())
	if title == "" {
		return Unavailable(fmt.Sprintf("gh pr view #%d: empty title", number))
	}
	return Found(title)
}
