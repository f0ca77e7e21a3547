package github

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rokt/generate-changelog/internal/testutil"
)

func TestHelperProcess(t *testing.T) {
	testutil.TestHelperProcess(t)
}

func TestCLILookup_LookupTitle(t *testing.T) {
	tests := map[string]struct {
		config     testutil.HelperProcessConfig
		wantTitle  string
		wantFound  bool
		wantReason string
	}{
		"title on stdout": {
			config:    testutil.HelperProcessConfig{Stdout: "feat: add retries (#42)\n"},
			wantTitle: "feat: add retries (#42)",
			wantFound: true,
		},
		"not found": {
			config:     testutil.HelperProcessConfig{ExitCode: 1, Stderr: "GraphQL: Could not resolve to a PullRequest\n"},
			wantReason: "Could not resolve to a PullRequest",
		},
		"blank output": {
			config:     testutil.HelperProcessConfig{Stdout: "  \n"},
			wantReason: "empty title",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rec := testutil.NewCommandRecorder(t, "TestHelperProcess", tt.config)
			lookup := NewCLILookup("", time.Minute).WithCommand(rec.Command)

			result := lookup.LookupTitle(context.Background(), 42)
			title, found := result.Get()

			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantFound, found)
			if tt.wantReason != "" {
				assert.Contains(t, result.Reason(), tt.wantReason)
				assert.Contains(t, result.Reason(), "#42")
			}
			require.NotEmpty(t, rec.Calls)
			assert.Equal(t, []string{"gh", "pr", "view", "42", "--json", "title", "--jq", ".title"}, rec.Calls[0])
		})
	}
}

func TestCLILookup_Timeout(t *testing.T) {
	rec := testutil.NewCommandRecorder(t, "TestHelperProcess", testutil.HelperProcessConfig{
		Stdout: "late",
		Delay:  10 * time.Second,
	})
	lookup := NewCLILookup("", 50*time.Millisecond).WithCommand(rec.Command)

	start := time.Now()
	_, found := lookup.LookupTitle(context.Background(), 7).Get()

	assert.False(t, found)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestCLILookup_Dir(t *testing.T) {
	dir := t.TempDir()
	rec := testutil.NewCommandRecorder(t, "TestHelperProcess", testutil.HelperProcessConfig{Stdout: "x"})

	var last *exec.Cmd
	lookup := NewCLILookup(dir, 0).WithCommand(func(ctx context.Context, name string, args ...string) *exec.Cmd {
		last = rec.Command(ctx, name, args...)
		return last
	})

	_, found := lookup.LookupTitle(context.Background(), 1).Get()

	require.True(t, found)
	require.NotNil(t, last)
	assert.Equal(t, dir, last.Dir)
}
