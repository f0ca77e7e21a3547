package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}

// isolateEnv blanks the variables config.Load and the logger read and
// moves into an empty directory.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"GITHUB_ACTIONS", "GITHUB_REPOSITORY", "GITHUB_TOKEN", "GITHUB_OUTPUT",
		"INPUT_VERSION", "INPUT_REPO_URL", "INPUT_TAG_PREFIX", "INPUT_CHANGELOG_PATH",
		"INPUT_EXCLUDE_TYPES", "INPUT_DATE", "INPUT_TITLE_LOOKUP", "INPUT_REPO_PATH",
	} {
		t.Setenv(name, "")
	}
	t.Chdir(t.TempDir())
}

// executeCommand runs rootCmd with args after resetting every flag touched
// by an earlier run.
func executeCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = Execute()
	return out.String(), errOut.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// newHistory creates a repository whose first-parent history is msgs,
// oldest first, and returns its directory and the commit hashes.
func newHistory(t *testing.T, msgs ...string) (string, []plumbing.Hash) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	hashes := make([]plumbing.Hash, 0, len(msgs))
	for i, msg := range msgs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte(msg), 0o644))
		_, err = wt.Add("file.txt")
		require.NoError(t, err)
		hash, err := wt.Commit(msg, &git.CommitOptions{
			Author: &object.Signature{
				Name:  "Release Bot",
				Email: "bot@example.com",
				When:  time.Date(2026, 1, 1, 0, i, 0, 0, time.UTC),
			},
			AllowEmptyCommits: true,
		})
		require.NoError(t, err)
		hashes = append(hashes, hash)
	}
	return dir, hashes
}

func tagCommit(t *testing.T, dir, name string, hash plumbing.Hash) {
	t.Helper()
	repo, err := git.PlainOpen(dir)
	require.NoError(t, err)
	_, err = repo.CreateTag(name, hash, nil)
	require.NoError(t, err)
}
