// Package cli implements the generate-changelog command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rokt/generate-changelog/internal/config"
	clierrors "github.com/rokt/generate-changelog/internal/errors"
	"github.com/rokt/generate-changelog/internal/git"
	"github.com/rokt/generate-changelog/internal/github"
	"github.com/rokt/generate-changelog/internal/output"
	"github.com/rokt/generate-changelog/internal/release"
)

// Command groups shown in help output.
const (
	GroupRelease = "release"
	GroupSetup   = "setup"
)

var (
	cfgFile   string
	debugFlag bool
	plainFlag bool
)

// releaseFlags maps flag names to the config keys they override.
var releaseFlags = []struct {
	name  string
	key   string
	usage string
}{
	{"version", "version", "Release version to add, e.g. v1.4.0 (required)"},
	{"repo-url", "repo_url", "Repository URL for links (default https://github.com/$GITHUB_REPOSITORY)"},
	{"tag-prefix", "tag_prefix", "Only tags with this prefix count as releases"},
	{"changelog-path", "changelog_path", "Changelog file to update (default CHANGELOG.md)"},
	{"exclude-types", "exclude_types", "Comma separated commit types to leave out"},
	{"date", "date", "Release date, YYYY-MM-DD (default today)"},
	{"title-lookup", "title_lookup", "Pull request title source: auto, api, gh or none"},
	{"repo-path", "repo_path", "Path inside the git repository (default .)"},
}

var rootCmd = &cobra.Command{
	Use:   "generate-changelog",
	Short: "Add a release section to CHANGELOG.md from git history",
	Long: `generate-changelog finds the previous release tag, walks the first-parent
commits since then and sorts them into Keep a Changelog categories using
conventional commit prefixes. The new section is inserted below the
[Unreleased] heading and the comparison links are updated.

Pull request titles are preferred over squash commit subjects when they can
be fetched from GitHub, either through the REST API or the gh CLI.

Configuration is read from .changelog.yml, GITHUB_* and INPUT_* environment
variables and flags, in increasing priority. Inside GitHub Actions the
release notes are also written to $GITHUB_OUTPUT as release-notes.

Source: https://github.com/rokt/generate-changelog`,
	Example: `  # Add v1.4.0 to CHANGELOG.md
  generate-changelog --version v1.4.0

  # Only consider tags starting with v and skip chores
  generate-changelog --version v1.4.0 --tag-prefix v --exclude-types chore,docs

  # See what would be written without touching the file
  generate-changelog preview --version v1.4.0 --format terminal

  # Write a commented .changelog.yml
  generate-changelog init`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if plainFlag {
			color.NoColor = true
		}
	},
	RunE: runGenerate,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: GroupSetup, Title: "Setup Commands:"},
	)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default .changelog.yml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "Print debug diagnostics")
	rootCmd.PersistentFlags().BoolVar(&plainFlag, "plain", false, "Plain output (no colors)")

	for _, f := range releaseFlags {
		rootCmd.PersistentFlags().String(f.name, "", f.usage)
	}
}

// Execute runs the root command and prints any error. The returned error
// carries the exit code, see ExitCode.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(rootCmd.OutOrStdout(), rootCmd.ErrOrStderr(), err)
	}
	return err
}

// flagOverrides collects the release flags set on the command line.
func flagOverrides(flags *pflag.FlagSet) map[string]any {
	overrides := make(map[string]any)
	for _, f := range releaseFlags {
		if flag := flags.Lookup(f.name); flag != nil && flag.Changed {
			overrides[f.key] = flag.Value.String()
		}
	}
	return overrides
}

// loadConfig loads the release configuration for cmd.
func loadConfig(cmd *cobra.Command) (*config.ReleaseConfig, error) {
	cfg, err := config.Load(config.LoadOptions{
		ConfigPath:    cfgFile,
		Overrides:     flagOverrides(cmd.Flags()),
		WarningWriter: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, configError(err)
	}
	return cfg, nil
}

// configError maps a config failure to the most specific CLI error.
func configError(err error) error {
	var validationErr *config.ValidationError
	if errors.As(err, &validationErr) {
		switch {
		case validationErr.Field == "version":
			return clierrors.MissingVersion()
		case validationErr.Field == "repo_url" && strings.Contains(validationErr.Message, "required"):
			return clierrors.MissingRepoURL()
		}
	}
	return clierrors.InvalidConfig(err)
}

// newLogger creates the run logger. When quiet is set every line goes to
// stderr so stdout only carries command output.
func newLogger(cmd *cobra.Command, quiet bool) *output.Logger {
	out := cmd.OutOrStdout()
	if quiet {
		out = cmd.ErrOrStderr()
	}
	return output.NewLogger(out, cmd.ErrOrStderr(), output.InGitHubActions(), debugFlag)
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// newTitleLookup picks the pull request title backend. A nil result means
// commit subjects are used as they are.
func newTitleLookup(cfg *config.ReleaseConfig, log release.Logger) release.TitleLookup {
	switch cfg.ResolvedTitleLookup() {
	case config.LookupAPI:
		log.Debugf("looking up pull request titles through the GitHub API for %s", cfg.GitHubRepository)
		return github.NewAPILookup(github.NewClient(cfg.GitHubToken), cfg.Owner(), cfg.Repo(), cfg.LookupTimeout)
	case config.LookupGH:
		if _, err := lookPath("gh"); err != nil {
			log.Warnf("gh not found on PATH, using commit subjects")
			return nil
		}
		log.Debugf("looking up pull request titles with gh")
		return github.NewCLILookup(cfg.RepoPath, cfg.LookupTimeout)
	default:
		return nil
	}
}

// unavailableVCS stands in for a repository that could not be opened so
// the walker reports the failure and carries on with no history.
type unavailableVCS struct{ err error }

func (u unavailableVCS) Tags(context.Context) ([]string, error) { return nil, u.err }

func (u unavailableVCS) FirstParentLog(context.Context, string) ([]release.Commit, error) {
	return nil, u.err
}

// openRepository opens the git repository at cfg.RepoPath.
func openRepository(cfg *config.ReleaseConfig, log *output.Logger) release.VCS {
	git.SetDebugLogger(log.Debugf)
	repo, err := git.Open(cfg.RepoPath)
	if err != nil {
		return unavailableVCS{err: err}
	}
	return repo
}

// printError renders err for humans, plus an error annotation under Actions.
func printError(stdout, stderr io.Writer, err error) {
	cliErr := clierrors.AsCLIError(err)
	if cliErr == nil {
		cliErr = clierrors.Wrap(err, clierrors.Argument)
	}
	if output.InGitHubActions() {
		fmt.Fprintf(stdout, "::error::%s\n", cliErr.Error())
	}
	clierrors.FprintError(stderr, cliErr)
}
