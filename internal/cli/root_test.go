// Package cli tests root command and global flags for generate-changelog.
// Related: internal/cli/root.go
// Tags: cli, root, commands, global-flags

package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rokt/generate-changelog/internal/config"
	clierrors "github.com/rokt/generate-changelog/internal/errors"
)

func TestRootCmd_Structure(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "generate-changelog", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.Contains(t, rootCmd.Long, "[Unreleased]")
	assert.Contains(t, rootCmd.Example, "generate-changelog --version v1.4.0")
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		flagName     string
		wantShortcut string
	}{
		"config":         {flagName: "config", wantShortcut: "c"},
		"debug":          {flagName: "debug", wantShortcut: "d"},
		"plain":          {flagName: "plain"},
		"version":        {flagName: "version"},
		"repo-url":       {flagName: "repo-url"},
		"tag-prefix":     {flagName: "tag-prefix"},
		"changelog-path": {flagName: "changelog-path"},
		"exclude-types":  {flagName: "exclude-types"},
		"date":           {flagName: "date"},
		"title-lookup":   {flagName: "title-lookup"},
		"repo-path":      {flagName: "repo-path"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			flag := rootCmd.PersistentFlags().Lookup(tt.flagName)
			require.NotNil(t, flag, "Flag %s should exist", tt.flagName)
			assert.Equal(t, tt.wantShortcut, flag.Shorthand)
		})
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	t.Parallel()

	groups := make(map[string]string)
	for _, cmd := range rootCmd.Commands() {
		groups[cmd.Name()] = cmd.GroupID
	}

	assert.Equal(t, GroupRelease, groups["preview"])
	assert.Equal(t, GroupSetup, groups["init"])
	assert.Equal(t, GroupSetup, groups["version"])
}

func TestFlagOverrides(t *testing.T) {
	t.Parallel()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	for _, f := range releaseFlags {
		flags.String(f.name, "", f.usage)
	}
	require.NoError(t, flags.Parse([]string{"--version", "v2.0.0", "--tag-prefix", "", "--exclude-types", "docs,chore"}))

	assert.Equal(t, map[string]any{
		"version":       "v2.0.0",
		"tag_prefix":    "",
		"exclude_types": "docs,chore",
	}, flagOverrides(flags))
}

func TestConfigError(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err         error
		wantMessage string
	}{
		"missing version": {
			err:         &config.ValidationError{Field: "version", Message: "is required"},
			wantMessage: "version is required",
		},
		"missing repo url": {
			err:         &config.ValidationError{Field: "repo_url", Message: "is required"},
			wantMessage: "repository URL could not be determined",
		},
		"bad repo url": {
			err:         &config.ValidationError{FilePath: "defaults", Field: "repo_url", Message: "must be an absolute URL"},
			wantMessage: "invalid configuration: defaults: field 'repo_url': must be an absolute URL",
		},
		"unreadable file": {
			err:         errors.New("config file not found: x.yml"),
			wantMessage: "invalid configuration: config file not found: x.yml",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cliErr := clierrors.AsCLIError(configError(tt.err))
			require.NotNil(t, cliErr)
			assert.Equal(t, clierrors.Configuration, cliErr.Category)
			assert.Equal(t, tt.wantMessage, cliErr.Message)
		})
	}
}

func TestNewTitleLookup(t *testing.T) {
	tests := map[string]struct {
		cfg      config.ReleaseConfig
		ghOnPath bool
		wantType string
	}{
		"api with token": {
			cfg:      config.ReleaseConfig{TitleLookup: config.LookupAuto, GitHubToken: "t", GitHubRepository: "acme/widgets"},
			wantType: "*github.APILookup",
		},
		"auto without token uses gh": {
			cfg:      config.ReleaseConfig{TitleLookup: config.LookupAuto},
			ghOnPath: true,
			wantType: "*github.CLILookup",
		},
		"gh missing": {
			cfg: config.ReleaseConfig{TitleLookup: config.LookupGH},
		},
		"none": {
			cfg:      config.ReleaseConfig{TitleLookup: config.LookupNone, GitHubToken: "t", GitHubRepository: "acme/widgets"},
			ghOnPath: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			orig := lookPath
			t.Cleanup(func() { lookPath = orig })
			lookPath = func(string) (string, error) {
				if tt.ghOnPath {
					return "/usr/bin/gh", nil
				}
				return "", errors.New("not found")
			}

			lookup := newTitleLookup(&tt.cfg, newLogger(&cobra.Command{}, true))

			if tt.wantType == "" {
				assert.Nil(t, lookup)
				return
			}
			assert.Equal(t, tt.wantType, typeName(lookup))
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want int
	}{
		"success":        {want: ExitSuccess},
		"config error":   {err: clierrors.MissingVersion(), want: ExitConfigError},
		"argument error": {err: errors.New("unknown flag: --nope"), want: ExitConfigError},
		"write failure":  {err: clierrors.ChangelogWriteFailed("CHANGELOG.md", errors.New("read-only")), want: ExitRuntimeError},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestPrintError_Actions(t *testing.T) {
	t.Setenv("GITHUB_ACTIONS", "true")

	var stdout, stderr bytes.Buffer
	printError(&stdout, &stderr, clierrors.MissingVersion())

	assert.Equal(t, "::error::version is required\n", stdout.String())
	assert.Contains(t, stderr.String(), "version is required")
	assert.Contains(t, stderr.String(), "--version")
}
