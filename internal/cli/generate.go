package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rokt/generate-changelog/internal/changelog"
	clierrors "github.com/rokt/generate-changelog/internal/errors"
	"github.com/rokt/generate-changelog/internal/output"
	"github.com/rokt/generate-changelog/internal/progress"
	"github.com/rokt/generate-changelog/internal/release"
)

// runGenerate is the root command: plan the release, show it, merge it into
// the changelog and publish the release notes.
func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log := newLogger(cmd, false)
	log.Group("Generate Changelog")
	defer log.EndGroup()

	log.Infof("Version: %s", cfg.Version)
	log.Infof("Changelog: %s", cfg.ChangelogPath)
	log.Infof("Repo URL: %s", cfg.RepoURL)

	gen := release.NewGenerator(cfg, openRepository(cfg, log), newTitleLookup(cfg, log), log)

	spin := progress.NewSpinner(cmd.ErrOrStderr(), progress.DetectTerminalCapabilities())
	spin.Start("Collecting changes")
	plan, err := gen.Plan(cmd.Context())
	if err != nil {
		spin.Fail("Collecting changes failed")
		return clierrors.Wrap(err, clierrors.Runtime)
	}
	spin.Success(fmt.Sprintf("Collected %d changelog entries", len(plan.Entries)))

	if plan.HasChanges() {
		output.PrintBlock(cmd.OutOrStdout(), "\nGenerated changelog section:",
			changelog.RenderSection(cfg.Version, cfg.Date, plan.Body))
	}

	result, err := gen.Apply(plan)
	if err != nil {
		return clierrors.ChangelogWriteFailed(cfg.ChangelogPath, err)
	}
	if result.Updated {
		log.Infof("Updated %s", cfg.ChangelogPath)
	}

	if cfg.GitHubOutput != "" {
		if err := output.WriteOutput(cfg.GitHubOutput, "release-notes", result.Notes); err != nil {
			return clierrors.ReleaseNotesWriteFailed(cfg.GitHubOutput, err)
		}
		log.Debugf("wrote release-notes to %s", cfg.GitHubOutput)
	}
	return nil
}
