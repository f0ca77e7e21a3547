package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rokt/generate-changelog/internal/config"
	clierrors "github.com/rokt/generate-changelog/internal/errors"
	"github.com/rokt/generate-changelog/internal/output"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a commented .changelog.yml",
	Long: `Write a project config listing every option with its default. The file
is created in the current directory unless a path is given.`,
	Example: `  generate-changelog init
  generate-changelog init ci/.changelog.yml --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.GroupID = GroupSetup
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := config.ProjectConfigPath()
	if len(args) == 1 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil && !initForce {
		return clierrors.NewArgumentError(
			fmt.Sprintf("%s already exists", path),
			"Pass --force to overwrite it",
		)
	}

	if err := writeDefaultConfig(path); err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}

	output.PrintStageSuccess(cmd.OutOrStdout(), "Created "+path)
	return nil
}

// writeDefaultConfig writes the default configuration to the given path
func writeDefaultConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	template := config.GetDefaultConfigTemplate()
	if err := os.WriteFile(configPath, []byte(template), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
