package cli

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rokt/generate-changelog/internal/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Long:  "Display version, commit, build date, and Go version information for generate-changelog",
	Example: `  generate-changelog version
  generate-changelog version --plain`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd)
	},
}

func init() {
	versionCmd.GroupID = GroupSetup
	rootCmd.AddCommand(versionCmd)
}

func printVersion(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	if plainFlag {
		fmt.Fprintf(out, "generate-changelog %s\n", build.Version)
		fmt.Fprintf(out, "commit: %s\n", build.Commit)
		fmt.Fprintf(out, "built: %s\n", build.BuildDate)
		fmt.Fprintf(out, "go: %s\n", runtime.Version())
		fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		return
	}

	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintln(out, bold(build.String()))
	fmt.Fprintln(out, dim(fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)))
	if build.IsDevBuild() {
		fmt.Fprintln(out, dim("development build"))
	}
}
