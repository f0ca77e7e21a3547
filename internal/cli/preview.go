package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rokt/generate-changelog/internal/changelog"
	clierrors "github.com/rokt/generate-changelog/internal/errors"
	"github.com/rokt/generate-changelog/internal/output"
	"github.com/rokt/generate-changelog/internal/release"
)

// Preview output formats.
const (
	FormatMarkdown = "markdown"
	FormatYAML     = "yaml"
	FormatTerminal = "terminal"
)

var previewFormat string

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the release section without writing the changelog",
	Long: `Show the section that would be added for --version without touching the
changelog file or $GITHUB_OUTPUT. Progress lines go to stderr so stdout can
be piped.

Formats:
  markdown   the section exactly as it would be inserted (default)
  yaml       last tag, categorized entries and release notes
  terminal   colored summary grouped by category`,
	Example: `  generate-changelog preview --version v1.4.0
  generate-changelog preview --version v1.4.0 --format yaml > release.yml
  generate-changelog preview --version v1.4.0 --format terminal --plain`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

func init() {
	previewCmd.GroupID = GroupRelease
	previewCmd.Flags().StringVarP(&previewFormat, "format", "f", FormatMarkdown, "Output format: markdown, yaml or terminal")
	rootCmd.AddCommand(previewCmd)
}

// previewDocument is the yaml form of a planned release.
type previewDocument struct {
	Version string            `yaml:"version"`
	Date    string            `yaml:"date"`
	LastTag string            `yaml:"last_tag,omitempty"`
	Entries []changelog.Entry `yaml:"entries"`
	Notes   string            `yaml:"release_notes"`
}

func runPreview(cmd *cobra.Command, _ []string) error {
	switch previewFormat {
	case FormatMarkdown, FormatYAML, FormatTerminal:
	default:
		return clierrors.NewArgumentError(
			fmt.Sprintf("unknown format %q", previewFormat),
			"Use --format markdown, --format yaml or --format terminal",
		)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log := newLogger(cmd, true)
	gen := release.NewGenerator(cfg, openRepository(cfg, log), newTitleLookup(cfg, log), log)
	plan, err := gen.Plan(cmd.Context())
	if err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}

	return writePreview(cmd.OutOrStdout(), previewFormat, cfg.Version, cfg.Date, plan)
}

// writePreview renders plan in format.
func writePreview(w io.Writer, format, version, date string, plan *release.Plan) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err := enc.Encode(previewDocument{
			Version: version,
			Date:    date,
			LastTag: plan.LastTag,
			Entries: plan.Entries,
			Notes:   plan.Notes,
		})
		if err != nil {
			return err
		}
		return enc.Close()
	case FormatTerminal:
		return changelog.FormatTerminal(version, date, plan.Entries, w, changelog.FormatOptions{
			Plain:    plainFlag,
			MaxWidth: output.GetTerminalWidth(),
		})
	default:
		if !plan.HasChanges() {
			_, err := fmt.Fprintln(w, plan.Notes)
			return err
		}
		_, err := fmt.Fprint(w, changelog.RenderSection(version, date, plan.Body))
		return err
	}
}
