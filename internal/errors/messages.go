package errors

import "fmt"

// Common error messages for the generate-changelog CLI.

// MissingVersion creates an error for a run without a release version.
func MissingVersion() *CLIError {
	return &CLIError{
		Category: Configuration,
		Message:  "version is required",
		Usage:    "generate-changelog --version v1.2.3",
		Remediation: []string{
			"Pass --version on the command line",
			"Or set INPUT_VERSION (the action input) in the environment",
			"Or add 'version:' to .changelog.yml",
		},
	}
}

// InvalidConfig wraps a config loading or validation failure.
func InvalidConfig(err error) *CLIError {
	return WrapWithMessage(err, Configuration, "invalid configuration",
		"Check .changelog.yml and the INPUT_* / GITHUB_* environment variables",
		"Run 'generate-changelog --help' to list accepted options",
	)
}

// MissingRepoURL creates an error when no repository URL can be derived.
func MissingRepoURL() *CLIError {
	return NewConfigError(
		"repository URL could not be determined",
		"Pass --repo-url https://github.com/<owner>/<repo>",
		"Or set GITHUB_REPOSITORY=<owner>/<repo>",
	)
}

// ChangelogWriteFailed creates an error for a changelog that could not be
// read or written back.
func ChangelogWriteFailed(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime, fmt.Sprintf("updating %s", path),
		"Check that the path exists and is writable",
		"Use --changelog-path to point at a different file",
	)
}

// ReleaseNotesWriteFailed creates an error for a GITHUB_OUTPUT that could not be appended to.
func ReleaseNotesWriteFailed(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime, fmt.Sprintf("writing release notes to %s", path),
		"Check that GITHUB_OUTPUT points at a writable file",
	)
}
