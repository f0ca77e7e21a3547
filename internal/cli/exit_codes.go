package cli

import clierrors "github.com/rokt/generate-changelog/internal/errors"

// Exit codes for the generate-changelog CLI
const (
	// ExitSuccess indicates the changelog and release notes were produced
	ExitSuccess = 0

	// ExitConfigError indicates invalid arguments or configuration; nothing was touched
	ExitConfigError = 1

	// ExitRuntimeError indicates the changelog or release notes could not be written
	ExitRuntimeError = 2
)

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if cliErr := clierrors.AsCLIError(err); cliErr != nil && cliErr.Category == clierrors.Runtime {
		return ExitRuntimeError
	}
	return ExitConfigError
}
