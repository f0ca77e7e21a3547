// Package testutil provides test helpers for generate-changelog, chiefly the
// helper process pattern used to fake external commands such as gh.
package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"
)

// HelperProcessConfig configures the behavior of TestHelperProcess.
type HelperProcessConfig struct {
	// ExitCode is the exit code to return (default 0).
	ExitCode int `json:"exit_code"`
	// Stdout is the content to write to stdout.
	Stdout string `json:"stdout"`
	// Stderr is the content to write to stderr.
	Stderr string `json:"stderr"`
	// Delay is how long to wait before producing output.
	Delay time.Duration `json:"delay"`
}

// HelperProcessEnvVars contains the environment variable names used by TestHelperProcess.
const (
	// EnvWantHelperProcess signals that the test binary should run as a helper process.
	EnvWantHelperProcess = "GO_WANT_HELPER_PROCESS"
	// EnvHelperProcessConfig contains JSON-encoded HelperProcessConfig.
	EnvHelperProcessConfig = "GO_HELPER_PROCESS_CONFIG"
	// EnvHelperProcessArgs contains the original command-line arguments (JSON array).
	EnvHelperProcessArgs = "GO_HELPER_PROCESS_ARGS"
)

// TestHelperProcess is a function to be called from a test function
// to implement the helper process pattern. When invoked with GO_WANT_HELPER_PROCESS=1,
// it behaves as a mock subprocess and exits without returning.
//
// Usage in test file:
//
//	func TestHelperProcess(t *testing.T) {
//	    testutil.TestHelperProcess(t)
//	}
func TestHelperProcess(t *testing.T) {
	if os.Getenv(EnvWantHelperProcess) != "1" {
		return
	}

	config := HelperProcessConfig{}
	if raw := os.Getenv(EnvHelperProcessConfig); raw != "" {
		// Ignore parse errors; use defaults on failure
		_ = json.Unmarshal([]byte(raw), &config)
	}

	time.Sleep(config.Delay)
	fmt.Fprint(os.Stdout, config.Stdout)
	fmt.Fprint(os.Stderr, config.Stderr)
	os.Exit(config.ExitCode)
}

// ConfigureTestCommand creates an exec.Cmd that invokes the test binary
// as a helper process instead of the real command. The process is killed
// when ctx is done.
func ConfigureTestCommand(ctx context.Context, t *testing.T, testName string, config HelperProcessConfig, args ...string) *exec.Cmd {
	t.Helper()

	testBinary, err := os.Executable()
	if err != nil {
		t.Fatalf("failed to get test binary path: %v", err)
	}

	cmd := exec.CommandContext(ctx, testBinary, "-test.run=^"+testName+"$")
	cmd.Env = buildHelperEnv(config, args)
	return cmd
}

// CommandRecorder hands out helper process commands and remembers the
// arguments each one was asked to run with.
type CommandRecorder struct {
	t        *testing.T
	testName string
	config   HelperProcessConfig
	// Calls holds name followed by args for every command built.
	Calls [][]string
}

// NewCommandRecorder creates a recorder whose commands all behave per config.
func NewCommandRecorder(t *testing.T, testName string, config HelperProcessConfig) *CommandRecorder {
	return &CommandRecorder{t: t, testName: testName, config: config}
}

// Command matches the signature of exec.CommandContext.
func (r *CommandRecorder) Command(ctx context.Context, name string, args ...string) *exec.Cmd {
	full := append([]string{name}, args...)
	r.Calls = append(r.Calls, full)
	return ConfigureTestCommand(ctx, r.t, r.testName, r.config, full...)
}

// buildHelperEnv constructs the environment variables for helper process.
func buildHelperEnv(config HelperProcessConfig, args []string) []string {
	env := append(os.Environ(), EnvWantHelperProcess+"=1")

	if configJSON, err := json.Marshal(config); err == nil {
		env = append(env, EnvHelperProcessConfig+"="+string(configJSON))
	}
	if argsJSON, err := json.Marshal(args); err == nil {
		env = append(env, EnvHelperProcessArgs+"="+string(argsJSON))
	}

	return env
}

// HelperArgs returns the original arguments recorded in a helper command's env.
func HelperArgs(cmd *exec.Cmd) []string {
	for _, e := range cmd.Env {
		if raw, ok := strings.CutPrefix(e, EnvHelperProcessArgs+"="); ok {
			var args []string
			if err := json.Unmarshal([]byte(raw), &args); err == nil {
				return args
			}
		}
	}
	return nil
}
