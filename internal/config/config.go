// Package config loads the release configuration for generate-changelog using koanf.
// Values are layered with priority: command-line flags > action inputs (INPUT_*)
// > GitHub environment (GITHUB_*) > project config (.changelog.yml) > defaults.
// The legacy .changelog.json format is still read, with a deprecation warning.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Title lookup backends.
const (
	LookupAuto = "auto"
	LookupAPI  = "api"
	LookupGH   = "gh"
	LookupNone = "none"
)

// ReleaseConfig is the read-only configuration of a single run.
type ReleaseConfig struct {
	// Version is the label of the release being generated, e.g. v1.4.0.
	Version string `koanf:"version" validate:"required"`
	// RepoURL is the repository base URL used for pull request and compare links.
	// Defaults to https://github.com/<github_repository>.
	RepoURL string `koanf:"repo_url" validate:"required,url"`
	// TagPrefix restricts which tags count as releases. Empty accepts
	// any tag that starts with an optional v and a digit.
	TagPrefix     string `koanf:"tag_prefix"`
	ChangelogPath string `koanf:"changelog_path" validate:"required"`
	// ExcludeTypes lists conventional commit types left out of the section
	// unless they are breaking. Accepts a comma separated string or a list.
	ExcludeTypes []string `koanf:"exclude_types"`
	// Date is the release date written into the heading (YYYY-MM-DD).
	Date string `koanf:"date" validate:"required,datetime=2006-01-02"`

	TitleLookup       string        `koanf:"title_lookup" validate:"oneof=auto api gh none"`
	LookupConcurrency int           `koanf:"lookup_concurrency" validate:"min=1,max=32"`
	LookupTimeout     time.Duration `koanf:"lookup_timeout"`

	RepoPath         string `koanf:"repo_path" validate:"required"`
	GitHubRepository string `koanf:"github_repository"`
	GitHubToken      string `koanf:"github_token"`
	// GitHubOutput is the file that receives the release-notes output.
	GitHubOutput string `koanf:"github_output"`
}

// Excludes reports whether commitType is in the exclude set.
func (c *ReleaseConfig) Excludes(commitType string) bool {
	return slices.Contains(c.ExcludeTypes, commitType)
}

// Owner returns the owner half of GitHubRepository.
func (c *ReleaseConfig) Owner() string {
	owner, _, _ := strings.Cut(c.GitHubRepository, "/")
	return owner
}

// Repo returns the repository half of GitHubRepository.
func (c *ReleaseConfig) Repo() string {
	_, repo, _ := strings.Cut(c.GitHubRepository, "/")
	return repo
}

// ResolvedTitleLookup turns "auto" into a concrete backend: the API when a
// token and repository are known, otherwise the gh CLI.
func (c *ReleaseConfig) ResolvedTitleLookup() string {
	if c.TitleLookup != LookupAuto {
		return c.TitleLookup
	}
	if c.GitHubToken != "" && c.Owner() != "" && c.Repo() != "" {
		return LookupAPI
	}
	return LookupGH
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ConfigPath overrides the project config path (default: .changelog.yml).
	// An explicit path must exist.
	ConfigPath string
	// Overrides are applied last, typically from command-line flags.
	Overrides map[string]any
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// Load builds the release configuration from every source.
func Load(opts LoadOptions) (*ReleaseConfig, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if err := loadProjectConfig(k, opts.ConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	for key, value := range opts.Overrides {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("applying override %s: %w", key, err)
		}
	}

	return finalizeConfig(k, configSource(opts.ConfigPath))
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadProjectConfig loads the project config file. An explicit path wins;
// otherwise .changelog.yml is preferred over the legacy .changelog.json.
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	if customPath != "" {
		if !fileExists(customPath) {
			return &ValidationError{FilePath: customPath, Message: "config file not found"}
		}
		if strings.EqualFold(filepath.Ext(customPath), ".json") {
			return loadJSONConfig(k, customPath)
		}
		return loadYAMLConfig(k, customPath)
	}

	yamlPath := ProjectConfigPath()
	legacyPath := LegacyProjectConfigPath()
	yamlExists := fileExists(yamlPath)
	legacyExists := fileExists(legacyPath)

	switch {
	case yamlExists:
		if err := loadYAMLConfig(k, yamlPath); err != nil {
			return err
		}
		if legacyExists && !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Legacy JSON config found at %s (ignored, using %s)\n\n", legacyPath, yamlPath)
		}
	case legacyExists:
		if err := loadJSONConfig(k, legacyPath); err != nil {
			return err
		}
		if !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", legacyPath)
			fmt.Fprintf(warningWriter, "  Rename it to %s and convert it to YAML.\n\n", yamlPath)
		}
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax: %w", err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return nil
}

func loadJSONConfig(k *koanf.Koanf, path string) error {
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("failed to load JSON config %s: %w", path, err)
	}
	return nil
}

// githubKeys are the GITHUB_* variables the runner exports that we read.
var githubKeys = map[string]bool{
	"github_repository": true,
	"github_token":      true,
	"github_output":     true,
}

// loadEnvironmentConfig loads the runner environment and then the action
// inputs, so an explicit input beats anything GitHub sets.
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.ProviderWithValue("GITHUB_", ".", githubTransform), nil); err != nil {
		return fmt.Errorf("failed to load GitHub environment: %w", err)
	}
	if err := k.Load(env.ProviderWithValue("INPUT_", ".", inputTransform), nil); err != nil {
		return fmt.Errorf("failed to load action inputs: %w", err)
	}
	return nil
}

// githubTransform keeps the known GITHUB_* variables that carry a value.
// Example: GITHUB_REPOSITORY -> github_repository
func githubTransform(key, value string) (string, any) {
	name := strings.ToLower(key)
	if !githubKeys[name] || value == "" {
		return "", nil
	}
	return name, value
}

// inputTransform converts action inputs to config keys, dropping empty ones.
// Example: INPUT_EXCLUDE-TYPES -> exclude_types
func inputTransform(key, value string) (string, any) {
	if value == "" {
		return "", nil
	}
	name := strings.ToLower(strings.TrimPrefix(key, "INPUT_"))
	return strings.ReplaceAll(name, "-", "_"), value
}

// finalizeConfig unmarshals, derives computed values, and validates.
func finalizeConfig(k *koanf.Koanf, source string) (*ReleaseConfig, error) {
	var cfg ReleaseConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.RepoURL == "" && cfg.GitHubRepository != "" {
		cfg.RepoURL = "https://github.com/" + cfg.GitHubRepository
	}
	cfg.RepoURL = strings.TrimRight(cfg.RepoURL, "/")
	cfg.ExcludeTypes = normalizeTypes(cfg.ExcludeTypes)

	if err := ValidateConfigValues(&cfg, source); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// normalizeTypes splits any comma separated items, trims and lower-cases
// them and drops empties.
func normalizeTypes(raw []string) []string {
	var types []string
	for _, item := range raw {
		for _, t := range strings.Split(item, ",") {
			if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
				types = append(types, t)
			}
		}
	}
	return types
}

// configSource names the origin used in validation messages.
func configSource(customPath string) string {
	if customPath != "" {
		return customPath
	}
	return "config"
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
