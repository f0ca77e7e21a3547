package config

import "time"

// now is replaced in tests to pin the default release date.
var now = time.Now

// GetDefaultConfigTemplate returns a fully commented project config
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# generate-changelog configuration
# Every key can also be supplied as an action input (INPUT_<KEY>) or a flag.

# Release settings
# version: v1.2.3                    # Usually passed per run, not committed
repo_url: ""                          # Default: https://github.com/$GITHUB_REPOSITORY
tag_prefix: ""                        # Only tags with this prefix count as releases
changelog_path: CHANGELOG.md          # File to update
exclude_types: []                     # e.g. [docs, chore]; breaking commits are never excluded

# Pull request title lookup
title_lookup: auto                    # auto | api | gh | none
lookup_concurrency: 4                 # Parallel lookups (1-32)
lookup_timeout: 10s                   # Per lookup timeout
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"changelog_path":     "CHANGELOG.md",
		"date":               now().Format(time.DateOnly),
		"title_lookup":       LookupAuto,
		"lookup_concurrency": 4,
		"lookup_timeout":     "10s",
		"repo_path":          ".",
	}
}
