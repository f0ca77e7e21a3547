package config

// ProjectConfigPath returns the path to the project-level config file.
// This is always .changelog.yml relative to the current directory.
func ProjectConfigPath() string {
	return ".changelog.yml"
}

// LegacyProjectConfigPath returns the path to the legacy JSON config file.
func LegacyProjectConfigPath() string {
	return ".changelog.json"
}
