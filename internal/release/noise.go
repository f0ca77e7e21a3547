package release

import "regexp"

// noisePatterns match commits that never belong in release notes: merge
// bookkeeping, release preparation and dated automation commits.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^Merge pull request`),
	regexp.MustCompile(`^Merge branch`),
	regexp.MustCompile(`^Merge remote`),
	regexp.MustCompile(`^Prepare release`),
	regexp.MustCompile(`^Create \d`),
	regexp.MustCompile(`[Mm]erge.*to (main|master|workstation)`),
	regexp.MustCompile(`[Mm]erge (main|master) to`),
}

// IsNoise reports whether message should be dropped before classification.
func IsNoise(message string) bool {
	for _, p := range noisePatterns {
		if p.MatchString(message) {
			return true
		}
	}
	return false
}
