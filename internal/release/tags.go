package release

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var (
	releaseTagPattern    = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)$`)
	preReleasePattern    = regexp.MustCompile(`alpha|beta|rc`)
	unprefixedTagPattern = regexp.MustCompile(`^v?\d`)
)

// Tag is a release tag that qualified as a candidate boundary.
type Tag struct {
	Name    string
	Version *semver.Version
}

// ReleaseTags filters labels down to final releases and orders them newest
// first by their numeric triple. With an empty prefix any label starting
// with a digit, optionally after a v, is considered.
func ReleaseTags(labels []string, prefix string) []Tag {
	var tags []Tag
	for _, label := range labels {
		if !hasTagPrefix(label, prefix) {
			continue
		}
		m := releaseTagPattern.FindStringSubmatch(label)
		if m == nil || preReleasePattern.MatchString(label) {
			continue
		}
		v, ok := versionFromTriple(m[1:])
		if !ok {
			continue
		}
		tags = append(tags, Tag{Name: label, Version: v})
	}

	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].Version.GreaterThan(tags[j].Version)
	})
	return tags
}

// LatestTag returns the highest release tag, or false when none qualify.
func LatestTag(labels []string, prefix string) (string, bool) {
	tags := ReleaseTags(labels, prefix)
	if len(tags) == 0 {
		return "", false
	}
	return tags[0].Name, true
}

// versionFromTriple builds a version from decimal parts. Leading zeros are
// read numerically, so v01.20.0 orders as 1.20.0.
func versionFromTriple(parts []string) (*semver.Version, bool) {
	var nums [3]uint64
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, false
		}
		nums[i] = n
	}
	return semver.New(nums[0], nums[1], nums[2], "", ""), true
}

func hasTagPrefix(label, prefix string) bool {
	if prefix == "" {
		return unprefixedTagPattern.MatchString(label)
	}
	return strings.HasPrefix(label, prefix)
}
