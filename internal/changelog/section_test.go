package changelog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatEntry(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		description string
		ref         int
		expected    string
	}{
		"with reference": {
			description: "Add retry logic",
			ref:         42,
			expected:    "- Add retry logic ([#42](https://github.com/acme/widgets/pull/42))",
		},
		"without reference": {
			description: "Add retry logic",
			expected:    "- Add retry logic",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, FormatEntry(tt.description, tt.ref, "https://github.com/acme/widgets"))
		})
	}
}

func TestBuildSection(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		entries  []Entry
		expected string
	}{
		"no entries": {
			entries:  nil,
			expected: "",
		},
		"single category": {
			entries: []Entry{
				{Category: Added, Text: "- One"},
				{Category: Added, Text: "- Two"},
			},
			expected: "### Added\n\n- One\n- Two\n",
		},
		"categories follow fixed order regardless of input order": {
			entries: []Entry{
				{Category: Security, Text: "- Patch CVE"},
				{Category: Fixed, Text: "- Fix crash"},
				{Category: Changed, Text: "- Tweak"},
				{Category: Added, Text: "- New thing"},
				{Category: Deprecated, Text: "- Old flag"},
				{Category: Removed, Text: "- Gone"},
				{Category: Breaking, Text: "- Boom"},
			},
			expected: strings.Join([]string{
				"### Breaking Changes", "", "- Boom", "",
				"### Removed", "", "- Gone", "",
				"### Deprecated", "", "- Old flag", "",
				"### Added", "", "- New thing", "",
				"### Changed", "", "- Tweak", "",
				"### Fixed", "", "- Fix crash", "",
				"### Security", "", "- Patch CVE", "",
			}, "\n"),
		},
		"entries keep input order within category": {
			entries: []Entry{
				{Category: Fixed, Text: "- Newest"},
				{Category: Added, Text: "- Feature"},
				{Category: Fixed, Text: "- Oldest"},
			},
			expected: "### Added\n\n- Feature\n\n### Fixed\n\n- Newest\n- Oldest\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, BuildSection(tt.entries))
		})
	}
}

func TestBuildSection_Deterministic(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{Category: Changed, Text: "- A"},
		{Category: Breaking, Text: "- B"},
		{Category: Fixed, Text: "- C"},
		{Category: Changed, Text: "- D"},
	}

	first := BuildSection(entries)
	for range 20 {
		assert.Equal(t, first, BuildSection(entries))
	}
	assert.NotContains(t, first, "### Added")
	assert.NotContains(t, first, "### Security")
}

func TestRenderSection(t *testing.T) {
	t.Parallel()

	got := RenderSection("v1.3.0", "2026-03-01", "### Added\n\n- X\n")
	assert.Equal(t, "## [v1.3.0] - 2026-03-01\n\n### Added\n\n- X\n", got)
}
