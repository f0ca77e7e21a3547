package release

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNoise(t *testing.T) {
	tests := map[string]struct {
		message string
		want    bool
	}{
		"pull request merge": {message: "Merge pull request #44 from x/y", want: true},
		"branch merge":       {message: "Merge branch 'main' into feature", want: true},
		"remote merge":       {message: "Merge remote-tracking branch 'origin/main'", want: true},
		"prepare release":    {message: "Prepare release v1.2.0", want: true},
		"dated auto commit":  {message: "Create 2024-01-05 snapshot", want: true},
		"merge to main":      {message: "merge release/1.2 to main", want: true},
		"merge main to":      {message: "Merge master to develop", want: true},
		"conventional":       {message: "feat: add retry logic (#42)"},
		"mentions merge":     {message: "fix: merge sort comparator"},
		"prepare lowercase":  {message: "prepare release notes"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNoise(tt.message))
		})
	}
}
