package release

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferenceNumber(t *testing.T) {
	tests := map[string]struct {
		message string
		want    int
		wantOK  bool
	}{
		"trailing reference": {message: "feat: add retry logic (#42)", want: 42, wantOK: true},
		"no space before":    {message: "fix: typo(#7)", want: 7, wantOK: true},
		"not at end":         {message: "fix: (#7) typo"},
		"no reference":       {message: "chore: tidy"},
		"issue style hash":   {message: "fix: closes #12"},
		"zero is not a ref":  {message: "docs: x (#0)"},
		"overflowing digits": {message: "docs: x (#99999999999999999999999)"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := ReferenceNumber(tt.message)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestResolver_Resolve(t *testing.T) {
	lookup := &fakeLookup{titles: map[int]string{42: "feat(api): add retry logic"}}

	tests := map[string]struct {
		message   string
		want      Resolution
		wantCalls []int
	}{
		"title found": {
			message:   "Add retry (#42)",
			want:      Resolution{Title: "feat(api): add retry logic", Ref: 42},
			wantCalls: []int{42},
		},
		"title unavailable falls back": {
			message:   "fix: off by one (#43)",
			want:      Resolution{Title: "fix: off by one (#43)", Ref: 43},
			wantCalls: []int{43},
		},
		"no reference skips lookup": {
			message: "chore: bump deps",
			want:    Resolution{Title: "chore: bump deps"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			lookup.calls = nil
			log := &recordingLogger{}
			r := NewResolver(lookup, log)

			got := r.Resolve(context.Background(), tt.message)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCalls, lookup.calls)
		})
	}
}

func TestResolver_NilLookup(t *testing.T) {
	r := NewResolver(nil, nil)

	got := r.Resolve(context.Background(), "feat: x (#5)")

	assert.Equal(t, Resolution{Title: "feat: x (#5)", Ref: 5}, got)
}

func TestResolver_FallbackIsLogged(t *testing.T) {
	log := &recordingLogger{}
	r := NewResolver(&fakeLookup{}, log)

	r.Resolve(context.Background(), "fix: y (#9)")

	assert.Len(t, log.debug, 1)
	assert.Contains(t, log.debug[0], "#9")
	assert.Contains(t, log.debug[0], "not found")
	assert.Empty(t, log.warns)
}
