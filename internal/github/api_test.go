package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLookup(t *testing.T, handler http.HandlerFunc) *APILookup {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient("test-token")
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	client.BaseURL = base

	return NewAPILookup(client, "rokt", "widgets", time.Second)
}

func TestAPILookup_LookupTitle(t *testing.T) {
	tests := map[string]struct {
		status     int
		body       string
		wantTitle  string
		wantFound  bool
		wantReason string
	}{
		"found": {
			status:    http.StatusOK,
			body:      `{"number": 12, "title": "fix: handle empty tags"}`,
			wantTitle: "fix: handle empty tags",
			wantFound: true,
		},
		"not found": {
			status:     http.StatusNotFound,
			body:       `{"message": "Not Found"}`,
			wantReason: "rokt/widgets#12",
		},
		"empty title": {
			status:     http.StatusOK,
			body:       `{"number": 12, "title": ""}`,
			wantReason: "empty title",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var gotPath, gotAuth string
			lookup := newTestLookup(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotAuth = r.Header.Get("Authorization")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			result := lookup.LookupTitle(context.Background(), 12)
			title, found := result.Get()

			assert.Equal(t, "/repos/rokt/widgets/pulls/12", gotPath)
			assert.Equal(t, "Bearer test-token", gotAuth)
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantFound, found)
			if tt.wantReason != "" {
				assert.Contains(t, result.Reason(), tt.wantReason)
			}
		})
	}
}

func TestNewClient_Anonymous(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"title": "docs: readme"}`))
	}))
	defer srv.Close()

	client := NewClient("")
	client.BaseURL, _ = url.Parse(srv.URL + "/")

	title, found := NewAPILookup(client, "o", "r", 0).LookupTitle(context.Background(), 1).Get()

	assert.True(t, found)
	assert.Equal(t, "docs: readme", title)
	assert.Empty(t, gotAuth)
}
