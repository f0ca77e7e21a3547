package github

import (
	"context"
	"fmt"
	"net/http"
	"time"

	gogithub "github.com/google/go-github/v68/github"
)

// NewClient creates a GitHub API client authenticated with a token.
// An empty token yields an anonymous client.
func NewClient(token string) *gogithub.Client {
	client := gogithub.NewClient(&http.Client{Timeout: 30 * time.Second})
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return client
}

// APILookup reads pull request titles through the REST API.
type APILookup struct {
	client  *gogithub.Client
	owner   string
	repo    string
	timeout time.Duration
}

// NewAPILookup creates a lookup for pull requests in owner/repo.
func NewAPILookup(client *gogithub.Client, owner, repo string, timeout time.Duration) *APILookup {
	return &APILookup{client: client, owner: owner, repo: repo, timeout: timeout}
}

// LookupTitle fetches pull request number. Errors, including 404s and
// rate limiting, are reported as unavailable.
func (l *APILookup) LookupTitle(ctx context.Context, number int) TitleResult {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	pr, _, err := l.client.PullRequests.Get(ctx, l.owner, l.repo, number)
	if err != nil {
		return Unavailable(fmt.Sprintf("fetching pull request %s/%s#%d: %v", l.owner, l.repo, number, err))
	}
	return Found(pr.GetTitle())
}
