package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

const (
	// RepoPageSize is how many repositories are requested and returned.
	RepoPageSize = 10
	// CommitSampleSize is how many recent commits feed the activity series.
	CommitSampleSize = 30
)

// GitHubClient performs REST reads on behalf of the token passed to each call.
// It holds no credentials of its own.
type GitHubClient struct {
	baseURL *url.URL
	timeout time.Duration
	base    *http.Client
}

// ClientOption allows configuring the GitHub client
type ClientOption func(*GitHubClient)

// WithHTTPClient sets the transport used underneath the token source.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *GitHubClient) {
		c.base = client
	}
}

// NewGitHubClient creates a client for the REST API rooted at baseURL.
func NewGitHubClient(baseURL string, timeout time.Duration, opts ...ClientOption) (*GitHubClient, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API base URL %q: %w", baseURL, err)
	}

	client := &GitHubClient{
		baseURL: parsed,
		timeout: timeout,
		base:    &http.Client{Timeout: timeout},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// forToken builds a go-github client that authenticates as token.
func (c *GitHubClient) forToken(ctx context.Context, token string) *gh.Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	httpClient := oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, c.base), ts)
	httpClient.Timeout = c.timeout

	client := gh.NewClient(httpClient)
	client.BaseURL = c.baseURL
	return client
}

// GetAuthenticatedUser returns the /user document exactly as GitHub sent it.
func (c *GitHubClient) GetAuthenticatedUser(ctx context.Context, token string) (json.RawMessage, error) {
	client := c.forToken(ctx, token)

	req, err := client.NewRequest(http.MethodGet, "user", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var raw json.RawMessage
	if _, err := client.Do(ctx, req, &raw); err != nil {
		return nil, wrapAPIError("get user", err)
	}
	return raw, nil
}

// ListRepositories returns the token owner's most recently updated repositories.
func (c *GitHubClient) ListRepositories(ctx context.Context, token string) ([]*gh.Repository, error) {
	client := c.forToken(ctx, token)

	opts := &gh.RepositoryListByAuthenticatedUserOptions{
		Sort:        "updated",
		ListOptions: gh.ListOptions{PerPage: RepoPageSize},
	}
	repos, _, err := client.Repositories.ListByAuthenticatedUser(ctx, opts)
	if err != nil {
		return nil, wrapAPIError("list repositories", err)
	}
	return repos, nil
}

// ListCommits returns the most recent commits on the default branch of owner/repo.
func (c *GitHubClient) ListCommits(ctx context.Context, token, owner, repo string) ([]*gh.RepositoryCommit, error) {
	client := c.forToken(ctx, token)

	opts := &gh.CommitsListOptions{
		ListOptions: gh.ListOptions{PerPage: CommitSampleSize},
	}
	commits, _, err := client.Repositories.ListCommits(ctx, owner, repo, opts)
	if err != nil {
		return nil, wrapAPIError(fmt.Sprintf("list commits %s/%s", owner, repo), err)
	}
	return commits, nil
}
