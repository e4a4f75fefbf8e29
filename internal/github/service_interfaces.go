package github

import (
	"context"
	"encoding/json"

	gh "github.com/google/go-github/v66/github"
)

// TokenExchanger defines the OAuth operations against the provider
type TokenExchanger interface {
	// Exchange trades a one-time authorization code for an access token
	Exchange(ctx context.Context, code string) (string, error)

	// AuthCodeURL builds the provider authorize URL for state
	AuthCodeURL(state string) string
}

// APIClient defines the REST reads made with a caller's token
type APIClient interface {
	// GetAuthenticatedUser returns the profile document verbatim
	GetAuthenticatedUser(ctx context.Context, token string) (json.RawMessage, error)

	// ListRepositories returns the most recently updated repositories
	ListRepositories(ctx context.Context, token string) ([]*gh.Repository, error)

	// ListCommits returns the most recent commits of owner/repo
	ListCommits(ctx context.Context, token, owner, repo string) ([]*gh.RepositoryCommit, error)
}
