package config

import (
	"time"

	"golang.org/x/oauth2/github"
)

// GitHubConfig holds GitHub OAuth app and REST API settings
type GitHubConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
	AuthURL      string
	TokenURL     string
	APIBaseURL   string
	Timeout      time.Duration
}

// DefaultGitHubConfig returns the default GitHub configuration
func DefaultGitHubConfig() *GitHubConfig {
	return &GitHubConfig{
		Scopes:     []string{"read:user", "repo"},
		AuthURL:    github.Endpoint.AuthURL,
		TokenURL:   github.Endpoint.TokenURL,
		APIBaseURL: "https://api.github.com/",
		Timeout:    10 * time.Second,
	}
}
