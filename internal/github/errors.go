package github

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	gh "github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

// GitHubError is an upstream failure. Details carries the provider's own
// payload when one was returned.
type GitHubError struct {
	StatusCode int
	Message    string
	Details    interface{}
	Err        error
}

func (e *GitHubError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("GitHub API error (status %d): %s: %v", e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("GitHub API error (status %d): %s", e.StatusCode, e.Message)
}

func (e *GitHubError) Unwrap() error {
	return e.Err
}

// NewGitHubError creates a new GitHubError with the given status code and message
func NewGitHubError(statusCode int, message string, err error) *GitHubError {
	return &GitHubError{
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

// wrapAPIError converts errors returned by go-github.
func wrapAPIError(op string, err error) error {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		e := NewGitHubError(statusOf(rateErr.Response), op+": rate limit exceeded", err)
		e.Details = map[string]interface{}{
			"message": rateErr.Message,
			"reset":   rateErr.Rate.Reset.Time,
		}
		return e
	}

	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) {
		e := NewGitHubError(statusOf(respErr.Response), op+": "+respErr.Message, err)
		e.Details = map[string]interface{}{
			"message":           respErr.Message,
			"documentation_url": respErr.DocumentationURL,
		}
		return e
	}

	return NewGitHubError(0, op+": request failed", err)
}

// wrapExchangeError converts errors returned by oauth2.Config.Exchange.
// GitHub reports a rejected code with a 200 status and an error field, which
// oauth2 surfaces as a RetrieveError as well.
func wrapExchangeError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if !errors.As(err, &retrieveErr) {
		e := NewGitHubError(0, "token exchange failed", err)
		e.Details = err.Error()
		return e
	}

	e := NewGitHubError(statusOf(retrieveErr.Response), "token exchange failed", err)
	e.Details = providerPayload(retrieveErr)
	return e
}

func providerPayload(retrieveErr *oauth2.RetrieveError) interface{} {
	var payload interface{}
	if err := json.Unmarshal(retrieveErr.Body, &payload); err == nil {
		return payload
	}
	if values, err := url.ParseQuery(string(retrieveErr.Body)); err == nil && values.Get("error") != "" {
		out := make(map[string]interface{}, len(values))
		for key := range values {
			out[key] = values.Get(key)
		}
		return out
	}
	if retrieveErr.ErrorCode != "" {
		return map[string]interface{}{
			"error":             retrieveErr.ErrorCode,
			"error_description": retrieveErr.ErrorDescription,
			"error_uri":         retrieveErr.ErrorURI,
		}
	}
	return retrieveErr.Error()
}

func statusOf(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}
