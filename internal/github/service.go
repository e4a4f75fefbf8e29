package github

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	gh "github.com/google/go-github/v66/github"
	"github.com/sirupsen/logrus"

	"github.com/itsanimesh04/DevMetrics/internal/activity"
	apperrors "github.com/itsanimesh04/DevMetrics/internal/errors"
	"github.com/itsanimesh04/DevMetrics/internal/models"
	"github.com/itsanimesh04/DevMetrics/pkg/utils"
)

// Messages returned to the caller.
const (
	MsgNoCode         = "No code provided"
	MsgNoToken        = "No token provided"
	MsgExchangeFailed = "Failed to exchange code"
	MsgUserFailed     = "Failed to fetch user data"
	MsgReposFailed    = "Failed to fetch repositories"
	MsgCommitsFailed  = "Failed to fetch commits"
)

// Service implements the auth and data proxy operations.
type Service struct {
	exchanger TokenExchanger
	api       APIClient
	timeout   time.Duration
	logger    *logrus.Logger
}

// NewService creates a new Service. A zero timeout leaves the request context as is.
func NewService(exchanger TokenExchanger, api APIClient, timeout time.Duration, logger *logrus.Logger) *Service {
	return &Service{
		exchanger: exchanger,
		api:       api,
		timeout:   timeout,
		logger:    logger,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// AuthorizeURL returns the provider authorize URL for state.
func (s *Service) AuthorizeURL(state string) string {
	return s.exchanger.AuthCodeURL(state)
}

// ExchangeCode trades an authorization code for an access token.
func (s *Service) ExchangeCode(ctx context.Context, code string) (*models.TokenResponse, error) {
	if strings.TrimSpace(code) == "" {
		return nil, apperrors.NewMissingInputError(MsgNoCode)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	token, err := s.exchanger.Exchange(ctx, code)
	if err != nil {
		s.logger.WithError(err).Warn("GitHub code exchange failed")
		return nil, apperrors.NewExchangeFailedError(MsgExchangeFailed, err).WithDetails(detailsOf(err))
	}

	s.logger.WithField("token", utils.MaskToken(token)).Info("GitHub code exchanged")
	return &models.TokenResponse{Success: true, AccessToken: token}, nil
}

// GetUserProfile returns the caller's GitHub profile verbatim.
func (s *Service) GetUserProfile(ctx context.Context, token string) (json.RawMessage, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	profile, err := s.api.GetAuthenticatedUser(ctx, token)
	if err != nil {
		s.fetchFailed(err, "user", token)
		return nil, apperrors.NewFetchFailedError(MsgUserFailed, err)
	}

	if s.logger.IsLevelEnabled(logrus.DebugLevel) {
		var user models.UserProfile
		if err := json.Unmarshal(profile, &user); err == nil {
			s.logger.WithField("login", user.Login).Debug("GitHub profile fetched")
		}
	}
	return profile, nil
}

// ListRepositories returns up to RepoPageSize summaries in upstream order.
func (s *Service) ListRepositories(ctx context.Context, token string) ([]models.RepositorySummary, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	repos, err := s.api.ListRepositories(ctx, token)
	if err != nil {
		s.fetchFailed(err, "repos", token)
		return nil, apperrors.NewFetchFailedError(MsgReposFailed, err)
	}

	if len(repos) > RepoPageSize {
		repos = repos[:RepoPageSize]
	}
	summaries := make([]models.RepositorySummary, 0, len(repos))
	for _, repo := range repos {
		if repo == nil {
			continue
		}
		summaries = append(summaries, toSummary(repo))
	}
	return summaries, nil
}

// ListCommitActivity returns per-day commit counts for the most recent
// commits of owner/repo.
func (s *Service) ListCommitActivity(ctx context.Context, token, owner, repo string) ([]models.CommitActivityPoint, error) {
	if err := requireToken(token); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	commits, err := s.api.ListCommits(ctx, token, owner, repo)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"owner": owner,
			"repo":  repo,
		}).WithError(err).Warn("GitHub commits fetch failed")
		return nil, apperrors.NewFetchFailedError(MsgCommitsFailed, err)
	}

	timestamps := make([]string, 0, len(commits))
	for _, commit := range commits {
		date := commit.GetCommit().GetAuthor().GetDate()
		if date.Time.IsZero() {
			continue
		}
		timestamps = append(timestamps, date.Time.Format(time.RFC3339))
	}
	return activity.DailyCounts(timestamps), nil
}

func (s *Service) fetchFailed(err error, resource, token string) {
	s.logger.WithFields(logrus.Fields{
		"resource": resource,
		"token":    utils.MaskToken(token),
	}).WithError(err).Warn("GitHub fetch failed")
}

func requireToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return apperrors.NewUnauthenticatedError(MsgNoToken)
	}
	return nil
}

func toSummary(repo *gh.Repository) models.RepositorySummary {
	summary := models.RepositorySummary{
		ID:          repo.GetID(),
		Name:        repo.GetName(),
		FullName:    repo.GetFullName(),
		Description: repo.Description,
		Language:    repo.Language,
		Stars:       repo.GetStargazersCount(),
	}
	if repo.UpdatedAt != nil {
		updated := repo.UpdatedAt.Time
		summary.UpdatedAt = &updated
	}
	return summary
}

func detailsOf(err error) interface{} {
	var ghErr *GitHubError
	if errors.As(err, &ghErr) && ghErr.Details != nil {
		return ghErr.Details
	}
	return err.Error()
}
