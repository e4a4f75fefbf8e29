package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	apperrors "github.com/itsanimesh04/DevMetrics/internal/errors"
	"github.com/itsanimesh04/DevMetrics/internal/github"
	"github.com/itsanimesh04/DevMetrics/internal/models"
)

// ProxyService is the set of operations the handlers expose.
type ProxyService interface {
	AuthorizeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*models.TokenResponse, error)
	GetUserProfile(ctx context.Context, token string) (json.RawMessage, error)
	ListRepositories(ctx context.Context, token string) ([]models.RepositorySummary, error)
	ListCommitActivity(ctx context.Context, token, owner, repo string) ([]models.CommitActivityPoint, error)
}

type Handler struct {
	service ProxyService
	logger  *logrus.Logger
}

func NewHandler(service ProxyService, logger *logrus.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Health godoc
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router / [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Message: "Backend is running!"})
}

// Login godoc
// @Summary Redirect to the GitHub authorize page
// @Tags auth
// @Param state query string false "Opaque state echoed back by GitHub; generated when absent"
// @Success 307 "Redirect to GitHub"
// @Router /auth/github/login [get]
func (h *Handler) Login(c *gin.Context) {
	state := c.Query("state")
	if state == "" {
		state = uuid.NewString()
	}
	c.Redirect(http.StatusTemporaryRedirect, h.service.AuthorizeURL(state))
}

// HandleCallback godoc
// @Summary Exchange an authorization code for an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CallbackRequest true "Authorization code from the GitHub redirect"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} ErrorResponse "No code provided"
// @Failure 500 {object} ErrorResponse "Failed to exchange code"
// @Router /auth/github/callback [post]
func (h *Handler) HandleCallback(c *gin.Context) {
	var req models.CallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Debug("Unreadable callback body")
		h.respondWithError(c, apperrors.NewMissingInputError(github.MsgNoCode))
		return
	}

	resp, err := h.service.ExchangeCode(c.Request.Context(), req.Code)
	if err != nil {
		h.respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetUser godoc
// @Summary Get the authenticated user's profile
// @Description Returns the GitHub /user document unchanged.
// @Tags data
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserProfile
// @Failure 401 {object} ErrorResponse "No token provided"
// @Failure 500 {object} ErrorResponse "Failed to fetch user data"
// @Router /api/github/user [get]
func (h *Handler) GetUser(c *gin.Context) {
	profile, err := h.service.GetUserProfile(c.Request.Context(), bearerToken(c))
	if err != nil {
		h.respondWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", profile)
}

// GetRepos godoc
// @Summary List the ten most recently updated repositories
// @Tags data
// @Produce json
// @Security BearerAuth
// @Success 200 {array} RepositorySummary
// @Failure 401 {object} ErrorResponse "No token provided"
// @Failure 500 {object} ErrorResponse "Failed to fetch repositories"
// @Router /api/github/repos [get]
func (h *Handler) GetRepos(c *gin.Context) {
	repos, err := h.service.ListRepositories(c.Request.Context(), bearerToken(c))
	if err != nil {
		h.respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, repos)
}

// GetCommits godoc
// @Summary Daily commit counts for a repository
// @Description Groups the 30 most recent commits by author date.
// @Tags data
// @Produce json
// @Security BearerAuth
// @Param owner path string true "Repository owner"
// @Param repo path string true "Repository name"
// @Success 200 {array} CommitActivityPoint
// @Failure 401 {object} ErrorResponse "No token provided"
// @Failure 500 {object} ErrorResponse "Failed to fetch commits"
// @Router /api/github/commits/{owner}/{repo} [get]
func (h *Handler) GetCommits(c *gin.Context) {
	owner := c.Param("owner")
	repo := c.Param("repo")

	points, err := h.service.ListCommitActivity(c.Request.Context(), bearerToken(c), owner, repo)
	if err != nil {
		h.respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, points)
}

func (h *Handler) respondWithError(c *gin.Context, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		appErr = apperrors.NewInternalError("Internal server error", err)
	}
	status := apperrors.HTTPStatus(appErr)
	body := models.ErrorResponse{Error: appErr.Message, Details: appErr.Details}

	entry := h.logger.WithFields(logrus.Fields{
		"status":     status,
		"path":       c.FullPath(),
		"request_id": c.GetString(requestIDKey),
	}).WithError(err)
	if status >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Info("Request rejected")
	}

	c.AbortWithStatusJSON(status, body)
}
