package api

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	apperrors "github.com/itsanimesh04/DevMetrics/internal/errors"
	"github.com/itsanimesh04/DevMetrics/internal/github"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	tokenKey        = "bearer_token"
)

// RequestID tags every request with an id, reusing the caller's when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// Logger writes one structured entry per request.
func Logger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"route":      route,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"request_id": c.GetString(requestIDKey),
		}).Info("request")
	}
}

// RequireBearerToken rejects requests without "Authorization: Bearer <token>"
// and stores the token for the handler.
func RequireBearerToken(h *Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := parseBearer(c.GetHeader("Authorization"))
		if !ok {
			h.respondWithError(c, apperrors.NewUnauthenticatedError(github.MsgNoToken))
			return
		}
		c.Set(tokenKey, token)
		c.Next()
	}
}

func parseBearer(header string) (string, bool) {
	fields := strings.Fields(header)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", false
	}
	return fields[1], true
}

func bearerToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}
