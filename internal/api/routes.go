package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title DevMetrics API
// @version 1.0
// @description GitHub OAuth code exchange and authenticated read proxy for the DevMetrics dashboard
// @host localhost:3001
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the GitHub access token.

// SetupRouter configures the API routes
func SetupRouter(h *Handler, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Logger(logger))

	r.GET("/", h.Health)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := r.Group("/auth/github")
	{
		auth.GET("/login", h.Login)
		auth.POST("/callback", h.HandleCallback)
	}

	data := r.Group("/api/github", RequireBearerToken(h))
	{
		data.GET("/user", h.GetUser)
		data.GET("/repos", h.GetRepos)
		data.GET("/commits/:owner/:repo", h.GetCommits)
	}

	return r
}

// WithCORS wraps handler so browsers on allowedOrigins may call it.
func WithCORS(handler http.Handler, allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	}).Handler(handler)
}
