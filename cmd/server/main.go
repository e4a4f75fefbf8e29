package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/itsanimesh04/DevMetrics/internal/api"
	"github.com/itsanimesh04/DevMetrics/internal/config"
	"github.com/itsanimesh04/DevMetrics/internal/github"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:          "devmetrics-server",
		Short:        "DevMetrics backend: GitHub OAuth exchange and data proxy",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), v)
		},
	}

	cmd.Flags().String("port", "", "port to listen on (env PORT)")
	cmd.Flags().String("log-level", "", "log level: debug, info, warn, error (env LOG_LEVEL)")
	cmd.Flags().String("env-file", "", "path to a .env file (env ENV_FILE_PATH)")

	_ = v.BindPFlag(config.KeyPort, cmd.Flags().Lookup("port"))
	_ = v.BindPFlag(config.KeyLogLevel, cmd.Flags().Lookup("log-level"))
	_ = v.BindPFlag(config.KeyEnvFilePath, cmd.Flags().Lookup("env-file"))

	return cmd
}

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	logger.SetOutput(os.Stdout)
	return logger
}

func configureLogger(logger *logrus.Logger, cfg *config.Config) {
	if cfg.LogFormat == "text" {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.WithField("level", cfg.LogLevel).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
}

func run(ctx context.Context, v *viper.Viper) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := newLogger()

	// Secrets and .env must be in the environment before viper reads it.
	config.LoadEnv(ctx, v.GetString(config.KeyEnvFilePath), logger)

	v.AutomaticEnv()
	config.SetDefaults(v)
	cfg, err := config.LoadFrom(v)
	if err != nil {
		logger.WithError(err).Error("Failed to load configuration")
		return err
	}
	configureLogger(logger, cfg)
	logger.WithFields(logrus.Fields(cfg.LogFields())).Info("Configuration loaded")

	if strings.EqualFold(cfg.LogLevel, "debug") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	apiClient, err := github.NewGitHubClient(cfg.GitHub.APIBaseURL, cfg.GitHub.Timeout)
	if err != nil {
		return err
	}
	service := github.NewService(
		github.NewOAuthExchanger(cfg.GitHub),
		apiClient,
		cfg.GitHub.Timeout,
		logger,
	)
	handler := api.NewHandler(service, logger)
	router := api.SetupRouter(handler, logger)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.WithCORS(router, cfg.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	logger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
		return err
	}
	logger.Info("Server exited properly")
	return nil
}
