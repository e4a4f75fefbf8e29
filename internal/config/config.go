package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/itsanimesh04/DevMetrics/pkg/utils"
)

// Config keys, also used as environment variable names.
const (
	KeyPort            = "PORT"
	KeyClientID        = "GITHUB_CLIENT_ID"
	KeyClientSecret    = "GITHUB_CLIENT_SECRET"
	KeyRedirectURL     = "GITHUB_REDIRECT_URL"
	KeyScopes          = "GITHUB_SCOPES"
	KeyAuthURL         = "GITHUB_AUTH_URL"
	KeyTokenURL        = "GITHUB_TOKEN_URL"
	KeyAPIBaseURL      = "GITHUB_API_BASE_URL"
	KeyUpstreamTimeout = "UPSTREAM_TIMEOUT"
	KeyAllowedOrigins  = "CORS_ALLOWED_ORIGINS"
	KeyLogLevel        = "LOG_LEVEL"
	KeyLogFormat       = "LOG_FORMAT"
	KeyEnvFilePath     = "ENV_FILE_PATH"
)

type Config struct {
	Port           string
	GitHub         *GitHubConfig
	AllowedOrigins []string
	LogLevel       string
	LogFormat      string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	gh := DefaultGitHubConfig()

	v.SetDefault(KeyPort, "3001")
	v.SetDefault(KeyScopes, "read:user,repo")
	v.SetDefault(KeyAuthURL, gh.AuthURL)
	v.SetDefault(KeyTokenURL, gh.TokenURL)
	v.SetDefault(KeyAPIBaseURL, gh.APIBaseURL)
	v.SetDefault(KeyUpstreamTimeout, gh.Timeout.String())
	v.SetDefault(KeyAllowedOrigins, "*")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "json")
	v.SetDefault(KeyEnvFilePath, ".env")
}

// Load reads configuration from the process environment.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	SetDefaults(v)
	return LoadFrom(v)
}

// LoadFrom builds a Config from an already populated viper instance, so that
// command line flags bound by the caller take precedence over the environment.
func LoadFrom(v *viper.Viper) (*Config, error) {
	timeout, err := time.ParseDuration(v.GetString(KeyUpstreamTimeout))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyUpstreamTimeout, err)
	}

	cfg := &Config{
		Port: v.GetString(KeyPort),
		GitHub: &GitHubConfig{
			ClientID:     v.GetString(KeyClientID),
			ClientSecret: v.GetString(KeyClientSecret),
			RedirectURL:  v.GetString(KeyRedirectURL),
			Scopes:       utils.SplitCSV(v.GetString(KeyScopes)),
			AuthURL:      v.GetString(KeyAuthURL),
			TokenURL:     v.GetString(KeyTokenURL),
			APIBaseURL:   v.GetString(KeyAPIBaseURL),
			Timeout:      timeout,
		},
		AllowedOrigins: utils.SplitCSV(v.GetString(KeyAllowedOrigins)),
		LogLevel:       v.GetString(KeyLogLevel),
		LogFormat:      v.GetString(KeyLogFormat),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, fmt.Errorf("%s must not be empty", KeyPort))
	}
	if c.GitHub == nil {
		return errors.Join(append(errs, errors.New("github configuration missing"))...)
	}
	if c.GitHub.ClientID == "" {
		errs = append(errs, fmt.Errorf("%s is required", KeyClientID))
	}
	if c.GitHub.ClientSecret == "" {
		errs = append(errs, fmt.Errorf("%s is required", KeyClientSecret))
	}
	if c.GitHub.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyUpstreamTimeout))
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("%s must be json or text, got %q", KeyLogFormat, c.LogFormat))
	}
	return errors.Join(errs...)
}

// LogFields returns a log-safe view of the configuration.
func (c *Config) LogFields() map[string]interface{} {
	return map[string]interface{}{
		"port":             c.Port,
		"client_id":        c.GitHub.ClientID,
		"client_secret":    utils.Presence(c.GitHub.ClientSecret),
		"redirect_url":     c.GitHub.RedirectURL,
		"api_base_url":     c.GitHub.APIBaseURL,
		"upstream_timeout": c.GitHub.Timeout.String(),
		"allowed_origins":  c.AllowedOrigins,
		"log_level":        c.LogLevel,
	}
}
