package github

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/itsanimesh04/DevMetrics/internal/config"
)

// OAuthExchanger trades authorization codes for access tokens.
type OAuthExchanger struct {
	config     *oauth2.Config
	httpClient *http.Client
}

// NewOAuthExchanger creates an exchanger for the configured OAuth app.
func NewOAuthExchanger(cfg *config.GitHubConfig) *OAuthExchanger {
	return &OAuthExchanger{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Exchange posts code to the token endpoint and returns the access token as issued.
func (o *OAuthExchanger) Exchange(ctx context.Context, code string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, o.httpClient)

	token, err := o.config.Exchange(ctx, code)
	if err != nil {
		return "", wrapExchangeError(err)
	}
	return token.AccessToken, nil
}

// AuthCodeURL returns the provider authorize URL carrying state.
func (o *OAuthExchanger) AuthCodeURL(state string) string {
	return o.config.AuthCodeURL(state)
}
