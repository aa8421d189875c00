package auth

import (
	"golang.org/x/oauth2"

	"github.com/Amarverma111/graph/internal/config"
)

// OAuthConfig builds the authorization-code flow configuration from the
// auth config block.
func OAuthConfig(cfg config.AuthConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       cfg.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  cfg.AuthorizationURL,
			TokenURL: cfg.TokenURL,
		},
	}
}

// AuthCodeURL returns the identity provider's authorization page URL for
// the login redirect, forcing a fresh login prompt.
func AuthCodeURL(cfg config.AuthConfig, state string) string {
	return OAuthConfig(cfg).AuthCodeURL(state,
		oauth2.SetAuthURLParam("response_mode", "query"),
		oauth2.SetAuthURLParam("prompt", "login"),
	)
}
