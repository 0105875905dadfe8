package auth

import (
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"GradLinkUp-backend/internal/config"
)

// GoogleUserInfoEndpoint return id, email, name and picture of the token owner
const GoogleUserInfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

// NewGoogleOauthConfig build oauth2 config for google sign-in
func NewGoogleOauthConfig(cfg config.GoogleConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
			"openid",
		},
		Endpoint:    google.Endpoint,
		RedirectURL: cfg.RedirectURL,
	}
}
