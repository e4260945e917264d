// Package auth implements the ClickUp OAuth authorization-code flow.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

const (
	AuthURL  = "https://app.clickup.com/api"
	TokenURL = "https://api.clickup.com/api/v2/oauth/token"
)

// ErrMissingClient is returned when client credentials are not configured.
var ErrMissingClient = errors.New("auth: client_id and client_secret are required (set CLICKUP_CLIENT_ID and CLICKUP_CLIENT_SECRET)")

// Flow wraps an oauth2.Config for ClickUp.
type Flow struct {
	cfg *oauth2.Config
}

// Option customizes a Flow.
type Option func(*oauth2.Config)

// WithEndpoint overrides the authorization and token endpoints.
func WithEndpoint(authURL, tokenURL string) Option {
	return func(c *oauth2.Config) {
		c.Endpoint.AuthURL = authURL
		c.Endpoint.TokenURL = tokenURL
	}
}

// NewFlow builds a flow. ClickUp expects client credentials in the token
// request parameters, not in a basic auth header.
func NewFlow(clientID, clientSecret, redirectURL string, opts ...Option) (*Flow, error) {
	if clientID == "" || clientSecret == "" {
		return nil, ErrMissingClient
	}
	cfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint: oauth2.Endpoint{
			AuthURL:   AuthURL,
			TokenURL:  TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Flow{cfg: cfg}, nil
}

// AuthCodeURL returns the URL the user visits to grant access.
func (f *Flow) AuthCodeURL(state string) string {
	return f.cfg.AuthCodeURL(state)
}

// Exchange trades an authorization code for an access token. ClickUp
// tokens do not expire and carry no refresh token.
func (f *Flow) Exchange(ctx context.Context, code string, httpClient *http.Client) (string, error) {
	if code == "" {
		return "", errors.New("auth: authorization code is required")
	}
	if httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	}
	tok, err := f.cfg.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("auth: exchange code: %w", err)
	}
	if tok.AccessToken == "" {
		return "", errors.New("auth: token response had no access_token")
	}
	return tok.AccessToken, nil
}
