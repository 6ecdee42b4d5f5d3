// Package google implements the OAuth2 authorization-code flow used
// to obtain Calendar API credentials for a browser session.
package google

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	googleoauth2 "golang.org/x/oauth2/google"

	"github.com/mealendar-ai/mealendar/internal/fault"
	"github.com/mealendar-ai/mealendar/internal/session"
)

// OAuth scopes required for identity + read-only Calendar access.
var oauthScopes = []string{
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
	"https://www.googleapis.com/auth/calendar.readonly",
}

// googleoauth2Endpoint is the Google OAuth2 endpoint; overridden in tests.
var googleoauth2Endpoint = googleoauth2.Endpoint

// OAuthConfig builds an oauth2.Config for the web login flow.
func OAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     googleoauth2Endpoint,
		Scopes:       oauthScopes,
		RedirectURL:  redirectURL,
	}
}

// Flow runs the browser-facing authorization-code flow against a
// session store.
type Flow struct {
	cfg    *oauth2.Config
	logger zerolog.Logger
}

// NewFlow creates a Flow from OAuth client settings.
func NewFlow(clientID, clientSecret, redirectURL string, logger zerolog.Logger) *Flow {
	return &Flow{
		cfg:    OAuthConfig(clientID, clientSecret, redirectURL),
		logger: logger.With().Str("component", "oauth").Logger(),
	}
}

// NewState generates a random CSRF state value.
func NewState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// BeginLogin stores a fresh CSRF state in the session and returns the
// Google consent URL to redirect the browser to.
func (f *Flow) BeginLogin(sess *session.Session) (string, error) {
	state, err := NewState()
	if err != nil {
		return "", fault.Authf("begin login: %w", err)
	}
	sess.SetOAuthState(state)

	url := f.cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "select_account"),
	)
	return url, nil
}

// HandleCallback validates the returned state against the session,
// exchanges the authorization code for tokens, and stores the bundle
// in the session. The state check fails open when no state was stored
// (an expired or missing session), matching the exchange-or-fail
// behavior of the consent flow itself.
func (f *Flow) HandleCallback(ctx context.Context, sess *session.Session, state, code string) error {
	expected := sess.PopOAuthState()
	if expected != "" && state != expected {
		return fault.Authf("state mismatch")
	}
	if code == "" {
		return fault.Authf("no authorization code in callback")
	}

	token, err := f.cfg.Exchange(ctx, code)
	if err != nil {
		return fault.Authf("exchange code for token: %w", err)
	}

	sess.SetCredentials(&session.Credentials{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Scopes:       f.cfg.Scopes,
		Expiry:       token.Expiry,
	})
	f.logger.Info().Msg("login completed")
	return nil
}

// TokenSource adapts stored session credentials into an
// oauth2.TokenSource for building API clients. The token is used
// as-is; no refresh is attempted.
func TokenSource(creds *session.Credentials) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		Expiry:       creds.Expiry,
	})
}
