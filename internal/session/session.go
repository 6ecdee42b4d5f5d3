// Package session holds per-browser state: the transient OAuth CSRF
// state and, after login, the Google credential bundle. Nothing here
// is persisted beyond process lifetime.
package session

import (
	"sync"
	"time"
)

// Credentials is the token bundle stored after a successful OAuth
// callback. RefreshToken may be empty; tokens are never refreshed by
// this backend.
type Credentials struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Scopes       []string  `json:"scope,omitempty"`
	Expiry       time.Time `json:"expiry,omitempty"`
}

// Session is the state bound to one browser.
type Session struct {
	mu          sync.Mutex
	oauthState  string
	credentials *Credentials
}

// SetOAuthState stores the CSRF state for the pending login.
func (s *Session) SetOAuthState(state string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.oauthState = state
}

// PopOAuthState returns the stored CSRF state and clears it. Returns
// the empty string if no login is pending.
func (s *Session) PopOAuthState() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.oauthState
	s.oauthState = ""
	return state
}

// SetCredentials stores the token bundle from a completed exchange.
func (s *Session) SetCredentials(creds *Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentials = creds
}

// Credentials returns the stored token bundle, or nil when the user
// has not logged in.
func (s *Session) Credentials() *Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credentials
}

// LoggedIn reports whether a credential bundle is present. Token
// expiry is deliberately not checked.
func (s *Session) LoggedIn() bool {
	return s.Credentials() != nil
}
