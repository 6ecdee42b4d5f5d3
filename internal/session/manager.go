package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// CookieName identifies the browser session cookie.
const CookieName = "mealendar_session"

// Manager binds sessions to browsers via an HMAC-signed cookie. The
// cookie carries only the session ID plus a signature; all session
// data lives server-side in the Store.
type Manager struct {
	store  Store
	secret []byte
}

// NewManager creates a Manager signing cookies with secret.
func NewManager(store Store, secret string) *Manager {
	return &Manager{store: store, secret: []byte(secret)}
}

// Session returns the session for the request's browser, creating one
// (and setting the cookie on w) if the cookie is absent or its
// signature does not verify.
func (m *Manager) Session(w http.ResponseWriter, r *http.Request) *Session {
	if c, err := r.Cookie(CookieName); err == nil {
		if id, ok := m.verify(c.Value); ok {
			if s, found := m.store.Get(id); found {
				return s
			}
			// Valid cookie but evicted session: reuse the ID.
			s := &Session{}
			m.store.Put(id, s)
			return s
		}
	}

	id := uuid.NewString()
	s := &Session{}
	m.store.Put(id, s)
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    m.sign(id),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}

func (m *Manager) sign(id string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(id))
	return id + "." + hex.EncodeToString(mac.Sum(nil))
}

func (m *Manager) verify(value string) (string, bool) {
	id, sig, ok := strings.Cut(value, ".")
	if !ok || id == "" {
		return "", false
	}
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(id))
	want := hex.EncodeToString(mac.Sum(nil))
	if subtle.ConstantTimeCompare([]byte(sig), []byte(want)) != 1 {
		return "", false
	}
	return id, true
}
