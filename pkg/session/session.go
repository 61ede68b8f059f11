// Package session persists the signed-in user in a cookie pair: the backend
// token under "Authorization" and the JSON identity under "user". Both expire
// together after a fixed short window. The store holds no per-user state in
// memory; handlers read the session back out of each request.
package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"blogfront/pkg/models"
)

const (
	tokenCookie = "Authorization"
	userCookie  = "user"

	// DefaultTTL matches the backend token's short-lived window.
	DefaultTTL = 12 * time.Hour
)

var (
	// ErrIncomplete rejects a save with a missing identity or token.
	ErrIncomplete = errors.New("session: identity or token missing")
	// ErrNoSession marks a request with no usable session; the viewer is
	// treated as signed out.
	ErrNoSession = errors.New("session: not authenticated")
)

type Session struct {
	Token    string
	Identity models.Identity
}

func (s Session) LoggedIn() bool {
	return s.Token != ""
}

type Store struct {
	ttl    time.Duration
	secure bool
}

func NewStore(ttl time.Duration, secure bool) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{ttl: ttl, secure: secure}
}

// Save writes both cookies under the store's expiry window. The identity is
// base64-encoded JSON; raw JSON is not a valid cookie value.
func (st *Store) Save(w http.ResponseWriter, identity models.Identity, token string) error {
	if token == "" || (identity.Name == "" && identity.Email == "") {
		return ErrIncomplete
	}

	payload, err := json.Marshal(identity)
	if err != nil {
		return err
	}

	expires := time.Now().Add(st.ttl)
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		Secure:   st.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     userCookie,
		Value:    base64.URLEncoding.EncodeToString(payload),
		Path:     "/",
		Expires:  expires,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// Clear expires both cookies.
func (st *Store) Clear(w http.ResponseWriter) {
	for _, name := range []string{tokenCookie, userCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// Restore reads the session out of the request. An absent or undecodable
// cookie pair yields ErrNoSession; an expired pair never reaches the server
// because the browser drops it with the cookie expiry.
func (st *Store) Restore(r *http.Request) (Session, error) {
	tc, err := r.Cookie(tokenCookie)
	if err != nil || tc.Value == "" {
		return Session{}, ErrNoSession
	}
	uc, err := r.Cookie(userCookie)
	if err != nil || uc.Value == "" {
		return Session{}, ErrNoSession
	}

	payload, err := base64.URLEncoding.DecodeString(uc.Value)
	if err != nil {
		return Session{}, ErrNoSession
	}
	var identity models.Identity
	if err := json.Unmarshal(payload, &identity); err != nil {
		return Session{}, ErrNoSession
	}

	return Session{Token: tc.Value, Identity: identity}, nil
}
