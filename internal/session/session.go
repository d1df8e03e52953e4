// internal/session/session.go
//
// Session cookie helpers.
//
// Context
//   Each browser gets one contact form instance.  The instance is looked up
//   by an opaque UUID carried in the “contact_session” cookie.  The cookie
//   holds nothing else; all state lives server-side in Store.  A missing or
//   malformed cookie means a fresh session, which is the same as remounting
//   the form.
//
// Style
//   Two-space sentence spacing, Oxford comma, terse inline notes.
//
//------------------------------------------------------------------------------

package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	// CookieName is the session cookie key.
	CookieName = "contact_session"
	cookieTTL  = 24 * time.Hour
)

// ID returns the session id carried by r, if it is a well-formed UUID.
func ID(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	id, err := uuid.Parse(c.Value)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// Ensure returns the session id for r, issuing a new cookie on w when the
// request carries none.
func Ensure(w http.ResponseWriter, r *http.Request) string {
	if id, ok := ID(r); ok {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil, // only send over HTTPS when served over it
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(cookieTTL),
	})
	return id
}
