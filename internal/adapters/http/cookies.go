package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CookieOptions selects the cookie profile once at startup instead of
// scattering environment conditionals through handlers. Production uses the
// __Host- prefix, binding the cookie to the exact secure origin; the prefix
// and the Secure attribute are dropped only for local HTTP development.
type CookieOptions struct {
	Prefix string
	Secure bool
}

// NewCookieOptions derives the profile from the environment name.
func NewCookieOptions(environment string) CookieOptions {
	if environment == "development" {
		return CookieOptions{}
	}
	return CookieOptions{Prefix: "__Host-", Secure: true}
}

func (o CookieOptions) SessionCookieName() string { return o.Prefix + "session" }
func (o CookieOptions) CSRFCookieName() string    { return o.Prefix + "csrf" }

// setAuthCookies writes the session and CSRF cookies after a successful
// login or registration. The session cookie is HttpOnly; the CSRF cookie is
// readable so pages and scripts can echo the token back on mutations.
func (o CookieOptions) setAuthCookies(w http.ResponseWriter, sessionID uuid.UUID, csrfToken string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     o.SessionCookieName(),
		Value:    sessionID.String(),
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     o.CSRFCookieName(),
		Value:    csrfToken,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearAuthCookies expires both cookies on logout.
func (o CookieOptions) clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     o.SessionCookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     o.CSRFCookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// sessionIDFromRequest extracts and parses the session cookie. The boolean
// is false when the cookie is absent or not a valid identifier.
func (o CookieOptions) sessionIDFromRequest(r *http.Request) (uuid.UUID, bool) {
	cookie, err := r.Cookie(o.SessionCookieName())
	if err != nil || cookie.Value == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
