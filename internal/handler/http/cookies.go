package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-session-keeper/internal/session"
)

const (
	// sessionCookieName carries the signed bearer token.
	sessionCookieName = "__session"
	// flashCookieName carries the signed flash notice envelope.
	flashCookieName = "__flash"

	// rememberCookieMaxAge is the client-side lifetime of a "remember me"
	// session cookie. Without remember the cookie is a session cookie and
	// dies with the browser.
	rememberCookieMaxAge = 30 * 24 * time.Hour
)

// sessionToken extracts the raw bearer token from the request, or "" when
// the cookie is absent.
func sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}

	return cookie.Value
}

// setSessionCookie issues the session cookie carrying the bearer token.
func (h *Handler) setSessionCookie(w http.ResponseWriter, token string, remember bool) {
	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	}
	if remember {
		cookie.MaxAge = int(rememberCookieMaxAge / time.Second)
	}

	http.SetCookie(w, cookie)
}

// clearSessionCookie removes the session cookie from the client.
func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

// flashEnvelope decodes the request's flash cookie into a per-request
// envelope. A missing or tampered cookie yields an empty envelope.
func (h *Handler) flashEnvelope(r *http.Request) *session.Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return h.flash.Decode("")
	}

	return h.flash.Decode(cookie.Value)
}

// commitFlash writes the remaining envelope contents back to the client.
// Must be called before the response body is written. An empty envelope
// clears the cookie.
func (h *Handler) commitFlash(w http.ResponseWriter, flash *session.Flash) {
	value, err := flash.Commit()
	if err != nil {
		h.logger.Err(err).Msg("error committing flash cookie")
		return
	}

	cookie := &http.Cookie{
		Name:     flashCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	if value == "" {
		cookie.MaxAge = -1
	}

	http.SetCookie(w, cookie)
}
