package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-session-keeper/internal/logger"
	"github.com/MKhiriev/go-session-keeper/internal/session"
	"github.com/MKhiriev/go-session-keeper/internal/utils"
	"github.com/MKhiriev/go-session-keeper/models"
)

// loginPath is where clients are sent after a forced logout.
const loginPath = "/login"

// withIdentity resolves the request's session cookie to a caller identity
// before any handler runs and stores it in the request context under
// [utils.IdentityCtxKey].
//
// Outcomes:
//   - no cookie, or a cookie that does not decode → anonymous identity.
//   - cookie decodes and the backing record exists → authenticated identity.
//   - cookie decodes but the record is gone ([session.ErrSessionMissing]) →
//     hard teardown: the cookie is cleared, a "Session expired" notice is
//     queued, and the request is answered with 401 and a login redirect.
//     A store-side eviction must never be conflated with "never logged in".
func (h *Handler) withIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		ident, err := h.sessions.ResolveToken(r.Context(), sessionToken(r))
		if err != nil {
			if errors.Is(err, session.ErrSessionMissing) {
				h.forceLogout(w, r, "Session expired")
				return
			}

			log.Err(err).Msg("error resolving session")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		ctx := utils.WithIdentity(r.Context(), ident)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireIdentity rejects anonymous callers with a login redirect. It runs
// after withIdentity.
func (h *Handler) requireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := utils.GetIdentityFromContext(r.Context())
		if !ok || !ident.Authenticated() {
			h.redirectToLogin(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// forceLogout tears the presented session down completely: the backing
// record is deleted best-effort, the session cookie is cleared, and a
// one-time notice is queued on the logout channel before the client is sent
// to the login entry point.
func (h *Handler) forceLogout(w http.ResponseWriter, r *http.Request, title string) {
	log := logger.FromRequest(r)

	if err := h.sessions.DestroyToken(r.Context(), sessionToken(r)); err != nil {
		log.Err(err).Msg("error destroying session during forced logout")
	}

	flash := h.flashEnvelope(r)
	flash.Set(models.FlashChannelLogout, models.FlashNotice{
		ID:    newNoticeID(),
		Title: title,
		Type:  models.FlashTypeSuccess,
	})
	h.commitFlash(w, flash)

	h.clearSessionCookie(w)
	h.redirectToLogin(w, r)
}

// redirectToLogin answers with 401 and the login entry point. API clients
// follow the redirect hint; browsers hitting the API directly get a plain
// Location header.
func (h *Handler) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Location", loginPath)
	writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{
		Error: models.NewAuthError(models.CodeUnauthorized, "", "Must be logged in"),
	})
}
