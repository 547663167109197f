package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-session-keeper/internal/logger"
	"github.com/MKhiriev/go-session-keeper/internal/service"
	"github.com/MKhiriev/go-session-keeper/models"
)

// writeJSON serialises v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusOfCode maps the AuthError taxonomy to HTTP status codes.
func statusOfCode(code models.AuthCode) int {
	switch code {
	case models.CodeUnauthorized:
		return http.StatusUnauthorized
	case models.CodeConflict:
		return http.StatusConflict
	case models.CodeNotFound:
		return http.StatusNotFound
	case models.CodeBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError renders a service-layer failure.
//
// Expected failures (the AuthError taxonomy) become field-scoped JSON
// errors with the matching status. UNAUTHORIZED and a vanished user both
// force a full logout instead of an inline form error: they mean the
// caller's session went invalid mid-use, not that a form field is wrong.
// Anything else is an internal error and is never attached to a field.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	if errors.Is(err, service.ErrUserVanished) {
		log.Warn().Err(err).Msg("identity no longer maps to a user, forcing logout")
		h.forceLogout(w, r, "Session expired")
		return
	}

	if authErr, ok := models.AsAuthError(err); ok {
		if authErr.Code == models.CodeUnauthorized {
			h.forceLogout(w, r, "Session expired")
			return
		}

		writeJSON(w, statusOfCode(authErr.Code), models.ErrorResponse{Error: authErr})
		return
	}

	log.Err(err).Msg("unexpected error from service layer")
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
