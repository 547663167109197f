package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-session-keeper/internal/logger"
	"github.com/MKhiriev/go-session-keeper/internal/utils"
	"github.com/MKhiriev/go-session-keeper/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	ident, _ := utils.GetIdentityFromContext(ctx)

	user, token, err := h.services.AuthService.Register(ctx, ident, req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.setSessionCookie(w, token, req.Remember)
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	ident, _ := utils.GetIdentityFromContext(ctx)

	user, token, err := h.services.AuthService.Login(ctx, ident, req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.setSessionCookie(w, token, req.Remember)
	writeJSON(w, http.StatusOK, user)
}

// logout tears down whatever session the request presents. It succeeds for
// anonymous callers too; logging out twice is not an error.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := h.sessions.DestroyToken(ctx, sessionToken(r)); err != nil {
		log.Err(err).Msg("error destroying session on logout")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	flash := h.flashEnvelope(r)
	flash.Set(models.FlashChannelLogout, models.FlashNotice{
		ID:    newNoticeID(),
		Title: "Logout successful",
		Type:  models.FlashTypeSuccess,
	})
	h.commitFlash(w, flash)

	h.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"redirectTo": "/"})
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ident, _ := utils.GetIdentityFromContext(ctx)

	user, err := h.services.AuthService.GetUser(ctx, ident)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	ident, _ := utils.GetIdentityFromContext(ctx)

	if err := h.services.AuthService.ChangePassword(ctx, ident, req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	flash := h.flashEnvelope(r)
	flash.Set(models.FlashChannelMessage, models.FlashNotice{
		ID:    newNoticeID(),
		Title: "Password changed successfully",
		Type:  models.FlashTypeSuccess,
	})
	h.commitFlash(w, flash)

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) revokeOtherSessions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RevokeSessionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	ident, _ := utils.GetIdentityFromContext(ctx)

	revoked, err := h.services.AuthService.RevokeOtherSessions(ctx, ident, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	flash := h.flashEnvelope(r)
	flash.Set(models.FlashChannelMessage, models.FlashNotice{
		ID:    newNoticeID(),
		Title: "Logout successful",
		Type:  models.FlashTypeSuccess,
	})
	h.commitFlash(w, flash)

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "revoked": revoked})
}

// getFlash consumes and returns the pending notice of the named channel.
// Consumption happens even if the response is lost: a flash notice is
// delivered at most once.
func (h *Handler) getFlash(w http.ResponseWriter, r *http.Request) {
	channel := r.URL.Query().Get("channel")
	if channel == "" {
		channel = models.FlashChannelMessage
	}
	if channel != models.FlashChannelMessage && channel != models.FlashChannelLogout {
		http.Error(w, "unknown flash channel", http.StatusBadRequest)
		return
	}

	flash := h.flashEnvelope(r)
	notice := flash.Get(channel)
	h.commitFlash(w, flash)

	writeJSON(w, http.StatusOK, models.FlashResponse{Notice: notice})
}

// newNoticeID generates a unique id for a flash notice.
func newNoticeID() string {
	return uuid.NewString()
}
