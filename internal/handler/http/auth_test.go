// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-session-keeper/internal/logger"
	"github.com/MKhiriev/go-session-keeper/internal/mock"
	"github.com/MKhiriev/go-session-keeper/internal/service"
	"github.com/MKhiriev/go-session-keeper/internal/session"
	"github.com/MKhiriev/go-session-keeper/models"
)

const testSignKey = "test-sign-key"

var (
	anonymous = models.Identity{}
	loggedIn  = models.Identity{UserID: "user-1", SessionID: "user:user-1:deadbeef"}
)

// newTestHandler builds a Handler on top of mocked service and session
// manager, with a real flash codec.
func newTestHandler(t *testing.T, ctrl *gomock.Controller) (*Handler, *mock.MockAuthService, *mock.MockManager) {
	t.Helper()

	mockAuth := mock.NewMockAuthService(ctrl)
	mockSessions := mock.NewMockManager(ctrl)

	svcs := &service.Services{AuthService: mockAuth}
	h := NewHandler(svcs, mockSessions, session.NewFlashCodec(testSignKey), false, 0, logger.Nop())

	return h, mockAuth, mockSessions
}

// serve runs req through the full router, middleware included.
func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

// jsonBody serialises v to a request body string.
func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// cookieNamed finds a response cookie by name, or nil.
func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// flashNotice decodes the response's flash cookie and consumes the notice
// pending on the given channel.
func flashNotice(t *testing.T, rec *httptest.ResponseRecorder, channel string) *models.FlashNotice {
	t.Helper()
	cookie := cookieNamed(rec, flashCookieName)
	require.NotNil(t, cookie, "expected a flash cookie on the response")
	return session.NewFlashCodec(testSignKey).Decode(cookie.Value).Get(channel)
}

func withSession(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	return req
}

// ── register ─────────────────────────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, mockSessions := newTestHandler(t, ctrl)

	req := models.RegisterRequest{Email: "alice@example.com", Password: "correct horse"}
	created := models.User{ID: "user-1", Email: req.Email, Role: models.RoleUser}

	mockSessions.EXPECT().ResolveToken(gomock.Any(), "").Return(anonymous, nil)
	mockAuth.EXPECT().Register(gomock.Any(), anonymous, req).Return(created, "signed.token", nil)

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(jsonBody(t, req))))

	require.Equal(t, http.StatusCreated, rec.Code)

	cookie := cookieNamed(rec, sessionCookieName)
	require.NotNil(t, cookie)
	assert.Equal(t, "signed.token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Zero(t, cookie.MaxAge, "a non-remember cookie dies with the browser")

	var got models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created.ID, got.ID)
}

func TestRegister_InvalidJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, mockSessions := newTestHandler(t, ctrl)

	mockSessions.EXPECT().ResolveToken(gomock.Any(), "").Return(anonymous, nil)

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader("{not json")))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_EmailTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, mockSessions := newTestHandler(t, ctrl)

	req := models.RegisterRequest{Email: "alice@example.com", Password: "correct horse"}

	mockSessions.EXPECT().ResolveToken(gomock.Any(), "").Return(anonymous, nil)
	mockAuth.EXPECT().Register(gomock.Any(), anonymous, req).
		Return(models.User{}, "", models.NewAuthError(models.CodeConflict, "email", "Email is already registered"))

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(jsonBody(t, req))))

	require.Equal(t, http.StatusConflict, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, models.CodeConflict, resp.Error.Code)
	assert.Equal(t, "email", resp.Error.Field)
}

// ── login ────────────────────────────────────────────────────────────────────

func TestLogin_Success_Remember(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, mockSessions := newTestHandler(t, ctrl)

	req := models.LoginRequest{Email: "alice@example.com", Password: "correct horse", Remember: true}
	user := models.User{ID: "user-1", Email: req.Email}

	mockSessions.EXPECT().ResolveToken(gomock.Any(), "").Return(anonymous, nil)
	mockAuth.EXPECT().Login(gomock.Any(), anonymous, req).Return(user, "signed.token", nil)

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(jsonBody(t, req))))

	require.Equal(t, http.StatusOK, rec.Code)

	cookie := cookieNamed(rec, sessionCookieName)
	require.NotNil(t, cookie)
	assert.Equal(t, "signed.token", cookie.Value)
	assert.Equal(t, int(rememberCookieMaxAge.Seconds()), cookie.MaxAge)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, mockSessions := newTestHandler(t, ctrl)

	req := models.LoginRequest{Email: "alice@example.com", Password: "wrong"}

	mockSessions.EXPECT().ResolveToken(gomock.Any(), "").Return(anonymous, nil)
	mockAuth.EXPECT().Login(gomock.Any(), anonymous, req).
		Return(models.User{}, "", models.NewAuthError(models.CodeBadRequest, "password", "Incorrect password"))

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(jsonBody(t, req))))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "password", resp.Error.Field)

	assert.Nil(t, cookieNamed(rec, sessionCookieName), "no session cookie on failed login")
}

// ── logout ───────────────────────────────────────────────────────────────────

func TestLogout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, mockSessions := newTestHandler(t, ctrl)

	mockSessions.EXPECT().ResolveToken(gomock.Any(), "signed.token").Return(loggedIn, nil)
	mockSessions.EXPECT().DestroyToken(gomock.Any(), "signed.token").Return(nil)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/user/logout", nil), "signed.token")
	rec := serve(h, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookie := cookieNamed(rec, sessionCookieName)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)

	notice := flashNotice(t, rec, models.FlashChannelLogout)
	require.NotNil(t, notice)
	assert.Equal(t, "Logout successful", notice.Title)
}

func TestLogout_Anonymous(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, mockSessions := newTestHandler(t, ctrl)

	mockSessions.EXPECT().ResolveToken(gomock.Any(), "").Return(anonymous, nil)
	mockSessions.EXPECT().DestroyToken(gomock.Any(), "").Return(nil)

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/api/user/logout", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

// ── getUser ──────────────────────────────────────────────────────────────────

func TestGetUser_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, mockSessions := newTestHandler(t, ctrl)

	user := models.User{ID: "user-1", Email: "alice@example.com"}

	mockSessions.EXPECT().ResolveToken(gomock.Any(), "signed.token").Return(loggedIn, nil)
	mockAuth.EXPECT().GetUser(gomock.Any(), loggedIn).Return(user, nil)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/user", nil), "signed.token")
	rec := serve(h, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Email, got.Email)
}

func TestGetUser_UserVanished(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, mockSessions := newTestHandler(t, ctrl)

	mockSessions.EXPECT().ResolveToken(gomock.Any(), "signed.token").Return(loggedIn, nil)
	mockAuth.EXPECT().GetUser(gomock.Any(), loggedIn).Return(models.User{}, service.ErrUserVanished)
	mockSessions.EXPECT().DestroyToken(gomock.Any(), "signed.token").Return(nil)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/user", nil), "signed.token")
	rec := serve(h, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, loginPath, rec.Header().Get("Location"))

	notice := flashNotice(t, rec, models.FlashChannelLogout)
	require.NotNil(t, notice)
	assert.Equal(t, "Session expired", notice.Title)
}

// ── changePassword ───────────────────────────────────────────────────────────

func TestChangePassword_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, mockSessions := newTestHandler(t, ctrl)

	req := models.ChangePasswordRequest{
		CurrentPassword: "old password",
		NewPassword:     "fresh password",
		ConfirmPassword: "fresh password",
	}

	mockSessions.EXPECT().ResolveToken(gomock.Any(), "signed.token").Return(loggedIn, nil)
	mockAuth.EXPECT().ChangePassword(gomock.Any(), loggedIn, req).Return(nil)

	httpReq := withSession(httptest.NewRequest(http.MethodPost, "/api/user/password", strings.NewReader(jsonBody(t, req))), "signed.token")
	rec := serve(h, httpReq)

	require.Equal(t, http.StatusOK, rec.Code)

	notice := flashNotice(t, rec, models.FlashChannelMessage)
	require.NotNil(t, notice)
	assert.Equal(t, "Password changed successfully", notice.Title)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, mockSessions := newTestHandler(t, ctrl)

	req := models.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "fresh password",
		ConfirmPassword: "fresh password",
	}

	mockSessions.EXPECT().ResolveToken(gomock.Any(), "signed.token").Return(loggedIn, nil)
	mockAuth.EXPECT().ChangePassword(gomock.Any(), loggedIn, req).
		Return(models.NewAuthError(models.CodeBadRequest, "currentPassword", "Incorrect password"))

	httpReq := withSession(httptest.NewRequest(http.MethodPost, "/api/user/password", strings.NewReader(jsonBody(t, req))), "signed.token")
	rec := serve(h, httpReq)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "currentPassword", resp.Error.Field)
}

// ── revokeOtherSessions ──────────────────────────────────────────────────────

func TestRevokeOtherSessions_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, mockSessions := newTestHandler(t, ctrl)

	mockSessions.EXPECT().ResolveToken(gomock.Any(), "signed.token").Return(loggedIn, nil)
	mockAuth.EXPECT().RevokeOtherSessions(gomock.Any(), loggedIn, "correct horse").Return(2, nil)

	body := jsonBody(t, models.RevokeSessionsRequest{Password: "correct horse"})
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/user/sessions/revoke", strings.NewReader(body)), "signed.token")
	rec := serve(h, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		OK      bool `json:"ok"`
		Revoked int  `json:"revoked"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, 2, resp.Revoked)
}

// ── getFlash ─────────────────────────────────────────────────────────────────

func TestGetFlash_ConsumesNotice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, mockSessions := newTestHandler(t, ctrl)

	codec := session.NewFlashCodec(testSignKey)
	envelope := codec.Decode("")
	envelope.Set(models.FlashChannelLogout, models.FlashNotice{
		ID:    "notice-1",
		Title: "Session expired",
		Type:  models.FlashTypeSuccess,
	})
	raw, err := envelope.Commit()
	require.NoError(t, err)

	mockSessions.EXPECT().ResolveToken(gomock.Any(), "").Return(anonymous, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/flash?channel=logoutMessage", nil)
	req.AddCookie(&http.Cookie{Name: flashCookieName, Value: raw})
	rec := serve(h, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.FlashResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Notice)
	assert.Equal(t, "Session expired", resp.Notice.Title)

	// the consumed notice is gone from the re-committed cookie
	cookie := cookieNamed(rec, flashCookieName)
	require.NotNil(t, cookie)
	assert.Equal(t, -1, cookie.MaxAge)
}

func TestGetFlash_DefaultChannelEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, mockSessions := newTestHandler(t, ctrl)

	mockSessions.EXPECT().ResolveToken(gomock.Any(), "").Return(anonymous, nil)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/flash", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.FlashResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.Notice)
}

func TestGetFlash_UnknownChannel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, mockSessions := newTestHandler(t, ctrl)

	mockSessions.EXPECT().ResolveToken(gomock.Any(), "").Return(anonymous, nil)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/flash?channel=bogus", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
