package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-session-keeper/internal/session"
	"github.com/MKhiriev/go-session-keeper/models"
)

func TestWithIdentity_MissingRecordForcesLogout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, mockSessions := newTestHandler(t, ctrl)

	// the cookie decodes but the backing record is gone: hard teardown
	mockSessions.EXPECT().ResolveToken(gomock.Any(), "stale.token").Return(models.Identity{}, session.ErrSessionMissing)
	mockSessions.EXPECT().DestroyToken(gomock.Any(), "stale.token").Return(nil)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/user", nil), "stale.token")
	rec := serve(h, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, loginPath, rec.Header().Get("Location"))

	cookie := cookieNamed(rec, sessionCookieName)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)

	notice := flashNotice(t, rec, models.FlashChannelLogout)
	require.NotNil(t, notice)
	assert.Equal(t, "Session expired", notice.Title)
}

func TestWithIdentity_ForcedLogoutSurvivesDestroyError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, mockSessions := newTestHandler(t, ctrl)

	mockSessions.EXPECT().ResolveToken(gomock.Any(), "stale.token").Return(models.Identity{}, session.ErrSessionMissing)
	mockSessions.EXPECT().DestroyToken(gomock.Any(), "stale.token").Return(assertError{})

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/user", nil), "stale.token")
	rec := serve(h, req)

	// teardown is best-effort: the client still ends up logged out
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	cookie := cookieNamed(rec, sessionCookieName)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
}

func TestWithIdentity_StoreErrorIs500(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, mockSessions := newTestHandler(t, ctrl)

	mockSessions.EXPECT().ResolveToken(gomock.Any(), "some.token").Return(models.Identity{}, assertError{})

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/user", nil), "some.token")
	rec := serve(h, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequireIdentity_AnonymousIsRedirected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, mockSessions := newTestHandler(t, ctrl)

	mockSessions.EXPECT().ResolveToken(gomock.Any(), "").Return(anonymous, nil)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/user", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, loginPath, rec.Header().Get("Location"))

	// an anonymous request is not a forced logout: no flash, no cleared cookie
	assert.Nil(t, cookieNamed(rec, flashCookieName))
	assert.Nil(t, cookieNamed(rec, sessionCookieName))
}

func TestAnonymousRoutes_SkipRequireIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, mockSessions := newTestHandler(t, ctrl)

	req := models.LoginRequest{Email: "alice@example.com", Password: "correct horse"}

	mockSessions.EXPECT().ResolveToken(gomock.Any(), "").Return(anonymous, nil)
	mockAuth.EXPECT().Login(gomock.Any(), anonymous, req).Return(models.User{ID: "user-1"}, "signed.token", nil)

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(jsonBody(t, req))))
	require.Equal(t, http.StatusOK, rec.Code)
}

// assertError is a throwaway error value for failure-path expectations.
type assertError struct{}

func (assertError) Error() string { return "boom" }
