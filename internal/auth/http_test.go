// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pressroom/internal/auth"
	"github.com/taibuivan/pressroom/internal/platform/constants"
	"github.com/taibuivan/pressroom/internal/platform/sec"
)

// newHandlerFixture wires a Handler over in-memory fakes.
func newHandlerFixture(t *testing.T, repo *fakeUserRepository) (*auth.Handler, *auth.SessionManager) {
	t.Helper()

	cipher, err := sec.NewCipher([]byte(testCookieSecret))
	require.NoError(t, err)
	sessions := auth.NewSessionManager(auth.NewCodec(cipher), false)

	service := auth.NewService(repo, newFakeThrottle())
	return auth.NewHandler(service, sessions), sessions
}

/*
TestHandler_Signin_Success verifies the cookie commit and redirect hint.
*/
func TestHandler_Signin_Success(t *testing.T) {
	repo := newFakeUserRepository()
	seedUser(t, repo, "user-1", "tai@pressroom.app", "hunter2-secret", auth.RoleSuperAdmin)
	handler, sessions := newHandlerFixture(t, repo)

	body := `{"email":"tai@pressroom.app","password":"hunter2-secret"}`
	request := httptest.NewRequest(http.MethodPost, "/signin", strings.NewReader(body))
	recorder := httptest.NewRecorder()

	handler.Routes().ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	// The response establishes the session cookie.
	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.SessionCookieName, cookies[0].Name)

	// And the cookie resolves back to the signed-in account.
	followUp := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	followUp.AddCookie(cookies[0])
	assert.Equal(t, "user-1", sessions.Read(followUp).ID)

	var envelope struct {
		Data struct {
			Redirect string `json:"redirect"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, constants.AdminDashboardPath, envelope.Data.Redirect)
}

/*
TestHandler_Signin_BadCredentials verifies 401 with no cookie leakage.
*/
func TestHandler_Signin_BadCredentials(t *testing.T) {
	repo := newFakeUserRepository()
	seedUser(t, repo, "user-1", "tai@pressroom.app", "hunter2-secret", auth.RoleSuperAdmin)
	handler, _ := newHandlerFixture(t, repo)

	body := `{"email":"tai@pressroom.app","password":"wrong"}`
	request := httptest.NewRequest(http.MethodPost, "/signin", strings.NewReader(body))
	recorder := httptest.NewRecorder()

	handler.Routes().ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Empty(t, recorder.Result().Cookies())
	assert.Contains(t, recorder.Body.String(), "Invalid email or password")
}

/*
TestHandler_Signin_InvalidJSON verifies malformed bodies answer 400.
*/
func TestHandler_Signin_InvalidJSON(t *testing.T) {
	handler, _ := newHandlerFixture(t, newFakeUserRepository())

	request := httptest.NewRequest(http.MethodPost, "/signin", strings.NewReader("{not json"))
	recorder := httptest.NewRecorder()

	handler.Routes().ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

/*
TestHandler_Signup_BootstrapOnce verifies the first signup succeeds and the
second is refused.
*/
func TestHandler_Signup_BootstrapOnce(t *testing.T) {
	handler, _ := newHandlerFixture(t, newFakeUserRepository())

	body := `{"name":"Tai","email":"tai@pressroom.app","password":"hunter2-secret","confirm_password":"hunter2-secret"}`

	first := httptest.NewRecorder()
	handler.Routes().ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, first.Code)
	require.Len(t, first.Result().Cookies(), 1)

	second := httptest.NewRecorder()
	secondBody := `{"name":"Other","email":"other@pressroom.app","password":"hunter2-secret","confirm_password":"hunter2-secret"}`
	handler.Routes().ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(secondBody)))
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Contains(t, second.Body.String(), "Initial admin already exists")
}

/*
TestHandler_Logout verifies the cookie is expired and the redirect hint points
at sign-in.
*/
func TestHandler_Logout(t *testing.T) {
	handler, _ := newHandlerFixture(t, newFakeUserRepository())

	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/logout", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Contains(t, recorder.Body.String(), constants.AdminSigninPath)
}

/*
TestHandler_Me covers the current-user probe for live, anonymous, and
dangling sessions.
*/
func TestHandler_Me(t *testing.T) {
	repo := newFakeUserRepository()
	seedUser(t, repo, "user-1", "tai@pressroom.app", "hunter2-secret", auth.RoleEditor)
	handler, sessions := newHandlerFixture(t, repo)

	mintCookie := func(t *testing.T, userID string) *http.Cookie {
		t.Helper()
		recorder := httptest.NewRecorder()
		require.NoError(t, sessions.Write(recorder, userID))
		return recorder.Result().Cookies()[0]
	}

	t.Run("live_session", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/me", nil)
		request.AddCookie(mintCookie(t, "user-1"))

		recorder := httptest.NewRecorder()
		handler.Routes().ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "tai@pressroom.app")
	})

	t.Run("anonymous", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.Routes().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("dangling_session", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/me", nil)
		request.AddCookie(mintCookie(t, "deleted-user"))

		recorder := httptest.NewRecorder()
		handler.Routes().ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
