// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pressroom/internal/auth"
	"github.com/taibuivan/pressroom/internal/platform/middleware"
	"github.com/taibuivan/pressroom/internal/platform/sec"
)

const gateTestSecret = "0123456789abcdef0123456789abcdef"

// newGateFixture builds a SessionManager plus a valid session cookie for it.
func newGateFixture(t *testing.T) (*auth.SessionManager, *http.Cookie) {
	t.Helper()

	cipher, err := sec.NewCipher([]byte(gateTestSecret))
	require.NoError(t, err)

	sessions := auth.NewSessionManager(auth.NewCodec(cipher), false)

	recorder := httptest.NewRecorder()
	require.NoError(t, sessions.Write(recorder, "user-123"))
	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)

	return sessions, cookies[0]
}

// runGate sends a request through AdminGate wrapped around a sentinel handler.
func runGate(sessions *auth.SessionManager, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	handlerReached := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
		_, _ = writer.Write([]byte("handler"))
	})

	request := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		request.AddCookie(cookie)
	}

	recorder := httptest.NewRecorder()
	middleware.AdminGate(sessions)(handlerReached).ServeHTTP(recorder, request)
	return recorder
}

/*
TestAdminGate_Table walks every (session state, route class) pair through the
gate and checks the outcome, including trailing-slash variants.
*/
func TestAdminGate_Table(t *testing.T) {
	sessions, validCookie := newGateFixture(t)

	tests := []struct {
		name         string
		path         string
		loggedIn     bool
		wantStatus   int
		wantLocation string
	}{
		// Signed-in visitors never see the public entry points again.
		{"logged_in_signin", "/admin/signin", true, http.StatusSeeOther, "/admin/dashboard"},
		{"logged_in_signup", "/admin/signup", true, http.StatusSeeOther, "/admin/dashboard"},
		{"logged_in_root", "/admin", true, http.StatusSeeOther, "/admin/dashboard"},
		{"logged_in_root_slash", "/admin/", true, http.StatusSeeOther, "/admin/dashboard"},
		{"logged_in_protected", "/admin/dashboard", true, http.StatusOK, ""},
		{"logged_in_collection", "/admin/collections/pages", true, http.StatusOK, ""},

		// Anonymous visitors only reach the public entry points.
		{"logged_out_signin", "/admin/signin", false, http.StatusOK, ""},
		{"logged_out_signin_slash", "/admin/signin/", false, http.StatusOK, ""},
		{"logged_out_signup", "/admin/signup", false, http.StatusOK, ""},
		{"logged_out_root", "/admin", false, http.StatusSeeOther, "/admin/signin"},
		{"logged_out_protected", "/admin/dashboard", false, http.StatusSeeOther, "/admin/signin"},
		{"logged_out_collection", "/admin/collections/users", false, http.StatusSeeOther, "/admin/signin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cookie *http.Cookie
			if tt.loggedIn {
				cookie = validCookie
			}

			recorder := runGate(sessions, tt.path, cookie)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, recorder.Header().Get("Location"))
			}
		})
	}
}

/*
TestAdminGate_ForgedCookie verifies a cookie minted under a foreign key is
treated exactly like no cookie.
*/
func TestAdminGate_ForgedCookie(t *testing.T) {
	sessions, _ := newGateFixture(t)

	// Mint a cookie with a different secret.
	foreignCipher, err := sec.NewCipher([]byte("fedcba9876543210fedcba9876543210"))
	require.NoError(t, err)
	foreignSessions := auth.NewSessionManager(auth.NewCodec(foreignCipher), false)

	recorder := httptest.NewRecorder()
	require.NoError(t, foreignSessions.Write(recorder, "attacker"))
	forged := recorder.Result().Cookies()[0]

	result := runGate(sessions, "/admin/dashboard", forged)

	assert.Equal(t, http.StatusSeeOther, result.Code)
	assert.Equal(t, "/admin/signin", result.Header().Get("Location"))
}

/*
TestAdminGate_GarbageCookie verifies corrupted cookie values degrade to anonymous.
*/
func TestAdminGate_GarbageCookie(t *testing.T) {
	sessions, validCookie := newGateFixture(t)

	garbage := &http.Cookie{Name: validCookie.Name, Value: "v1:not-even-base64"}
	result := runGate(sessions, "/admin/dashboard", garbage)

	assert.Equal(t, http.StatusSeeOther, result.Code)
	assert.Equal(t, "/admin/signin", result.Header().Get("Location"))
}
