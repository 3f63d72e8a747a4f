// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pressroom/internal/auth"
	"github.com/taibuivan/pressroom/internal/platform/constants"
	"github.com/taibuivan/pressroom/internal/platform/sec"
)

const testCookieSecret = "0123456789abcdef0123456789abcdef"

func newTestCodec(t *testing.T, key string) *auth.Codec {
	t.Helper()
	cipher, err := sec.NewCipher([]byte(key))
	require.NoError(t, err)
	return auth.NewCodec(cipher)
}

/*
TestCodec_RoundTrip verifies encode/decode symmetry for a session payload.
*/
func TestCodec_RoundTrip(t *testing.T) {
	codec := newTestCodec(t, testCookieSecret)

	encoded, err := codec.Encode(auth.Payload{ID: "user-123"})
	require.NoError(t, err)
	assert.NotContains(t, encoded, "user-123")

	decoded := codec.Decode(encoded)
	assert.Equal(t, "user-123", decoded.ID)
	assert.False(t, decoded.IsEmpty())
}

/*
TestCodec_Decode_Degrades verifies that every bad input decodes to the empty
session instead of an error.
*/
func TestCodec_Decode_Degrades(t *testing.T) {
	codec := newTestCodec(t, testCookieSecret)

	valid, err := codec.Encode(auth.Payload{ID: "user-123"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
	}{
		{"empty_value", ""},
		{"garbage", "not-a-session"},
		{"truncated", valid[:len(valid)/2]},
		{"tampered", valid[:len(valid)-4] + "AAAA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded := codec.Decode(tt.input)
			assert.True(t, decoded.IsEmpty())
		})
	}
}

/*
TestCodec_Decode_ForeignKey verifies a cookie minted under another secret
degrades to the empty session.
*/
func TestCodec_Decode_ForeignKey(t *testing.T) {
	minting := newTestCodec(t, testCookieSecret)
	reading := newTestCodec(t, "fedcba9876543210fedcba9876543210")

	encoded, err := minting.Encode(auth.Payload{ID: "user-123"})
	require.NoError(t, err)

	assert.True(t, reading.Decode(encoded).IsEmpty())
}

/*
TestSessionManager_WriteRead verifies the cookie round-trip through real
http.Request/ResponseWriter plumbing, plus the cookie attributes.
*/
func TestSessionManager_WriteRead(t *testing.T) {
	codec := newTestCodec(t, testCookieSecret)
	sessions := auth.NewSessionManager(codec, false)

	// Write the session to a response.
	recorder := httptest.NewRecorder()
	require.NoError(t, sessions.Write(recorder, "user-123"))

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)

	cookie := cookies[0]
	assert.Equal(t, constants.SessionCookieName, cookie.Name)
	assert.Equal(t, constants.SessionCookiePath, cookie.Path)
	assert.Equal(t, int(constants.SessionTTL.Seconds()), cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	// Read it back from a follow-up request.
	request := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	request.AddCookie(cookie)

	session := sessions.Read(request)
	assert.Equal(t, "user-123", session.ID)
}

/*
TestSessionManager_SecureInProduction verifies the Secure attribute toggle.
*/
func TestSessionManager_SecureInProduction(t *testing.T) {
	codec := newTestCodec(t, testCookieSecret)
	sessions := auth.NewSessionManager(codec, true)

	recorder := httptest.NewRecorder()
	require.NoError(t, sessions.Write(recorder, "user-123"))

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
}

/*
TestSessionManager_Read_NoCookie verifies an anonymous request reads empty.
*/
func TestSessionManager_Read_NoCookie(t *testing.T) {
	codec := newTestCodec(t, testCookieSecret)
	sessions := auth.NewSessionManager(codec, false)

	request := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	assert.True(t, sessions.Read(request).IsEmpty())
}

/*
TestSessionManager_Clear verifies clearing expires the cookie and stays
idempotent when called twice.
*/
func TestSessionManager_Clear(t *testing.T) {
	codec := newTestCodec(t, testCookieSecret)
	sessions := auth.NewSessionManager(codec, false)

	recorder := httptest.NewRecorder()
	sessions.Clear(recorder)
	sessions.Clear(recorder)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 2)

	for _, cookie := range cookies {
		assert.Equal(t, constants.SessionCookieName, cookie.Name)
		assert.Empty(t, cookie.Value)
		assert.Equal(t, -1, cookie.MaxAge)
	}

	// A cleared cookie reads back as the empty session.
	request := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: ""})
	assert.True(t, sessions.Read(request).IsEmpty())
}
