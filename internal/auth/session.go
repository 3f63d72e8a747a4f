// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"encoding/json"
	"net/http"

	"github.com/taibuivan/pressroom/internal/platform/constants"
	"github.com/taibuivan/pressroom/internal/platform/sec"
)

// # Session Payload

// Payload is the decrypted identity carried by the session cookie.
//
// It holds exactly one field. Everything else about the user is re-derived
// from the database on each request, so a stale cookie can never carry a
// stale role.
type Payload struct {
	ID string `json:"id"`
}

// IsEmpty reports whether the payload carries no identity.
func (p Payload) IsEmpty() bool {
	return p.ID == ""
}

// # Session Codec

// Codec converts a [Payload] to and from the opaque cookie value using
// authenticated encryption.
//
// # Failure Policy
//
// Decode never returns an error. An absent, corrupted, tampered, or
// foreign-key cookie degrades to the empty session — the caller sees an
// anonymous request, nothing more.
type Codec struct {
	cipher *sec.Cipher
}

// NewCodec constructs a [Codec] keyed by the server-wide cookie secret.
func NewCodec(cipher *sec.Cipher) *Codec {
	return &Codec{cipher: cipher}
}

// Encode encrypts the payload into an opaque cookie value.
func (codec *Codec) Encode(payload Payload) (string, error) {
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return codec.cipher.Encrypt(plaintext)
}

// Decode decrypts a cookie value back into a [Payload].
//
// Returns the zero Payload for any input that fails authentication or
// unmarshalling.
func (codec *Codec) Decode(cookieValue string) Payload {
	if cookieValue == "" {
		return Payload{}
	}

	plaintext, err := codec.cipher.Decrypt(cookieValue)
	if err != nil {
		return Payload{}
	}

	var payload Payload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return Payload{}
	}

	return payload
}

// # Session Manager

// SessionManager reads and writes the encrypted session cookie for the
// current request/response pair.
//
// # Concurrency
//
// The manager itself is immutable after construction; each request re-derives
// its own session independently, so it is safe for concurrent use.
type SessionManager struct {
	codec  *Codec
	secure bool // mark the cookie Secure (HTTPS-only) in production
}

// NewSessionManager constructs a [SessionManager].
//
// # Parameters
//   - codec: The session codec keyed with the process-wide secret.
//   - secure: Whether issued cookies carry the Secure attribute.
func NewSessionManager(codec *Codec, secure bool) *SessionManager {
	return &SessionManager{codec: codec, secure: secure}
}

// Read extracts and decodes the session payload from the request cookie.
//
// A missing or invalid cookie yields the empty payload. Safe to call any
// number of times per request.
func (manager *SessionManager) Read(request *http.Request) Payload {
	cookie, err := request.Cookie(constants.SessionCookieName)
	if err != nil {
		return Payload{}
	}
	return manager.codec.Decode(cookie.Value)
}

// Write encodes a session for userID and attaches it as a response cookie.
//
// The Set-Cookie header on the response is the only commit point — an
// aborted request never establishes a session.
func (manager *SessionManager) Write(writer http.ResponseWriter, userID string) error {
	value, err := manager.codec.Encode(Payload{ID: userID})
	if err != nil {
		return err
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    value,
		Path:     constants.SessionCookiePath,
		MaxAge:   int(constants.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   manager.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// Clear invalidates the session cookie so a subsequent [SessionManager.Read]
// returns the empty payload.
//
// Idempotent: clearing an absent or already-cleared session is a no-op.
func (manager *SessionManager) Clear(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   manager.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
