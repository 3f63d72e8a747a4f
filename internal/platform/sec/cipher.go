// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides the cryptographic primitives for the Pressroom admin.
//
// # Architecture
//
// This package isolates security-sensitive code (password hashing, cookie
// encryption) from the domain logic. It is an Infrastructure service injected
// into the Application layer via constructors — never reached through globals,
// so every unit can be tested with a fixed key.
package sec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
)

// cipherPrefixV1 versions the wire format so the key or algorithm can be
// rotated later without breaking in-flight cookies mid-deploy.
const cipherPrefixV1 = "v1:"

// Cipher performs authenticated encryption (AES-256-GCM) over small payloads.
//
// # Usage
//
// The session codec runs every cookie value through a Cipher. GCM provides
// both confidentiality and integrity: a tampered or foreign ciphertext fails
// to open, it never decrypts to garbage.
type Cipher struct {
	key []byte // 32 bytes (AES-256)
}

// NewCipher constructs a [Cipher]. The key must be exactly 32 bytes.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("sec: aes-gcm key must be 32 bytes, got %d", len(key))
	}
	return &Cipher{key: append([]byte(nil), key...)}, nil
}

// Encrypt seals the plaintext with a random nonce and returns a versioned
// base64 string of nonce||ciphertext.
func (c *Cipher) Encrypt(plaintext []byte) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("sec: cipher init failed: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("sec: gcm init failed: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("sec: nonce generation failed: %w", err)
	}

	sealed := gcm.Seal(nil, nonce, plaintext, nil)

	// Store nonce||ciphertext under a versioned prefix.
	buf := make([]byte, 0, len(nonce)+len(sealed))
	buf = append(buf, nonce...)
	buf = append(buf, sealed...)

	return cipherPrefixV1 + base64.StdEncoding.EncodeToString(buf), nil
}

// Decrypt opens a versioned base64 string created by [Cipher.Encrypt].
//
// Any malformed, truncated, tampered, or foreign-key input returns an error.
func (c *Cipher) Decrypt(ciphertext string) ([]byte, error) {
	if !strings.HasPrefix(ciphertext, cipherPrefixV1) {
		return nil, errors.New("sec: unknown ciphertext version")
	}

	data, err := base64.StdEncoding.DecodeString(ciphertext[len(cipherPrefixV1):])
	if err != nil {
		return nil, fmt.Errorf("sec: ciphertext decode failed: %w", err)
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, fmt.Errorf("sec: cipher init failed: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("sec: gcm init failed: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return nil, errors.New("sec: ciphertext too short")
	}

	nonce, sealed := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("sec: ciphertext authentication failed: %w", err)
	}

	return plaintext, nil
}
