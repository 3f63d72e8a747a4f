// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pressroom/internal/platform/sec"
)

/*
TestHashPassword_RoundTrip verifies that a hashed password verifies against
the original plaintext and nothing else.
*/
func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	// The plaintext must never survive into the hash.
	assert.NotContains(t, hash, "correct horse")

	assert.True(t, sec.CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, sec.CheckPasswordHash("wrong password", hash))
	assert.False(t, sec.CheckPasswordHash("", hash))
}

/*
TestHashPassword_Salted verifies two hashes of the same input differ (bcrypt salts).
*/
func TestHashPassword_Salted(t *testing.T) {
	first, err := sec.HashPassword("hunter2")
	require.NoError(t, err)

	second, err := sec.HashPassword("hunter2")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, sec.CheckPasswordHash("hunter2", first))
	assert.True(t, sec.CheckPasswordHash("hunter2", second))
}

/*
TestCheckPasswordHash_Malformed verifies that a garbage hash never verifies.
*/
func TestCheckPasswordHash_Malformed(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty_hash", ""},
		{"not_bcrypt", "plaintext-not-a-hash"},
		{"truncated", "$2a$10$abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, sec.CheckPasswordHash("any password", tt.hash))
		})
	}
}
