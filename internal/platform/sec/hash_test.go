// Copyright (c) 2026 Rollbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/rollbook/internal/platform/sec"
)

/*
TestHashPassword_RoundTrip verifies that a hashed password verifies against
its own plaintext and nothing else.
*/
func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	// Hash output must never equal the input.
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, sec.CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, sec.CheckPasswordHash("wrong password", hash))
}

/*
TestHashPassword_SaltedOutput verifies that hashing the same input twice
yields different hashes. The random salt makes this intentional.
*/
func TestHashPassword_SaltedOutput(t *testing.T) {
	first, err := sec.HashPassword("same-input")
	require.NoError(t, err)

	second, err := sec.HashPassword("same-input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	// Both still verify.
	assert.True(t, sec.CheckPasswordHash("same-input", first))
	assert.True(t, sec.CheckPasswordHash("same-input", second))
}

/*
TestCheckPasswordHash_Malformed verifies that garbage hashes report false
instead of panicking or erroring out.
*/
func TestCheckPasswordHash_Malformed(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"not_bcrypt", "plaintext-not-a-hash"},
		{"truncated", "$2a$10$tooshort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, sec.CheckPasswordHash("anything", tt.hash))
		})
	}
}
