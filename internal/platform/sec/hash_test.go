// Copyright (c) 2026 SmoothStack. All rights reserved.
// Author: vincent.owuor@smoothstack.dev

package sec_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owuorvin/task-management-backend/internal/platform/sec"
)

/*
TestHashPassword_Roundtrip verifies that a hashed password verifies against itself.
*/
func TestHashPassword_Roundtrip(t *testing.T) {
	passwords := []string{
		"correct horse battery staple",
		"p",
		"",
		"pässwörd-ünïcode-日本語",
	}

	for _, password := range passwords {
		encoded, err := sec.HashPassword(password)
		require.NoError(t, err)
		require.NotEmpty(t, encoded)

		assert.True(t, sec.CheckPasswordHash(password, encoded))
	}
}

/*
TestHashPassword_WrongPassword verifies that a different password never matches.
*/
func TestHashPassword_WrongPassword(t *testing.T) {
	encoded, err := sec.HashPassword("original-password")
	require.NoError(t, err)

	assert.False(t, sec.CheckPasswordHash("other-password", encoded))
	assert.False(t, sec.CheckPasswordHash("", encoded))
}

/*
TestHashPassword_DistinctSalts verifies that hashing the same password twice
yields different blobs (random salt), both of which verify.
*/
func TestHashPassword_DistinctSalts(t *testing.T) {
	const password = "same-password"

	first, err := sec.HashPassword(password)
	require.NoError(t, err)

	second, err := sec.HashPassword(password)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, sec.CheckPasswordHash(password, first))
	assert.True(t, sec.CheckPasswordHash(password, second))
}

/*
TestHashPassword_Format verifies the stored blob is base64(16-byte salt || 32-byte key).
*/
func TestHashPassword_Format(t *testing.T) {
	encoded, err := sec.HashPassword("any")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Len(t, raw, 16+32)
}

/*
TestCheckPasswordHash_Malformed verifies that corrupt stored blobs fail closed.
*/
func TestCheckPasswordHash_Malformed(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"empty", ""},
		{"not_base64", "!!!not-base64!!!"},
		{"truncated", base64.StdEncoding.EncodeToString([]byte("short"))},
		{"oversized", base64.StdEncoding.EncodeToString(make([]byte, 64))},
		{"plain_text", "hunter2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Must return false, never panic.
			assert.False(t, sec.CheckPasswordHash("any-password", tt.blob))
		})
	}
}
