// Copyright (c) 2026 SmoothStack. All rights reserved.
// Author: vincent.owuor@smoothstack.dev

package sec_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owuorvin/task-management-backend/internal/platform/sec"
)

const testSecret = "test-secret-that-is-long-enough-for-hs256-0123456789"

func newTestTokenService(t *testing.T) *sec.TokenService {
	t.Helper()

	service, err := sec.NewTokenService(sec.TokenConfig{
		Secret:       testSecret,
		Issuer:       "TaskManagementAPI",
		Audience:     "TaskManagementClient",
		ExpiryWindow: 60 * time.Minute,
	})
	require.NoError(t, err)
	return service
}

/*
TestTokenService_ClaimFidelity verifies an issued token decodes to exactly the
user's identity claims with expiry = issuance + window.
*/
func TestTokenService_ClaimFidelity(t *testing.T) {
	service := newTestTokenService(t)

	tokenString, err := service.GenerateAccessToken(42, "alice", "alice@x.com", "USER")
	require.NoError(t, err)

	claims, err := service.VerifyToken(tokenString)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@x.com", claims.Email)
	assert.Equal(t, "USER", claims.Role)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "TaskManagementAPI", claims.Issuer)
	assert.Contains(t, claims.Audience, "TaskManagementClient")

	// Expiry is exactly issuance time + the configured window.
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, 60*time.Minute, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

/*
TestTokenService_FreshTokenPerCall verifies issuance is not idempotent: the
embedded wall-clock time makes successive tokens independent credentials.
*/
func TestTokenService_FreshTokenPerCall(t *testing.T) {
	service := newTestTokenService(t)

	first, err := service.GenerateAccessToken(1, "bob", "bob@x.com", "USER")
	require.NoError(t, err)

	time.Sleep(1100 * time.Millisecond) // JWT timestamps have second precision

	second, err := service.GenerateAccessToken(1, "bob", "bob@x.com", "USER")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

/*
TestTokenService_Expired verifies an expired token fails verification even
with a valid signature. Clock skew tolerance is zero.
*/
func TestTokenService_Expired(t *testing.T) {
	service := newTestTokenService(t)

	// Hand-craft a token signed with the right secret but already expired.
	past := time.Now().Add(-2 * time.Minute)
	claims := sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			Issuer:    "TaskManagementAPI",
			Audience:  jwt.ClaimStrings{"TaskManagementClient"},
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Minute)),
		},
		UserID: 7,
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = service.VerifyToken(expired)
	assert.Error(t, err)
}

/*
TestTokenService_WrongSecret verifies a token signed with a different secret
is rejected regardless of claim content.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	service := newTestTokenService(t)

	other, err := sec.NewTokenService(sec.TokenConfig{
		Secret:       "a-completely-different-signing-secret-0123456789",
		Issuer:       "TaskManagementAPI",
		Audience:     "TaskManagementClient",
		ExpiryWindow: 60 * time.Minute,
	})
	require.NoError(t, err)

	tokenString, err := other.GenerateAccessToken(99, "mallory", "m@x.com", "ADMIN")
	require.NoError(t, err)

	_, err = service.VerifyToken(tokenString)
	assert.Error(t, err)
}

/*
TestTokenService_IssuerAudienceMismatch verifies issuer/audience claims are
enforced on verification.
*/
func TestTokenService_IssuerAudienceMismatch(t *testing.T) {
	service := newTestTokenService(t)

	tests := []struct {
		name     string
		issuer   string
		audience string
	}{
		{"wrong_issuer", "SomeOtherAPI", "TaskManagementClient"},
		{"wrong_audience", "TaskManagementAPI", "SomeOtherClient"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			foreign, err := sec.NewTokenService(sec.TokenConfig{
				Secret:       testSecret,
				Issuer:       tt.issuer,
				Audience:     tt.audience,
				ExpiryWindow: 60 * time.Minute,
			})
			require.NoError(t, err)

			tokenString, err := foreign.GenerateAccessToken(1, "alice", "alice@x.com", "USER")
			require.NoError(t, err)

			_, err = service.VerifyToken(tokenString)
			assert.Error(t, err)
		})
	}
}

/*
TestTokenService_Malformed verifies garbage input is rejected without panic.
*/
func TestTokenService_Malformed(t *testing.T) {
	service := newTestTokenService(t)

	for _, tokenString := range []string{"", "not-a-jwt", "a.b.c", "a.b"} {
		_, err := service.VerifyToken(tokenString)
		assert.Error(t, err)
	}
}

/*
TestNewTokenService_Misconfiguration verifies constructor guards.
*/
func TestNewTokenService_Misconfiguration(t *testing.T) {
	_, err := sec.NewTokenService(sec.TokenConfig{
		Secret:       "",
		Issuer:       "i",
		Audience:     "a",
		ExpiryWindow: time.Minute,
	})
	assert.Error(t, err)

	_, err = sec.NewTokenService(sec.TokenConfig{
		Secret:       testSecret,
		Issuer:       "i",
		Audience:     "a",
		ExpiryWindow: 0,
	})
	assert.Error(t, err)
}
