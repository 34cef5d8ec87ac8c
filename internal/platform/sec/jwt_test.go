// Copyright (c) 2026 Rollbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/rollbook/internal/platform/sec"
)

func newTestTokenService(t *testing.T) *sec.TokenService {
	t.Helper()

	service, err := sec.NewTokenService(
		[]byte("access-secret-for-tests"),
		[]byte("refresh-secret-for-tests"),
		"rollbook.test",
		15*time.Minute,
		7*24*time.Hour,
	)
	require.NoError(t, err)
	return service
}

/*
TestNewTokenService_SecretRules verifies the constructor rejects missing or
shared secrets.
*/
func TestNewTokenService_SecretRules(t *testing.T) {
	tests := []struct {
		name    string
		access  string
		refresh string
	}{
		{"empty_access", "", "refresh"},
		{"empty_refresh", "access", ""},
		{"identical_secrets", "same", "same"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sec.NewTokenService([]byte(tt.access), []byte(tt.refresh), "iss", time.Minute, time.Hour)
			assert.Error(t, err)
		})
	}
}

/*
TestTokenService_RoundTrip verifies that issued tokens verify under the
matching secret and carry the principal's claims.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTestTokenService(t)
	principal := sec.Principal{
		ID:    "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b",
		Login: "student@rollbook.app",
		Role:  sec.RoleStudent,
	}

	accessToken, err := service.IssueAccessToken(principal)
	require.NoError(t, err)

	refreshToken, err := service.IssueRefreshToken(principal)
	require.NoError(t, err)

	accessClaims, err := service.VerifyAccess(accessToken)
	require.NoError(t, err)
	assert.Equal(t, principal.ID, accessClaims.UserID)
	assert.Equal(t, principal.ID, accessClaims.Subject)
	assert.Equal(t, principal.Login, accessClaims.Login)
	assert.Equal(t, string(sec.RoleStudent), accessClaims.Role)

	refreshClaims, err := service.VerifyRefresh(refreshToken)
	require.NoError(t, err)
	assert.Equal(t, principal.ID, refreshClaims.UserID)
}

/*
TestTokenService_CrossSecret verifies that a token from one family never
verifies under the other family's secret.
*/
func TestTokenService_CrossSecret(t *testing.T) {
	service := newTestTokenService(t)
	principal := sec.Principal{ID: "user-1", Login: "a@b.c", Role: sec.RoleStudent}

	accessToken, err := service.IssueAccessToken(principal)
	require.NoError(t, err)

	_, err = service.VerifyRefresh(accessToken)
	assert.ErrorIs(t, err, sec.ErrTokenSignature)

	refreshToken, err := service.IssueRefreshToken(principal)
	require.NoError(t, err)

	_, err = service.VerifyAccess(refreshToken)
	assert.ErrorIs(t, err, sec.ErrTokenSignature)
}

/*
TestTokenService_Expired verifies expired tokens are classified as expired,
not as generic failures.
*/
func TestTokenService_Expired(t *testing.T) {
	service, err := sec.NewTokenService(
		[]byte("access-secret-for-tests"),
		[]byte("refresh-secret-for-tests"),
		"rollbook.test",
		-1*time.Minute, // Already expired at issuance.
		-1*time.Minute,
	)
	require.NoError(t, err)

	token, err := service.IssueAccessToken(sec.Principal{ID: "user-1"})
	require.NoError(t, err)

	_, err = service.VerifyAccess(token)
	assert.ErrorIs(t, err, sec.ErrTokenExpired)
}

/*
TestTokenService_Malformed verifies that non-JWT input is rejected as malformed.
*/
func TestTokenService_Malformed(t *testing.T) {
	service := newTestTokenService(t)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.VerifyRefresh(tt.token)
			assert.ErrorIs(t, err, sec.ErrTokenMalformed)
		})
	}
}

/*
TestTokenService_AlgorithmPinning verifies that a token declaring alg "none"
is rejected even with an otherwise plausible payload.
*/
func TestTokenService_AlgorithmPinning(t *testing.T) {
	service := newTestTokenService(t)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"uid": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.VerifyRefresh(tokenString)
	assert.Error(t, err)
}
