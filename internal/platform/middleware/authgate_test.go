// Copyright (c) 2026 Rollbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/rollbook/internal/platform/constants"
	"github.com/taibuivan/rollbook/internal/platform/ctxutil"
	"github.com/taibuivan/rollbook/internal/platform/dberr"
	"github.com/taibuivan/rollbook/internal/platform/middleware"
	"github.com/taibuivan/rollbook/internal/platform/sec"
)

// fakeVerifier maps known token strings to claims.
type fakeVerifier struct {
	tokens map[string]*sec.AuthClaims
}

func (f *fakeVerifier) VerifyRefresh(tokenString string) (*sec.AuthClaims, error) {
	if claims, ok := f.tokens[tokenString]; ok {
		return claims, nil
	}
	return nil, sec.ErrTokenSignature
}

// fakeResolver maps known subject IDs to principals.
type fakeResolver struct {
	principals map[string]*sec.Principal
}

func (f *fakeResolver) ResolveByID(ctx context.Context, id string) (*sec.Principal, error) {
	if principal, ok := f.principals[id]; ok {
		return principal, nil
	}
	return nil, dberr.ErrNotFound
}

func newGateFixture() (*fakeVerifier, *fakeResolver) {
	verifier := &fakeVerifier{tokens: map[string]*sec.AuthClaims{
		"valid-student-token": {UserID: "student-1", Login: "s@rollbook.app", Role: "student"},
		"valid-admin-token":   {UserID: "admin-1", Login: "admin", Role: "admin"},
		"orphan-token":        {UserID: "deleted-user"},
	}}
	resolver := &fakeResolver{principals: map[string]*sec.Principal{
		"student-1": {ID: "student-1", Login: "s@rollbook.app", Role: sec.RoleStudent},
		"admin-1":   {ID: "admin-1", Login: "admin", Role: sec.RoleAdmin},
	}}
	return verifier, resolver
}

// protectedEcho records the principal the gate injected, behind RequireAuth.
func protectedEcho(captured **sec.Principal) http.Handler {
	verifier, resolver := newGateFixture()
	inner := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*captured = ctxutil.GetPrincipal(request.Context())
		writer.WriteHeader(http.StatusOK)
	})
	return middleware.Authenticate(verifier, resolver)(middleware.RequireAuth(inner))
}

/*
TestAuthenticate_NoCredential verifies that a request without cookie or
header is rejected by RequireAuth with 401.
*/
func TestAuthenticate_NoCredential(t *testing.T) {
	var captured *sec.Principal
	handler := protectedEcho(&captured)

	request := httptest.NewRequest(http.MethodGet, "/profile", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Nil(t, captured)
}

/*
TestAuthenticate_BadToken verifies that a forged or expired token yields a
generic 401 with no failure-kind detail in the body.
*/
func TestAuthenticate_BadToken(t *testing.T) {
	var captured *sec.Principal
	handler := protectedEcho(&captured)

	request := httptest.NewRequest(http.MethodGet, "/profile", nil)
	request.Header.Set("Authorization", "Bearer forged-token")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "signature")
	assert.Nil(t, captured)
}

/*
TestAuthenticate_DeletedPrincipal verifies that a valid token referencing a
principal missing from the store is rejected.
*/
func TestAuthenticate_DeletedPrincipal(t *testing.T) {
	var captured *sec.Principal
	handler := protectedEcho(&captured)

	request := httptest.NewRequest(http.MethodGet, "/profile", nil)
	request.Header.Set("Authorization", "Bearer orphan-token")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Nil(t, captured)
}

/*
TestAuthenticate_CookieCredential verifies the happy path: the refresh-token
cookie authenticates the request and the resolved principal reaches the handler.
*/
func TestAuthenticate_CookieCredential(t *testing.T) {
	var captured *sec.Principal
	handler := protectedEcho(&captured)

	request := httptest.NewRequest(http.MethodGet, "/profile", nil)
	request.AddCookie(&http.Cookie{Name: constants.RefreshTokenCookieName, Value: "valid-student-token"})
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "student-1", captured.ID)
	assert.Equal(t, sec.RoleStudent, captured.Role)
}

/*
TestAuthenticate_CookiePrecedence verifies the cookie wins when both cookie
and Authorization header are present.
*/
func TestAuthenticate_CookiePrecedence(t *testing.T) {
	var captured *sec.Principal
	handler := protectedEcho(&captured)

	request := httptest.NewRequest(http.MethodGet, "/profile", nil)
	request.AddCookie(&http.Cookie{Name: constants.RefreshTokenCookieName, Value: "valid-admin-token"})
	request.Header.Set("Authorization", "Bearer valid-student-token")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "admin-1", captured.ID)
}

/*
TestAuthenticate_BearerFallback verifies the Authorization header works when
no cookie is set.
*/
func TestAuthenticate_BearerFallback(t *testing.T) {
	var captured *sec.Principal
	handler := protectedEcho(&captured)

	request := httptest.NewRequest(http.MethodGet, "/profile", nil)
	request.Header.Set("Authorization", "Bearer valid-student-token")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "student-1", captured.ID)
}

/*
TestRequireRole verifies role gating on top of the gate: students are blocked
from admin routes with 403, admins pass.
*/
func TestRequireRole(t *testing.T) {
	verifier, resolver := newGateFixture()
	inner := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
	handler := middleware.Authenticate(verifier, resolver)(
		middleware.RequireRole(sec.RoleAdmin)(inner),
	)

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{"admin_allowed", "valid-admin-token", http.StatusOK},
		{"student_forbidden", "valid-student-token", http.StatusForbidden},
		{"anonymous_unauthorized", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodDelete, "/admin/students/1", nil)
			if tt.token != "" {
				request.Header.Set("Authorization", "Bearer "+tt.token)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}
