// Copyright (c) 2026 Rollbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package middleware provides the HTTP middleware chain for the Rollbook API server.
//
// # Architecture
//
// The auth gate intercepts incoming HTTP requests to apply identity policies
// before they reach the domain handlers. A request moves through the states
// UNAUTHENTICATED → TOKEN_PRESENT → TOKEN_VALID → IDENTITY_RESOLVED →
// AUTHORIZED, and is rejected with a generic 401 at the first failing step.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/rollbook/internal/platform/apperr"
	"github.com/taibuivan/rollbook/internal/platform/constants"
	"github.com/taibuivan/rollbook/internal/platform/ctxutil"
	"github.com/taibuivan/rollbook/internal/platform/respond"
	"github.com/taibuivan/rollbook/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the concrete
// [sec.TokenService], allowing us to inject fakes during unit testing.
type TokenVerifier interface {
	VerifyRefresh(tokenString string) (*sec.AuthClaims, error)
}

// IdentityResolver re-resolves a claim's subject against the data store.
//
// # Why re-resolve on every request?
//
// Refresh tokens live for days. Trusting stale claims would let a demoted
// or deleted account act with old privileges until the token expires, so
// the store is the only source of truth for role and existence. The extra
// lookup per request is the accepted cost of that guarantee.
type IdentityResolver interface {
	ResolveByID(ctx context.Context, id string) (*sec.Principal, error)
}

// Authenticate extracts, verifies, and resolves the bearer credential.
//
// # Flow
//  1. Read the refresh-token cookie; fall back to 'Authorization: Bearer'.
//     No credential → pass through anonymously; [RequireAuth] and
//     [RequireRole] reject downstream where authentication is mandatory.
//  2. Verify signature and expiry against the refresh secret. The failure
//     kind (expired / bad signature / malformed) is logged, never exposed.
//  3. Re-resolve the identity by the claim's subject. A token referencing
//     a deleted principal → generic 401.
//  4. Attach the resolved [*sec.Principal] (sans password hash) to the
//     request context and continue.
func Authenticate(verifier TokenVerifier, resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Credential Extraction ──────────────────────────────────────
			token := extractToken(request)
			if token == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyRefresh(token)
			if err != nil {
				ctxutil.GetLogger(request.Context()).WarnContext(request.Context(),
					"auth_token_rejected", slog.String("reason", err.Error()))
				respond.Error(writer, request, apperr.Unauthorized("Unauthorized access"))
				return
			}

			// ── 3. Identity Resolution ────────────────────────────────────────
			principal, err := resolver.ResolveByID(request.Context(), claims.UserID)
			if err != nil {
				ctxutil.GetLogger(request.Context()).WarnContext(request.Context(),
					"auth_principal_unresolved", slog.String("subject", claims.UserID))
				respond.Error(writer, request, apperr.Unauthorized("Unauthorized access"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithPrincipal(request.Context(), principal)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// extractToken pulls the bearer credential from the request, preferring the
// refresh-token cookie over the Authorization header.
func extractToken(request *http.Request) string {
	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := request.Header.Get(constants.HeaderAuthorization)
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetPrincipal(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests if the authenticated principal doesn't hold
// the required role.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. It automatically
// implies [RequireAuth] so you don't need to mount both.
func RequireRole(role sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			principal := ctxutil.GetPrincipal(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if principal == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if !principal.Role.AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
