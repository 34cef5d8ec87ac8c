// Copyright (c) 2026 Rollbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, JWT signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces ([middleware.TokenVerifier]).
//
// Rollbook issues two token families from two independent HMAC secrets:
// a short-lived access token and a long-lived refresh token. Compromise of
// one secret does not expose the other's keyspace.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// # Principals & Claims

// Principal is the resolved, non-secret identity attached to a request
// after the auth gate has verified a credential. It never carries the
// password hash.
type Principal struct {
	ID    string `json:"id"`
	Login string `json:"login"` // Email for students, username for admins.
	Role  Role   `json:"role"`
}

// AuthClaims represents the payload embedded inside a signed token.
//
// # Invariant
//
// Claims are a strict subset of the principal's non-secret fields. The
// auth gate re-resolves the principal against the store on every request,
// so claims are treated as a pointer to an identity, not as current truth.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the payload small.
	UserID string `json:"uid"`
	Login  string `json:"lgn"`
	Role   string `json:"rol"`
}

// # Verification Failure Kinds

// Callers must treat all three as "unauthenticated" but may log them
// differently. None of them is ever surfaced verbatim to a client.
var (
	// ErrTokenExpired is returned when the token's validity window has elapsed.
	ErrTokenExpired = errors.New("sec: token expired")

	// ErrTokenSignature is returned when the signature does not match the
	// expected secret, including tokens signed with the wrong family secret.
	ErrTokenSignature = errors.New("sec: token signature invalid")

	// ErrTokenMalformed is returned for anything that is not a parsable JWT.
	ErrTokenMalformed = errors.New("sec: token malformed")
)

// # Token Service

// TokenService handles generation and verification of HS256-signed JWTs.
//
// # Secrets
//
// The two secrets are process-wide immutable configuration, read once at
// startup. No other component reads the secret material.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenService creates a new TokenService.
//
// Both secrets must be non-empty and distinct; a shared secret would defeat
// the point of separate token families.
func NewTokenService(accessSecret, refreshSecret []byte, issuer string, accessTTL, refreshTTL time.Duration) (*TokenService, error) {
	if len(accessSecret) == 0 || len(refreshSecret) == 0 {
		return nil, errors.New("sec: token secrets must not be empty")
	}
	if string(accessSecret) == string(refreshSecret) {
		return nil, errors.New("sec: access and refresh secrets must differ")
	}

	return &TokenService{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		issuer:        issuer,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

// AccessTTL returns the configured lifetime of access tokens.
func (service *TokenService) AccessTTL() time.Duration { return service.accessTTL }

// RefreshTTL returns the configured lifetime of refresh tokens.
func (service *TokenService) RefreshTTL() time.Duration { return service.refreshTTL }

// IssueAccessToken creates a signed short-lived token for the principal.
func (service *TokenService) IssueAccessToken(principal Principal) (string, error) {
	return service.issue(principal, service.accessSecret, service.accessTTL)
}

// IssueRefreshToken creates a signed long-lived token for the principal.
//
// Rollbook does not rotate refresh tokens and keeps no revocation list:
// once issued, a refresh token is valid until it expires. That risk window
// is an accepted limitation of the stateless design.
func (service *TokenService) IssueRefreshToken(principal Principal) (string, error) {
	return service.issue(principal, service.refreshSecret, service.refreshTTL)
}

func (service *TokenService) issue(principal Principal, secret []byte, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.ID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID: principal.ID,
		Login:  principal.Login,
		Role:   string(principal.Role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyAccess checks a token against the access-token secret.
func (service *TokenService) VerifyAccess(tokenString string) (*AuthClaims, error) {
	return service.verify(tokenString, service.accessSecret)
}

// VerifyRefresh checks a token against the refresh-token secret.
//
// The auth gate uses this method: the refresh token is the primary bearer
// credential for protected routes.
func (service *TokenService) VerifyRefresh(tokenString string) (*AuthClaims, error) {
	return service.verify(tokenString, service.refreshSecret)
}

// verify validates signature and expiry, classifying the failure so the
// gate can log the kind without exposing it to the client.
func (service *TokenService) verify(tokenString string, secret []byte) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Pin the algorithm family. An attacker must not be able to pick one.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignature
		default:
			return nil, ErrTokenMalformed
		}
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
