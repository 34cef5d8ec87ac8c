// Copyright (c) 2026 Rollbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import (
	"context"
	"fmt"

	"github.com/taibuivan/rollbook/internal/platform/apperr"
	"github.com/taibuivan/rollbook/internal/platform/constants"
	"github.com/taibuivan/rollbook/internal/platform/sec"
	"github.com/taibuivan/rollbook/pkg/uuid"
)

// TokenIssuer defines the contract for minting the session token pair.
type TokenIssuer interface {
	// IssueAccessToken creates a short-lived signed JWT for the principal.
	IssueAccessToken(principal sec.Principal) (string, error)

	// IssueRefreshToken creates the long-lived signed JWT that carries the
	// session between requests.
	IssueRefreshToken(principal sec.Principal) (string, error)
}

// Service implements account authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	repository Repository
	throttle   ThrottleRepository
	tokens     TokenIssuer
}

// NewService constructs a new identity [Service] with necessary dependencies.
func NewService(
	repository Repository,
	throttle ThrottleRepository,
	tokens TokenIssuer,
) *Service {
	return &Service{
		repository: repository,
		throttle:   throttle,
		tokens:     tokens,
	}
}

// RegisterStudentInput holds the data required to enroll a new student.
type RegisterStudentInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	CourseID  *string
}

// RegisterStudent validates, hashes, and persists a brand new student account.
//
// # Returns
//   - A pointer to the newly created [*Identity] with the hash blanked.
//   - Returns [apperr.Conflict] if the email already exists.
func (service *Service) RegisterStudent(context context.Context, input RegisterStudentInput) (*Identity, error) {
	// ── 1. Security ───────────────────────────────────────────────────────

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("identity_service_hash_failed: %w", err)
	}

	// ── 2. Entity Construction ────────────────────────────────────────────

	identity := &Identity{
		ID:           uuid.New(), // Time-sortable ID to prevent PG index fragmentation.
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		CourseID:     input.CourseID,
		Role:         sec.RoleStudent,
	}

	// ── 3. Persistence ────────────────────────────────────────────────────

	// The unique index on email is the source of truth for duplicates; a
	// racing pre-check would still leave this window open.
	if err := service.repository.CreateStudent(context, identity); err != nil {
		return nil, err
	}

	identity.PasswordHash = ""
	return identity, nil
}

// RegisterAdminInput holds the data required to create a staff account.
type RegisterAdminInput struct {
	Username string
	Password string
}

// RegisterAdmin hashes and persists a new admin account.
//
// # Returns
//   - A pointer to the newly created [*Identity] with the hash blanked.
//   - Returns [apperr.Conflict] if the username already exists.
func (service *Service) RegisterAdmin(context context.Context, input RegisterAdminInput) (*Identity, error) {
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("identity_service_hash_failed: %w", err)
	}

	identity := &Identity{
		ID:           uuid.New(),
		Username:     input.Username,
		PasswordHash: hashedPassword,
		Role:         sec.RoleAdmin,
	}

	if err := service.repository.CreateAdmin(context, identity); err != nil {
		return nil, err
	}

	identity.PasswordHash = ""
	return identity, nil
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login    string // Student email or admin username.
	Password string
}

// LoginSession represents a successfully established session.
type LoginSession struct {
	AccessToken  string
	RefreshToken string
	User         *Identity
}

// Login validates credentials and issues the session token pair.
//
// # Returns
//   - A pointer to [LoginSession] containing both tokens.
//   - Returns [apperr.Unauthorized] if credentials do not match.
//   - Returns [apperr.RateLimited] after too many failed attempts.
//
// # Flow
//  1. Check the failed-attempt counter for the login value.
//  2. Lookup identity by login (student email or admin username).
//  3. Verify password hash using Bcrypt.
//  4. Issue the access/refresh token pair and reset the counter.
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	// ── 1. Throttle Check ─────────────────────────────────────────────────

	// A throttle-store outage must not lock everyone out, so read errors
	// degrade to an unthrottled login.
	failures, err := service.throttle.Failures(context, input.Login)
	if err == nil && failures >= constants.LoginThrottleMaxAttempts {
		return nil, apperr.RateLimited(int(constants.LoginThrottleWindow.Seconds()))
	}

	// ── 2. Fetch Identity ─────────────────────────────────────────────────

	// Return a generic unauthorized error to prevent account enumeration.
	identity, err := service.repository.FindByLogin(context, input.Login)
	if err != nil {
		_, _ = service.throttle.RecordFailure(context, input.Login)
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// ── 3. Security Verification ──────────────────────────────────────────

	// Bcrypt comparison is constant-time, so password checks leak no timing.
	if !sec.CheckPasswordHash(input.Password, identity.PasswordHash) {
		_, _ = service.throttle.RecordFailure(context, input.Login)
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// ── 4. Token Issuance ─────────────────────────────────────────────────

	principal := identity.Principal()

	accessToken, err := service.tokens.IssueAccessToken(principal)
	if err != nil {
		return nil, fmt.Errorf("identity_service_access_token_failed: %w", err)
	}

	refreshToken, err := service.tokens.IssueRefreshToken(principal)
	if err != nil {
		return nil, fmt.Errorf("identity_service_refresh_token_failed: %w", err)
	}

	_ = service.throttle.Reset(context, input.Login)

	identity.PasswordHash = ""
	return &LoginSession{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         identity,
	}, nil
}

// Profile returns the account behind an authenticated principal.
func (service *Service) Profile(context context.Context, principal sec.Principal) (*Identity, error) {
	identity, err := service.repository.FindByID(context, principal.ID)
	if err != nil {
		return nil, err
	}

	identity.PasswordHash = ""
	return identity, nil
}
