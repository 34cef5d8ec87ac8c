// Copyright (c) 2026 Rollbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import (
	"context"
)

// Repository defines the data access contract for identities.
//
// # Review Process
//
// This interface is placed in a separate file from identity.go so entity
// changes and storage-contract changes can be reviewed independently.
//
// # Implementations
//
// The canonical implementation is PostgreSQL ([PostgresRepository]), backed
// by the students and admins tables. All queries are parameterized — SQL
// injection defense is delegated to pgx's parameter binding, never to
// string concatenation.
type Repository interface {
	// FindByLogin returns the identity whose email (students) or username
	// (admins) matches the given value.
	//
	// Returns [dberr.ErrNotFound] if no principal uses this login.
	FindByLogin(ctx context.Context, login string) (*Identity, error)

	// FindByID returns the identity with the given ID, regardless of role.
	//
	// Returns [dberr.ErrNotFound] if the principal no longer exists — the
	// auth gate relies on this to reject tokens referencing deleted accounts.
	FindByID(ctx context.Context, id string) (*Identity, error)

	// CreateStudent persists a brand-new student identity.
	//
	// Returns a Conflict error if the email is already registered.
	CreateStudent(ctx context.Context, identity *Identity) error

	// CreateAdmin persists a brand-new admin identity.
	//
	// Returns a Conflict error if the username is already taken.
	CreateAdmin(ctx context.Context, identity *Identity) error
}

// ThrottleRepository defines the contract for the volatile failed-login
// counters that guard the credential check against brute force.
//
// # Semantics
//
// Counters are keyed by the attempted login identifier and expire on their
// own after the throttle window; a successful login resets the counter.
type ThrottleRepository interface {
	// Failures returns the number of failed attempts currently recorded
	// for the login identifier.
	Failures(ctx context.Context, login string) (int64, error)

	// RecordFailure increments the failure counter, starting the expiry
	// window on the first failure, and returns the new count.
	RecordFailure(ctx context.Context, login string) (int64, error)

	// Reset clears the failure counter after a successful login.
	Reset(ctx context.Context, login string) error
}
