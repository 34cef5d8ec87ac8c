// Copyright (c) 2026 Rollbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package identity implements the user identity and session layer.

It defines the core domain entity (Identity) and the logic for registration,
credential verification, and token issuance for the two kinds of principals
Rollbook knows about: students and admins.

# Architecture

This layer is the "Truth" of the system. The durable Identity record is owned
by the data store; the token service owns the signing secrets. Nothing in this
package ever persists or logs a plaintext password.
*/
package identity

import (
	"time"

	"github.com/taibuivan/rollbook/internal/platform/sec"
)

// # Domain Entities

// Identity represents a registered principal — a student or an admin.
//
// # Rules
//   - A student's login is their email; an admin's login is their username.
//   - PasswordHash is set exclusively via [sec.HashPassword] and must be
//     present before the identity is considered registered.
type Identity struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Username     string    `json:"username,omitempty"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.Role  `json:"role"`
	CourseID     *string   `json:"course_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Login returns the credential identifier for this identity: email for
// students, username for admins.
func (i *Identity) Login() string {
	if i.Role == sec.RoleAdmin {
		return i.Username
	}
	return i.Email
}

// Principal converts the identity into its context-safe representation.
// The password hash never crosses this boundary.
func (i *Identity) Principal() sec.Principal {
	return sec.Principal{
		ID:    i.ID,
		Login: i.Login(),
		Role:  i.Role,
	}
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldUsername  = "username"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldLogin     = "login"
	FieldCourseID  = "course_id"
	FieldMessage   = "message"
)
