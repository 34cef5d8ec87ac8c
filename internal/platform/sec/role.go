// Copyright (c) 2026 Rollbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # Principal Roles

// Role represents the authorization level granted to a registered principal.
//
// Rollbook knows exactly two roles. There is no tenant hierarchy and no
// intermediate moderation tier.
type Role string

const (
	// Full administrative access to the roster and course catalogue
	RoleAdmin Role = "admin"

	// Default role for enrolled students
	RoleStudent Role = "student"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r Role) level() int {

	// Gaps left in the scale in case an intermediate role is ever needed
	switch r {
	case RoleAdmin:
		return 20
	case RoleStudent:
		return 10
	default:
		return 0
	}
}

// Valid reports whether the role is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStudent
}
