// Copyright (c) 2026 Rollbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package student implements the admin-facing roster: listing students with
// their course details, filtering by course, partial updates, and deletion.
//
// Registration and login for students live in the identity package; this
// package never touches credentials.
package student

import (
	"context"
	"time"
)

// Student represents a roster entry as admins see it.
//
// PasswordHash is deliberately absent from this view. The roster reads and
// mutates profile fields only; credential changes go through identity.
type Student struct {
	ID        string         `json:"id"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Email     string         `json:"email"`
	CourseID  *string        `json:"course_id,omitempty"`
	Course    *CourseDetails `json:"course,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// CourseDetails is the joined course projection attached to a roster entry.
type CourseDetails struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Duration int    `json:"duration"`
}

// JSON field identifiers shared by validation errors and payloads.
const (
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldEmail     = "email"
	FieldCourseID  = "course_id"
	FieldType      = "type"
)

// UpdateInput carries a partial update. Nil fields are left untouched;
// a CourseID pointing at an empty string unenrolls the student.
type UpdateInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	CourseID  *string
}

// HasChanges reports whether at least one field is set.
func (input UpdateInput) HasChanges() bool {
	return input.FirstName != nil || input.LastName != nil || input.Email != nil || input.CourseID != nil
}

// DeleteMode selects the deletion policy for a roster entry.
type DeleteMode string

const (
	// DeleteStandard removes the student regardless of enrollment.
	DeleteStandard DeleteMode = "standard"

	// DeleteRestrict refuses to remove a student who is still enrolled
	// in a course.
	DeleteRestrict DeleteMode = "restrict"
)

// Valid reports whether the mode is a known deletion policy.
func (mode DeleteMode) Valid() bool {
	return mode == DeleteStandard || mode == DeleteRestrict
}

// Repository defines the persistence contract for the roster.
//
// Implementations return [dberr.ErrNotFound] for missing rows and must use
// parameterized queries exclusively.
type Repository interface {
	// ListWithCourses returns a page of students with their course details
	// joined in, plus the total roster size.
	ListWithCourses(ctx context.Context, limit, offset int) ([]*Student, int, error)

	// ListByCourseCode returns every student enrolled in the course with
	// the given code. An unknown code yields an empty slice, not an error.
	ListByCourseCode(ctx context.Context, code string) ([]*Student, error)

	// Get returns a single roster entry with course details.
	Get(ctx context.Context, id string) (*Student, error)

	// Update applies a partial update and returns the refreshed entry.
	Update(ctx context.Context, id string, input UpdateInput) (*Student, error)

	// Delete removes a student inside a transaction. With DeleteRestrict
	// it fails if the student is still enrolled.
	Delete(ctx context.Context, id string, mode DeleteMode) error
}
