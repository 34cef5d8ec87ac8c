// Copyright (c) 2026 Rollbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package course implements the course catalog: the list of programs a
// student can enroll in.
package course

import (
	"context"
	"time"
)

// Course represents a program students enroll in. Duration is measured
// in terms.
type Course struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Duration  int       `json:"duration"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JSON field identifiers shared by validation errors and payloads.
const (
	FieldCode     = "code"
	FieldName     = "name"
	FieldDuration = "duration"
)

// Repository defines the persistence contract for the catalog.
type Repository interface {
	// List returns a page of courses ordered by code, plus the total count.
	List(ctx context.Context, limit, offset int) ([]*Course, int, error)

	// Get returns a single course by id.
	Get(ctx context.Context, id string) (*Course, error)

	// Create persists a new course. A duplicate code maps to a Conflict.
	Create(ctx context.Context, course *Course) error
}
