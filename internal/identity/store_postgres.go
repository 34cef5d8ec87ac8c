// Copyright (c) 2026 Rollbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/rollbook/internal/platform/dberr"
	"github.com/taibuivan/rollbook/internal/platform/sec"
)

// # Postgres Repository

// PostgresRepository implements [Repository] over the students and admins
// tables. The two tables share a UUIDv7 keyspace, so an ID resolves to at
// most one principal across both.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// FindByLogin looks the value up as a student email first, then as an admin
// username. The caller cannot tell which lookup failed — both fold into the
// same not-found result.
func (repository *PostgresRepository) FindByLogin(ctx context.Context, login string) (*Identity, error) {
	identity, err := repository.findStudentByEmail(ctx, login)
	if err == nil {
		return identity, nil
	}
	if !errors.Is(err, dberr.ErrNotFound) {
		return nil, err
	}

	return repository.findAdminByUsername(ctx, login)
}

// FindByID resolves an identity across both principal tables.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Identity, error) {
	// The role tag is derived from the source table, never stored twice.
	const query = `
		SELECT id, firstname, lastname, email, '' AS username, passwordhash, courseid, 'student' AS role, createdat, updatedat
		FROM students
		WHERE id = $1
		UNION ALL
		SELECT id, '' AS firstname, '' AS lastname, '' AS email, username, passwordhash, NULL AS courseid, 'admin' AS role, createdat, updatedat
		FROM admins
		WHERE id = $1`

	identity := &Identity{}
	var role string
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&identity.ID,
		&identity.FirstName,
		&identity.LastName,
		&identity.Email,
		&identity.Username,
		&identity.PasswordHash,
		&identity.CourseID,
		&role,
		&identity.CreatedAt,
		&identity.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "identity_find_by_id")
	}

	identity.Role = sec.Role(role)
	return identity, nil
}

// CreateStudent persists a new student row.
func (repository *PostgresRepository) CreateStudent(ctx context.Context, identity *Identity) error {
	const query = `
		INSERT INTO students (id, firstname, lastname, email, passwordhash, courseid, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	now := time.Now()
	identity.CreatedAt = now
	identity.UpdatedAt = now
	identity.Role = sec.RoleStudent

	_, err := repository.pool.Exec(ctx, query,
		identity.ID,
		identity.FirstName,
		identity.LastName,
		identity.Email,
		identity.PasswordHash,
		identity.CourseID,
		identity.CreatedAt,
		identity.UpdatedAt,
	)

	return dberr.Wrap(err, "identity_create_student")
}

// CreateAdmin persists a new admin row.
func (repository *PostgresRepository) CreateAdmin(ctx context.Context, identity *Identity) error {
	const query = `
		INSERT INTO admins (id, username, passwordhash, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5)`

	now := time.Now()
	identity.CreatedAt = now
	identity.UpdatedAt = now
	identity.Role = sec.RoleAdmin

	_, err := repository.pool.Exec(ctx, query,
		identity.ID,
		identity.Username,
		identity.PasswordHash,
		identity.CreatedAt,
		identity.UpdatedAt,
	)

	return dberr.Wrap(err, "identity_create_admin")
}

// findStudentByEmail retrieves a student identity by unique email.
func (repository *PostgresRepository) findStudentByEmail(ctx context.Context, email string) (*Identity, error) {
	const query = `
		SELECT id, firstname, lastname, email, passwordhash, courseid, createdat, updatedat
		FROM students
		WHERE email = $1`

	identity := &Identity{Role: sec.RoleStudent}
	err := repository.pool.QueryRow(ctx, query, email).Scan(
		&identity.ID,
		&identity.FirstName,
		&identity.LastName,
		&identity.Email,
		&identity.PasswordHash,
		&identity.CourseID,
		&identity.CreatedAt,
		&identity.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "identity_find_student_by_email")
	}

	return identity, nil
}

// findAdminByUsername retrieves an admin identity by unique username.
func (repository *PostgresRepository) findAdminByUsername(ctx context.Context, username string) (*Identity, error) {
	const query = `
		SELECT id, username, passwordhash, createdat, updatedat
		FROM admins
		WHERE username = $1`

	identity := &Identity{Role: sec.RoleAdmin}
	err := repository.pool.QueryRow(ctx, query, username).Scan(
		&identity.ID,
		&identity.Username,
		&identity.PasswordHash,
		&identity.CreatedAt,
		&identity.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "identity_find_admin_by_username")
	}

	return identity, nil
}
