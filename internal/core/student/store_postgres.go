// Copyright (c) 2026 Rollbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package student

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/rollbook/internal/platform/apperr"
	"github.com/taibuivan/rollbook/internal/platform/dberr"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// rosterColumns is the shared projection for roster reads: the student row
// with its course LEFT JOINed in. Unenrolled students carry NULL course
// columns, scanned through nullable temporaries.
const rosterColumns = `
	s.id, s.firstname, s.lastname, s.email, s.courseid, s.createdat, s.updatedat,
	c.id, c.code, c.name, c.duration`

func (repository *PostgresRepository) ListWithCourses(context context.Context, limit, offset int) ([]*Student, int, error) {
	var total int
	if err := repository.pool.QueryRow(context, `SELECT count(*) FROM students`).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_students")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM students s
		LEFT JOIN courses c ON c.id = s.courseid
		ORDER BY s.id ASC
		LIMIT $1 OFFSET $2`, rosterColumns)

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_students")
	}
	defer rows.Close()

	var students []*Student
	for rows.Next() {
		student, err := scanRosterRow(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_student")
		}
		students = append(students, student)
	}

	return students, total, nil
}

func (repository *PostgresRepository) ListByCourseCode(context context.Context, code string) ([]*Student, error) {
	// INNER JOIN: only enrolled students can match a course code, and an
	// unknown code simply yields zero rows.
	query := fmt.Sprintf(`
		SELECT %s
		FROM students s
		JOIN courses c ON c.id = s.courseid
		WHERE c.code = $1
		ORDER BY s.id ASC`, rosterColumns)

	rows, err := repository.pool.Query(context, query, code)
	if err != nil {
		return nil, dberr.Wrap(err, "list_students_by_course")
	}
	defer rows.Close()

	students := []*Student{}
	for rows.Next() {
		student, err := scanRosterRow(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_student")
		}
		students = append(students, student)
	}

	return students, nil
}

func (repository *PostgresRepository) Get(context context.Context, id string) (*Student, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM students s
		LEFT JOIN courses c ON c.id = s.courseid
		WHERE s.id = $1`, rosterColumns)

	student, err := scanRosterRow(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_student")
	}

	return student, nil
}

// Update builds the SET clause from the fields actually present in the
// input, so untouched columns keep their values.
func (repository *PostgresRepository) Update(context context.Context, id string, input UpdateInput) (*Student, error) {
	setClauses := []string{}
	args := []any{id}

	appendSet := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, column+" = $"+strconv.Itoa(len(args)))
	}

	if input.FirstName != nil {
		appendSet("firstname", *input.FirstName)
	}
	if input.LastName != nil {
		appendSet("lastname", *input.LastName)
	}
	if input.Email != nil {
		appendSet("email", *input.Email)
	}
	if input.CourseID != nil {
		// Empty string means unenroll.
		if *input.CourseID == "" {
			setClauses = append(setClauses, "courseid = NULL")
		} else {
			appendSet("courseid", *input.CourseID)
		}
	}

	query := fmt.Sprintf(`
		UPDATE students
		SET %s, updatedat = NOW()
		WHERE id = $1`, strings.Join(setClauses, ", "))

	cmd, err := repository.pool.Exec(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "update_student")
	}
	if cmd.RowsAffected() == 0 {
		return nil, dberr.ErrNotFound
	}

	return repository.Get(context, id)
}

// Delete removes a student inside a single transaction.
//
// # Flow
//  1. Begin; rollback is deferred so every exit path releases the
//     connection back to the pool.
//  2. SELECT ... FOR UPDATE locks the row, so a concurrent enrollment
//     cannot race past the restrict check.
//  3. With DeleteRestrict, an enrolled student aborts the delete.
//  4. DELETE, then Commit.
func (repository *PostgresRepository) Delete(context context.Context, id string, mode DeleteMode) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin delete transaction: %w", err)
	}
	defer transaction.Rollback(context)

	var courseID *string
	err = transaction.QueryRow(context, `SELECT courseid FROM students WHERE id = $1 FOR UPDATE`, id).Scan(&courseID)
	if err != nil {
		return dberr.Wrap(err, "lock_student_for_delete")
	}

	if mode == DeleteRestrict && courseID != nil {
		return apperr.Unprocessable("Student is enrolled in a course. Unenroll the student before deleting.")
	}

	if _, err := transaction.Exec(context, `DELETE FROM students WHERE id = $1`, id); err != nil {
		return dberr.Wrap(err, "delete_student")
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit delete transaction: %w", err)
	}

	return nil
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRosterRow(row rowScanner) (*Student, error) {
	student := &Student{}
	var (
		courseID       *string
		courseCode     *string
		courseName     *string
		courseDuration *int
	)

	err := row.Scan(
		&student.ID,
		&student.FirstName,
		&student.LastName,
		&student.Email,
		&student.CourseID,
		&student.CreatedAt,
		&student.UpdatedAt,
		&courseID,
		&courseCode,
		&courseName,
		&courseDuration,
	)
	if err != nil {
		return nil, err
	}

	if courseID != nil {
		student.Course = &CourseDetails{
			ID:       *courseID,
			Code:     *courseCode,
			Name:     *courseName,
			Duration: *courseDuration,
		}
	}

	return student, nil
}
