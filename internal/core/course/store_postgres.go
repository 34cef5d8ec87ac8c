// Copyright (c) 2026 Rollbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package course

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/rollbook/internal/platform/dberr"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Course, int, error) {
	var total int
	if err := repository.pool.QueryRow(context, `SELECT count(*) FROM courses`).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_courses")
	}

	const query = `
		SELECT id, code, name, duration, createdat, updatedat
		FROM courses
		ORDER BY code ASC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_courses")
	}
	defer rows.Close()

	var courses []*Course
	for rows.Next() {
		course := &Course{}
		if err := rows.Scan(&course.ID, &course.Code, &course.Name, &course.Duration, &course.CreatedAt, &course.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_course")
		}
		courses = append(courses, course)
	}

	return courses, total, nil
}

func (repository *PostgresRepository) Get(context context.Context, id string) (*Course, error) {
	const query = `
		SELECT id, code, name, duration, createdat, updatedat
		FROM courses
		WHERE id = $1`

	course := &Course{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&course.ID, &course.Code, &course.Name, &course.Duration, &course.CreatedAt, &course.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_course")
	}

	return course, nil
}

func (repository *PostgresRepository) Create(context context.Context, course *Course) error {
	const query = `
		INSERT INTO courses (id, code, name, duration, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now()
	course.CreatedAt = now
	course.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		course.ID, course.Code, course.Name, course.Duration, course.CreatedAt, course.UpdatedAt,
	)

	return dberr.Wrap(err, "create_course")
}
