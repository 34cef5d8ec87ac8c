// Copyright (c) 2026 Rollbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package student_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/rollbook/internal/core/student"
	"github.com/taibuivan/rollbook/internal/platform/apperr"
	"github.com/taibuivan/rollbook/internal/platform/dberr"
)

// fakeRepository records calls and serves a single in-memory roster entry.
type fakeRepository struct {
	entry       *student.Student
	lastUpdate  student.UpdateInput
	deletedWith student.DeleteMode
}

func (f *fakeRepository) ListWithCourses(ctx context.Context, limit, offset int) ([]*student.Student, int, error) {
	if f.entry == nil {
		return nil, 0, nil
	}
	return []*student.Student{f.entry}, 1, nil
}

func (f *fakeRepository) ListByCourseCode(ctx context.Context, code string) ([]*student.Student, error) {
	if f.entry != nil && f.entry.Course != nil && f.entry.Course.Code == code {
		return []*student.Student{f.entry}, nil
	}
	return []*student.Student{}, nil
}

func (f *fakeRepository) Get(ctx context.Context, id string) (*student.Student, error) {
	if f.entry != nil && f.entry.ID == id {
		return f.entry, nil
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) Update(ctx context.Context, id string, input student.UpdateInput) (*student.Student, error) {
	if f.entry == nil || f.entry.ID != id {
		return nil, dberr.ErrNotFound
	}
	f.lastUpdate = input
	return f.entry, nil
}

func (f *fakeRepository) Delete(ctx context.Context, id string, mode student.DeleteMode) error {
	if f.entry == nil || f.entry.ID != id {
		return dberr.ErrNotFound
	}
	if mode == student.DeleteRestrict && f.entry.CourseID != nil {
		return apperr.Unprocessable("Student is enrolled in a course. Unenroll the student before deleting.")
	}
	f.deletedWith = mode
	return nil
}

func strptr(s string) *string { return &s }

func newRosterFixture() (*student.Service, *fakeRepository) {
	repo := &fakeRepository{
		entry: &student.Student{
			ID:        "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b",
			FirstName: "Mai",
			LastName:  "Tran",
			Email:     "mai@rollbook.app",
		},
	}
	return student.NewService(repo, slog.Default()), repo
}

/*
TestService_Update_NoFields verifies that an empty patch is a validation
error, never a silent no-op write.
*/
func TestService_Update_NoFields(t *testing.T) {
	service, _ := newRosterFixture()

	_, err := service.Update(context.Background(), "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b", student.UpdateInput{})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

/*
TestService_Update_FieldRules verifies per-field validation on partial updates.
*/
func TestService_Update_FieldRules(t *testing.T) {
	tests := []struct {
		name    string
		input   student.UpdateInput
		isValid bool
	}{
		{"rename", student.UpdateInput{FirstName: strptr("Lan")}, true},
		{"email_change", student.UpdateInput{Email: strptr("lan@rollbook.app")}, true},
		{"bad_email", student.UpdateInput{Email: strptr("not-an-email")}, false},
		{"blank_name", student.UpdateInput{FirstName: strptr("  ")}, false},
		{"enroll", student.UpdateInput{CourseID: strptr("0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b")}, true},
		{"unenroll", student.UpdateInput{CourseID: strptr("")}, true},
		{"bad_course_id", student.UpdateInput{CourseID: strptr("course-42")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newRosterFixture()

			_, err := service.Update(context.Background(), repo.entry.ID, tt.input)
			if tt.isValid {
				assert.NoError(t, err)
				assert.Equal(t, tt.input, repo.lastUpdate)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

/*
TestService_Update_UnknownID verifies the NotFound passthrough.
*/
func TestService_Update_UnknownID(t *testing.T) {
	service, _ := newRosterFixture()

	_, err := service.Update(context.Background(), "missing-id", student.UpdateInput{FirstName: strptr("Lan")})
	require.Error(t, err)
	assert.ErrorIs(t, err, dberr.ErrNotFound)
}

/*
TestService_Delete verifies mode validation and the restrict policy.
*/
func TestService_Delete(t *testing.T) {
	t.Run("invalid_mode", func(t *testing.T) {
		service, repo := newRosterFixture()

		err := service.Delete(context.Background(), repo.entry.ID, student.DeleteMode("cascade"))
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("standard_removes_enrolled", func(t *testing.T) {
		service, repo := newRosterFixture()
		repo.entry.CourseID = strptr("course-uuid")

		err := service.Delete(context.Background(), repo.entry.ID, student.DeleteStandard)
		require.NoError(t, err)
		assert.Equal(t, student.DeleteStandard, repo.deletedWith)
	})

	t.Run("restrict_blocks_enrolled", func(t *testing.T) {
		service, repo := newRosterFixture()
		repo.entry.CourseID = strptr("course-uuid")

		err := service.Delete(context.Background(), repo.entry.ID, student.DeleteRestrict)
		require.Error(t, err)
		assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)
	})

	t.Run("restrict_removes_unenrolled", func(t *testing.T) {
		service, repo := newRosterFixture()

		err := service.Delete(context.Background(), repo.entry.ID, student.DeleteRestrict)
		require.NoError(t, err)
		assert.Equal(t, student.DeleteRestrict, repo.deletedWith)
	})
}
