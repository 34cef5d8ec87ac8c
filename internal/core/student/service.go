// Copyright (c) 2026 Rollbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package student

import (
	"context"
	"log/slog"

	"github.com/taibuivan/rollbook/internal/platform/validate"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListWithCourses(context context.Context, limit, offset int) ([]*Student, int, error) {
	return service.repo.ListWithCourses(context, limit, offset)
}

func (service *Service) ListByCourseCode(context context.Context, code string) ([]*Student, error) {
	return service.repo.ListByCourseCode(context, code)
}

func (service *Service) Get(context context.Context, id string) (*Student, error) {
	return service.repo.Get(context, id)
}

func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Student, error) {
	validator := &validate.Validator{}

	validator.Custom("body", !input.HasChanges(), "At least one updatable field is required")
	if input.FirstName != nil {
		validator.Required(FieldFirstName, *input.FirstName).MaxLen(FieldFirstName, *input.FirstName, 100)
	}
	if input.LastName != nil {
		validator.Required(FieldLastName, *input.LastName).MaxLen(FieldLastName, *input.LastName, 100)
	}
	if input.Email != nil {
		validator.Email(FieldEmail, *input.Email)
	}
	if input.CourseID != nil && *input.CourseID != "" {
		validator.UUID(FieldCourseID, *input.CourseID)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	student, err := service.repo.Update(context, id, input)
	if err != nil {
		return nil, err
	}

	service.logger.Info("student_updated", slog.String("student_id", id))
	return student, nil
}

func (service *Service) Delete(context context.Context, id string, mode DeleteMode) error {
	validator := &validate.Validator{}
	validator.Custom(FieldType, !mode.Valid(), "Must be one of: standard, restrict")
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Delete(context, id, mode); err != nil {
		return err
	}

	service.logger.Warn("student_deleted", slog.String("student_id", id), slog.String("mode", string(mode)))
	return nil
}
