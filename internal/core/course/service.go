// Copyright (c) 2026 Rollbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package course

import (
	"context"
	"log/slog"

	"github.com/taibuivan/rollbook/internal/platform/validate"
	"github.com/taibuivan/rollbook/pkg/uuid"
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

func (service *Service) List(context context.Context, limit, offset int) ([]*Course, int, error) {
	return service.repo.List(context, limit, offset)
}

func (service *Service) Get(context context.Context, id string) (*Course, error) {
	return service.repo.Get(context, id)
}

func (service *Service) Create(context context.Context, course *Course) error {
	validator := &validate.Validator{}
	validator.
		Required(FieldCode, course.Code).MaxLen(FieldCode, course.Code, 20).
		Required(FieldName, course.Name).MaxLen(FieldName, course.Name, 200).
		Range(FieldDuration, course.Duration, 1, 16)

	if err := validator.Err(); err != nil {
		return err
	}

	course.ID = uuid.New()
	if err := service.repo.Create(context, course); err != nil {
		return err
	}

	service.logger.Info("course_created", slog.String("code", course.Code))
	return nil
}
