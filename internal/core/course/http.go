// Copyright (c) 2026 Rollbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package course

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/rollbook/internal/platform/middleware"
	requestutil "github.com/taibuivan/rollbook/internal/platform/request"
	"github.com/taibuivan/rollbook/internal/platform/respond"
	"github.com/taibuivan/rollbook/internal/platform/sec"
	"github.com/taibuivan/rollbook/internal/platform/validate"
	"github.com/taibuivan/rollbook/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the catalog endpoints. Reads require authentication;
// catalog changes are admin-only.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(authRoute chi.Router) {
		authRoute.Use(middleware.RequireAuth)

		authRoute.Get("/", handler.listCourses)
		authRoute.Get("/{id}", handler.getCourse)

		authRoute.With(middleware.RequireRole(sec.RoleAdmin)).Post("/", handler.createCourse)
	})
}

func (handler *Handler) listCourses(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	courses, total, err := handler.service.List(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, courses, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getCourse(writer http.ResponseWriter, request *http.Request) {
	course, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, course)
}

type createCourseRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Duration int    `json:"duration"`
}

func (handler *Handler) createCourse(writer http.ResponseWriter, request *http.Request) {
	var input createCourseRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	course := &Course{
		Code:     input.Code,
		Name:     input.Name,
		Duration: input.Duration,
	}
	if err := handler.service.Create(request.Context(), course); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, course)
}
