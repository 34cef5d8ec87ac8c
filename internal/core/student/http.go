// Copyright (c) 2026 Rollbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package student

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

// RegisterRoutes mounts the roster endpoints. Every route is admin-only.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Get("/", handler.listStudents)
		adminRoute.Get("/course/{code}", handler.listStudentsByCourse)
		adminRoute.Get("/{id}", handler.getStudent)
		adminRoute.Patch("/{id}", handler.updateStudent)
		adminRoute.Delete("/{id}", handler.deleteStudent)
	})
}

func (handler *Handler) listStudents(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	students, total, err := handler.service.ListWithCourses(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, students, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// listStudentsByCourse returns the students enrolled in a course code.
// An unknown code is an empty list, not a 404.
func (handler *Handler) listStudentsByCourse(writer http.ResponseWriter, request *http.Request) {
	code := requestutil.Param(request, "code")
	if code == "" {
		respond.Error(writer, request, validate.RequiredError("code", "course code is required"))
		return
	}

	students, err := handler.service.ListByCourseCode(request.Context(), code)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, students)
}

func (handler *Handler) getStudent(writer http.ResponseWriter, request *http.Request) {
	student, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, student)
}

// updateStudentRequest carries the PATCH body. Pointer fields distinguish
// "absent" from "set to empty".
type updateStudentRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	CourseID  *string `json:"course_id"`
}

func (handler *Handler) updateStudent(writer http.ResponseWriter, request *http.Request) {
	var input updateStudentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	student, err := handler.service.Update(request.Context(), requestutil.Param(request, "id"), UpdateInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		CourseID:  input.CourseID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, student)
}

// deleteStudent handles DELETE /{id}?type=restrict|standard.
// The mode defaults to standard when the query parameter is absent.
func (handler *Handler) deleteStudent(writer http.ResponseWriter, request *http.Request) {
	mode := DeleteMode(request.URL.Query().Get("type"))
	if mode == "" {
		mode = DeleteStandard
	}

	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "id"), mode); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
