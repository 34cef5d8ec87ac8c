// Copyright (c) 2026 Rollbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/rollbook/internal/platform/middleware"
	requestutil "github.com/taibuivan/rollbook/internal/platform/request"
	"github.com/taibuivan/rollbook/internal/platform/respond"
	"github.com/taibuivan/rollbook/internal/platform/validate"
)

// Handler implements the identity HTTP endpoints.
//
// # Scope
//
// This handler manages the account lifecycle entry points for both kinds of
// principals: student registration/login on the public surface and admin
// registration/login on the staff surface.
type Handler struct {
	service *Service
	cookies *CookieManager
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, cookies *CookieManager) *Handler {
	return &Handler{service: service, cookies: cookies}
}

// Routes returns a [chi.Router] with the public (student) identity routes.
//
// # Endpoints
//   - POST /register : Creates a new student account.
//   - POST /login    : Authenticates and sets the session cookie pair.
//   - POST /logout   : Expires the session cookies.
//   - GET  /profile  : Returns the authenticated account (auth required).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.registerStudent)
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Get("/profile", handler.profile)
	})

	return router
}

// AdminRoutes returns a [chi.Router] with the staff identity routes.
//
// # Endpoints
//   - POST /register : Creates a new admin account.
//   - POST /login    : Authenticates an admin and sets the session cookies.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.registerAdmin)
	router.Post("/login", handler.login)

	return router
}

// registerStudentRequest represents the JSON payload for student sign-up.
type registerStudentRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	CourseID  *string `json:"course_id"`
}

// registerStudent handles POST /api/v1/auth/register requests.
//
// # Returns
//   - Writes HTTP 200 OK on success with the new student profile.
//   - Writes HTTP 400 Bad Request if validation rules fail.
//   - Writes HTTP 409 Conflict if the email is taken.
func (handler *Handler) registerStudent(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input registerStudentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	// Prevent malformed data from reaching the service layer.
	validator := &validate.Validator{}
	validator.
		Required(FieldFirstName, input.FirstName).MaxLen(FieldFirstName, input.FirstName, 100).
		Required(FieldLastName, input.LastName).MaxLen(FieldLastName, input.LastName, 100).
		Required(FieldEmail, input.Email).Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).MinLen(FieldPassword, input.Password, 8)
	if input.CourseID != nil {
		validator.UUID(FieldCourseID, *input.CourseID)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	// Service handles Bcrypt hashing; the unique index handles duplicates.
	student, err := handler.service.RegisterStudent(request.Context(), RegisterStudentInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  input.Password,
		CourseID:  input.CourseID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	respond.OK(writer, student)
}

// registerAdminRequest represents the JSON payload for admin creation.
type registerAdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// registerAdmin handles POST /api/v1/admin/register requests.
func (handler *Handler) registerAdmin(writer http.ResponseWriter, request *http.Request) {
	var input registerAdminRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if err := validator.
		Required(FieldUsername, input.Username).MinLen(FieldUsername, input.Username, 3).MaxLen(FieldUsername, input.Username, 50).
		Required(FieldPassword, input.Password).MinLen(FieldPassword, input.Password, 8).
		Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	admin, err := handler.service.RegisterAdmin(request.Context(), RegisterAdminInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, admin)
}

// loginRequest represents the JSON payload expected for authentication.
type loginRequest struct {
	Login    string `json:"login"` // Student email or admin username.
	Password string `json:"password"`
}

// login handles POST login requests on both the public and staff surfaces.
//
// # Returns
//   - Writes HTTP 200 OK on success with the token pair and profile, and
//     sets the accesstoken/refreshToken cookies.
//   - Writes HTTP 401 Unauthorized for bad credentials.
//   - Writes HTTP 429 Too Many Requests when the login is throttled.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	if input.Login == "" || input.Password == "" {
		respond.Error(writer, request, validate.RequiredError(FieldLogin, "login and password are required"))
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	session, err := handler.service.Login(request.Context(), LoginInput{
		Login:    input.Login,
		Password: input.Password,
	})
	if err != nil {
		// Returns HTTP 401 without leaking whether the account exists.
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	// Cookies carry the session for browsers; the body carries the same
	// tokens for clients that prefer the Authorization header.
	handler.cookies.Attach(writer, session.AccessToken, session.RefreshToken)

	respond.OK(writer, map[string]any{
		"access_token":  session.AccessToken,
		"refresh_token": session.RefreshToken,
		"user":          session.User,
	})
}

// logout handles POST /api/v1/auth/logout requests.
//
// Logout is idempotent: it clears the cookies whether or not the caller was
// authenticated, so a stale browser session can always reset itself.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	handler.cookies.Clear(writer)

	respond.OK(writer, map[string]any{
		FieldMessage: "Logged out successfully",
	})
}

// profile handles GET /api/v1/auth/profile requests.
func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	identity, err := handler.service.Profile(request.Context(), *principal)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, identity)
}
