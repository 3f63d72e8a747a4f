// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/pressroom/internal/platform/apperr"
	"github.com/taibuivan/pressroom/internal/platform/constants"
	requestutil "github.com/taibuivan/pressroom/internal/platform/request"
	"github.com/taibuivan/pressroom/internal/platform/respond"
	"github.com/taibuivan/pressroom/internal/platform/validate"
)

// Handler implements the authentication HTTP endpoints under /admin.
//
// # Scope
//
// Everything related to establishing and tearing down a session lives here
// (sign-in, first-user sign-up, logout, current-user probe). Handlers parse
// and validate JSON at the boundary; business rules live in [Service].
type Handler struct {
	authService *Service
	sessions    *SessionManager
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, sessions *SessionManager) *Handler {
	return &Handler{authService: service, sessions: sessions}
}

// Routes returns a [chi.Router] with the authentication-specific routes.
//
// # Endpoints
//   - POST /signin : Verifies credentials and issues the session cookie.
//   - POST /signup : First-user bootstrap; refuses once any account exists.
//   - POST /logout : Destroys the session cookie.
//   - GET  /me     : Returns the account resolved from the current session.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/signin", handler.signin)
	router.Post("/signup", handler.signup)
	router.Post("/logout", handler.logout)
	router.Get("/me", handler.me)

	return router
}

// signinRequest represents the JSON payload expected for authentication.
type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// signin handles POST /admin/signin requests.
//
// # Returns
//   - Writes HTTP 200 OK with the account and a Set-Cookie session on success.
//   - Writes HTTP 401 Unauthorized with one indistinguishable message for
//     unknown email and wrong password alike.
func (handler *Handler) signin(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input signinRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Boundary Validation ────────────────────────────────────────────

	if input.Email == "" || input.Password == "" {
		respond.Error(writer, request, validate.RequiredError("email/password", "are required"))
		return
	}

	// ── 3. Application Execution ──────────────────────────────────────────

	user, err := handler.authService.SignIn(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 4. Session Commit ─────────────────────────────────────────────────

	// The Set-Cookie header on this response is the only commit point.
	if err := handler.sessions.Write(writer, user.ID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"user":     user,
		"redirect": constants.AdminDashboardPath,
	})
}

// signupRequest represents the JSON payload for the first-user bootstrap.
type signupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// signup handles POST /admin/signup requests.
//
// # Returns
//   - Writes HTTP 201 Created with the bootstrap admin and a session cookie.
//   - Writes HTTP 409 Conflict once any account exists.
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	// ── 1. Payload Extraction ─────────────────────────────────────────────

	var input signupRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 2. Application Execution ──────────────────────────────────────────

	// Field validation happens in the service so the rules stay in one place.
	user, err := handler.authService.SignUp(request.Context(), SignUpInput{
		Name:            input.Name,
		Email:           input.Email,
		Password:        input.Password,
		ConfirmPassword: input.ConfirmPassword,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ── 3. Session Commit ─────────────────────────────────────────────────

	if err := handler.sessions.Write(writer, user.ID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusCreated, respond.SuccessEnvelope{Data: map[string]any{
		"user":     user,
		"redirect": constants.AdminDashboardPath,
	}})
}

// logout handles POST /admin/logout requests.
//
// Idempotent: logging out an anonymous request still answers 200 with an
// empty session.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	handler.sessions.Clear(writer)

	respond.OK(writer, map[string]any{
		"redirect": constants.AdminSigninPath,
	})
}

// me handles GET /admin/me requests.
//
// # Returns
//   - Writes HTTP 200 with the resolved account.
//   - Writes HTTP 401 when the session is empty or dangling.
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	session := handler.sessions.Read(request)

	user, err := handler.authService.CurrentUser(request.Context(), session)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if user == nil {
		respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
		return
	}

	respond.OK(writer, user)
}
