// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/pressroom/internal/auth"
	"github.com/taibuivan/pressroom/internal/platform/middleware"
	requestutil "github.com/taibuivan/pressroom/internal/platform/request"
	"github.com/taibuivan/pressroom/internal/platform/respond"
	"github.com/taibuivan/pressroom/pkg/pagination"
)

// Handler implements the Users collection HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new account-management [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for the Users collection.
//
// The whole collection is Super Admin territory.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(auth.RoleSuperAdmin))

	router.Get("/", handler.listUsers)
	router.Post("/", handler.createUser)
	router.Delete("/{id}", handler.deleteUser)

	return router
}

func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	accounts, total, err := handler.service.List(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, accounts, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// createUserRequest represents the JSON payload for enrolling an account.
type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	var body createUserRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.service.Create(request.Context(), CreateInput{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
		Role:     auth.Role(body.Role),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, account)
}

func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.SoftDelete(request.Context(), actorID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
