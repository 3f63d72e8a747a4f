// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package page

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/pressroom/internal/auth"
	"github.com/taibuivan/pressroom/internal/platform/middleware"
	requestutil "github.com/taibuivan/pressroom/internal/platform/request"
	"github.com/taibuivan/pressroom/internal/platform/respond"
	"github.com/taibuivan/pressroom/pkg/pagination"
)

// Handler implements the Pages collection HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new page [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for the Pages collection.
//
// # Authorization
//
// Reads require Viewer; writes require Editor. Both sit behind the
// authenticated /admin subtree, so anonymous requests never reach here.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Viewer and up
	router.Get("/", handler.listPages)
	router.Get("/{id}", handler.getPage)

	// Editor and up
	router.Group(func(editorRoute chi.Router) {
		editorRoute.Use(middleware.RequireRole(auth.RoleEditor))

		editorRoute.Post("/", handler.createPage)
		editorRoute.Put("/{id}", handler.updatePage)
		editorRoute.Delete("/{id}", handler.deletePage)
		editorRoute.Post("/{id}/restore", handler.restorePage)
	})

	return router
}

func (handler *Handler) listPages(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := Filter{
		Query:       query.Get("q"),
		Status:      Status(query.Get("status")),
		ShowDeleted: query.Get("deleted") == "true",
	}

	pages, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, pages, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getPage(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, page)
}

// pageRequest represents the JSON payload for create and update.
type pageRequest struct {
	Title           string `json:"title"`
	Slug            string `json:"slug"`
	Content         string `json:"content"`
	Excerpt         string `json:"excerpt"`
	FeaturedImage   string `json:"featured_image"`
	Category        string `json:"category"`
	Tags            string `json:"tags"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	OGImage         string `json:"og_image"`
	Status          Status `json:"status"`
}

// toInput converts the wire payload into the service-layer [Input].
func (body pageRequest) toInput() Input {
	status := body.Status
	if status == "" {
		status = StatusDraft
	}

	return Input{
		Title:           body.Title,
		Slug:            body.Slug,
		Content:         body.Content,
		Excerpt:         body.Excerpt,
		FeaturedImage:   body.FeaturedImage,
		Category:        body.Category,
		Tags:            body.Tags,
		MetaTitle:       body.MetaTitle,
		MetaDescription: body.MetaDescription,
		OGImage:         body.OGImage,
		Status:          status,
	}
}

func (handler *Handler) createPage(writer http.ResponseWriter, request *http.Request) {
	var body pageRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// The author is always the signed-in account, never client input.
	authorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.Create(request.Context(), authorID, body.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, page)
}

func (handler *Handler) updatePage(writer http.ResponseWriter, request *http.Request) {
	var body pageRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), body.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, page)
}

func (handler *Handler) deletePage(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.SoftDelete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) restorePage(writer http.ResponseWriter, request *http.Request) {
	pageID := requestutil.ID(request, "id")

	if err := handler.service.Restore(request.Context(), pageID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	restored, err := handler.service.Get(request.Context(), pageID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, restored)
}
