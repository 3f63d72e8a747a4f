// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package page

import (
	"context"
	"time"

	"github.com/taibuivan/pressroom/internal/platform/apperr"
	"github.com/taibuivan/pressroom/internal/platform/validate"
	"github.com/taibuivan/pressroom/pkg/slug"
	"github.com/taibuivan/pressroom/pkg/uuidv7"
)

// Service implements the Pages collection use cases.
//
// # Architecture
//
// The service orchestrates domain entities and talks to storage through the
// [Repository] interface. It is technology-agnostic and does not know about
// HTTP or SQL.
type Service struct {
	repository Repository
}

// NewService constructs a new page [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// # Listing

// List returns a filtered, paginated window of pages plus the total count.
func (service *Service) List(ctx context.Context, filter Filter, limit, offset int) ([]*Page, int, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, 0, validate.RequiredError("status", "Unknown status filter")
	}
	return service.repository.List(ctx, filter, limit, offset)
}

// Get returns a single page by ID.
func (service *Service) Get(ctx context.Context, id string) (*Page, error) {
	return service.repository.FindByID(ctx, id)
}

// # Creation & Editing

// Input holds the editable fields for create and update operations.
type Input struct {
	Title           string
	Slug            string // Optional: auto-generated from Title when empty.
	Content         string
	Excerpt         string
	FeaturedImage   string
	Category        string
	Tags            string
	MetaTitle       string
	MetaDescription string
	OGImage         string
	Status          Status
}

// validateInput applies the shared field rules for create and update.
func validateInput(input Input) error {
	v := &validate.Validator{}
	v.Required("title", input.Title).
		MaxLen("title", input.Title, 200).
		Custom("status", !input.Status.IsValid(), "Unknown status")

	// The slug is optional, but when provided it must already be well-formed —
	// editors see exactly what the URL will be.
	if input.Slug != "" {
		v.Slug("slug", input.Slug)
	}

	return v.Err()
}

// resolveSlug returns the explicit slug or derives one from the title.
func resolveSlug(input Input) string {
	if input.Slug != "" {
		return input.Slug
	}
	return slug.From(input.Title)
}

// Create validates and persists a brand-new page.
//
// # Business Rules
//   - Slug defaults to a normalized form of the title.
//   - Slugs are unique among active pages ([apperr.Conflict] on collision).
//   - published_at is stamped when the page is born published.
func (service *Service) Create(ctx context.Context, authorID string, input Input) (*Page, error) {
	// ── 1. Validation ─────────────────────────────────────────────────────

	if err := validateInput(input); err != nil {
		return nil, err
	}

	pageSlug := resolveSlug(input)
	if pageSlug == "" {
		return nil, validate.RequiredError("slug", "Could not derive a slug from the title")
	}

	// ── 2. Entity Construction ────────────────────────────────────────────

	now := time.Now()
	page := &Page{
		ID:              uuidv7.New(),
		Title:           input.Title,
		Slug:            pageSlug,
		Content:         input.Content,
		Excerpt:         input.Excerpt,
		FeaturedImage:   input.FeaturedImage,
		Category:        input.Category,
		Tags:            input.Tags,
		MetaTitle:       input.MetaTitle,
		MetaDescription: input.MetaDescription,
		OGImage:         input.OGImage,
		Status:          input.Status,
		AuthorID:        authorID,
	}

	if page.Status == StatusPublished {
		page.PublishedAt = &now
	}

	// ── 3. Persistence ────────────────────────────────────────────────────

	// The slug unique index is the authority on collisions; the repository
	// maps a violation to a client-safe Conflict.
	if err := service.repository.Create(ctx, page); err != nil {
		return nil, err
	}

	return service.repository.FindByID(ctx, page.ID)
}

// Update validates and persists changes to an existing page.
//
// Publishing for the first time stamps published_at; re-publishing keeps the
// original timestamp.
func (service *Service) Update(ctx context.Context, id string, input Input) (*Page, error) {
	// ── 1. Validation ─────────────────────────────────────────────────────

	if err := validateInput(input); err != nil {
		return nil, err
	}

	// ── 2. Load & Mutate ──────────────────────────────────────────────────

	page, err := service.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if page.DeletedAt != nil {
		return nil, apperr.Conflict("Page is deleted; restore it before editing")
	}

	page.Title = input.Title
	page.Slug = resolveSlug(input)
	page.Content = input.Content
	page.Excerpt = input.Excerpt
	page.FeaturedImage = input.FeaturedImage
	page.Category = input.Category
	page.Tags = input.Tags
	page.MetaTitle = input.MetaTitle
	page.MetaDescription = input.MetaDescription
	page.OGImage = input.OGImage

	if input.Status == StatusPublished && page.Status != StatusPublished && page.PublishedAt == nil {
		now := time.Now()
		page.PublishedAt = &now
	}
	page.Status = input.Status

	// ── 3. Persistence ────────────────────────────────────────────────────

	if err := service.repository.Update(ctx, page); err != nil {
		return nil, err
	}

	return service.repository.FindByID(ctx, id)
}

// # Soft Deletion

// SoftDelete marks a page as deleted without removing the row.
//
// # Edge Cases
//   - Missing page → [apperr.NotFound].
//   - Already deleted → [apperr.Conflict] "Page is already deleted".
func (service *Service) SoftDelete(ctx context.Context, id string) error {
	page, err := service.repository.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if page.DeletedAt != nil {
		return apperr.Conflict("Page is already deleted")
	}

	return service.repository.SetDeleted(ctx, id, true)
}

// Restore clears the soft-delete marker on a page.
//
// # Edge Cases
//   - Missing page → [apperr.NotFound].
//   - Not deleted → [apperr.Conflict] "Page is not deleted".
func (service *Service) Restore(ctx context.Context, id string) error {
	page, err := service.repository.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if page.DeletedAt == nil {
		return apperr.Conflict("Page is not deleted")
	}

	return service.repository.SetDeleted(ctx, id, false)
}

// Count returns the number of active pages (dashboard summary).
func (service *Service) Count(ctx context.Context) (int, error) {
	return service.repository.Count(ctx)
}
