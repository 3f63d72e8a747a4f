// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package page

import "context"

// Repository defines the data access contract for the Pages collection.
//
// # Implementations
//
// The canonical implementation is PostgreSQL ([PostgresRepository]).
type Repository interface {
	// List returns a filtered, paginated slice of pages (authors included)
	// and the total count matching the filter, ordered by updated_at desc.
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Page, int, error)

	// FindByID returns the page with the given ID, deleted or not.
	//
	// Returns [apperr.NotFound] if the row does not exist.
	FindByID(ctx context.Context, id string) (*Page, error)

	// FindBySlug returns the active page with the given slug.
	//
	// Returns [apperr.NotFound] if the slug is unused.
	FindBySlug(ctx context.Context, slug string) (*Page, error)

	// Create persists a brand-new page.
	//
	// Returns [apperr.Conflict] if the slug unique constraint fails.
	Create(ctx context.Context, page *Page) error

	// Update persists changes to a page's mutable fields.
	Update(ctx context.Context, page *Page) error

	// SetDeleted flips the soft-delete marker. deleted=true stamps
	// deleted_at with now; deleted=false clears it.
	SetDeleted(ctx context.Context, id string, deleted bool) error

	// Count returns the number of active (non-deleted) pages.
	Count(ctx context.Context) (int, error)
}
