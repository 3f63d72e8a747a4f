// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package page

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/pressroom/internal/platform/apperr"
	"github.com/taibuivan/pressroom/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the page [Repository].
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// pageColumns is the projection shared by every single-row query.
const pageColumns = `
	p.id, p.title, p.slug, p.content, p.excerpt, p.featured_image,
	p.category, p.tags, p.meta_title, p.meta_description, p.og_image,
	p.status, p.published_at, p.author_id, p.created_at, p.updated_at, p.deleted_at,
	u.id, u.name, u.email`

// scanPage reads one joined page+author row.
func scanPage(row pgx.Row) (*Page, error) {
	page := &Page{Author: &Author{}}
	err := row.Scan(
		&page.ID,
		&page.Title,
		&page.Slug,
		&page.Content,
		&page.Excerpt,
		&page.FeaturedImage,
		&page.Category,
		&page.Tags,
		&page.MetaTitle,
		&page.MetaDescription,
		&page.OGImage,
		&page.Status,
		&page.PublishedAt,
		&page.AuthorID,
		&page.CreatedAt,
		&page.UpdatedAt,
		&page.DeletedAt,
		&page.Author.ID,
		&page.Author.Name,
		&page.Author.Email,
	)
	if err != nil {
		return nil, err
	}
	return page, nil
}

// buildFilter translates a [Filter] into a WHERE clause and its arguments.
//
// Arguments are always positional placeholders — user input never reaches
// the SQL text itself.
func buildFilter(filter Filter) (string, []any) {
	conditions := make([]string, 0, 3)
	args := make([]any, 0, 2)

	// Deleted toggle: the listing shows either active or deleted rows, never both.
	if filter.ShowDeleted {
		conditions = append(conditions, "p.deleted_at IS NOT NULL")
	} else {
		conditions = append(conditions, "p.deleted_at IS NULL")
	}

	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		conditions = append(conditions, fmt.Sprintf(
			"(p.title ILIKE %s OR p.content ILIKE %s OR p.slug ILIKE %s)",
			placeholder, placeholder, placeholder,
		))
	}

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", len(args)))
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

// List returns a filtered, paginated slice of pages and the total count.
func (repository *PostgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Page, int, error) {
	where, args := buildFilter(filter)

	// ── 1. Total Count ────────────────────────────────────────────────────

	countQuery := "SELECT COUNT(*) FROM pages p " + where

	var total int
	if err := repository.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_page_repo_count_failed: %w", err)
	}

	// ── 2. Page Window ────────────────────────────────────────────────────

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM pages p
		JOIN users u ON u.id = p.author_id
		%s
		ORDER BY p.updated_at DESC
		LIMIT $%d OFFSET $%d`,
		pageColumns, where, len(args)+1, len(args)+2)

	listArgs := append(append([]any{}, args...), limit, offset)

	rows, err := repository.pool.Query(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_page_repo_list_failed: %w", err)
	}
	defer rows.Close()

	pages := make([]*Page, 0, limit)
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_page_repo_scan_failed: %w", err)
		}
		pages = append(pages, page)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_page_repo_rows_failed: %w", err)
	}

	return pages, total, nil
}

// FindByID retrieves a page by its unique ID, whether deleted or not.
//
// Soft-deleted rows are included so the restore flow can find its target.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Page, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM pages p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1`, pageColumns)

	page, err := scanPage(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Page")
		}
		return nil, fmt.Errorf("postgres_page_repo_find_by_id_failed: %w", err)
	}

	return page, nil
}

// FindBySlug retrieves an active page by its unique slug.
func (repository *PostgresRepository) FindBySlug(ctx context.Context, slug string) (*Page, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM pages p
		JOIN users u ON u.id = p.author_id
		WHERE p.slug = $1 AND p.deleted_at IS NULL`, pageColumns)

	page, err := scanPage(repository.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Page")
		}
		return nil, fmt.Errorf("postgres_page_repo_find_by_slug_failed: %w", err)
	}

	return page, nil
}

// Create persists a new page row.
func (repository *PostgresRepository) Create(ctx context.Context, page *Page) error {
	const query = `
		INSERT INTO pages (
			id, title, slug, content, excerpt, featured_image, category, tags,
			meta_title, meta_description, og_image, status, published_at,
			author_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	now := time.Now()
	if page.CreatedAt.IsZero() {
		page.CreatedAt = now
	}
	page.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		page.ID,
		page.Title,
		page.Slug,
		page.Content,
		page.Excerpt,
		page.FeaturedImage,
		page.Category,
		page.Tags,
		page.MetaTitle,
		page.MetaDescription,
		page.OGImage,
		page.Status,
		page.PublishedAt,
		page.AuthorID,
		page.CreatedAt,
		page.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "Page with this slug already exists")
	}

	return nil
}

// Update persists changes to a page's mutable fields.
func (repository *PostgresRepository) Update(ctx context.Context, page *Page) error {
	const query = `
		UPDATE pages SET
			title = $2, slug = $3, content = $4, excerpt = $5,
			featured_image = $6, category = $7, tags = $8, meta_title = $9,
			meta_description = $10, og_image = $11, status = $12,
			published_at = $13, updated_at = $14
		WHERE id = $1`

	page.UpdatedAt = time.Now()

	commandTag, err := repository.pool.Exec(ctx, query,
		page.ID,
		page.Title,
		page.Slug,
		page.Content,
		page.Excerpt,
		page.FeaturedImage,
		page.Category,
		page.Tags,
		page.MetaTitle,
		page.MetaDescription,
		page.OGImage,
		page.Status,
		page.PublishedAt,
		page.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "Page with this slug already exists")
	}

	if commandTag.RowsAffected() == 0 {
		return apperr.NotFound("Page")
	}

	return nil
}

// SetDeleted flips the soft-delete marker on a page.
func (repository *PostgresRepository) SetDeleted(ctx context.Context, id string, deleted bool) error {
	const query = `
		UPDATE pages
		SET deleted_at = CASE WHEN $2 THEN NOW() ELSE NULL END, updated_at = NOW()
		WHERE id = $1`

	commandTag, err := repository.pool.Exec(ctx, query, id, deleted)
	if err != nil {
		return fmt.Errorf("postgres_page_repo_set_deleted_failed: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return apperr.NotFound("Page")
	}

	return nil
}

// Count returns the number of active pages (used by the dashboard summary).
func (repository *PostgresRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM pages WHERE deleted_at IS NULL`

	var count int
	if err := repository.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres_page_repo_count_active_failed: %w", err)
	}

	return count, nil
}
