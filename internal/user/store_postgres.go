// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/pressroom/internal/auth"
	"github.com/taibuivan/pressroom/internal/platform/apperr"
	"github.com/taibuivan/pressroom/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the [Repository].
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// List returns a window of accounts ordered by creation time plus the total
// count. Password hashes stay in the database.
func (repository *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*auth.User, int, error) {
	// ── 1. Total Count ────────────────────────────────────────────────────

	const countQuery = `SELECT COUNT(*) FROM users`

	var total int
	if err := repository.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_count_failed: %w", err)
	}

	// ── 2. Windowed Listing ───────────────────────────────────────────────

	const listQuery = `
		SELECT id, name, email, role, created_at, updated_at, deleted_at
		FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(ctx, listQuery, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_list_failed: %w", err)
	}
	defer rows.Close()

	accounts := []*auth.User{}
	for rows.Next() {
		account := &auth.User{}
		if err := rows.Scan(
			&account.ID,
			&account.Name,
			&account.Email,
			&account.Role,
			&account.CreatedAt,
			&account.UpdatedAt,
			&account.DeletedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_account_repo_scan_failed: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_rows_failed: %w", err)
	}

	return accounts, total, nil
}

// Create persists a new account row.
func (repository *PostgresRepository) Create(ctx context.Context, account *auth.User) error {
	const query = `
		INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		account.ID,
		account.Name,
		account.Email,
		account.PasswordHash,
		account.Role,
		account.CreatedAt,
		account.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "User with this email already exists")
	}

	return nil
}

// SetDeleted toggles the soft-delete marker on an account.
//
// The WHERE clause only matches rows in the opposite state, so toggling an
// account that is already deleted (or already active) reports NotFound
// instead of silently succeeding.
func (repository *PostgresRepository) SetDeleted(ctx context.Context, id string, deleted bool) error {
	const query = `
		UPDATE users
		SET deleted_at = CASE WHEN $2 THEN NOW() ELSE NULL END,
		    updated_at = NOW()
		WHERE id = $1 AND (deleted_at IS NULL) = $2`

	tag, err := repository.pool.Exec(ctx, query, id, deleted)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_set_deleted_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

// CountActive returns the number of accounts that are not soft-deleted.
func (repository *PostgresRepository) CountActive(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM users WHERE deleted_at IS NULL`

	var count int
	if err := repository.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres_account_repo_count_active_failed: %w", err)
	}

	return count, nil
}
