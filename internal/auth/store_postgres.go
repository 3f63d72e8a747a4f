// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/pressroom/internal/platform/apperr"
	"github.com/taibuivan/pressroom/internal/platform/dberr"
)

// PostgresUserRepository implements [UserRepository] using pgx.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the [UserRepository].
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// FindByEmail retrieves an active account by its unique email address.
//
// # Returns
//
// Returns [*User] (including the password hash) if found, or
// [apperr.NotFound] if no active account exists.
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = `
		SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM users
		WHERE email = $1 AND deleted_at IS NULL`

	user := &User{}
	err := repository.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_email_failed: %w", err)
	}

	return user, nil
}

// FindProfileByID retrieves an account by ID, projecting only the fields the
// authorization layer needs. The password hash column is never selected here.
func (repository *PostgresUserRepository) FindProfileByID(ctx context.Context, id string) (*User, error) {
	const query = `
		SELECT id, name, email, role, created_at, updated_at
		FROM users
		WHERE id = $1 AND deleted_at IS NULL`

	user := &User{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_profile_failed: %w", err)
	}

	return user, nil
}

// Count returns the total number of accounts ever created.
//
// Soft-deleted rows are included on purpose: deleting the bootstrap admin
// must not re-open the public sign-up window.
func (repository *PostgresUserRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM users`

	var count int
	if err := repository.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres_user_repo_count_failed: %w", err)
	}

	return count, nil
}

// Create persists a new account row.
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "User with this email already exists")
	}

	return nil
}
