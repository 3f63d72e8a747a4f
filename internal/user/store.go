// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package user implements the Users collection: administrative management of
// accounts by a Super Admin.
//
// # Architecture
//
// The account entity itself lives in [auth.User] — sessions and this
// collection describe the same rows. This package adds the management
// operations (list, enroll, soft-delete) that sit on top.
package user

import (
	"context"

	"github.com/taibuivan/pressroom/internal/auth"
)

// Repository abstracts account-management storage operations.
type Repository interface {
	// List returns a window of accounts plus the total count.
	// Password hashes are never selected. Soft-deleted accounts are included
	// so an admin can see (and audit) the whole roster.
	List(ctx context.Context, limit, offset int) ([]*auth.User, int, error)

	// Create persists a new account. A duplicate email maps to
	// [apperr.Conflict].
	Create(ctx context.Context, account *auth.User) error

	// SetDeleted toggles the soft-delete marker. Toggling an account that is
	// already in the requested state maps to [apperr.NotFound].
	SetDeleted(ctx context.Context, id string, deleted bool) error

	// CountActive returns the number of accounts that are not soft-deleted
	// (dashboard summary).
	CountActive(ctx context.Context) (int, error)
}
