// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import (
	"context"

	"github.com/taibuivan/pressroom/internal/auth"
	"github.com/taibuivan/pressroom/internal/platform/apperr"
	"github.com/taibuivan/pressroom/internal/platform/sec"
	"github.com/taibuivan/pressroom/internal/platform/validate"
	"github.com/taibuivan/pressroom/pkg/uuidv7"
)

// Service implements the account-management use cases.
//
// Route-level middleware already guarantees the caller is a Super Admin; the
// service re-checks nothing role-related except the self-delete rule, which
// needs the actor's identity.
type Service struct {
	repository Repository
}

// NewService constructs a new account-management [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// List returns a paginated roster of accounts plus the total count.
func (service *Service) List(ctx context.Context, limit, offset int) ([]*auth.User, int, error) {
	return service.repository.List(ctx, limit, offset)
}

// CreateInput holds the data required to enroll a new account.
type CreateInput struct {
	Name     string
	Email    string
	Password string
	Role     auth.Role // Optional: defaults to Viewer.
}

// Create enrolls a new account with an admin-chosen role.
//
// # Business Rules
//   - Role defaults to [auth.RoleViewer] when absent; an explicit role must
//     be one of the known three.
//   - A duplicate email maps to [apperr.Conflict]
//     "User with this email already exists".
func (service *Service) Create(ctx context.Context, input CreateInput) (*auth.User, error) {
	// ── 1. Defaults & Validation ──────────────────────────────────────────

	role := input.Role
	if role == "" {
		role = auth.RoleViewer
	}

	v := &validate.Validator{}
	err := v.
		Required("name", input.Name).
		MinLen("name", input.Name, 2).
		Required("email", input.Email).
		Email("email", input.Email).
		MinLen("password", input.Password, 6).
		Custom("role", !role.IsValid(), "Unknown role").
		Err()
	if err != nil {
		return nil, err
	}

	// ── 2. Security ───────────────────────────────────────────────────────

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	// ── 3. Entity Construction & Persistence ──────────────────────────────

	account := &auth.User{
		ID:           uuidv7.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         role,
	}

	if err := service.repository.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// SoftDelete marks an account as deleted without removing the row.
//
// # Edge Cases
//   - Deleting your own account → [apperr.Forbidden]; an admin locking
//     themselves out is never a valid operation.
//   - Missing or already-deleted account → [apperr.NotFound].
func (service *Service) SoftDelete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return apperr.Forbidden("You cannot delete your own account")
	}

	return service.repository.SetDeleted(ctx, id, true)
}

// CountActive returns the number of active accounts (dashboard summary).
func (service *Service) CountActive(ctx context.Context) (int, error) {
	return service.repository.CountActive(ctx)
}
