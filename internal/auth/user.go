// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package auth defines the identity core of the Pressroom admin: accounts,
// roles, cookie sessions, and the sign-in/sign-up use cases.
//
// # Architecture
//
// Entities in this package represent the "Truth" of the system.
// They have no dependencies on outer layers (like databases, APIs, or libraries).
// This makes the core logic highly testable and resilient to technology changes.
package auth

import (
	"time"
)

// Role represents the authorization level granted to an account.
//
// # Usage
//
// Used by [middleware.RequireRole] and [Service.RequireSuperAdmin] to enforce
// access control across the admin surface.
type Role string

const (
	RoleSuperAdmin Role = "super_admin" // Unrestricted access, including user management.
	RoleEditor     Role = "editor"      // Can create and modify content collections.
	RoleViewer     Role = "viewer"      // Read-only access to the admin panel.
)

// rank maps a role to its numeric position in the privilege order.
//
// The ordering is strict: no two roles share a rank, and rank increases with
// privilege. Unknown roles rank below every real role.
func (r Role) rank() int {
	switch r {
	case RoleSuperAdmin:
		return 3
	case RoleEditor:
		return 2
	case RoleViewer:
		return 1
	default:
		return 0
	}
}

// AtLeast checks if the current role meets or exceeds the required target role.
//
// # Why numeric mapping?
//
// Representing the hierarchy as a rank table keeps "minimum role" checks a
// single integer comparison instead of nested switches, and leaves no room
// for role subclassing.
func (r Role) AtLeast(target Role) bool {
	return r.rank() >= target.rank()
}

// IsValid reports whether r is a recognised [Role] value.
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// User represents an account on the Pressroom admin panel.
//
// # Rules
//   - Email is unique and validated.
//   - PasswordHash is generated via bcrypt exclusively through [Service].
//   - DeletedAt implements soft-deletion: non-nil accounts cannot sign in.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Explicitly omitted from JSON for security.
	Role         Role       `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"` // nil = active; non-nil = soft-deleted
}
