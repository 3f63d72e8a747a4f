// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// UserRepository defines the data access contract for admin accounts.
//
// # Review Process
//
// This interface is placed in a separate file from user.go so entity changes
// and storage-contract changes can be reviewed independently by the team.
//
// # Implementations
//
// The canonical implementation is PostgreSQL ([PostgresUserRepository]).
type UserRepository interface {
	// FindByEmail returns the active account with the given email,
	// including the password hash for credential verification.
	//
	// Returns [apperr.NotFound] if no account is registered with this email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindProfileByID returns the account with the given ID WITHOUT the
	// password hash. This is the only lookup the current-user resolver
	// performs — the hash never travels further than the sign-in check.
	//
	// Returns [apperr.NotFound] if the account does not exist or is deleted.
	FindProfileByID(ctx context.Context, id string) (*User, error)

	// Count returns the number of accounts, including soft-deleted ones.
	// Used by the first-user bootstrap gate.
	Count(ctx context.Context) (int, error)

	// Create persists a brand-new account.
	//
	// Returns [apperr.Conflict] if the email unique constraint fails.
	Create(ctx context.Context, user *User) error
}

// SigninThrottle tracks failed credential checks per email.
//
// # Domain Ownership
//
// Kept alongside [UserRepository] because lockout policy is owned entirely
// by the auth domain, despite living in volatile storage.
type SigninThrottle interface {
	// Failures returns the current failed-attempt count for the email.
	Failures(ctx context.Context, email string) (int, error)

	// RecordFailure increments the counter and refreshes its TTL.
	RecordFailure(ctx context.Context, email string, ttl time.Duration) error

	// Reset clears the counter after a successful sign-in.
	Reset(ctx context.Context, email string) error
}
