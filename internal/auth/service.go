// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/taibuivan/pressroom/internal/platform/apperr"
	"github.com/taibuivan/pressroom/internal/platform/constants"
	"github.com/taibuivan/pressroom/internal/platform/sec"
	"github.com/taibuivan/pressroom/internal/platform/validate"
	"github.com/taibuivan/pressroom/pkg/uuidv7"
)

// Service implements the authentication and authorization use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, bootstrap,
// or sign-in logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	throttle       SigninThrottle
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(userRepo UserRepository, throttle SigninThrottle) *Service {
	return &Service{
		userRepository: userRepo,
		throttle:       throttle,
	}
}

// # Sign In

// SignIn validates credentials and returns the authenticated account.
//
// # Returns
//   - The account on success; the caller establishes the session cookie.
//   - [apperr.Unauthorized] "Invalid email or password" for BOTH an unknown
//     email and a wrong password — the two cases are indistinguishable to
//     prevent account enumeration.
//   - [apperr.RateLimited] once the failure budget for the email is spent.
//
// # Flow
//  1. Check the per-email failure counter.
//  2. Look up the account by email.
//  3. Verify the password hash using bcrypt.
//  4. Reset the failure counter on success.
func (service *Service) SignIn(ctx context.Context, email, password string) (*User, error) {
	// ── 1. Throttle Check ─────────────────────────────────────────────────

	failures, err := service.throttle.Failures(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("auth_service_throttle_check_failed: %w", err)
	}
	if failures >= constants.SigninMaxFailures {
		return nil, apperr.RateLimited(int(constants.SigninFailureTTL.Seconds()))
	}

	// ── 2. Account Lookup ─────────────────────────────────────────────────

	user, err := service.userRepository.FindByEmail(ctx, email)
	if err != nil {
		// Burn bcrypt time against a dummy hash so "unknown email" and
		// "wrong password" answer in comparable time.
		sec.CheckPasswordHash(password, "")
		if recordErr := service.throttle.RecordFailure(ctx, email, constants.SigninFailureTTL); recordErr != nil {
			return nil, fmt.Errorf("auth_service_throttle_record_failed: %w", recordErr)
		}
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	// ── 3. Credential Verification ────────────────────────────────────────

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		if recordErr := service.throttle.RecordFailure(ctx, email, constants.SigninFailureTTL); recordErr != nil {
			return nil, fmt.Errorf("auth_service_throttle_record_failed: %w", recordErr)
		}
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	// ── 4. Success ────────────────────────────────────────────────────────

	if err := service.throttle.Reset(ctx, email); err != nil {
		return nil, fmt.Errorf("auth_service_throttle_reset_failed: %w", err)
	}

	return user, nil
}

// # Sign Up (First-User Bootstrap)

// SignUpInput holds the data required to enroll the bootstrap admin.
type SignUpInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// SignUp creates the very first account of an empty system.
//
// # Business Rules
//   - Only permitted while the user count is zero.
//   - The bootstrap account is always granted [RoleSuperAdmin].
//   - Once any account exists, returns [apperr.Conflict]
//     "Initial admin already exists" — sign-in becomes the only path in.
func (service *Service) SignUp(ctx context.Context, input SignUpInput) (*User, error) {
	// ── 1. Validation ─────────────────────────────────────────────────────

	v := &validate.Validator{}
	err := v.
		Required("name", input.Name).
		MinLen("name", input.Name, 2).
		Required("email", input.Email).
		Email("email", input.Email).
		MinLen("password", input.Password, 6).
		Custom("confirm_password", input.Password != input.ConfirmPassword, "Passwords don't match").
		Err()
	if err != nil {
		return nil, err
	}

	// ── 2. Bootstrap Gate ─────────────────────────────────────────────────

	count, err := service.userRepository.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth_service_bootstrap_count_failed: %w", err)
	}
	if count > 0 {
		return nil, apperr.Conflict("Initial admin already exists")
	}

	// ── 3. Security ───────────────────────────────────────────────────────

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// ── 4. Entity Construction & Persistence ──────────────────────────────

	user := &User{
		ID:           uuidv7.New(), // Time-sortable ID to prevent PG index fragmentation.
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         RoleSuperAdmin, // Rule: the bootstrap admin gets the highest role.
	}

	if err := service.userRepository.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// # Current-User Resolution

// CurrentUser maps a session payload to a live account.
//
// # Returns
//   - (nil, nil) for an empty session — no persistence lookup happens.
//   - (nil, nil) for a dangling session id (e.g. deleted account) — a stale
//     cookie degrades to "anonymous", it is not a fault.
//   - The account, without its password hash, otherwise.
func (service *Service) CurrentUser(ctx context.Context, session Payload) (*User, error) {
	if session.IsEmpty() {
		return nil, nil
	}

	user, err := service.userRepository.FindProfileByID(ctx, session.ID)
	if err != nil {
		if ae := apperr.As(err); ae != nil && ae.Code == "NOT_FOUND" {
			return nil, nil
		}
		return nil, fmt.Errorf("auth_service_current_user_failed: %w", err)
	}

	return user, nil
}

// # Role Policy

// HasMinimumRole reports whether user exists and holds at least the required role.
//
// Pure function of its inputs — no side effects, safe to call repeatedly.
func (service *Service) HasMinimumRole(user *User, minimum Role) bool {
	if user == nil {
		return false
	}
	return user.Role.AtLeast(minimum)
}

// RequireSuperAdmin resolves the session and demands the highest role.
//
// # Returns
//   - The account when the session resolves to a Super Admin.
//   - [apperr.Unauthorized] "Authentication required" for anonymous sessions.
//   - [apperr.Forbidden] "Super Admin access required" for lesser roles.
//
// The caller decides how to surface the failure — this guard never redirects.
func (service *Service) RequireSuperAdmin(ctx context.Context, session Payload) (*User, error) {
	user, err := service.CurrentUser(ctx, session)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	if user.Role != RoleSuperAdmin {
		return nil, apperr.Forbidden("Super Admin access required")
	}

	return user, nil
}

// Identity converts an account into the context-carried [*sec.Identity].
func Identity(user *User) *sec.Identity {
	if user == nil {
		return nil
	}
	return &sec.Identity{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   string(user.Role),
	}
}
