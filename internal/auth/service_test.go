// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pressroom/internal/auth"
	"github.com/taibuivan/pressroom/internal/platform/apperr"
	"github.com/taibuivan/pressroom/internal/platform/constants"
	"github.com/taibuivan/pressroom/internal/platform/sec"
)

// fakeUserRepository is an in-memory UserRepository for service tests.
type fakeUserRepository struct {
	usersByEmail map[string]*auth.User
	usersByID    map[string]*auth.User
	totalCount   int
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		usersByEmail: map[string]*auth.User{},
		usersByID:    map[string]*auth.User{},
	}
}

func (repo *fakeUserRepository) add(user *auth.User) {
	repo.usersByEmail[user.Email] = user
	repo.usersByID[user.ID] = user
	repo.totalCount++
}

func (repo *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	user, ok := repo.usersByEmail[email]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (repo *fakeUserRepository) FindProfileByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := repo.usersByID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	profile := *user
	profile.PasswordHash = ""
	return &profile, nil
}

func (repo *fakeUserRepository) Count(_ context.Context) (int, error) {
	return repo.totalCount, nil
}

func (repo *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	if _, exists := repo.usersByEmail[user.Email]; exists {
		return apperr.Conflict("User with this email already exists")
	}
	repo.add(user)
	return nil
}

// fakeThrottle is an in-memory SigninThrottle for service tests.
type fakeThrottle struct {
	failures map[string]int
}

func newFakeThrottle() *fakeThrottle {
	return &fakeThrottle{failures: map[string]int{}}
}

func (throttle *fakeThrottle) Failures(_ context.Context, email string) (int, error) {
	return throttle.failures[email], nil
}

func (throttle *fakeThrottle) RecordFailure(_ context.Context, email string, _ time.Duration) error {
	throttle.failures[email]++
	return nil
}

func (throttle *fakeThrottle) Reset(_ context.Context, email string) error {
	delete(throttle.failures, email)
	return nil
}

// seedUser hashes the password and registers an account in the fake repository.
func seedUser(t *testing.T, repo *fakeUserRepository, id, email, password string, role auth.Role) *auth.User {
	t.Helper()

	hash, err := sec.HashPassword(password)
	require.NoError(t, err)

	user := &auth.User{
		ID:           id,
		Name:         "Test User",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	repo.add(user)
	return user
}

/*
TestService_SignIn_Success verifies valid credentials return the account and
reset the failure counter.
*/
func TestService_SignIn_Success(t *testing.T) {
	repo := newFakeUserRepository()
	throttle := newFakeThrottle()
	seedUser(t, repo, "user-1", "tai@pressroom.app", "hunter2-secret", auth.RoleSuperAdmin)
	throttle.failures["tai@pressroom.app"] = 3

	service := auth.NewService(repo, throttle)

	user, err := service.SignIn(context.Background(), "tai@pressroom.app", "hunter2-secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)

	// Success wipes the lockout counter.
	assert.Zero(t, throttle.failures["tai@pressroom.app"])
}

/*
TestService_SignIn_UniformFailure verifies unknown email and wrong password
answer with the exact same error.
*/
func TestService_SignIn_UniformFailure(t *testing.T) {
	repo := newFakeUserRepository()
	seedUser(t, repo, "user-1", "tai@pressroom.app", "hunter2-secret", auth.RoleSuperAdmin)

	service := auth.NewService(repo, newFakeThrottle())

	_, unknownEmailErr := service.SignIn(context.Background(), "nobody@pressroom.app", "hunter2-secret")
	_, wrongPasswordErr := service.SignIn(context.Background(), "tai@pressroom.app", "wrong-password")

	require.Error(t, unknownEmailErr)
	require.Error(t, wrongPasswordErr)

	first := apperr.As(unknownEmailErr)
	second := apperr.As(wrongPasswordErr)
	require.NotNil(t, first)
	require.NotNil(t, second)

	// Identical code AND message — no account enumeration.
	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, first.Message, second.Message)
	assert.Equal(t, "Invalid email or password", first.Message)
}

/*
TestService_SignIn_Lockout verifies the failure budget ends in RATE_LIMITED.
*/
func TestService_SignIn_Lockout(t *testing.T) {
	repo := newFakeUserRepository()
	throttle := newFakeThrottle()
	seedUser(t, repo, "user-1", "tai@pressroom.app", "hunter2-secret", auth.RoleSuperAdmin)

	service := auth.NewService(repo, throttle)

	for i := 0; i < constants.SigninMaxFailures; i++ {
		_, err := service.SignIn(context.Background(), "tai@pressroom.app", "wrong-password")
		require.Error(t, err)
	}

	// Even the correct password is refused while locked out.
	_, err := service.SignIn(context.Background(), "tai@pressroom.app", "hunter2-secret")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "RATE_LIMITED", ae.Code)
}

/*
TestService_SignUp_Bootstrap verifies the first account is created as Super Admin.
*/
func TestService_SignUp_Bootstrap(t *testing.T) {
	repo := newFakeUserRepository()
	service := auth.NewService(repo, newFakeThrottle())

	user, err := service.SignUp(context.Background(), auth.SignUpInput{
		Name:            "Tai",
		Email:           "tai@pressroom.app",
		Password:        "hunter2-secret",
		ConfirmPassword: "hunter2-secret",
	})
	require.NoError(t, err)

	assert.Equal(t, auth.RoleSuperAdmin, user.Role)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "hunter2-secret", user.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("hunter2-secret", user.PasswordHash))
}

/*
TestService_SignUp_RefusedOnceOccupied verifies the bootstrap window closes
permanently after the first account, deleted or not.
*/
func TestService_SignUp_RefusedOnceOccupied(t *testing.T) {
	repo := newFakeUserRepository()
	seedUser(t, repo, "user-1", "first@pressroom.app", "hunter2-secret", auth.RoleSuperAdmin)

	service := auth.NewService(repo, newFakeThrottle())

	_, err := service.SignUp(context.Background(), auth.SignUpInput{
		Name:            "Second",
		Email:           "second@pressroom.app",
		Password:        "hunter2-secret",
		ConfirmPassword: "hunter2-secret",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
	assert.Equal(t, "Initial admin already exists", ae.Message)
}

/*
TestService_SignUp_Validation exercises the field rules.
*/
func TestService_SignUp_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input auth.SignUpInput
	}{
		{"short_name", auth.SignUpInput{Name: "T", Email: "t@x.io", Password: "secret1", ConfirmPassword: "secret1"}},
		{"bad_email", auth.SignUpInput{Name: "Tai", Email: "not-an-email", Password: "secret1", ConfirmPassword: "secret1"}},
		{"short_password", auth.SignUpInput{Name: "Tai", Email: "t@x.io", Password: "abc", ConfirmPassword: "abc"}},
		{"mismatched_confirm", auth.SignUpInput{Name: "Tai", Email: "t@x.io", Password: "secret1", ConfirmPassword: "secret2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := auth.NewService(newFakeUserRepository(), newFakeThrottle())

			_, err := service.SignUp(context.Background(), tt.input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}

/*
TestService_CurrentUser covers the resolver's three outcomes: empty session,
dangling session, and live account.
*/
func TestService_CurrentUser(t *testing.T) {
	repo := newFakeUserRepository()
	seedUser(t, repo, "user-1", "tai@pressroom.app", "hunter2-secret", auth.RoleEditor)

	service := auth.NewService(repo, newFakeThrottle())

	t.Run("empty_session", func(t *testing.T) {
		user, err := service.CurrentUser(context.Background(), auth.Payload{})
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("dangling_session", func(t *testing.T) {
		// The account behind the cookie was deleted — degrade to anonymous.
		user, err := service.CurrentUser(context.Background(), auth.Payload{ID: "deleted-user"})
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("live_account", func(t *testing.T) {
		user, err := service.CurrentUser(context.Background(), auth.Payload{ID: "user-1"})
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "tai@pressroom.app", user.Email)

		// The hash never leaves the sign-in path.
		assert.Empty(t, user.PasswordHash)
	})
}

/*
TestService_HasMinimumRole verifies the pure role-policy predicate.
*/
func TestService_HasMinimumRole(t *testing.T) {
	service := auth.NewService(newFakeUserRepository(), newFakeThrottle())

	editor := &auth.User{ID: "user-1", Role: auth.RoleEditor}

	assert.True(t, service.HasMinimumRole(editor, auth.RoleViewer))
	assert.True(t, service.HasMinimumRole(editor, auth.RoleEditor))
	assert.False(t, service.HasMinimumRole(editor, auth.RoleSuperAdmin))
	assert.False(t, service.HasMinimumRole(nil, auth.RoleViewer))
}

/*
TestService_RequireSuperAdmin covers the guard's three outcomes.
*/
func TestService_RequireSuperAdmin(t *testing.T) {
	repo := newFakeUserRepository()
	seedUser(t, repo, "admin-1", "admin@pressroom.app", "hunter2-secret", auth.RoleSuperAdmin)
	seedUser(t, repo, "editor-1", "editor@pressroom.app", "hunter2-secret", auth.RoleEditor)

	service := auth.NewService(repo, newFakeThrottle())

	t.Run("anonymous", func(t *testing.T) {
		_, err := service.RequireSuperAdmin(context.Background(), auth.Payload{})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "UNAUTHORIZED", ae.Code)
		assert.Equal(t, "Authentication required", ae.Message)
	})

	t.Run("insufficient_role", func(t *testing.T) {
		_, err := service.RequireSuperAdmin(context.Background(), auth.Payload{ID: "editor-1"})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "FORBIDDEN", ae.Code)
		assert.Equal(t, "Super Admin access required", ae.Message)
	})

	t.Run("super_admin", func(t *testing.T) {
		user, err := service.RequireSuperAdmin(context.Background(), auth.Payload{ID: "admin-1"})
		require.NoError(t, err)
		assert.Equal(t, "admin-1", user.ID)
	})
}
