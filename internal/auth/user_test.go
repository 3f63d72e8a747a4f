// Copyright (c) 2026 Pressroom. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pressroom/internal/auth"
)

/*
TestRole_AtLeast exercises the full ordering Viewer < Editor < SuperAdmin.
*/
func TestRole_AtLeast(t *testing.T) {
	tests := []struct {
		name     string
		role     auth.Role
		minimum  auth.Role
		expected bool
	}{
		{"viewer_meets_viewer", auth.RoleViewer, auth.RoleViewer, true},
		{"viewer_below_editor", auth.RoleViewer, auth.RoleEditor, false},
		{"viewer_below_super_admin", auth.RoleViewer, auth.RoleSuperAdmin, false},
		{"editor_above_viewer", auth.RoleEditor, auth.RoleViewer, true},
		{"editor_meets_editor", auth.RoleEditor, auth.RoleEditor, true},
		{"editor_below_super_admin", auth.RoleEditor, auth.RoleSuperAdmin, false},
		{"super_admin_above_viewer", auth.RoleSuperAdmin, auth.RoleViewer, true},
		{"super_admin_above_editor", auth.RoleSuperAdmin, auth.RoleEditor, true},
		{"super_admin_meets_super_admin", auth.RoleSuperAdmin, auth.RoleSuperAdmin, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.role.AtLeast(tt.minimum))
		})
	}
}

/*
TestRole_AtLeast_UnknownRole verifies unrecognized roles never satisfy any minimum.
*/
func TestRole_AtLeast_UnknownRole(t *testing.T) {
	unknown := auth.Role("intern")

	assert.False(t, unknown.AtLeast(auth.RoleViewer))
	assert.False(t, unknown.AtLeast(auth.RoleEditor))
	assert.False(t, unknown.AtLeast(auth.RoleSuperAdmin))
}

/*
TestRole_IsValid checks the closed set of known roles.
*/
func TestRole_IsValid(t *testing.T) {
	assert.True(t, auth.RoleViewer.IsValid())
	assert.True(t, auth.RoleEditor.IsValid())
	assert.True(t, auth.RoleSuperAdmin.IsValid())
	assert.False(t, auth.Role("").IsValid())
	assert.False(t, auth.Role("admin").IsValid())
}

/*
TestUser_JSON_HidesSecrets verifies the password hash never serializes.
*/
func TestUser_JSON_HidesSecrets(t *testing.T) {
	user := &auth.User{
		ID:           "user-123",
		Name:         "Tai",
		Email:        "tai@pressroom.app",
		PasswordHash: "$2a$10$secret",
		Role:         auth.RoleSuperAdmin,
	}

	encoded, err := json.Marshal(user)
	require.NoError(t, err)

	assert.NotContains(t, string(encoded), "secret")
	assert.NotContains(t, string(encoded), "password_hash")
	assert.Contains(t, string(encoded), "tai@pressroom.app")
}
