// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vendara Contributors

package access_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vendara/vendara/internal/access"
	"github.com/vendara/vendara/internal/rbac"
)

func TestCanAssignRole(t *testing.T) {
	engine := access.NewEngine(nil)
	ctx := context.Background()

	owner := testUser(rbac.RoleSuperAdmin)
	admin := testUser(rbac.RoleAdmin)

	// Only the top role may assign
	assert.True(t, engine.CanAssignRole(ctx, owner, rbac.RoleAdmin).Granted())
	assert.True(t, engine.CanAssignRole(ctx, owner, rbac.RoleUser).Granted())

	res := engine.CanAssignRole(ctx, admin, rbac.RoleUser)
	assert.False(t, res.Granted())
	assert.Contains(t, res.Reason, "only super_admin may assign")

	for _, role := range rbac.AllRoles() {
		assert.False(t, engine.CanAssignRole(ctx, admin, role).Granted())
		assert.False(t, engine.CanAssignRole(ctx, testUser(rbac.RoleModerator), role).Granted())
	}

	// The top role is never assignable, even by its own holders
	res = engine.CanAssignRole(ctx, owner, rbac.RoleSuperAdmin)
	assert.False(t, res.Granted())
	assert.Contains(t, res.Reason, "may not be assigned at runtime")

	// Unknown target roles are denied, not errors
	assert.False(t, engine.CanAssignRole(ctx, owner, rbac.Role("intern")).Granted())
}

func TestAssignableRoles(t *testing.T) {
	engine := access.NewEngine(nil)

	owner := testUser(rbac.RoleSuperAdmin)
	assert.Equal(t, []rbac.Role{rbac.RoleUser, rbac.RoleModerator, rbac.RoleAdmin},
		engine.AssignableRoles(owner))

	assert.Empty(t, engine.AssignableRoles(testUser(rbac.RoleAdmin)))
	assert.Empty(t, engine.AssignableRoles(testUser(rbac.RoleUser)))
}
