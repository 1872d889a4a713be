// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vendara Contributors

package access

import (
	"context"
	"time"

	"github.com/vendara/vendara/internal/identity"
	"github.com/vendara/vendara/internal/rbac"
)

// Requirement describes what a protected operation demands: an optional
// role floor and an optional permission requirement.
type Requirement struct {
	// MinRole, when non-empty, requires the identity's role level to
	// meet or exceed this role's level.
	MinRole rbac.Role

	// Permissions, when non-empty, must be satisfied per RequireAll.
	Permissions []rbac.Permission

	// RequireAll demands every permission; otherwise any one suffices.
	RequireAll bool
}

// CanAccess is the single entry point for guarding an operation or view.
// The role floor is checked before permissions: role gating is cheaper
// and more fundamental, so it short-circuits the permission evaluation.
// With an empty Requirement the check passes.
func (e *Engine) CanAccess(ctx context.Context, user identity.Identity, req Requirement) CheckResult {
	start := time.Now()
	res := e.canAccess(user, req)
	recordCheck("can_access", time.Since(start), res.Granted())
	e.auditDecision(ctx, user, "can_access", res, time.Since(start))
	return res
}

func (e *Engine) canAccess(user identity.Identity, req Requirement) CheckResult {
	if req.MinRole != "" && user.Role.Level() < req.MinRole.Level() {
		return NewDeniedRole(user.Role, req.MinRole)
	}

	if len(req.Permissions) > 0 {
		var res CheckResult
		if req.RequireAll {
			res = e.hasAllPermissions(user, req.Permissions)
		} else {
			res = e.hasAnyPermission(user, req.Permissions)
		}
		if !res.Granted() {
			return res
		}
	}

	return NewGranted(user.Role, "access granted")
}
