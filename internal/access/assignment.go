// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vendara Contributors

package access

import (
	"context"
	"fmt"
	"time"

	"github.com/vendara/vendara/internal/identity"
	"github.com/vendara/vendara/internal/rbac"
)

// CanAssignRole decides whether the assigner may assign the target role
// to another identity. Only the maximal role may assign roles at all,
// and it may never hand out that maximal role, so runtime escalation to
// the top tier is impossible.
func (e *Engine) CanAssignRole(ctx context.Context, assigner identity.Identity, target rbac.Role) CheckResult {
	start := time.Now()
	res := e.canAssignRole(assigner, target)
	recordCheck("can_assign_role", time.Since(start), res.Granted())
	e.auditDecision(ctx, assigner, "can_assign_role", res, time.Since(start))
	return res
}

func (e *Engine) canAssignRole(assigner identity.Identity, target rbac.Role) CheckResult {
	top := rbac.MaxRole()
	if assigner.Role != top {
		return NewDenied(assigner.Role,
			fmt.Sprintf("only %s may assign roles", top))
	}
	if target == top {
		return NewDenied(assigner.Role,
			fmt.Sprintf("role %s may not be assigned at runtime", top))
	}
	if !target.Valid() {
		return NewDenied(assigner.Role,
			fmt.Sprintf("unknown role %s", target))
	}
	return NewGranted(assigner.Role,
		fmt.Sprintf("role %s may assign role %s", top, target))
}

// AssignableRoles returns every role the assigner may hand out, in
// ascending level order. Empty unless the assigner holds the maximal
// role; the maximal role itself is never assignable.
func (e *Engine) AssignableRoles(assigner identity.Identity) []rbac.Role {
	top := rbac.MaxRole()
	if assigner.Role != top {
		return nil
	}
	var out []rbac.Role
	for _, r := range rbac.AllRoles() {
		if r != top {
			out = append(out, r)
		}
	}
	return out
}
