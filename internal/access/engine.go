// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vendara Contributors

// Package access implements Vendara's authorization decisions: effective
// permission resolution per identity, the composite access gate, and the
// role assignment policy.
//
// Every check is a pure function of the immutable role registry and the
// identity snapshot passed in, so concurrent callers need no
// coordination. Denied access is a CheckResult value, never an error.
package access

import (
	"fmt"
	"time"

	"github.com/vendara/vendara/internal/identity"
	"github.com/vendara/vendara/internal/rbac"
)

// Engine resolves effective permissions and answers access queries.
type Engine struct {
	registry *rbac.Registry
	audit    *AuditLogger
}

// Option configures an Engine.
type Option func(*Engine)

// WithAudit attaches an audit logger; composite decisions and role
// assignment checks are recorded through it.
func WithAudit(logger *AuditLogger) Option {
	return func(e *Engine) {
		e.audit = logger
	}
}

// NewEngine creates an Engine over the given registry. A nil registry
// defaults to the shipped catalog.
func NewEngine(registry *rbac.Registry, opts ...Option) *Engine {
	if registry == nil {
		registry = rbac.DefaultRegistry()
	}
	e := &Engine{registry: registry}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the role registry the engine evaluates against.
func (e *Engine) Registry() *rbac.Registry {
	return e.registry
}

// HasPermission checks a single permission for the identity. Explicit
// denials short-circuit first; otherwise the permission is granted if it
// is in the role's effective set or the identity's custom grants.
func (e *Engine) HasPermission(user identity.Identity, perm rbac.Permission) CheckResult {
	start := time.Now()
	res := e.hasPermission(user, perm)
	recordCheck("has_permission", time.Since(start), res.Granted())
	return res
}

func (e *Engine) hasPermission(user identity.Identity, perm rbac.Permission) CheckResult {
	for _, denied := range user.DeniedPermissions {
		if denied == perm {
			return NewDenied(user.Role, fmt.Sprintf("permission %s explicitly denied", perm))
		}
	}
	if e.registry.HasRolePermission(user.Role, perm) {
		return NewGranted(user.Role, fmt.Sprintf("permission %s granted by role %s", perm, user.Role))
	}
	for _, custom := range user.CustomPermissions {
		if custom == perm {
			return NewGranted(user.Role, fmt.Sprintf("permission %s granted by custom grant", perm))
		}
	}
	return NewDenied(user.Role, fmt.Sprintf("permission %s not granted", perm))
}

// HasAnyPermission grants if at least one of the permissions passes
// HasPermission, returning the first passing result. An empty list
// denies: a gate that requires nothing of a set was misconfigured.
func (e *Engine) HasAnyPermission(user identity.Identity, perms []rbac.Permission) CheckResult {
	start := time.Now()
	res := e.hasAnyPermission(user, perms)
	recordCheck("has_any_permission", time.Since(start), res.Granted())
	return res
}

func (e *Engine) hasAnyPermission(user identity.Identity, perms []rbac.Permission) CheckResult {
	if len(perms) == 0 {
		return NewDenied(user.Role, "no permissions specified")
	}
	for _, p := range perms {
		if res := e.hasPermission(user, p); res.Granted() {
			return res
		}
	}
	return NewDenied(user.Role, "none of the required permissions granted")
}

// HasAllPermissions grants only if every permission passes. It fails
// fast on the first miss, naming that permission; use
// MissingPermissions for an exhaustive report. An empty list grants
// vacuously.
func (e *Engine) HasAllPermissions(user identity.Identity, perms []rbac.Permission) CheckResult {
	start := time.Now()
	res := e.hasAllPermissions(user, perms)
	recordCheck("has_all_permissions", time.Since(start), res.Granted())
	return res
}

func (e *Engine) hasAllPermissions(user identity.Identity, perms []rbac.Permission) CheckResult {
	for _, p := range perms {
		if res := e.hasPermission(user, p); !res.Granted() {
			return NewDenied(user.Role, fmt.Sprintf("missing permission %s", p))
		}
	}
	return NewGranted(user.Role, "all required permissions granted")
}

// EffectivePermissions returns the identity's final resolved set:
// role-derived union custom grants, minus explicit denials. It is
// pointwise consistent with HasPermission.
func (e *Engine) EffectivePermissions(user identity.Identity) rbac.PermissionSet {
	set := e.registry.RolePermissions(user.Role)
	for _, p := range user.CustomPermissions {
		set.Add(p)
	}
	for _, p := range user.DeniedPermissions {
		set.Remove(p)
	}
	return set
}

// MissingPermissions returns every permission from perms the identity
// lacks, in input order. This is the exhaustive diagnostic counterpart
// to HasAllPermissions' fail-fast contract.
func (e *Engine) MissingPermissions(user identity.Identity, perms []rbac.Permission) []rbac.Permission {
	var missing []rbac.Permission
	for _, p := range perms {
		if !e.hasPermission(user, p).Granted() {
			missing = append(missing, p)
		}
	}
	return missing
}
