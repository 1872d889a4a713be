// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vendara Contributors

package rbac

import (
	"sort"

	"github.com/samber/oops"
)

// RoleDefinition describes a single role: display metadata, the
// permissions it grants explicitly, and the roles it inherits from.
type RoleDefinition struct {
	Role        Role
	Name        string
	Description string
	Permissions []Permission
	Inherits    []Role
}

// Registry is the immutable source of truth for role definitions and
// their effective permission sets. Construct it once at startup and pass
// it by reference; it requires no synchronization for concurrent reads.
type Registry struct {
	defs      map[Role]RoleDefinition
	effective map[Role]PermissionSet
}

// NewRegistry validates the definitions and precomputes effective
// permission sets. It rejects unknown roles or permissions, references
// to undefined parents, and inheritance cycles. These are configuration
// bugs and should fail at startup, not during a permission check.
func NewRegistry(defs []RoleDefinition) (*Registry, error) {
	errb := oops.In("rbac").Code("INVALID_ROLE_CATALOG")

	byRole := make(map[Role]RoleDefinition, len(defs))
	for _, def := range defs {
		if !def.Role.Valid() {
			return nil, errb.With("role", def.Role).Errorf("unknown role %q in catalog", def.Role)
		}
		if _, dup := byRole[def.Role]; dup {
			return nil, errb.With("role", def.Role).Errorf("role %q defined twice", def.Role)
		}
		for _, p := range def.Permissions {
			if !p.Valid() {
				return nil, errb.
					With("role", def.Role).
					With("permission", p).
					Errorf("role %q grants unknown permission %q", def.Role, p)
			}
		}
		byRole[def.Role] = def
	}

	for _, def := range defs {
		for _, parent := range def.Inherits {
			if _, ok := byRole[parent]; !ok {
				return nil, errb.
					With("role", def.Role).
					With("inherits", parent).
					Errorf("role %q inherits undefined role %q", def.Role, parent)
			}
		}
	}

	r := &Registry{
		defs:      byRole,
		effective: make(map[Role]PermissionSet, len(byRole)),
	}
	for role := range byRole {
		set, err := r.resolve(role, make(map[Role]bool))
		if err != nil {
			return nil, err
		}
		r.effective[role] = set
	}
	return r, nil
}

// resolve walks the inheritance graph from role, unioning explicit
// permissions. The visiting set guards against cycles; revisiting a role
// already on the current path is a misconfigured catalog.
func (r *Registry) resolve(role Role, visiting map[Role]bool) (PermissionSet, error) {
	if visiting[role] {
		return nil, oops.In("rbac").
			Code("INHERITANCE_CYCLE").
			With("role", role).
			Errorf("inheritance cycle detected at role %q", role)
	}
	visiting[role] = true
	defer delete(visiting, role)

	def, ok := r.defs[role]
	if !ok {
		return NewPermissionSet(), nil
	}

	set := NewPermissionSet(def.Permissions...)
	for _, parent := range def.Inherits {
		inherited, err := r.resolve(parent, visiting)
		if err != nil {
			return nil, err
		}
		set = set.Union(inherited)
	}
	return set, nil
}

// Definition returns the definition for a role. The second return is
// false for roles absent from the catalog.
func (r *Registry) Definition(role Role) (RoleDefinition, bool) {
	def, ok := r.defs[role]
	return def, ok
}

// Roles returns all definitions in ascending level order.
func (r *Registry) Roles() []RoleDefinition {
	out := make([]RoleDefinition, 0, len(r.defs))
	for _, def := range r.defs {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Role.Level() < out[j].Role.Level() })
	return out
}

// RolePermissions returns the effective permission set for a role,
// inheritance resolved and deduplicated. Unknown roles yield an empty
// set, never an error: a bad role must not break an unrelated check.
// The returned set is a copy and safe to modify.
func (r *Registry) RolePermissions(role Role) PermissionSet {
	set, ok := r.effective[role]
	if !ok {
		return NewPermissionSet()
	}
	return set.Clone()
}

// HasRolePermission reports whether the role's effective set contains p.
// This is the allocation-free point query used by the resolution engine.
func (r *Registry) HasRolePermission(role Role, p Permission) bool {
	return r.effective[role].Has(p)
}
