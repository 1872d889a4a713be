// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vendara Contributors

// Package rbac defines the role and permission model for Vendara.
//
// Roles form a totally ordered hierarchy (user < moderator < admin <
// super_admin). Permissions are atomic capability tokens namespaced as
// "<group>:<action>" (e.g. "product:create"). The Registry is the single
// source of truth for role definitions, inheritance, and effective
// permission sets; it is immutable after construction.
package rbac

import (
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/samber/oops"
)

// Permission is an atomic capability token in "<group>:<action>" format.
// The catalog is closed: only the constants below are valid.
type Permission string

// Product permissions.
const (
	PermProductCreate Permission = "product:create"
	PermProductRead   Permission = "product:read"
	PermProductUpdate Permission = "product:update"
	PermProductDelete Permission = "product:delete"
)

// Order permissions.
const (
	PermOrderCreate Permission = "order:create"
	PermOrderRead   Permission = "order:read"
	PermOrderUpdate Permission = "order:update"
	PermOrderDelete Permission = "order:delete"
	PermOrderRefund Permission = "order:refund"
)

// Customer permissions.
const (
	PermCustomerCreate Permission = "customer:create"
	PermCustomerRead   Permission = "customer:read"
	PermCustomerUpdate Permission = "customer:update"
	PermCustomerDelete Permission = "customer:delete"
)

// User administration permissions.
const (
	PermUserView       Permission = "user:view"
	PermUserManage     Permission = "user:manage"
	PermUserAssignRole Permission = "user:assign_role"
)

// Content moderation permissions.
const (
	PermContentModerate Permission = "content:moderate"
	PermContentDelete   Permission = "content:delete"
)

// Reporting permissions.
const (
	PermReportView   Permission = "report:view"
	PermReportExport Permission = "report:export"
)

// System permissions.
const (
	PermSystemSettings Permission = "system:settings"
	PermSystemAudit    Permission = "system:audit"
)

// allPermissions lists the complete catalog in group order.
var allPermissions = []Permission{
	PermProductCreate, PermProductRead, PermProductUpdate, PermProductDelete,
	PermOrderCreate, PermOrderRead, PermOrderUpdate, PermOrderDelete, PermOrderRefund,
	PermCustomerCreate, PermCustomerRead, PermCustomerUpdate, PermCustomerDelete,
	PermUserView, PermUserManage, PermUserAssignRole,
	PermContentModerate, PermContentDelete,
	PermReportView, PermReportExport,
	PermSystemSettings, PermSystemAudit,
}

var permissionIndex = func() map[Permission]struct{} {
	idx := make(map[Permission]struct{}, len(allPermissions))
	for _, p := range allPermissions {
		idx[p] = struct{}{}
	}
	return idx
}()

// AllPermissions returns the full permission catalog.
// The returned slice is a copy and safe to modify.
func AllPermissions() []Permission {
	out := make([]Permission, len(allPermissions))
	copy(out, allPermissions)
	return out
}

// Valid reports whether p is part of the closed catalog.
func (p Permission) Valid() bool {
	_, ok := permissionIndex[p]
	return ok
}

// Group returns the namespace portion of the permission ("product" for
// "product:create"). Returns the whole string if no separator is present.
func (p Permission) Group() string {
	group, _, _ := strings.Cut(string(p), ":")
	return group
}

// Action returns the action portion of the permission ("create" for
// "product:create"). Returns empty if no separator is present.
func (p Permission) Action() string {
	_, action, _ := strings.Cut(string(p), ":")
	return action
}

func (p Permission) String() string {
	return string(p)
}

// ParsePermission converts a raw string into a catalog Permission.
// Unknown strings are rejected so that invalid permissions cannot leak
// past configuration or CLI boundaries.
func ParsePermission(s string) (Permission, error) {
	p := Permission(s)
	if !p.Valid() {
		return "", oops.In("rbac").
			Code("UNKNOWN_PERMISSION").
			With("permission", s).
			Errorf("unknown permission %q", s)
	}
	return p, nil
}

// PermissionsInGroup returns every catalog permission in the given group.
func PermissionsInGroup(group string) []Permission {
	var out []Permission
	for _, p := range allPermissions {
		if p.Group() == group {
			out = append(out, p)
		}
	}
	return out
}

// PermissionsMatching returns catalog permissions matching a glob pattern
// with ':' as the separator (e.g. "product:*" or "*:delete").
func PermissionsMatching(pattern string) ([]Permission, error) {
	g, err := glob.Compile(pattern, ':')
	if err != nil {
		return nil, oops.In("rbac").
			Code("INVALID_PERMISSION_PATTERN").
			With("pattern", pattern).
			Wrap(err)
	}
	var out []Permission
	for _, p := range allPermissions {
		if g.Match(string(p)) {
			out = append(out, p)
		}
	}
	return out, nil
}

// PermissionSet is an unordered set of permissions.
type PermissionSet map[Permission]struct{}

// NewPermissionSet builds a set from the given permissions, deduplicating.
func NewPermissionSet(perms ...Permission) PermissionSet {
	s := make(PermissionSet, len(perms))
	for _, p := range perms {
		s[p] = struct{}{}
	}
	return s
}

// Has reports whether the set contains p.
func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// Add inserts p into the set.
func (s PermissionSet) Add(p Permission) {
	s[p] = struct{}{}
}

// Remove deletes p from the set.
func (s PermissionSet) Remove(p Permission) {
	delete(s, p)
}

// Union merges other into a new set, leaving both inputs untouched.
func (s PermissionSet) Union(other PermissionSet) PermissionSet {
	out := make(PermissionSet, len(s)+len(other))
	for p := range s {
		out[p] = struct{}{}
	}
	for p := range other {
		out[p] = struct{}{}
	}
	return out
}

// Clone returns a copy of the set.
func (s PermissionSet) Clone() PermissionSet {
	out := make(PermissionSet, len(s))
	for p := range s {
		out[p] = struct{}{}
	}
	return out
}

// Sorted returns the set's permissions in lexical order for stable output.
func (s PermissionSet) Sorted() []Permission {
	out := make([]Permission, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
