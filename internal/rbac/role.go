// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vendara Contributors

package rbac

import "github.com/samber/oops"

// Role is a named tier in the access hierarchy.
type Role string

// The closed role set, ordered by hierarchy level.
const (
	RoleUser       Role = "user"
	RoleModerator  Role = "moderator"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// roleLevels maps each role to its hierarchy level. Levels are strictly
// increasing and used only for "at least" comparisons.
var roleLevels = map[Role]int{
	RoleUser:       1,
	RoleModerator:  2,
	RoleAdmin:      3,
	RoleSuperAdmin: 4,
}

// AllRoles returns every role in ascending level order.
func AllRoles() []Role {
	return []Role{RoleUser, RoleModerator, RoleAdmin, RoleSuperAdmin}
}

// Valid reports whether r is part of the closed role set.
func (r Role) Valid() bool {
	_, ok := roleLevels[r]
	return ok
}

// Level returns the role's hierarchy level, or 0 for an unknown role.
// An unknown role therefore never satisfies any role floor.
func (r Role) Level() int {
	return roleLevels[r]
}

// AtLeast reports whether r's level meets or exceeds other's level.
func (r Role) AtLeast(other Role) bool {
	return r.Level() >= other.Level()
}

// Higher reports whether r's level strictly exceeds other's level.
func (r Role) Higher(other Role) bool {
	return r.Level() > other.Level()
}

// NextHigher returns the role with the smallest level strictly above r.
// Returns false if r is already the maximal role or unknown.
func (r Role) NextHigher() (Role, bool) {
	level := r.Level()
	if level == 0 {
		return "", false
	}
	var next Role
	nextLevel := 0
	for candidate, cl := range roleLevels {
		if cl > level && (nextLevel == 0 || cl < nextLevel) {
			next = candidate
			nextLevel = cl
		}
	}
	if nextLevel == 0 {
		return "", false
	}
	return next, true
}

func (r Role) String() string {
	return string(r)
}

// MaxRole returns the role with the highest hierarchy level.
func MaxRole() Role {
	var top Role
	for r, level := range roleLevels {
		if level > top.Level() {
			top = r
		}
	}
	return top
}

// ParseRole converts a raw string into a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", oops.In("rbac").
			Code("UNKNOWN_ROLE").
			With("role", s).
			Errorf("unknown role %q", s)
	}
	return r, nil
}
