// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vendara Contributors

// Package identity supplies the identity records the access engine
// evaluates: id, username, role, and per-identity permission overrides.
// The Store is an in-memory mock user table; Vendara deployments replace
// it with a real identity provider behind the same interface.
package identity

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/vendara/vendara/internal/rbac"
)

// Username validation constraints.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
)

// usernameRegex matches usernames that:
// - Start with a letter (a-z, A-Z)
// - Contain only letters, numbers, and underscores
var usernameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// Identity is a resolved user record as seen by the access engine.
// It is passed by value: the engine treats it as an immutable snapshot,
// and mutation happens only through the Store's administration methods.
type Identity struct {
	ID       ulid.ULID
	Username string
	Role     rbac.Role

	// CustomPermissions are granted to this identity beyond its role.
	CustomPermissions []rbac.Permission

	// DeniedPermissions are stripped regardless of role or custom grant.
	DeniedPermissions []rbac.Permission

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Fingerprint returns a stable key over everything that affects
// authorization: id, role, and both permission override lists. Session
// memoization uses it to detect identity swaps and permission edits.
func (id Identity) Fingerprint() string {
	var b strings.Builder
	b.WriteString(id.ID.String())
	b.WriteByte('|')
	b.WriteString(string(id.Role))
	b.WriteByte('|')
	b.WriteString(joinSorted(id.CustomPermissions))
	b.WriteByte('|')
	b.WriteString(joinSorted(id.DeniedPermissions))
	return b.String()
}

func joinSorted(perms []rbac.Permission) string {
	strs := make([]string, len(perms))
	for i, p := range perms {
		strs[i] = string(p)
	}
	sort.Strings(strs)
	return strings.Join(strs, ",")
}

// clone returns a deep copy so callers never share permission slices
// with the store's internal record.
func (id Identity) clone() Identity {
	out := id
	out.CustomPermissions = append([]rbac.Permission(nil), id.CustomPermissions...)
	out.DeniedPermissions = append([]rbac.Permission(nil), id.DeniedPermissions...)
	return out
}

// ValidateUsername validates a username against rules.
// Username requirements:
// - Length: MinUsernameLength to MaxUsernameLength characters
// - Starts with a letter, contains only letters, numbers, underscores
func ValidateUsername(username string) error {
	if len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
		return oops.Code("IDENTITY_INVALID_USERNAME").
			With("username", username).
			Errorf("username must be %d-%d characters", MinUsernameLength, MaxUsernameLength)
	}
	if !usernameRegex.MatchString(username) {
		return oops.Code("IDENTITY_INVALID_USERNAME").
			With("username", username).
			Errorf("username must start with a letter and contain only letters, numbers, and underscores")
	}
	return nil
}
