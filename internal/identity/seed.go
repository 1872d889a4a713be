// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vendara Contributors

package identity

import (
	"context"

	"github.com/samber/oops"

	"github.com/vendara/vendara/internal/rbac"
)

// SeedUser defines a demo account installed into a fresh Store.
type SeedUser struct {
	Username string
	Password string
	Role     rbac.Role
	Custom   []rbac.Permission
	Denied   []rbac.Permission
}

// DefaultSeedUsers returns the demo user table: one account per role,
// plus overrides that exercise custom grants and explicit denials.
func DefaultSeedUsers() []SeedUser {
	return []SeedUser{
		{
			Username: "cashier",
			Password: "cashier123",
			Role:     rbac.RoleUser,
			// Trusted cashier: may create products despite the base role.
			Custom: []rbac.Permission{rbac.PermProductCreate},
		},
		{
			Username: "shiftlead",
			Password: "shiftlead123",
			Role:     rbac.RoleModerator,
			// Content deletion withheld pending training.
			Denied: []rbac.Permission{rbac.PermContentDelete},
		},
		{
			Username: "manager",
			Password: "manager123",
			Role:     rbac.RoleAdmin,
		},
		{
			Username: "owner",
			Password: "owner123",
			Role:     rbac.RoleSuperAdmin,
		},
	}
}

// Seed installs the given users into the store.
func Seed(ctx context.Context, store *Store, users []SeedUser) error {
	for _, u := range users {
		ident, err := store.Create(ctx, u.Username, u.Password, u.Role)
		if err != nil {
			return oops.Code("IDENTITY_SEED_FAILED").
				With("username", u.Username).
				Wrap(err)
		}
		for _, p := range u.Custom {
			if _, err := store.GrantPermission(ctx, ident.ID, p); err != nil {
				return oops.Code("IDENTITY_SEED_FAILED").
					With("username", u.Username).
					Wrap(err)
			}
		}
		for _, p := range u.Denied {
			if _, err := store.DenyPermission(ctx, ident.ID, p); err != nil {
				return oops.Code("IDENTITY_SEED_FAILED").
					With("username", u.Username).
					Wrap(err)
			}
		}
	}
	return nil
}
