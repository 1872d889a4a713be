// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vendara Contributors

package config

import (
	"github.com/samber/oops"

	"github.com/vendara/vendara/internal/identity"
	"github.com/vendara/vendara/internal/rbac"
)

// SeedUsers converts the configured user entries into seed users,
// falling back to the default demo table when none are configured.
func (c *Config) SeedUsers() ([]identity.SeedUser, error) {
	if len(c.Users) == 0 {
		return identity.DefaultSeedUsers(), nil
	}

	out := make([]identity.SeedUser, 0, len(c.Users))
	for _, entry := range c.Users {
		role, err := rbac.ParseRole(entry.Role)
		if err != nil {
			return nil, oops.In("config").
				Code("INVALID_SEED_USER").
				With("username", entry.Username).
				Wrap(err)
		}
		custom, err := parsePermissions(entry.Custom)
		if err != nil {
			return nil, oops.In("config").
				Code("INVALID_SEED_USER").
				With("username", entry.Username).
				Wrap(err)
		}
		denied, err := parsePermissions(entry.Denied)
		if err != nil {
			return nil, oops.In("config").
				Code("INVALID_SEED_USER").
				With("username", entry.Username).
				Wrap(err)
		}
		out = append(out, identity.SeedUser{
			Username: entry.Username,
			Password: entry.Password,
			Role:     role,
			Custom:   custom,
			Denied:   denied,
		})
	}
	return out, nil
}

func parsePermissions(raw []string) ([]rbac.Permission, error) {
	perms := make([]rbac.Permission, 0, len(raw))
	for _, s := range raw {
		p, err := rbac.ParsePermission(s)
		if err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, nil
}
