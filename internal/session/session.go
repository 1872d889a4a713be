// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vendara Contributors

// Package session binds a resolved identity to the access engine and
// exposes the memoized, ergonomic query surface consumed by routing and
// UI gating. It carries no framework reactivity: any caller that holds
// a *Session can query it.
package session

import (
	"context"
	"sync"

	"github.com/vendara/vendara/internal/access"
	"github.com/vendara/vendara/internal/identity"
	"github.com/vendara/vendara/internal/rbac"
)

// Source identifies where an effective permission came from.
type Source string

// Permission sources for audit/debug display.
const (
	SourceRole   Source = "role"
	SourceCustom Source = "custom"
)

// Session binds one identity to the engine. Derived views (effective
// permissions, sources) are computed lazily and memoized; the memo is
// keyed on the identity fingerprint so swapping identities (logout,
// login as someone else) or editing permission lists recomputes instead
// of serving stale results.
//
// Safe for concurrent use: multiple UI components may query during a
// single render pass.
type Session struct {
	engine *access.Engine

	mu        sync.Mutex
	ident     identity.Identity
	memoKey   string
	effective rbac.PermissionSet
	sources   map[rbac.Permission]Source
}

// New binds an identity to the engine.
func New(engine *access.Engine, ident identity.Identity) *Session {
	return &Session{engine: engine, ident: ident}
}

// Identity returns the bound identity snapshot.
func (s *Session) Identity() identity.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ident
}

// SetIdentity swaps the bound identity. Memoized views are invalidated
// by the fingerprint change on next query.
func (s *Session) SetIdentity(ident identity.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ident = ident
}

// memoize recomputes derived views when the identity fingerprint has
// changed since the last computation. Callers must hold s.mu.
func (s *Session) memoize() {
	key := s.ident.Fingerprint()
	if key == s.memoKey {
		return
	}

	s.effective = s.engine.EffectivePermissions(s.ident)
	s.sources = make(map[rbac.Permission]Source, len(s.effective))
	rolePerms := s.engine.Registry().RolePermissions(s.ident.Role)
	for p := range s.effective {
		if rolePerms.Has(p) {
			s.sources[p] = SourceRole
		} else {
			s.sources[p] = SourceCustom
		}
	}
	s.memoKey = key
}

// EffectivePermissions returns the identity's resolved permission set in
// stable lexical order.
func (s *Session) EffectivePermissions() []rbac.Permission {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memoize()
	return s.effective.Sorted()
}

// PermissionCount returns the size of the effective permission set.
func (s *Session) PermissionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memoize()
	return len(s.effective)
}

// Sources maps each effective permission to where it came from (role or
// custom grant), for audit and debug display. The returned map is a
// copy.
func (s *Session) Sources() map[rbac.Permission]Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memoize()
	out := make(map[rbac.Permission]Source, len(s.sources))
	for p, src := range s.sources {
		out[p] = src
	}
	return out
}

// RoleName returns the display name of the bound identity's role, or
// the raw role string if the role is absent from the catalog.
func (s *Session) RoleName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if def, ok := s.engine.Registry().Definition(s.ident.Role); ok {
		return def.Name
	}
	return string(s.ident.Role)
}

// RoleDescription returns the description of the bound identity's role.
func (s *Session) RoleDescription() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if def, ok := s.engine.Registry().Definition(s.ident.Role); ok {
		return def.Description
	}
	return ""
}

// RoleLevel returns the hierarchy level of the bound identity's role.
func (s *Session) RoleLevel() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ident.Role.Level()
}

// IsAtLeast reports whether the bound identity's role meets the floor.
func (s *Session) IsAtLeast(role rbac.Role) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ident.Role.AtLeast(role)
}

// IsModerator reports whether the identity is at least a moderator.
func (s *Session) IsModerator() bool {
	return s.IsAtLeast(rbac.RoleModerator)
}

// IsAdmin reports whether the identity is at least an admin.
func (s *Session) IsAdmin() bool {
	return s.IsAtLeast(rbac.RoleAdmin)
}

// HasPermission delegates to the engine for the bound identity.
func (s *Session) HasPermission(perm rbac.Permission) access.CheckResult {
	return s.engine.HasPermission(s.Identity(), perm)
}

// CanAccess delegates to the engine for the bound identity.
func (s *Session) CanAccess(ctx context.Context, req access.Requirement) access.CheckResult {
	return s.engine.CanAccess(ctx, s.Identity(), req)
}
