// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vendara Contributors

package identity

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/vendara/vendara/internal/rbac"
)

// Sentinel errors for store lookups.
var (
	ErrNotFound      = oops.Code("IDENTITY_NOT_FOUND").Errorf("identity not found")
	ErrUsernameTaken = oops.Code("IDENTITY_USERNAME_TAKEN").Errorf("username already taken")
)

// dummyPasswordHash is used when a user doesn't exist to prevent timing attacks.
// We still run password verification to make response time consistent.
// This is NOT a real credential - it's a fake hash that will never match any password.
//
//nolint:gosec // G101: This is an intentionally fake hash for timing attack prevention, not a credential.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// Store is an in-memory identity table guarded by a mutex. It performs
// no authorization itself: the administration surface checks the role
// assignment policy before calling the mutating methods here.
type Store struct {
	hasher PasswordHasher

	mu         sync.RWMutex
	byID       map[ulid.ULID]*record
	byUsername map[string]*record
}

type record struct {
	identity     Identity
	passwordHash string
}

// NewStore creates an empty Store using the given hasher.
// A nil hasher defaults to argon2id.
func NewStore(hasher PasswordHasher) *Store {
	if hasher == nil {
		hasher = NewArgon2idHasher()
	}
	return &Store{
		hasher:     hasher,
		byID:       make(map[ulid.ULID]*record),
		byUsername: make(map[string]*record),
	}
}

// Create registers a new identity with the given role and no permission
// overrides. Returns the stored identity snapshot.
func (s *Store) Create(_ context.Context, username, password string, role rbac.Role) (Identity, error) {
	if err := ValidateUsername(username); err != nil {
		return Identity{}, err
	}
	if !role.Valid() {
		return Identity{}, oops.Code("IDENTITY_UNKNOWN_ROLE").
			With("role", role).
			Errorf("unknown role %q", role)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return Identity{}, oops.Code("IDENTITY_CREATE_FAILED").
			With("username", username).
			Wrap(err)
	}

	now := time.Now()
	rec := &record{
		identity: Identity{
			ID:        ulid.Make(),
			Username:  username,
			Role:      role,
			CreatedAt: now,
			UpdatedAt: now,
		},
		passwordHash: hash,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byUsername[username]; taken {
		return Identity{}, ErrUsernameTaken
	}
	s.byID[rec.identity.ID] = rec
	s.byUsername[username] = rec
	return rec.identity.clone(), nil
}

// Authenticate verifies username/password and returns the identity
// snapshot. Unknown usernames and wrong passwords produce the same
// error, and verification always runs to keep response time constant.
func (s *Store) Authenticate(_ context.Context, username, password string) (Identity, error) {
	s.mu.RLock()
	rec, exists := s.byUsername[username]
	targetHash := dummyPasswordHash
	if exists {
		targetHash = rec.passwordHash
	}
	s.mu.RUnlock()

	valid, err := s.hasher.Verify(password, targetHash)
	if err != nil && exists {
		return Identity{}, oops.Code("IDENTITY_AUTH_FAILED").
			With("operation", "verify password").
			Wrap(err)
	}
	if !exists || !valid {
		return Identity{}, oops.Code("IDENTITY_INVALID_CREDENTIALS").
			Errorf("invalid username or password")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return rec.identity.clone(), nil
}

// Get returns the identity with the given id.
func (s *Store) Get(_ context.Context, id ulid.ULID) (Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byID[id]
	if !ok {
		return Identity{}, ErrNotFound
	}
	return rec.identity.clone(), nil
}

// GetByUsername returns the identity with the given username.
func (s *Store) GetByUsername(_ context.Context, username string) (Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byUsername[username]
	if !ok {
		return Identity{}, ErrNotFound
	}
	return rec.identity.clone(), nil
}

// List returns all identities sorted by username.
func (s *Store) List(_ context.Context) []Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Identity, 0, len(s.byID))
	for _, rec := range s.byID {
		out = append(out, rec.identity.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

// SetRole changes an identity's role. Callers must have already passed
// the role assignment policy; the store does not re-check it.
func (s *Store) SetRole(_ context.Context, id ulid.ULID, role rbac.Role) (Identity, error) {
	if !role.Valid() {
		return Identity{}, oops.Code("IDENTITY_UNKNOWN_ROLE").
			With("role", role).
			Errorf("unknown role %q", role)
	}
	return s.update(id, func(ident *Identity) {
		ident.Role = role
	})
}

// GrantPermission adds a custom permission beyond the identity's role.
func (s *Store) GrantPermission(_ context.Context, id ulid.ULID, p rbac.Permission) (Identity, error) {
	if !p.Valid() {
		return Identity{}, unknownPermission(p)
	}
	return s.update(id, func(ident *Identity) {
		ident.CustomPermissions = addPermission(ident.CustomPermissions, p)
	})
}

// RevokeGrant removes a previously granted custom permission.
func (s *Store) RevokeGrant(_ context.Context, id ulid.ULID, p rbac.Permission) (Identity, error) {
	return s.update(id, func(ident *Identity) {
		ident.CustomPermissions = removePermission(ident.CustomPermissions, p)
	})
}

// DenyPermission strips a permission regardless of role or custom grant.
func (s *Store) DenyPermission(_ context.Context, id ulid.ULID, p rbac.Permission) (Identity, error) {
	if !p.Valid() {
		return Identity{}, unknownPermission(p)
	}
	return s.update(id, func(ident *Identity) {
		ident.DeniedPermissions = addPermission(ident.DeniedPermissions, p)
	})
}

// RevokeDenial removes an explicit denial.
func (s *Store) RevokeDenial(_ context.Context, id ulid.ULID, p rbac.Permission) (Identity, error) {
	return s.update(id, func(ident *Identity) {
		ident.DeniedPermissions = removePermission(ident.DeniedPermissions, p)
	})
}

func (s *Store) update(id ulid.ULID, mutate func(*Identity)) (Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.byID[id]
	if !ok {
		return Identity{}, ErrNotFound
	}
	mutate(&rec.identity)
	rec.identity.UpdatedAt = time.Now()
	return rec.identity.clone(), nil
}

func unknownPermission(p rbac.Permission) error {
	return oops.Code("IDENTITY_UNKNOWN_PERMISSION").
		With("permission", p).
		Errorf("unknown permission %q", p)
}

func addPermission(perms []rbac.Permission, p rbac.Permission) []rbac.Permission {
	for _, existing := range perms {
		if existing == p {
			return perms
		}
	}
	return append(perms, p)
}

func removePermission(perms []rbac.Permission, p rbac.Permission) []rbac.Permission {
	out := perms[:0]
	for _, existing := range perms {
		if existing != p {
			out = append(out, existing)
		}
	}
	return out
}
