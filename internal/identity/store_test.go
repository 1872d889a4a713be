// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vendara Contributors

package identity_test

import (
	"context"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendara/vendara/internal/identity"
	"github.com/vendara/vendara/internal/rbac"
	"github.com/vendara/vendara/pkg/errutil"
)

// fakeHasher avoids argon2 cost in store tests that don't exercise
// password verification semantics.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", identity.ErrEmptyPassword
	}
	return "fake:" + password, nil
}

func (fakeHasher) Verify(password, hash string) (bool, error) {
	return hash == "fake:"+password, nil
}

func newTestStore(t *testing.T) (*identity.Store, identity.Identity) {
	t.Helper()
	store := identity.NewStore(fakeHasher{})
	ident, err := store.Create(context.Background(), "cashier", "secret", rbac.RoleUser)
	require.NoError(t, err)
	return store, ident
}

func TestStoreCreate(t *testing.T) {
	store, ident := newTestStore(t)
	ctx := context.Background()

	assert.Equal(t, "cashier", ident.Username)
	assert.Equal(t, rbac.RoleUser, ident.Role)
	assert.NotEqual(t, ulid.ULID{}, ident.ID)

	_, err := store.Create(ctx, "cashier", "other", rbac.RoleUser)
	assert.ErrorIs(t, err, identity.ErrUsernameTaken)

	_, err = store.Create(ctx, "x", "pw", rbac.RoleUser)
	require.Error(t, err, "too-short username rejected")

	_, err = store.Create(ctx, "newbie", "pw", rbac.Role("intern"))
	errutil.AssertErrorCode(t, err, "IDENTITY_UNKNOWN_ROLE")
}

func TestStoreAuthenticate(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	ident, err := store.Authenticate(ctx, "cashier", "secret")
	require.NoError(t, err)
	assert.Equal(t, "cashier", ident.Username)

	// Wrong password and unknown username produce the same error
	_, wrongPw := store.Authenticate(ctx, "cashier", "nope")
	_, unknown := store.Authenticate(ctx, "nobody", "nope")
	require.Error(t, wrongPw)
	require.Error(t, unknown)
	assert.Equal(t, wrongPw.Error(), unknown.Error())
}

func TestStoreLookups(t *testing.T) {
	store, ident := newTestStore(t)
	ctx := context.Background()

	got, err := store.Get(ctx, ident.ID)
	require.NoError(t, err)
	assert.Equal(t, ident.Username, got.Username)

	got, err = store.GetByUsername(ctx, "cashier")
	require.NoError(t, err)
	assert.Equal(t, ident.ID, got.ID)

	_, err = store.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, identity.ErrNotFound)

	_, err = store.Create(ctx, "aaron", "pw", rbac.RoleAdmin)
	require.NoError(t, err)
	list := store.List(ctx)
	require.Len(t, list, 2)
	assert.Equal(t, "aaron", list[0].Username, "list is sorted by username")
}

func TestStoreSetRole(t *testing.T) {
	store, ident := newTestStore(t)
	ctx := context.Background()

	updated, err := store.SetRole(ctx, ident.ID, rbac.RoleModerator)
	require.NoError(t, err)
	assert.Equal(t, rbac.RoleModerator, updated.Role)
	assert.NotEqual(t, ident.Fingerprint(), updated.Fingerprint())

	_, err = store.SetRole(ctx, ident.ID, rbac.Role("intern"))
	errutil.AssertErrorCode(t, err, "IDENTITY_UNKNOWN_ROLE")
}

func TestStorePermissionOverrides(t *testing.T) {
	store, ident := newTestStore(t)
	ctx := context.Background()

	updated, err := store.GrantPermission(ctx, ident.ID, rbac.PermProductCreate)
	require.NoError(t, err)
	assert.Contains(t, updated.CustomPermissions, rbac.PermProductCreate)

	// Granting twice does not duplicate
	updated, err = store.GrantPermission(ctx, ident.ID, rbac.PermProductCreate)
	require.NoError(t, err)
	assert.Len(t, updated.CustomPermissions, 1)

	updated, err = store.DenyPermission(ctx, ident.ID, rbac.PermOrderCreate)
	require.NoError(t, err)
	assert.Contains(t, updated.DeniedPermissions, rbac.PermOrderCreate)

	updated, err = store.RevokeGrant(ctx, ident.ID, rbac.PermProductCreate)
	require.NoError(t, err)
	assert.Empty(t, updated.CustomPermissions)

	updated, err = store.RevokeDenial(ctx, ident.ID, rbac.PermOrderCreate)
	require.NoError(t, err)
	assert.Empty(t, updated.DeniedPermissions)

	_, err = store.GrantPermission(ctx, ident.ID, rbac.Permission("order:teleport"))
	errutil.AssertErrorCode(t, err, "IDENTITY_UNKNOWN_PERMISSION")
}

// Snapshots returned by the store are copies: mutating one must not
// leak into the stored record.
func TestStoreSnapshotsAreValues(t *testing.T) {
	store, ident := newTestStore(t)
	ctx := context.Background()

	withGrant, err := store.GrantPermission(ctx, ident.ID, rbac.PermProductCreate)
	require.NoError(t, err)
	withGrant.CustomPermissions[0] = rbac.PermSystemSettings

	fresh, err := store.Get(ctx, ident.ID)
	require.NoError(t, err)
	assert.Equal(t, []rbac.Permission{rbac.PermProductCreate}, fresh.CustomPermissions)
}

func TestSeedDefaults(t *testing.T) {
	store := identity.NewStore(fakeHasher{})
	ctx := context.Background()

	require.NoError(t, identity.Seed(ctx, store, identity.DefaultSeedUsers()))

	list := store.List(ctx)
	require.Len(t, list, 4)

	cashier, err := store.GetByUsername(ctx, "cashier")
	require.NoError(t, err)
	assert.Contains(t, cashier.CustomPermissions, rbac.PermProductCreate)

	shiftlead, err := store.GetByUsername(ctx, "shiftlead")
	require.NoError(t, err)
	assert.Contains(t, shiftlead.DeniedPermissions, rbac.PermContentDelete)

	// Seeding the same users twice fails on the username conflict
	err = identity.Seed(ctx, store, identity.DefaultSeedUsers())
	errutil.AssertErrorCode(t, err, "IDENTITY_SEED_FAILED")
}

func TestFingerprint(t *testing.T) {
	_, ident := newTestStore(t)

	same := ident
	// Permission list order must not affect the fingerprint
	same.CustomPermissions = []rbac.Permission{rbac.PermOrderRead, rbac.PermProductRead}
	reordered := ident
	reordered.CustomPermissions = []rbac.Permission{rbac.PermProductRead, rbac.PermOrderRead}
	assert.Equal(t, same.Fingerprint(), reordered.Fingerprint())

	denied := ident
	denied.DeniedPermissions = []rbac.Permission{rbac.PermProductRead}
	assert.NotEqual(t, ident.Fingerprint(), denied.Fingerprint())
}
