// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vendara Contributors

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendara/vendara/pkg/errutil"
)

func TestEffectiveCommand_ListsSources(t *testing.T) {
	output, err := execCommand(t, "effective", "--user", "cashier")
	require.NoError(t, err)

	assert.Contains(t, output, "role user")
	assert.Contains(t, output, "product:read (role)")
	assert.Contains(t, output, "product:create (custom)")
}

func TestEffectiveCommand_ShowsDenials(t *testing.T) {
	// shiftlead is seeded with content:delete explicitly denied
	output, err := execCommand(t, "effective", "--user", "shiftlead")
	require.NoError(t, err)

	assert.Contains(t, output, "explicitly denied:")
	assert.Contains(t, output, "content:delete")
	assert.NotContains(t, output, "content:delete (role)")
}

func TestEffectiveCommand_Filter(t *testing.T) {
	output, err := execCommand(t, "effective", "--user", "manager", "--filter", "order:*")
	require.NoError(t, err)

	assert.Contains(t, output, "order:refund")
	assert.NotContains(t, output, "product:read")

	_, err = execCommand(t, "effective", "--user", "manager", "--filter", "[bad")
	errutil.AssertErrorCode(t, err, "INVALID_PERMISSION_PATTERN")
}

func TestEffectiveCommand_UnknownUser(t *testing.T) {
	_, err := execCommand(t, "effective", "--user", "ghost")
	require.Error(t, err)
}

func TestAssignableCommand(t *testing.T) {
	// Only the seeded owner (super_admin) may assign roles
	output, err := execCommand(t, "assignable", "--user", "owner")
	require.NoError(t, err)
	assert.Contains(t, output, "owner may assign:")
	assert.Contains(t, output, "admin (level 3)")
	assert.NotContains(t, output, "super_admin")

	output, err = execCommand(t, "assignable", "--user", "manager")
	require.NoError(t, err)
	assert.Contains(t, output, "may not assign roles")
}
