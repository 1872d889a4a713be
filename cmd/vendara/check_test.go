// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vendara Contributors

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendara/vendara/pkg/errutil"
)

func TestCheckCommand_Help(t *testing.T) {
	output, err := execCommand(t, "check", "--help")
	require.NoError(t, err)
	assert.Contains(t, output, "--user")
	assert.Contains(t, output, "--min-role")
	assert.Contains(t, output, "--permissions")
}

func TestCheckCommand_RequiresUser(t *testing.T) {
	_, err := execCommand(t, "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user")
}

func TestCheckCommand_Granted(t *testing.T) {
	// The seeded cashier holds product:create as a custom grant
	output, err := execCommand(t, "check", "--user", "cashier", "--permissions", "product:create")
	require.NoError(t, err)
	assert.Contains(t, output, "granted")
}

func TestCheckCommand_Denied(t *testing.T) {
	output, err := execCommand(t, "check", "--user", "cashier", "--permissions", "system:settings")
	errutil.AssertErrorCode(t, err, "ACCESS_DENIED")
	assert.Contains(t, output, "denied")
}

func TestCheckCommand_RoleFloor(t *testing.T) {
	_, err := execCommand(t, "check", "--user", "manager", "--min-role", "admin")
	require.NoError(t, err)

	output, err := execCommand(t, "check", "--user", "cashier", "--min-role", "admin")
	errutil.AssertErrorCode(t, err, "ACCESS_DENIED")
	assert.Contains(t, output, "does not meet required role")
}

func TestCheckCommand_UnknownUserIsDenied(t *testing.T) {
	output, err := execCommand(t, "check", "--user", "ghost", "--permissions", "product:read")
	errutil.AssertErrorCode(t, err, "ACCESS_DENIED")
	assert.Contains(t, output, "no identity")
}

func TestCheckCommand_RejectsBadInputs(t *testing.T) {
	_, err := execCommand(t, "check", "--user", "cashier", "--min-role", "intern")
	errutil.AssertErrorCode(t, err, "UNKNOWN_ROLE")

	_, err = execCommand(t, "check", "--user", "cashier", "--permissions", "product:teleport")
	errutil.AssertErrorCode(t, err, "UNKNOWN_PERMISSION")
}
