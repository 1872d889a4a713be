// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vendara Contributors

package access

import (
	"fmt"

	"github.com/vendara/vendara/internal/rbac"
)

// CheckResult is the outcome of an authorization check. Denial is a
// normal, representable outcome, never an error. The granted field is
// unexported so a result can only be produced through the constructors,
// preventing invariant bypass.
//
// Reason strings are for logs and debug surfaces, not end-user display.
type CheckResult struct {
	granted bool

	// Reason explains the outcome in operator-readable terms.
	Reason string

	// Role is the checked identity's role.
	Role rbac.Role

	// RequiredRole is set when a role floor drove the outcome.
	RequiredRole rbac.Role
}

// NewGranted creates a granting result.
func NewGranted(role rbac.Role, reason string) CheckResult {
	return CheckResult{granted: true, Reason: reason, Role: role}
}

// NewDenied creates a denying result.
func NewDenied(role rbac.Role, reason string) CheckResult {
	return CheckResult{granted: false, Reason: reason, Role: role}
}

// NewDeniedRole creates a denying result for an unmet role floor,
// recording which role was required.
func NewDeniedRole(role, required rbac.Role) CheckResult {
	return CheckResult{
		granted:      false,
		Reason:       fmt.Sprintf("role %s does not meet required role %s", role, required),
		Role:         role,
		RequiredRole: required,
	}
}

// Granted reports whether access was granted.
func (r CheckResult) Granted() bool {
	return r.granted
}

func (r CheckResult) String() string {
	if r.granted {
		return "granted: " + r.Reason
	}
	return "denied: " + r.Reason
}
