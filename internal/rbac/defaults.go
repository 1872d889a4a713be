// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vendara Contributors

package rbac

// Explicit grants per role. Each tier lists only what it adds on top of
// the roles it inherits from; effective sets are resolved by the Registry.

var userGrants = []Permission{
	PermProductRead,
	PermOrderCreate,
	PermOrderRead,
	PermCustomerRead,
}

var moderatorGrants = []Permission{
	PermProductCreate,
	PermProductUpdate,
	PermCustomerCreate,
	PermCustomerUpdate,
	PermContentModerate,
	PermContentDelete,
	PermReportView,
}

var adminGrants = []Permission{
	PermProductDelete,
	PermOrderUpdate,
	PermOrderDelete,
	PermOrderRefund,
	PermCustomerDelete,
	PermUserView,
	PermUserManage,
	PermReportExport,
	PermSystemAudit,
}

var superAdminGrants = []Permission{
	PermUserAssignRole,
	PermSystemSettings,
}

// DefaultDefinitions returns the shipped role catalog: a linear
// inheritance chain user <- moderator <- admin <- super_admin.
func DefaultDefinitions() []RoleDefinition {
	return []RoleDefinition{
		{
			Role:        RoleUser,
			Name:        "User",
			Description: "Standard account: browse products, place and view orders",
			Permissions: userGrants,
		},
		{
			Role:        RoleModerator,
			Name:        "Moderator",
			Description: "Manages catalog content and customer records",
			Permissions: moderatorGrants,
			Inherits:    []Role{RoleUser},
		},
		{
			Role:        RoleAdmin,
			Name:        "Administrator",
			Description: "Full store management including orders, refunds, and staff",
			Permissions: adminGrants,
			Inherits:    []Role{RoleModerator},
		},
		{
			Role:        RoleSuperAdmin,
			Name:        "Super Administrator",
			Description: "Platform owner: system settings and role assignment",
			Permissions: superAdminGrants,
			Inherits:    []Role{RoleAdmin},
		},
	}
}

// DefaultRegistry builds the Registry from DefaultDefinitions.
// Panics on error: the shipped catalog is hardcoded, so a failure here
// is a code bug that should fail fast.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultDefinitions())
	if err != nil {
		panic("invalid default role catalog: " + err.Error())
	}
	return r
}
