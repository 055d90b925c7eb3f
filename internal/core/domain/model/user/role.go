package user

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Role represents the authorization level of a user.
// Admin callers may read and update any order and list all users;
// Client callers are scoped to their own records. Cancellation is owner-only
// regardless of role.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// Admin has elevated access across all records.
	Admin

	// Client is the default role assigned at registration.
	Client
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "unknown",
		Admin:       "admin",
		Client:      "client",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		Admin:  "admin",
		Client: "client",
	}
}

// RoleFromString parses a wire string ("admin", "client") into a Role.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role is invalid",
		fmt.Errorf("'%s' is not a recognized role", s),
	)
}

// Validate checks if the Role value is valid.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"role is invalid",
			fmt.Errorf("%d is not a valid role", r),
		)
	}
	return nil
}

// String returns the wire string of the role, or "unknown" for invalid values.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// IsAdmin reports whether the role grants elevated access.
func (r Role) IsAdmin() bool {
	return r == Admin
}
