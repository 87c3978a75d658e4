// Copyright (c) 2026 SmoothStack. All rights reserved.
// Author: vincent.owuor@smoothstack.dev

package sec

// # User Roles

// Role represents the authorization level granted to an account.
//
// The set is deliberately closed: adding a variant requires an explicit
// review of every authorization rule that consumes it.
type Role string

const (
	// Unrestricted system access, may mutate any task
	RoleAdmin Role = "ADMIN"

	// Default role for standard registered users
	RoleUser Role = "USER"
)

// ParseRole maps a stored string onto a [Role]. The second return value
// reports whether the input named a known variant.
func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleUser:
		return RoleUser, true
	default:
		return "", false
	}
}

// IsValid reports whether the role is one of the known variants.
func (r Role) IsValid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r Role) level() int {

	// Linear scale (10-40) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 40
	case RoleUser:
		return 10
	default:
		return 0
	}
}
