// internal/domain/models/roles.go
package models

import "strings"

// Role values recognized across the portal. The same value is stored on
// the user record and on the identity account's role claim; the record
// is the source of truth and the claim mirrors it.
const (
	RoleMember    = "member"
	RoleExecutive = "executive"
	RoleAdmin     = "admin"
)

// AllowedRoles lists every recognized role, in display order.
// Exactly these three values are accepted; anything else is rejected
// at the boundary.
var AllowedRoles = []string{RoleMember, RoleExecutive, RoleAdmin}

// IsValidRole reports whether value is one of the recognized roles.
// Comparison is exact; callers normalize case first.
func IsValidRole(value string) bool {
	for _, r := range AllowedRoles {
		if value == r {
			return true
		}
	}
	return false
}

// AllowedRolesLabel returns the allowed roles joined for error messages,
// e.g. "member, executive, admin".
func AllowedRolesLabel() string {
	return strings.Join(AllowedRoles, ", ")
}
