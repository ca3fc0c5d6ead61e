package constants

import "fmt"

// Role names as stored on profiles.role and carried in the JWT "role" claim.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

var AllRoles = []string{
	RoleAdmin,
	RoleEmployee,
}

// IsValidRole reports whether s is one of the known role names.
func IsValidRole(s string) bool {
	for _, r := range AllRoles {
		if r == s {
			return true
		}
	}
	return false
}

const errOnlyRoleCanAccess = "Hanya %s yang boleh mengakses fitur ini."

// RoleError builds the rejection message for a role-gated endpoint.
func RoleError(role string) string {
	return fmt.Sprintf(errOnlyRoleCanAccess, role)
}
