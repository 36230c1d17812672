package utils

import "strings"

// RolePermissions maps each application role to the permissions it grants.
// Format is resource:action; "*" matches everything on that side.
var RolePermissions = map[string][]string{
	"admin":      {"*:*"},
	"supervisor": {"*:read", "workquantity:update", "project:update", "supervision:*", "projection:*"},
	"design":     {"project:read", "workquantity:*", "material:create", "material:read"},
	"supply":     {"project:read", "order:*", "material:read"},
	"warehouse":  {"project:read", "material:read", "reception:*", "delivery:*"},
	"field":      {"project:read", "activity:read", "execution:*", "projection:read"},
}

// HasPermission reports whether a role grants the required permission.
func HasPermission(role, required string) bool {
	for _, perm := range RolePermissions[role] {
		if MatchesPermission(perm, required) {
			return true
		}
	}
	return false
}

// MatchesPermission checks a granted permission pattern against a required
// permission. Patterns use resource:action parts where "*" is a wildcard
// for that part, and a bare "*" matches anything.
func MatchesPermission(userPerm, requiredPerm string) bool {
	if userPerm == "*" {
		return true
	}
	if userPerm == requiredPerm {
		return true
	}

	userParts := strings.Split(userPerm, ":")
	reqParts := strings.Split(requiredPerm, ":")
	if len(userParts) != len(reqParts) {
		// Allow the fully wildcarded *:*:* style to match shorter perms.
		if allWildcards(userParts) {
			return true
		}
		return false
	}
	for i := range userParts {
		if userParts[i] != "*" && userParts[i] != reqParts[i] {
			return false
		}
	}
	return true
}

func allWildcards(parts []string) bool {
	for _, p := range parts {
		if p != "*" {
			return false
		}
	}
	return len(parts) > 0
}
