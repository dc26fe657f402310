// Package identity resolves who the current request belongs to and guarantees
// a profile row exists for every authenticated account.
package identity

import "github.com/harshanas/peopledesk/internal/models"

// Role is the closed two-variant access level.
type Role string

const (
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

// ParseRole maps a raw string to a Role. The second return is false for
// anything outside the two variants, including the empty string.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleHR:
		return RoleHR, true
	case RoleEmployee:
		return RoleEmployee, true
	}
	return "", false
}

// ResolveRole determines a role from the available sources with fixed
// precedence: explicit argument, then account metadata hint, then the
// existing profile row. An undeterminable role always resolves to
// RoleEmployee; ambiguity must never grant the elevated role.
func ResolveRole(explicit string, metadataHint string, existing *models.Profile) Role {
	if r, ok := ParseRole(explicit); ok {
		return r
	}
	if r, ok := ParseRole(metadataHint); ok {
		return r
	}
	if existing != nil {
		if r, ok := ParseRole(existing.Role); ok {
			return r
		}
	}
	return RoleEmployee
}
