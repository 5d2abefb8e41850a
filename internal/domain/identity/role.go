// Package identity defines the roles and visibility scopes used across the
// back office. Scope is a pure function of role: it is resolved once when a
// credential is issued and carried in the token, never re-derived from
// mutable state.
package identity

// Role identifies the kind of authenticated principal
type Role string

const (
	RoleCustomer    Role = "CUSTOMER"
	RoleAdminKids   Role = "ADMIN_KIDS"
	RoleAdminNext   Role = "ADMIN_NEXT"
	RoleSystemAdmin Role = "SYSTEM_ADMIN"
)

// IsValid checks if the role is a known Role
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleAdminKids, RoleAdminNext, RoleSystemAdmin:
		return true
	}
	return false
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// IsAdmin returns true for any operator role
func (r Role) IsAdmin() bool {
	return r == RoleAdminKids || r == RoleAdminNext || r == RoleSystemAdmin
}

// Scope is the set of audiences a principal may see and mutate
type Scope string

const (
	ScopeKids   Scope = "kids"   // items with the KIDS audience snapshot
	ScopeNext   Scope = "next"   // items with the NEXT audience snapshot
	ScopeAll    Scope = "all"    // bypasses every audience filter
	ScopePublic Scope = "public" // customers: scoped by ownership, not audience
)

// ScopeForRole resolves the visibility scope for a role.
// This is the single source of truth consumed by every query path.
func ScopeForRole(role Role) Scope {
	switch role {
	case RoleAdminKids:
		return ScopeKids
	case RoleAdminNext:
		return ScopeNext
	case RoleSystemAdmin:
		return ScopeAll
	default:
		return ScopePublic
	}
}

// Audience returns the storefront audience a scope is pinned to,
// and false for scopes that are not audience-bound (all, public).
func (s Scope) Audience() (string, bool) {
	switch s {
	case ScopeKids:
		return "KIDS", true
	case ScopeNext:
		return "NEXT", true
	}
	return "", false
}
