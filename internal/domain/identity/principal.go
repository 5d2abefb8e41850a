package identity

import "github.com/google/uuid"

// Principal is the authenticated caller as seen by application services:
// identity plus the visibility scope resolved at token issue time.
type Principal struct {
	UserID uuid.UUID
	Role   Role
	Scope  Scope
}

// NewPrincipal builds a principal for a user, resolving the scope from the role
func NewPrincipal(userID uuid.UUID, role Role) Principal {
	return Principal{
		UserID: userID,
		Role:   role,
		Scope:  ScopeForRole(role),
	}
}
