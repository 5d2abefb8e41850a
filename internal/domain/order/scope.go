package order

import (
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// QueryScope is the storage-agnostic visibility filter derived from the
// caller. The persistence layer translates it into SQL; single-order reads
// apply the item filter in memory after the fetch.
type QueryScope struct {
	// UserID restricts orders to the given owner. Set for customers.
	UserID *uuid.UUID
	// OrderAudience keeps only orders containing at least one item with
	// this audience snapshot. Set for audience-bound admins.
	OrderAudience *catalog.Audience
	// ItemAudience restricts the nested item lists of returned orders.
	ItemAudience *catalog.Audience
}

// ResolveQueryScope derives the visibility filter for a caller. An audience
// override narrows an all-scope caller's nested item lists to one audience
// while keeping every order visible; audience-bound admins cannot override
// outside their own audience, and customers cannot override at all.
func ResolveQueryScope(scope identity.Scope, userID uuid.UUID, override *catalog.Audience) (QueryScope, error) {
	switch scope {
	case identity.ScopeAll:
		if override != nil {
			return QueryScope{ItemAudience: override}, nil
		}
		return QueryScope{}, nil
	case identity.ScopeKids, identity.ScopeNext:
		aud, _ := scope.Audience()
		pinned := catalog.Audience(aud)
		if override != nil && *override != pinned {
			return QueryScope{}, shared.NewDomainErrorf(shared.CodeForbidden,
				"scope %s cannot view audience %s", scope, *override)
		}
		return QueryScope{OrderAudience: &pinned, ItemAudience: &pinned}, nil
	default:
		if override != nil {
			return QueryScope{}, shared.NewDomainError(shared.CodeForbidden,
				"audience filter requires an admin role")
		}
		uid := userID
		return QueryScope{UserID: &uid}, nil
	}
}

// CanMutateItem reports whether a caller scope may change the status of an
// item carrying the given audience snapshot.
func CanMutateItem(scope identity.Scope, audience catalog.Audience) bool {
	switch scope {
	case identity.ScopeAll:
		return true
	case identity.ScopeKids:
		return audience == catalog.AudienceKids
	case identity.ScopeNext:
		return audience == catalog.AudienceNext
	}
	return false
}
