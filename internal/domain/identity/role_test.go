package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopeForRole(t *testing.T) {
	tests := []struct {
		role     Role
		expected Scope
	}{
		{RoleCustomer, ScopePublic},
		{RoleAdminKids, ScopeKids},
		{RoleAdminNext, ScopeNext},
		{RoleSystemAdmin, ScopeAll},
		{Role("UNKNOWN"), ScopePublic},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.expected, ScopeForRole(tt.role))
		})
	}
}

func TestScopeAudience(t *testing.T) {
	aud, ok := ScopeKids.Audience()
	assert.True(t, ok)
	assert.Equal(t, "KIDS", aud)

	aud, ok = ScopeNext.Audience()
	assert.True(t, ok)
	assert.Equal(t, "NEXT", aud)

	_, ok = ScopeAll.Audience()
	assert.False(t, ok)

	_, ok = ScopePublic.Audience()
	assert.False(t, ok)
}

func TestRoleIsValid(t *testing.T) {
	assert.True(t, RoleCustomer.IsValid())
	assert.True(t, RoleSystemAdmin.IsValid())
	assert.False(t, Role("SUPERUSER").IsValid())
}

func TestRoleIsAdmin(t *testing.T) {
	assert.False(t, RoleCustomer.IsAdmin())
	assert.True(t, RoleAdminKids.IsAdmin())
	assert.True(t, RoleAdminNext.IsAdmin())
	assert.True(t, RoleSystemAdmin.IsAdmin())
}
