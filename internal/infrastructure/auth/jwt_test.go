package auth

import (
	"testing"
	"time"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-for-jwt-unit-tests",
		AccessTokenExpiration: time.Hour,
		Issuer:                "storefront-test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	token, expiresAt, err := svc.GenerateToken(userID, identity.RoleAdminKids)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, identity.RoleAdminKids, claims.GetRole())
	assert.Equal(t, identity.ScopeKids, claims.GetScope())

	parsed, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestGenerateTokenRejectsBadInput(t *testing.T) {
	svc := newTestService()

	_, _, err := svc.GenerateToken(uuid.Nil, identity.RoleCustomer)
	assert.ErrorIs(t, err, ErrMissingUserID)

	_, _, err = svc.GenerateToken(uuid.New(), identity.Role("WIZARD"))
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := newTestService()
	token, _, err := svc.GenerateToken(uuid.New(), identity.RoleCustomer)
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret:                "a-completely-different-secret-key",
		AccessTokenExpiration: time.Hour,
		Issuer:                "storefront-test",
	})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-for-jwt-unit-tests",
		AccessTokenExpiration: -time.Minute,
		Issuer:                "storefront-test",
	})
	token, _, err := svc.GenerateToken(uuid.New(), identity.RoleCustomer)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestService()
	_, err := svc.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestScopePerRole(t *testing.T) {
	svc := newTestService()
	tests := []struct {
		role  identity.Role
		scope identity.Scope
	}{
		{identity.RoleCustomer, identity.ScopePublic},
		{identity.RoleAdminKids, identity.ScopeKids},
		{identity.RoleAdminNext, identity.ScopeNext},
		{identity.RoleSystemAdmin, identity.ScopeAll},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			token, _, err := svc.GenerateToken(uuid.New(), tt.role)
			require.NoError(t, err)
			claims, err := svc.ValidateToken(token)
			require.NoError(t, err)
			assert.Equal(t, tt.scope, claims.GetScope())
		})
	}
}
