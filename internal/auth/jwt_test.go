package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService("test-secret", "mataction-test")

	userID := uuid.New()
	teamID := uuid.New()

	token, err := svc.GenerateToken(userID, teamID, "jordan", true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, teamID, claims.TeamID)
	assert.Equal(t, "jordan", claims.Username)
	assert.True(t, claims.IsManager)
	assert.Equal(t, "mataction-test", claims.Issuer)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := NewJWTService("secret-a", "mataction-test")
	other := NewJWTService("secret-b", "mataction-test")

	token, err := svc.GenerateToken(uuid.New(), uuid.New(), "casey", false)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", "mataction-test")

	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
