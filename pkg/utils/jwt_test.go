package utils_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kevmogita/duka-pos/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	// GIVEN: a JWT manager and a user identity
	manager := utils.NewJWTManager("test-secret", time.Hour)
	userID := uuid.New()

	// WHEN: a token is generated and validated
	token, err := manager.GenerateToken(userID, "clerk1", "John Clerk", "clerk")
	require.NoError(t, err)

	claims, err := manager.ValidateToken(token)

	// THEN: the claims carry the identity unchanged
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "clerk1", claims.Username)
	assert.Equal(t, "John Clerk", claims.FullName)
	assert.Equal(t, "clerk", claims.Role)
	assert.Equal(t, "duka-pos-api", claims.Issuer)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	// GIVEN: a token signed under one secret
	issuer := utils.NewJWTManager("secret-a", time.Hour)
	verifier := utils.NewJWTManager("secret-b", time.Hour)

	token, err := issuer.GenerateToken(uuid.New(), "clerk1", "John Clerk", "clerk")
	require.NoError(t, err)

	// WHEN: it is validated under a different secret
	_, err = verifier.ValidateToken(token)

	// THEN: validation fails
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	// GIVEN: a token that expired in the past
	manager := utils.NewJWTManager("test-secret", -time.Minute)

	token, err := manager.GenerateToken(uuid.New(), "clerk1", "John Clerk", "clerk")
	require.NoError(t, err)

	// WHEN: it is validated
	_, err = manager.ValidateToken(token)

	// THEN: validation fails
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	manager := utils.NewJWTManager("test-secret", time.Hour)

	_, err := manager.ValidateToken("not-a-token")

	assert.Error(t, err)
}
