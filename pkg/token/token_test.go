package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	tok, err := GenerateJWT(7, "club scorer", "test-secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := ValidateJWT(tok, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.ScorerID)
	assert.Equal(t, "club scorer", claims.Name)
}

func TestValidateJWTWrongSecret(t *testing.T) {
	tok, err := GenerateJWT(7, "club scorer", "test-secret", time.Hour)
	require.NoError(t, err)

	_, err = ValidateJWT(tok, "other-secret")
	require.Error(t, err)
}

func TestValidateJWTExpired(t *testing.T) {
	tok, err := GenerateJWT(7, "club scorer", "test-secret", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateJWT(tok, "test-secret")
	require.ErrorContains(t, err, "expired")
}
