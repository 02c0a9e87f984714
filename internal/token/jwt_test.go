package token

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_RoundTrip(t *testing.T) {
	j := NewJWT("test-secret")
	userID := uuid.New()

	tokenString, err := j.GenerateAccessToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	parsed, err := j.ParseAccessToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestJWT_WrongSecret(t *testing.T) {
	j := NewJWT("test-secret")
	other := NewJWT("other-secret")

	tokenString, err := j.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	_, err = other.ParseAccessToken(tokenString)
	assert.Error(t, err)
}

func TestJWT_Garbage(t *testing.T) {
	j := NewJWT("test-secret")

	_, err := j.ParseAccessToken("not-a-token")
	assert.Error(t, err)
}
