package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateToken("alice@example.com", secret, time.Hour)
	require.NoError(t, err)

	got, err := GetIdentifierFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got)
}

func TestGetIdentifierFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateToken("u1", secret, -1*time.Second)
	require.NoError(t, err)

	_, err = GetIdentifierFromToken(tok, secret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestGetIdentifierFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u2", []byte("right-secret"), time.Hour)
	require.NoError(t, err)

	_, err = GetIdentifierFromToken(tok, []byte("wrong-secret"))
	assert.Error(t, err)
}

func TestGetIdentifierFromToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := GetIdentifierFromToken("not.a.jwt", []byte("k"))
	assert.Error(t, err)
}
