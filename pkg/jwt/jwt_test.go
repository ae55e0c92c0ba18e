package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	token, err := Generate("secreto", "u1", "vendedor1", "seller", "ventas-ledger", 5)
	require.NoError(t, err)

	claims, err := Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "vendedor1", claims.Username)
	assert.Equal(t, "seller", claims.Role)
	assert.Equal(t, "ventas-ledger", claims.Issuer)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := Generate("secreto", "u1", "a", "admin", "x", 5)
	require.NoError(t, err)
	_, err = Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	token, err := Generate("secreto", "u1", "a", "admin", "x", -1)
	require.NoError(t, err)
	_, err = Parse("secreto", token)
	assert.Error(t, err)
}

func TestEmptySecret(t *testing.T) {
	_, err := Generate("", "u1", "a", "admin", "x", 5)
	assert.Error(t, err)
	_, err = Parse("", "x")
	assert.Error(t, err)
}
