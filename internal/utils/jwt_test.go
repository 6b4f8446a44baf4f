package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	at, err := NewAccessToken("secret", 42, "staff", 5)
	require.NoError(t, err)
	require.NotEmpty(t, at.Token)

	ident, err := ParseAccessToken("secret", at.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), ident.UserID)
	assert.Equal(t, "staff", ident.Role)
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	at, err := NewAccessToken("secret", 1, "guest", 5)
	require.NoError(t, err)

	_, err = ParseAccessToken("other-secret", at.Token)
	assert.Error(t, err)
}

func TestParseAccessTokenExpired(t *testing.T) {
	at, err := NewAccessToken("secret", 1, "guest", -1)
	require.NoError(t, err)

	_, err = ParseAccessToken("secret", at.Token)
	assert.Error(t, err)
}

func TestParseAccessTokenGarbage(t *testing.T) {
	_, err := ParseAccessToken("secret", "not.a.token")
	assert.Error(t, err)
}

func TestRefreshTokenHashing(t *testing.T) {
	rt, err := NewRefreshToken(7)
	require.NoError(t, err)
	assert.Len(t, rt.Raw, 96)

	h1 := HashRefreshRaw(rt.Raw)
	h2 := HashRefreshRaw(rt.Raw)
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, rt.Raw, h1)
	assert.Len(t, h1, 64) // sha256 hex
}

func TestRefreshTokensAreUnique(t *testing.T) {
	a, err := NewRefreshToken(1)
	require.NoError(t, err)
	b, err := NewRefreshToken(1)
	require.NoError(t, err)
	assert.NotEqual(t, a.Raw, b.Raw)
}

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("hunter2", 4)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "hunter2"))
	assert.False(t, VerifyPassword(hash, "hunter3"))
}
