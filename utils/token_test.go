package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := CreateAccessToken("test-secret", "64f000000000000000000001", "phillip", "phillip@example.com", "staff", time.Minute)
	require.NoError(t, err)

	claims, err := ParseAccessToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, "64f000000000000000000001", claims.Sub)
	assert.Equal(t, "phillip", claims.Username)
	assert.Equal(t, "phillip@example.com", claims.Email)
	assert.Equal(t, "staff", claims.Role)
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	token, err := CreateAccessToken("test-secret", "64f000000000000000000001", "phillip", "phillip@example.com", "user", time.Minute)
	require.NoError(t, err)

	_, err = ParseAccessToken("other-secret", token)
	assert.Error(t, err)
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	token, err := CreateAccessToken("test-secret", "64f000000000000000000001", "phillip", "phillip@example.com", "user", -time.Minute)
	require.NoError(t, err)

	_, err = ParseAccessToken("test-secret", token)
	assert.Error(t, err)
}
