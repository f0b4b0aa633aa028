package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenGenerator_RoundTrip(t *testing.T) {
	tg := NewTokenGenerator("test-secret", 24*time.Hour)

	token, err := tg.GenerateToken(42, 1)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	accountID, role, err := tg.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, accountID)
	assert.Equal(t, 1, role)
}

func TestTokenGenerator_ExpiredToken(t *testing.T) {
	tg := NewTokenGenerator("test-secret", -time.Minute)

	token, err := tg.GenerateToken(42, 1)
	require.NoError(t, err)

	_, _, err = tg.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenGenerator_WrongSecret(t *testing.T) {
	tg := NewTokenGenerator("test-secret", 24*time.Hour)
	other := NewTokenGenerator("other-secret", 24*time.Hour)

	token, err := tg.GenerateToken(42, 1)
	require.NoError(t, err)

	_, _, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenGenerator_GarbageToken(t *testing.T) {
	tg := NewTokenGenerator("test-secret", 24*time.Hour)

	_, _, err := tg.ValidateToken("not.a.token")
	assert.Error(t, err)
}
