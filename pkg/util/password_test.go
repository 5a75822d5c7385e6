package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret-password-1")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "secret-password-1", hash)

	// Same input must not produce the same digest (random salt)
	hash2, err := HashPassword("secret-password-1")
	require.NoError(t, err)
	assert.NotEqual(t, hash, hash2)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret-password-1")
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "secret-password-1"))
	assert.False(t, VerifyPassword(hash, "wrong-password"))
	assert.False(t, VerifyPassword("not-a-hash", "secret-password-1"))
}
