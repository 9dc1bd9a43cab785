package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)
	require.NotEqual(t, "secret", hash)

	t.Run("Match", func(t *testing.T) {
		ok, err := VerifyPassword("secret", hash)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Mismatch", func(t *testing.T) {
		ok, err := VerifyPassword("wrong", hash)
		assert.NoError(t, err, "un simple mismatch n'est pas une erreur du hasher")
		assert.False(t, ok)
	})

	t.Run("CorruptHash", func(t *testing.T) {
		_, err := VerifyPassword("secret", "pas-un-hash-bcrypt")
		assert.Error(t, err)
	})

	t.Run("FreshSaltPerHash", func(t *testing.T) {
		other, err := HashPassword("secret")
		require.NoError(t, err)
		assert.NotEqual(t, hash, other)
	})
}
