package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("rahasia-sekali")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "rahasia-sekali", hash)

	assert.True(t, Verify("rahasia-sekali", hash))
	assert.False(t, Verify("salah-password", hash))
	assert.False(t, Verify("rahasia-sekali", "not-a-hash"))
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("rahasia-sekali")
	require.NoError(t, err)
	second, err := Hash("rahasia-sekali")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHashToken(t *testing.T) {
	hash := HashToken("some-refresh-token")

	assert.Len(t, hash, 64) // sha256 hex
	assert.Equal(t, hash, HashToken("some-refresh-token"))
	assert.NotEqual(t, hash, HashToken("other-token"))
}

func TestValidate(t *testing.T) {
	assert.True(t, Validate("12345678"))
	assert.True(t, Validate("password-panjang"))
	assert.False(t, Validate("pendek"))
	assert.False(t, Validate(""))
}
