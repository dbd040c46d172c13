package security

import (
	"strings"
	"testing"

	"github.com/openmeeple/meeplevault-backend/pkg/config"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2", config.PasswordConfig{})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	ok, err := VerifyPassword("hunter2hunter2", hash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = VerifyPassword("wrong-password", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	_, err := HashPassword("", config.PasswordConfig{})
	require.Error(t, err)
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	first, err := HashPassword("same-password", config.PasswordConfig{})
	require.NoError(t, err)
	second, err := HashPassword("same-password", config.PasswordConfig{})
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	_, err := VerifyPassword("password", "not-a-hash")
	require.ErrorIs(t, err, ErrInvalidHash)
}

func TestParamsFromConfigClamps(t *testing.T) {
	params := paramsFromConfig(config.PasswordConfig{
		ArgonMemoryKB:    1,
		ArgonTime:        100,
		ArgonParallelism: 0,
		ArgonSaltLen:     4,
		ArgonKeyLen:      8,
	})
	require.Equal(t, uint32(8), params.Memory)
	require.Equal(t, uint32(10), params.Time)
	require.Equal(t, uint8(1), params.Parallelism)
	require.Equal(t, uint32(8), params.SaltLen)
	require.Equal(t, uint32(16), params.KeyLen)
}
