package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := NewBcryptHasher(4)

	hash, err := hasher.Hash("sturdy-passphrase")
	require.NoError(t, err)
	assert.NotEqual(t, "sturdy-passphrase", hash)

	assert.NoError(t, hasher.Compare(hash, "sturdy-passphrase"))
	assert.Error(t, hasher.Compare(hash, "wrong-passphrase"))
}

func TestBcryptHasherHashesAreSalted(t *testing.T) {
	hasher := NewBcryptHasher(4)

	first, err := hasher.Hash("sturdy-passphrase")
	require.NoError(t, err)
	second, err := hasher.Hash("sturdy-passphrase")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestBcryptHasherDefaultsInvalidCost(t *testing.T) {
	hasher := NewBcryptHasher(0)

	hash, err := hasher.Hash("sturdy-passphrase")
	require.NoError(t, err)
	assert.NoError(t, hasher.Compare(hash, "sturdy-passphrase"))
}
