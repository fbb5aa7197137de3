package keystore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyPairRoundTrip(t *testing.T) {
	key, err := GenerateKeyPair()
	require.NoError(t, err)

	parsed, err := ParseKeyPair(key.String())
	require.NoError(t, err)
	assert.True(t, key.PublicKey().Equal(parsed.PublicKey()))

	digest := []byte("01234567890123456789012345678901")
	sig, err := parsed.Sign(digest)
	require.NoError(t, err)
	assert.True(t, key.Verify(digest, sig))
}

func TestParseKeyPairRejectsBadInput(t *testing.T) {
	_, err := ParseKeyPair("secp256k1:abcd")
	assert.Error(t, err)
	_, err = ParseKeyPair("ed25519:short")
	assert.Error(t, err)
}

func TestMemoryKeyStore(t *testing.T) {
	store := NewMemoryKeyStore()
	_, err := store.Get("alice.near")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	key, err := GenerateKeyPair()
	require.NoError(t, err)
	require.NoError(t, store.Add("alice.near", key))

	got, err := store.Get("alice.near")
	require.NoError(t, err)
	assert.Same(t, key, got)
}

func TestRotatingKeyStoreRoundRobins(t *testing.T) {
	store := NewRotatingKeyStore()
	var keys []*KeyPair
	for i := 0; i < 3; i++ {
		key, err := GenerateKeyPair()
		require.NoError(t, err)
		keys = append(keys, key)
		require.NoError(t, store.Add("alice.near", key))
	}

	for i := 0; i < 6; i++ {
		got, err := store.Get("alice.near")
		require.NoError(t, err)
		assert.Same(t, keys[i%3], got, "rotation %d", i)
	}

	_, err := store.Get("bob.near")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
