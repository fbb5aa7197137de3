package types

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidAccountID(t *testing.T) {
	valid := []string{"alice.near", "bob", "sub.acct.testnet", "a-b_c.d2", "98793cd91a3f870fb126f66285808c7e094afcfc4eda8a970f6648cdf0dbd6de"}
	for _, id := range valid {
		assert.True(t, IsValidAccountID(id), id)
	}
	invalid := []string{"", "a", "Alice.near", ".near", "near.", "a..b", "a b", "-alice", "alice-"}
	for _, id := range invalid {
		assert.False(t, IsValidAccountID(id), id)
	}
}

func TestPublicKeyRoundTrip(t *testing.T) {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = byte(i + 1)
	}
	pk, err := PublicKeyFromBytes(raw)
	require.NoError(t, err)

	parsed, err := ParsePublicKey(pk.String())
	require.NoError(t, err)
	assert.True(t, pk.Equal(parsed))

	_, err = ParsePublicKey("secp256k1:abc")
	assert.Error(t, err)
	_, err = ParsePublicKey("ed25519:tooshort")
	assert.Error(t, err)
}

func TestTransactionHashIsDeterministic(t *testing.T) {
	pk, err := PublicKeyFromBytes(make([]byte, 32))
	require.NoError(t, err)
	tx := &Transaction{
		SignerID:   "alice.near",
		PublicKey:  pk,
		Nonce:      42,
		ReceiverID: "bob.near",
		Actions: []Action{
			NewTransferAction(big.NewInt(1000)),
			NewFunctionCallAction("set_status", []byte(`{"v":1}`), 30_000_000_000_000, nil),
		},
	}
	h1, err := tx.Hash()
	require.NoError(t, err)
	h2, err := tx.Hash()
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.NotEmpty(t, h1.String())

	tx.Nonce++
	h3, err := tx.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestActionOrderAffectsEncoding(t *testing.T) {
	a := NewTransferAction(big.NewInt(1))
	b := NewCreateAccountAction()
	tx := &Transaction{SignerID: "alice.near", ReceiverID: "bob.near", Actions: []Action{a, b}}
	d1, err := tx.Serialize()
	require.NoError(t, err)
	tx.Actions = []Action{b, a}
	d2, err := tx.Serialize()
	require.NoError(t, err)
	assert.NotEqual(t, d1, d2)
}

func newTestSignedDelegate(t *testing.T) *SignedDelegateAction {
	t.Helper()
	pk, err := PublicKeyFromBytes(make([]byte, 32))
	require.NoError(t, err)
	var sig Signature
	sig.KeyType = KeyTypeED25519
	return &SignedDelegateAction{
		DelegateAction: DelegateAction{
			SenderID:       "alice.near",
			ReceiverID:     "counter.near",
			Actions:        []Action{NewFunctionCallAction("increment", []byte(`{}`), 10_000_000_000_000, big.NewInt(1))},
			Nonce:          7,
			MaxBlockHeight: 100200,
			PublicKey:      pk,
		},
		Signature: sig,
	}
}

func TestDelegatePayloadRoundTrip(t *testing.T) {
	sda := newTestSignedDelegate(t)

	for _, format := range []PayloadFormat{PayloadFormatBase64, PayloadFormatBytes} {
		payload, err := EncodeSignedDelegateAction(sda, format)
		require.NoError(t, err, format)

		decoded, err := DecodeSignedDelegateAction(payload)
		require.NoError(t, err, format)
		assert.Equal(t, sda, decoded, format)
	}
}

func TestDecodeSignedDelegateActionRejectsCorruptPayload(t *testing.T) {
	for _, payload := range [][]byte{nil, []byte("not a payload"), []byte("AAAA")} {
		_, err := DecodeSignedDelegateAction(payload)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidPayload)
	}
}

func TestValidateRejectsNestedDelegate(t *testing.T) {
	sda := newTestSignedDelegate(t)
	inner := newTestSignedDelegate(t)
	sda.DelegateAction.Actions = append(sda.DelegateAction.Actions, NewDelegateAction(*inner))
	assert.ErrorIs(t, sda.Validate(), ErrInvalidPayload)
}

func TestDelegateSignPayloadHasPrefix(t *testing.T) {
	sda := newTestSignedDelegate(t)
	payload, err := sda.DelegateAction.SignPayload()
	require.NoError(t, err)
	// NEP-461 discriminant 2^30+366 little endian
	assert.Equal(t, []byte{0x6e, 0x01, 0x00, 0x40}, payload[:4])
	assert.Greater(t, len(payload), 4)
}
