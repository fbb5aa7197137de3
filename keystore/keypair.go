// Package keystore holds ed25519 signing keys and the key storage
// boundary used by the signing engine.
package keystore

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/base58"
	"golang.org/x/crypto/ed25519"

	"github.com/nearkit/near-kit-go/types"
)

// KeyPair is an ed25519 signing key. The secret encoding is the NEAR
// convention "ed25519:<base58 of the 64 byte private key>".
type KeyPair struct {
	publicKey  types.PublicKey
	privateKey ed25519.PrivateKey
}

// GenerateKeyPair create a new random key pair
func GenerateKeyPair() (*KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate ed25519 key: %w", err)
	}
	publicKey, err := types.PublicKeyFromBytes(pub)
	if err != nil {
		return nil, err
	}
	return &KeyPair{publicKey: publicKey, privateKey: priv}, nil
}

// ParseKeyPair parse a secret key in "ed25519:<base58>" form
func ParseKeyPair(encoded string) (*KeyPair, error) {
	raw := encoded
	if idx := strings.Index(encoded, ":"); idx >= 0 {
		if !strings.EqualFold(encoded[:idx], "ed25519") {
			return nil, fmt.Errorf("unsupported key type %q", encoded[:idx])
		}
		raw = encoded[idx+1:]
	}
	data := base58.Decode(raw)
	if len(data) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid private key length %v", len(data))
	}
	priv := ed25519.PrivateKey(data)
	publicKey, err := types.PublicKeyFromBytes(priv.Public().(ed25519.PublicKey))
	if err != nil {
		return nil, err
	}
	return &KeyPair{publicKey: publicKey, privateKey: priv}, nil
}

// PublicKey return the public half
func (k *KeyPair) PublicKey() types.PublicKey {
	return k.publicKey
}

// Sign sign a message digest
func (k *KeyPair) Sign(message []byte) (types.Signature, error) {
	return types.SignatureFromBytes(ed25519.Sign(k.privateKey, message))
}

// Verify check a signature made by this key
func (k *KeyPair) Verify(message []byte, sig types.Signature) bool {
	return ed25519.Verify(ed25519.PublicKey(k.publicKey.Data[:]), message, sig.Data[:])
}

// String return the secret key encoding "ed25519:<base58>"
func (k *KeyPair) String() string {
	return "ed25519:" + base58.Encode(k.privateKey)
}
