package types

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/base58"
)

// key and signature type tags per the NEAR serialization format
const (
	KeyTypeED25519 uint8 = 0
)

const ed25519Prefix = "ed25519:"

// PublicKey is a NEAR account public key in wire layout.
type PublicKey struct {
	KeyType uint8
	Data    [32]byte
}

// PublicKeyFromBytes build an ed25519 public key from raw key bytes
func PublicKeyFromBytes(raw []byte) (PublicKey, error) {
	var pk PublicKey
	if len(raw) != len(pk.Data) {
		return pk, fmt.Errorf("invalid ed25519 public key length %v", len(raw))
	}
	pk.KeyType = KeyTypeED25519
	copy(pk.Data[:], raw)
	return pk, nil
}

// ParsePublicKey parse the "ed25519:<base58>" display form
func ParsePublicKey(s string) (PublicKey, error) {
	var pk PublicKey
	encoded := s
	if idx := strings.Index(s, ":"); idx >= 0 {
		if !strings.EqualFold(s[:idx], "ed25519") {
			return pk, fmt.Errorf("unsupported key type %q", s[:idx])
		}
		encoded = s[idx+1:]
	}
	raw := base58.Decode(encoded)
	if len(raw) != len(pk.Data) {
		return pk, fmt.Errorf("invalid public key %q", s)
	}
	pk.KeyType = KeyTypeED25519
	copy(pk.Data[:], raw)
	return pk, nil
}

// String format as "ed25519:<base58>"
func (pk PublicKey) String() string {
	return ed25519Prefix + base58.Encode(pk.Data[:])
}

// Equal report whether two keys are identical
func (pk PublicKey) Equal(other PublicKey) bool {
	return pk.KeyType == other.KeyType && bytes.Equal(pk.Data[:], other.Data[:])
}

// Signature is a NEAR signature in wire layout.
type Signature struct {
	KeyType uint8
	Data    [64]byte
}

// SignatureFromBytes build an ed25519 signature from raw bytes
func SignatureFromBytes(raw []byte) (Signature, error) {
	var sig Signature
	if len(raw) != len(sig.Data) {
		return sig, fmt.Errorf("invalid ed25519 signature length %v", len(raw))
	}
	sig.KeyType = KeyTypeED25519
	copy(sig.Data[:], raw)
	return sig, nil
}

// String format as "ed25519:<base58>"
func (s Signature) String() string {
	return ed25519Prefix + base58.Encode(s.Data[:])
}

// CryptoHash is a 32 byte hash rendered in base58, as used for
// transaction hashes and block hashes.
type CryptoHash [32]byte

// Sha256Hash hash data with sha256
func Sha256Hash(data []byte) CryptoHash {
	return CryptoHash(sha256.Sum256(data))
}

// ParseCryptoHash parse a base58 encoded 32 byte hash
func ParseCryptoHash(s string) (CryptoHash, error) {
	var h CryptoHash
	raw := base58.Decode(s)
	if len(raw) != len(h) {
		return h, fmt.Errorf("invalid base58 hash %q", s)
	}
	copy(h[:], raw)
	return h, nil
}

// String format in base58
func (h CryptoHash) String() string {
	return base58.Encode(h[:])
}
