package nearkit

import (
	"github.com/nearkit/near-kit-go/types"
)

// Signer produces signatures over message digests. keystore.KeyPair
// satisfies it; SignerFromFunc adapts external signing callbacks
// (hardware keys, remote signers).
type Signer interface {
	PublicKey() types.PublicKey
	Sign(message []byte) (types.Signature, error)
}

type funcSigner struct {
	publicKey types.PublicKey
	sign      func(message []byte) (types.Signature, error)
}

// SignerFromFunc build a Signer from a public key and a signing
// callback. The callback receives the 32 byte digest to sign.
func SignerFromFunc(publicKey types.PublicKey, sign func(message []byte) (types.Signature, error)) Signer {
	return &funcSigner{publicKey: publicKey, sign: sign}
}

func (s *funcSigner) PublicKey() types.PublicKey {
	return s.publicKey
}

func (s *funcSigner) Sign(message []byte) (types.Signature, error) {
	return s.sign(message)
}

// WalletAdapter delegates signing and submission of an action set to
// an external agent (the user's wallet). Concrete adapters bridge to
// wallet connection libraries and live outside this module.
type WalletAdapter interface {
	RequestSignAndSubmit(signerID, receiverID string, actions []types.Action) (*FinalOutcome, error)
}
