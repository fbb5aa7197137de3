package types

import (
	"fmt"

	"github.com/near/borsh-go"
)

// Transaction is an unsigned NEAR transaction in wire layout. Action
// order is significant and preserved; the network executes the action
// list sequentially and all-or-nothing.
type Transaction struct {
	SignerID   string
	PublicKey  PublicKey
	Nonce      uint64
	ReceiverID string
	BlockHash  CryptoHash
	Actions    []Action
}

// SignedTransaction is a transaction plus its signature. Immutable;
// submitted to the network at most once under normal operation.
type SignedTransaction struct {
	Transaction Transaction
	Signature   Signature
}

// Serialize encode the transaction in borsh wire format
func (tx *Transaction) Serialize() ([]byte, error) {
	data, err := borsh.Serialize(*tx)
	if err != nil {
		return nil, fmt.Errorf("serialize transaction: %w", err)
	}
	return data, nil
}

// Hash return the transaction hash: sha256 of the borsh encoding.
// This is also the digest the signer signs.
func (tx *Transaction) Hash() (CryptoHash, error) {
	data, err := tx.Serialize()
	if err != nil {
		return CryptoHash{}, err
	}
	return Sha256Hash(data), nil
}

// Serialize encode the signed transaction in borsh wire format
func (stx *SignedTransaction) Serialize() ([]byte, error) {
	data, err := borsh.Serialize(*stx)
	if err != nil {
		return nil, fmt.Errorf("serialize signed transaction: %w", err)
	}
	return data, nil
}

// Hash return the hash of the inner transaction
func (stx *SignedTransaction) Hash() (CryptoHash, error) {
	return stx.Transaction.Hash()
}
