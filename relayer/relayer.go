// Package relayer implements a meta-transaction relay service: it
// accepts signed delegate action payloads over HTTP, wraps them in
// transactions signed by the relayer account and pays for their gas.
package relayer

import (
	"errors"
	"fmt"

	nearkit "github.com/nearkit/near-kit-go"
	"github.com/nearkit/near-kit-go/log"
	"github.com/nearkit/near-kit-go/types"
)

// relay rejection reasons
var (
	ErrReceiverNotAllowed = errors.New("delegate receiver is not in the allowed list")
	ErrDelegateExpired    = errors.New("delegate action expired")
)

// Relayer wraps signed delegate actions on behalf of their senders.
// The relayer account is the transaction signer and gas payer; the
// delegate's sender stays the logical actor on chain.
type Relayer struct {
	client    *nearkit.Client
	relayerID string
	allowed   map[string]bool // empty means any receiver
}

// New create a relayer submitting through client as relayerID. The
// client must be configured with the relayer's signing key.
func New(client *nearkit.Client, relayerID string, allowedReceivers []string) (*Relayer, error) {
	if err := types.CheckAccountID(relayerID); err != nil {
		return nil, fmt.Errorf("relayer account: %w", err)
	}
	allowed := make(map[string]bool, len(allowedReceivers))
	for _, receiver := range allowedReceivers {
		allowed[receiver] = true
	}
	return &Relayer{
		client:    client,
		relayerID: relayerID,
		allowed:   allowed,
	}, nil
}

// Relay decode, check and submit one delegate payload. The payload may
// be base64 text or raw borsh bytes.
func (r *Relayer) Relay(payload []byte) (*nearkit.FinalOutcome, error) {
	decoded, err := types.DecodeSignedDelegateAction(payload)
	if err != nil {
		return nil, err
	}
	delegate := &decoded.DelegateAction

	if len(r.allowed) != 0 && !r.allowed[delegate.ReceiverID] {
		return nil, fmt.Errorf("%w: %v", ErrReceiverNotAllowed, delegate.ReceiverID)
	}

	block, err := r.client.LatestBlock()
	if err != nil {
		return nil, err
	}
	if block.Header.Height > delegate.MaxBlockHeight {
		return nil, fmt.Errorf("%w: max block height %v, chain height %v",
			ErrDelegateExpired, delegate.MaxBlockHeight, block.Header.Height)
	}

	log.Info("relaying delegate action",
		"sender", delegate.SenderID,
		"receiver", delegate.ReceiverID,
		"nonce", delegate.Nonce,
		"maxBlockHeight", delegate.MaxBlockHeight)

	outcome, err := r.client.Transaction(r.relayerID).
		SignedDelegateAction(decoded).
		Send()
	if err != nil {
		log.Warn("relay delegate action failed", "sender", delegate.SenderID, "err", err)
		return nil, err
	}
	log.Info("relayed delegate action", "sender", delegate.SenderID, "txHash", outcome.Transaction.Hash)
	return outcome, nil
}
