package nearkit

import (
	"encoding/base64"

	"github.com/nearkit/near-kit-go/log"
	"github.com/nearkit/near-kit-go/types"
)

// WaitUntil is how far into the execution and consensus pipeline Send
// waits before returning. Levels are strictly increasing wait points.
type WaitUntil string

// finality levels, weakest to strongest
const (
	// WaitNone the transaction was accepted, not yet executing
	WaitNone WaitUntil = "NONE"
	// WaitIncluded the transaction is in a block, pre-execution
	WaitIncluded WaitUntil = "INCLUDED"
	// WaitExecutedOptimistic the execution chain finished; return
	// value and logs available. The default.
	WaitExecutedOptimistic WaitUntil = "EXECUTED_OPTIMISTIC"
	// WaitIncludedFinal the inclusion block is finalized
	WaitIncludedFinal WaitUntil = "INCLUDED_FINAL"
	// WaitExecuted executed optimistically and inclusion finalized
	WaitExecuted WaitUntil = "EXECUTED"
	// WaitFinal the block with the last receipt is finalized
	WaitFinal WaitUntil = "FINAL"
)

func (w WaitUntil) orDefault() WaitUntil {
	if w == "" {
		return WaitExecutedOptimistic
	}
	return w
}

// sendOpts options of one Send call
type sendOpts struct {
	waitUntil WaitUntil
}

// SendOption adjusts one Send call.
type SendOption func(*sendOpts)

// WithWaitUntil wait for the given finality level instead of the
// default EXECUTED_OPTIMISTIC
func WithWaitUntil(level WaitUntil) SendOption {
	return func(o *sendOpts) {
		o.waitUntil = level
	}
}

// nonce conflicts are retried once with a refreshed cache, then
// surfaced
const maxNonceRetries = 1

// Send reserve a nonce, serialize, sign, submit and wait for the
// requested finality level. Consumes the builder. A detected nonce
// conflict invalidates the cache and retries the whole
// build-sign-submit cycle once.
func (b *TxBuilder) Send(opts ...SendOption) (*FinalOutcome, error) {
	if err := b.consume(); err != nil {
		return nil, err
	}
	var options sendOpts
	for _, opt := range opts {
		opt(&options)
	}
	waitUntil := options.waitUntil.orDefault()

	signer, wallet, err := b.client.resolveSigner(b.signerID, b.signer)
	if err != nil {
		return nil, err
	}
	if wallet != nil {
		// the wallet handles nonces and submission entirely
		return wallet.RequestSignAndSubmit(b.signerID, b.receiver(), b.actions)
	}

	c := b.client
	publicKey := signer.PublicKey()
	for attempt := 0; ; attempt++ {
		nonce, err := c.nonces.reserveNext(b.signerID, publicKey, func() (uint64, error) {
			return c.fetchAccessKeyNonce(b.signerID, publicKey)
		})
		if err != nil {
			return nil, err
		}
		blockHash, _, err := c.latestBlockHash()
		if err != nil {
			return nil, err
		}

		tx := &types.Transaction{
			SignerID:   b.signerID,
			PublicKey:  publicKey,
			Nonce:      nonce,
			ReceiverID: b.receiver(),
			BlockHash:  blockHash,
			Actions:    b.actions,
		}
		signed, err := signTransaction(tx, signer)
		if err != nil {
			return nil, err
		}

		result, err := c.submit(signed, waitUntil)
		if err == nil {
			return classifyOutcome(result, tx)
		}
		if isNonceConflict(err) && attempt < maxNonceRetries {
			log.Warn("nonce conflict, refreshing and retrying",
				"signer", b.signerID, "key", publicKey.String(), "nonce", nonce)
			c.nonces.invalidate(b.signerID, publicKey)
			continue
		}
		return nil, c.classifyRPCError(err, b.signerID)
	}
}

// signTransaction sign the sha256 digest of the borsh encoding
func signTransaction(tx *types.Transaction, signer Signer) (*types.SignedTransaction, error) {
	hash, err := tx.Hash()
	if err != nil {
		return nil, configErrorf("serialize transaction: %v", err)
	}
	signature, err := signer.Sign(hash[:])
	if err != nil {
		return nil, configErrorf("sign transaction: %v", err)
	}
	return &types.SignedTransaction{Transaction: *tx, Signature: signature}, nil
}

// submit broadcast a signed transaction with the requested wait level
func (c *Client) submit(signed *types.SignedTransaction, waitUntil WaitUntil) (*TxResultView, error) {
	data, err := signed.Serialize()
	if err != nil {
		return nil, configErrorf("serialize signed transaction: %v", err)
	}
	var result TxResultView
	err = c.rpc.Call(&result, "send_tx", map[string]interface{}{
		"signed_tx_base64": base64.StdEncoding.EncodeToString(data),
		"wait_until":       string(waitUntil),
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
