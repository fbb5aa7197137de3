package nearkit

import (
	"github.com/nearkit/near-kit-go/types"
)

// DefaultBlockHeightOffset is the delegate expiration window when the
// caller gives neither a max block height nor an offset: 200 blocks
// from the current height.
const DefaultBlockHeightOffset = uint64(200)

// delegateOpts options of one Delegate call
type delegateOpts struct {
	maxBlockHeight    uint64
	blockHeightOffset uint64
	format            types.PayloadFormat
}

// DelegateOption adjusts one Delegate call.
type DelegateOption func(*delegateOpts)

// WithMaxBlockHeight set the absolute chain height after which the
// delegate action expires
func WithMaxBlockHeight(height uint64) DelegateOption {
	return func(o *delegateOpts) {
		o.maxBlockHeight = height
	}
}

// WithBlockHeightOffset set the expiration as an offset from the
// current chain height
func WithBlockHeightOffset(offset uint64) DelegateOption {
	return func(o *delegateOpts) {
		o.blockHeightOffset = offset
	}
}

// WithPayloadFormat choose the transport encoding of the payload,
// base64 (default) or raw bytes
func WithPayloadFormat(format types.PayloadFormat) DelegateOption {
	return func(o *delegateOpts) {
		o.format = format
	}
}

// DelegateResult is a locally signed, transportable meta-transaction.
type DelegateResult struct {
	SignedDelegateAction *types.SignedDelegateAction
	// Payload is the transportable encoding; base64 text unless raw
	// bytes were requested
	Payload []byte
	Format  types.PayloadFormat
}

// Delegate replace submission with local signing: produce a signed
// delegate action a relayer can later wrap, pay for and submit, in
// which the builder's signer stays the logical actor. Consumes the
// builder. The delegate carries no gas payment commitment from the
// signer and becomes unusable once the chain height exceeds its max
// block height.
func (b *TxBuilder) Delegate(opts ...DelegateOption) (*DelegateResult, error) {
	if err := b.consume(); err != nil {
		return nil, err
	}
	options := delegateOpts{format: types.PayloadFormatBase64}
	for _, opt := range opts {
		opt(&options)
	}
	if options.maxBlockHeight != 0 && options.blockHeightOffset != 0 {
		return nil, configErrorf("give either a max block height or an offset, not both")
	}
	for _, action := range b.actions {
		if action.Enum == types.ActionDelegate {
			return nil, configErrorf("delegate actions cannot be nested")
		}
	}

	signer, wallet, err := b.client.resolveSigner(b.signerID, b.signer)
	if err != nil {
		return nil, err
	}
	if wallet != nil {
		return nil, configErrorf("delegate requires a local signing key, not a wallet adapter")
	}

	c := b.client
	publicKey := signer.PublicKey()

	maxBlockHeight := options.maxBlockHeight
	if maxBlockHeight == 0 {
		offset := options.blockHeightOffset
		if offset == 0 {
			offset = DefaultBlockHeightOffset
		}
		block, err := c.LatestBlock()
		if err != nil {
			return nil, err
		}
		maxBlockHeight = block.Header.Height + offset
	}

	nonce, err := c.nonces.reserveNext(b.signerID, publicKey, func() (uint64, error) {
		return c.fetchAccessKeyNonce(b.signerID, publicKey)
	})
	if err != nil {
		return nil, err
	}

	delegate := types.DelegateAction{
		SenderID:       b.signerID,
		ReceiverID:     b.receiver(),
		Actions:        b.actions,
		Nonce:          nonce,
		MaxBlockHeight: maxBlockHeight,
		PublicKey:      publicKey,
	}
	payload, err := delegate.SignPayload()
	if err != nil {
		return nil, configErrorf("serialize delegate action: %v", err)
	}
	digest := types.Sha256Hash(payload)
	signature, err := signer.Sign(digest[:])
	if err != nil {
		return nil, configErrorf("sign delegate action: %v", err)
	}

	sda := &types.SignedDelegateAction{DelegateAction: delegate, Signature: signature}
	encoded, err := types.EncodeSignedDelegateAction(sda, options.format)
	if err != nil {
		return nil, configErrorf("encode delegate payload: %v", err)
	}
	return &DelegateResult{
		SignedDelegateAction: sda,
		Payload:              encoded,
		Format:               options.format,
	}, nil
}
