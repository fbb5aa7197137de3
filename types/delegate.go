package types

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/near/borsh-go"
)

// delegateActionPrefix is the NEP-461 signable message discriminant
// for delegate actions: 2^30 + 366.
const delegateActionPrefix uint32 = (1 << 30) + 366

// ErrInvalidPayload marks a corrupt or structurally invalid delegate
// payload. It is a parse-class failure, distinct from the network
// facing error kinds.
var ErrInvalidPayload = errors.New("invalid signed delegate action payload")

// PayloadFormat selects the transport encoding of a signed delegate
// action payload.
type PayloadFormat string

// supported payload formats
const (
	PayloadFormatBase64 PayloadFormat = "base64"
	PayloadFormatBytes  PayloadFormat = "bytes"
)

// DelegateAction is an action set signed off-chain by one identity and
// later wrapped, paid for and submitted by a relayer. It expires once
// the chain height exceeds MaxBlockHeight.
type DelegateAction struct {
	SenderID       string
	ReceiverID     string
	Actions        []Action
	Nonce          uint64
	MaxBlockHeight uint64
	PublicKey      PublicKey
}

// SignedDelegateAction is a delegate action plus the sender signature.
type SignedDelegateAction struct {
	DelegateAction DelegateAction
	Signature      Signature
}

// SignPayload return the bytes whose sha256 digest the sender signs:
// the NEP-461 prefix followed by the borsh encoded delegate action.
func (d *DelegateAction) SignPayload() ([]byte, error) {
	body, err := borsh.Serialize(*d)
	if err != nil {
		return nil, fmt.Errorf("serialize delegate action: %w", err)
	}
	payload := make([]byte, 4, 4+len(body))
	binary.LittleEndian.PutUint32(payload, delegateActionPrefix)
	return append(payload, body...), nil
}

// Validate check structural integrity: valid account IDs, a non-empty
// action set and no nested delegate actions. Expiry and receiver
// checks are deliberately NOT performed here; they are the relayer's
// responsibility before wrapping and submitting.
func (sda *SignedDelegateAction) Validate() error {
	d := &sda.DelegateAction
	if err := CheckAccountID(d.SenderID); err != nil {
		return fmt.Errorf("%w: sender: %v", ErrInvalidPayload, err)
	}
	if err := CheckAccountID(d.ReceiverID); err != nil {
		return fmt.Errorf("%w: receiver: %v", ErrInvalidPayload, err)
	}
	if len(d.Actions) == 0 {
		return fmt.Errorf("%w: empty action set", ErrInvalidPayload)
	}
	for _, action := range d.Actions {
		if action.Enum == ActionDelegate {
			return fmt.Errorf("%w: nested delegate action", ErrInvalidPayload)
		}
	}
	if d.PublicKey.KeyType != KeyTypeED25519 {
		return fmt.Errorf("%w: unsupported key type %v", ErrInvalidPayload, d.PublicKey.KeyType)
	}
	return nil
}

// EncodeSignedDelegateAction serialize a signed delegate action into a
// transportable payload, base64 text by default or raw borsh bytes.
func EncodeSignedDelegateAction(sda *SignedDelegateAction, format PayloadFormat) ([]byte, error) {
	raw, err := borsh.Serialize(*sda)
	if err != nil {
		return nil, fmt.Errorf("serialize signed delegate action: %w", err)
	}
	switch format {
	case PayloadFormatBytes:
		return raw, nil
	case PayloadFormatBase64, "":
		encoded := make([]byte, base64.StdEncoding.EncodedLen(len(raw)))
		base64.StdEncoding.Encode(encoded, raw)
		return encoded, nil
	default:
		return nil, fmt.Errorf("unknown payload format %q", format)
	}
}

// DecodeSignedDelegateAction is the inverse of
// EncodeSignedDelegateAction. It accepts either encoding: base64 text
// is tried first, then raw borsh bytes. The decoded structure is
// validated before being returned.
func DecodeSignedDelegateAction(payload []byte) (*SignedDelegateAction, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidPayload)
	}
	sda := new(SignedDelegateAction)
	if decoded, err := base64.StdEncoding.DecodeString(string(payload)); err == nil {
		if err := borsh.Deserialize(sda, decoded); err == nil {
			if err := sda.Validate(); err != nil {
				return nil, err
			}
			return sda, nil
		}
		*sda = SignedDelegateAction{}
	}
	if err := borsh.Deserialize(sda, payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if err := sda.Validate(); err != nil {
		return nil, err
	}
	return sda, nil
}
