package nearkit

import (
	"encoding/json"
	"fmt"
)

// JSON views of RPC responses. Field layout follows the NEAR node's
// JSON shapes; these are transport types, not the wire model.

// BlockView is the subset of a block the engine needs.
type BlockView struct {
	Header BlockHeaderView `json:"header"`
}

// BlockHeaderView block hash and height
type BlockHeaderView struct {
	Hash   string `json:"hash"`
	Height uint64 `json:"height"`
}

// AccessKeyView is the result of a view_access_key query.
type AccessKeyView struct {
	Nonce       uint64          `json:"nonce"`
	Permission  json.RawMessage `json:"permission"`
	BlockHash   string          `json:"block_hash,omitempty"`
	BlockHeight uint64          `json:"block_height,omitempty"`

	// some query failures are reported inside the result envelope
	Error string `json:"error,omitempty"`
}

// AccountView is the result of a view_account query.
type AccountView struct {
	Amount        string `json:"amount"`
	Locked        string `json:"locked"`
	CodeHash      string `json:"code_hash"`
	StorageUsage  uint64 `json:"storage_usage"`
	StoragePaidAt uint64 `json:"storage_paid_at"`
	BlockHash     string `json:"block_hash,omitempty"`
	BlockHeight   uint64 `json:"block_height,omitempty"`

	Error string `json:"error,omitempty"`
}

// CallFunctionView is the result of a call_function query. The node
// returns the raw result as a JSON array of byte values.
type CallFunctionView struct {
	Result      ByteSlice `json:"result"`
	Logs        []string  `json:"logs"`
	BlockHeight uint64    `json:"block_height,omitempty"`

	Error string `json:"error,omitempty"`
}

// ByteSlice unmarshals a JSON array of numbers into bytes.
type ByteSlice []byte

// UnmarshalJSON impl json.Unmarshaler
func (b *ByteSlice) UnmarshalJSON(data []byte) error {
	var values []uint16
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	out := make([]byte, len(values))
	for i, v := range values {
		if v > 0xff {
			return fmt.Errorf("byte value %v out of range at index %v", v, i)
		}
		out[i] = byte(v)
	}
	*b = out
	return nil
}

// TxResultView is the final execution outcome envelope returned by
// send_tx and tx status queries.
type TxResultView struct {
	FinalExecutionStatus string        `json:"final_execution_status,omitempty"`
	Status               StatusView    `json:"status"`
	Transaction          TxView        `json:"transaction"`
	TransactionOutcome   *OutcomeView  `json:"transaction_outcome,omitempty"`
	ReceiptsOutcome      []OutcomeView `json:"receipts_outcome,omitempty"`
}

// StatusView is a per-transaction or per-receipt execution status.
// Exactly one field is set.
type StatusView struct {
	SuccessValue     *string         `json:"SuccessValue,omitempty"`
	SuccessReceiptID string          `json:"SuccessReceiptId,omitempty"`
	Failure          json.RawMessage `json:"Failure,omitempty"`
	Unknown          json.RawMessage `json:"Unknown,omitempty"`
}

// TxView echoes the submitted transaction.
type TxView struct {
	Hash       string          `json:"hash"`
	SignerID   string          `json:"signer_id"`
	ReceiverID string          `json:"receiver_id"`
	PublicKey  string          `json:"public_key"`
	Nonce      uint64          `json:"nonce"`
	Actions    json.RawMessage `json:"actions,omitempty"`
	Signature  string          `json:"signature,omitempty"`
}

// OutcomeView is one receipt (or the transaction conversion) outcome.
type OutcomeView struct {
	ID        string      `json:"id"`
	BlockHash string      `json:"block_hash"`
	Outcome   ExecOutcome `json:"outcome"`
}

// ExecOutcome holds the execution detail of one outcome.
type ExecOutcome struct {
	ExecutorID  string     `json:"executor_id"`
	GasBurnt    uint64     `json:"gas_burnt"`
	TokensBurnt string     `json:"tokens_burnt"`
	Logs        []string   `json:"logs"`
	ReceiptIDs  []string   `json:"receipt_ids"`
	Status      StatusView `json:"status"`
}
