package nearkit

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	"github.com/nearkit/near-kit-go/rpc/client"
	"github.com/nearkit/near-kit-go/types"
)

// FinalOutcome is a successfully classified transaction result.
type FinalOutcome struct {
	// Transaction echoes the submitted transaction; Transaction.Hash
	// is the transaction hash.
	Transaction TxView
	// Status is the top-level execution status. A SuccessValue is
	// base64 encoded; use SuccessValue() to decode it.
	Status StatusView
	// TransactionOutcome is the transaction-to-receipt conversion
	// outcome.
	TransactionOutcome *OutcomeView
	// ReceiptsOutcome lists per-receipt outcomes in execution order.
	// Receipts execute outside the transaction's atomicity boundary.
	ReceiptsOutcome []OutcomeView
	// FinalityStatus is the finality the node reported for this
	// result, when known.
	FinalityStatus string
}

// SuccessValue decode the base64 return value, nil when absent
func (o *FinalOutcome) SuccessValue() ([]byte, error) {
	if o.Status.SuccessValue == nil {
		return nil, nil
	}
	return base64.StdEncoding.DecodeString(*o.Status.SuccessValue)
}

// Logs concatenate log lines from all receipt outcomes in order
func (o *FinalOutcome) Logs() []string {
	var logs []string
	if o.TransactionOutcome != nil {
		logs = append(logs, o.TransactionOutcome.Outcome.Logs...)
	}
	for _, r := range o.ReceiptsOutcome {
		logs = append(logs, r.Outcome.Logs...)
	}
	return logs
}

// The classifier is a first-match discriminator: transport failures
// first, then protocol-level rejections, then per-receipt panics. The
// four network-facing kinds are mutually exclusive.

// classifyRPCError map transport and protocol-rejection errors into
// the typed taxonomy.
func (c *Client) classifyRPCError(err error, accountID string) error {
	if err == nil {
		return nil
	}

	// transport failures first
	var httpErr *client.HTTPError
	if errors.As(err, &httpErr) {
		// the rpc client already exhausted its retries; mark
		// non-retryable so callers do not loop
		return &NetworkError{Message: httpErr.Error(), Retryable: false, Err: err}
	}
	var rpcErr *client.RPCError
	if !errors.As(err, &rpcErr) {
		// connection refused, DNS failure, timeout after retries
		return &NetworkError{Message: err.Error(), Retryable: false, Err: err}
	}

	// protocol-level rejection shapes
	if name := causeName(rpcErr); name != "" {
		switch name {
		case "UNKNOWN_ACCOUNT":
			return &AccountDoesNotExistError{AccountID: unknownAccountID(rpcErr, accountID)}
		case "TIMEOUT_ERROR":
			return &NetworkError{Message: rpcErr.Message, Retryable: false, Err: err}
		}
	}
	if cause := rejectionCause(rpcErr); cause != "" {
		if strings.Contains(cause, "does not exist") {
			return &AccountDoesNotExistError{AccountID: unknownAccountID(rpcErr, accountID)}
		}
		return &InvalidTransactionError{Cause: cause, Err: err}
	}
	return &InvalidTransactionError{Cause: rpcErr.Message, Err: err}
}

// classifyOutcome turn a success envelope into a FinalOutcome, or the
// per-receipt failure into a FunctionCallError. tx may be nil for
// status lookups of transactions we did not build.
func classifyOutcome(result *TxResultView, tx *types.Transaction) (*FinalOutcome, error) {
	if len(result.Status.Failure) > 0 {
		return nil, classifyExecutionFailure(result, tx)
	}
	return &FinalOutcome{
		Transaction:        result.Transaction,
		Status:             result.Status,
		TransactionOutcome: result.TransactionOutcome,
		ReceiptsOutcome:    result.ReceiptsOutcome,
		FinalityStatus:     result.FinalExecutionStatus,
	}, nil
}

// execution failure JSON shapes

type actionErrorView struct {
	ActionError struct {
		Index *uint64         `json:"index"`
		Kind  json.RawMessage `json:"kind"`
	} `json:"ActionError"`
}

type functionCallErrorView struct {
	FunctionCallError struct {
		ExecutionError string `json:"ExecutionError"`
	} `json:"FunctionCallError"`
}

const panicPrefix = "Smart contract panicked: "

func classifyExecutionFailure(result *TxResultView, tx *types.Transaction) error {
	var actionErr actionErrorView
	var fcErr functionCallErrorView
	if err := json.Unmarshal(result.Status.Failure, &actionErr); err == nil && len(actionErr.ActionError.Kind) > 0 {
		if err := json.Unmarshal(actionErr.ActionError.Kind, &fcErr); err == nil && fcErr.FunctionCallError.ExecutionError != "" {
			contractID, methodName := failingCall(result, tx, actionErr.ActionError.Index)
			return &FunctionCallError{
				ContractID: contractID,
				MethodName: methodName,
				Panic:      strings.TrimPrefix(fcErr.FunctionCallError.ExecutionError, panicPrefix),
				Logs:       failureLogs(result),
				RawResult:  result.Status.Failure,
			}
		}
	}
	// a non-panic action failure is still a whole-transaction
	// rejection from the caller's point of view
	return &InvalidTransactionError{Cause: string(result.Status.Failure)}
}

// failingCall recover the contract and method of the failing action
func failingCall(result *TxResultView, tx *types.Transaction, index *uint64) (contractID, methodName string) {
	contractID = result.Transaction.ReceiverID
	if tx != nil {
		contractID = tx.ReceiverID
		if index != nil && *index < uint64(len(tx.Actions)) {
			action := tx.Actions[*index]
			if action.Enum == types.ActionFunctionCall {
				methodName = action.FunctionCall.MethodName
			}
		} else {
			// fall back to the first function call in the set
			for _, action := range tx.Actions {
				if action.Enum == types.ActionFunctionCall {
					methodName = action.FunctionCall.MethodName
					break
				}
			}
		}
	}
	// prefer the executor of the failing receipt when present
	for _, r := range result.ReceiptsOutcome {
		if len(r.Outcome.Status.Failure) > 0 && r.Outcome.ExecutorID != "" {
			contractID = r.Outcome.ExecutorID
			break
		}
	}
	return contractID, methodName
}

// failureLogs collect log lines from the failing receipt
func failureLogs(result *TxResultView) []string {
	for _, r := range result.ReceiptsOutcome {
		if len(r.Outcome.Status.Failure) > 0 {
			return r.Outcome.Logs
		}
	}
	return nil
}

// nonce conflict detection

// isNonceConflict inspect an RPC error for the invalid-nonce rejection
// shape.
func isNonceConflict(err error) bool {
	var rpcErr *client.RPCError
	if !errors.As(err, &rpcErr) {
		return false
	}
	if len(rpcErr.Data) > 0 && rawHasKeyPath(rpcErr.Data, "TxExecutionError", "InvalidTxError", "InvalidNonce") {
		return true
	}
	if rpcErr.Cause != nil && len(rpcErr.Cause.Info) > 0 && rawHasKeyPath(rpcErr.Cause.Info, "InvalidNonce") {
		return true
	}
	return false
}

// rawHasKeyPath walk nested JSON objects by key
func rawHasKeyPath(data json.RawMessage, path ...string) bool {
	current := data
	for _, key := range path {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(current, &obj); err != nil {
			return false
		}
		next, ok := obj[key]
		if !ok {
			return false
		}
		current = next
	}
	return true
}

// causeName structured cause name of an rpc error, if present
func causeName(rpcErr *client.RPCError) string {
	if rpcErr.Cause != nil {
		return rpcErr.Cause.Name
	}
	return ""
}

// unknownAccountID extract the offending account from error info
func unknownAccountID(rpcErr *client.RPCError, fallback string) string {
	if rpcErr.Cause != nil && len(rpcErr.Cause.Info) > 0 {
		var info struct {
			RequestedAccountID string `json:"requested_account_id"`
		}
		if err := json.Unmarshal(rpcErr.Cause.Info, &info); err == nil && info.RequestedAccountID != "" {
			return info.RequestedAccountID
		}
	}
	return fallback
}

// rejectionCause extract the pre-execution rejection reason string
func rejectionCause(rpcErr *client.RPCError) string {
	if len(rpcErr.Data) == 0 {
		return ""
	}
	// older nodes report a bare string, newer ones a structured object
	var text string
	if err := json.Unmarshal(rpcErr.Data, &text); err == nil {
		return text
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(rpcErr.Data, &obj); err == nil {
		if txErr, ok := obj["TxExecutionError"]; ok {
			return string(txErr)
		}
		return string(rpcErr.Data)
	}
	return ""
}
