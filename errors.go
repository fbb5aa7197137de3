package nearkit

import (
	"encoding/json"
	"fmt"
)

// The error taxonomy is a closed set of exported struct types, all
// constructed by the result classifier (ConfigurationError excepted,
// which is raised synchronously before any network call). Callers
// discriminate with errors.As and branch on the kind.

// ConfigurationError is client-side misuse detected before any network
// call: ambiguous units, malformed keys, missing required fields,
// builder reuse.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Message
}

func configErrorf(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

// NetworkError is a transport-level failure. Retryable reflects
// whether the underlying cause is a known-transient class (timeouts,
// 5xx, 429) versus a permanent one. After client-side retries are
// exhausted the surfaced error is marked non-retryable to avoid
// caller retry loops.
type NetworkError struct {
	Message   string
	Retryable bool
	Err       error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Message
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// AccountDoesNotExistError is returned when the RPC rejects an
// operation because the target account is missing.
type AccountDoesNotExistError struct {
	AccountID string
}

func (e *AccountDoesNotExistError) Error() string {
	return fmt.Sprintf("account %q does not exist", e.AccountID)
}

// InvalidTransactionError is a pre-execution rejection: bad access
// key, invalid nonce not auto-recovered, malformed structure.
type InvalidTransactionError struct {
	Cause string
	Err   error
}

func (e *InvalidTransactionError) Error() string {
	return "invalid transaction: " + e.Cause
}

func (e *InvalidTransactionError) Unwrap() error {
	return e.Err
}

// FunctionCallError is a contract-level execution failure. Panic is
// the raw panic string, Logs the log lines emitted by the failing
// receipt.
type FunctionCallError struct {
	ContractID string
	MethodName string
	Panic      string
	Logs       []string
	RawResult  json.RawMessage
}

func (e *FunctionCallError) Error() string {
	return fmt.Sprintf("function call %s.%s failed: %s", e.ContractID, e.MethodName, e.Panic)
}
