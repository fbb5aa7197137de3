package nearkit

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/nearkit/near-kit-go/types"
)

// LatestBlock fetch the latest final block header
func (c *Client) LatestBlock() (*BlockView, error) {
	var block BlockView
	err := c.rpc.Call(&block, "block", map[string]interface{}{"finality": "final"})
	if err != nil {
		return nil, c.classifyRPCError(err, "")
	}
	return &block, nil
}

// ViewAccessKey fetch the access key record for (accountID, publicKey)
func (c *Client) ViewAccessKey(accountID string, publicKey types.PublicKey) (*AccessKeyView, error) {
	var view AccessKeyView
	err := c.rpc.Call(&view, "query", map[string]interface{}{
		"request_type": "view_access_key",
		"finality":     "optimistic",
		"account_id":   accountID,
		"public_key":   publicKey.String(),
	})
	if err != nil {
		return nil, c.classifyRPCError(err, accountID)
	}
	if view.Error != "" {
		return nil, classifyQueryError(view.Error, accountID)
	}
	return &view, nil
}

// ViewAccount fetch basic account state
func (c *Client) ViewAccount(accountID string) (*AccountView, error) {
	var view AccountView
	err := c.rpc.Call(&view, "query", map[string]interface{}{
		"request_type": "view_account",
		"finality":     "optimistic",
		"account_id":   accountID,
	})
	if err != nil {
		return nil, c.classifyRPCError(err, accountID)
	}
	if view.Error != "" {
		return nil, classifyQueryError(view.Error, accountID)
	}
	return &view, nil
}

// CallFunction invoke a read-only contract method. args are JSON
// marshalled and base64 encoded per the query interface.
func (c *Client) CallFunction(contractID, methodName string, args interface{}) (*CallFunctionView, error) {
	argsJSON, err := json.Marshal(args)
	if err != nil {
		return nil, configErrorf("marshal view args: %v", err)
	}
	var view CallFunctionView
	err = c.rpc.Call(&view, "query", map[string]interface{}{
		"request_type": "call_function",
		"finality":     "optimistic",
		"account_id":   contractID,
		"method_name":  methodName,
		"args_base64":  base64.StdEncoding.EncodeToString(argsJSON),
	})
	if err != nil {
		return nil, c.classifyRPCError(err, contractID)
	}
	if view.Error != "" {
		return nil, classifyQueryError(view.Error, contractID)
	}
	return &view, nil
}

// TxStatus look up a transaction by hash, waiting for the requested
// finality level.
func (c *Client) TxStatus(txHash, senderID string, waitUntil WaitUntil) (*FinalOutcome, error) {
	var result TxResultView
	err := c.rpc.Call(&result, "tx", map[string]interface{}{
		"tx_hash":           txHash,
		"sender_account_id": senderID,
		"wait_until":        string(waitUntil.orDefault()),
	})
	if err != nil {
		return nil, c.classifyRPCError(err, senderID)
	}
	return classifyOutcome(&result, nil)
}

// fetchAccessKeyNonce is the nonce manager's fetch-on-miss hook
func (c *Client) fetchAccessKeyNonce(accountID string, publicKey types.PublicKey) (uint64, error) {
	view, err := c.ViewAccessKey(accountID, publicKey)
	if err != nil {
		return 0, err
	}
	return view.Nonce, nil
}

// classifyQueryError map error strings the node reports inside query
// result envelopes.
func classifyQueryError(message, accountID string) error {
	if strings.Contains(message, "does not exist") {
		return &AccountDoesNotExistError{AccountID: accountID}
	}
	return &InvalidTransactionError{Cause: message}
}

// latestBlockHash fetch the latest block hash in wire form
func (c *Client) latestBlockHash() (types.CryptoHash, uint64, error) {
	block, err := c.LatestBlock()
	if err != nil {
		return types.CryptoHash{}, 0, err
	}
	hash, err := types.ParseCryptoHash(block.Header.Hash)
	if err != nil {
		return types.CryptoHash{}, 0, &NetworkError{Message: "malformed block hash from node: " + err.Error(), Err: err}
	}
	return hash, block.Header.Height, nil
}
