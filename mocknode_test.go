package nearkit

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/near/borsh-go"
	"github.com/stretchr/testify/require"

	"github.com/nearkit/near-kit-go/types"
)

// mockNode is a fake NEAR RPC endpoint. It keeps a tiny account state
// and applies submitted action batches atomically: if any action in a
// batch fails, the whole batch is recorded as rejected and no state
// changes.
type mockNode struct {
	t   *testing.T
	srv *httptest.Server

	mu          sync.Mutex
	blockHeight uint64
	blockHash   types.CryptoHash
	accessKeys  map[string]uint64 // accountID/publicKey -> on-chain nonce
	accounts    map[string]*big.Int

	// behavior knobs
	nonceFailures int    // reject this many send_tx calls with InvalidNonce
	panicMethod   string // function calls of this method panic
	panicMessage  string
	unknownSigner bool // reject submissions with UNKNOWN_ACCOUNT

	// observability
	sendCalls      int
	accessKeyFetch int
	lastWaitUntil  string
	applied        []*types.SignedTransaction
	rejected       []*types.SignedTransaction
}

func newMockNode(t *testing.T) *mockNode {
	m := &mockNode{
		t:           t,
		blockHeight: 100000,
		blockHash:   types.Sha256Hash([]byte("block")),
		accessKeys:  make(map[string]uint64),
		accounts:    make(map[string]*big.Int),
	}
	m.srv = httptest.NewServer(http.HandlerFunc(m.handle))
	t.Cleanup(m.srv.Close)
	return m
}

func (m *mockNode) client(t *testing.T, cfg Config) *Client {
	cfg.Network = NetworkConfig{Name: "mocknet", RPCURL: m.srv.URL}
	c, err := NewClient(cfg)
	require.NoError(t, err)
	return c
}

func (m *mockNode) registerKey(accountID string, publicKey types.PublicKey, nonce uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accessKeys[accountID+"/"+publicKey.String()] = nonce
	if _, ok := m.accounts[accountID]; !ok {
		m.accounts[accountID] = big.NewInt(1e18)
	}
}

type rpcRequest struct {
	ID     json.RawMessage        `json:"id"`
	Method string                 `json:"method"`
	Params map[string]interface{} `json:"params"`
}

type rpcErrorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Name    string      `json:"name,omitempty"`
	Cause   interface{} `json:"cause,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func (m *mockNode) reply(w http.ResponseWriter, result interface{}, rpcErr *rpcErrorBody) {
	resp := map[string]interface{}{"jsonrpc": "2.0", "id": 1}
	if rpcErr != nil {
		resp["error"] = rpcErr
	} else {
		resp["result"] = result
	}
	data, err := json.Marshal(resp)
	require.NoError(m.t, err)
	w.Write(data)
}

func (m *mockNode) handle(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	require.NoError(m.t, json.NewDecoder(r.Body).Decode(&req))

	m.mu.Lock()
	defer m.mu.Unlock()

	switch req.Method {
	case "block":
		m.reply(w, map[string]interface{}{
			"header": map[string]interface{}{
				"hash":   m.blockHash.String(),
				"height": m.blockHeight,
			},
		}, nil)
	case "query":
		m.handleQuery(w, req.Params)
	case "send_tx":
		m.handleSendTx(w, req.Params)
	case "tx":
		m.lastWaitUntil, _ = req.Params["wait_until"].(string)
		last := m.lastApplied()
		if last == nil {
			m.reply(w, nil, &rpcErrorBody{
				Code:    -32000,
				Message: "Transaction not found",
				Name:    "HANDLER_ERROR",
				Cause:   map[string]interface{}{"name": "UNKNOWN_TRANSACTION"},
			})
			return
		}
		m.reply(w, m.successResult(last, m.lastWaitUntil), nil)
	default:
		m.reply(w, nil, &rpcErrorBody{Code: -32601, Message: "method not found"})
	}
}

func (m *mockNode) handleQuery(w http.ResponseWriter, params map[string]interface{}) {
	requestType, _ := params["request_type"].(string)
	accountID, _ := params["account_id"].(string)
	switch requestType {
	case "view_access_key":
		m.accessKeyFetch++
		publicKey, _ := params["public_key"].(string)
		nonce, ok := m.accessKeys[accountID+"/"+publicKey]
		if !ok {
			m.reply(w, map[string]interface{}{
				"error": fmt.Sprintf("access key %s does not exist while viewing", publicKey),
			}, nil)
			return
		}
		m.reply(w, map[string]interface{}{
			"nonce":        nonce,
			"permission":   "FullAccess",
			"block_height": m.blockHeight,
			"block_hash":   m.blockHash.String(),
		}, nil)
	case "view_account":
		balance, ok := m.accounts[accountID]
		if !ok {
			m.reply(w, nil, &rpcErrorBody{
				Code:    -32000,
				Message: "server error",
				Name:    "HANDLER_ERROR",
				Cause: map[string]interface{}{
					"name": "UNKNOWN_ACCOUNT",
					"info": map[string]interface{}{"requested_account_id": accountID},
				},
			})
			return
		}
		m.reply(w, map[string]interface{}{
			"amount":        balance.String(),
			"locked":        "0",
			"code_hash":     "11111111111111111111111111111111",
			"storage_usage": 100,
		}, nil)
	case "call_function":
		m.reply(w, map[string]interface{}{
			"result": []int{34, 111, 107, 34}, // "ok" as JSON bytes
			"logs":   []string{},
		}, nil)
	default:
		m.reply(w, nil, &rpcErrorBody{Code: -32602, Message: "unknown request type"})
	}
}

func (m *mockNode) handleSendTx(w http.ResponseWriter, params map[string]interface{}) {
	m.sendCalls++
	m.lastWaitUntil, _ = params["wait_until"].(string)

	encoded, _ := params["signed_tx_base64"].(string)
	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(m.t, err)
	signed := new(types.SignedTransaction)
	require.NoError(m.t, borsh.Deserialize(signed, raw))

	if m.unknownSigner {
		m.rejected = append(m.rejected, signed)
		m.reply(w, nil, &rpcErrorBody{
			Code:    -32000,
			Message: "server error",
			Name:    "HANDLER_ERROR",
			Cause: map[string]interface{}{
				"name": "UNKNOWN_ACCOUNT",
				"info": map[string]interface{}{"requested_account_id": signed.Transaction.SignerID},
			},
		})
		return
	}

	keyID := signed.Transaction.SignerID + "/" + signed.Transaction.PublicKey.String()
	chainNonce := m.accessKeys[keyID]
	if m.nonceFailures > 0 || signed.Transaction.Nonce <= chainNonce {
		if m.nonceFailures > 0 {
			m.nonceFailures--
			// pretend another sender bumped the on-chain nonce
			m.accessKeys[keyID] = chainNonce + 10
		}
		m.rejected = append(m.rejected, signed)
		m.reply(w, nil, &rpcErrorBody{
			Code:    -32000,
			Message: "Invalid transaction",
			Name:    "HANDLER_ERROR",
			Cause:   map[string]interface{}{"name": "INVALID_TRANSACTION"},
			Data: map[string]interface{}{
				"TxExecutionError": map[string]interface{}{
					"InvalidTxError": map[string]interface{}{
						"InvalidNonce": map[string]interface{}{
							"tx_nonce": signed.Transaction.Nonce,
							"ak_nonce": m.accessKeys[keyID],
						},
					},
				},
			},
		})
		return
	}

	// atomic batch application: validate every action before any
	// state change
	for _, action := range signed.Transaction.Actions {
		if action.Enum == types.ActionFunctionCall && action.FunctionCall.MethodName == m.panicMethod && m.panicMethod != "" {
			m.rejected = append(m.rejected, signed)
			m.reply(w, m.panicResult(signed), nil)
			return
		}
	}
	m.accessKeys[keyID] = signed.Transaction.Nonce
	for _, action := range signed.Transaction.Actions {
		switch action.Enum {
		case types.ActionCreateAccount:
			m.accounts[signed.Transaction.ReceiverID] = big.NewInt(0)
		case types.ActionTransfer:
			balance := m.accounts[signed.Transaction.ReceiverID]
			if balance == nil {
				balance = big.NewInt(0)
			}
			m.accounts[signed.Transaction.ReceiverID] = new(big.Int).Add(balance, &action.Transfer.Deposit)
		}
	}
	m.applied = append(m.applied, signed)
	m.reply(w, m.successResult(signed, m.lastWaitUntil), nil)
}

func (m *mockNode) lastApplied() *types.SignedTransaction {
	if len(m.applied) == 0 {
		return nil
	}
	return m.applied[len(m.applied)-1]
}

func (m *mockNode) txView(signed *types.SignedTransaction) map[string]interface{} {
	hash, err := signed.Transaction.Hash()
	require.NoError(m.t, err)
	return map[string]interface{}{
		"hash":        hash.String(),
		"signer_id":   signed.Transaction.SignerID,
		"receiver_id": signed.Transaction.ReceiverID,
		"public_key":  signed.Transaction.PublicKey.String(),
		"nonce":       signed.Transaction.Nonce,
	}
}

// successResult build a result envelope honoring the wait level: an
// INCLUDED (or weaker) wait has no return value or receipts yet.
func (m *mockNode) successResult(signed *types.SignedTransaction, waitUntil string) map[string]interface{} {
	result := map[string]interface{}{
		"final_execution_status": waitUntil,
		"transaction":            m.txView(signed),
	}
	if waitUntil == string(WaitNone) || waitUntil == string(WaitIncluded) {
		result["status"] = map[string]interface{}{}
		return result
	}
	result["status"] = map[string]interface{}{"SuccessValue": base64.StdEncoding.EncodeToString([]byte(`"done"`))}
	result["transaction_outcome"] = map[string]interface{}{
		"id":         "tx-outcome",
		"block_hash": m.blockHash.String(),
		"outcome": map[string]interface{}{
			"executor_id": signed.Transaction.SignerID,
			"gas_burnt":   1,
			"logs":        []string{},
			"status":      map[string]interface{}{"SuccessReceiptId": "receipt-1"},
		},
	}
	result["receipts_outcome"] = []map[string]interface{}{{
		"id":         "receipt-1",
		"block_hash": m.blockHash.String(),
		"outcome": map[string]interface{}{
			"executor_id": signed.Transaction.ReceiverID,
			"gas_burnt":   1,
			"logs":        []string{"receipt log line"},
			"status":      map[string]interface{}{"SuccessValue": ""},
		},
	}}
	return result
}

func (m *mockNode) panicResult(signed *types.SignedTransaction) map[string]interface{} {
	failure := map[string]interface{}{
		"ActionError": map[string]interface{}{
			"index": m.panicActionIndex(signed),
			"kind": map[string]interface{}{
				"FunctionCallError": map[string]interface{}{
					"ExecutionError": "Smart contract panicked: " + m.panicMessage,
				},
			},
		},
	}
	return map[string]interface{}{
		"final_execution_status": m.lastWaitUntil,
		"transaction":            m.txView(signed),
		"status":                 map[string]interface{}{"Failure": failure},
		"receipts_outcome": []map[string]interface{}{{
			"id":         "receipt-1",
			"block_hash": m.blockHash.String(),
			"outcome": map[string]interface{}{
				"executor_id": signed.Transaction.ReceiverID,
				"gas_burnt":   1,
				"logs":        []string{"about to fail"},
				"status":      map[string]interface{}{"Failure": failure},
			},
		}},
	}
}

func (m *mockNode) panicActionIndex(signed *types.SignedTransaction) int {
	for i, action := range signed.Transaction.Actions {
		if action.Enum == types.ActionFunctionCall && action.FunctionCall.MethodName == m.panicMethod {
			return i
		}
	}
	return 0
}
