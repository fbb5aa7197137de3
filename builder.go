package nearkit

import (
	"encoding/json"
	"math/big"

	"github.com/nearkit/near-kit-go/types"
	"github.com/nearkit/near-kit-go/units"
)

// DefaultFunctionCallGas is attached to function calls that do not
// specify gas: 30 Tgas.
const DefaultFunctionCallGas = uint64(30_000_000_000_000)

// TxBuilder accumulates an ordered action list bound to one signer and
// one receiver, then is consumed exactly once by Send or Delegate.
// A consumed builder errors on reuse rather than silently re-signing.
//
// All accumulated actions are transmitted as a single wire-level
// transaction, which the network executes sequentially and
// all-or-nothing: any action failure reverts the whole set and
// discards promises earlier actions would have produced. The guarantee
// does NOT extend into receipts spawned by function calls; those are
// independently executed, non-rolled-back units.
type TxBuilder struct {
	client     *Client
	signerID   string
	receiverID string // active receiver context
	actions    []types.Action
	signer     Signer // per-transaction override
	consumed   bool
	err        error // first construction error, surfaced at Send/Delegate
}

// Transaction start building a transaction signed by signerID
func (c *Client) Transaction(signerID string) *TxBuilder {
	b := &TxBuilder{client: c, signerID: signerID}
	if err := types.CheckAccountID(signerID); err != nil {
		b.fail(configErrorf("signer: %v", err))
	}
	return b
}

func (b *TxBuilder) fail(err error) *TxBuilder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// setReceiver bind the transaction receiver. The first action naming a
// receiver seeds the context; later actions must agree, since one
// transaction targets one receiver.
func (b *TxBuilder) setReceiver(receiverID string) bool {
	if receiverID == "" {
		return true
	}
	if err := types.CheckAccountID(receiverID); err != nil {
		b.fail(configErrorf("receiver: %v", err))
		return false
	}
	if b.receiverID == "" {
		b.receiverID = receiverID
		return true
	}
	if b.receiverID != receiverID {
		b.fail(configErrorf("conflicting receivers %q and %q in one transaction", b.receiverID, receiverID))
		return false
	}
	return true
}

func (b *TxBuilder) append(action types.Action) *TxBuilder {
	if b.err == nil {
		b.actions = append(b.actions, action)
	}
	return b
}

// CreateAccount create newAccountID and make it the active receiver,
// so following actions (transfer, deploy, add key) target the new
// account without repeating its ID.
func (b *TxBuilder) CreateAccount(newAccountID string) *TxBuilder {
	if !b.setReceiver(newAccountID) {
		return b
	}
	return b.append(types.NewCreateAccountAction())
}

// Transfer send amount to receiverID. An empty receiverID targets the
// active receiver context (e.g. an account created earlier in the
// chain). The amount is parsed by units.ParseAmount: a bare number is
// rejected as ambiguous.
func (b *TxBuilder) Transfer(receiverID string, amount interface{}) *TxBuilder {
	deposit, err := units.ParseAmount(amount)
	if err != nil {
		return b.fail(configErrorf("transfer amount: %v", err))
	}
	if !b.setReceiver(receiverID) {
		return b
	}
	return b.append(types.NewTransferAction(deposit))
}

// callOpts options of one function call action
type callOpts struct {
	gas     uint64
	deposit *big.Int
}

// CallOption adjusts one function call action.
type CallOption func(*callOpts) error

// CallGas attach gas to a function call ("30 Tgas", "10000 gas" or a
// bare integer of base gas units)
func CallGas(gas interface{}) CallOption {
	return func(o *callOpts) error {
		parsed, err := units.ParseGas(gas)
		if err != nil {
			return err
		}
		o.gas = parsed
		return nil
	}
}

// CallDeposit attach a deposit to a function call ("1 yocto",
// "0.1 NEAR"); a bare number is rejected as ambiguous
func CallDeposit(amount interface{}) CallOption {
	return func(o *callOpts) error {
		parsed, err := units.ParseAmount(amount)
		if err != nil {
			return err
		}
		o.deposit = parsed
		return nil
	}
}

// FunctionCall call methodName on contractID. args may be nil, raw
// []byte, or any JSON-marshallable value. Defaults: 30 Tgas, no
// deposit.
func (b *TxBuilder) FunctionCall(contractID, methodName string, args interface{}, opts ...CallOption) *TxBuilder {
	if !b.setReceiver(contractID) {
		return b
	}
	argBytes, err := marshalArgs(args)
	if err != nil {
		return b.fail(configErrorf("function call args: %v", err))
	}
	options := callOpts{gas: DefaultFunctionCallGas}
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return b.fail(configErrorf("function call %q: %v", methodName, err))
		}
	}
	return b.append(types.NewFunctionCallAction(methodName, argBytes, options.gas, options.deposit))
}

func marshalArgs(args interface{}) ([]byte, error) {
	switch v := args.(type) {
	case nil:
		return []byte{}, nil
	case []byte:
		return v, nil
	case json.RawMessage:
		return v, nil
	default:
		return json.Marshal(args)
	}
}

// DeployContract deploy wasm code to the active receiver (the signer's
// own account unless a receiver context was set earlier).
func (b *TxBuilder) DeployContract(code []byte) *TxBuilder {
	return b.append(types.NewDeployContractAction(code))
}

// Stake stake amount with the given validator key
func (b *TxBuilder) Stake(publicKey types.PublicKey, amount interface{}) *TxBuilder {
	parsed, err := units.ParseAmount(amount)
	if err != nil {
		return b.fail(configErrorf("stake amount: %v", err))
	}
	return b.append(types.NewStakeAction(parsed, publicKey))
}

// AddFullAccessKey add an unrestricted key to the active receiver
func (b *TxBuilder) AddFullAccessKey(publicKey types.PublicKey) *TxBuilder {
	return b.append(types.NewAddKeyAction(publicKey, types.FullAccessPermission()))
}

// AddFunctionCallKey add a key restricted to calling methodNames on
// receiverID. A nil allowance means unlimited; otherwise it is parsed
// by units.ParseAmount. The network deletes the key once the allowance
// is exhausted by gas spend; this is not enforced client side.
func (b *TxBuilder) AddFunctionCallKey(publicKey types.PublicKey, receiverID string, methodNames []string, allowance interface{}) *TxBuilder {
	var parsed *big.Int
	if allowance != nil {
		var err error
		parsed, err = units.ParseAmount(allowance)
		if err != nil {
			return b.fail(configErrorf("key allowance: %v", err))
		}
	}
	return b.append(types.NewAddKeyAction(publicKey, types.FunctionCallAccessPermission(receiverID, methodNames, parsed)))
}

// DeleteKey remove an access key from the active receiver
func (b *TxBuilder) DeleteKey(publicKey types.PublicKey) *TxBuilder {
	return b.append(types.NewDeleteKeyAction(publicKey))
}

// DeleteAccount delete the active receiver account, sending its
// balance to beneficiaryID
func (b *TxBuilder) DeleteAccount(beneficiaryID string) *TxBuilder {
	if err := types.CheckAccountID(beneficiaryID); err != nil {
		return b.fail(configErrorf("beneficiary: %v", err))
	}
	return b.append(types.NewDeleteAccountAction(beneficiaryID))
}

// PublishContract publish contract code on-chain, identified either by
// its code hash or by the publishing account
func (b *TxBuilder) PublishContract(code []byte, mode types.GlobalContractDeployMode) *TxBuilder {
	return b.append(types.NewDeployGlobalContractAction(code, mode))
}

// DeployFromPublished deploy previously published code by reference
func (b *TxBuilder) DeployFromPublished(ref types.GlobalContractIdentifier) *TxBuilder {
	return b.append(types.NewUseGlobalContractAction(ref))
}

// SignedDelegateAction append a previously decoded signed delegate
// action. This is intended to be the only action in a relayer's
// transaction: the relayer signs and pays for the wrapping transaction
// while the original user stays the logical actor. The receiver is the
// delegate's sender account.
func (b *TxBuilder) SignedDelegateAction(sda *types.SignedDelegateAction) *TxBuilder {
	if sda == nil {
		return b.fail(configErrorf("nil signed delegate action"))
	}
	if err := sda.Validate(); err != nil {
		return b.fail(configErrorf("signed delegate action: %v", err))
	}
	if !b.setReceiver(sda.DelegateAction.SenderID) {
		return b
	}
	return b.append(types.NewDelegateAction(*sda))
}

// SignWith override the signing identity for this transaction only;
// shared client configuration is not touched.
func (b *TxBuilder) SignWith(signer Signer) *TxBuilder {
	b.signer = signer
	return b
}

// consume enforce the single-consumption contract
func (b *TxBuilder) consume() error {
	if b.err != nil {
		return b.err
	}
	if b.consumed {
		return configErrorf("transaction builder already consumed; build a new one to send again")
	}
	if len(b.actions) == 0 {
		return configErrorf("transaction has no actions")
	}
	b.consumed = true
	return nil
}

// receiver the resolved receiver: the active context, else the signer
// itself (self-targeted deploys and key edits).
func (b *TxBuilder) receiver() string {
	if b.receiverID != "" {
		return b.receiverID
	}
	return b.signerID
}
