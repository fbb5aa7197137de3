package types

import (
	"math/big"

	"github.com/near/borsh-go"
)

// Action enum tags in NEAR wire order. The order is part of the
// protocol serialization and must not change.
const (
	ActionCreateAccount borsh.Enum = iota
	ActionDeployContract
	ActionFunctionCall
	ActionTransfer
	ActionStake
	ActionAddKey
	ActionDeleteKey
	ActionDeleteAccount
	ActionDelegate
	ActionDeployGlobalContract
	ActionUseGlobalContract
)

// Action is one primitive operation within a transaction. It is a
// borsh tagged union: Enum selects which variant field is serialized.
type Action struct {
	Enum                 borsh.Enum `borsh_enum:"true"`
	CreateAccount        CreateAccount
	DeployContract       DeployContract
	FunctionCall         FunctionCall
	Transfer             Transfer
	Stake                Stake
	AddKey               AddKey
	DeleteKey            DeleteKey
	DeleteAccount        DeleteAccount
	Delegate             SignedDelegateAction
	DeployGlobalContract DeployGlobalContract
	UseGlobalContract    UseGlobalContract
}

// CreateAccount creates the receiver account.
type CreateAccount struct{}

// DeployContract deploys wasm code to the receiver account.
type DeployContract struct {
	Code []byte
}

// FunctionCall calls a method on the receiver contract.
type FunctionCall struct {
	MethodName string
	Args       []byte
	Gas        uint64
	Deposit    big.Int
}

// Transfer moves Deposit yoctoNEAR to the receiver.
type Transfer struct {
	Deposit big.Int
}

// Stake stakes the given amount with a validator key.
type Stake struct {
	Stake     big.Int
	PublicKey PublicKey
}

// AddKey adds an access key to the receiver account.
type AddKey struct {
	PublicKey PublicKey
	AccessKey AccessKey
}

// DeleteKey removes an access key from the receiver account.
type DeleteKey struct {
	PublicKey PublicKey
}

// DeleteAccount deletes the receiver account, sending its remaining
// balance to the beneficiary.
type DeleteAccount struct {
	BeneficiaryID string
}

// DeployGlobalContract publishes contract code on-chain so other
// accounts can deploy it by reference.
type DeployGlobalContract struct {
	Code       []byte
	DeployMode GlobalContractDeployMode
}

// UseGlobalContract deploys previously published code by reference.
type UseGlobalContract struct {
	ContractIdentifier GlobalContractIdentifier
}

// GlobalContractDeployMode selects how published code is identified:
// immutably by its code hash, or mutably by the publisher account.
type GlobalContractDeployMode struct {
	Enum      borsh.Enum `borsh_enum:"true"`
	CodeHash  struct{}
	AccountID struct{}
}

// DeployModeCodeHash identify published code by its sha256 hash
func DeployModeCodeHash() GlobalContractDeployMode {
	return GlobalContractDeployMode{Enum: 0}
}

// DeployModeAccountID identify published code by the publisher account
func DeployModeAccountID() GlobalContractDeployMode {
	return GlobalContractDeployMode{Enum: 1}
}

// GlobalContractIdentifier references published contract code.
type GlobalContractIdentifier struct {
	Enum      borsh.Enum `borsh_enum:"true"`
	CodeHash  CryptoHash
	AccountID string
}

// GlobalContractByCodeHash reference published code by hash
func GlobalContractByCodeHash(hash CryptoHash) GlobalContractIdentifier {
	return GlobalContractIdentifier{Enum: 0, CodeHash: hash}
}

// GlobalContractByAccountID reference published code by publisher
func GlobalContractByAccountID(accountID string) GlobalContractIdentifier {
	return GlobalContractIdentifier{Enum: 1, AccountID: accountID}
}

// AccessKey is an access key record as stored on-chain.
type AccessKey struct {
	Nonce      uint64
	Permission AccessKeyPermission
}

// AccessKeyPermission is either a function call restriction or full
// access. Note the wire order: FunctionCall is variant 0.
type AccessKeyPermission struct {
	Enum         borsh.Enum `borsh_enum:"true"`
	FunctionCall FunctionCallPermission
	FullAccess   struct{}
}

// FunctionCallPermission restricts a key to calling the given methods
// on one receiver. An exhausted allowance causes the network to delete
// the key; this is not enforced client side.
type FunctionCallPermission struct {
	Allowance   *big.Int
	ReceiverID  string
	MethodNames []string
}

// FullAccessPermission build an unrestricted key permission
func FullAccessPermission() AccessKeyPermission {
	return AccessKeyPermission{Enum: 1}
}

// FunctionCallAccessPermission build a function-call restricted
// permission. Empty methodNames means any method. A nil allowance
// means unlimited gas allowance.
func FunctionCallAccessPermission(receiverID string, methodNames []string, allowance *big.Int) AccessKeyPermission {
	if methodNames == nil {
		methodNames = []string{}
	}
	return AccessKeyPermission{
		Enum: 0,
		FunctionCall: FunctionCallPermission{
			Allowance:   allowance,
			ReceiverID:  receiverID,
			MethodNames: methodNames,
		},
	}
}

// action constructors

// NewCreateAccountAction create account action
func NewCreateAccountAction() Action {
	return Action{Enum: ActionCreateAccount}
}

// NewDeployContractAction deploy contract action
func NewDeployContractAction(code []byte) Action {
	return Action{Enum: ActionDeployContract, DeployContract: DeployContract{Code: code}}
}

// NewFunctionCallAction function call action
func NewFunctionCallAction(methodName string, args []byte, gas uint64, deposit *big.Int) Action {
	if deposit == nil {
		deposit = new(big.Int)
	}
	return Action{Enum: ActionFunctionCall, FunctionCall: FunctionCall{
		MethodName: methodName,
		Args:       args,
		Gas:        gas,
		Deposit:    *deposit,
	}}
}

// NewTransferAction transfer action
func NewTransferAction(deposit *big.Int) Action {
	return Action{Enum: ActionTransfer, Transfer: Transfer{Deposit: *deposit}}
}

// NewStakeAction stake action
func NewStakeAction(amount *big.Int, publicKey PublicKey) Action {
	return Action{Enum: ActionStake, Stake: Stake{Stake: *amount, PublicKey: publicKey}}
}

// NewAddKeyAction add key action
func NewAddKeyAction(publicKey PublicKey, permission AccessKeyPermission) Action {
	return Action{Enum: ActionAddKey, AddKey: AddKey{
		PublicKey: publicKey,
		AccessKey: AccessKey{Nonce: 0, Permission: permission},
	}}
}

// NewDeleteKeyAction delete key action
func NewDeleteKeyAction(publicKey PublicKey) Action {
	return Action{Enum: ActionDeleteKey, DeleteKey: DeleteKey{PublicKey: publicKey}}
}

// NewDeleteAccountAction delete account action
func NewDeleteAccountAction(beneficiaryID string) Action {
	return Action{Enum: ActionDeleteAccount, DeleteAccount: DeleteAccount{BeneficiaryID: beneficiaryID}}
}

// NewDelegateAction wrap a signed delegate action for relaying
func NewDelegateAction(signed SignedDelegateAction) Action {
	return Action{Enum: ActionDelegate, Delegate: signed}
}

// NewDeployGlobalContractAction publish contract code action
func NewDeployGlobalContractAction(code []byte, mode GlobalContractDeployMode) Action {
	return Action{Enum: ActionDeployGlobalContract, DeployGlobalContract: DeployGlobalContract{
		Code:       code,
		DeployMode: mode,
	}}
}

// NewUseGlobalContractAction deploy by published reference action
func NewUseGlobalContractAction(ref GlobalContractIdentifier) Action {
	return Action{Enum: ActionUseGlobalContract, UseGlobalContract: UseGlobalContract{ContractIdentifier: ref}}
}
