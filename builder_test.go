package nearkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nearkit/near-kit-go/keystore"
	"github.com/nearkit/near-kit-go/types"
)

func testClient(t *testing.T) (*Client, *keystore.KeyPair) {
	key, err := keystore.GenerateKeyPair()
	require.NoError(t, err)
	c, err := NewClient(Config{
		Network: NetworkConfig{Name: "unit", RPCURL: "http://127.0.0.1:1"},
		Key:     key,
	})
	require.NoError(t, err)
	return c, key
}

func requireConfigError(t *testing.T, err error, contains string) {
	t.Helper()
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Message, contains)
}

func TestBuilderRejectsBareAmount(t *testing.T) {
	c, _ := testClient(t)
	_, err := c.Transaction("alice.near").Transfer("bob.near", 5).Send()
	requireConfigError(t, err, "did you mean")
}

func TestBuilderRejectsConflictingReceivers(t *testing.T) {
	c, _ := testClient(t)
	_, err := c.Transaction("alice.near").
		Transfer("bob.near", "1 NEAR").
		FunctionCall("contract.near", "do_thing", nil).
		Send()
	requireConfigError(t, err, "conflicting receivers")
}

func TestBuilderSharedReceiverContext(t *testing.T) {
	c, _ := testClient(t)
	b := c.Transaction("alice.near").
		CreateAccount("new.alice.near").
		Transfer("", "0.5 NEAR").
		AddFullAccessKey(mustKey(t).PublicKey())
	require.NoError(t, b.err)
	assert.Equal(t, "new.alice.near", b.receiver())
	require.Len(t, b.actions, 3)
	assert.Equal(t, types.ActionCreateAccount, b.actions[0].Enum)
	assert.Equal(t, types.ActionTransfer, b.actions[1].Enum)
	assert.Equal(t, types.ActionAddKey, b.actions[2].Enum)
}

func TestBuilderReceiverDefaultsToSigner(t *testing.T) {
	c, _ := testClient(t)
	b := c.Transaction("alice.near").DeployContract([]byte{0, 1, 2})
	assert.Equal(t, "alice.near", b.receiver())
}

func TestBuilderRejectsEmptyActionSet(t *testing.T) {
	c, _ := testClient(t)
	_, err := c.Transaction("alice.near").Send()
	requireConfigError(t, err, "no actions")
}

func TestBuilderRejectsInvalidSigner(t *testing.T) {
	c, _ := testClient(t)
	_, err := c.Transaction("UPPER.near").Transfer("bob.near", "1 NEAR").Send()
	requireConfigError(t, err, "signer")
}

func TestBuilderSingleConsumption(t *testing.T) {
	node := newMockNode(t)
	key := mustKey(t)
	c := node.client(t, Config{Key: key})
	node.registerKey("alice.near", key.PublicKey(), 7)

	b := c.Transaction("alice.near").Transfer("bob.near", "1 NEAR")
	_, err := b.Send()
	require.NoError(t, err)

	_, err = b.Send()
	requireConfigError(t, err, "already consumed")
	_, err = b.Delegate()
	requireConfigError(t, err, "already consumed")
}

func TestFunctionCallDefaultsAndOptions(t *testing.T) {
	c, _ := testClient(t)

	b := c.Transaction("alice.near").FunctionCall("contract.near", "set", map[string]string{"k": "v"})
	require.NoError(t, b.err)
	call := b.actions[0].FunctionCall
	assert.Equal(t, DefaultFunctionCallGas, call.Gas)
	assert.Equal(t, "0", call.Deposit.String())
	assert.JSONEq(t, `{"k":"v"}`, string(call.Args))

	b = c.Transaction("alice.near").FunctionCall("contract.near", "set", nil,
		CallGas("100 Tgas"), CallDeposit("1 yocto"))
	require.NoError(t, b.err)
	call = b.actions[0].FunctionCall
	assert.Equal(t, uint64(100_000_000_000_000), call.Gas)
	assert.Equal(t, "1", call.Deposit.String())
}

func TestFunctionCallRejectsAmbiguousDeposit(t *testing.T) {
	c, _ := testClient(t)
	_, err := c.Transaction("alice.near").
		FunctionCall("contract.near", "set", nil, CallDeposit(100)).
		Send()
	requireConfigError(t, err, "did you mean")
}

func TestBuilderFirstErrorWins(t *testing.T) {
	c, _ := testClient(t)
	_, err := c.Transaction("alice.near").
		Transfer("bob.near", 5).          // ambiguous amount
		Transfer("other.near", "1 NEAR"). // would be a receiver conflict
		Send()
	requireConfigError(t, err, "did you mean")
}

func mustKey(t *testing.T) *keystore.KeyPair {
	t.Helper()
	key, err := keystore.GenerateKeyPair()
	require.NoError(t, err)
	return key
}
