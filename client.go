// Package nearkit builds, signs and submits NEAR transactions. The
// entry point is Client: configure it once, then chain actions with
// Client.Transaction and consume the builder with Send or Delegate.
package nearkit

import (
	"time"

	"github.com/nearkit/near-kit-go/keystore"
	"github.com/nearkit/near-kit-go/rpc/client"
)

// NetworkConfig selects which network to talk to. Any conforming
// JSON-RPC endpoint is interchangeable: testnet, mainnet, a local
// sandbox node or a private network. Headers are attached to every
// RPC request (e.g. API key headers for third-party providers).
type NetworkConfig struct {
	Name    string
	RPCURL  string
	Headers map[string]string
}

// preconfigured networks
var (
	Testnet = NetworkConfig{Name: "testnet", RPCURL: "https://rpc.testnet.near.org"}
	Mainnet = NetworkConfig{Name: "mainnet", RPCURL: "https://rpc.mainnet.near.org"}
)

// Config configures a Client. Multiple independent clients with
// different credentials coexist safely; there is no process-wide
// shared state.
//
// The signing identity for a transaction resolves in this order:
// per-transaction SignWith override, Wallet, SignerFn, Key, then
// KeyStore lookup by signer ID.
type Config struct {
	Network NetworkConfig

	// signing identities, all optional
	Wallet   WalletAdapter
	SignerFn Signer
	Key      *keystore.KeyPair
	KeyStore keystore.KeyStore

	// transport retry knobs, zero values take the documented
	// defaults; a negative MaxRetries disables retries
	RPCTimeout    time.Duration
	MaxRetries    int
	InitialDelay  time.Duration
	MaxRetryDelay time.Duration
}

// Client talks to one NEAR network. Safe for concurrent use; the
// per-key nonce cache is the only mutable shared state and is guarded
// internally.
type Client struct {
	cfg    Config
	rpc    *client.Client
	nonces *nonceManager
}

// NewClient create a client for the configured network
func NewClient(cfg Config) (*Client, error) {
	if cfg.Network.RPCURL == "" {
		return nil, configErrorf("network RPC URL is required")
	}
	rpcClient := client.New(client.Config{
		URL:           cfg.Network.RPCURL,
		Headers:       cfg.Network.Headers,
		Timeout:       cfg.RPCTimeout,
		MaxRetries:    cfg.MaxRetries,
		InitialDelay:  cfg.InitialDelay,
		MaxRetryDelay: cfg.MaxRetryDelay,
	})
	return &Client{
		cfg:    cfg,
		rpc:    rpcClient,
		nonces: newNonceManager(),
	}, nil
}

// Network return the configured network
func (c *Client) Network() NetworkConfig {
	return c.cfg.Network
}

// resolveSigner pick the signing identity for a transaction.
// A nil, nil return means wallet mode: signing and submission are
// delegated wholesale to the external wallet adapter.
func (c *Client) resolveSigner(signerID string, override Signer) (Signer, WalletAdapter, error) {
	if override != nil {
		return override, nil, nil
	}
	if c.cfg.Wallet != nil {
		return nil, c.cfg.Wallet, nil
	}
	if c.cfg.SignerFn != nil {
		return c.cfg.SignerFn, nil, nil
	}
	if c.cfg.Key != nil {
		return c.cfg.Key, nil, nil
	}
	if c.cfg.KeyStore != nil {
		key, err := c.cfg.KeyStore.Get(signerID)
		if err != nil {
			return nil, nil, configErrorf("no key for signer %q: %v", signerID, err)
		}
		return key, nil, nil
	}
	return nil, nil, configErrorf("no signing identity configured for %q", signerID)
}
