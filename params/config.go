// Package params holds the TOML configuration of the command line
// tools and the relayer daemon.
package params

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/nearkit/near-kit-go/log"
	"github.com/nearkit/near-kit-go/types"
)

const (
	defaultRelayerPort = 11556
)

var (
	clientConfig      *ClientConfig
	loadConfigStarter sync.Once
)

// ClientConfig config items (decode from toml file)
type ClientConfig struct {
	Network *NetworkConfig
	Account *AccountConfig `toml:",omitempty" json:",omitempty"`
	Relayer *RelayerConfig `toml:",omitempty" json:",omitempty"`
}

// NetworkConfig network endpoint config
type NetworkConfig struct {
	Name   string
	RPCURL string
	// Headers are attached to every RPC request (API keys etc.)
	Headers map[string]string `toml:",omitempty" json:"-"`

	RPCTimeout    uint64 `toml:",omitempty" json:",omitempty"` // seconds
	MaxRetries    int    `toml:",omitempty" json:",omitempty"`
	InitialDelay  uint64 `toml:",omitempty" json:",omitempty"` // seconds
	MaxRetryDelay uint64 `toml:",omitempty" json:",omitempty"` // seconds
}

// AccountConfig signing account config. Exactly one of Key and
// KeyFile must be set when signing is needed.
type AccountConfig struct {
	AccountID string
	Key       string `toml:",omitempty" json:"-"`
	KeyFile   string `toml:",omitempty" json:"-"`
}

// RelayerConfig relayer daemon config
type RelayerConfig struct {
	Port           int
	AllowedOrigins []string

	// AllowedReceivers restricts which contracts relayed delegates
	// may target. Empty means no restriction.
	AllowedReceivers []string `toml:",omitempty" json:",omitempty"`
}

// GetConfig get client config
func GetConfig() *ClientConfig {
	return clientConfig
}

// SetConfig set client config
func SetConfig(config *ClientConfig) {
	clientConfig = config
}

// GetNetworkConfig get network config
func GetNetworkConfig() *NetworkConfig {
	return GetConfig().Network
}

// GetAccountConfig get account config
func GetAccountConfig() *AccountConfig {
	return GetConfig().Account
}

// GetRelayerConfig get relayer config
func GetRelayerConfig() *RelayerConfig {
	return GetConfig().Relayer
}

// GetRelayerPort get relayer listen port
func GetRelayerPort() int {
	port := GetConfig().Relayer.Port
	if port == 0 {
		port = defaultRelayerPort
	}
	return port
}

// RPCTimeoutDuration RPC timeout as a duration
func (c *NetworkConfig) RPCTimeoutDuration() time.Duration {
	return time.Duration(c.RPCTimeout) * time.Second
}

// InitialDelayDuration first retry backoff as a duration
func (c *NetworkConfig) InitialDelayDuration() time.Duration {
	return time.Duration(c.InitialDelay) * time.Second
}

// MaxRetryDelayDuration retry backoff ceiling as a duration
func (c *NetworkConfig) MaxRetryDelayDuration() time.Duration {
	return time.Duration(c.MaxRetryDelay) * time.Second
}

// LoadConfig load and check config from the given file, exit on error
func LoadConfig(configFile string, withRelayer bool) *ClientConfig {
	loadConfigStarter.Do(func() {
		if configFile == "" {
			log.Fatalf("LoadConfig error: no config file specified")
		}
		log.Println("Config file is", configFile)
		if !fileExist(configFile) {
			log.Fatalf("LoadConfig error: config file %v not exist", configFile)
		}
		config := &ClientConfig{}
		if _, err := toml.DecodeFile(configFile, &config); err != nil {
			log.Fatalf("LoadConfig error (toml DecodeFile): %v", err)
		}

		if !withRelayer {
			config.Relayer = nil
		}

		SetConfig(config)
		var bs []byte
		if log.JSONFormat {
			bs, _ = json.Marshal(config)
		} else {
			bs, _ = json.MarshalIndent(config, "", "  ")
		}
		log.Println("LoadConfig finished.", string(bs))
		if err := CheckConfig(withRelayer); err != nil {
			log.Fatalf("Check config failed. %v", err)
		}
	})
	return clientConfig
}

// CheckConfig check config
func CheckConfig(withRelayer bool) (err error) {
	config := GetConfig()
	if config.Network == nil {
		return errors.New("must config 'Network'")
	}
	err = config.Network.CheckConfig()
	if err != nil {
		return err
	}
	if config.Account != nil {
		err = config.Account.CheckConfig()
		if err != nil {
			return err
		}
	}
	if withRelayer {
		if config.Relayer == nil {
			return errors.New("relayer must config 'Relayer'")
		}
		if config.Account == nil {
			return errors.New("relayer must config 'Account'")
		}
		err = config.Relayer.CheckConfig()
		if err != nil {
			return err
		}
	}
	return nil
}

// CheckConfig check network config
func (c *NetworkConfig) CheckConfig() error {
	if c.RPCURL == "" {
		return errors.New("network must config non empty 'RPCURL'")
	}
	return nil
}

// CheckConfig check account config
func (c *AccountConfig) CheckConfig() error {
	if c.AccountID == "" {
		return errors.New("account must config non empty 'AccountID'")
	}
	if err := types.CheckAccountID(c.AccountID); err != nil {
		return fmt.Errorf("account 'AccountID' is invalid: %w", err)
	}
	if c.Key != "" && c.KeyFile != "" {
		return errors.New("account must config at most one of 'Key' and 'KeyFile'")
	}
	return nil
}

// CheckConfig check relayer config
func (c *RelayerConfig) CheckConfig() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("relayer 'Port' %v is out of range", c.Port)
	}
	for _, receiver := range c.AllowedReceivers {
		if err := types.CheckAccountID(receiver); err != nil {
			return fmt.Errorf("relayer 'AllowedReceivers' entry is invalid: %w", err)
		}
	}
	return nil
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
