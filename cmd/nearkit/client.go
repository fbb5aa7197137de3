package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/urfave/cli/v2"

	nearkit "github.com/nearkit/near-kit-go"
	"github.com/nearkit/near-kit-go/cmd/utils"
	"github.com/nearkit/near-kit-go/keystore"
	"github.com/nearkit/near-kit-go/params"
)

// getClient build a client from the config file when one is given,
// otherwise from command line flags.
func getClient(ctx *cli.Context) (*nearkit.Client, error) {
	utils.SetLogger(ctx)

	configFile := utils.GetConfigFilePath(ctx)
	if configFile != "" {
		config := params.LoadConfig(configFile, false)
		return clientFromConfig(ctx, config)
	}

	network, err := getNetwork(ctx)
	if err != nil {
		return nil, err
	}
	key, err := getKey(ctx.String(utils.KeyFlag.Name), ctx.String(utils.KeyFileFlag.Name))
	if err != nil {
		return nil, err
	}
	return nearkit.NewClient(nearkit.Config{Network: network, Key: key})
}

func clientFromConfig(ctx *cli.Context, config *params.ClientConfig) (*nearkit.Client, error) {
	network := nearkit.NetworkConfig{
		Name:    config.Network.Name,
		RPCURL:  config.Network.RPCURL,
		Headers: config.Network.Headers,
	}
	if gateway := ctx.String(utils.GatewayFlag.Name); gateway != "" {
		network.RPCURL = gateway
	}
	keyText := ctx.String(utils.KeyFlag.Name)
	keyFile := ctx.String(utils.KeyFileFlag.Name)
	if keyText == "" && keyFile == "" && config.Account != nil {
		keyText = config.Account.Key
		keyFile = config.Account.KeyFile
	}
	key, err := getKey(keyText, keyFile)
	if err != nil {
		return nil, err
	}
	return nearkit.NewClient(nearkit.Config{
		Network:       network,
		Key:           key,
		RPCTimeout:    config.Network.RPCTimeoutDuration(),
		MaxRetries:    config.Network.MaxRetries,
		InitialDelay:  config.Network.InitialDelayDuration(),
		MaxRetryDelay: config.Network.MaxRetryDelayDuration(),
	})
}

func getNetwork(ctx *cli.Context) (nearkit.NetworkConfig, error) {
	var network nearkit.NetworkConfig
	switch name := ctx.String(utils.NetworkFlag.Name); name {
	case "testnet":
		network = nearkit.Testnet
	case "mainnet":
		network = nearkit.Mainnet
	default:
		return network, fmt.Errorf("unknown network %q", name)
	}
	if gateway := ctx.String(utils.GatewayFlag.Name); gateway != "" {
		network.RPCURL = gateway
	}
	return network, nil
}

// getKey load the signing key from the inline text or the key file;
// nil when neither is given (read-only commands).
func getKey(keyText, keyFile string) (*keystore.KeyPair, error) {
	if keyText != "" && keyFile != "" {
		return nil, errors.New("give at most one of --key and --keyfile")
	}
	if keyFile != "" {
		data, err := ioutil.ReadFile(keyFile)
		if err != nil {
			return nil, fmt.Errorf("read key file: %w", err)
		}
		keyText = strings.TrimSpace(string(data))
	}
	if keyText == "" {
		return nil, nil
	}
	return keystore.ParseKeyPair(keyText)
}

// getSignerID the signing account from the --account flag or config
func getSignerID(ctx *cli.Context) (string, error) {
	if account := ctx.String(utils.AccountFlag.Name); account != "" {
		return account, nil
	}
	if config := params.GetConfig(); config != nil && config.Account != nil {
		return config.Account.AccountID, nil
	}
	return "", errors.New("no signing account, give --account or config 'Account'")
}

// getWaitUntil parse the --wait flag
func getWaitUntil(ctx *cli.Context) nearkit.WaitUntil {
	return nearkit.WaitUntil(strings.ToUpper(ctx.String(utils.WaitUntilFlag.Name)))
}

// printJSON pretty print a result to stdout
func printJSON(result interface{}) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
