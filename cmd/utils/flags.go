package utils

import (
	"github.com/urfave/cli/v2"

	"github.com/nearkit/near-kit-go/log"
)

// common command line flags
var (
	ConfigFileFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Specify config file",
	}
	NetworkFlag = &cli.StringFlag{
		Name:  "network",
		Usage: "network to use when no config file is given (testnet, mainnet)",
		Value: "testnet",
	}
	GatewayFlag = &cli.StringFlag{
		Name:  "gateway",
		Usage: "custom RPC gateway URL, overrides the network default",
	}
	KeyFlag = &cli.StringFlag{
		Name:  "key",
		Usage: "signing key ('ed25519:...'), prefer --keyfile or the config file",
	}
	KeyFileFlag = &cli.StringFlag{
		Name:  "keyfile",
		Usage: "file containing the signing key",
	}
	AccountFlag = &cli.StringFlag{
		Name:  "account",
		Usage: "signing account ID",
	}
	WaitUntilFlag = &cli.StringFlag{
		Name:  "wait",
		Usage: "finality level to wait for (NONE, INCLUDED, EXECUTED_OPTIMISTIC, INCLUDED_FINAL, EXECUTED, FINAL)",
	}
	VerbosityFlag = &cli.Uint64Flag{
		Name:    "verbosity",
		Aliases: []string{"v"},
		Usage:   "log verbosity (0:panic, 1:fatal, 2:error, 3:warn, 4:info, 5:debug, 6:trace)",
		Value:   4,
	}
	JSONFormatFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "output log in json format",
	}
	ColorFormatFlag = &cli.BoolFlag{
		Name:  "color",
		Usage: "output log in color text format",
		Value: true,
	}
)

// SetLogger set log level, json format and color format
func SetLogger(ctx *cli.Context) {
	logLevel := ctx.Uint64(VerbosityFlag.Name)
	jsonFormat := ctx.Bool(JSONFormatFlag.Name)
	colorFormat := ctx.Bool(ColorFormatFlag.Name)
	log.SetLogger(uint32(logLevel), jsonFormat, colorFormat)
}

// GetConfigFilePath specified config file path
func GetConfigFilePath(ctx *cli.Context) string {
	return ctx.String(ConfigFileFlag.Name)
}
