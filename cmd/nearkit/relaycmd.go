package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/nearkit/near-kit-go/cmd/utils"
	"github.com/nearkit/near-kit-go/params"
	"github.com/nearkit/near-kit-go/relayer"
)

var relayCommand = &cli.Command{
	Action:    relay,
	Name:      "relay",
	Usage:     "Run the meta-transaction relay daemon",
	ArgsUsage: " ",
	Description: `
Accept signed delegate actions over HTTP, wrap them in transactions
signed by the configured relayer account and pay for their gas.
Requires a config file with 'Account' and 'Relayer' sections.
`,
}

func relay(ctx *cli.Context) error {
	utils.SetLogger(ctx)
	if ctx.NArg() > 0 {
		return fmt.Errorf("invalid command: %q", ctx.Args().Get(0))
	}
	configFile := utils.GetConfigFilePath(ctx)
	config := params.LoadConfig(configFile, true)

	client, err := clientFromConfig(ctx, config)
	if err != nil {
		return err
	}
	r, err := relayer.New(client, config.Account.AccountID, config.Relayer.AllowedReceivers)
	if err != nil {
		return err
	}

	exitCh := make(chan struct{})
	relayer.StartAPIServer(r)
	<-exitCh
	return nil
}
