package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	nearkit "github.com/nearkit/near-kit-go"
	"github.com/nearkit/near-kit-go/cmd/utils"
	"github.com/nearkit/near-kit-go/log"
)

var transferCommand = &cli.Command{
	Action:    transfer,
	Name:      "transfer",
	Usage:     "Transfer NEAR tokens",
	ArgsUsage: "<receiverID> <amount>",
	Description: `
Transfer tokens to the receiver. The amount must carry a unit, e.g.
'1.5 NEAR' or '1 yocto'; bare numbers are rejected as ambiguous.
`,
	Flags: []cli.Flag{
		utils.WaitUntilFlag,
	},
}

func transfer(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return fmt.Errorf("want <receiverID> <amount>, got %v arguments", ctx.NArg())
	}
	receiverID := ctx.Args().Get(0)
	amount := ctx.Args().Get(1)

	client, err := getClient(ctx)
	if err != nil {
		return err
	}
	signerID, err := getSignerID(ctx)
	if err != nil {
		return err
	}

	outcome, err := client.Transaction(signerID).
		Transfer(receiverID, amount).
		Send(nearkit.WithWaitUntil(getWaitUntil(ctx)))
	if err != nil {
		return err
	}
	log.Info("transfer sent", "from", signerID, "to", receiverID, "amount", amount, "txHash", outcome.Transaction.Hash)
	return printJSON(outcome)
}
