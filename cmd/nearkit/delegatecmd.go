package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	nearkit "github.com/nearkit/near-kit-go"
	"github.com/nearkit/near-kit-go/log"
)

var (
	maxBlockHeightFlag = &cli.Uint64Flag{
		Name:  "max-block-height",
		Usage: "absolute chain height after which the delegate expires",
	}
	blockOffsetFlag = &cli.Uint64Flag{
		Name:  "offset",
		Usage: "expiration as a block offset from the current height",
	}
)

var delegateCommand = &cli.Command{
	Action:    delegate,
	Name:      "delegate",
	Usage:     "Sign a function call as a delegate action instead of sending it",
	ArgsUsage: "<contractID> <method> [argsJSON]",
	Description: `
Produce a signed, base64 encoded delegate action a relayer can wrap,
pay for and submit. The signer stays the logical actor on chain.
`,
	Flags: []cli.Flag{
		gasFlag,
		depositFlag,
		maxBlockHeightFlag,
		blockOffsetFlag,
	},
}

func delegate(ctx *cli.Context) error {
	contractID, method, args, err := callArgs(ctx)
	if err != nil {
		return err
	}
	client, err := getClient(ctx)
	if err != nil {
		return err
	}
	signerID, err := getSignerID(ctx)
	if err != nil {
		return err
	}

	var callOpts []nearkit.CallOption
	if gas := ctx.String(gasFlag.Name); gas != "" {
		callOpts = append(callOpts, nearkit.CallGas(gas))
	}
	if deposit := ctx.String(depositFlag.Name); deposit != "" {
		callOpts = append(callOpts, nearkit.CallDeposit(deposit))
	}
	var opts []nearkit.DelegateOption
	if height := ctx.Uint64(maxBlockHeightFlag.Name); height != 0 {
		opts = append(opts, nearkit.WithMaxBlockHeight(height))
	}
	if offset := ctx.Uint64(blockOffsetFlag.Name); offset != 0 {
		opts = append(opts, nearkit.WithBlockHeightOffset(offset))
	}

	result, err := client.Transaction(signerID).
		FunctionCall(contractID, method, args, callOpts...).
		Delegate(opts...)
	if err != nil {
		return err
	}
	log.Info("delegate action signed",
		"sender", signerID,
		"receiver", contractID,
		"maxBlockHeight", result.SignedDelegateAction.DelegateAction.MaxBlockHeight)
	fmt.Println(string(result.Payload))
	return nil
}
