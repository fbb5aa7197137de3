package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	nearkit "github.com/nearkit/near-kit-go"
	"github.com/nearkit/near-kit-go/cmd/utils"
	"github.com/nearkit/near-kit-go/log"
)

var (
	gasFlag = &cli.StringFlag{
		Name:  "gas",
		Usage: "gas to attach, e.g. '30 Tgas' or a bare integer of gas units",
	}
	depositFlag = &cli.StringFlag{
		Name:  "deposit",
		Usage: "deposit to attach, e.g. '1 yocto' or '0.1 NEAR'",
	}
)

var callCommand = &cli.Command{
	Action:    call,
	Name:      "call",
	Usage:     "Call a state-changing contract method",
	ArgsUsage: "<contractID> <method> [argsJSON]",
	Flags: []cli.Flag{
		gasFlag,
		depositFlag,
		utils.WaitUntilFlag,
	},
}

var viewCommand = &cli.Command{
	Action:    view,
	Name:      "view",
	Usage:     "Call a read-only contract method",
	ArgsUsage: "<contractID> <method> [argsJSON]",
}

var accountCommand = &cli.Command{
	Action:    viewAccount,
	Name:      "account",
	Usage:     "Show basic account state",
	ArgsUsage: "<accountID>",
}

func callArgs(ctx *cli.Context) (contractID, method string, args json.RawMessage, err error) {
	if ctx.NArg() < 2 || ctx.NArg() > 3 {
		return "", "", nil, fmt.Errorf("want <contractID> <method> [argsJSON], got %v arguments", ctx.NArg())
	}
	contractID = ctx.Args().Get(0)
	method = ctx.Args().Get(1)
	args = json.RawMessage("{}")
	if ctx.NArg() == 3 {
		argsText := ctx.Args().Get(2)
		if !json.Valid([]byte(argsText)) {
			return "", "", nil, fmt.Errorf("args %q is not valid JSON", argsText)
		}
		args = json.RawMessage(argsText)
	}
	return contractID, method, args, nil
}

func call(ctx *cli.Context) error {
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

	var opts []nearkit.CallOption
	if gas := ctx.String(gasFlag.Name); gas != "" {
		opts = append(opts, nearkit.CallGas(gas))
	}
	if deposit := ctx.String(depositFlag.Name); deposit != "" {
		opts = append(opts, nearkit.CallDeposit(deposit))
	}

	outcome, err := client.Transaction(signerID).
		FunctionCall(contractID, method, args, opts...).
		Send(nearkit.WithWaitUntil(getWaitUntil(ctx)))
	if err != nil {
		return err
	}
	log.Info("call sent", "contract", contractID, "method", method, "txHash", outcome.Transaction.Hash)
	return printJSON(outcome)
}

func view(ctx *cli.Context) error {
	contractID, method, args, err := callArgs(ctx)
	if err != nil {
		return err
	}
	client, err := getClient(ctx)
	if err != nil {
		return err
	}
	result, err := client.CallFunction(contractID, method, args)
	if err != nil {
		return err
	}
	fmt.Println(string(result.Result))
	return nil
}

func viewAccount(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("want <accountID>, got %v arguments", ctx.NArg())
	}
	client, err := getClient(ctx)
	if err != nil {
		return err
	}
	account, err := client.ViewAccount(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	return printJSON(account)
}
