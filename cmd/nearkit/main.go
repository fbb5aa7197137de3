// Command nearkit is the command line interface to the nearkit SDK:
// it sends transactions, calls and views contracts, signs delegate
// actions and runs the meta-transaction relayer.
package main

import (
	"os"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/nearkit/near-kit-go/cmd/utils"
	"github.com/nearkit/near-kit-go/log"
)

var (
	clientIdentifier = "nearkit"
	// Git SHA1 commit hash of the release (set via linker flags)
	gitCommit = ""
	gitDate   = ""
	// The app that holds all commands and flags.
	app = utils.NewApp(clientIdentifier, gitCommit, gitDate, "the nearkit command line interface")
)

func initApp() {
	app.HideVersion = true // we have a command to print the version
	app.Commands = []*cli.Command{
		transferCommand,
		callCommand,
		viewCommand,
		accountCommand,
		delegateCommand,
		relayCommand,
		keygenCommand,
		utils.VersionCommand,
	}
	app.Flags = []cli.Flag{
		utils.ConfigFileFlag,
		utils.NetworkFlag,
		utils.GatewayFlag,
		utils.AccountFlag,
		utils.KeyFlag,
		utils.KeyFileFlag,
		utils.VerbosityFlag,
		utils.JSONFormatFlag,
		utils.ColorFormatFlag,
	}
	sort.Sort(cli.CommandsByName(app.Commands))
}

func main() {
	initApp()
	if err := app.Run(os.Args); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
