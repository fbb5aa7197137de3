package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/nearkit/near-kit-go/keystore"
)

var keygenCommand = &cli.Command{
	Action:    keygen,
	Name:      "keygen",
	Usage:     "Generate a new ed25519 key pair",
	ArgsUsage: " ",
	Description: `
The secret key is printed to stdout. Store it somewhere safe; it is
not written to disk.
`,
}

func keygen(ctx *cli.Context) error {
	key, err := keystore.GenerateKeyPair()
	if err != nil {
		return err
	}
	fmt.Println("public key:", key.PublicKey().String())
	fmt.Println("secret key:", key.String())
	return nil
}
