package main

import (
	"fmt"
	"net/http"

	"github.com/urfave/cli/v2"
)

var reset = cli.Command{
	Name:   "reset",
	Usage:  "wipe the ledger back to its first-run state",
	Action: resetAction,
}

func resetAction(ctx *cli.Context) error {
	if _, err := callDaemon(http.MethodPost, "/v1/reset", ""); err != nil {
		return err
	}

	fmt.Println("ledger reset")
	return nil
}
