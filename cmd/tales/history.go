package main

import (
	"net/http"

	"github.com/urfave/cli/v2"
)

var history = cli.Command{
	Name:   "history",
	Usage:  "print the transaction history, oldest first",
	Action: historyAction,
}

func historyAction(ctx *cli.Context) error {
	resp, err := callDaemon(http.MethodGet, "/v1/transactions", "")
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}
