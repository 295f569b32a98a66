package main

import (
	"net/http"

	"github.com/urfave/cli/v2"
)

var balances = cli.Command{
	Name:   "balances",
	Usage:  "print the cached balances of both parties",
	Action: balancesAction,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "refresh",
			Usage: "fetch fresh balances from the wallet service first",
		},
	},
}

func balancesAction(ctx *cli.Context) error {
	method, apiPath := http.MethodGet, "/v1/balances"
	if ctx.Bool("refresh") {
		method, apiPath = http.MethodPost, "/v1/balances/refresh"
	}

	resp, err := callDaemon(method, apiPath, "")
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}
