package main

import (
	"net/http"

	"github.com/urfave/cli/v2"
)

var menu = cli.Command{
	Name:   "menu",
	Usage:  "print the merchant menu",
	Action: menuAction,
}

func menuAction(ctx *cli.Context) error {
	resp, err := callDaemon(http.MethodGet, "/v1/menu", "")
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}
