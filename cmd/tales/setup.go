package main

import (
	"fmt"
	"net/http"

	"github.com/urfave/cli/v2"
)

var setup = cli.Command{
	Name:   "setup",
	Usage:  "provision both demo wallets and their addresses",
	Action: setupAction,
}

func setupAction(ctx *cli.Context) error {
	if _, err := callDaemon(http.MethodPost, "/v1/setup", ""); err != nil {
		return err
	}

	fmt.Println("wallets provisioned")
	return nil
}
