package main

import (
	"net/http"

	"github.com/urfave/cli/v2"
)

var status = cli.Command{
	Name:   "status",
	Usage:  "print the tracked transaction and its state",
	Action: statusAction,
}

var dismiss = cli.Command{
	Name:   "dismiss",
	Usage:  "stop tracking the active transaction",
	Action: dismissAction,
}

func statusAction(ctx *cli.Context) error {
	resp, err := callDaemon(http.MethodGet, "/v1/transaction", "")
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func dismissAction(ctx *cli.Context) error {
	if _, err := callDaemon(
		http.MethodDelete, "/v1/transaction", "",
	); err != nil {
		return err
	}

	printRespJSON("")
	return nil
}
