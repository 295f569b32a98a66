package main

import (
	"encoding/json"
	"net/http"

	"github.com/urfave/cli/v2"
)

var buy = cli.Command{
	Name:      "buy",
	Usage:     "purchase a menu item and start tracking the transaction",
	ArgsUsage: "<item_id>",
	Action:    buyAction,
}

func buyAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, "buy"}
	}

	body, _ := json.Marshal(map[string]string{
		"item_id": ctx.Args().First(),
	})

	resp, err := callDaemon(http.MethodPost, "/v1/purchase", string(body))
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}
