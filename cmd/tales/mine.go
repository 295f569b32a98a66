package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/urfave/cli/v2"
)

var mine = cli.Command{
	Name:   "mine",
	Usage:  "mine blocks to the miner address",
	Action: mineAction,
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "blocks",
			Usage: "number of blocks to mine",
			Value: 1,
		},
	},
}

func mineAction(ctx *cli.Context) error {
	blocks := ctx.Int("blocks")
	body, _ := json.Marshal(map[string]int{"blocks": blocks})

	if _, err := callDaemon(
		http.MethodPost, "/v1/mine", string(body),
	); err != nil {
		return err
	}

	fmt.Printf("mined %d block(s)\n", blocks)
	return nil
}
