package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/urfave/cli/v2"

	"github.com/bitcoin-tales/talesd/pkg/httputil"
)

var (
	talesDataDir = btcutil.AppDataDir("tales-cli", false)
	statePath    = path.Join(talesDataDir, "state.json")
)

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "tales CLI"
	app.Usage = "Command line interface for the talesd daemon"
	app.Commands = append(
		app.Commands,
		&cliConfig,
		&setup,
		&balances,
		&menu,
		&buy,
		&status,
		&dismiss,
		&history,
		&mine,
		&reset,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

func getState() (map[string]string, error) {
	data := map[string]string{}

	file, err := ioutil.ReadFile(statePath)
	if err != nil {
		return nil, errors.New("get config state error: try 'config init'")
	}
	json.Unmarshal(file, &data)

	return data, nil
}

func setState(data map[string]string) error {
	if _, err := os.Stat(talesDataDir); os.IsNotExist(err) {
		os.Mkdir(talesDataDir, os.ModeDir|0755)
	}

	file, err := os.OpenFile(statePath, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	currentData, err := getState()
	if err != nil {
		return err
	}

	mergedData := merge(currentData, data)

	jsonString, err := json.Marshal(mergedData)
	if err != nil {
		return err
	}
	if err := ioutil.WriteFile(statePath, jsonString, 0755); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}

	return nil
}

func merge(maps ...map[string]string) map[string]string {
	merge := make(map[string]string, 0)
	for _, m := range maps {
		for k, v := range m {
			merge[k] = v
		}
	}
	return merge
}

// callDaemon issues a request against the configured daemon address and
// returns the response body on 2xx statuses.
func callDaemon(method, apiPath, body string) (string, error) {
	state, err := getState()
	if err != nil {
		return "", err
	}
	address, ok := state["rpcserver"]
	if !ok {
		return "", errors.New("set rpcserver with `config set rpcserver`")
	}

	url := fmt.Sprintf("http://%s%s", address, apiPath)
	statusCode, res, err := httputil.NewHTTPRequest(method, url, body, nil)
	if err != nil {
		return "", fmt.Errorf("unable to reach the daemon: %v", err)
	}
	if statusCode < 200 || statusCode >= 300 {
		return "", fmt.Errorf("daemon returned %d: %s", statusCode, res)
	}

	return res, nil
}

func printRespJSON(resp string) {
	if len(resp) <= 0 {
		fmt.Println("ok")
		return
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, []byte(resp), "", "\t"); err != nil {
		fmt.Println(resp)
		return
	}

	fmt.Println(indented.String())
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[tales] %v\n", err)
	}
	os.Exit(1)
}
