package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/swapd"
	"github.com/iov-one/swapd/cmd/swapd/app"
	"github.com/iov-one/swapd/commands/server"
	"github.com/iov-one/swapd/errors"
	"github.com/iov-one/swapd/x/escrow"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome     = "home"
	flagLogLevel = "log-level"
	varHome      *string
	varLogLevel  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".swapd")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")
	varLogLevel = flag.String(flagLogLevel, "info", "minimum level logged: debug, info, error or none")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("swapd")
	fmt.Println("          Atomic swap node")
	fmt.Println("")
	fmt.Println("help      Print this message")
	fmt.Println("init      Initialize app options in genesis file")
	fmt.Println("start     Run the abci server")
	fmt.Println("validate  Check the app_state of genesis files")
	fmt.Println("derive    Print the escrow address of a maker and sell asset")
	fmt.Println("version   Print the app version")
	fmt.Println(`
  -home string
        directory to store files under (default "$HOME/.swapd")
  -log-level string
        minimum level logged: debug, info, error or none (default "info")`)
}

func main() {
	flag.Parse()

	logger, err := newLogger(*varLogLevel)
	if err != nil {
		fmt.Printf("Error: %s\n\n", err)
		helpMessage()
		os.Exit(1)
	}

	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(app.GenInitOptions, logger, *varHome, rest)
	case "start":
		err = server.StartCmd(app.GenerateApp, logger, *varHome, rest)
	case "validate":
		err = server.ValidateGenesis(app.Initializers(), rest)
	case "derive":
		err = deriveCmd(rest)
	case "version":
		fmt.Println(swapd.Version())
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}

func newLogger(level string) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", app.Name)
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewFilter(logger, opt), nil
}

// deriveCmd expects a maker and a sell asset address, both base58.
// The escrow program of a node started with init is used.
func deriveCmd(args []string) error {
	if len(args) != 2 {
		return errors.Wrap(errors.ErrInput, "usage: derive <maker> <sell_asset>")
	}
	maker, err := swapd.ParseAddress(args[0])
	if err != nil {
		return errors.Wrap(err, "maker")
	}
	sellAsset, err := swapd.ParseAddress(args[1])
	if err != nil {
		return errors.Wrap(err, "sell asset")
	}
	addr, bump, err := escrow.Address(app.ProgramID("escrow"), maker, sellAsset)
	if err != nil {
		return err
	}
	fmt.Printf("address %s\nbump    %d\n", addr, bump)
	return nil
}
