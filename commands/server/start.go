package server

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/iov-one/swapd/errors"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind  = "bind"
	flagDebug = "debug"
)

func parseFlags(args []string) (string, bool, error) {
	var addr string
	var debug bool

	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	startFlags.StringVar(&addr, flagBind, "tcp://localhost:26658", "address server listens on")
	startFlags.BoolVar(&debug, flagDebug, false, "call stack returned on error")
	if err := startFlags.Parse(args); err != nil {
		return "", false, errors.Wrap(errors.ErrInput, err.Error())
	}
	return addr, debug, nil
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(string, log.Logger, bool) (abci.Application, error)

// StartCmd initializes the application and serves it over the abci
// socket until the process is interrupted.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	addr, debug, err := parseFlags(args)
	if err != nil {
		return err
	}

	// Generate the app in the proper dir
	app, err := gen(home, logger, debug)
	if err != nil {
		return err
	}

	logger.Info("Starting ABCI app", "bind", addr)

	svr, err := server.NewServer(addr, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrState, "cannot start server: %s", err)
	}

	// Wait for an interrupt, then stop cleanly
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	s := <-sig
	logger.Info("Stopping ABCI app", "signal", s.String())
	return svr.Stop()
}
