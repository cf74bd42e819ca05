/*
paychand runs the payment channel ledger against a state stored on the
local disk. Each command executes at most one message and commits the
result.
*/
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iov-one/paychan"
	"github.com/iov-one/paychan/app"
	paychandapp "github.com/iov-one/paychan/cmd/paychand/app"
	flags "github.com/jessevdk/go-flags"
	"github.com/tendermint/tendermint/libs/log"
)

// globalOptions are accepted by every command.
type globalOptions struct {
	Home     string `long:"home" env:"PAYCHAND_HOME" description:"Directory to store files under (default $HOME/.paychand)"`
	LogLevel string `long:"log-level" default:"error" choice:"debug" choice:"info" choice:"error" choice:"none" description:"Minimal level of the log messages"`
	Debug    bool   `long:"debug" description:"Expose internal error details in receipts"`
}

// environment is shared by all commands of a single program run.
type environment struct {
	opts globalOptions
	in   io.Reader
	out  io.Writer
	logw io.Writer
}

func main() {
	if err := run(os.Stdin, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}

// run executes the command given by args. Errors are reported to stderr.
func run(in io.Reader, out, stderr io.Writer, args []string) error {
	env := &environment{in: in, out: out, logw: stderr}

	parser := flags.NewParser(&env.opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "paychand"
	parser.ShortDescription = "Two party unidirectional payment channel ledger"

	commands := []struct {
		name, short, long string
		cmd               interface{}
	}{
		{"init", "Initialize the state from a genesis file", initLong, &initCmd{env: env}},
		{"keygen", "Generate a new private key", keygenLong, &keygenCmd{env: env}},
		{"address", "Print the address of a private key", addressLong, &addressCmd{env: env}},
		{"sign-claim", "Sign a claim of a channel total", signClaimLong, &signClaimCmd{env: env}},
		{"open", "Open a new channel", openLong, &openCmd{env: env}},
		{"close", "Settle a channel with a signed claim", closeLong, &closeCmd{env: env}},
		{"expire", "Refund the payer of a timed out channel", expireLong, &expireCmd{env: env}},
		{"channel", "Print the state of a channel", channelLong, &channelCmd{env: env}},
		{"channels", "List channels of a payer or a payee", channelsLong, &channelsCmd{env: env}},
		{"balance", "Print the balance of an address", balanceLong, &balanceCmd{env: env}},
		{"version", "Print the application version", "", &versionCmd{env: env}},
	}
	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, c.long, c.cmd); err != nil {
			panic(err)
		}
	}

	if _, err := parser.ParseArgs(args); err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			fmt.Fprintln(out, e.Message)
			return err
		}
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return err
	}
	return nil
}

func (e *environment) home() string {
	if e.opts.Home != "" {
		return e.opts.Home
	}
	return filepath.Join(os.ExpandEnv("$HOME"), ".paychand")
}

// inHome returns path unchanged if set, otherwise the named file in the
// home directory.
func (e *environment) inHome(path, name string) string {
	if path != "" {
		return path
	}
	return filepath.Join(e.home(), name)
}

func (e *environment) logger() (log.Logger, error) {
	level := e.opts.LogLevel
	if level == "" {
		level = "error"
	}
	allowed, err := log.AllowLevel(level)
	if err != nil {
		return nil, err
	}
	logger := log.NewTMLogger(log.NewSyncWriter(e.logw)).With("module", "paychand")
	return log.NewFilter(logger, allowed), nil
}

// withApp opens the application stored in the home directory and calls
// fn. The state is committed if fn succeeds.
func (e *environment) withApp(fn func(*app.StoreApp) error) error {
	return e.open(fn, true)
}

// view is withApp for read only commands.
func (e *environment) view(fn func(*app.StoreApp) error) error {
	return e.open(fn, false)
}

func (e *environment) open(fn func(*app.StoreApp) error, commit bool) error {
	logger, err := e.logger()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(e.home(), 0700); err != nil {
		return fmt.Errorf("cannot create home directory: %s", err)
	}
	a, kv, err := paychandapp.Application("paychand", filepath.Join(e.home(), "data", "paychan.db"), logger, e.opts.Debug)
	if err != nil {
		return err
	}
	defer kv.Close()

	if err := fn(a); err != nil {
		return err
	}
	if !commit {
		return nil
	}
	_, err = a.Commit()
	return err
}

// deliver executes a single message and prints the receipt.
func (e *environment) deliver(msg paychan.Msg) error {
	return e.withApp(func(a *app.StoreApp) error {
		if a.GetChainID() == "" {
			return fmt.Errorf("state not initialized, run init first")
		}
		r, err := a.Deliver(context.Background(), msg)
		if perr := printReceipt(e.out, r); perr != nil {
			return perr
		}
		return err
	})
}

type versionCmd struct {
	env *environment
}

func (c *versionCmd) Execute(args []string) error {
	_, err := fmt.Fprintln(c.env.out, paychan.Version())
	return err
}
