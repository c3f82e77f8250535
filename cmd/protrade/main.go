package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(&terminalCmd{}, "trading")
	commander.Register(&quoteCmd{}, "market data")
	commander.Register(&backfillCmd{}, "market data")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
