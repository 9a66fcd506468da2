package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	_ "github.com/pbnjay/grate/simple"
	_ "github.com/pbnjay/grate/xls"
	_ "github.com/pbnjay/grate/xlsx"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	commander.Register(&priceCmd{}, "flat yield")
	commander.Register(&durationCmd{}, "flat yield")
	commander.Register(&spotCmd{}, "term structure")
	commander.Register(&irregularCmd{}, "term structure")
	commander.Register(&priceFileCmd{}, "batch")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
