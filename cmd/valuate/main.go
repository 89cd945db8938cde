// Command valuate prints valuation reports for an exported list of investments.
//
// The input is the JSON array returned by GET /api/investments (or that
// endpoint's full page object), read from a file or standard input:
//
//	valuate summary -d 2025-06-30 < investments.json
//	valuate -f investments.json project -period 1y -step 30
//	valuate -f investments.json distribution
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

var (
	inputFile = flag.String("f", "-", "Investments JSON file, - for standard input")
	currency  = flag.String("currency", "BRL", "ISO 4217 currency used to format amounts")
	plain     = flag.Bool("plain", false, "Print raw markdown instead of rendering it for the terminal")
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	commander.Register(&summaryCmd{}, "reports")
	commander.Register(&projectCmd{}, "reports")
	commander.Register(&distributionCmd{}, "reports")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
