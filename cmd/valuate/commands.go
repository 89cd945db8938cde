package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/valuation"
)

func parseDay(s string) (time.Time, error) {
	if s == "" {
		return valuation.DateOf(time.Now()), nil
	}
	return time.Parse(valuation.DateLayout, s)
}

// load reads the investments and reports failures on stderr.
func load() ([]valuation.Investment, bool) {
	investments, err := loadInvestments(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading investments: %v\n", err)
		return nil, false
	}
	return investments, true
}

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	date string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display invested, current value and yield" }
func (*summaryCmd) Usage() string {
	return `valuate summary [-d <YYYY-MM-DD>]

  Values every investment on the given date (default today) and prints the
  totals followed by one row per investment.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Valuation date, YYYY-MM-DD. Defaults to today.")
}

func (c *summaryCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	on, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	investments, ok := load()
	if !ok {
		return subcommands.ExitFailure
	}

	printMarkdown(summaryMarkdown(investments, on, valuation.NewFormatter(*currency)))
	return subcommands.ExitSuccess
}

// projectCmd holds the flags for the 'project' subcommand.
type projectCmd struct {
	from   string
	period string
	step   int
}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "display the projected total value over time" }
func (*projectCmd) Usage() string {
	return `valuate project [-from <YYYY-MM-DD>] [-period 1m|6m|1y|10y] [-step <days>]

  Prints the total value of all investments every <step> days over the period.
`
}

func (c *projectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "First date of the projection, YYYY-MM-DD. Defaults to today.")
	f.StringVar(&c.period, "period", string(valuation.DefaultHorizon), "Projection window: 1m, 6m, 1y or 10y.")
	f.IntVar(&c.step, "step", 30, "Days between rows.")
}

func (c *projectCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	from, err := parseDay(c.from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	horizon, ok := valuation.ParseHorizon(c.period)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown period %q\n", c.period)
		return subcommands.ExitUsageError
	}

	investments, ok := load()
	if !ok {
		return subcommands.ExitFailure
	}

	printMarkdown(projectionMarkdown(investments, from, horizon, c.step, valuation.NewFormatter(*currency)))
	return subcommands.ExitSuccess
}

// distributionCmd prints the invested amount per category.
type distributionCmd struct{}

func (*distributionCmd) Name() string     { return "distribution" }
func (*distributionCmd) Synopsis() string { return "display the invested amount per category" }
func (*distributionCmd) Usage() string {
	return `valuate distribution

  Groups principals by investment type and prints each category's share.
`
}

func (*distributionCmd) SetFlags(*flag.FlagSet) {}

func (*distributionCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	investments, ok := load()
	if !ok {
		return subcommands.ExitFailure
	}

	printMarkdown(distributionMarkdown(investments, valuation.NewFormatter(*currency)))
	return subcommands.ExitSuccess
}
