package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/advisor/renderer"
	"github.com/google/subcommands"
)

// DefaultTicker is the ticker quoted when none is given.
const DefaultTicker = "TCS.NS"

type quoteCmd struct{}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "summarize a stock's last week" }
func (*quoteCmd) Usage() string {
	return `fad quote [<ticker>]

  Prints the latest close of the ticker (default ` + DefaultTicker + `), converted to the display
  currency, and its change over the past week.
`
}

func (*quoteCmd) SetFlags(f *flag.FlagSet) {}

func (*quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ticker := DefaultTicker
	switch f.NArg() {
	case 0:
	case 1:
		ticker = f.Arg(0)
	default:
		fmt.Fprintln(os.Stderr, "Error: quote takes at most one ticker")
		return subcommands.ExitUsageError
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	q, err := newQuoter(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	s, err := q.Summary(ctx, ticker)
	printMarkdown(renderer.RenderQuote(renderer.NewQuote(ticker, s, err)))
	if err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
