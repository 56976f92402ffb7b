package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/advisor"
	"github.com/etnz/advisor/prompt"
	"github.com/etnz/advisor/renderer"
	"github.com/google/subcommands"
)

type reviewCmd struct {
	risk       string
	promptOnly bool
}

func (*reviewCmd) Name() string     { return "review" }
func (*reviewCmd) Synopsis() string { return "review a portfolio from a CSV file" }
func (*reviewCmd) Usage() string {
	return `fad review [-risk <Low|Moderate|High>] [-prompt] <file.csv|->

  Reviews the holdings of a CSV file (or stdin with '-'). The file needs a 'Stock' column,
  'Sector', 'Buy Price', 'Current Price' and 'Quantity' columns enable the charts.
`
}

func (c *reviewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.risk, "risk", "", "Risk profile of the review, defaults to the config's review_risk")
	f.BoolVar(&c.promptOnly, "prompt", false, "Print the prompt instead of sending it")
}

// readPortfolio decodes the portfolio in file, "-" is stdin.
func readPortfolio(file string) (*advisor.Portfolio, error) {
	var r io.Reader = os.Stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return advisor.DecodePortfolio(r)
}

func (c *reviewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: review takes exactly one CSV file")
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	risk := cfg.Risk()
	if c.risk != "" {
		if risk, err = advisor.ParseRiskLevel(c.risk); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	pf, err := readPortfolio(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading portfolio %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	pr := prompt.PortfolioReviewFor(pf, risk)
	if c.promptOnly {
		fmt.Println(pr)
		return subcommands.ExitSuccess
	}

	model, err := newModel(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	reply := model.Reply(ctx, pr)
	printMarkdown(renderer.RenderReview(renderer.NewReview(pf, risk, reply)))
	if !reply.OK() {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
