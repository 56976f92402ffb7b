// Command fad is a financial advisor: allocation plans, portfolio reviews and stock quotes.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"

	"github.com/etnz/advisor"
	"github.com/etnz/advisor/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes fad's command line for shell completion (COMP_INSTALL=1 fad installs it).
func completion() *complete.Command {
	risks := predict.Set{}
	for _, r := range advisor.RiskLevels {
		risks = append(risks, string(r))
	}
	global := map[string]complete.Predictor{
		"config":  predict.Files("*.yaml"),
		"verbose": predict.Nothing,
	}
	return &complete.Command{
		Flags: global,
		Sub: map[string]*complete.Command{
			"plan": {Flags: map[string]complete.Predictor{
				"name":     predict.Something,
				"age":      predict.Something,
				"monthly":  predict.Something,
				"horizon":  predict.Something,
				"goal":     predict.Something,
				"risk":     risks,
				"currency": predict.Set{"INR", "USD", "EUR", "GBP"},
				"prompt":   predict.Nothing,
			}},
			"review": {
				Flags: map[string]complete.Predictor{"risk": risks, "prompt": predict.Nothing},
				Args:  predict.Files("*.csv"),
			},
			"quote": {Args: predict.Something},
			"serve": {Flags: map[string]complete.Predictor{"addr": predict.Something}},
			"help":  {Args: predict.Set{"plan", "review", "quote", "serve"}},
		},
	}
}

func main() {
	completion().Complete("fad")

	// a missing .env is fine, variables can come from the environment.
	_ = godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, "fad")
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	if !*cmd.Verbose {
		log.SetOutput(io.Discard)
	}
	os.Exit(int(commander.Execute(context.Background())))
}
