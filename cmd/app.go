// Package cmd implements the fad CLI commands.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/etnz/advisor"
	"github.com/etnz/advisor/alpaca"
	"github.com/etnz/advisor/eodhd"
	"github.com/etnz/advisor/gemini"
	"github.com/google/subcommands"
)

// Commands lists fad's commands.
var Commands = []subcommands.Command{
	&planCmd{},
	&reviewCmd{},
	&quoteCmd{},
	&serveCmd{},
}

// Register the subcommands.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, "")
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "fad.yaml", "Path to the YAML configuration file")

// Verbose enables the logs of remote calls.
var Verbose = flag.Bool("verbose", false, "Log remote calls to stderr")

// loadConfig loads the configuration file from the -config flag.
func loadConfig() (Config, error) {
	return LoadConfig(*configFile, os.Getenv)
}

// newModel returns the model client configured by cfg.
func newModel(ctx context.Context, cfg Config) (*gemini.Client, error) {
	return gemini.New(ctx, gemini.Config{
		APIKey:      cfg.Gemini.APIKey,
		Model:       cfg.Gemini.Model,
		Temperature: cfg.Gemini.Temperature,
	})
}

// newProvider returns the market data provider configured by cfg.
func newProvider(cfg Config) (advisor.Provider, error) {
	switch cfg.Provider {
	case ProviderEODHD:
		if cfg.EODHD.APIKey == "" {
			log.Printf("%s is not set, using the %q key", eodhd.APIKeyEnv, eodhd.DemoKey)
		}
		return eodhd.New(cfg.EODHD.APIKey, eodhd.Options{
			BaseURL:  cfg.EODHD.BaseURL,
			Cache:    cfg.Cache,
			CacheDir: cfg.CacheDir,
		}), nil
	case ProviderAlpaca:
		return alpaca.New(cfg.Alpaca.KeyID, cfg.Alpaca.SecretKey), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// newQuoter returns the stock summary calculator configured by cfg.
func newQuoter(cfg Config) (*advisor.Quoter, error) {
	p, err := newProvider(cfg)
	if err != nil {
		return nil, err
	}
	q := &advisor.Quoter{
		Provider: p,
		Currency: cfg.Currency,
		Display:  cfg.DisplayCurrency,
		Window:   cfg.WindowDays,
	}
	if cfg.Provider == ProviderAlpaca && q.Currency != alpaca.Currency {
		// Alpaca only quotes in USD, whatever the configured currency.
		log.Printf("alpaca quotes in %s, ignoring currency %s", alpaca.Currency, q.Currency)
		q.Currency = alpaca.Currency
	}
	return q, nil
}
