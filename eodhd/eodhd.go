// Package eodhd implements an advisor.Provider backed by eodhd.com.
package eodhd

import (
	"context"
	"net/http"
	"strings"

	"github.com/etnz/advisor"
	"github.com/etnz/advisor/date"
	"github.com/shopspring/decimal"
)

// nice to redirect to https://eodhd.com/financial-summary/TCS.NSE

// APIKeyEnv is the environment variable conventionally holding the API key.
const APIKeyEnv = "EODHD_API_KEY"

// DemoKey is EODHD's public key, limited to a few tickers (e.g. AAPL.US, MCD.US, EURUSD.FOREX).
const DemoKey = "demo"

// DefaultBaseURL is EODHD's API root.
const DefaultBaseURL = "https://eodhd.com/api"

// Options configures a Client.
type Options struct {
	BaseURL   string            // DefaultBaseURL if empty
	Transport http.RoundTripper // http.DefaultTransport if nil
	// Cache enables a daily disk cache of the responses in CacheDir (os.TempDir() if empty).
	Cache    bool
	CacheDir string
}

// Client is an EODHD API client. It is safe for concurrent use.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

var _ advisor.Provider = (*Client)(nil)

// New returns a Client using apiKey, or DemoKey when it is empty.
func New(apiKey string, opts Options) *Client {
	if apiKey == "" {
		apiKey = DemoKey
	}
	c := &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		client:  &http.Client{Transport: opts.Transport},
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if opts.Cache {
		c.client = newDailyCachingClient(opts.Transport, opts.CacheDir)
	}
	return c
}

// Closes implements advisor.Provider.
func (c *Client) Closes(ctx context.Context, ticker string, from, to date.Date) (*date.History[decimal.Decimal], error) {
	return c.fetchCloses(ctx, Ticker(ticker), from, to)
}

// Rate implements advisor.Provider. It returns the latest number of 'quote' units per 'base' unit.
func (c *Client) Rate(ctx context.Context, base, quote string) (decimal.Decimal, error) {
	if strings.EqualFold(base, quote) {
		return decimal.NewFromInt(1), nil
	}
	return c.fetchLatest(ctx, Pair(base, quote))
}
