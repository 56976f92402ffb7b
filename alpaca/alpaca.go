// Package alpaca implements an advisor.Provider backed by Alpaca's market data API.
//
// Alpaca quotes US equities only, in USD, and has no foreign exchange rates.
package alpaca

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/etnz/advisor"
	"github.com/etnz/advisor/date"
	"github.com/shopspring/decimal"
)

// Environment variables conventionally holding the credentials.
const (
	KeyEnv    = "APCA_API_KEY_ID"
	SecretEnv = "APCA_API_SECRET_KEY"
)

// Currency is the currency of every Alpaca price.
const Currency = "USD"

// bars is the part of *marketdata.Client in use.
type bars interface {
	GetBars(symbol string, req marketdata.GetBarsRequest) ([]marketdata.Bar, error)
}

// Client is an Alpaca market data client.
type Client struct {
	md bars
}

var _ advisor.Provider = (*Client)(nil)

// New returns a Client authenticated with key and secret.
// Empty credentials are read from the environment by the Alpaca SDK.
func New(key, secret string) *Client {
	return &Client{md: marketdata.NewClient(marketdata.ClientOpts{
		APIKey:    key,
		APISecret: secret,
	})}
}

// Symbol returns the Alpaca symbol of ticker, Alpaca only knows about US tickers.
func Symbol(ticker string) (string, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	symbol, suffix, found := strings.Cut(ticker, ".")
	if found && suffix != "US" {
		return "", advisor.Errorf(advisor.InvalidInput, "alpaca", "%s is not a US ticker", ticker)
	}
	if symbol == "" {
		return "", advisor.Errorf(advisor.InvalidInput, "alpaca", "empty ticker")
	}
	return symbol, nil
}

// Closes implements advisor.Provider.
func (c *Client) Closes(ctx context.Context, ticker string, from, to date.Date) (*date.History[decimal.Decimal], error) {
	symbol, err := Symbol(ticker)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, &advisor.Error{Kind: advisor.Unavailable, Op: "alpaca", Err: err}
	}
	bs, err := c.md.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame: marketdata.OneDay,
		Start:     from.Time(),
		End:       to.Add(1).Time(), // 'to' included
	})
	if err != nil {
		return nil, &advisor.Error{Kind: kindOf(err), Op: "alpaca", Err: err}
	}

	closes := new(date.History[decimal.Decimal])
	for _, b := range bs {
		// daily bars are stamped at midnight New York time.
		closes.Append(date.Of(b.Timestamp.In(time.UTC)), decimal.NewFromFloat(b.Close))
	}
	return closes, nil
}

// Rate implements advisor.Provider. Only the identity rate is available.
func (c *Client) Rate(ctx context.Context, base, quote string) (decimal.Decimal, error) {
	if strings.EqualFold(base, quote) {
		return decimal.NewFromInt(1), nil
	}
	return decimal.Zero, advisor.Errorf(advisor.InvalidInput, "alpaca", "no exchange rate for %s/%s, use the same currency for quotes and display", base, quote)
}

func kindOf(err error) advisor.Kind {
	var apiErr *alpaca.APIError
	if !errors.As(err, &apiErr) {
		return advisor.Unavailable
	}
	switch {
	case apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden:
		return advisor.Unauthenticated
	case apiErr.StatusCode == http.StatusNotFound:
		return advisor.NoData
	case apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500:
		return advisor.Unavailable
	default:
		return advisor.InvalidInput
	}
}
