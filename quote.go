package advisor

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/etnz/advisor/date"
	"github.com/shopspring/decimal"
)

// Provider is a source of market data.
type Provider interface {
	// Closes returns the daily closing prices of ticker between from and to, both included.
	Closes(ctx context.Context, ticker string, from, to date.Date) (*date.History[decimal.Decimal], error)
	// Rate returns the latest number of 'quote' currency units for one 'base' currency unit.
	Rate(ctx context.Context, base, quote string) (decimal.Decimal, error)
}

// DefaultWindow is the number of calendar days of a stock summary.
const DefaultWindow = 7

// StockSummary is a ticker's latest close and its change over a short window.
type StockSummary struct {
	Ticker    string
	Closes    *date.History[decimal.Decimal] // in the ticker's currency
	Last      Money                          // latest close in the ticker's currency
	Converted Money                          // latest close in the display currency
	Rate      decimal.Decimal                // display currency rate, in ticker's currency units
	Change    Percent                        // from the first to the last close of the window
}

// String formats the summary in a single sentence.
func (s *StockSummary) String() string {
	return fmt.Sprintf("%s is currently %s, changed %s in the past week (converted from %s).",
		s.Ticker, s.Converted, s.Change, s.Last)
}

// Quoter computes stock summaries from a Provider.
//
// The zero Window means DefaultWindow. Currency is the currency tickers are quoted in,
// Display the one prices are converted to.
type Quoter struct {
	Provider Provider
	Currency string
	Display  string
	Window   int
	// Today returns the last day of the window, date.Today when nil.
	Today func() date.Date
}

// Summary fetches the closes of the last Window days of ticker and summarizes them.
//
// The percent change uses the first and last closes actually returned, so week-ends and
// holidays shrink the window. The conversion uses the latest rate of the currency pair.
func (q *Quoter) Summary(ctx context.Context, ticker string) (*StockSummary, error) {
	const op = "stock summary"
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return nil, Errorf(InvalidInput, op, "empty ticker")
	}
	window := q.Window
	if window <= 0 {
		window = DefaultWindow
	}
	today := date.Today
	if q.Today != nil {
		today = q.Today
	}
	rng := date.LastDays(today(), window)

	closes, err := q.Provider.Closes(ctx, ticker, rng.From, rng.To)
	if err != nil {
		return nil, Wrap(Unavailable, op, err)
	}
	if closes == nil || closes.Len() == 0 {
		return nil, Errorf(NoData, op, "no price history for %s in %s", ticker, rng)
	}
	_, first := closes.First()
	_, last := closes.Latest()

	change, ok := Change(first, last)
	if !ok {
		return nil, Errorf(InvalidInput, op, "first close of %s is zero", ticker)
	}

	rate := decimal.NewFromInt(1)
	if !strings.EqualFold(q.Currency, q.Display) {
		rate, err = q.Provider.Rate(ctx, q.Display, q.Currency)
		if err != nil {
			return nil, Wrap(Unavailable, op, err)
		}
		if rate.IsZero() {
			return nil, Errorf(InvalidInput, op, "exchange rate %s/%s is zero", q.Display, q.Currency)
		}
	}
	log.Printf("%s: %d closes, last %s %s, rate %s/%s %s", ticker, closes.Len(), last, q.Currency, q.Display, q.Currency, rate)

	return &StockSummary{
		Ticker:    ticker,
		Closes:    closes,
		Last:      M(last, q.Currency),
		Converted: M(last.Div(rate), q.Display),
		Rate:      rate,
		Change:    change,
	}, nil
}

// SummaryText is like Summary but never fails: errors are returned as
// "Unable to fetch stock data for <ticker>: <cause>".
func (q *Quoter) SummaryText(ctx context.Context, ticker string) string {
	s, err := q.Summary(ctx, ticker)
	if err != nil {
		return SummaryFailure(ticker, err)
	}
	return s.String()
}

// SummaryFailure is the text displayed instead of a summary when it failed.
func SummaryFailure(ticker string, err error) string {
	return fmt.Sprintf("Unable to fetch stock data for %s: %v", ticker, err)
}
