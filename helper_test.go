package advisor

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/etnz/advisor/date"
	"github.com/shopspring/decimal"
)

// day is the fixed "today" of the tests.
var day = date.New(2025, time.July, 11)

// fakeProvider is an in memory Provider.
type fakeProvider struct {
	closes   map[string][]float64 // consecutive days ending on 'day'
	rates    map[string]float64   // keyed by "BASE/QUOTE"
	err      error
	rateErr  error
	rateCall int
}

func (f *fakeProvider) Closes(_ context.Context, ticker string, from, to date.Date) (*date.History[decimal.Decimal], error) {
	if f.err != nil {
		return nil, f.err
	}
	h := new(date.History[decimal.Decimal])
	values := f.closes[ticker]
	for i, v := range values {
		on := to.Add(i - len(values) + 1)
		if on.Before(from) {
			continue
		}
		h.Append(on, decimal.NewFromFloat(v))
	}
	return h, nil
}

func (f *fakeProvider) Rate(_ context.Context, base, quote string) (decimal.Decimal, error) {
	f.rateCall++
	if f.rateErr != nil {
		return decimal.Zero, f.rateErr
	}
	return decimal.NewFromFloat(f.rates[base+"/"+quote]), nil
}

// csvPortfolio decodes a portfolio from CSV lines, failing the test on error.
func csvPortfolio(t *testing.T, lines ...string) *Portfolio {
	t.Helper()
	p, err := DecodePortfolio(strings.NewReader(strings.Join(lines, "\n")))
	if err != nil {
		t.Fatalf("DecodePortfolio() unexpected error: %v", err)
	}
	return p
}
