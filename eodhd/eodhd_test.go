package eodhd

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/etnz/advisor"
	"github.com/etnz/advisor/date"
	"github.com/shopspring/decimal"
)

const testKey = "secret-key"

// newTestServer serves a small subset of the EODHD API, counting the requests.
func newTestServer(t *testing.T, hits *int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/eod/", func(w http.ResponseWriter, r *http.Request) {
		*hits++
		if r.URL.Query().Get("api_token") != testKey {
			http.Error(w, "Unauthenticated", http.StatusUnauthorized)
			return
		}
		switch strings.TrimPrefix(r.URL.Path, "/eod/") {
		case "TCS.NSE":
			// out of order on purpose
			fmt.Fprint(w, `[
				{"date":"2025-07-09","open":3380,"close":105,"volume":1},
				{"date":"2025-07-08","open":3370,"close":100,"volume":1},
				{"date":"2025-07-10","open":3390,"close":110,"volume":1}
			]`)
		case "EMPTY.US":
			fmt.Fprint(w, `[]`)
		case "BROKEN.US":
			fmt.Fprint(w, `<html>`)
		default:
			http.Error(w, "Ticker Not Found.", http.StatusNotFound)
		}
	})
	mux.HandleFunc("/real-time/", func(w http.ResponseWriter, r *http.Request) {
		*hits++
		switch strings.TrimPrefix(r.URL.Path, "/real-time/") {
		case "USDINR.FOREX":
			fmt.Fprint(w, `{"code":"USDINR.FOREX","timestamp":1720690140,"close":83.5,"previousClose":83.4}`)
		case "USDJPY.FOREX":
			fmt.Fprint(w, `{"code":"USDJPY.FOREX","close":"NA"}`)
		case "USDEUR.FOREX":
			fmt.Fprint(w, `{"code":"USDEUR.FOREX","close":"0.92"}`)
		default:
			http.Error(w, "quota exceeded", http.StatusPaymentRequired)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCloses(t *testing.T) {
	var hits int
	srv := newTestServer(t, &hits)
	c := New(testKey, Options{BaseURL: srv.URL})

	from, to := date.New(2025, time.July, 4), date.New(2025, time.July, 11)
	closes, err := c.Closes(context.Background(), "TCS.NS", from, to)
	if err != nil {
		t.Fatalf("Closes() unexpected error: %v", err)
	}
	if closes.Len() != 3 {
		t.Fatalf("Closes().Len() = %d want 3", closes.Len())
	}
	if day, v := closes.First(); day != date.New(2025, time.July, 8) || !v.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Closes().First() = %v %v want 2025-07-08 100", day, v)
	}
	if day, v := closes.Latest(); day != date.New(2025, time.July, 10) || !v.Equal(decimal.NewFromInt(110)) {
		t.Errorf("Closes().Latest() = %v %v want 2025-07-10 110", day, v)
	}
}

func TestClosesErrors(t *testing.T) {
	var hits int
	srv := newTestServer(t, &hits)
	testCases := []struct {
		name   string
		key    string
		ticker string
		want   advisor.Kind
	}{
		{"bad key", "wrong", "TCS.NS", advisor.Unauthenticated},
		{"unknown ticker", testKey, "NOPE", advisor.NoData},
		{"malformed", testKey, "BROKEN", advisor.NoData},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := New(tc.key, Options{BaseURL: srv.URL})
			_, err := c.Closes(context.Background(), tc.ticker, date.Today().Add(-7), date.Today())
			if err == nil {
				t.Fatal("Closes() expected an error")
			}
			if got := advisor.KindOf(err); got != tc.want {
				t.Errorf("Closes() kind = %v want %v (err: %v)", got, tc.want, err)
			}
			if strings.Contains(err.Error(), testKey) {
				t.Errorf("Closes() error leaks the api key: %v", err)
			}
		})
	}
}

func TestClosesUnreachable(t *testing.T) {
	c := New(testKey, Options{BaseURL: "http://127.0.0.1:1"})
	_, err := c.Closes(context.Background(), "AAPL", date.Today().Add(-7), date.Today())
	if advisor.KindOf(err) != advisor.Unavailable {
		t.Errorf("Closes() kind = %v want %v (err: %v)", advisor.KindOf(err), advisor.Unavailable, err)
	}
	if err != nil && strings.Contains(err.Error(), testKey) {
		t.Errorf("Closes() error leaks the api key: %v", err)
	}
}

func TestRate(t *testing.T) {
	var hits int
	srv := newTestServer(t, &hits)
	c := New(testKey, Options{BaseURL: srv.URL})
	ctx := context.Background()

	rate, err := c.Rate(ctx, "USD", "INR")
	if err != nil {
		t.Fatalf("Rate(USD, INR) unexpected error: %v", err)
	}
	if !rate.Equal(decimal.RequireFromString("83.5")) {
		t.Errorf("Rate(USD, INR) = %v want 83.5", rate)
	}

	rate, err = c.Rate(ctx, "usd", "eur")
	if err != nil || !rate.Equal(decimal.RequireFromString("0.92")) {
		t.Errorf("Rate(usd, eur) = %v, %v want 0.92", rate, err)
	}

	if _, err := c.Rate(ctx, "USD", "JPY"); advisor.KindOf(err) != advisor.NoData {
		t.Errorf("Rate(USD, JPY) kind = %v want %v", advisor.KindOf(err), advisor.NoData)
	}
	if _, err := c.Rate(ctx, "USD", "CHF"); advisor.KindOf(err) != advisor.Unavailable {
		t.Errorf("Rate(USD, CHF) kind = %v want %v", advisor.KindOf(err), advisor.Unavailable)
	}

	before := hits
	if rate, err := c.Rate(ctx, "INR", "INR"); err != nil || !rate.Equal(decimal.NewFromInt(1)) {
		t.Errorf("Rate(INR, INR) = %v, %v want 1", rate, err)
	}
	if hits != before {
		t.Errorf("Rate(INR, INR) queried the server")
	}
}

func TestSummaryWithEODHD(t *testing.T) {
	var hits int
	srv := newTestServer(t, &hits)
	q := &advisor.Quoter{
		Provider: New(testKey, Options{BaseURL: srv.URL}),
		Currency: "INR",
		Display:  "USD",
		Today:    func() date.Date { return date.New(2025, time.July, 11) },
	}
	s, err := q.Summary(context.Background(), "TCS.NS")
	if err != nil {
		t.Fatalf("Summary() unexpected error: %v", err)
	}
	if !s.Change.Equal(10) {
		t.Errorf("Summary().Change = %v want 10%%", s.Change)
	}
	if got := s.String(); !strings.Contains(got, "$1.32") {
		t.Errorf("Summary() = %q want 110/83.5 = $1.32", got)
	}
}

func TestCache(t *testing.T) {
	var hits int
	srv := newTestServer(t, &hits)
	c := New(testKey, Options{BaseURL: srv.URL, Cache: true, CacheDir: t.TempDir()})
	ctx := context.Background()
	from, to := date.New(2025, time.July, 4), date.New(2025, time.July, 11)

	for i := 0; i < 2; i++ {
		if _, err := c.Closes(ctx, "TCS.NSE", from, to); err != nil {
			t.Fatalf("Closes() unexpected error: %v", err)
		}
	}
	if hits != 1 {
		t.Errorf("Closes() with cache hit the server %d times want 1", hits)
	}

	// errors are not cached.
	for i := 0; i < 2; i++ {
		c.Closes(ctx, "NOPE", from, to)
	}
	if hits != 3 {
		t.Errorf("failed Closes() hit the server %d times want 3", hits)
	}
}

func TestNoCacheRefetches(t *testing.T) {
	var hits int
	srv := newTestServer(t, &hits)
	c := New(testKey, Options{BaseURL: srv.URL})
	for i := 0; i < 2; i++ {
		c.Closes(context.Background(), "TCS.NSE", date.Today().Add(-7), date.Today())
	}
	if hits != 2 {
		t.Errorf("Closes() without cache hit the server %d times want 2", hits)
	}
}

func TestTicker(t *testing.T) {
	testCases := []struct{ in, want string }{
		{"TCS.NS", "TCS.NSE"},
		{"reliance.bo", "RELIANCE.BSE"},
		{"AAPL", "AAPL.US"},
		{" msft ", "MSFT.US"},
		{"MCD.US", "MCD.US"},
		{"TCS.NSE", "TCS.NSE"},
		{"BMW.DE", "BMW.XETRA"},
		{"VOD.L", "VOD.LSE"},
		{"EURUSD.FOREX", "EURUSD.FOREX"},
		{"ABC.XYZ", "ABC.XYZ"},
	}
	for _, tc := range testCases {
		if got := Ticker(tc.in); got != tc.want {
			t.Errorf("Ticker(%q) = %q want %q", tc.in, got, tc.want)
		}
	}
}

func TestPair(t *testing.T) {
	if got := Pair("usd", "inr"); got != "USDINR.FOREX" {
		t.Errorf("Pair(usd, inr) = %q want USDINR.FOREX", got)
	}
}

func TestKindOf(t *testing.T) {
	testCases := []struct {
		status int
		want   advisor.Kind
	}{
		{http.StatusUnauthorized, advisor.Unauthenticated},
		{http.StatusForbidden, advisor.Unauthenticated},
		{http.StatusNotFound, advisor.NoData},
		{http.StatusPaymentRequired, advisor.Unavailable},
		{http.StatusTooManyRequests, advisor.Unavailable},
		{http.StatusBadGateway, advisor.Unavailable},
		{http.StatusBadRequest, advisor.InvalidInput},
	}
	for _, tc := range testCases {
		if got := kindOf(tc.status); got != tc.want {
			t.Errorf("kindOf(%d) = %v want %v", tc.status, got, tc.want)
		}
	}
}
