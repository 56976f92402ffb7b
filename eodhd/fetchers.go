package eodhd

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/advisor"
	"github.com/etnz/advisor/date"
	"github.com/shopspring/decimal"
)

// This file contains functions to access the EODHD API.

// fetchCloses returns the daily close prices for a given EODHD ticker.
// The EODHD ticker format is typically "SYMBOL.EXCHANGECODE".
func (c *Client) fetchCloses(ctx context.Context, ticker string, from, to date.Date) (*date.History[decimal.Decimal], error) {
	// https://eodhd.com/api/eod/NVD.F?api_token=demo&fmt=json
	// [
	//
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	  },
	//
	// bounds are included in the response.
	addr := fmt.Sprintf("%s/eod/%s?fmt=json&api_token=%s&from=%s&to=%s&period=d",
		c.baseURL, url.PathEscape(ticker), url.QueryEscape(c.apiKey), from, to)
	type Info struct {
		Date  date.Date       `json:"date"`
		Close decimal.Decimal `json:"close"`
	}

	content := make([]Info, 0)
	if err := jwget(ctx, c.client, addr, &content); err != nil {
		return nil, err
	}

	closes := new(date.History[decimal.Decimal])
	for _, info := range content {
		closes.Append(info.Date, info.Close)
	}
	return closes, nil
}

// closePath is where the last price sits in a real-time response.
const closePath = "$.close"

// fetchLatest returns the latest price of an EODHD ticker, using the real-time (delayed) API.
func (c *Client) fetchLatest(ctx context.Context, ticker string) (decimal.Decimal, error) {
	// https://eodhd.com/api/real-time/USDINR.FOREX?api_token=demo&fmt=json
	// {
	//   "code": "USDINR.FOREX",
	//   "timestamp": 1720690140,
	//   "gmtoffset": 0,
	//   "open": 83.5,
	//   "close": 83.55,
	//   "previousClose": 83.52,
	//   ...
	// }
	// the fields are "NA" when the ticker has not traded yet.
	addr := fmt.Sprintf("%s/real-time/%s?fmt=json&api_token=%s", c.baseURL, url.PathEscape(ticker), url.QueryEscape(c.apiKey))

	var jobj any
	if err := jwget(ctx, c.client, addr, &jobj); err != nil {
		return decimal.Zero, err
	}
	jval, err := jsonpath.Get(closePath, jobj)
	if err != nil {
		return decimal.Zero, advisor.Errorf(advisor.NoData, "eodhd", "no %q in %s quote: %w", closePath, ticker, err)
	}
	switch v := jval.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return decimal.NewFromFloat(f), nil
		}
	}
	return decimal.Zero, advisor.Errorf(advisor.NoData, "eodhd", "no price for %s, got %v", ticker, jval)
}
