package eodhd

import (
	"fmt"
	"strings"
)

// suffixes maps Yahoo Finance exchange suffixes to EODHD exchange codes.
var suffixes = map[string]string{
	"NS": "NSE",
	"BO": "BSE",
	"L":  "LSE",
	"DE": "XETRA",
	"F":  "F",
	"PA": "PA",
	"AS": "AS",
	"MI": "MI",
	"TO": "TO",
	"HK": "HK",
	"T":  "TSE",
	"AX": "AU",
}

// exchanges is the set of EODHD exchange codes accepted as is.
var exchanges = map[string]bool{
	"US": true, "NSE": true, "BSE": true, "LSE": true, "XETRA": true, "FOREX": true, "CC": true, "INDX": true,
	"EUFUND": true, "TSE": true, "AU": true,
}

// Ticker translates a user ticker to its EODHD form.
//
// EODHD tickers are kept, Yahoo Finance suffixes are translated ("TCS.NS" is "TCS.NSE")
// and a bare symbol is assumed to be a US one ("AAPL" is "AAPL.US").
func Ticker(ticker string) string {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	i := strings.LastIndex(ticker, ".")
	if i < 0 {
		return ticker + ".US"
	}
	symbol, suffix := ticker[:i], ticker[i+1:]
	if exchanges[suffix] {
		return ticker
	}
	if code, ok := suffixes[suffix]; ok {
		return symbol + "." + code
	}
	// Unknown suffixes might be EODHD codes this list does not know.
	return ticker
}

// Pair returns the EODHD ticker of a currency pair, e.g. "USDINR.FOREX".
func Pair(base, quote string) string {
	return fmt.Sprintf("%s%s.FOREX", strings.ToUpper(base), strings.ToUpper(quote))
}
