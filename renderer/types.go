package renderer

import (
	"strings"

	"github.com/etnz/advisor"
	"github.com/etnz/advisor/date"
	"github.com/shopspring/decimal"
)

// Plan is an allocation plan: the profile it was asked for and the model's answer.
type Plan struct {
	Profile advisor.Profile
	Reply   advisor.Reply
}

// Review is a portfolio review with its charts data.
type Review struct {
	Portfolio *advisor.Portfolio
	Risk      advisor.RiskLevel
	Reply     advisor.Reply

	Sectors    []advisor.SectorShare
	SectorHint string // why Sectors is empty

	PnL     []PnLRow
	PnLHint string // why PnL is empty
}

// PnLRow is a profit and loss line, with a marker and a text bar standing for the chart.
type PnLRow struct {
	advisor.PnL
	Marker string
	Bar    string
}

// barWidth is the length of the longest P&L bar.
const barWidth = 20

var markers = map[string]string{
	advisor.Green: "🟢",
	advisor.Red:   "🔴",
}

// NewReview computes the charts of pf for a review.
func NewReview(pf *advisor.Portfolio, risk advisor.RiskLevel, reply advisor.Reply) *Review {
	r := &Review{Portfolio: pf, Risk: risk, Reply: reply}

	sectors, err := pf.SectorAllocation()
	if err != nil {
		r.SectorHint = err.Error()
	}
	r.Sectors = sectors

	pnl, err := pf.ProfitAndLoss()
	if err != nil {
		r.PnLHint = err.Error()
	}
	r.PnL = pnlRows(pnl)
	return r
}

// pnlRows scales bars to the largest absolute value.
func pnlRows(pnl []advisor.PnL) []PnLRow {
	largest := decimal.Zero
	for _, l := range pnl {
		largest = decimal.Max(largest, l.Value.Abs())
	}
	rows := make([]PnLRow, 0, len(pnl))
	for _, l := range pnl {
		n := 0
		if !largest.IsZero() {
			n = int(l.Value.Abs().Mul(decimal.NewFromInt(barWidth)).Div(largest).Round(0).IntPart())
		}
		rows = append(rows, PnLRow{PnL: l, Marker: markers[l.Color()], Bar: strings.Repeat("█", n)})
	}
	return rows
}

// Quote is a stock summary, or the reason it is missing.
type Quote struct {
	Ticker  string
	Summary *advisor.StockSummary
	Text    string
	Closes  []Close
}

// Close is a row of the closes table.
type Close struct {
	Date  date.Date
	Close advisor.Money
}

// NewQuote prepares s (or err if s could not be computed) for rendering.
func NewQuote(ticker string, s *advisor.StockSummary, err error) *Quote {
	if err != nil {
		return &Quote{Ticker: ticker, Text: advisor.SummaryFailure(ticker, err)}
	}
	q := &Quote{Ticker: s.Ticker, Summary: s, Text: s.String()}
	if s.Closes != nil {
		for day, v := range s.Closes.Values() {
			q.Closes = append(q.Closes, Close{Date: day, Close: advisor.M(v, s.Last.Currency())})
		}
	}
	return q
}
