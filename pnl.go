package advisor

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNoPnLColumns is returned when the portfolio lacks a column needed to compute profit and loss.
var ErrNoPnLColumns = errors.New("Your CSV must include 'Buy Price', 'Current Price', and 'Quantity' for P&L chart.")

// Chart colors.
const (
	Green = "green"
	Red   = "red"
)

// PnL is the profit (or loss when negative) of a single holding.
type PnL struct {
	Stock string          `json:"stock"`
	Value decimal.Decimal `json:"value"`
}

// Color returns the chart color of this PnL: green for a profit or break even, red for a loss.
func (l PnL) Color() string {
	if l.Value.IsNegative() {
		return Red
	}
	return Green
}

// ProfitAndLoss computes (current price - buy price) * quantity for each holding.
//
// It returns ErrNoPnLColumns if a column is missing, and an InvalidInput error if a cell is not a number.
func (p *Portfolio) ProfitAndLoss() ([]PnL, error) {
	if !p.Has(ColumnBuyPrice, ColumnCurrentPrice, ColumnQuantity) {
		return nil, ErrNoPnLColumns
	}
	result := make([]PnL, 0, len(p.Holdings))
	for i, h := range p.Holdings {
		buy, err := h.number(i, ColumnBuyPrice)
		if err != nil {
			return nil, err
		}
		current, err := h.number(i, ColumnCurrentPrice)
		if err != nil {
			return nil, err
		}
		qty, err := h.number(i, ColumnQuantity)
		if err != nil {
			return nil, err
		}
		result = append(result, PnL{Stock: h.Stock(), Value: current.Sub(buy).Mul(qty)})
	}
	return result, nil
}

// number parses the cell in column as a decimal. i is the row index, for error messages.
func (h Holding) number(i int, column string) (decimal.Decimal, error) {
	cell, _ := h.Cell(column)
	// thousand separators are common in exported spreadsheets.
	d, err := decimal.NewFromString(strings.ReplaceAll(cell, ",", ""))
	if err != nil {
		return decimal.Zero, Errorf(InvalidInput, "profit and loss", "row %d (%s): %q is not a valid %s", i+1, h.Stock(), cell, column)
	}
	return d, nil
}
