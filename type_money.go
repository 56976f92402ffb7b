package advisor

import (
	"encoding/json"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns value expressed in currency.
func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	var d decimal.Decimal
	switch v := any(value).(type) {
	case decimal.Decimal:
		d = v
	case float64:
		d = decimal.NewFromFloat(v)
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	}
	return Money{value: d, cur: strings.ToUpper(currency)}
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the value formatted in its currency, e.g. "$12.34" or "₹1,234.50".
func (m Money) String() string {
	if money.GetCurrency(m.cur) == nil {
		// go-money would glue the code to the digits, e.g. "12.34ABC".
		return m.value.StringFixed(2) + " " + m.cur
	}
	cur := m.currency()
	dec := m.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// Symbol returns the currency's symbol, e.g. "₹" for INR. Unknown currencies return their code.
func Symbol(currency string) string {
	c := money.GetCurrency(strings.ToUpper(currency))
	if c == nil || c.Grapheme == "" {
		return currency
	}
	return c.Grapheme
}

// Simple accessors.

func (m Money) Currency() string       { return m.cur }
func (m Money) Value() decimal.Decimal { return m.value }
func (m Money) Equal(n Money) bool     { return m.value.Equal(n.value) && m.cur == n.cur }

// MarshalJSON encodes money as {"currency": "USD", "amount": "12.34"} rounded to the currency's fraction.
func (m Money) MarshalJSON() ([]byte, error) {
	type jsonMoney struct {
		Currency string          `json:"currency,omitempty"`
		Amount   decimal.Decimal `json:"amount"`
	}
	return json.Marshal(jsonMoney{
		Currency: m.cur,
		Amount:   m.value.Round(int32(m.currency().Fraction)),
	})
}
