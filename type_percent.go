package advisor

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Percent float64

// Change returns the relative change from 'from' to 'to' in percent.
// It returns false if from is zero.
func Change(from, to decimal.Decimal) (Percent, bool) {
	if from.IsZero() {
		return 0, false
	}
	return Percent(to.Sub(from).Div(from).Mul(decimal.NewFromInt(100)).InexactFloat64()), true
}

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}
