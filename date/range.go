package date

import "fmt"

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// LastDays returns the range of n calendar days ending on 'to', 'to' being the n-th day.
//
// Non trading days are part of the range, so a market window may hold fewer points than days.
func LastDays(to Date, n int) Range {
	return Range{From: to.Add(-(n - 1)), To: to}
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

func (r Range) String() string { return fmt.Sprintf("%s_%s", r.From, r.To) }
