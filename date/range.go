package date

import (
	"fmt"
	"iter"
	"time"
)

// Range represents an inclusive range of days: both From and To belong to it.
type Range struct{ From, To Date }

// NewRange returns the well known period containing d.
func NewRange(d Date, period Period) Range {
	return Range{From: d.StartOf(period), To: d.EndOf(period)}
}

// Between returns the range [from, to].
func Between(from, to Date) Range { return Range{From: from, To: to} }

// Month returns the range of the calendar month containing d.
func Month(d Date) Range { return NewRange(d, Monthly) }

// Valid reports whether From is not after To.
func (r Range) Valid() bool { return !r.From.After(r.To) }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Overlaps reports whether r and x share at least one day. Boundaries are
// inclusive: ranges touching on a single day overlap.
func (r Range) Overlaps(x Range) bool {
	return !r.From.After(x.To) && !r.To.Before(x.From)
}

// Months yields the first day of every calendar month touched by r, at
// most max months (no limit if max <= 0).
func (r Range) Months(max int) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		if !r.Valid() {
			return
		}
		last := r.To.StartOf(Monthly)
		n := 0
		for m := r.From.StartOf(Monthly); !m.After(last); m = m.AddMonth(1) {
			if max > 0 && n >= max {
				return
			}
			n++
			if !yield(m) {
				return
			}
		}
	}
}

// String formats the range as "from..to".
func (r Range) String() string { return fmt.Sprintf("%s..%s", r.From, r.To) }

// Period returns the period of this range if it's a standard one.
func (r Range) Period() (p Period, ok bool) {
	switch {
	case r.From == r.To:
		return Daily, true
	case r.From.Weekday() == time.Monday && r.From.EndOf(Weekly) == r.To:
		return Weekly, true
	case r.From.Day() == 1 && r.From.EndOf(Monthly) == r.To:
		return Monthly, true
	case r.From.StartOf(Quarterly) == r.From && r.From.EndOf(Quarterly) == r.To:
		return Quarterly, true
	case r.From.StartOf(Yearly) == r.From && r.From.EndOf(Yearly) == r.To:
		return Yearly, true
	default:
		return Daily, false
	}
}

// Name the period range
func (r Range) Name() string {
	if p, ok := r.Period(); ok {
		return p.String()
	}
	return "special"
}

// Identifier computes a short identifier for the Range, "2025-09" for a
// month, "2025-Q3" for a quarter and "from_to" for a non standard range.
func (r Range) Identifier() string {
	p, ok := r.Period()
	if !ok {
		return fmt.Sprintf("%s_%s", r.From, r.To)
	}
	switch p {
	case Daily:
		return r.From.String()
	case Weekly:
		_, week := r.From.ISOWeek()
		return fmt.Sprintf("%d-W%02d", r.From.Year(), week)
	case Monthly:
		return r.From.Format("2006-01")
	case Quarterly:
		return fmt.Sprintf("%d-Q%d", r.From.Year(), (r.From.Month()-1)/3+1)
	case Yearly:
		return r.From.Format("2006")
	default:
		panic("unknown period")
	}
}

// ParseMonth parses "2006-01" (or "2006-1") into the range of that month.
func ParseMonth(str string) (Range, error) {
	t, err := time.Parse("2006-1", str)
	if err != nil {
		return Range{}, fmt.Errorf("invalid month %q want format %q: %w", str, "2006-01", err)
	}
	return Month(Of(t)), nil
}
