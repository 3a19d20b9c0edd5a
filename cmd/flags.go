package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/etnz/tracker"
	"github.com/etnz/tracker/date"
	"github.com/shopspring/decimal"
)

// parseAmount parses an amount or evaluates an arithmetic expression like
// "19.99*3". Results are rounded to cents.
func parseAmount(s string) (tracker.Amount, error) {
	if a, err := tracker.ParseAmount(s); err == nil {
		return a, nil
	}
	expr, err := govaluate.NewEvaluableExpression(strings.TrimSpace(s))
	if err != nil {
		return tracker.Amount{}, fmt.Errorf("%w: invalid amount %q: %v", tracker.ErrValidation, s, err)
	}
	if len(expr.Vars()) > 0 {
		return tracker.Amount{}, fmt.Errorf("%w: invalid amount %q: unknown %s", tracker.ErrValidation, s, strings.Join(expr.Vars(), ", "))
	}
	v, err := expr.Evaluate(nil)
	if err != nil {
		return tracker.Amount{}, fmt.Errorf("%w: invalid amount %q: %v", tracker.ErrValidation, s, err)
	}
	f, ok := v.(float64)
	if !ok {
		return tracker.Amount{}, fmt.Errorf("%w: amount %q is not a number", tracker.ErrValidation, s)
	}
	return tracker.A(decimal.NewFromFloat(f).Round(2)), nil
}

// parseOptionalDate parses s, the zero date if s is empty.
func parseOptionalDate(s string) (date.Date, error) {
	if s == "" {
		return date.Date{}, nil
	}
	d, err := date.Parse(s)
	if err != nil {
		return date.Date{}, usage("invalid date %q: %v", s, err)
	}
	return d, nil
}

// isSet reports whether the flag name was given on the command line.
func isSet(f *flag.FlagSet, name string) bool {
	set := false
	f.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			set = true
		}
	})
	return set
}

// oneArg returns the single positional argument of f.
func oneArg(f *flag.FlagSet, what string) (string, error) {
	if f.NArg() != 1 {
		return "", usage("expected exactly one %s, got %d arguments", what, f.NArg())
	}
	return f.Arg(0), nil
}

// readImage encodes the image file at path, the empty image if path is empty.
func readImage(ctx context.Context, path string) (tracker.Image, error) {
	if path == "" {
		return "", nil
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return tracker.EncodeImage(ctx, f)
}

// periodFlags selects a date range with -p, -s and -d.
type periodFlags struct {
	period, start, end string
}

func (p *periodFlags) register(f *flag.FlagSet, period string) {
	f.StringVar(&p.period, "p", period, "Predefined period (day, week, month, quarter, year).")
	f.StringVar(&p.start, "s", "", "The start date for a custom range. Overrides -p.")
	f.StringVar(&p.end, "d", "", "The end date for the range (defaults to today).")
}

// Range returns the selected range, ok is false if none was selected.
func (p *periodFlags) Range(today date.Date) (r date.Range, ok bool, err error) {
	if p.period == "" && p.start == "" && p.end == "" {
		return r, false, nil
	}
	end := today
	if p.end != "" {
		if end, err = date.Parse(p.end); err != nil {
			return r, false, usage("invalid end date %q: %v", p.end, err)
		}
	}
	if p.start != "" {
		start, err := date.Parse(p.start)
		if err != nil {
			return r, false, usage("invalid start date %q: %v", p.start, err)
		}
		if r = date.Between(start, end); !r.Valid() {
			return r, false, usage("start date %s after end date %s", start, end)
		}
		return r, true, nil
	}
	period := date.Monthly
	if p.period != "" {
		if period, err = date.ParsePeriod(p.period); err != nil {
			return r, false, usage("%v", err)
		}
	}
	return period.Range(end), true, nil
}
