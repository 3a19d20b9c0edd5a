package cmd

import (
	"context"
	"flag"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/date"
	"github.com/etnz/tracker/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct {
	periodFlags
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "summarize income and expenses of a period" }
func (*reportCmd) Usage() string {
	return `mtk report [-p <period> | -s <start_date>] [-d <end_date>]

  Totals income and expenses, breaks them down by category and compares
  months when the period spans several of them.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) { c.periodFlags.register(f, "month") }

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(func(a *app, b *tracker.Book) error {
		r, _, err := c.Range(date.Today())
		if err != nil {
			return err
		}
		summary, err := b.Summary(r)
		if err != nil {
			return err
		}
		income, err := b.CategoryTotals(r, tracker.Income)
		if err != nil {
			return err
		}
		expenses, err := b.ExpensesByCategory(r)
		if err != nil {
			return err
		}
		months, err := b.MonthlyComparison(r)
		if err != nil {
			return err
		}
		a.print(renderer.RenderReport(summary, income, expenses, months, a.currency(b)))
		return nil
	})
}

type dashboardCmd struct {
	date string
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "overview of balances, the month, budgets and debts" }
func (*dashboardCmd) Usage() string {
	return `mtk dashboard [-d <date>]
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Day of the overview (default today).")
}

func (c *dashboardCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(func(a *app, b *tracker.Book) error {
		day, err := parseOptionalDate(c.date)
		if err != nil {
			return err
		}
		if day.IsZero() {
			day = date.Today()
		}
		d, err := b.Dashboard(day)
		if err != nil {
			return err
		}
		n, err := names(b)
		if err != nil {
			return err
		}
		a.print(renderer.RenderDashboard(d, n, a.currency(b)))
		return nil
	})
}

type auditCmd struct{}

func (*auditCmd) Name() string     { return "audit" }
func (*auditCmd) Synopsis() string { return "check the consistency of the book" }
func (*auditCmd) Usage() string {
	return `mtk audit

  Checks balances against transactions, references, transfers and budgets.
  Exits with a failure status when an inconsistency is found.
`
}

func (c *auditCmd) SetFlags(f *flag.FlagSet) {}

func (c *auditCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(func(a *app, b *tracker.Book) error {
		report, err := b.Audit()
		if err != nil {
			return err
		}
		n, err := names(b)
		if err != nil {
			return err
		}
		a.print(renderer.RenderAudit(report, n, a.currency(b)))
		return report.Err()
	})
}
