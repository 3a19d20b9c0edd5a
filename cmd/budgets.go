package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/date"
	"github.com/etnz/tracker/renderer"
	"github.com/google/subcommands"
)

type budgetsCmd struct {
	periodFlags
	month string
}

func (*budgetsCmd) Name() string     { return "budgets" }
func (*budgetsCmd) Synopsis() string { return "show the progress of budgets" }
func (*budgetsCmd) Usage() string {
	return `mtk budgets [-month <yyyy-mm> | -p <period> | -s <start_date>] [-d <end_date>]

  Shows every budget overlapping the period, the current month by default,
  with what was spent in its window.
`
}

func (c *budgetsCmd) SetFlags(f *flag.FlagSet) {
	c.periodFlags.register(f, "month")
	f.StringVar(&c.month, "month", "", "Month to show, like 2024-01. Overrides the other flags.")
}

func (c *budgetsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(func(a *app, b *tracker.Book) error {
		r, _, err := c.Range(date.Today())
		if err != nil {
			return err
		}
		if c.month != "" {
			if r, err = date.ParseMonth(c.month); err != nil {
				return usage("%v", err)
			}
		}
		report, err := b.BudgetStatuses(r)
		if err != nil {
			return err
		}
		a.print(renderer.RenderBudgets(report, a.currency(b)))
		return nil
	})
}

// budgetFlags are the fields of a budget shared by add-budget and edit-budget.
type budgetFlags struct {
	category   string
	amount     string
	start, end string
	notes      string
}

func (c *budgetFlags) register(f *flag.FlagSet) {
	f.StringVar(&c.category, "category", "", "Expense category id or name.")
	f.StringVar(&c.amount, "amount", "", "Budgeted amount.")
	f.StringVar(&c.start, "start", "", "First day of the budget (default first day of the month).")
	f.StringVar(&c.end, "end", "", "Last day of the budget (default last day of the month).")
	f.StringVar(&c.notes, "notes", "", "Notes.")
}

func (c *budgetFlags) apply(b *tracker.Book, f *flag.FlagSet, in tracker.BudgetInput) (tracker.BudgetInput, error) {
	var err error
	if isSet(f, "category") {
		cat, err := b.FindCategory(c.category, tracker.Expense)
		if err != nil {
			return in, err
		}
		in.CategoryID = cat.ID
	}
	if isSet(f, "amount") {
		if in.Amount, err = parseAmount(c.amount); err != nil {
			return in, err
		}
	}
	if isSet(f, "start") {
		if in.Start, err = parseOptionalDate(c.start); err != nil {
			return in, err
		}
	}
	if isSet(f, "end") {
		if in.End, err = parseOptionalDate(c.end); err != nil {
			return in, err
		}
	}
	if isSet(f, "notes") {
		in.Notes = c.notes
	}
	return in, nil
}

type addBudgetCmd struct {
	budgetFlags
}

func (*addBudgetCmd) Name() string     { return "add-budget" }
func (*addBudgetCmd) Synopsis() string { return "create a budget for an expense category" }
func (*addBudgetCmd) Usage() string {
	return `mtk add-budget -category <c> -amount <amount> [-start <date>] [-end <date>] [-notes <text>]

  Budgets of the same category cannot overlap.
`
}

func (c *addBudgetCmd) SetFlags(f *flag.FlagSet) { c.budgetFlags.register(f) }

func (c *addBudgetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(func(a *app, b *tracker.Book) error {
		month := date.Month(date.Today())
		in, err := c.apply(b, f, tracker.BudgetInput{Start: month.From, End: month.To})
		if err != nil {
			return err
		}
		budget, err := b.CreateBudget(in)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Created budget %s of %s for %s.\n", budget.ID, a.currency(b).Format(budget.Amount), budget.Range())
		return nil
	})
}

type editBudgetCmd struct {
	budgetFlags
}

func (*editBudgetCmd) Name() string     { return "edit-budget" }
func (*editBudgetCmd) Synopsis() string { return "change a budget" }
func (*editBudgetCmd) Usage() string {
	return `mtk edit-budget [-category ...] [-amount ...] [-start ...] [-end ...] [-notes ...] <id>
`
}

func (c *editBudgetCmd) SetFlags(f *flag.FlagSet) { c.budgetFlags.register(f) }

func (c *editBudgetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(func(a *app, b *tracker.Book) error {
		id, err := oneArg(f, "budget id")
		if err != nil {
			return err
		}
		budgets, err := b.Budgets()
		if err != nil {
			return err
		}
		var in tracker.BudgetInput
		found := false
		for _, x := range budgets {
			if x.ID == id {
				in = tracker.BudgetInput{CategoryID: x.CategoryID, Amount: x.Amount, Start: x.StartDate, End: x.EndDate, Notes: x.Notes}
				found = true
			}
		}
		if !found {
			return fmt.Errorf("%w: budget %q", tracker.ErrNotFound, id)
		}
		if in, err = c.apply(b, f, in); err != nil {
			return err
		}
		budget, err := b.EditBudget(id, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Budget %s is %s for %s.\n", budget.ID, a.currency(b).Format(budget.Amount), budget.Range())
		return nil
	})
}

type rmBudgetCmd struct{}

func (*rmBudgetCmd) Name() string     { return "rm-budget" }
func (*rmBudgetCmd) Synopsis() string { return "delete a budget" }
func (*rmBudgetCmd) Usage() string {
	return `mtk rm-budget <id>
`
}

func (c *rmBudgetCmd) SetFlags(f *flag.FlagSet) {}

func (c *rmBudgetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(func(a *app, b *tracker.Book) error {
		id, err := oneArg(f, "budget id")
		if err != nil {
			return err
		}
		if err := b.DeleteBudget(id); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Deleted budget %s.\n", id)
		return nil
	})
}
