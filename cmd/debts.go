package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/renderer"
	"github.com/google/subcommands"
)

type debtsCmd struct {
	kind string
}

func (*debtsCmd) Name() string     { return "debts" }
func (*debtsCmd) Synopsis() string { return "list debts and loans" }
func (*debtsCmd) Usage() string {
	return `mtk debts [-type debt|loan]
`
}

func (c *debtsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "type", "", "Only debts or only loans.")
}

func (c *debtsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(func(a *app, b *tracker.Book) error {
		var kind tracker.DebtKind
		if c.kind != "" {
			k, err := tracker.ParseDebtKind(c.kind)
			if err != nil {
				return err
			}
			kind = k
		}
		items, err := b.DebtsLoans(kind)
		if err != nil {
			return err
		}
		a.print(renderer.RenderDebts(items, a.currency(b)))
		return nil
	})
}

type addDebtCmd struct {
	kind        string
	person      string
	amount      string
	date        string
	due         string
	description string
	photo       string
}

func (*addDebtCmd) Name() string     { return "add-debt" }
func (*addDebtCmd) Synopsis() string { return "write down money owed" }
func (*addDebtCmd) Usage() string {
	return `mtk add-debt -type debt|loan -person <name> -amount <amount> [-d <date>] [-due <date>] [-desc <text>] [-photo <file>]

  A debt is money you owe, a loan money owed to you. Neither changes a
  balance.
`
}

func (c *addDebtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "type", "debt", "debt or loan.")
	f.StringVar(&c.person, "person", "", "Who owes or is owed.")
	f.StringVar(&c.amount, "amount", "", "Amount.")
	f.StringVar(&c.date, "d", "", "Date (default today).")
	f.StringVar(&c.due, "due", "", "Due date, optional.")
	f.StringVar(&c.description, "desc", "", "Description.")
	f.StringVar(&c.photo, "photo", "", "Photo image file, like a receipt.")
}

func (c *addDebtCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(func(a *app, b *tracker.Book) error {
		kind, err := tracker.ParseDebtKind(c.kind)
		if err != nil {
			return err
		}
		amount, err := parseAmount(c.amount)
		if err != nil {
			return err
		}
		day, err := parseOptionalDate(c.date)
		if err != nil {
			return err
		}
		due, err := parseOptionalDate(c.due)
		if err != nil {
			return err
		}
		photo, err := readImage(ctx, c.photo)
		if err != nil {
			return err
		}
		d, err := b.AddDebtLoan(tracker.DebtLoanInput{
			Type:        kind,
			Amount:      amount,
			Person:      c.person,
			Date:        day,
			DueDate:     due,
			Description: c.description,
			Photo:       photo,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wrote down a %s of %s with %s (%s).\n", d.Type, a.currency(b).Format(d.Amount), d.Person, d.ID)
		return nil
	})
}

type rmDebtCmd struct{}

func (*rmDebtCmd) Name() string     { return "rm-debt" }
func (*rmDebtCmd) Synopsis() string { return "delete a debt or a loan" }
func (*rmDebtCmd) Usage() string {
	return `mtk rm-debt <id>
`
}

func (c *rmDebtCmd) SetFlags(f *flag.FlagSet) {}

func (c *rmDebtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(func(a *app, b *tracker.Book) error {
		id, err := oneArg(f, "id")
		if err != nil {
			return err
		}
		if err := b.DeleteDebtLoan(id); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Deleted %s.\n", id)
		return nil
	})
}
