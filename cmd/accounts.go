package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/renderer"
	"github.com/google/subcommands"
)

type accountsCmd struct{}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list accounts and their balance" }
func (*accountsCmd) Usage() string {
	return `mtk accounts

  Lists the accounts of the active user with their balance and the total.
`
}

func (c *accountsCmd) SetFlags(f *flag.FlagSet) {}

func (c *accountsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(func(a *app, b *tracker.Book) error {
		accounts, err := b.Accounts()
		if err != nil {
			return err
		}
		a.print(renderer.RenderAccounts(accounts, a.currency(b)))
		return nil
	})
}

type addAccountCmd struct {
	name    string
	balance string
	icon    string
}

func (*addAccountCmd) Name() string     { return "add-account" }
func (*addAccountCmd) Synopsis() string { return "create an account" }
func (*addAccountCmd) Usage() string {
	return `mtk add-account -name <name> [-balance <amount>] [-icon <file>]

  Creates an account. A non zero balance is recorded as an "Initial Balance"
  transaction.
`
}

func (c *addAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Account name.")
	f.StringVar(&c.balance, "balance", "0", "Initial balance, may be negative.")
	f.StringVar(&c.icon, "icon", "", "Icon image file.")
}

func (c *addAccountCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(func(a *app, b *tracker.Book) error {
		balance, err := parseAmount(c.balance)
		if err != nil {
			return err
		}
		icon, err := readImage(ctx, c.icon)
		if err != nil {
			return err
		}
		acc, err := b.CreateAccount(tracker.AccountInput{Name: c.name, Balance: balance, Icon: icon})
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Created account %q (%s) with %s.\n", acc.Name, acc.ID, a.currency(b).Format(acc.Balance))
		return nil
	})
}

type editAccountCmd struct {
	name    string
	balance string
	icon    string
}

func (*editAccountCmd) Name() string     { return "edit-account" }
func (*editAccountCmd) Synopsis() string { return "rename an account or correct its balance" }
func (*editAccountCmd) Usage() string {
	return `mtk edit-account [-name <name>] [-balance <amount>] [-icon <file>] <account>

  Changes an account given by id or name. A new balance is reached by
  recording a "Balance Adjustment" transaction for the difference.
`
}

func (c *editAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "New name.")
	f.StringVar(&c.balance, "balance", "", "New balance.")
	f.StringVar(&c.icon, "icon", "", "New icon image file.")
}

func (c *editAccountCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(func(a *app, b *tracker.Book) error {
		ref, err := oneArg(f, "account")
		if err != nil {
			return err
		}
		acc, err := b.FindAccount(ref)
		if err != nil {
			return err
		}
		in := tracker.AccountInput{Name: acc.Name, Balance: acc.Balance, Icon: acc.Icon}
		if isSet(f, "name") {
			in.Name = c.name
		}
		if isSet(f, "balance") {
			if in.Balance, err = parseAmount(c.balance); err != nil {
				return err
			}
		}
		if isSet(f, "icon") {
			if in.Icon, err = readImage(ctx, c.icon); err != nil {
				return err
			}
		}
		acc, err = b.EditAccount(acc.ID, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Account %q now holds %s.\n", acc.Name, a.currency(b).Format(acc.Balance))
		return nil
	})
}

type rmAccountCmd struct{}

func (*rmAccountCmd) Name() string     { return "rm-account" }
func (*rmAccountCmd) Synopsis() string { return "delete an unused account" }
func (*rmAccountCmd) Usage() string {
	return `mtk rm-account <account>

  Deletes an account given by id or name. Accounts referenced by a
  transaction or a shopping item cannot be deleted.
`
}

func (c *rmAccountCmd) SetFlags(f *flag.FlagSet) {}

func (c *rmAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(func(a *app, b *tracker.Book) error {
		ref, err := oneArg(f, "account")
		if err != nil {
			return err
		}
		acc, err := b.FindAccount(ref)
		if err != nil {
			return err
		}
		if err := b.DeleteAccount(acc.ID); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Deleted account %q.\n", acc.Name)
		return nil
	})
}

type transferCmd struct {
	from, to    string
	amount      string
	description string
	date        string
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "move money between two accounts" }
func (*transferCmd) Usage() string {
	return `mtk transfer -from <account> -to <account> -amount <amount> [-desc <text>] [-d <date>]

  Records a transfer as two linked transactions, out of the reports.
`
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Source account.")
	f.StringVar(&c.to, "to", "", "Destination account.")
	f.StringVar(&c.amount, "amount", "", "Amount to transfer.")
	f.StringVar(&c.description, "desc", "", "Description (default Transfer).")
	f.StringVar(&c.date, "d", "", "Date of the transfer (default today).")
}

func (c *transferCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(func(a *app, b *tracker.Book) error {
		amount, err := parseAmount(c.amount)
		if err != nil {
			return err
		}
		day, err := parseOptionalDate(c.date)
		if err != nil {
			return err
		}
		from, err := b.FindAccount(c.from)
		if err != nil {
			return err
		}
		to, err := b.FindAccount(c.to)
		if err != nil {
			return err
		}
		out, _, err := b.Transfer(tracker.TransferInput{From: from.ID, To: to.ID, Amount: amount, Description: c.description, Date: day})
		if err != nil {
			return err
		}
		n, err := names(b)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, renderer.Transaction(out, n, a.currency(b)))
		return nil
	})
}
