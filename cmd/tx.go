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

type txCmd struct {
	periodFlags
	account  string
	category string
	kind     string
	min, max string
	query    string
	order    string
	reported bool
	head     int
	tail     int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions" }
func (*txCmd) Usage() string {
	return `mtk tx [-p <period> | -s <start_date>] [-d <end_date>] [-account <a>] [-category <c>]
       [-type income|expense] [-min <amount>] [-max <amount>] [-q <text>] [-reported]
       [-sort <order>] [-head <n>] [-tail <n>]

  Lists transactions matching all the given filters, most recent first by
  default. Without a period, lists all transactions.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	c.periodFlags.register(f, "")
	f.StringVar(&c.account, "account", "", "Only transactions of this account.")
	f.StringVar(&c.category, "category", "", "Only transactions of this category.")
	f.StringVar(&c.kind, "type", "", "Only income or expense transactions.")
	f.StringVar(&c.min, "min", "", "Minimum amount.")
	f.StringVar(&c.max, "max", "", "Maximum amount.")
	f.StringVar(&c.query, "q", "", "Only transactions whose description contains this text.")
	f.BoolVar(&c.reported, "reported", false, "Only transactions included in reports.")
	f.StringVar(&c.order, "sort", "date-desc", "Order: date-desc, date-asc, amount-desc, amount-asc or name.")
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N transactions.")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}
	return withBook(func(a *app, b *tracker.Book) error {
		order, err := tracker.ParseOrder(c.order)
		if err != nil {
			return err
		}
		filters, title, err := c.filters(b)
		if err != nil {
			return err
		}
		txs, err := b.Transactions(filters...)
		if err != nil {
			return err
		}
		tracker.SortTransactions(txs, order)
		if c.head > 0 && len(txs) > c.head {
			txs = txs[:c.head]
		}
		if c.tail > 0 && len(txs) > c.tail {
			txs = txs[len(txs)-c.tail:]
		}
		n, err := names(b)
		if err != nil {
			return err
		}
		a.print(renderer.RenderTransactions(title, txs, n, a.currency(b)))
		return nil
	})
}

func (c *txCmd) filters(b *tracker.Book) ([]tracker.Filter, string, error) {
	var filters []tracker.Filter
	title := "Transactions"
	r, ok, err := c.Range(date.Today())
	if err != nil {
		return nil, "", err
	}
	if ok {
		filters = append(filters, tracker.During(r))
		title += " " + r.String()
	}
	if c.account != "" {
		acc, err := b.FindAccount(c.account)
		if err != nil {
			return nil, "", err
		}
		filters = append(filters, tracker.ByAccount(acc.ID))
		title += " of " + acc.Name
	}
	if c.category != "" {
		cat, err := b.FindCategory(c.category, "")
		if err != nil {
			return nil, "", err
		}
		filters = append(filters, tracker.ByCategory(cat.ID))
		title += " in " + cat.Name
	}
	if c.kind != "" {
		k, err := tracker.ParseKind(c.kind)
		if err != nil {
			return nil, "", err
		}
		filters = append(filters, tracker.ByType(k))
	}
	if c.min != "" {
		atLeast, err := parseAmount(c.min)
		if err != nil {
			return nil, "", err
		}
		filters = append(filters, tracker.AmountAtLeast(atLeast))
	}
	if c.max != "" {
		atMost, err := parseAmount(c.max)
		if err != nil {
			return nil, "", err
		}
		filters = append(filters, tracker.AmountAtMost(atMost))
	}
	if c.query != "" {
		filters = append(filters, tracker.Matching(c.query))
	}
	if c.reported {
		filters = append(filters, tracker.InReports(true))
	}
	return filters, title, nil
}

// txFlags are the fields of a transaction shared by add-tx and edit-tx.
type txFlags struct {
	kind        string
	amount      string
	category    string
	account     string
	date        string
	description string
	noReport    bool
}

func (c *txFlags) register(f *flag.FlagSet) {
	f.StringVar(&c.kind, "type", "expense", "Transaction type: income or expense.")
	f.StringVar(&c.amount, "amount", "", "Amount, positive. Arithmetic like 19.99*2 is accepted.")
	f.StringVar(&c.category, "category", "", "Category id or name.")
	f.StringVar(&c.account, "account", "", "Account id or name.")
	f.StringVar(&c.date, "d", "", "Date (default today).")
	f.StringVar(&c.description, "desc", "", "Description.")
	f.BoolVar(&c.noReport, "no-report", false, "Leave the transaction out of reports.")
}

// apply overrides the fields of in with the flags set in f.
func (c *txFlags) apply(b *tracker.Book, f *flag.FlagSet, in tracker.TransactionInput) (tracker.TransactionInput, error) {
	var err error
	if isSet(f, "type") {
		if in.Type, err = tracker.ParseKind(c.kind); err != nil {
			return in, err
		}
	}
	if isSet(f, "amount") {
		if in.Amount, err = parseAmount(c.amount); err != nil {
			return in, err
		}
	}
	if isSet(f, "category") {
		cat, err := b.FindCategory(c.category, in.Type)
		if err != nil {
			return in, err
		}
		in.CategoryID = cat.ID
	}
	if isSet(f, "account") {
		acc, err := b.FindAccount(c.account)
		if err != nil {
			return in, err
		}
		in.AccountID = acc.ID
	}
	if isSet(f, "d") {
		if in.Date, err = parseOptionalDate(c.date); err != nil {
			return in, err
		}
	}
	if isSet(f, "desc") {
		in.Description = c.description
	}
	if isSet(f, "no-report") {
		in.IncludeInReports = !c.noReport
	}
	return in, nil
}

type addTxCmd struct {
	txFlags
}

func (*addTxCmd) Name() string     { return "add-tx" }
func (*addTxCmd) Synopsis() string { return "record an income or an expense" }
func (*addTxCmd) Usage() string {
	return `mtk add-tx [-type income|expense] -amount <amount> -category <c> -account <a> [-d <date>] [-desc <text>] [-no-report]

  Records a transaction and applies it to the account balance.
`
}

func (c *addTxCmd) SetFlags(f *flag.FlagSet) { c.txFlags.register(f) }

func (c *addTxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(func(a *app, b *tracker.Book) error {
		kind, err := tracker.ParseKind(c.kind)
		if err != nil {
			return err
		}
		in, err := c.apply(b, f, tracker.TransactionInput{Type: kind, IncludeInReports: true})
		if err != nil {
			return err
		}
		if !isSet(f, "amount") || !isSet(f, "category") || !isSet(f, "account") {
			return usage("-amount, -category and -account are required")
		}
		tx, err := b.CreateTransaction(in)
		if err != nil {
			return err
		}
		return printTransaction(a, b, tx)
	})
}

func printTransaction(a *app, b *tracker.Book, tx tracker.Transaction) error {
	n, err := names(b)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s (%s)\n", renderer.Transaction(tx, n, a.currency(b)), tx.ID)
	return nil
}

type editTxCmd struct {
	txFlags
}

func (*editTxCmd) Name() string     { return "edit-tx" }
func (*editTxCmd) Synopsis() string { return "change a transaction" }
func (*editTxCmd) Usage() string {
	return `mtk edit-tx [-type ...] [-amount ...] [-category ...] [-account ...] [-d ...] [-desc ...] [-no-report=true|false] <id>

  Changes the given fields of a transaction and moves its effect between
  accounts. Transfers cannot be edited.
`
}

func (c *editTxCmd) SetFlags(f *flag.FlagSet) { c.txFlags.register(f) }

func (c *editTxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(func(a *app, b *tracker.Book) error {
		id, err := oneArg(f, "transaction id")
		if err != nil {
			return err
		}
		old, ok := b.Transaction(id)
		if !ok {
			return fmt.Errorf("%w: transaction %q", tracker.ErrNotFound, id)
		}
		in, err := c.apply(b, f, tracker.TransactionInput{
			Type:             old.Type,
			Amount:           old.Amount,
			CategoryID:       old.CategoryID,
			AccountID:        old.AccountID,
			Date:             old.Date,
			Description:      old.Description,
			IncludeInReports: old.IncludeInReports,
		})
		if err != nil {
			return err
		}
		tx, err := b.EditTransaction(id, in)
		if err != nil {
			return err
		}
		return printTransaction(a, b, tx)
	})
}

type rmTxCmd struct{}

func (*rmTxCmd) Name() string     { return "rm-tx" }
func (*rmTxCmd) Synopsis() string { return "delete a transaction" }
func (*rmTxCmd) Usage() string {
	return `mtk rm-tx <id>

  Deletes a transaction and reverses its effect. Deleting a transfer leg
  deletes both legs.
`
}

func (c *rmTxCmd) SetFlags(f *flag.FlagSet) {}

func (c *rmTxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(func(a *app, b *tracker.Book) error {
		id, err := oneArg(f, "transaction id")
		if err != nil {
			return err
		}
		if err := b.DeleteTransaction(id); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Deleted transaction %s.\n", id)
		return nil
	})
}
