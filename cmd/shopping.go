package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/renderer"
	"github.com/google/subcommands"
)

type shopCmd struct {
	order string
}

func (*shopCmd) Name() string     { return "shop" }
func (*shopCmd) Synopsis() string { return "show the shopping list" }
func (*shopCmd) Usage() string {
	return `mtk shop [-sort priority|name|date-asc|date-desc|amount-asc|amount-desc]

  Lists the planned items and their total. Items without a date come last
  when sorting by date.
`
}

func (c *shopCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.order, "sort", "priority", "Order of the list.")
}

func (c *shopCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(func(a *app, b *tracker.Book) error {
		order, err := tracker.ParseOrder(c.order)
		if err != nil {
			return err
		}
		items, err := b.ShoppingList(order)
		if err != nil {
			return err
		}
		n, err := names(b)
		if err != nil {
			return err
		}
		a.print(renderer.RenderShoppingList(items, n, a.currency(b)))
		return nil
	})
}

// itemFlags are the fields of a shopping item shared by add-item and edit-item.
type itemFlags struct {
	name     string
	amount   string
	category string
	account  string
	date     string
	notes    string
	priority string
}

func (c *itemFlags) register(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Item name.")
	f.StringVar(&c.amount, "amount", "", "Planned amount.")
	f.StringVar(&c.category, "category", "", "Expense category id or name.")
	f.StringVar(&c.account, "account", "", "Account id or name to pay with.")
	f.StringVar(&c.date, "d", "", "Planned date, optional.")
	f.StringVar(&c.notes, "notes", "", "Notes.")
	f.StringVar(&c.priority, "priority", "medium", "Priority: low, medium or high.")
}

func (c *itemFlags) apply(b *tracker.Book, f *flag.FlagSet, in tracker.ShoppingItemInput) (tracker.ShoppingItemInput, error) {
	var err error
	if isSet(f, "name") {
		in.Name = c.name
	}
	if isSet(f, "amount") {
		if in.Amount, err = parseAmount(c.amount); err != nil {
			return in, err
		}
	}
	if isSet(f, "category") {
		cat, err := b.FindCategory(c.category, tracker.Expense)
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
	if isSet(f, "notes") {
		in.Notes = c.notes
	}
	if isSet(f, "priority") {
		if in.Priority, err = tracker.ParsePriority(c.priority); err != nil {
			return in, err
		}
	}
	return in, nil
}

type addItemCmd struct {
	itemFlags
}

func (*addItemCmd) Name() string     { return "add-item" }
func (*addItemCmd) Synopsis() string { return "plan an expense on the shopping list" }
func (*addItemCmd) Usage() string {
	return `mtk add-item -name <name> -amount <amount> -category <c> -account <a> [-d <date>] [-priority <p>] [-notes <text>]
`
}

func (c *addItemCmd) SetFlags(f *flag.FlagSet) { c.itemFlags.register(f) }

func (c *addItemCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(func(a *app, b *tracker.Book) error {
		in, err := c.apply(b, f, tracker.ShoppingItemInput{Priority: tracker.Medium})
		if err != nil {
			return err
		}
		item, err := b.AddShoppingItem(in)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Planned %q for %s (%s).\n", item.Name, a.currency(b).Format(item.Amount), item.ID)
		return nil
	})
}

type editItemCmd struct {
	itemFlags
}

func (*editItemCmd) Name() string     { return "edit-item" }
func (*editItemCmd) Synopsis() string { return "change a shopping item" }
func (*editItemCmd) Usage() string {
	return `mtk edit-item [-name ...] [-amount ...] [-category ...] [-account ...] [-d ...] [-priority ...] [-notes ...] <id>
`
}

func (c *editItemCmd) SetFlags(f *flag.FlagSet) { c.itemFlags.register(f) }

func (c *editItemCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(func(a *app, b *tracker.Book) error {
		id, err := oneArg(f, "item id")
		if err != nil {
			return err
		}
		old, ok := b.ShoppingItem(id)
		if !ok {
			return fmt.Errorf("%w: shopping item %q", tracker.ErrNotFound, id)
		}
		in, err := c.apply(b, f, tracker.ShoppingItemInput{
			Name:       old.Name,
			Amount:     old.Amount,
			CategoryID: old.CategoryID,
			AccountID:  old.AccountID,
			Date:       old.Date,
			Notes:      old.Notes,
			Priority:   old.Priority,
		})
		if err != nil {
			return err
		}
		item, err := b.EditShoppingItem(id, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Planned %q for %s.\n", item.Name, a.currency(b).Format(item.Amount))
		return nil
	})
}

type rmItemCmd struct{}

func (*rmItemCmd) Name() string     { return "rm-item" }
func (*rmItemCmd) Synopsis() string { return "remove an item from the shopping list" }
func (*rmItemCmd) Usage() string {
	return `mtk rm-item <id>
`
}

func (c *rmItemCmd) SetFlags(f *flag.FlagSet) {}

func (c *rmItemCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(func(a *app, b *tracker.Book) error {
		id, err := oneArg(f, "item id")
		if err != nil {
			return err
		}
		if err := b.DeleteShoppingItem(id); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Removed item %s.\n", id)
		return nil
	})
}

type buyItemCmd struct {
	amount      string
	date        string
	description string
}

func (*buyItemCmd) Name() string     { return "buy-item" }
func (*buyItemCmd) Synopsis() string { return "turn a shopping item into an expense" }
func (*buyItemCmd) Usage() string {
	return `mtk buy-item [-amount <amount>] [-d <date>] [-desc <text>] <id>

  Records the expense of a shopping item on its account and removes it from
  the list. The amount defaults to the planned one.
`
}

func (c *buyItemCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "amount", "", "Amount actually paid (default the planned amount).")
	f.StringVar(&c.date, "d", "", "Date of the purchase (default today).")
	f.StringVar(&c.description, "desc", "", "Description (default the item name).")
}

func (c *buyItemCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withBook(func(a *app, b *tracker.Book) error {
		id, err := oneArg(f, "item id")
		if err != nil {
			return err
		}
		in := tracker.ConvertInput{Description: c.description}
		if c.amount != "" {
			paid, err := parseAmount(c.amount)
			if err != nil {
				return err
			}
			in.Amount = &paid
		}
		if in.Date, err = parseOptionalDate(c.date); err != nil {
			return err
		}
		tx, err := b.ConvertShoppingItem(id, in)
		if err != nil {
			return err
		}
		return printTransaction(a, b, tx)
	})
}
