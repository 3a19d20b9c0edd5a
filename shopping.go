package tracker

import (
	"cmp"
	"slices"
	"strings"

	"github.com/etnz/tracker/date"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ShoppingItemInput holds the editable fields of a shopping item.
type ShoppingItemInput struct {
	Name       string
	Amount     Amount
	CategoryID string
	AccountID  string
	Date       date.Date // optional
	Notes      string
	Priority   Priority // Medium if empty
}

func (b *Book) checkShoppingItem(in ShoppingItemInput) (ShoppingItemInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Notes = strings.TrimSpace(in.Notes)
	if in.Name == "" {
		return in, invalid("item name is required")
	}
	if !in.Amount.IsPositive() {
		return in, invalid("amount must be positive, got %v", in.Amount)
	}
	p, err := ParsePriority(string(in.Priority))
	if err != nil {
		return in, err
	}
	in.Priority = p
	cat, ok := b.Category(in.CategoryID)
	if !ok {
		return in, invalid("unknown category %q", in.CategoryID)
	}
	if cat.Type != Expense {
		return in, invalid("category %q is not an expense category", cat.Name)
	}
	if _, ok := b.Account(in.AccountID); !ok {
		return in, invalid("unknown account %q", in.AccountID)
	}
	return in, nil
}

// AddShoppingItem plans an expense.
func (b *Book) AddShoppingItem(in ShoppingItemInput) (ShoppingItem, error) {
	in, err := b.checkShoppingItem(in)
	if err != nil {
		return ShoppingItem{}, err
	}
	items, err := b.shoppingList()
	if err != nil {
		return ShoppingItem{}, err
	}
	it := ShoppingItem{
		ID:         NewID(),
		Name:       in.Name,
		Amount:     in.Amount,
		CategoryID: in.CategoryID,
		AccountID:  in.AccountID,
		Date:       in.Date,
		Notes:      in.Notes,
		Priority:   in.Priority,
		CreatedAt:  b.now(),
	}
	if err := b.saveShoppingList(append(items, it)); err != nil {
		return ShoppingItem{}, err
	}
	return it, nil
}

// EditShoppingItem replaces the fields of a shopping item.
func (b *Book) EditShoppingItem(id string, in ShoppingItemInput) (ShoppingItem, error) {
	items, err := b.shoppingList()
	if err != nil {
		return ShoppingItem{}, err
	}
	i := indexByID(items, id, func(it ShoppingItem) string { return it.ID })
	if i < 0 {
		return ShoppingItem{}, notFound("shopping item", id)
	}
	if in, err = b.checkShoppingItem(in); err != nil {
		return ShoppingItem{}, err
	}
	it := &items[i]
	it.Name, it.Amount, it.Notes, it.Priority = in.Name, in.Amount, in.Notes, in.Priority
	it.CategoryID, it.AccountID, it.Date = in.CategoryID, in.AccountID, in.Date
	if err := b.saveShoppingList(items); err != nil {
		return ShoppingItem{}, err
	}
	return *it, nil
}

// DeleteShoppingItem drops a planned item.
func (b *Book) DeleteShoppingItem(id string) error {
	items, err := b.shoppingList()
	if err != nil {
		return err
	}
	i := indexByID(items, id, func(it ShoppingItem) string { return it.ID })
	if i < 0 {
		return notFound("shopping item", id)
	}
	return b.saveShoppingList(slices.Delete(items, i, i+1))
}

// ShoppingItem returns the first shopping item with this id.
func (b *Book) ShoppingItem(id string) (ShoppingItem, bool) {
	items, _ := b.shoppingList()
	return findByID(items, id, func(it ShoppingItem) string { return it.ID })
}

// ShoppingList returns the planned items sorted by o. Items without a date
// come last in both date orders.
func (b *Book) ShoppingList(o Order) ([]ShoppingItem, error) {
	items, err := b.shoppingList()
	if err != nil {
		return nil, err
	}
	SortShoppingList(items, o)
	return items, nil
}

// SortShoppingList sorts items in place, stably.
func SortShoppingList(items []ShoppingItem, o Order) {
	col := collate.New(language.English, collate.IgnoreCase)
	byDate := func(a, b ShoppingItem, dir int) int {
		switch {
		case a.Date.IsZero() && b.Date.IsZero():
			return 0
		case a.Date.IsZero():
			return 1
		case b.Date.IsZero():
			return -1
		}
		return dir * a.Date.Compare(b.Date)
	}
	slices.SortStableFunc(items, func(a, b ShoppingItem) int {
		switch o {
		case DateAsc:
			return byDate(a, b, 1)
		case DateDesc:
			return byDate(a, b, -1)
		case AmountAsc:
			return a.Amount.Cmp(b.Amount)
		case AmountDesc:
			return b.Amount.Cmp(a.Amount)
		case NameAsc:
			return col.CompareString(a.Name, b.Name)
		case ByPriority:
			return cmp.Compare(a.Priority.rank(), b.Priority.rank())
		}
		return 0
	})
}

// PlannedTotal returns the sum of the planned amounts.
func (b *Book) PlannedTotal() (Amount, error) {
	items, err := b.shoppingList()
	if err != nil {
		return Amount{}, err
	}
	var total Amount
	for _, it := range items {
		total = total.Add(it.Amount)
	}
	return total, nil
}

// ConvertInput adjusts a shopping item when it is bought. A nil Amount is
// the planned amount, zero Date and Description default to today and the
// item name.
type ConvertInput struct {
	Amount      *Amount
	Date        date.Date
	Description string
}

// ConvertShoppingItem commits a planned item: it records one expense
// transaction, applies it to the item's account and removes the item.
func (b *Book) ConvertShoppingItem(id string, in ConvertInput) (Transaction, error) {
	it, ok := b.ShoppingItem(id)
	if !ok {
		return Transaction{}, notFound("shopping item", id)
	}
	amount := it.Amount
	if in.Amount != nil {
		amount = *in.Amount
	}
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		desc = it.Name
	}
	txin, err := b.checkTransaction(TransactionInput{
		Type:             Expense,
		Amount:           amount,
		CategoryID:       it.CategoryID,
		AccountID:        it.AccountID,
		Date:             in.Date,
		Description:      desc,
		IncludeInReports: true,
	})
	if err != nil {
		return Transaction{}, err
	}
	tx := Transaction{
		ID:                        NewID(),
		Type:                      Expense,
		Amount:                    txin.Amount,
		CategoryID:                txin.CategoryID,
		AccountID:                 txin.AccountID,
		Date:                      txin.Date,
		Description:               txin.Description,
		IncludeInReports:          true,
		CreatedAt:                 b.now(),
		ConvertedFromShoppingItem: true,
		ShoppingItemID:            it.ID,
	}
	if err := b.appendTransactions(tx); err != nil {
		return Transaction{}, err
	}
	if err := b.ApplyDelta(tx.AccountID, tx.Effect()); err != nil {
		return tx, err
	}
	return tx, b.DeleteShoppingItem(it.ID)
}
