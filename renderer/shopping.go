package renderer

import (
	"github.com/etnz/tracker"
)

// ShoppingList is the view of the planned expenses.
type ShoppingList struct {
	Rows    []ShoppingRow
	Planned string
}

type ShoppingRow struct {
	ID, Name, Priority, Date, Category, Account, Amount, Notes string
}

// RenderShoppingList renders the shopping items in the given order with
// their planned total.
func RenderShoppingList(items []tracker.ShoppingItem, n Names, cur tracker.Currency) string {
	var v ShoppingList
	var planned tracker.Amount
	for _, it := range items {
		planned = planned.Add(it.Amount)
		v.Rows = append(v.Rows, ShoppingRow{
			ID:       it.ID,
			Name:     cell(it.Name),
			Priority: string(it.Priority),
			Date:     it.Date.String(),
			Category: cell(n.Category(it.CategoryID)),
			Account:  cell(n.Account(it.AccountID)),
			Amount:   cur.Format(it.Amount),
			Notes:    cell(it.Notes),
		})
	}
	v.Planned = cur.Format(planned)
	return renderTemplate("shopping", "shopping.md", nil, v)
}
