package renderer

import (
	"github.com/etnz/tracker"
)

// Accounts is the view of the account list.
type Accounts struct {
	Rows  []AccountRow
	Total string
}

type AccountRow struct {
	ID, Name, Balance string
}

// RenderAccounts renders the accounts with their balance and the total.
func RenderAccounts(accounts []tracker.Account, cur tracker.Currency) string {
	v := Accounts{Total: cur.Format(tracker.Sum(balances(accounts)...))}
	for _, a := range accounts {
		v.Rows = append(v.Rows, AccountRow{ID: a.ID, Name: cell(a.Name), Balance: cur.Format(a.Balance)})
	}
	return renderTemplate("accounts", "accounts.md", nil, v)
}

func balances(accounts []tracker.Account) []tracker.Amount {
	amounts := make([]tracker.Amount, len(accounts))
	for i, a := range accounts {
		amounts[i] = a.Balance
	}
	return amounts
}

// Categories is the view of the category list.
type Categories struct {
	Income, Expense []CategoryRow
}

type CategoryRow struct {
	ID, Name string
}

// RenderCategories renders the categories grouped by type.
func RenderCategories(categories []tracker.Category) string {
	var v Categories
	for _, c := range categories {
		row := CategoryRow{ID: c.ID, Name: cell(c.Name)}
		if c.Type == tracker.Income {
			v.Income = append(v.Income, row)
		} else {
			v.Expense = append(v.Expense, row)
		}
	}
	return renderTemplate("categories", "categories.md", nil, v)
}
