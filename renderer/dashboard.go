package renderer

import (
	"github.com/etnz/tracker"
)

// Dashboard is the view of the overview of a book.
type Dashboard struct {
	Date     string
	Total    string
	Accounts []AccountRow
	Month    string
	Income   string
	Expenses string
	Net      string
	Recent   []string
	Budgets  []BudgetRow
	Debts    string // empty without debts or loans
	Loans    string
}

// RenderDashboard renders the overview of a book.
func RenderDashboard(d tracker.Dashboard, n Names, cur tracker.Currency) string {
	v := Dashboard{
		Date:     d.Date.String(),
		Total:    cur.Format(d.TotalBalance),
		Month:    rangeLabel(d.Month.Range),
		Income:   cur.Format(d.Month.Income),
		Expenses: cur.Format(d.Month.Expenses),
		Net:      signed(cur, d.Month.Net()),
	}
	if !d.Debts.IsZero() || !d.Loans.IsZero() {
		v.Debts, v.Loans = cur.Format(d.Debts), cur.Format(d.Loans)
	}
	for _, a := range d.Accounts {
		v.Accounts = append(v.Accounts, AccountRow{ID: a.ID, Name: cell(a.Name), Balance: cur.Format(a.Balance)})
	}
	for _, tx := range d.Recent {
		v.Recent = append(v.Recent, Transaction(tx, n, cur))
	}
	for _, s := range d.Budgets.Statuses {
		v.Budgets = append(v.Budgets, budgetRow(s, cur))
	}
	partials := map[string]string{
		"dashboard_accounts": "dashboard_accounts.md",
		"dashboard_month":    "dashboard_month.md",
		"dashboard_budgets":  "dashboard_budgets.md",
	}
	return renderTemplate("dashboard", "dashboard.md", partials, v)
}
