package renderer

import (
	"github.com/etnz/tracker"
)

// Debts is the view of the debts and loans memos.
type Debts struct {
	Rows         []DebtRow
	Debts, Loans string
}

type DebtRow struct {
	ID, Type, Person, Date, Due, Amount, Description string
}

// RenderDebts renders debts and loans with the total of each kind.
func RenderDebts(items []tracker.DebtLoan, cur tracker.Currency) string {
	var v Debts
	var debts, loans tracker.Amount
	for _, d := range items {
		if d.Type == tracker.Debt {
			debts = debts.Add(d.Amount)
		} else {
			loans = loans.Add(d.Amount)
		}
		v.Rows = append(v.Rows, DebtRow{
			ID:          d.ID,
			Type:        string(d.Type),
			Person:      cell(d.Person),
			Date:        d.Date.String(),
			Due:         d.DueDate.String(),
			Amount:      cur.Format(d.Amount),
			Description: cell(d.Description),
		})
	}
	v.Debts, v.Loans = cur.Format(debts), cur.Format(loans)
	return renderTemplate("debts", "debts.md", nil, v)
}
