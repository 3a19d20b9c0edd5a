package renderer

import (
	"github.com/etnz/tracker"
)

// Budgets is the view of a budget report.
type Budgets struct {
	Period    string
	Rows      []BudgetRow
	Budgeted  string
	Spent     string
	Remaining string
}

type BudgetRow struct {
	ID, Category, Window, Amount, Spent, Remaining, Progress, Status, Notes string
}

// RenderBudgets renders the progress of the budgets of a report.
func RenderBudgets(r tracker.BudgetReport, cur tracker.Currency) string {
	v := Budgets{
		Period:    rangeLabel(r.Range),
		Budgeted:  cur.Format(r.Budgeted),
		Spent:     cur.Format(r.Spent),
		Remaining: cur.Format(r.Remaining()),
	}
	for _, s := range r.Statuses {
		v.Rows = append(v.Rows, budgetRow(s, cur))
	}
	return renderTemplate("budgets", "budgets.md", nil, v)
}

func budgetRow(s tracker.BudgetStatus, cur tracker.Currency) BudgetRow {
	status := "on track"
	if s.Over() {
		status = "**over budget**"
	}
	return BudgetRow{
		ID:        s.Budget.ID,
		Category:  cell(s.Category.Name),
		Window:    s.Budget.Range().String(),
		Amount:    cur.Format(s.Budget.Amount),
		Spent:     cur.Format(s.Spent),
		Remaining: cur.Format(s.Remaining),
		Progress:  percent(s.Percent),
		Status:    status,
		Notes:     cell(s.Budget.Notes),
	}
}
