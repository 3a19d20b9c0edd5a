package tracker

import (
	"slices"
	"strings"

	"github.com/etnz/tracker/date"
)

// BudgetInput holds the editable fields of a budget.
type BudgetInput struct {
	CategoryID string
	Amount     Amount
	Start, End date.Date
	Notes      string
}

// Budgets returns all budgets.
func (b *Book) Budgets() ([]Budget, error) { return b.budgets() }

// checkBudget validates in against the other budgets. skip is the id of the
// budget being edited, if any.
func (b *Book) checkBudget(in BudgetInput, budgets []Budget, skip string) (BudgetInput, error) {
	in.Notes = strings.TrimSpace(in.Notes)
	if !in.Amount.IsPositive() {
		return in, invalid("budget amount must be positive, got %v", in.Amount)
	}
	if in.Start.IsZero() || in.End.IsZero() {
		return in, invalid("budget start and end dates are required")
	}
	if in.Start.After(in.End) {
		return in, invalid("start date %s cannot be after end date %s", in.Start, in.End)
	}
	cat, ok := b.Category(in.CategoryID)
	if !ok {
		return in, invalid("unknown category %q", in.CategoryID)
	}
	if cat.Type != Expense {
		return in, invalid("budget category %q is not an expense category", cat.Name)
	}
	window := date.Between(in.Start, in.End)
	for _, x := range budgets {
		if x.ID != skip && x.CategoryID == in.CategoryID && x.Range().Overlaps(window) {
			return in, ErrBudgetOverlap
		}
	}
	return in, nil
}

// CreateBudget adds a budget for an expense category. Budgets of the same
// category cannot overlap, boundaries included.
func (b *Book) CreateBudget(in BudgetInput) (Budget, error) {
	budgets, err := b.budgets()
	if err != nil {
		return Budget{}, err
	}
	if in, err = b.checkBudget(in, budgets, ""); err != nil {
		return Budget{}, err
	}
	x := Budget{
		ID:         NewID(),
		CategoryID: in.CategoryID,
		Amount:     in.Amount,
		StartDate:  in.Start,
		EndDate:    in.End,
		Notes:      in.Notes,
		CreatedAt:  b.now(),
	}
	if err := b.saveBudgets(append(budgets, x)); err != nil {
		return Budget{}, err
	}
	return x, nil
}

// EditBudget updates a budget with the same rules as CreateBudget.
func (b *Book) EditBudget(id string, in BudgetInput) (Budget, error) {
	budgets, err := b.budgets()
	if err != nil {
		return Budget{}, err
	}
	i := indexByID(budgets, id, func(x Budget) string { return x.ID })
	if i < 0 {
		return Budget{}, notFound("budget", id)
	}
	if in, err = b.checkBudget(in, budgets, id); err != nil {
		return Budget{}, err
	}
	budgets[i].CategoryID = in.CategoryID
	budgets[i].Amount = in.Amount
	budgets[i].StartDate = in.Start
	budgets[i].EndDate = in.End
	budgets[i].Notes = in.Notes
	if err := b.saveBudgets(budgets); err != nil {
		return Budget{}, err
	}
	return budgets[i], nil
}

// DeleteBudget deletes a budget. Nothing refers to budgets.
func (b *Book) DeleteBudget(id string) error {
	budgets, err := b.budgets()
	if err != nil {
		return err
	}
	i := indexByID(budgets, id, func(x Budget) string { return x.ID })
	if i < 0 {
		return notFound("budget", id)
	}
	return b.saveBudgets(slices.Delete(budgets, i, i+1))
}

// Spent returns the total of the expenses of the budget's category dated
// within its window. Transactions excluded from reports count too.
func (b *Book) Spent(x Budget) (Amount, error) {
	txs, err := b.transactions()
	if err != nil {
		return Amount{}, err
	}
	return spent(x, txs), nil
}

func spent(x Budget, txs []Transaction) Amount {
	var total Amount
	window := x.Range()
	for _, t := range txs {
		if t.CategoryID == x.CategoryID && t.Type == Expense && window.Contains(t.Date) {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// BudgetStatus is the progress of a budget.
type BudgetStatus struct {
	Budget    Budget
	Category  Category
	Spent     Amount
	Remaining Amount // negative when over budget
	Percent   float64
}

// Over reports whether more than the budget has been spent.
func (s BudgetStatus) Over() bool { return s.Spent.GreaterThan(s.Budget.Amount) }

// BudgetReport lists the budgets overlapping a period.
type BudgetReport struct {
	Range    date.Range
	Statuses []BudgetStatus
	Budgeted Amount
	Spent    Amount
}

// Remaining returns the total budgeted minus the total spent.
func (r BudgetReport) Remaining() Amount { return r.Budgeted.Sub(r.Spent) }

// BudgetStatuses reports the progress of every budget overlapping r, in
// start date order.
func (b *Book) BudgetStatuses(r date.Range) (BudgetReport, error) {
	budgets, err := b.budgets()
	if err != nil {
		return BudgetReport{}, err
	}
	txs, err := b.transactions()
	if err != nil {
		return BudgetReport{}, err
	}
	report := BudgetReport{Range: r}
	for _, x := range budgets {
		if !x.Range().Overlaps(r) {
			continue
		}
		cat, _ := b.Category(x.CategoryID)
		s := BudgetStatus{Budget: x, Category: cat, Spent: spent(x, txs)}
		s.Remaining = x.Amount.Sub(s.Spent)
		s.Percent = s.Spent.Percent(x.Amount)
		report.Statuses = append(report.Statuses, s)
		report.Budgeted = report.Budgeted.Add(x.Amount)
		report.Spent = report.Spent.Add(s.Spent)
	}
	slices.SortStableFunc(report.Statuses, func(a, b BudgetStatus) int {
		return a.Budget.StartDate.Compare(b.Budget.StartDate)
	})
	return report, nil
}
