package tracker

import (
	"slices"

	"github.com/etnz/tracker/date"
)

// Reports only count transactions with IncludeInReports set: transfers and
// balance adjustments are left out.

// Summary totals income and expenses over a period.
type Summary struct {
	Range    date.Range
	Income   Amount
	Expenses Amount
}

// Net returns income minus expenses.
func (s Summary) Net() Amount { return s.Income.Sub(s.Expenses) }

// CategoryTotal is the total of one category over a period.
type CategoryTotal struct {
	Category Category
	Total    Amount
	Percent  float64 // share of the period total
}

// CategoryReport breaks down the income or the expenses of a period.
type CategoryReport struct {
	Range      date.Range
	Type       Kind
	Total      Amount
	Categories []CategoryTotal // largest first
}

// MonthTotals is the summary of one calendar month.
type MonthTotals = Summary

// Dashboard is the overview of a book on a given day.
type Dashboard struct {
	Date         date.Date
	TotalBalance Amount
	Accounts     []Account
	Month        Summary       // current month
	Recent       []Transaction // most recent first
	Budgets      BudgetReport  // current month
	Debts, Loans Amount
}

// RecentCount is the number of transactions in a Dashboard.
const RecentCount = 5

// MaxMonths is the number of months a MonthlyComparison covers at most.
const MaxMonths = 12

func reportable(r date.Range) Filter {
	return func(t Transaction) bool { return t.IncludeInReports && r.Contains(t.Date) }
}

func summarize(r date.Range, txs []Transaction) Summary {
	s := Summary{Range: r}
	for _, t := range txs {
		if !t.IncludeInReports || !r.Contains(t.Date) {
			continue
		}
		switch t.Type {
		case Income:
			s.Income = s.Income.Add(t.Amount)
		case Expense:
			s.Expenses = s.Expenses.Add(t.Amount)
		}
	}
	return s
}

// Summary returns the income and expenses of r.
func (b *Book) Summary(r date.Range) (Summary, error) {
	txs, err := b.transactions()
	if err != nil {
		return Summary{}, err
	}
	return summarize(r, txs), nil
}

// CategoryTotals returns the totals per category of kind over r.
func (b *Book) CategoryTotals(r date.Range, kind Kind) (CategoryReport, error) {
	txs, err := b.Transactions(reportable(r), ByType(kind))
	if err != nil {
		return CategoryReport{}, err
	}
	report := CategoryReport{Range: r, Type: kind}
	index := make(map[string]int)
	for _, t := range txs {
		i, ok := index[t.CategoryID]
		if !ok {
			cat, found := b.Category(t.CategoryID)
			if !found {
				cat = Category{ID: t.CategoryID, Name: "Unknown", Type: kind}
			}
			i = len(report.Categories)
			index[t.CategoryID] = i
			report.Categories = append(report.Categories, CategoryTotal{Category: cat})
		}
		report.Categories[i].Total = report.Categories[i].Total.Add(t.Amount)
		report.Total = report.Total.Add(t.Amount)
	}
	for i := range report.Categories {
		report.Categories[i].Percent = report.Categories[i].Total.Percent(report.Total)
	}
	slices.SortStableFunc(report.Categories, func(a, b CategoryTotal) int { return b.Total.Cmp(a.Total) })
	return report, nil
}

// ExpensesByCategory returns the expenses per category over r.
func (b *Book) ExpensesByCategory(r date.Range) (CategoryReport, error) {
	return b.CategoryTotals(r, Expense)
}

// MonthlyComparison returns one summary per calendar month touched by r, the
// first MaxMonths ones.
func (b *Book) MonthlyComparison(r date.Range) ([]MonthTotals, error) {
	txs, err := b.transactions()
	if err != nil {
		return nil, err
	}
	var months []MonthTotals
	for m := range r.Months(MaxMonths) {
		months = append(months, summarize(date.Month(m), txs))
	}
	return months, nil
}

// Dashboard returns the overview of the book on day.
func (b *Book) Dashboard(day date.Date) (Dashboard, error) {
	d := Dashboard{Date: day}
	var err error
	if d.Accounts, err = b.accounts(); err != nil {
		return d, err
	}
	for _, a := range d.Accounts {
		d.TotalBalance = d.TotalBalance.Add(a.Balance)
	}
	month := date.Month(day)
	if d.Month, err = b.Summary(month); err != nil {
		return d, err
	}
	txs, err := b.transactions()
	if err != nil {
		return d, err
	}
	SortTransactions(txs, DateDesc)
	d.Recent = txs[:min(len(txs), RecentCount)]
	if d.Budgets, err = b.BudgetStatuses(month); err != nil {
		return d, err
	}
	if d.Debts, d.Loans, err = b.DebtTotals(); err != nil {
		return d, err
	}
	return d, nil
}
