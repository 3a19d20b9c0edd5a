package renderer

import (
	"github.com/etnz/tracker"
)

// Report is the view of the income and expenses of a period.
type Report struct {
	Period   string
	Income   string
	Expenses string
	Net      string
	Earned   []ShareRow
	Spent    []ShareRow
	Months   []MonthRow
}

// ShareRow is the total of a category and its share of the period.
type ShareRow struct {
	Name, Total, Share string
}

type MonthRow struct {
	Month, Income, Expenses, Net string
}

// RenderReport renders a period summary, its breakdown by category and the
// month by month comparison.
func RenderReport(s tracker.Summary, income, expenses tracker.CategoryReport, months []tracker.MonthTotals, cur tracker.Currency) string {
	v := Report{
		Period:   rangeLabel(s.Range),
		Income:   cur.Format(s.Income),
		Expenses: cur.Format(s.Expenses),
		Net:      signed(cur, s.Net()),
		Earned:   shares(income, cur),
		Spent:    shares(expenses, cur),
	}
	for _, m := range months {
		v.Months = append(v.Months, MonthRow{
			Month:    m.Range.From.Format("Jan 2006"),
			Income:   cur.Format(m.Income),
			Expenses: cur.Format(m.Expenses),
			Net:      signed(cur, m.Net()),
		})
	}
	partials := map[string]string{
		"report_categories": "report_categories.md",
		"report_months":     "",
	}
	if len(v.Months) > 1 {
		partials["report_months"] = "report_months.md"
	}
	return renderTemplate("report", "report.md", partials, v)
}

func shares(r tracker.CategoryReport, cur tracker.Currency) []ShareRow {
	var rows []ShareRow
	for _, c := range r.Categories {
		rows = append(rows, ShareRow{Name: cell(c.Category.Name), Total: cur.Format(c.Total), Share: percent(c.Percent)})
	}
	return rows
}
