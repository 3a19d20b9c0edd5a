package renderer

import (
	"fmt"

	"github.com/etnz/tracker"
)

// Audit is the view of an audit report.
type Audit struct {
	Accounts     int
	Transactions int
	OK           bool
	Issues       []string
}

// RenderAudit renders the inconsistencies found in a book.
func RenderAudit(r tracker.AuditReport, n Names, cur tracker.Currency) string {
	v := Audit{Accounts: r.Accounts, Transactions: r.Transactions, OK: r.OK()}
	for _, d := range r.Discrepancies {
		v.Issues = append(v.Issues, fmt.Sprintf("Account %s has a balance of %s but its transactions sum to %s (drift %s).",
			cell(d.Account.Name), cur.Format(d.Account.Balance), cur.Format(d.Computed), signed(cur, d.Drift())))
	}
	for _, d := range r.Dangling {
		v.Issues = append(v.Issues, fmt.Sprintf("Transaction `%s` (%s) refers to a missing record in %s: `%s`.",
			d.Transaction.ID, cell(d.Transaction.Description), d.Field, d.ID))
	}
	for _, x := range r.Invalid {
		v.Issues = append(v.Issues, fmt.Sprintf("Transaction `%s` (%s) is invalid and ignored in balances: %s.",
			x.Transaction.ID, cell(x.Transaction.Description), cell(x.Err.Error())))
	}
	for _, id := range r.BrokenTransfers {
		v.Issues = append(v.Issues, fmt.Sprintf("Transfer `%s` does not have exactly one out and one in leg.", id))
	}
	for _, o := range r.Overlaps {
		v.Issues = append(v.Issues, fmt.Sprintf("Budgets of %s overlap: %s and %s.",
			cell(n.Category(o.A.CategoryID)), o.A.Range(), o.B.Range()))
	}
	return renderTemplate("audit", "audit.md", nil, v)
}
