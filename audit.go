package tracker

import (
	"errors"
	"fmt"
)

// Discrepancy is an account whose stored balance differs from the sum of its
// transactions.
type Discrepancy struct {
	Account  Account
	Computed Amount
}

// Drift returns the stored balance minus the computed one.
func (d Discrepancy) Drift() Amount { return d.Account.Balance.Sub(d.Computed) }

// DanglingRef is a reference to a record that does not exist.
type DanglingRef struct {
	Transaction Transaction
	Field       string // "accountId", "categoryId" or "transferAccountId"
	ID          string
}

// InvalidTransaction is a stored transaction with an unknown type, a non
// positive amount or a bad transfer direction. It has no effect on balances.
type InvalidTransaction struct {
	Transaction Transaction
	Err         error
}

// Overlap is a pair of budgets of the same category with overlapping windows.
type Overlap struct{ A, B Budget }

// AuditReport lists the inconsistencies of a book.
type AuditReport struct {
	Accounts        int
	Transactions    int
	Discrepancies   []Discrepancy
	Dangling        []DanglingRef
	Invalid         []InvalidTransaction
	BrokenTransfers []string // transfer ids without exactly one out and one in leg
	Overlaps        []Overlap
}

// OK reports whether no inconsistency was found.
func (r AuditReport) OK() bool { return r.Err() == nil }

// Err joins every inconsistency in a single error, nil if there is none.
func (r AuditReport) Err() error {
	var errs []error
	for _, d := range r.Discrepancies {
		errs = append(errs, fmt.Errorf("account %q balance is %v but its transactions sum to %v", d.Account.Name, d.Account.Balance, d.Computed))
	}
	for _, d := range r.Dangling {
		errs = append(errs, fmt.Errorf("transaction %q refers to missing %s %q", d.Transaction.ID, d.Field, d.ID))
	}
	for _, x := range r.Invalid {
		errs = append(errs, x.Err)
	}
	for _, id := range r.BrokenTransfers {
		errs = append(errs, fmt.Errorf("transfer %q is not a pair of legs", id))
	}
	for _, o := range r.Overlaps {
		errs = append(errs, fmt.Errorf("budgets %q and %q overlap", o.A.ID, o.B.ID))
	}
	return errors.Join(errs...)
}

// Audit recomputes every balance from the transactions and checks references.
//
// It only reads: fixing an inconsistency is left to the caller.
func (b *Book) Audit() (AuditReport, error) {
	accounts, err := b.accounts()
	if err != nil {
		return AuditReport{}, err
	}
	categories, err := b.categories()
	if err != nil {
		return AuditReport{}, err
	}
	txs, err := b.transactions()
	if err != nil {
		return AuditReport{}, err
	}
	budgets, err := b.budgets()
	if err != nil {
		return AuditReport{}, err
	}
	r := AuditReport{Accounts: len(accounts), Transactions: len(txs)}

	sums := make(map[string]Amount, len(accounts))
	for _, a := range accounts {
		sums[a.ID] = Amount{}
	}
	hasCategory := make(map[string]bool, len(categories))
	for _, c := range categories {
		hasCategory[c.ID] = true
	}
	type legs struct{ out, in int }
	transfers := make(map[string]*legs)
	var transferIDs []string

	for _, t := range txs {
		if err := t.validate(); err != nil {
			r.Invalid = append(r.Invalid, InvalidTransaction{t, err})
		}
		if sum, ok := sums[t.AccountID]; ok {
			sums[t.AccountID] = sum.Add(t.Effect())
		} else {
			r.Dangling = append(r.Dangling, DanglingRef{t, "accountId", t.AccountID})
		}
		if !hasCategory[t.CategoryID] {
			r.Dangling = append(r.Dangling, DanglingRef{t, "categoryId", t.CategoryID})
		}
		if !t.IsTransfer() {
			continue
		}
		if _, ok := sums[t.TransferAccountID]; !ok {
			r.Dangling = append(r.Dangling, DanglingRef{t, "transferAccountId", t.TransferAccountID})
		}
		l, ok := transfers[t.TransferID]
		if !ok {
			l = &legs{}
			transfers[t.TransferID] = l
			transferIDs = append(transferIDs, t.TransferID)
		}
		switch t.TransferType {
		case Out:
			l.out++
		case In:
			l.in++
		}
	}
	for _, id := range transferIDs {
		if l := transfers[id]; l.out != 1 || l.in != 1 {
			r.BrokenTransfers = append(r.BrokenTransfers, id)
		}
	}
	for _, a := range accounts {
		if computed := sums[a.ID]; !computed.Equal(a.Balance) {
			r.Discrepancies = append(r.Discrepancies, Discrepancy{Account: a, Computed: computed})
		}
	}
	for i, x := range budgets {
		for _, y := range budgets[i+1:] {
			if x.CategoryID == y.CategoryID && x.Range().Overlaps(y.Range()) {
				r.Overlaps = append(r.Overlaps, Overlap{x, y})
			}
		}
	}
	return r, nil
}
