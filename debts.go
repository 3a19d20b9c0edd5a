package tracker

import (
	"slices"
	"strings"

	"github.com/etnz/tracker/date"
)

// DebtLoanInput holds the editable fields of a debt or a loan.
type DebtLoanInput struct {
	Type        DebtKind
	Amount      Amount
	Person      string
	Date        date.Date // today if zero
	DueDate     date.Date // optional
	Description string
	Photo       Image
}

func (b *Book) checkDebtLoan(in DebtLoanInput) (DebtLoanInput, error) {
	in.Person = strings.TrimSpace(in.Person)
	in.Description = strings.TrimSpace(in.Description)
	if in.Type != Debt && in.Type != Loan {
		return in, invalid("unknown type %q want debt or loan", in.Type)
	}
	if !in.Amount.IsPositive() {
		return in, invalid("amount must be positive, got %v", in.Amount)
	}
	if in.Person == "" {
		return in, invalid("person is required")
	}
	if in.Date.IsZero() {
		in.Date = b.today()
	}
	if !in.DueDate.IsZero() && in.DueDate.Before(in.Date) {
		return in, invalid("due date %s cannot be before %s", in.DueDate, in.Date)
	}
	return in, nil
}

// AddDebtLoan records a debt or a loan. Balances are not affected.
func (b *Book) AddDebtLoan(in DebtLoanInput) (DebtLoan, error) {
	in, err := b.checkDebtLoan(in)
	if err != nil {
		return DebtLoan{}, err
	}
	all, err := b.debtsLoans()
	if err != nil {
		return DebtLoan{}, err
	}
	d := DebtLoan{
		ID:          NewID(),
		Type:        in.Type,
		Amount:      in.Amount,
		Person:      in.Person,
		Date:        in.Date,
		DueDate:     in.DueDate,
		Description: in.Description,
		Photo:       in.Photo,
		CreatedAt:   b.now(),
	}
	if err := b.saveDebtsLoans(append(all, d)); err != nil {
		return DebtLoan{}, err
	}
	return d, nil
}

// EditDebtLoan replaces the fields of a debt or a loan.
func (b *Book) EditDebtLoan(id string, in DebtLoanInput) (DebtLoan, error) {
	all, err := b.debtsLoans()
	if err != nil {
		return DebtLoan{}, err
	}
	i := indexByID(all, id, func(d DebtLoan) string { return d.ID })
	if i < 0 {
		return DebtLoan{}, notFound("debt or loan", id)
	}
	if in, err = b.checkDebtLoan(in); err != nil {
		return DebtLoan{}, err
	}
	d := &all[i]
	d.Type, d.Amount, d.Person = in.Type, in.Amount, in.Person
	d.Date, d.DueDate = in.Date, in.DueDate
	d.Description, d.Photo = in.Description, in.Photo
	if err := b.saveDebtsLoans(all); err != nil {
		return DebtLoan{}, err
	}
	return *d, nil
}

// DeleteDebtLoan removes a debt or a loan.
func (b *Book) DeleteDebtLoan(id string) error {
	all, err := b.debtsLoans()
	if err != nil {
		return err
	}
	i := indexByID(all, id, func(d DebtLoan) string { return d.ID })
	if i < 0 {
		return notFound("debt or loan", id)
	}
	return b.saveDebtsLoans(slices.Delete(all, i, i+1))
}

// DebtsLoans returns the debts and loans of the given kind, all if kind is
// empty.
func (b *Book) DebtsLoans(kind DebtKind) ([]DebtLoan, error) {
	all, err := b.debtsLoans()
	if err != nil || kind == "" {
		return all, err
	}
	return slices.DeleteFunc(all, func(d DebtLoan) bool { return d.Type != kind }), nil
}

// DebtTotals returns the total owed by the user and the total owed to the user.
func (b *Book) DebtTotals() (debts, loans Amount, err error) {
	all, err := b.debtsLoans()
	if err != nil {
		return debts, loans, err
	}
	for _, d := range all {
		switch d.Type {
		case Debt:
			debts = debts.Add(d.Amount)
		case Loan:
			loans = loans.Add(d.Amount)
		}
	}
	return debts, loans, nil
}
