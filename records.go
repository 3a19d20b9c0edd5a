package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/etnz/tracker/date"
)

// Kind is the direction of a category or a transaction.
type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// ParseKind parses "income" or "expense".
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", invalid("unknown type %q want income or expense", s)
	}
	return k, nil
}

func (k Kind) Valid() bool { return k == Income || k == Expense }

// Signed returns the effect of an amount of this kind on a balance. An
// unknown kind has no effect.
func (k Kind) Signed(a Amount) Amount {
	switch k {
	case Income:
		return a
	case Expense:
		return a.Neg()
	default:
		return Amount{}
	}
}

// Account holds money. Its Balance always equals the sum of the effects of
// its transactions.
type Account struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Balance   Amount    `json:"balance"`
	Icon      Image     `json:"icon"`
	CreatedAt time.Time `json:"createdAt"`
}

// Category classifies transactions as income or expense.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      Kind      `json:"type"`
	Icon      Image     `json:"icon"`
	CreatedAt time.Time `json:"createdAt"`
}

// Direction of a transfer leg.
type Direction string

const (
	Out Direction = "out"
	In  Direction = "in"
)

// Transaction is a committed movement on an account. Amount is always
// positive; its effect on the account balance is given by its Type.
type Transaction struct {
	ID               string    `json:"id"`
	Type             Kind      `json:"type"`
	Amount           Amount    `json:"amount"`
	CategoryID       string    `json:"categoryId"`
	AccountID        string    `json:"accountId"`
	Date             date.Date `json:"date"`
	Description      string    `json:"description"`
	IncludeInReports bool      `json:"includeInReports"`
	CreatedAt        time.Time `json:"createdAt"`

	// Transfer legs share a TransferID.
	TransferID        string    `json:"transferId,omitempty"`
	TransferType      Direction `json:"transferType,omitempty"`
	TransferAccountID string    `json:"transferAccountId,omitempty"`

	ConvertedFromShoppingItem bool   `json:"convertedFromShoppingItem,omitempty"`
	ShoppingItemID            string `json:"shoppingItemId,omitempty"`
}

// validate checks the invariants of a stored category.
func (c Category) validate() error {
	if !c.Type.Valid() {
		return invalid("category %q: unknown type %q", c.ID, c.Type)
	}
	return nil
}

// validate checks the invariants of a stored transaction.
func (t Transaction) validate() error {
	if !t.Type.Valid() {
		return invalid("transaction %q: unknown type %q", t.ID, t.Type)
	}
	if !t.Amount.IsPositive() {
		return invalid("transaction %q: amount must be positive, got %v", t.ID, t.Amount)
	}
	if t.IsTransfer() && t.TransferType != Out && t.TransferType != In {
		return invalid("transaction %q: unknown transfer direction %q", t.ID, t.TransferType)
	}
	return nil
}

// Effect returns the signed effect of the transaction on its account. An
// invalid transaction has no effect.
func (t Transaction) Effect() Amount {
	if t.validate() != nil {
		return Amount{}
	}
	return t.Type.Signed(t.Amount)
}

// IsTransfer reports whether t is a leg of a transfer.
func (t Transaction) IsTransfer() bool { return t.TransferID != "" }

func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("type", t.Type)
	w.Append("amount", t.Amount)
	w.Append("categoryId", t.CategoryID)
	w.Append("accountId", t.AccountID)
	w.Append("date", t.Date)
	w.Append("description", t.Description)
	w.Append("includeInReports", t.IncludeInReports)
	w.Append("createdAt", t.CreatedAt)
	w.Optional("transferId", t.TransferID)
	w.Optional("transferType", t.TransferType)
	w.Optional("transferAccountId", t.TransferAccountID)
	w.Optional("convertedFromShoppingItem", t.ConvertedFromShoppingItem)
	w.Optional("shoppingItemId", t.ShoppingItemID)
	return w.MarshalJSON()
}

// Budget caps the expenses of a category over an inclusive date window.
type Budget struct {
	ID         string    `json:"id"`
	CategoryID string    `json:"categoryId"`
	Amount     Amount    `json:"amount"`
	StartDate  date.Date `json:"startDate"`
	EndDate    date.Date `json:"endDate"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Range returns the budget window.
func (b Budget) Range() date.Range { return date.Between(b.StartDate, b.EndDate) }

func (x Budget) validate() error {
	if !x.Amount.IsPositive() {
		return invalid("budget %q: amount must be positive, got %v", x.ID, x.Amount)
	}
	if x.StartDate.IsZero() || x.EndDate.IsZero() || x.StartDate.After(x.EndDate) {
		return invalid("budget %q: invalid window %s..%s", x.ID, x.StartDate, x.EndDate)
	}
	return nil
}

// Priority of a shopping item.
type Priority string

const (
	Low    Priority = "low"
	Medium Priority = "medium"
	High   Priority = "high"
)

// ParsePriority parses a priority, "" being Medium.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return Medium, nil
	case Low, Medium, High:
		return p, nil
	default:
		return "", invalid("unknown priority %q want low, medium or high", s)
	}
}

// rank orders priorities from high to low.
func (p Priority) rank() int {
	switch p {
	case High:
		return 0
	case Low:
		return 2
	default:
		return 1
	}
}

// ShoppingItem is a planned expense. It has no effect on balances until
// converted into a transaction.
type ShoppingItem struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Amount     Amount    `json:"amount"`
	CategoryID string    `json:"categoryId"`
	AccountID  string    `json:"accountId"`
	Date       date.Date `json:"date"` // optional
	Notes      string    `json:"notes"`
	Priority   Priority  `json:"priority"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (it ShoppingItem) validate() error {
	if !it.Amount.IsPositive() {
		return invalid("shopping item %q: amount must be positive, got %v", it.ID, it.Amount)
	}
	if _, err := ParsePriority(string(it.Priority)); err != nil {
		return fmt.Errorf("shopping item %q: %w", it.ID, err)
	}
	return nil
}

// DebtKind tells who owes: a debt is owed by the user, a loan to the user.
type DebtKind string

const (
	Debt DebtKind = "debt"
	Loan DebtKind = "loan"
)

func ParseDebtKind(s string) (DebtKind, error) {
	switch k := DebtKind(strings.ToLower(strings.TrimSpace(s))); k {
	case Debt, Loan:
		return k, nil
	default:
		return "", invalid("unknown type %q want debt or loan", s)
	}
}

// DebtLoan is a memo of money owed. It never changes account balances.
type DebtLoan struct {
	ID          string    `json:"id"`
	Type        DebtKind  `json:"type"`
	Amount      Amount    `json:"amount"`
	Person      string    `json:"person"`
	Date        date.Date `json:"date"`
	DueDate     date.Date `json:"dueDate"` // optional
	Description string    `json:"description"`
	Photo       Image     `json:"photo"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (d DebtLoan) validate() error {
	if d.Type != Debt && d.Type != Loan {
		return invalid("debt or loan %q: unknown type %q", d.ID, d.Type)
	}
	if !d.Amount.IsPositive() {
		return invalid("debt or loan %q: amount must be positive, got %v", d.ID, d.Amount)
	}
	return nil
}

// Profile is the public profile of a user.
type Profile struct {
	Username string    `json:"username"`
	Email    string    `json:"email"`
	JoinedAt time.Time `json:"joinedAt"`
	Theme    string    `json:"theme"`
	Currency Currency  `json:"currency"`
	Picture  Image     `json:"picture"`
}
