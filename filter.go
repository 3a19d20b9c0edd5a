package tracker

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/tracker/date"
)

// Filter selects transactions.
type Filter func(Transaction) bool

// Transactions returns the transactions accepted by all filters, in stored
// order.
func (b *Book) Transactions(filters ...Filter) ([]Transaction, error) {
	txs, err := b.transactions()
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(txs, func(t Transaction) bool {
		for _, f := range filters {
			if !f(t) {
				return true
			}
		}
		return false
	}), nil
}

// ByAccount selects transactions on an account.
func ByAccount(id string) Filter { return func(t Transaction) bool { return t.AccountID == id } }

// ByCategory selects transactions of a category.
func ByCategory(id string) Filter { return func(t Transaction) bool { return t.CategoryID == id } }

// ByType selects income or expense transactions.
func ByType(k Kind) Filter { return func(t Transaction) bool { return t.Type == k } }

// During selects transactions dated within r.
func During(r date.Range) Filter { return func(t Transaction) bool { return r.Contains(t.Date) } }

// InReports selects transactions by their includeInReports flag.
func InReports(include bool) Filter {
	return func(t Transaction) bool { return t.IncludeInReports == include }
}

// AmountAtLeast selects transactions of at least min.
func AmountAtLeast(min Amount) Filter { return func(t Transaction) bool { return !t.Amount.LessThan(min) } }

// AmountAtMost selects transactions of at most max.
func AmountAtMost(max Amount) Filter { return func(t Transaction) bool { return !t.Amount.GreaterThan(max) } }

// Matching selects transactions whose description contains text, ignoring case.
func Matching(text string) Filter {
	text = strings.ToLower(text)
	return func(t Transaction) bool { return strings.Contains(strings.ToLower(t.Description), text) }
}

// Order of a listing.
type Order int

const (
	DateDesc Order = iota
	DateAsc
	AmountDesc
	AmountAsc
	NameAsc
	ByPriority // high first, shopping list only
)

var orderNames = []string{"date-desc", "date-asc", "amount-desc", "amount-asc", "name", "priority"}

func (o Order) String() string {
	if int(o) < len(orderNames) {
		return orderNames[o]
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// ParseOrder parses an order name like "date-asc". The empty string is DateDesc.
func ParseOrder(s string) (Order, error) {
	if s == "" {
		return DateDesc, nil
	}
	if i := slices.Index(orderNames, strings.ToLower(s)); i >= 0 {
		return Order(i), nil
	}
	return DateDesc, invalid("unknown order %q want one of %s", s, strings.Join(orderNames, ", "))
}

// SortTransactions sorts txs in place. Ties are broken by creation time in
// the same direction. NameAsc sorts by description.
func SortTransactions(txs []Transaction, o Order) {
	slices.SortStableFunc(txs, func(a, b Transaction) int {
		var c int
		switch o {
		case DateAsc:
			c = cmp.Or(a.Date.Compare(b.Date), a.CreatedAt.Compare(b.CreatedAt))
		case AmountDesc:
			c = b.Amount.Cmp(a.Amount)
		case AmountAsc:
			c = a.Amount.Cmp(b.Amount)
		case NameAsc:
			c = strings.Compare(strings.ToLower(a.Description), strings.ToLower(b.Description))
		default:
			c = cmp.Or(b.Date.Compare(a.Date), b.CreatedAt.Compare(a.CreatedAt))
		}
		return c
	})
}
