package tracker

import (
	"strings"
	"time"

	"github.com/etnz/tracker/date"
	"github.com/etnz/tracker/store"
)

// Book is the ledger of one user.
//
// A Book is not safe for concurrent use: operations are meant to run one at
// a time, each to completion.
type Book struct {
	store *store.Store
	sess  store.Session
	clock func() time.Time
}

// Open returns the book of the session's user.
func Open(s *store.Store, sess store.Session) *Book {
	return &Book{store: s, sess: sess, clock: time.Now}
}

// User returns the owner of the book.
func (b *Book) User() string { return b.sess.User }

func (b *Book) now() time.Time { return b.clock().UTC().Truncate(time.Millisecond) }

func (b *Book) today() date.Date { return date.Of(b.clock()) }

// Collection accessors. Storage failures are returned, corrupt collections
// are read as empty.

func (b *Book) accounts() ([]Account, error) {
	return store.Load[Account](b.store, b.sess, store.Accounts)
}
func (b *Book) saveAccounts(v []Account) error { return store.Save(b.store, b.sess, store.Accounts, v) }

func (b *Book) categories() ([]Category, error) {
	return store.Load[Category](b.store, b.sess, store.Categories)
}
func (b *Book) saveCategories(v []Category) error {
	return store.Save(b.store, b.sess, store.Categories, v)
}

func (b *Book) transactions() ([]Transaction, error) {
	return store.Load[Transaction](b.store, b.sess, store.Transactions)
}
func (b *Book) saveTransactions(v []Transaction) error {
	return store.Save(b.store, b.sess, store.Transactions, v)
}

func (b *Book) budgets() ([]Budget, error) {
	return store.Load[Budget](b.store, b.sess, store.Budgets)
}
func (b *Book) saveBudgets(v []Budget) error { return store.Save(b.store, b.sess, store.Budgets, v) }

func (b *Book) shoppingList() ([]ShoppingItem, error) {
	return store.Load[ShoppingItem](b.store, b.sess, store.ShoppingList)
}
func (b *Book) saveShoppingList(v []ShoppingItem) error {
	return store.Save(b.store, b.sess, store.ShoppingList, v)
}

func (b *Book) debtsLoans() ([]DebtLoan, error) {
	return store.Load[DebtLoan](b.store, b.sess, store.DebtsLoans)
}
func (b *Book) saveDebtsLoans(v []DebtLoan) error {
	return store.Save(b.store, b.sess, store.DebtsLoans, v)
}

// Account returns the first account with this id.
func (b *Book) Account(id string) (Account, bool) {
	accounts, _ := b.accounts()
	return findByID(accounts, id, func(a Account) string { return a.ID })
}

// Category returns the first category with this id.
func (b *Book) Category(id string) (Category, bool) {
	categories, _ := b.categories()
	return findByID(categories, id, func(c Category) string { return c.ID })
}

// FindAccount resolves ref as an account id, then as a case insensitive name.
func (b *Book) FindAccount(ref string) (Account, error) {
	accounts, err := b.accounts()
	if err != nil {
		return Account{}, err
	}
	if a, ok := findByID(accounts, ref, func(a Account) string { return a.ID }); ok {
		return a, nil
	}
	for _, a := range accounts {
		if strings.EqualFold(a.Name, strings.TrimSpace(ref)) {
			return a, nil
		}
	}
	return Account{}, notFound("account", ref)
}

// FindCategory resolves ref as a category id, then as a case insensitive
// name. If kind is not empty only categories of that kind match by name.
func (b *Book) FindCategory(ref string, kind Kind) (Category, error) {
	categories, err := b.categories()
	if err != nil {
		return Category{}, err
	}
	if c, ok := findByID(categories, ref, func(c Category) string { return c.ID }); ok {
		return c, nil
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, strings.TrimSpace(ref)) && (kind == "" || c.Type == kind) {
			return c, nil
		}
	}
	return Category{}, notFound("category", ref)
}

// findByID is a linear scan returning the first record with id.
func findByID[T any](records []T, id string, key func(T) string) (T, bool) {
	for _, r := range records {
		if key(r) == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// indexByID returns the index of the first record with id, or -1.
func indexByID[T any](records []T, id string, key func(T) string) int {
	for i, r := range records {
		if key(r) == id {
			return i
		}
	}
	return -1
}
