package tracker

import (
	"testing"
	"time"

	"github.com/etnz/tracker/date"
	"github.com/etnz/tracker/store"
)

// testDay is "today" for every test book.
var testDay = date.New(2024, time.January, 20)

// newBook returns an empty book on an in-memory storage, with a fixed clock.
func newBook(t *testing.T) *Book {
	t.Helper()
	b := Open(store.New(store.NewMemory()), store.Session{User: "alice"})
	b.clock = func() time.Time { return time.Date(2024, time.January, 20, 10, 30, 0, 0, time.UTC) }
	return b
}

func mustAccount(t *testing.T, b *Book, name string, balance float64) Account {
	t.Helper()
	a, err := b.CreateAccount(AccountInput{Name: name, Balance: A(balance)})
	if err != nil {
		t.Fatalf("CreateAccount(%q) error = %v", name, err)
	}
	return a
}

func mustCategory(t *testing.T, b *Book, name string, kind Kind) Category {
	t.Helper()
	c, err := b.CreateCategory(CategoryInput{Name: name, Type: kind})
	if err != nil {
		t.Fatalf("CreateCategory(%q) error = %v", name, err)
	}
	return c
}

func mustTx(t *testing.T, b *Book, in TransactionInput) Transaction {
	t.Helper()
	tx, err := b.CreateTransaction(in)
	if err != nil {
		t.Fatalf("CreateTransaction(%+v) error = %v", in, err)
	}
	return tx
}

// balance returns the stored balance of an account.
func balance(t *testing.T, b *Book, id string) Amount {
	t.Helper()
	a, ok := b.Account(id)
	if !ok {
		t.Fatalf("account %q not found", id)
	}
	return a.Balance
}

func ptr[T any](v T) *T { return &v }

func assertBalance(t *testing.T, b *Book, id string, want float64) {
	t.Helper()
	if got := balance(t, b, id); !got.Equal(A(want)) {
		t.Errorf("balance of %q = %v, want %v", id, got, want)
	}
}

// assertConsistent fails if any balance differs from the sum of its
// transactions, or any reference dangles.
func assertConsistent(t *testing.T, b *Book) {
	t.Helper()
	r, err := b.Audit()
	if err != nil {
		t.Fatalf("Audit() error = %v", err)
	}
	if err := r.Err(); err != nil {
		t.Errorf("Audit() found inconsistencies:\n%v", err)
	}
}

// snapshot returns the raw content of every collection of the book.
func snapshot(t *testing.T, b *Book) map[string]string {
	t.Helper()
	keys, err := b.store.Storage().Keys()
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	snap := make(map[string]string)
	for _, k := range keys {
		v, _, err := b.store.Storage().Get(k)
		if err != nil {
			t.Fatalf("Get(%q) error = %v", k, err)
		}
		snap[k] = string(v)
	}
	return snap
}
