package tracker

import (
	"errors"
	"testing"

	"github.com/etnz/tracker/date"
	"github.com/google/go-cmp/cmp"
)

func TestCreateDeleteTransaction_RoundTrip(t *testing.T) {
	b := newBook(t)
	acc := mustAccount(t, b, "Bank", 100)
	food := mustCategory(t, b, "Food", Expense)
	salary := mustCategory(t, b, "Salary", Income)

	for _, in := range []TransactionInput{
		{Type: Expense, Amount: A(42.5), CategoryID: food.ID, AccountID: acc.ID},
		{Type: Income, Amount: A(1000), CategoryID: salary.ID, AccountID: acc.ID, IncludeInReports: true},
	} {
		tx := mustTx(t, b, in)
		assertBalance(t, b, acc.ID, 100+tx.Effect().InexactFloat64())
		if err := b.DeleteTransaction(tx.ID); err != nil {
			t.Fatalf("DeleteTransaction() error = %v", err)
		}
		assertBalance(t, b, acc.ID, 100)
		if _, ok := b.Transaction(tx.ID); ok {
			t.Errorf("DeleteTransaction() kept the transaction")
		}
	}
	assertConsistent(t, b)
}

func TestCreateTransaction_Defaults(t *testing.T) {
	b := newBook(t)
	acc := mustAccount(t, b, "Bank", 0)
	food := mustCategory(t, b, "Food", Expense)
	tx := mustTx(t, b, TransactionInput{Type: Expense, Amount: A(3), CategoryID: food.ID, AccountID: acc.ID, Description: "  bread "})
	if tx.Date != testDay {
		t.Errorf("CreateTransaction() date = %v, want today %v", tx.Date, testDay)
	}
	if tx.Description != "bread" {
		t.Errorf("CreateTransaction() description = %q, want trimmed", tx.Description)
	}
}

func TestCreateTransaction_Invalid(t *testing.T) {
	b := newBook(t)
	acc := mustAccount(t, b, "Bank", 100)
	food := mustCategory(t, b, "Food", Expense)
	salary := mustCategory(t, b, "Salary", Income)

	testCases := []struct {
		name string
		in   TransactionInput
	}{
		{"zero amount", TransactionInput{Type: Expense, Amount: A(0), CategoryID: food.ID, AccountID: acc.ID}},
		{"negative amount", TransactionInput{Type: Expense, Amount: A(-5), CategoryID: food.ID, AccountID: acc.ID}},
		{"unknown type", TransactionInput{Type: "gift", Amount: A(5), CategoryID: food.ID, AccountID: acc.ID}},
		{"unknown account", TransactionInput{Type: Expense, Amount: A(5), CategoryID: food.ID, AccountID: "ghost"}},
		{"unknown category", TransactionInput{Type: Expense, Amount: A(5), CategoryID: "ghost", AccountID: acc.ID}},
		{"category type mismatch", TransactionInput{Type: Expense, Amount: A(5), CategoryID: salary.ID, AccountID: acc.ID}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			before := snapshot(t, b)
			if _, err := b.CreateTransaction(tc.in); !errors.Is(err, ErrValidation) {
				t.Errorf("CreateTransaction() error = %v, want ErrValidation", err)
			}
			if diff := cmp.Diff(before, snapshot(t, b)); diff != "" {
				t.Errorf("rejected CreateTransaction() changed the storage (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEditTransaction_MovesAccount(t *testing.T) {
	b := newBook(t)
	accA := mustAccount(t, b, "A", 200)
	accB := mustAccount(t, b, "B", 200)
	food := mustCategory(t, b, "Food", Expense)
	salary := mustCategory(t, b, "Salary", Income)

	tx := mustTx(t, b, TransactionInput{Type: Expense, Amount: A(50), CategoryID: food.ID, AccountID: accA.ID})
	assertBalance(t, b, accA.ID, 150)

	edited, err := b.EditTransaction(tx.ID, TransactionInput{Type: Income, Amount: A(30), CategoryID: salary.ID, AccountID: accB.ID, Date: tx.Date})
	if err != nil {
		t.Fatalf("EditTransaction() error = %v", err)
	}
	// A gets its 50 back, B receives 30
	assertBalance(t, b, accA.ID, 200)
	assertBalance(t, b, accB.ID, 230)

	if edited.ID != tx.ID || !edited.CreatedAt.Equal(tx.CreatedAt) {
		t.Errorf("EditTransaction() changed identity: %+v", edited)
	}
	assertConsistent(t, b)
}

func TestEditTransaction_SameAccount(t *testing.T) {
	b := newBook(t)
	acc := mustAccount(t, b, "A", 100)
	food := mustCategory(t, b, "Food", Expense)
	tx := mustTx(t, b, TransactionInput{Type: Expense, Amount: A(10), CategoryID: food.ID, AccountID: acc.ID})

	if _, err := b.EditTransaction(tx.ID, TransactionInput{Type: Expense, Amount: A(25), CategoryID: food.ID, AccountID: acc.ID}); err != nil {
		t.Fatalf("EditTransaction() error = %v", err)
	}
	assertBalance(t, b, acc.ID, 75)

	before := snapshot(t, b)
	if _, err := b.EditTransaction(tx.ID, TransactionInput{Type: Expense, Amount: A(-1), CategoryID: food.ID, AccountID: acc.ID}); !errors.Is(err, ErrValidation) {
		t.Errorf("EditTransaction() with a negative amount error = %v, want ErrValidation", err)
	}
	if diff := cmp.Diff(before, snapshot(t, b)); diff != "" {
		t.Errorf("rejected EditTransaction() changed the storage (-want +got):\n%s", diff)
	}
	if _, err := b.EditTransaction("ghost", TransactionInput{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("EditTransaction(unknown) error = %v, want ErrNotFound", err)
	}
	assertConsistent(t, b)
}

func TestTransfer(t *testing.T) {
	b := newBook(t)
	from := mustAccount(t, b, "From", 100)
	to := mustAccount(t, b, "To", 5)

	out, in, err := b.Transfer(TransferInput{From: from.ID, To: to.ID, Amount: A(60), Description: "Savings"})
	if err != nil {
		t.Fatalf("Transfer() error = %v", err)
	}
	assertBalance(t, b, from.ID, 40)
	assertBalance(t, b, to.ID, 65)

	if out.TransferID == "" || out.TransferID != in.TransferID {
		t.Errorf("Transfer() legs do not share a transfer id: %q %q", out.TransferID, in.TransferID)
	}
	if out.Type != Expense || out.TransferType != Out || out.AccountID != from.ID || out.TransferAccountID != to.ID {
		t.Errorf("withdrawal = %+v", out)
	}
	if in.Type != Income || in.TransferType != In || in.AccountID != to.ID || in.TransferAccountID != from.ID {
		t.Errorf("deposit = %+v", in)
	}
	if out.IncludeInReports || in.IncludeInReports {
		t.Errorf("transfer legs are included in reports")
	}
	if out.Description != "Savings (Transfer Out)" || in.Description != "Savings (Transfer In)" {
		t.Errorf("descriptions = %q, %q", out.Description, in.Description)
	}
	cat, _ := b.Category(out.CategoryID)
	if cat.Name != TransferCategory || in.CategoryID != out.CategoryID {
		t.Errorf("transfer category = %+v", cat)
	}

	legs, _ := b.Transactions(func(tx Transaction) bool { return tx.TransferID == out.TransferID })
	if len(legs) != 2 {
		t.Errorf("transfer recorded %d legs, want 2", len(legs))
	}

	// a second transfer reuses the system category
	if _, _, err := b.Transfer(TransferInput{From: to.ID, To: from.ID, Amount: A(65)}); err != nil {
		t.Fatalf("Transfer() of the whole balance error = %v", err)
	}
	transfers, _ := b.Categories()
	if n := countFunc(transfers, func(c Category) bool { return c.Name == TransferCategory }); n != 1 {
		t.Errorf("found %d transfer categories, want 1", n)
	}
	assertConsistent(t, b)
}

func TestTransfer_Rejected(t *testing.T) {
	b := newBook(t)
	from := mustAccount(t, b, "From", 100)
	to := mustAccount(t, b, "To", 0)

	testCases := []struct {
		name string
		in   TransferInput
		want error
	}{
		{"same account", TransferInput{From: from.ID, To: from.ID, Amount: A(10)}, ErrSameAccount},
		{"insufficient funds", TransferInput{From: from.ID, To: to.ID, Amount: A(100.01)}, ErrInsufficientFunds},
		{"zero amount", TransferInput{From: from.ID, To: to.ID, Amount: A(0)}, ErrValidation},
		{"unknown destination", TransferInput{From: from.ID, To: "ghost", Amount: A(1)}, ErrValidation},
		{"unknown source", TransferInput{From: "ghost", To: to.ID, Amount: A(1)}, ErrValidation},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			before := snapshot(t, b)
			_, _, err := b.Transfer(tc.in)
			if !errors.Is(err, tc.want) {
				t.Errorf("Transfer() error = %v, want %v", err, tc.want)
			}
			if diff := cmp.Diff(before, snapshot(t, b)); diff != "" {
				t.Errorf("rejected Transfer() changed the storage (-want +got):\n%s", diff)
			}
		})
	}
	if !errors.Is(ErrSameAccount, ErrRule) || !errors.Is(ErrInsufficientFunds, ErrRule) {
		t.Errorf("transfer errors are not rule violations")
	}
}

func TestTransfer_Legs(t *testing.T) {
	b := newBook(t)
	from := mustAccount(t, b, "From", 100)
	to := mustAccount(t, b, "To", 0)
	out, in, err := b.Transfer(TransferInput{From: from.ID, To: to.ID, Amount: A(30)})
	if err != nil {
		t.Fatal(err)
	}
	if out.Description != "Transfer (Transfer Out)" {
		t.Errorf("default description = %q", out.Description)
	}

	if _, err := b.EditTransaction(in.ID, TransactionInput{Type: Income, Amount: A(1), CategoryID: in.CategoryID, AccountID: to.ID}); !errors.Is(err, ErrRule) {
		t.Errorf("EditTransaction(transfer leg) error = %v, want ErrRule", err)
	}

	if err := b.DeleteTransaction(in.ID); err != nil {
		t.Fatalf("DeleteTransaction(leg) error = %v", err)
	}
	if _, ok := b.Transaction(out.ID); ok {
		t.Errorf("deleting a leg kept the other one")
	}
	assertBalance(t, b, from.ID, 100)
	assertBalance(t, b, to.ID, 0)
	assertConsistent(t, b)
}

// TestBalanceInvariant runs a mixed sequence of operations and checks every
// balance equals the sum of its transactions after each step.
func TestBalanceInvariant(t *testing.T) {
	b := newBook(t)
	cash := mustAccount(t, b, "Cash", 50)
	bank := mustAccount(t, b, "Bank", 1200)
	card := mustAccount(t, b, "Card", -80)
	food := mustCategory(t, b, "Food", Expense)
	salary := mustCategory(t, b, "Salary", Income)

	var ids []string
	steps := []struct {
		name string
		do   func() error
	}{
		{"salary", func() error {
			tx, err := b.CreateTransaction(TransactionInput{Type: Income, Amount: A(2500), CategoryID: salary.ID, AccountID: bank.ID, IncludeInReports: true})
			ids = append(ids, tx.ID)
			return err
		}},
		{"groceries", func() error {
			tx, err := b.CreateTransaction(TransactionInput{Type: Expense, Amount: A(64.32), CategoryID: food.ID, AccountID: cash.ID})
			ids = append(ids, tx.ID)
			return err
		}},
		{"transfer", func() error {
			_, _, err := b.Transfer(TransferInput{From: bank.ID, To: card.ID, Amount: A(80)})
			return err
		}},
		{"edit groceries to card", func() error {
			_, err := b.EditTransaction(ids[1], TransactionInput{Type: Expense, Amount: A(70), CategoryID: food.ID, AccountID: card.ID})
			return err
		}},
		{"adjust cash", func() error {
			_, err := b.EditAccount(cash.ID, AccountInput{Name: "Cash", Balance: A(12.34)})
			return err
		}},
		{"plan and buy", func() error {
			it, err := b.AddShoppingItem(ShoppingItemInput{Name: "Shoes", Amount: A(90), CategoryID: food.ID, AccountID: bank.ID})
			if err != nil {
				return err
			}
			_, err = b.ConvertShoppingItem(it.ID, ConvertInput{Amount: ptr(A(84.99)), Date: date.New(2024, 1, 18)})
			return err
		}},
		{"delete salary", func() error { return b.DeleteTransaction(ids[0]) }},
	}
	for _, step := range steps {
		if err := step.do(); err != nil {
			t.Fatalf("%s: error = %v", step.name, err)
		}
		r, err := b.Audit()
		if err != nil {
			t.Fatal(err)
		}
		if len(r.Discrepancies) > 0 {
			t.Fatalf("%s: balances drifted: %v", step.name, r.Err())
		}
	}
	assertBalance(t, b, cash.ID, 12.34)
	assertBalance(t, b, bank.ID, 1035.01)
	assertBalance(t, b, card.ID, -70)
	assertConsistent(t, b)
}

func TestTransactions_Filters(t *testing.T) {
	b := newBook(t)
	acc := mustAccount(t, b, "Bank", 0)
	other := mustAccount(t, b, "Other", 0)
	food := mustCategory(t, b, "Food", Expense)
	salary := mustCategory(t, b, "Salary", Income)
	mustTx(t, b, TransactionInput{Type: Income, Amount: A(1000), CategoryID: salary.ID, AccountID: acc.ID, Date: date.New(2024, 1, 1), Description: "January pay", IncludeInReports: true})
	mustTx(t, b, TransactionInput{Type: Expense, Amount: A(12), CategoryID: food.ID, AccountID: acc.ID, Date: date.New(2024, 1, 5), Description: "Pizza"})
	mustTx(t, b, TransactionInput{Type: Expense, Amount: A(40), CategoryID: food.ID, AccountID: other.ID, Date: date.New(2024, 2, 5), Description: "pizza party", IncludeInReports: true})

	testCases := []struct {
		name    string
		filters []Filter
		want    []string
	}{
		{"all", nil, []string{"January pay", "Pizza", "pizza party"}},
		{"account", []Filter{ByAccount(acc.ID)}, []string{"January pay", "Pizza"}},
		{"category", []Filter{ByCategory(food.ID)}, []string{"Pizza", "pizza party"}},
		{"type", []Filter{ByType(Income)}, []string{"January pay"}},
		{"range", []Filter{During(date.Month(date.New(2024, 2, 1)))}, []string{"pizza party"}},
		{"reports", []Filter{InReports(false)}, []string{"Pizza"}},
		{"amount", []Filter{AmountAtLeast(A(12)), AmountAtMost(A(40))}, []string{"Pizza", "pizza party"}},
		{"search", []Filter{Matching("PIZZA")}, []string{"Pizza", "pizza party"}},
		{"combined", []Filter{Matching("pizza"), ByAccount(other.ID)}, []string{"pizza party"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			txs, err := b.Transactions(tc.filters...)
			if err != nil {
				t.Fatal(err)
			}
			var got []string
			for _, tx := range txs {
				got = append(got, tx.Description)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Transactions() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSortTransactions(t *testing.T) {
	txs := []Transaction{
		{Description: "b", Date: date.New(2024, 1, 2), Amount: A(5)},
		{Description: "a", Date: date.New(2024, 1, 3), Amount: A(1)},
		{Description: "c", Date: date.New(2024, 1, 1), Amount: A(9)},
	}
	testCases := []struct {
		order Order
		want  string
	}{
		{DateDesc, "abc"},
		{DateAsc, "cba"},
		{AmountDesc, "cba"},
		{AmountAsc, "abc"},
		{NameAsc, "abc"},
	}
	for _, tc := range testCases {
		t.Run(tc.order.String(), func(t *testing.T) {
			SortTransactions(txs, tc.order)
			got := ""
			for _, tx := range txs {
				got += tx.Description
			}
			if got != tc.want {
				t.Errorf("SortTransactions(%v) = %q, want %q", tc.order, got, tc.want)
			}
		})
	}
}
