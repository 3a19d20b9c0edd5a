package tracker

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/tracker/date"
	"github.com/etnz/tracker/store"
	"github.com/google/go-cmp/cmp"
)

func TestExportImport_RoundTrip(t *testing.T) {
	b, food, _ := reportBook(t)
	if _, err := b.CreateBudget(BudgetInput{CategoryID: food.ID, Amount: A(300), Start: date.New(2024, 1, 1), End: date.New(2024, 1, 31)}); err != nil {
		t.Fatal(err)
	}
	accounts, _ := b.Accounts()
	if _, err := b.AddShoppingItem(ShoppingItemInput{Name: "Oil", Amount: A(7.5), CategoryID: food.ID, AccountID: accounts[0].ID}); err != nil {
		t.Fatal(err)
	}
	if _, err := b.AddDebtLoan(DebtLoanInput{Type: Debt, Amount: A(12), Person: "Zoe"}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := b.Export(&buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	restored := Open(b.store, store.Session{User: "bob"})
	if err := restored.Import(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	for _, c := range []string{store.Accounts, store.Categories, store.Transactions, store.Budgets, store.ShoppingList, store.DebtsLoans} {
		snap := snapshot(t, b)
		want, got := snap["alice_"+c], snap["bob_"+c]
		if diff := cmp.Diff(decodeAny(t, want), decodeAny(t, got)); diff != "" {
			t.Errorf("%s differ after round trip (-want +got):\n%s", c, diff)
		}
	}

	// exporting the restored book gives the same document, but for the profile
	var again bytes.Buffer
	if err := restored.Export(&again); err != nil {
		t.Fatal(err)
	}
	first, second := decodeAny(t, buf.String()).(map[string]any), decodeAny(t, again.String()).(map[string]any)
	delete(first, store.Profile)
	delete(second, store.Profile)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second export differs (-want +got):\n%s", diff)
	}
}

func TestExport_Document(t *testing.T) {
	b, _, _ := reportBook(t)
	var buf bytes.Buffer
	if err := b.Export(&buf); err != nil {
		t.Fatal(err)
	}
	doc := decodeAny(t, buf.String())
	for _, key := range []string{"profile", "accounts", "categories", "transactions", "shopping_list", "budgets", "debts_loans"} {
		v, err := jsonpath.Get("$."+key, doc)
		if err != nil {
			t.Errorf("exported document has no %q: %v", key, err)
			continue
		}
		if _, ok := v.([]any); !ok {
			t.Errorf("exported %q is %T, want an array", key, v)
		}
	}
	testCases := []struct {
		path string
		want any
	}{
		{"$.profile[0].username", "alice"},
		{"$.transactions[0].amount", 3000.0},
		{"$.transactions[0].date", "2023-12-28"},
		{"$.transactions[0].includeInReports", true},
		{"$.transactions[6].transferType", "out"},
		{"$.transactions[7].transferType", "in"},
		{"$.accounts[0].icon", nil},
	}
	for _, tc := range testCases {
		got, err := jsonpath.Get(tc.path, doc)
		if err != nil {
			t.Errorf("jsonpath %s error = %v", tc.path, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s = %#v, want %#v", tc.path, got, tc.want)
		}
	}
	// links are only written on linked transactions
	if _, err := jsonpath.Get("$.transactions[0].transferId", doc); err == nil {
		t.Errorf("plain transaction exported a transferId")
	}
}

func TestImport_Rejected(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
	}{
		{"not json", `{"accounts": [`},
		{"not an object", `[1, 2]`},
		{"missing accounts", `{"categories": [], "transactions": []}`},
		{"missing categories", `{"accounts": [], "transactions": []}`},
		{"missing transactions", `{"accounts": [], "categories": []}`},
		{"accounts not an array", `{"accounts": {}, "categories": [], "transactions": []}`},
		{"null transactions", `{"accounts": [], "categories": [], "transactions": null}`},
		{"malformed amount", `{"accounts": [{"id": "a", "balance": "lots"}], "categories": [], "transactions": []}`},
		{"malformed date", `{"accounts": [], "categories": [], "transactions": [{"id": "t", "date": "yesterday"}]}`},
		{"malformed profile", `{"accounts": [], "categories": [], "transactions": [], "profile": 3}`},
		{"transfer typed transaction", `{"accounts": [], "categories": [], "transactions": [{"id": "t1", "type": "transfer", "amount": 5, "date": "2024-01-02"}]}`},
		{"negative transaction", `{"accounts": [], "categories": [], "transactions": [{"id": "t2", "type": "expense", "amount": -5, "date": "2024-01-02"}]}`},
		{"zero transaction", `{"accounts": [], "categories": [], "transactions": [{"id": "t3", "type": "income", "amount": 0, "date": "2024-01-02"}]}`},
		{"unknown transfer direction", `{"accounts": [], "categories": [], "transactions": [{"id": "t4", "type": "income", "amount": 5, "date": "2024-01-02", "transferId": "x", "transferType": "up"}]}`},
		{"unknown category type", `{"accounts": [], "categories": [{"id": "c1", "name": "Misc", "type": "other"}], "transactions": []}`},
		{"inverted budget", `{"accounts": [], "categories": [], "transactions": [], "budgets": [{"id": "b1", "amount": 10, "startDate": "2024-02-01", "endDate": "2024-01-01"}]}`},
		{"budget without amount", `{"accounts": [], "categories": [], "transactions": [], "budgets": [{"id": "b2", "amount": 0, "startDate": "2024-01-01", "endDate": "2024-01-31"}]}`},
		{"unknown debt type", `{"accounts": [], "categories": [], "transactions": [], "debts_loans": [{"id": "d1", "type": "gift", "amount": 10, "person": "Bob", "date": "2024-01-01"}]}`},
		{"negative shopping item", `{"accounts": [], "categories": [], "transactions": [], "shopping_list": [{"id": "s1", "name": "Shoes", "amount": -1}]}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := newBook(t)
			mustAccount(t, b, "Bank", 10)
			before := snapshot(t, b)
			err := b.Import(strings.NewReader(tc.doc))
			if !errors.Is(err, ErrImport) {
				t.Errorf("Import() error = %v, want ErrImport", err)
			}
			if diff := cmp.Diff(before, snapshot(t, b)); diff != "" {
				t.Errorf("rejected Import() changed the storage (-want +got):\n%s", diff)
			}
		})
	}
}

func TestImport_LenientRecords(t *testing.T) {
	doc := `{
  "profile": {"username": "alice", "email": "a@example.com", "joinedAt": "2024-01-01T08:00:00.000Z", "theme": "dark", "currency": "Euros", "picture": null},
  "accounts": [{"id": "lq1x2abcd", "name": "Cash", "balance": 42.5, "icon": "default-cash", "createdAt": "2024-01-01T08:00:00.000Z"}],
  "categories": [{"id": "c1", "name": "Food", "type": "expense", "icon": null, "createdAt": "2024-01-01T08:00:00.000Z"}],
  "transactions": [{"id": "t1", "type": "expense", "amount": 7.5, "categoryId": "c1", "accountId": "lq1x2abcd", "date": "2024-01-03", "description": "", "includeInReports": true, "createdAt": "2024-01-03T12:00:00.000Z"}]
}`
	b := newBook(t)
	mustAccount(t, b, "Old", 1)
	if _, err := b.AddDebtLoan(DebtLoanInput{Type: Debt, Amount: A(1), Person: "x"}); err != nil {
		t.Fatal(err)
	}
	if err := b.Import(strings.NewReader(doc)); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	accounts, _ := b.Accounts()
	if len(accounts) != 1 || accounts[0].Name != "Cash" || !accounts[0].Balance.Equal(A(42.5)) {
		t.Errorf("imported accounts = %+v", accounts)
	}
	txs, _ := b.Transactions()
	if len(txs) != 1 || txs[0].Date != date.New(2024, 1, 3) || !txs[0].Amount.Equal(A(7.5)) {
		t.Errorf("imported transactions = %+v", txs)
	}
	// absent collections are emptied
	debts, _ := b.DebtsLoans("")
	if len(debts) != 0 {
		t.Errorf("imported debts = %v, want none", debts)
	}
	p, err := b.Profile()
	if err != nil {
		t.Fatal(err)
	}
	if p.Email != "a@example.com" || p.Currency != Euros {
		t.Errorf("imported profile = %+v", p)
	}
	// the book is not consistent (no initial balance) and the audit says so
	r, _ := b.Audit()
	if len(r.Discrepancies) != 1 {
		t.Errorf("Audit() after import = %+v", r.Discrepancies)
	}
}

func decodeAny(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("invalid JSON %q: %v", s, err)
	}
	return v
}
