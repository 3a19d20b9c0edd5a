package tracker

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/tracker/store"
)

// this file contains functions to handle the import/export format.
//
// The document is a single JSON object with one array per collection:
// profile, accounts, categories, transactions, shopping_list, budgets and
// debts_loans. Records keep their persisted shape.

// requiredKeys must be present in an imported document.
var requiredKeys = []string{store.Accounts, store.Categories, store.Transactions}

// Export writes every collection of the book to w as indented JSON.
func (b *Book) Export(w io.Writer) error {
	profile, err := b.Profile()
	if err != nil {
		return err
	}
	accounts, err := b.accounts()
	if err != nil {
		return err
	}
	categories, err := b.categories()
	if err != nil {
		return err
	}
	txs, err := b.transactions()
	if err != nil {
		return err
	}
	items, err := b.shoppingList()
	if err != nil {
		return err
	}
	budgets, err := b.budgets()
	if err != nil {
		return err
	}
	debts, err := b.debtsLoans()
	if err != nil {
		return err
	}

	var doc jsonObjectWriter
	doc.Append(store.Profile, []Profile{profile})
	doc.Append(store.Accounts, accounts)
	doc.Append(store.Categories, categories)
	doc.Append(store.Transactions, txs)
	doc.Append(store.ShoppingList, items)
	doc.Append(store.Budgets, budgets)
	doc.Append(store.DebtsLoans, debts)
	raw, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("cannot encode export: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return fmt.Errorf("cannot encode export: %w", err)
	}
	out.WriteByte('\n')
	_, err = out.WriteTo(w)
	return err
}

// document is the decoded import document.
type document struct {
	Profile      json.RawMessage `json:"profile"`
	Accounts     []Account       `json:"accounts"`
	Categories   []Category      `json:"categories"`
	Transactions []Transaction   `json:"transactions"`
	ShoppingList []ShoppingItem  `json:"shopping_list"`
	Budgets      []Budget        `json:"budgets"`
	DebtsLoans   []DebtLoan      `json:"debts_loans"`
}

// Import replaces the collections of the book with those of an exported
// document.
//
// The whole document is decoded before anything is written: a document
// missing accounts, categories or transactions, or holding a malformed
// record, is rejected with ErrImport and nothing changes. Other collections
// are optional and default to empty.
func (b *Book) Import(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("cannot read import: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrImport, err)
	}
	if _, ok := v.(map[string]any); !ok {
		return fmt.Errorf("%w: top level value is not an object", ErrImport)
	}
	for _, key := range requiredKeys {
		col, err := jsonpath.Get("$."+key, v)
		if err != nil {
			return fmt.Errorf("%w: missing %q", ErrImport, key)
		}
		if _, ok := col.([]any); !ok {
			return fmt.Errorf("%w: %q is not an array", ErrImport, key)
		}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrImport, err)
	}
	if err := doc.validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrImport, err)
	}
	profiles, err := decodeProfile(doc.Profile)
	if err != nil {
		return fmt.Errorf("%w: profile: %v", ErrImport, err)
	}

	// Each collection is replaced wholesale.
	for _, save := range []func() error{
		func() error { return store.Save(b.store, b.sess, store.Profile, profiles) },
		func() error { return b.saveAccounts(doc.Accounts) },
		func() error { return b.saveCategories(doc.Categories) },
		func() error { return b.saveTransactions(doc.Transactions) },
		func() error { return b.saveShoppingList(doc.ShoppingList) },
		func() error { return b.saveBudgets(doc.Budgets) },
		func() error { return b.saveDebtsLoans(doc.DebtsLoans) },
	} {
		if err := save(); err != nil {
			return err
		}
	}
	return nil
}

// validate checks every decoded record, references between records are left
// to Audit.
func (doc document) validate() error {
	return errors.Join(
		validateAll(doc.Categories),
		validateAll(doc.Transactions),
		validateAll(doc.ShoppingList),
		validateAll(doc.Budgets),
		validateAll(doc.DebtsLoans),
	)
}

func validateAll[T interface{ validate() error }](records []T) error {
	for _, r := range records {
		if err := r.validate(); err != nil {
			return err
		}
	}
	return nil
}

// decodeProfile accepts a profile as an object, an array or null.
func decodeProfile(raw json.RawMessage) ([]Profile, error) {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0 || string(raw) == "null":
		return []Profile{}, nil
	case raw[0] == '{':
		var p Profile
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return []Profile{p}, nil
	default:
		var ps []Profile
		if err := json.Unmarshal(raw, &ps); err != nil {
			return nil, err
		}
		return ps, nil
	}
}
