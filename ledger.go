package tracker

import (
	"fmt"
	"log"
	"slices"
	"strings"
)

// System category names, created lazily by the engine.
const (
	InitialBalance    = "Initial Balance"
	BalanceAdjustment = "Balance Adjustment"
	TransferCategory  = "Transfer"
)

// AccountInput holds the editable fields of an account.
type AccountInput struct {
	Name    string
	Balance Amount
	Icon    Image
}

func (in AccountInput) validate() (AccountInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, invalid("account name is required")
	}
	return in, nil
}

// Accounts returns all accounts in creation order.
func (b *Book) Accounts() ([]Account, error) { return b.accounts() }

// TotalBalance returns the sum of all account balances.
func (b *Book) TotalBalance() (Amount, error) {
	accounts, err := b.accounts()
	if err != nil {
		return Amount{}, err
	}
	var total Amount
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	return total, nil
}

// ApplyDelta adds delta to the balance of an account.
//
// It is the only way balances change after creation. An unknown account is
// a logged no-op: callers check the account exists beforehand.
func (b *Book) ApplyDelta(accountID string, delta Amount) error {
	accounts, err := b.accounts()
	if err != nil {
		return err
	}
	i := indexByID(accounts, accountID, func(a Account) string { return a.ID })
	if i < 0 {
		log.Printf("ignoring balance delta %v on unknown account %q", delta, accountID)
		return nil
	}
	accounts[i].Balance = accounts[i].Balance.Add(delta)
	return b.saveAccounts(accounts)
}

// CreateAccount creates an account with an initial balance.
//
// A non zero balance is recorded as an "Initial Balance" transaction, income
// for a positive balance and expense for a negative one, so that the balance
// remains the sum of the account's transactions.
func (b *Book) CreateAccount(in AccountInput) (Account, error) {
	in, err := in.validate()
	if err != nil {
		return Account{}, err
	}
	accounts, err := b.accounts()
	if err != nil {
		return Account{}, err
	}
	acc := Account{
		ID:        NewID(),
		Name:      in.Name,
		Balance:   in.Balance,
		Icon:      in.Icon,
		CreatedAt: b.now(),
	}
	var tx Transaction
	if !in.Balance.IsZero() {
		if tx, err = b.balanceTransaction(acc.ID, InitialBalance, in.Balance, true); err != nil {
			return Account{}, err
		}
	}
	if err := b.saveAccounts(append(accounts, acc)); err != nil {
		return Account{}, err
	}
	if tx.ID != "" {
		// the balance already accounts for it: no delta to apply.
		if err := b.appendTransactions(tx); err != nil {
			return acc, err
		}
	}
	return acc, nil
}

// EditAccount updates an account. A balance change is recorded as a
// "Balance Adjustment" transaction excluded from reports.
func (b *Book) EditAccount(id string, in AccountInput) (Account, error) {
	in, err := in.validate()
	if err != nil {
		return Account{}, err
	}
	accounts, err := b.accounts()
	if err != nil {
		return Account{}, err
	}
	i := indexByID(accounts, id, func(a Account) string { return a.ID })
	if i < 0 {
		return Account{}, notFound("account", id)
	}
	delta := in.Balance.Sub(accounts[i].Balance)
	var tx Transaction
	if !delta.IsZero() {
		if tx, err = b.balanceTransaction(id, BalanceAdjustment, delta, false); err != nil {
			return Account{}, err
		}
	}
	accounts[i].Name = in.Name
	accounts[i].Icon = in.Icon
	if err := b.saveAccounts(accounts); err != nil {
		return Account{}, err
	}
	if tx.ID != "" {
		if err := b.appendTransactions(tx); err != nil {
			return Account{}, err
		}
		if err := b.ApplyDelta(id, delta); err != nil {
			return Account{}, err
		}
	}
	acc, _ := b.Account(id)
	return acc, nil
}

// DeleteAccount deletes an account no transaction nor shopping item refers to.
func (b *Book) DeleteAccount(id string) error {
	accounts, err := b.accounts()
	if err != nil {
		return err
	}
	i := indexByID(accounts, id, func(a Account) string { return a.ID })
	if i < 0 {
		return notFound("account", id)
	}
	txs, err := b.transactions()
	if err != nil {
		return err
	}
	if n := countFunc(txs, func(t Transaction) bool { return t.AccountID == id || t.TransferAccountID == id }); n > 0 {
		return fmt.Errorf("account %q is used by %d transaction(s): %w", accounts[i].Name, n, ErrReferenced)
	}
	items, err := b.shoppingList()
	if err != nil {
		return err
	}
	if slices.ContainsFunc(items, func(it ShoppingItem) bool { return it.AccountID == id }) {
		return fmt.Errorf("account %q is used by the shopping list: %w", accounts[i].Name, ErrReferenced)
	}
	return b.saveAccounts(slices.Delete(accounts, i, i+1))
}

// balanceTransaction builds the synthetic transaction recording a signed
// balance change, in the system category name of the matching kind.
func (b *Book) balanceTransaction(accountID, name string, delta Amount, inReports bool) (Transaction, error) {
	kind := Income
	if delta.IsNegative() {
		kind = Expense
	}
	cat, err := b.CreateOrFindSystemCategory(name, kind)
	if err != nil {
		return Transaction{}, err
	}
	return Transaction{
		ID:               NewID(),
		Type:             kind,
		Amount:           delta.Abs(),
		CategoryID:       cat.ID,
		AccountID:        accountID,
		Date:             b.today(),
		Description:      name,
		IncludeInReports: inReports,
		CreatedAt:        b.now(),
	}, nil
}
