package tracker

import (
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/tracker/date"
)

// TransactionInput holds the editable fields of a transaction.
type TransactionInput struct {
	Type             Kind
	Amount           Amount
	CategoryID       string
	AccountID        string
	Date             date.Date // today if zero
	Description      string
	IncludeInReports bool
}

// checkTransaction validates in against the current accounts and categories.
func (b *Book) checkTransaction(in TransactionInput) (TransactionInput, error) {
	in.Description = strings.TrimSpace(in.Description)
	if !in.Type.Valid() {
		return in, invalid("unknown transaction type %q", in.Type)
	}
	if !in.Amount.IsPositive() {
		return in, invalid("amount must be positive, got %v", in.Amount)
	}
	if _, ok := b.Account(in.AccountID); !ok {
		return in, invalid("unknown account %q", in.AccountID)
	}
	cat, ok := b.Category(in.CategoryID)
	if !ok {
		return in, invalid("unknown category %q", in.CategoryID)
	}
	if cat.Type != in.Type {
		return in, invalid("category %q is an %s category, not %s", cat.Name, cat.Type, in.Type)
	}
	if in.Date.IsZero() {
		in.Date = b.today()
	}
	return in, nil
}

func (b *Book) appendTransactions(txs ...Transaction) error {
	all, err := b.transactions()
	if err != nil {
		return err
	}
	return b.saveTransactions(append(all, txs...))
}

// CreateTransaction records a transaction and applies its effect to its account.
func (b *Book) CreateTransaction(in TransactionInput) (Transaction, error) {
	in, err := b.checkTransaction(in)
	if err != nil {
		return Transaction{}, err
	}
	tx := Transaction{
		ID:               NewID(),
		Type:             in.Type,
		Amount:           in.Amount,
		CategoryID:       in.CategoryID,
		AccountID:        in.AccountID,
		Date:             in.Date,
		Description:      in.Description,
		IncludeInReports: in.IncludeInReports,
		CreatedAt:        b.now(),
	}
	if err := b.appendTransactions(tx); err != nil {
		return Transaction{}, err
	}
	if err := b.ApplyDelta(tx.AccountID, tx.Effect()); err != nil {
		return tx, err
	}
	return tx, nil
}

// EditTransaction replaces the fields of a transaction.
//
// The old effect is reversed on the old account, then the new effect is
// applied to the new account. The id, creation time and links are kept.
// Transfer legs cannot be edited: delete the transfer and redo it.
func (b *Book) EditTransaction(id string, in TransactionInput) (Transaction, error) {
	txs, err := b.transactions()
	if err != nil {
		return Transaction{}, err
	}
	i := indexByID(txs, id, func(t Transaction) string { return t.ID })
	if i < 0 {
		return Transaction{}, notFound("transaction", id)
	}
	old := txs[i]
	if old.IsTransfer() {
		return Transaction{}, fmt.Errorf("%w: transaction %q is part of a transfer, delete the transfer instead", ErrRule, id)
	}
	if in, err = b.checkTransaction(in); err != nil {
		return Transaction{}, err
	}
	tx := old
	tx.Type = in.Type
	tx.Amount = in.Amount
	tx.CategoryID = in.CategoryID
	tx.AccountID = in.AccountID
	tx.Date = in.Date
	tx.Description = in.Description
	tx.IncludeInReports = in.IncludeInReports
	txs[i] = tx
	if err := b.saveTransactions(txs); err != nil {
		return Transaction{}, err
	}
	if err := b.ApplyDelta(old.AccountID, old.Effect().Neg()); err != nil {
		return tx, err
	}
	if err := b.ApplyDelta(tx.AccountID, tx.Effect()); err != nil {
		return tx, err
	}
	return tx, nil
}

// DeleteTransaction removes a transaction and reverses its effect. Deleting
// a transfer leg removes both legs.
func (b *Book) DeleteTransaction(id string) error {
	txs, err := b.transactions()
	if err != nil {
		return err
	}
	i := indexByID(txs, id, func(t Transaction) string { return t.ID })
	if i < 0 {
		return notFound("transaction", id)
	}
	target := txs[i]
	var removed []Transaction
	txs = slices.DeleteFunc(txs, func(t Transaction) bool {
		del := t.ID == id || (target.IsTransfer() && t.TransferID == target.TransferID)
		if del {
			removed = append(removed, t)
		}
		return del
	})
	if err := b.saveTransactions(txs); err != nil {
		return err
	}
	for _, t := range removed {
		if err := b.ApplyDelta(t.AccountID, t.Effect().Neg()); err != nil {
			return err
		}
	}
	return nil
}

// Transaction returns the first transaction with this id.
func (b *Book) Transaction(id string) (Transaction, bool) {
	txs, _ := b.transactions()
	return findByID(txs, id, func(t Transaction) string { return t.ID })
}

// TransferInput describes a transfer between two accounts.
type TransferInput struct {
	From, To    string
	Amount      Amount
	Description string    // "Transfer" if empty
	Date        date.Date // today if zero
}

// Transfer moves money between two accounts.
//
// It records a withdrawal on the source account and a deposit on the
// destination account, linked by a shared transfer id and excluded from
// reports. The source balance must cover the amount.
func (b *Book) Transfer(in TransferInput) (out, dep Transaction, err error) {
	if !in.Amount.IsPositive() {
		return out, dep, invalid("amount must be positive, got %v", in.Amount)
	}
	if in.From == in.To {
		return out, dep, ErrSameAccount
	}
	from, ok := b.Account(in.From)
	if !ok {
		return out, dep, invalid("unknown account %q", in.From)
	}
	to, ok := b.Account(in.To)
	if !ok {
		return out, dep, invalid("unknown account %q", in.To)
	}
	if from.Balance.LessThan(in.Amount) {
		return out, dep, fmt.Errorf("%w: %q has %v, %v needed", ErrInsufficientFunds, from.Name, from.Balance, in.Amount)
	}
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		desc = "Transfer"
	}
	day := in.Date
	if day.IsZero() {
		day = b.today()
	}

	cat, err := b.CreateOrFindSystemCategory(TransferCategory, Expense)
	if err != nil {
		return out, dep, err
	}
	now := b.now()
	transferID := NewID()
	out = Transaction{
		ID:                NewID(),
		Type:              Expense,
		Amount:            in.Amount,
		CategoryID:        cat.ID,
		AccountID:         from.ID,
		Date:              day,
		Description:       desc + " (Transfer Out)",
		CreatedAt:         now,
		TransferID:        transferID,
		TransferType:      Out,
		TransferAccountID: to.ID,
	}
	dep = Transaction{
		ID:                NewID(),
		Type:              Income,
		Amount:            in.Amount,
		CategoryID:        cat.ID,
		AccountID:         to.ID,
		Date:              day,
		Description:       desc + " (Transfer In)",
		CreatedAt:         now,
		TransferID:        transferID,
		TransferType:      In,
		TransferAccountID: from.ID,
	}
	if err := b.appendTransactions(out, dep); err != nil {
		return Transaction{}, Transaction{}, err
	}
	if err := b.ApplyDelta(from.ID, in.Amount.Neg()); err != nil {
		return out, dep, err
	}
	if err := b.ApplyDelta(to.ID, in.Amount); err != nil {
		return out, dep, err
	}
	return out, dep, nil
}
