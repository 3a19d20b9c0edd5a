package renderer

import (
	"fmt"

	"github.com/etnz/tracker"
)

// Transaction renders a transaction on one line.
func Transaction(tx tracker.Transaction, n Names, cur tracker.Currency) string {
	switch {
	case tx.TransferType == tracker.Out:
		return fmt.Sprintf("%s Transferred %s from %s to %s", tx.Date, cur.Format(tx.Amount), n.Account(tx.AccountID), n.Account(tx.TransferAccountID))
	case tx.TransferType == tracker.In:
		return fmt.Sprintf("%s Received %s on %s from %s", tx.Date, cur.Format(tx.Amount), n.Account(tx.AccountID), n.Account(tx.TransferAccountID))
	case tx.Type == tracker.Income:
		return fmt.Sprintf("%s Earned %s on %s as %s: %s", tx.Date, cur.Format(tx.Amount), n.Account(tx.AccountID), n.Category(tx.CategoryID), tx.Description)
	default:
		return fmt.Sprintf("%s Spent %s from %s on %s: %s", tx.Date, cur.Format(tx.Amount), n.Account(tx.AccountID), n.Category(tx.CategoryID), tx.Description)
	}
}

// Transactions is the view of a transaction list.
type Transactions struct {
	Title    string
	Rows     []TransactionRow
	Income   string
	Expenses string
}

type TransactionRow struct {
	ID, Date, Description, Category, Account, Amount, Notes string
}

// RenderTransactions renders a table of transactions in the given order.
func RenderTransactions(title string, txs []tracker.Transaction, n Names, cur tracker.Currency) string {
	v := Transactions{Title: title}
	var income, expenses tracker.Amount
	for _, tx := range txs {
		if tx.Type == tracker.Income {
			income = income.Add(tx.Amount)
		} else {
			expenses = expenses.Add(tx.Amount)
		}
		v.Rows = append(v.Rows, TransactionRow{
			ID:          tx.ID,
			Date:        tx.Date.String(),
			Description: cell(tx.Description),
			Category:    cell(n.Category(tx.CategoryID)),
			Account:     cell(n.Account(tx.AccountID)),
			Amount:      signed(cur, tx.Effect()),
			Notes:       notes(tx),
		})
	}
	v.Income, v.Expenses = cur.Format(income), cur.Format(expenses)
	return renderTemplate("transactions", "transactions.md", nil, v)
}

func notes(tx tracker.Transaction) string {
	switch {
	case tx.IsTransfer():
		return "transfer"
	case tx.ConvertedFromShoppingItem:
		return "bought"
	case !tx.IncludeInReports:
		return "not reported"
	}
	return ""
}
