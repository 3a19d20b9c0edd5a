// Package tracker is the ledger engine of a personal money tracker.
//
// A user owns accounts, categories, transactions, budgets, debts and loans,
// and a shopping list. Every record lives in a per user collection of a
// [store.Store]. The engine keeps them mutually consistent:
//   - Account balances are a stored cache equal to the sum of the signed
//     effects of the account's transactions. Only [Book.ApplyDelta] changes a
//     balance, and direct balance edits emit a compensating transaction.
//   - Transfers are a pair of linked transactions sharing a transfer id.
//   - Categories and accounts in use cannot be deleted.
//   - Budgets of the same category never overlap.
//   - Shopping items are planned expenses, converted into a transaction once.
//
// Every operation validates its input and the current state before its first
// write, so a rejected operation leaves the collections untouched.
//
// The [Book.Audit] routine recomputes balances from transactions and reports
// any drift.
//
// This package serves as the foundational logic for the `mtk` command-line
// tool.
package tracker
