// Package models defines the core domain models for Global Pocket.
//
// All finance records (Account, Debt, Transaction, MonthlyExpense, CryptoHolding)
// belong to a single owner: the authenticated user. Ownership is enforced by the
// storage layer, which scopes every read and write by owner ID.
//
// # Inherited quirks
//
// Two behaviors are deliberate and must not be "fixed":
//
//  1. Transaction.AccountName is a point-in-time copy of the account's name taken
//     when the transaction is recorded. Renaming the account later does not update
//     historical transactions.
//  2. Account balances are allowed to go negative. A withdrawal larger than the
//     current balance is accepted without a floor check.
//
// # Design Principles
//
//  1. Money amounts use decimal.Decimal, never float64
//  2. Avoid circular references: use ID strings instead of pointers for relationships
//  3. Relations between records are weak: deleting a transaction never touches its
//     account, and a debt's AccountID is an association, not ownership
package models
