// Package models defines the domain models shared by the service, storage and
// export layers.
//
// # Models
//
//   - Expense: one payment event with a payer, an amount and the people it covers
//   - Balance: a person's signed net balance after all expenses
//   - Settlement: a single payment instruction from a debtor to a creditor
//   - Plan: a computed set of balances and settlements, optionally persisted
//
// People are identified by name strings; there are no user accounts.
//
// # Amounts
//
// Amounts are decimal.Decimal values. JSON output writes them as numbers with
// two fractional digits ("amount": 50.00) and input accepts numbers or numeric
// strings.
//
// # Design Principles
//
//  1. Expenses are never persisted; only computed plans are
//  2. Order matters: balances keep first-appearance order, settlements keep
//     emission order
//  3. Use ID strings instead of pointers for relationships
package models
