// Package models defines the core domain models for tripsplit.
//
// Persisted models:
//   - User: a registered account (email + password login)
//   - Trip: a group expense-sharing context with members and a share code
//   - Expense: a single cost paid by one member and split among members
//
// Relationships are expressed with ID strings rather than pointers to avoid
// circular references. All timestamps are Unix seconds.
//
// BalanceReport is transient: it is computed on demand by the calculator
// package and never stored.
package models
