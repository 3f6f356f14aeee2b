// Package models defines the core domain models for fairshare.
//
// # Expenses
//
// An Expense is split among an ordered list of Participants under one of
// three SplitModes:
//   - equal: the total is divided evenly, leftover cents go to the first participants
//   - percentage: each SplitEntry carries a percentage, entries sum to 100
//   - custom: each SplitEntry carries an amount, entries sum to the total
//
// Contributions record who actually paid and are reconciled against the total.
//
// # Money
//
// Amounts are money.Cents (integer minor units). Percentages are decimals so
// that values like 33.33 compare exactly.
//
// # Relationships
//
// Models reference each other by ID strings, never by pointer. Participant IDs
// are user IDs when the participant has an account and free-form otherwise.
package models
