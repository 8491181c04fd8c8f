// Package models defines the ledger entities of a republic (shared residence).
//
// # Entities
//
//   - Group: a republic; scopes every financial record
//   - Member: a resident, carrying a role and a fixed rent figure
//   - ExpenseTemplate: a monthly blueprint expanded by billing runs
//   - Expense: a billable item split among members
//   - Obligation: one member's share of one expense, the unit payments act on
//   - Purchase: a member's personal spend claimed as credit against the group
//   - CashTransaction: a movement of the group's cash box
//   - PaymentReceipt: the immutable record of one allocation step
//
// # Conventions
//
// Relationships are expressed with ID strings (UUID format), never pointers.
// Monetary values are decimal.Decimal in a single implicit currency.
// CreatedAt fields are Unix timestamps; calendar dates are time.Time values
// truncated to the day.
package models
