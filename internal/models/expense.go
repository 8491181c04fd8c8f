package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SplitPolicy decides how an expense is divided among members.
type SplitPolicy string

const (
	// SplitEqual divides the total among every member of the group.
	SplitEqual SplitPolicy = "equal"
	// SplitManual uses caller-declared per-member values.
	SplitManual SplitPolicy = "manual"
)

// Valid reports whether p is a known split policy.
func (p SplitPolicy) Valid() bool {
	return p == SplitEqual || p == SplitManual
}

// ExpenseTemplate is a recurring expense blueprint. It carries no payment state.
type ExpenseTemplate struct {
	ID          string
	GroupID     string
	Description string
	BaseValue   decimal.Decimal
	Category    string
	CreatedAt   int64
}

// Expense is a billable item of a group.
// Its obligations are generated together with it and never regenerated.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the republic that owns the expense.
	GroupID string

	Description string

	// Amount is the total value of the expense.
	Amount decimal.Decimal

	// DueDate is the calendar day the expense is due.
	DueDate time.Time

	Category string

	SplitPolicy SplitPolicy

	// TemplateID references the template a billing run expanded. Empty for one-off expenses.
	TemplateID string

	// BillingPeriod is the YYYY-MM period of the billing run. Empty for one-off expenses.
	BillingPeriod string

	CreatedAt int64
}

// Obligation is one member's share of one expense.
//
// PaidAmount never decreases and never exceeds Value. IsPaid becomes true once
// Value-PaidAmount drops below the settlement tolerance and never reverts.
type Obligation struct {
	ID        string
	MemberID  string
	ExpenseID string

	// GroupID is the group of the owning expense, filled by queries.
	GroupID string

	Value      decimal.Decimal
	PaidAmount decimal.Decimal
	IsPaid     bool

	// Seq is the storage-assigned creation order. Lower is older.
	Seq int64

	// Version increments on every update and guards concurrent allocations.
	Version int64

	// ExpenseDescription is filled by listing queries for display.
	ExpenseDescription string

	CreatedAt int64
}

// Remaining returns the unpaid part of the obligation.
func (o *Obligation) Remaining() decimal.Decimal {
	return o.Value.Sub(o.PaidAmount)
}

// Share is a (member, value) pair of a manual split.
type Share struct {
	MemberID string
	Value    decimal.Decimal
}
