package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is a member's personal spending claimed as credit against the group.
type Purchase struct {
	ID          string
	MemberID    string
	GroupID     string
	Description string
	Amount      decimal.Decimal
	Date        time.Time

	// IsSettled marks a purchase already folded into a billing cycle.
	// Unsettled purchases count toward the member's credit.
	IsSettled bool

	CreatedAt int64
}

// CashDirection is the direction of a cash-box movement.
type CashDirection string

const (
	CashIn  CashDirection = "in"
	CashOut CashDirection = "out"
)

// Valid reports whether d is a known direction.
func (d CashDirection) Valid() bool {
	return d == CashIn || d == CashOut
}

// CashTransaction is an append-only movement of a group's cash box.
type CashTransaction struct {
	ID          string
	GroupID     string
	Description string
	Amount      decimal.Decimal
	Direction   CashDirection
	Date        time.Time
	CreatedAt   int64
}

// PaymentReceipt records one allocation step of a payment.
// Receipts are created once and never mutated or deleted.
type PaymentReceipt struct {
	// ID is the unique identifier for the receipt (UUID format).
	ID string

	// ObligationID is the obligation this step paid down.
	ObligationID string

	// MemberID is the owner of the obligation.
	MemberID string

	// Amount is the value applied in this step.
	Amount decimal.Decimal

	// ConfirmedBy is the finance admin who recorded the payment.
	ConfirmedBy string

	// PaidAt is the Unix timestamp of the allocation.
	PaidAt int64
}
