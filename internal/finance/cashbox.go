package finance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/republica/internal/models"
)

// PurchaseInput is the payload of RecordPurchase.
type PurchaseInput struct {
	Description string
	Amount      decimal.Decimal

	// Date defaults to today.
	Date time.Time
}

// RecordPurchase stores a purchase the caller made on the group's behalf.
// Until settled it counts as credit on the caller's dashboard.
func (s *Service) RecordPurchase(ctx context.Context, caller *models.Identity, in PurchaseInput) (*models.Purchase, error) {
	if err := requireMember(caller); err != nil {
		return nil, err
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, invalid("description is required")
	}
	if err := checkAmount("amount", in.Amount); err != nil {
		return nil, err
	}

	purchase := &models.Purchase{
		MemberID:    caller.MemberID,
		GroupID:     caller.GroupID,
		Description: description,
		Amount:      in.Amount,
		Date:        s.dateOrToday(in.Date),
	}
	if err := s.store.CreatePurchase(ctx, purchase); err != nil {
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}
	return purchase, nil
}

// CashInput is the payload of RecordCashTransaction.
type CashInput struct {
	Description string
	Amount      decimal.Decimal
	Direction   models.CashDirection

	// Date defaults to today.
	Date time.Time
}

// RecordCashTransaction appends a movement to the group's cash box.
func (s *Service) RecordCashTransaction(ctx context.Context, caller *models.Identity, in CashInput) (*models.CashTransaction, error) {
	if err := requireMember(caller); err != nil {
		return nil, err
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, invalid("description is required")
	}
	if err := checkAmount("amount", in.Amount); err != nil {
		return nil, err
	}
	if !in.Direction.Valid() {
		return nil, invalid("direction must be %q or %q, got %q", models.CashIn, models.CashOut, in.Direction)
	}

	txn := &models.CashTransaction{
		GroupID:     caller.GroupID,
		Description: description,
		Amount:      in.Amount,
		Direction:   in.Direction,
		Date:        s.dateOrToday(in.Date),
	}
	if err := s.store.CreateCashTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to record cash transaction: %w", err)
	}
	return txn, nil
}

// ListCashTransactions returns the group's cash-box movements, newest first.
func (s *Service) ListCashTransactions(ctx context.Context, caller *models.Identity) ([]*models.CashTransaction, error) {
	if err := requireMember(caller); err != nil {
		return nil, err
	}
	txns, err := s.store.ListCashTransactionsByGroup(ctx, caller.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cash transactions: %w", err)
	}
	return txns, nil
}

func (s *Service) dateOrToday(t time.Time) time.Time {
	if t.IsZero() {
		return day(s.now())
	}
	return day(t)
}
