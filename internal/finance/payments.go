package finance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/mmynk/republica/internal/calculator"
	"github.com/mmynk/republica/internal/models"
	"github.com/mmynk/republica/internal/storage"
)

// PaymentInput is the payload of ApplyPayment. Exactly one of ObligationID
// and MemberID must be set.
type PaymentInput struct {
	// ObligationID pays down one obligation.
	ObligationID string

	// MemberID spreads the amount over the member's open obligations, oldest first.
	MemberID string

	Amount decimal.Decimal

	// DepositRemainder records any amount no debt absorbed as cash in.
	DepositRemainder bool
}

// AppliedPayment is the effect of one allocation step.
type AppliedPayment struct {
	ObligationID       string
	MemberID           string
	ExpenseDescription string
	Applied            decimal.Decimal
	PaidAmount         decimal.Decimal
	Remaining          decimal.Decimal
	IsPaid             bool
}

// PaymentResult reports how a payment was allocated.
type PaymentResult struct {
	Applied  []AppliedPayment
	Receipts []*models.PaymentReceipt

	// Leftover is the part of the amount no obligation absorbed.
	Leftover decimal.Decimal

	// Deposit is set when the leftover was recorded in the cash box.
	Deposit *models.CashTransaction
}

// ApplyPayment allocates a payment confirmed by the caller.
//
// Candidates are read, updated and receipted inside one write transaction.
// A payment that loses a race with another one is retried from a fresh read.
func (s *Service) ApplyPayment(ctx context.Context, caller *models.Identity, in PaymentInput) (*PaymentResult, error) {
	if err := requireFinanceAdmin(caller); err != nil {
		return nil, err
	}

	targeted, distributed := in.ObligationID != "", in.MemberID != ""
	if targeted == distributed {
		return nil, ErrAmbiguousTarget
	}
	if err := checkAmount("amount", in.Amount); err != nil {
		return nil, err
	}

	target := storage.PaymentTarget{ObligationID: in.ObligationID}
	if distributed {
		if _, err := s.groupMember(ctx, caller.GroupID, in.MemberID); err != nil {
			return nil, err
		}
		target = storage.PaymentTarget{MemberID: in.MemberID}
	}

	var lastErr error
	for attempt := 1; attempt <= s.paymentTries; attempt++ {
		result, err := s.applyPayment(ctx, caller, target, in)
		if err == nil {
			slog.Info("Payment applied",
				"group_id", caller.GroupID,
				"confirmed_by", caller.MemberID,
				"amount", in.Amount.StringFixed(2),
				"steps", len(result.Applied),
				"leftover", result.Leftover.StringFixed(2),
			)
			return result, nil
		}
		if !errors.Is(err, storage.ErrConflict) {
			return nil, translate(err)
		}

		lastErr = err
		slog.Warn("Payment conflicted, retrying", "attempt", attempt, "error", err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return nil, translate(lastErr)
}

func (s *Service) applyPayment(ctx context.Context, caller *models.Identity, target storage.PaymentTarget, in PaymentInput) (*PaymentResult, error) {
	var result *PaymentResult

	err := s.store.ApplyPayment(ctx, target, func(candidates []*models.Obligation) (*storage.PaymentRecord, error) {
		if target.ObligationID != "" {
			o := candidates[0]
			if o.GroupID != caller.GroupID {
				return nil, fmt.Errorf("%w: obligation %s", ErrNotFound, o.ID)
			}
			if o.IsPaid {
				return nil, fmt.Errorf("%w: obligation %s", ErrAlreadySettled, o.ID)
			}
		} else if len(candidates) == 0 {
			return nil, fmt.Errorf("%w: member %s", ErrNoPendingDebt, target.MemberID)
		}

		steps, leftover := calculator.Allocate(in.Amount, candidates)

		now := s.now()
		record := &storage.PaymentRecord{}
		result = &PaymentResult{Leftover: leftover}

		for _, step := range steps {
			o := step.Obligation
			record.Updated = append(record.Updated, o)

			receipt := &models.PaymentReceipt{
				ObligationID: o.ID,
				MemberID:     o.MemberID,
				Amount:       step.Applied,
				ConfirmedBy:  caller.MemberID,
				PaidAt:       now.Unix(),
			}
			record.Receipts = append(record.Receipts, receipt)

			result.Applied = append(result.Applied, AppliedPayment{
				ObligationID:       o.ID,
				MemberID:           o.MemberID,
				ExpenseDescription: o.ExpenseDescription,
				Applied:            step.Applied,
				PaidAmount:         o.PaidAmount,
				Remaining:          o.Remaining(),
				IsPaid:             o.IsPaid,
			})
		}
		result.Receipts = record.Receipts

		if in.DepositRemainder && leftover.IsPositive() {
			record.Deposit = &models.CashTransaction{
				GroupID:     caller.GroupID,
				Description: remainderDescription,
				Amount:      leftover,
				Direction:   models.CashIn,
				Date:        day(now),
			}
			result.Deposit = record.Deposit
		}

		return record, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListPayments returns payment receipts, newest first. Finance admins see the
// whole group; residents see their own.
func (s *Service) ListPayments(ctx context.Context, caller *models.Identity) ([]*models.PaymentReceipt, error) {
	if err := requireMember(caller); err != nil {
		return nil, err
	}

	var receipts []*models.PaymentReceipt
	var err error
	if caller.Role.CanManageFinances() {
		receipts, err = s.store.ListReceiptsByGroup(ctx, caller.GroupID)
	} else {
		receipts, err = s.store.ListReceiptsByMember(ctx, caller.MemberID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return receipts, nil
}
