package finance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/republica/internal/calculator"
	"github.com/mmynk/republica/internal/models"
)

// ExpenseInput is the payload of CreateExpense.
type ExpenseInput struct {
	Description string
	Amount      decimal.Decimal
	DueDate     time.Time
	Category    string
	SplitPolicy models.SplitPolicy

	// Shares is required for SplitManual and ignored otherwise.
	Shares []models.Share
}

// ExpenseResult is an expense together with the obligations it generated.
type ExpenseResult struct {
	Expense     *models.Expense
	Obligations []*models.Obligation
}

// CreateExpense splits a new expense among the caller's group.
//
// With SplitEqual every current member gets one obligation; with SplitManual
// the declared shares must belong to the group and add up to the amount.
// The expense and its obligations are committed together.
func (s *Service) CreateExpense(ctx context.Context, caller *models.Identity, in ExpenseInput) (*ExpenseResult, error) {
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
	if in.DueDate.IsZero() {
		return nil, invalid("due date is required")
	}
	if !in.SplitPolicy.Valid() {
		return nil, invalid("unknown split policy %q", in.SplitPolicy)
	}

	members, err := s.store.ListMembersByGroup(ctx, caller.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	var shares []models.Share
	switch in.SplitPolicy {
	case models.SplitEqual:
		if len(members) == 0 {
			return nil, ErrEmptyGroup
		}
		shares, err = calculator.SplitEqually(in.Amount, memberIDs(members))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	case models.SplitManual:
		if err := calculator.ValidateManualSplit(in.Amount, in.Shares); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		inGroup := make(map[string]bool, len(members))
		for _, m := range members {
			inGroup[m.ID] = true
		}
		for _, share := range in.Shares {
			if !inGroup[share.MemberID] {
				return nil, fmt.Errorf("%w: member %s", ErrNotFound, share.MemberID)
			}
		}
		shares = in.Shares
	}

	expense := &models.Expense{
		GroupID:     caller.GroupID,
		Description: description,
		Amount:      in.Amount,
		DueDate:     day(in.DueDate),
		Category:    strings.TrimSpace(in.Category),
		SplitPolicy: in.SplitPolicy,
	}

	obligations, err := s.store.CreateExpense(ctx, expense, shares)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", translate(err))
	}

	slog.Info("Expense created",
		"expense_id", expense.ID,
		"group_id", expense.GroupID,
		"amount", expense.Amount.StringFixed(2),
		"split", expense.SplitPolicy,
		"obligations", len(obligations),
	)

	return &ExpenseResult{Expense: expense, Obligations: obligations}, nil
}

// ListExpenses returns the caller's group expenses, newest due date first.
func (s *Service) ListExpenses(ctx context.Context, caller *models.Identity) ([]*models.Expense, error) {
	if err := requireMember(caller); err != nil {
		return nil, err
	}
	expenses, err := s.store.ListExpensesByGroup(ctx, caller.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

func memberIDs(members []*models.Member) []string {
	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	return ids
}
