package finance

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/republica/internal/calculator"
	"github.com/mmynk/republica/internal/models"
)

// GetDashboard computes the caller's financial snapshot.
// The sums are read concurrently; each one is consistent on its own.
func (s *Service) GetDashboard(ctx context.Context, caller *models.Identity) (*calculator.Dashboard, error) {
	if err := requireMember(caller); err != nil {
		return nil, err
	}

	var (
		member                           *models.Member
		debts, credits, cashbox, expense decimal.Decimal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		member, err = s.store.GetMember(gctx, caller.MemberID)
		return translate(err)
	})
	g.Go(func() error {
		var err error
		debts, err = s.store.SumOpenDebt(gctx, caller.MemberID)
		return err
	})
	g.Go(func() error {
		var err error
		credits, err = s.store.SumUnsettledPurchases(gctx, caller.MemberID)
		return err
	})
	g.Go(func() error {
		var err error
		cashbox, err = s.store.CashboxBalance(gctx, caller.GroupID)
		return err
	})
	g.Go(func() error {
		var err error
		expense, err = s.store.SumExpenses(gctx, caller.GroupID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compute dashboard: %w", err)
	}

	dashboard := calculator.NewDashboard(member.FixedRent, debts, credits, cashbox, expense)
	return &dashboard, nil
}

// ListDebtors summarizes the open obligations of every group member that has any.
func (s *Service) ListDebtors(ctx context.Context, caller *models.Identity) ([]calculator.DebtorSummary, error) {
	if err := requireMember(caller); err != nil {
		return nil, err
	}

	var members []*models.Member
	var open []*models.Obligation

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		members, err = s.store.ListMembersByGroup(gctx, caller.GroupID)
		return err
	})
	g.Go(func() error {
		var err error
		open, err = s.store.ListOpenObligationsByGroup(gctx, caller.GroupID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to list debtors: %w", err)
	}

	return calculator.SummarizeDebtors(members, open), nil
}
