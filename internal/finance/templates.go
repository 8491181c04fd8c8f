package finance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/republica/internal/calculator"
	"github.com/mmynk/republica/internal/models"
	"github.com/mmynk/republica/internal/storage"
)

// TemplateInput is the payload of CreateTemplate and UpdateTemplate.
type TemplateInput struct {
	Description string
	BaseValue   decimal.Decimal
	Category    string
}

func (in TemplateInput) validate() error {
	if strings.TrimSpace(in.Description) == "" {
		return invalid("description is required")
	}
	return checkAmount("base value", in.BaseValue)
}

// CreateTemplate adds a recurring expense blueprint to the caller's group.
func (s *Service) CreateTemplate(ctx context.Context, caller *models.Identity, in TemplateInput) (*models.ExpenseTemplate, error) {
	if err := requireFinanceAdmin(caller); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	template := &models.ExpenseTemplate{
		GroupID:     caller.GroupID,
		Description: strings.TrimSpace(in.Description),
		BaseValue:   in.BaseValue,
		Category:    strings.TrimSpace(in.Category),
	}
	if err := s.store.CreateTemplate(ctx, template); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}
	return template, nil
}

// ListTemplates returns the templates of the caller's group.
func (s *Service) ListTemplates(ctx context.Context, caller *models.Identity) ([]*models.ExpenseTemplate, error) {
	if err := requireMember(caller); err != nil {
		return nil, err
	}
	templates, err := s.store.ListTemplatesByGroup(ctx, caller.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

// UpdateTemplate overwrites a template of the caller's group.
func (s *Service) UpdateTemplate(ctx context.Context, caller *models.Identity, templateID string, in TemplateInput) (*models.ExpenseTemplate, error) {
	if err := requireFinanceAdmin(caller); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	template, err := s.store.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, translate(err)
	}
	if template.GroupID != caller.GroupID {
		return nil, fmt.Errorf("%w: template %s", ErrNotFound, templateID)
	}

	template.Description = strings.TrimSpace(in.Description)
	template.BaseValue = in.BaseValue
	template.Category = strings.TrimSpace(in.Category)
	if err := s.store.UpdateTemplate(ctx, template); err != nil {
		return nil, fmt.Errorf("failed to update template: %w", translate(err))
	}
	return template, nil
}

// BillingOptions tunes a monthly billing run.
type BillingOptions struct {
	// Period is the YYYY-MM month to bill. Empty means the current month.
	Period string

	// AllowDuplicate bills templates again even if the period was already billed.
	AllowDuplicate bool
}

// BillingResult reports what a billing run generated.
type BillingResult struct {
	Period     string
	Generated  int
	Skipped    int
	ExpenseIDs []string
}

// RunMonthlyBilling expands every template of the caller's group into an
// equal-split expense due on the billing day of the period.
//
// Each template is committed on its own. Templates already billed for the
// period are skipped; if all of them were, the run fails with ErrAlreadyBilled.
func (s *Service) RunMonthlyBilling(ctx context.Context, caller *models.Identity, opts BillingOptions) (*BillingResult, error) {
	if err := requireFinanceAdmin(caller); err != nil {
		return nil, err
	}

	month, err := s.billingMonth(opts.Period)
	if err != nil {
		return nil, err
	}

	var templates []*models.ExpenseTemplate
	var members []*models.Member
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		templates, err = s.store.ListTemplatesByGroup(gctx, caller.GroupID)
		return err
	})
	g.Go(func() error {
		var err error
		members, err = s.store.ListMembersByGroup(gctx, caller.GroupID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load billing inputs: %w", err)
	}

	if len(templates) == 0 {
		return nil, ErrNoTemplates
	}
	if len(members) == 0 {
		return nil, ErrEmptyGroup
	}

	result := &BillingResult{Period: month.Format(billingPeriodLayout)}
	dueDate := time.Date(month.Year(), month.Month(), s.dueDay, 0, 0, 0, 0, time.UTC)
	ids := memberIDs(members)

	for _, t := range templates {
		shares, err := calculator.SplitEqually(t.BaseValue, ids)
		if err != nil {
			return nil, fmt.Errorf("template %s: %w: %w", t.ID, ErrInvalidInput, err)
		}

		expense := &models.Expense{
			GroupID:       caller.GroupID,
			Description:   fmt.Sprintf("%s - %s", t.Description, month.Format(billingSuffixLayout)),
			Amount:        t.BaseValue,
			DueDate:       dueDate,
			Category:      t.Category,
			SplitPolicy:   models.SplitEqual,
			TemplateID:    t.ID,
			BillingPeriod: result.Period,
		}

		_, err = s.store.CreateBilledExpense(ctx, expense, shares, opts.AllowDuplicate)
		if errors.Is(err, storage.ErrAlreadyBilled) {
			result.Skipped++
			slog.Debug("Template already billed", "template_id", t.ID, "period", result.Period)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to bill template %s: %w", t.ID, err)
		}

		result.Generated++
		result.ExpenseIDs = append(result.ExpenseIDs, expense.ID)
	}

	slog.Info("Monthly billing complete",
		"group_id", caller.GroupID,
		"period", result.Period,
		"generated", result.Generated,
		"skipped", result.Skipped,
	)

	if result.Generated == 0 {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyBilled, result.Period)
	}
	return result, nil
}

// billingMonth returns the first day of the month to bill.
func (s *Service) billingMonth(period string) (time.Time, error) {
	if period == "" {
		now := s.now()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	month, err := time.Parse(billingPeriodLayout, period)
	if err != nil {
		return time.Time{}, invalid("billing period must be YYYY-MM, got %q", period)
	}
	return month, nil
}
