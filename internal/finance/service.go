// Package finance is the ledger and settlement engine of a republic.
//
// Every operation takes the caller's identity, checks group scope and role,
// and either commits all of its writes or none of them.
package finance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/republica/internal/calculator"
	"github.com/mmynk/republica/internal/models"
	"github.com/mmynk/republica/internal/storage"
)

const (
	defaultDueDay        = 10
	defaultPaymentTries  = 5
	billingPeriodLayout  = "2006-01"
	billingSuffixLayout  = "01/2006"
	remainderDescription = "Payment remainder"
)

// Service implements the ledger operations on top of a storage.Store.
type Service struct {
	store        storage.Store
	now          func() time.Time
	dueDay       int
	paymentTries int
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now, e.g. to bill a fixed month in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithDueDay sets the day of month billed expenses are due on.
func WithDueDay(day int) Option {
	return func(s *Service) {
		if day >= 1 && day <= 28 {
			s.dueDay = day
		}
	}
}

// WithPaymentRetries sets how many times a payment is attempted when it loses
// a race against another payment.
func WithPaymentRetries(n int) Option {
	return func(s *Service) {
		if n >= 1 {
			s.paymentTries = n
		}
	}
}

// New creates a new ledger engine.
func New(store storage.Store, opts ...Option) *Service {
	s := &Service{
		store:        store,
		now:          time.Now,
		dueDay:       defaultDueDay,
		paymentTries: defaultPaymentTries,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IdentityOf builds the identity of a stored member, for callers that act on a
// member's behalf without a token (queue consumers, operator tools).
func (s *Service) IdentityOf(ctx context.Context, memberID string) (*models.Identity, error) {
	member, err := s.store.GetMember(ctx, memberID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: member %s", ErrUnauthenticated, memberID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load member: %w", err)
	}
	return &models.Identity{MemberID: member.ID, GroupID: member.GroupID, Role: member.Role}, nil
}

// requireMember checks that the caller is authenticated and belongs to a group.
func requireMember(caller *models.Identity) error {
	if caller == nil || caller.MemberID == "" {
		return ErrUnauthenticated
	}
	if !caller.InGroup() {
		return fmt.Errorf("%w: member is not in a group", ErrForbidden)
	}
	return nil
}

// requireFinanceAdmin is requireMember plus the finance-admin role.
func requireFinanceAdmin(caller *models.Identity) error {
	if err := requireMember(caller); err != nil {
		return err
	}
	if !caller.Role.CanManageFinances() {
		return fmt.Errorf("%w: finance admin role required", ErrForbidden)
	}
	return nil
}

// checkAmount validates a strictly positive monetary amount within MaxAmount.
func checkAmount(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return invalid("%s must be greater than zero", field)
	}
	if !calculator.HasCentPrecision(amount) {
		return invalid("%s must not have more than two decimal places", field)
	}
	if calculator.ExceedsMax(amount) {
		return invalid("%s must not exceed %s", field, calculator.MaxAmount)
	}
	return nil
}

// day truncates t to its calendar day.
func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// groupMember loads a member and checks it belongs to groupID.
func (s *Service) groupMember(ctx context.Context, groupID, memberID string) (*models.Member, error) {
	member, err := s.store.GetMember(ctx, memberID)
	if err != nil {
		return nil, translate(err)
	}
	if member.GroupID != groupID {
		return nil, fmt.Errorf("%w: member %s", ErrNotFound, memberID)
	}
	return member, nil
}
