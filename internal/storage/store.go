// Package storage provides abstractions for persistent ledger storage.
package storage

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/mmynk/republica/internal/models"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when an obligation changed between read and write.
	ErrConflict = errors.New("concurrent update conflict")

	// ErrAlreadyBilled is returned when a template already produced an expense
	// for the requested billing period.
	ErrAlreadyBilled = errors.New("template already billed for period")

	// ErrEmailExists is returned when a member email is already registered.
	ErrEmailExists = errors.New("email already registered")

	// ErrAmountOutOfRange is returned when a monetary value does not fit the
	// stored integer cents.
	ErrAmountOutOfRange = errors.New("amount out of storable range")
)

// PaymentTarget selects the candidate obligations of a payment.
// Exactly one field is expected to be set.
type PaymentTarget struct {
	// ObligationID selects exactly one obligation, paid or not.
	ObligationID string

	// MemberID selects every unpaid obligation of the member, oldest first.
	MemberID string
}

// PaymentRecord is what a payment writes once its allocation is decided.
type PaymentRecord struct {
	// Updated holds the obligations with their new PaidAmount and IsPaid.
	// Version must still be the value that was read.
	Updated []*models.Obligation

	// Receipts holds one receipt per allocation step.
	Receipts []*models.PaymentReceipt

	// Deposit, when set, is recorded in the cash box in the same transaction.
	Deposit *models.CashTransaction
}

// PaymentPlanner decides, inside the payment transaction, what a payment writes.
// Returning an error rolls the transaction back.
type PaymentPlanner func(candidates []*models.Obligation) (*PaymentRecord, error)

// Directory answers membership questions. The ledger never mutates membership
// except for the fixed rent figure.
type Directory interface {
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	GetMember(ctx context.Context, memberID string) (*models.Member, error)
	GetMemberByEmail(ctx context.Context, email string) (*models.Member, error)
	ListMembersByGroup(ctx context.Context, groupID string) ([]*models.Member, error)
}

// Store defines the persistence operations of the ledger.
// This abstraction allows swapping storage backends without changing the
// engine; every multi-row write is atomic.
type Store interface {
	Directory

	// CreateGroup persists a new group. ID, JoinCode and CreatedAt are generated when empty.
	CreateGroup(ctx context.Context, group *models.Group) error

	// CreateMember persists a new member. Returns ErrEmailExists on a duplicate email.
	CreateMember(ctx context.Context, member *models.Member) error

	// UpdateFixedRents sets the fixed rent of several members of one group atomically.
	// Returns ErrNotFound if any member is not in the group.
	UpdateFixedRents(ctx context.Context, groupID string, rents map[string]decimal.Decimal) error

	// CreateExpense persists an expense and one obligation per share in one transaction.
	CreateExpense(ctx context.Context, expense *models.Expense, shares []models.Share) ([]*models.Obligation, error)

	// CreateBilledExpense is CreateExpense for a template expansion. Unless
	// allowDuplicate is set it returns ErrAlreadyBilled when the template already
	// has an expense for expense.BillingPeriod.
	CreateBilledExpense(ctx context.Context, expense *models.Expense, shares []models.Share, allowDuplicate bool) ([]*models.Obligation, error)

	// ListExpensesByGroup returns the group's expenses, newest due date first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	CreateTemplate(ctx context.Context, template *models.ExpenseTemplate) error
	GetTemplate(ctx context.Context, templateID string) (*models.ExpenseTemplate, error)
	ListTemplatesByGroup(ctx context.Context, groupID string) ([]*models.ExpenseTemplate, error)
	UpdateTemplate(ctx context.Context, template *models.ExpenseTemplate) error

	// ListOpenObligationsByGroup returns every unpaid obligation of the group's
	// expenses, oldest first.
	ListOpenObligationsByGroup(ctx context.Context, groupID string) ([]*models.Obligation, error)

	// ApplyPayment loads the candidates selected by target in a write
	// transaction, hands them to plan and persists the returned record.
	// Returns ErrNotFound if target names an unknown obligation and ErrConflict
	// if an obligation changed concurrently.
	ApplyPayment(ctx context.Context, target PaymentTarget, plan PaymentPlanner) error

	ListReceiptsByGroup(ctx context.Context, groupID string) ([]*models.PaymentReceipt, error)
	ListReceiptsByMember(ctx context.Context, memberID string) ([]*models.PaymentReceipt, error)

	CreatePurchase(ctx context.Context, purchase *models.Purchase) error
	CreateCashTransaction(ctx context.Context, txn *models.CashTransaction) error
	ListCashTransactionsByGroup(ctx context.Context, groupID string) ([]*models.CashTransaction, error)

	// SumOpenDebt returns the remaining value over the member's unpaid obligations.
	SumOpenDebt(ctx context.Context, memberID string) (decimal.Decimal, error)

	// SumUnsettledPurchases returns the member's unsettled purchase total.
	SumUnsettledPurchases(ctx context.Context, memberID string) (decimal.Decimal, error)

	// CashboxBalance returns cash in minus cash out for the group.
	CashboxBalance(ctx context.Context, groupID string) (decimal.Decimal, error)

	// SumExpenses returns the lifetime total of the group's expenses.
	SumExpenses(ctx context.Context, groupID string) (decimal.Decimal, error)

	// Close releases any resources held by the store.
	Close() error
}
