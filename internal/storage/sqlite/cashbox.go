package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/republica/internal/models"
)

// CreatePurchase persists a member's personal purchase.
func (s *SQLiteStore) CreatePurchase(ctx context.Context, purchase *models.Purchase) error {
	if purchase.ID == "" {
		purchase.ID = uuid.New().String()
	}
	if purchase.CreatedAt == 0 {
		purchase.CreatedAt = time.Now().Unix()
	}

	amount, err := toCents(purchase.Amount)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO purchases (id, member_id, group_id, description, amount_cents, purchase_date, is_settled, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		purchase.ID, purchase.MemberID, purchase.GroupID, purchase.Description,
		amount, formatDate(purchase.Date), purchase.IsSettled, purchase.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert purchase: %w", err)
	}
	return nil
}

// CreateCashTransaction persists a cash-box movement.
func (s *SQLiteStore) CreateCashTransaction(ctx context.Context, txn *models.CashTransaction) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return insertCashTransaction(ctx, tx, txn)
	})
}

func insertCashTransaction(ctx context.Context, tx *sql.Tx, txn *models.CashTransaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	if txn.CreatedAt == 0 {
		txn.CreatedAt = time.Now().Unix()
	}

	amount, err := toCents(txn.Amount)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO cash_transactions (id, group_id, description, amount_cents, direction, transaction_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		txn.ID, txn.GroupID, txn.Description, amount, string(txn.Direction),
		formatDate(txn.Date), txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert cash transaction: %w", err)
	}
	return nil
}

// ListCashTransactionsByGroup retrieves a group's cash-box movements, newest first.
func (s *SQLiteStore) ListCashTransactionsByGroup(ctx context.Context, groupID string) ([]*models.CashTransaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, description, amount_cents, direction, transaction_date, created_at
		 FROM cash_transactions WHERE group_id = ?
		 ORDER BY transaction_date DESC, created_at DESC, rowid DESC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list cash transactions: %w", err)
	}
	defer rows.Close()

	var txns []*models.CashTransaction
	for rows.Next() {
		t := &models.CashTransaction{}
		var amountCents int64
		var direction, date string
		if err := rows.Scan(&t.ID, &t.GroupID, &t.Description, &amountCents, &direction, &date, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cash transaction: %w", err)
		}
		t.Amount = fromCents(amountCents)
		t.Direction = models.CashDirection(direction)
		if t.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cash transactions: %w", err)
	}

	return txns, nil
}

// SumOpenDebt returns value minus paid over the member's unpaid obligations.
func (s *SQLiteStore) SumOpenDebt(ctx context.Context, memberID string) (decimal.Decimal, error) {
	return s.sumCents(ctx, "open debt",
		"SELECT COALESCE(SUM(value_cents - paid_cents), 0) FROM obligations WHERE member_id = ? AND is_paid = 0",
		memberID,
	)
}

// SumUnsettledPurchases returns the member's total of unsettled purchases.
func (s *SQLiteStore) SumUnsettledPurchases(ctx context.Context, memberID string) (decimal.Decimal, error) {
	return s.sumCents(ctx, "unsettled purchases",
		"SELECT COALESCE(SUM(amount_cents), 0) FROM purchases WHERE member_id = ? AND is_settled = 0",
		memberID,
	)
}

// CashboxBalance returns cash in minus cash out for the group.
func (s *SQLiteStore) CashboxBalance(ctx context.Context, groupID string) (decimal.Decimal, error) {
	return s.sumCents(ctx, "cashbox balance",
		`SELECT COALESCE(SUM(CASE direction WHEN 'in' THEN amount_cents ELSE -amount_cents END), 0)
		 FROM cash_transactions WHERE group_id = ?`,
		groupID,
	)
}

// SumExpenses returns the lifetime total of the group's expenses.
func (s *SQLiteStore) SumExpenses(ctx context.Context, groupID string) (decimal.Decimal, error) {
	return s.sumCents(ctx, "group expenses",
		"SELECT COALESCE(SUM(amount_cents), 0) FROM expenses WHERE group_id = ?",
		groupID,
	)
}

func (s *SQLiteStore) sumCents(ctx context.Context, what, query string, args ...any) (decimal.Decimal, error) {
	var cents int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&cents); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum %s: %w", what, err)
	}
	return fromCents(cents), nil
}
