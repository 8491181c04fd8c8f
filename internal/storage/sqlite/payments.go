package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/republica/internal/models"
	"github.com/mmynk/republica/internal/storage"
)

// ApplyPayment loads the payment candidates, lets plan allocate the amount and
// persists the outcome, all inside one write transaction.
func (s *SQLiteStore) ApplyPayment(ctx context.Context, target storage.PaymentTarget, plan storage.PaymentPlanner) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var candidates []*models.Obligation
		var err error

		switch {
		case target.ObligationID != "":
			candidates, err = queryObligations(ctx, tx, "o.id = ?", target.ObligationID)
			if err != nil {
				return err
			}
			if len(candidates) == 0 {
				return fmt.Errorf("obligation %s: %w", target.ObligationID, storage.ErrNotFound)
			}
		case target.MemberID != "":
			candidates, err = queryObligations(ctx, tx, "o.member_id = ? AND o.is_paid = 0", target.MemberID)
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("payment target is empty")
		}

		record, err := plan(candidates)
		if err != nil {
			return err
		}
		if record == nil {
			return nil
		}

		for _, o := range record.Updated {
			if err := updateObligation(ctx, tx, o); err != nil {
				return err
			}
		}

		for _, r := range record.Receipts {
			if err := insertReceipt(ctx, tx, r); err != nil {
				return err
			}
		}

		if record.Deposit != nil {
			if err := insertCashTransaction(ctx, tx, record.Deposit); err != nil {
				return err
			}
		}

		return nil
	})
}

// updateObligation writes the new paid state, failing with ErrConflict when
// the row's version moved since it was read.
func updateObligation(ctx context.Context, tx *sql.Tx, o *models.Obligation) error {
	paid, err := toCents(o.PaidAmount)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE obligations SET paid_cents = ?, is_paid = ?, version = version + 1
		 WHERE id = ? AND version = ?`,
		paid, o.IsPaid, o.ID, o.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update obligation: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check obligation update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("obligation %s: %w", o.ID, storage.ErrConflict)
	}

	o.Version++
	return nil
}

func insertReceipt(ctx context.Context, tx *sql.Tx, r *models.PaymentReceipt) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.PaidAt == 0 {
		r.PaidAt = time.Now().Unix()
	}

	amount, err := toCents(r.Amount)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO payment_receipts (id, obligation_id, member_id, amount_cents, confirmed_by, paid_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.ObligationID, r.MemberID, amount, r.ConfirmedBy, r.PaidAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment receipt: %w", err)
	}
	return nil
}

// ListReceiptsByGroup retrieves every receipt of a group's obligations, newest first.
func (s *SQLiteStore) ListReceiptsByGroup(ctx context.Context, groupID string) ([]*models.PaymentReceipt, error) {
	return s.queryReceipts(ctx,
		`SELECT r.id, r.obligation_id, r.member_id, r.amount_cents, r.confirmed_by, r.paid_at
		 FROM payment_receipts r
		 JOIN obligations o ON o.id = r.obligation_id
		 JOIN expenses e ON e.id = o.expense_id
		 WHERE e.group_id = ?
		 ORDER BY r.paid_at DESC, r.rowid DESC`,
		groupID,
	)
}

// ListReceiptsByMember retrieves a member's receipts, newest first.
func (s *SQLiteStore) ListReceiptsByMember(ctx context.Context, memberID string) ([]*models.PaymentReceipt, error) {
	return s.queryReceipts(ctx,
		`SELECT id, obligation_id, member_id, amount_cents, confirmed_by, paid_at
		 FROM payment_receipts WHERE member_id = ?
		 ORDER BY paid_at DESC, rowid DESC`,
		memberID,
	)
}

func (s *SQLiteStore) queryReceipts(ctx context.Context, query string, args ...any) ([]*models.PaymentReceipt, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment receipts: %w", err)
	}
	defer rows.Close()

	var receipts []*models.PaymentReceipt
	for rows.Next() {
		r := &models.PaymentReceipt{}
		var amountCents int64
		if err := rows.Scan(&r.ID, &r.ObligationID, &r.MemberID, &amountCents, &r.ConfirmedBy, &r.PaidAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment receipt: %w", err)
		}
		r.Amount = fromCents(amountCents)
		receipts = append(receipts, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payment receipts: %w", err)
	}

	return receipts, nil
}
