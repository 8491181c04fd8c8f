package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/republica/internal/models"
	"github.com/mmynk/republica/internal/storage"
)

// CreateExpense persists an expense and its obligations in one transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense, shares []models.Share) ([]*models.Obligation, error) {
	var obligations []*models.Obligation
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		obligations, err = insertExpense(ctx, tx, expense, shares)
		return err
	})
	if err != nil {
		return nil, err
	}
	return obligations, nil
}

// CreateBilledExpense persists a template expansion, refusing a second
// expense for the same template and period unless allowDuplicate is set.
func (s *SQLiteStore) CreateBilledExpense(ctx context.Context, expense *models.Expense, shares []models.Share, allowDuplicate bool) ([]*models.Obligation, error) {
	if expense.TemplateID == "" || expense.BillingPeriod == "" {
		return nil, fmt.Errorf("billed expense requires template and billing period")
	}

	var obligations []*models.Obligation
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if !allowDuplicate {
			var exists int
			err := tx.QueryRowContext(ctx,
				"SELECT 1 FROM expenses WHERE template_id = ? AND billing_period = ? LIMIT 1",
				expense.TemplateID, expense.BillingPeriod,
			).Scan(&exists)
			if err == nil {
				return fmt.Errorf("template %s, period %s: %w", expense.TemplateID, expense.BillingPeriod, storage.ErrAlreadyBilled)
			}
			if !errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("failed to check billing period: %w", err)
			}
		}

		var err error
		obligations, err = insertExpense(ctx, tx, expense, shares)
		return err
	})
	if err != nil {
		return nil, err
	}
	return obligations, nil
}

func insertExpense(ctx context.Context, tx *sql.Tx, expense *models.Expense, shares []models.Share) ([]*models.Obligation, error) {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	amount, err := toCents(expense.Amount)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, description, amount_cents, due_date, category, split_policy, template_id, billing_period, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.Description, amount,
		formatDate(expense.DueDate), expense.Category, string(expense.SplitPolicy),
		nullString(expense.TemplateID), nullString(expense.BillingPeriod), expense.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert expense: %w", err)
	}

	obligations := make([]*models.Obligation, 0, len(shares))
	for _, share := range shares {
		o := &models.Obligation{
			ID:                 uuid.New().String(),
			MemberID:           share.MemberID,
			ExpenseID:          expense.ID,
			GroupID:            expense.GroupID,
			Value:              share.Value,
			ExpenseDescription: expense.Description,
			CreatedAt:          expense.CreatedAt,
		}
		value, err := toCents(o.Value)
		if err != nil {
			return nil, err
		}
		// A zero share has nothing left to pay.
		o.IsPaid = value == 0

		res, err := tx.ExecContext(ctx,
			`INSERT INTO obligations (id, member_id, expense_id, value_cents, paid_cents, is_paid, version, created_at)
			 VALUES (?, ?, ?, ?, 0, ?, 0, ?)`,
			o.ID, o.MemberID, o.ExpenseID, value, o.IsPaid, o.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert obligation: %w", err)
		}
		if o.Seq, err = res.LastInsertId(); err != nil {
			return nil, fmt.Errorf("failed to read obligation sequence: %w", err)
		}

		obligations = append(obligations, o)
	}

	return obligations, nil
}

// ListExpensesByGroup retrieves all expenses of a group, newest due date first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, description, amount_cents, due_date, category, split_policy, template_id, billing_period, created_at
		 FROM expenses WHERE group_id = ? ORDER BY due_date DESC, created_at DESC, rowid DESC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by group: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		e := &models.Expense{}
		var amountCents int64
		var dueDate, policy string
		var templateID, period sql.NullString

		if err := rows.Scan(&e.ID, &e.GroupID, &e.Description, &amountCents, &dueDate,
			&e.Category, &policy, &templateID, &period, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}

		e.Amount = fromCents(amountCents)
		e.SplitPolicy = models.SplitPolicy(policy)
		e.TemplateID = templateID.String
		e.BillingPeriod = period.String
		if e.DueDate, err = parseDate(dueDate); err != nil {
			return nil, err
		}

		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}

// CreateTemplate persists a new expense template.
func (s *SQLiteStore) CreateTemplate(ctx context.Context, template *models.ExpenseTemplate) error {
	if template.ID == "" {
		template.ID = uuid.New().String()
	}
	if template.CreatedAt == 0 {
		template.CreatedAt = time.Now().Unix()
	}

	base, err := toCents(template.BaseValue)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO expense_templates (id, group_id, description, base_value_cents, category, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		template.ID, template.GroupID, template.Description, base,
		template.Category, template.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert template: %w", err)
	}
	return nil
}

const templateColumns = "id, group_id, description, base_value_cents, category, created_at"

func scanTemplate(row rowScanner) (*models.ExpenseTemplate, error) {
	t := &models.ExpenseTemplate{}
	var baseCents int64
	if err := row.Scan(&t.ID, &t.GroupID, &t.Description, &baseCents, &t.Category, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.BaseValue = fromCents(baseCents)
	return t, nil
}

// GetTemplate retrieves a template by ID.
func (s *SQLiteStore) GetTemplate(ctx context.Context, templateID string) (*models.ExpenseTemplate, error) {
	t, err := scanTemplate(s.db.QueryRowContext(ctx,
		"SELECT "+templateColumns+" FROM expense_templates WHERE id = ?", templateID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("template %s: %w", templateID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return t, nil
}

// ListTemplatesByGroup retrieves a group's templates in creation order.
func (s *SQLiteStore) ListTemplatesByGroup(ctx context.Context, groupID string) ([]*models.ExpenseTemplate, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+templateColumns+" FROM expense_templates WHERE group_id = ? ORDER BY created_at, rowid",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var templates []*models.ExpenseTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate templates: %w", err)
	}
	return templates, nil
}

// UpdateTemplate overwrites the description, base value and category of a template.
func (s *SQLiteStore) UpdateTemplate(ctx context.Context, template *models.ExpenseTemplate) error {
	base, err := toCents(template.BaseValue)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE expense_templates SET description = ?, base_value_cents = ?, category = ? WHERE id = ?",
		template.Description, base, template.Category, template.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check template update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("template %s: %w", template.ID, storage.ErrNotFound)
	}
	return nil
}

const obligationQuery = `
	SELECT o.seq, o.id, o.member_id, o.expense_id, e.group_id, e.description,
	       o.value_cents, o.paid_cents, o.is_paid, o.version, o.created_at
	FROM obligations o
	JOIN expenses e ON e.id = o.expense_id`

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func scanObligation(row rowScanner) (*models.Obligation, error) {
	o := &models.Obligation{}
	var valueCents, paidCents int64
	if err := row.Scan(&o.Seq, &o.ID, &o.MemberID, &o.ExpenseID, &o.GroupID, &o.ExpenseDescription,
		&valueCents, &paidCents, &o.IsPaid, &o.Version, &o.CreatedAt); err != nil {
		return nil, err
	}
	o.Value = fromCents(valueCents)
	o.PaidAmount = fromCents(paidCents)
	return o, nil
}

func queryObligations(ctx context.Context, q queryer, where string, args ...any) ([]*models.Obligation, error) {
	rows, err := q.QueryContext(ctx, obligationQuery+" WHERE "+where+" ORDER BY o.seq", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query obligations: %w", err)
	}
	defer rows.Close()

	var obligations []*models.Obligation
	for rows.Next() {
		o, err := scanObligation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan obligation: %w", err)
		}
		obligations = append(obligations, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate obligations: %w", err)
	}
	return obligations, nil
}

// ListOpenObligationsByGroup retrieves every unpaid obligation of a group, oldest first.
func (s *SQLiteStore) ListOpenObligationsByGroup(ctx context.Context, groupID string) ([]*models.Obligation, error) {
	return queryObligations(ctx, s.db, "e.group_id = ? AND o.is_paid = 0", groupID)
}
