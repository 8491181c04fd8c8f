package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/republica/internal/models"
	"github.com/mmynk/republica/internal/storage"
)

const memberColumns = "id, name, email, password_hash, group_id, fixed_rent_cents, role, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (*models.Member, error) {
	member := &models.Member{}
	var groupID sql.NullString
	var rentCents int64
	var role string

	if err := row.Scan(
		&member.ID,
		&member.Name,
		&member.Email,
		&member.PasswordHash,
		&groupID,
		&rentCents,
		&role,
		&member.CreatedAt,
	); err != nil {
		return nil, err
	}

	member.GroupID = groupID.String
	member.FixedRent = fromCents(rentCents)
	member.Role = models.Role(role)
	return member, nil
}

// CreateMember inserts a new member into the database.
func (s *SQLiteStore) CreateMember(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.CreatedAt == 0 {
		member.CreatedAt = time.Now().Unix()
	}
	if member.Role == "" {
		member.Role = models.RoleResident
	}

	query := `
		INSERT INTO members (id, name, email, password_hash, group_id, fixed_rent_cents, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	rent, err := toCents(member.FixedRent)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query,
		member.ID,
		member.Name,
		member.Email,
		member.PasswordHash,
		nullString(member.GroupID),
		rent,
		string(member.Role),
		member.CreatedAt,
	)
	if isUniqueViolation(err) {
		return storage.ErrEmailExists
	}
	if err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}

	return nil
}

// GetMember retrieves a member by ID.
func (s *SQLiteStore) GetMember(ctx context.Context, memberID string) (*models.Member, error) {
	member, err := scanMember(s.db.QueryRowContext(ctx,
		"SELECT "+memberColumns+" FROM members WHERE id = ?", memberID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("member %s: %w", memberID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member by ID: %w", err)
	}
	return member, nil
}

// GetMemberByEmail retrieves a member by their email address.
func (s *SQLiteStore) GetMemberByEmail(ctx context.Context, email string) (*models.Member, error) {
	member, err := scanMember(s.db.QueryRowContext(ctx,
		"SELECT "+memberColumns+" FROM members WHERE email = ?", email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("member %s: %w", email, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member by email: %w", err)
	}
	return member, nil
}

// ListMembersByGroup retrieves the current members of a group in join order.
func (s *SQLiteStore) ListMembersByGroup(ctx context.Context, groupID string) ([]*models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+memberColumns+" FROM members WHERE group_id = ? ORDER BY created_at, rowid",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}

	return members, nil
}

// UpdateFixedRents sets the fixed rent of several group members atomically.
func (s *SQLiteStore) UpdateFixedRents(ctx context.Context, groupID string, rents map[string]decimal.Decimal) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for memberID, rent := range rents {
			cents, err := toCents(rent)
			if err != nil {
				return err
			}
			res, err := tx.ExecContext(ctx,
				"UPDATE members SET fixed_rent_cents = ? WHERE id = ? AND group_id = ?",
				cents, memberID, groupID,
			)
			if err != nil {
				return fmt.Errorf("failed to update fixed rent: %w", err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to check fixed rent update: %w", err)
			}
			if n == 0 {
				return fmt.Errorf("member %s in group %s: %w", memberID, groupID, storage.ErrNotFound)
			}
		}
		return nil
	})
}
