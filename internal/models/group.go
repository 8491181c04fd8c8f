package models

import "github.com/shopspring/decimal"

// Role is the permission tag carried by a member.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleFinanceAdmin Role = "admin_finance"
	RoleResident     Role = "morador"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleFinanceAdmin, RoleResident:
		return true
	}
	return false
}

// CanManageFinances reports whether the role grants finance-admin privileges.
// RoleAdmin implies them.
func (r Role) CanManageFinances() bool {
	return r == RoleAdmin || r == RoleFinanceAdmin
}

// Group represents a republic.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the republic.
	Name string

	// Address is the street address of the residence.
	Address string

	// JoinCode is the unique code residents use to join the group.
	JoinCode string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// Member represents a resident account.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string

	// Name is the display name of the member.
	Name string

	// Email is the login address (unique).
	Email string

	// PasswordHash is the bcrypt hash of the member's password.
	PasswordHash string

	// GroupID references the member's republic. Empty when unaffiliated.
	GroupID string

	// FixedRent is the member's room rent, added to every dashboard total.
	FixedRent decimal.Decimal

	// Role is the member's permission tag.
	Role Role

	// CreatedAt is the Unix timestamp when the member was created.
	CreatedAt int64
}

// Identity is the authenticated caller as seen by the ledger engine.
type Identity struct {
	MemberID string
	GroupID  string
	Role     Role
}

// InGroup reports whether the caller belongs to a republic.
func (i Identity) InGroup() bool {
	return i.GroupID != ""
}
