package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/republica/internal/models"
)

var (
	ErrNoParticipants    = errors.New("must have at least one participant")
	ErrNonPositiveTotal  = errors.New("total must be greater than zero")
	ErrSubCentAmount     = errors.New("amounts must not have more than two decimal places")
	ErrAmountTooLarge    = errors.New("amount exceeds the maximum accepted value")
	ErrNegativeShare     = errors.New("share value cannot be negative")
	ErrDuplicateShare    = errors.New("member appears more than once in the split")
	ErrSplitSumMismatch  = errors.New("shares do not add up to the expense total")
	ErrEmptyManualSplits = errors.New("manual split requires at least one share")
)

// SplitEqually divides total into one share per member.
//
// The per-share value is total/n truncated to the cent; the leftover cents go
// one each to the first members, so the shares always add up to total.
func SplitEqually(total decimal.Decimal, memberIDs []string) ([]models.Share, error) {
	if len(memberIDs) == 0 {
		return nil, ErrNoParticipants
	}
	if !total.IsPositive() {
		return nil, ErrNonPositiveTotal
	}
	if !HasCentPrecision(total) {
		return nil, ErrSubCentAmount
	}
	if ExceedsMax(total) {
		return nil, ErrAmountTooLarge
	}

	cents := total.Shift(2).IntPart()
	n := int64(len(memberIDs))
	base, rem := cents/n, cents%n

	shares := make([]models.Share, len(memberIDs))
	for i, id := range memberIDs {
		c := base
		if int64(i) < rem {
			c++
		}
		shares[i] = models.Share{MemberID: id, Value: decimal.New(c, -2)}
	}
	return shares, nil
}

// ValidateManualSplit checks caller-declared shares against the expense total.
func ValidateManualSplit(total decimal.Decimal, shares []models.Share) error {
	if !total.IsPositive() {
		return ErrNonPositiveTotal
	}
	if ExceedsMax(total) {
		return ErrAmountTooLarge
	}
	if len(shares) == 0 {
		return ErrEmptyManualSplits
	}

	seen := make(map[string]bool, len(shares))
	sum := decimal.Zero
	for _, s := range shares {
		if seen[s.MemberID] {
			return fmt.Errorf("%w: %s", ErrDuplicateShare, s.MemberID)
		}
		seen[s.MemberID] = true

		if s.Value.IsNegative() {
			return fmt.Errorf("%w: %s", ErrNegativeShare, s.MemberID)
		}
		if !HasCentPrecision(s.Value) {
			return fmt.Errorf("%w: %s", ErrSubCentAmount, s.MemberID)
		}
		sum = sum.Add(s.Value)
	}

	if !sum.Equal(total) {
		return fmt.Errorf("%w: shares sum to %s, total is %s", ErrSplitSumMismatch, sum, total)
	}
	return nil
}
