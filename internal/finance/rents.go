package finance

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/republica/internal/calculator"
	"github.com/mmynk/republica/internal/models"
)

// ListFixedRents returns the members of the caller's group with their fixed rent.
func (s *Service) ListFixedRents(ctx context.Context, caller *models.Identity) ([]*models.Member, error) {
	if err := requireFinanceAdmin(caller); err != nil {
		return nil, err
	}
	members, err := s.store.ListMembersByGroup(ctx, caller.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// UpdateFixedRents sets the fixed rent of several members at once.
// Either every rent is updated or none is.
func (s *Service) UpdateFixedRents(ctx context.Context, caller *models.Identity, rents map[string]decimal.Decimal) error {
	if err := requireFinanceAdmin(caller); err != nil {
		return err
	}
	if len(rents) == 0 {
		return invalid("no rents given")
	}
	for memberID, rent := range rents {
		if rent.IsNegative() {
			return invalid("fixed rent of %s cannot be negative", memberID)
		}
		if !calculator.HasCentPrecision(rent) {
			return invalid("fixed rent of %s must not have more than two decimal places", memberID)
		}
		if calculator.ExceedsMax(rent) {
			return invalid("fixed rent of %s must not exceed %s", memberID, calculator.MaxAmount)
		}
	}

	if err := s.store.UpdateFixedRents(ctx, caller.GroupID, rents); err != nil {
		return fmt.Errorf("failed to update fixed rents: %w", translate(err))
	}
	return nil
}
