package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/republica/internal/models"
)

// Allocation is one step of a payment: the value applied to one obligation.
type Allocation struct {
	Obligation *models.Obligation
	Applied    decimal.Decimal
}

// Allocate spends amount across candidates in the given order.
//
// Each obligation takes min(available, remaining); it is marked paid once its
// remaining value drops below Tolerance. Candidates already paid or with nothing
// left are passed over. The loop never revisits an obligation and never applies
// a negative value. Candidates are updated in place; the returned leftover is
// rounded to the cent.
func Allocate(amount decimal.Decimal, candidates []*models.Obligation) ([]Allocation, decimal.Decimal) {
	available := amount
	var steps []Allocation

	for _, o := range candidates {
		if !available.IsPositive() {
			break
		}
		if o.IsPaid {
			continue
		}

		remaining := o.Remaining()
		if !remaining.IsPositive() {
			continue
		}

		applied := decimal.Min(available, remaining)
		o.PaidAmount = o.PaidAmount.Add(applied)
		if IsSettled(o.Value, o.PaidAmount) {
			o.IsPaid = true
		}

		steps = append(steps, Allocation{Obligation: o, Applied: applied})
		available = available.Sub(applied)
	}

	if available.IsNegative() {
		available = decimal.Zero
	}
	return steps, RoundCents(available)
}
