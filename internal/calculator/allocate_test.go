package calculator

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/republica/internal/models"
)

func obligation(id, value, paid string) *models.Obligation {
	return &models.Obligation{ID: id, Value: d(value), PaidAmount: d(paid)}
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name         string
		amount       string
		candidates   []*models.Obligation
		wantLeftover string
		wantSteps    []string // applied amount per step
		wantPaid     []string // paid amount per candidate after the call
		wantSettled  []bool
	}{
		{
			name:         "partial payment of one obligation",
			amount:       "30",
			candidates:   []*models.Obligation{obligation("o1", "50", "0")},
			wantLeftover: "0",
			wantSteps:    []string{"30"},
			wantPaid:     []string{"30"},
			wantSettled:  []bool{false},
		},
		{
			name:         "overpayment of one obligation reports leftover",
			amount:       "50",
			candidates:   []*models.Obligation{obligation("o1", "50", "30")},
			wantLeftover: "30",
			wantSteps:    []string{"20"},
			wantPaid:     []string{"50"},
			wantSettled:  []bool{true},
		},
		{
			name:   "oldest obligation is cleared first",
			amount: "70",
			candidates: []*models.Obligation{
				obligation("o1", "40", "0"),
				obligation("o2", "60", "0"),
			},
			wantLeftover: "0",
			wantSteps:    []string{"40", "30"},
			wantPaid:     []string{"40", "30"},
			wantSettled:  []bool{true, false},
		},
		{
			name:   "payment exceeding total debt",
			amount: "150.55",
			candidates: []*models.Obligation{
				obligation("o1", "40", "10"),
				obligation("o2", "60", "0"),
			},
			wantLeftover: "60.55",
			wantSteps:    []string{"30", "60"},
			wantPaid:     []string{"40", "60"},
			wantSettled:  []bool{true, true},
		},
		{
			name:   "stops as soon as amount is spent",
			amount: "40",
			candidates: []*models.Obligation{
				obligation("o1", "40", "0"),
				obligation("o2", "60", "0"),
			},
			wantLeftover: "0",
			wantSteps:    []string{"40"},
			wantPaid:     []string{"40", "0"},
			wantSettled:  []bool{true, false},
		},
		{
			name:   "already paid candidates are passed over",
			amount: "10",
			candidates: []*models.Obligation{
				{ID: "o1", Value: d("40"), PaidAmount: d("40"), IsPaid: true},
				obligation("o2", "60", "0"),
			},
			wantLeftover: "0",
			wantSteps:    []string{"10"},
			wantPaid:     []string{"40", "10"},
			wantSettled:  []bool{true, false},
		},
		{
			name:         "remaining below tolerance after a payment settles",
			amount:       "33.33",
			candidates:   []*models.Obligation{obligation("o1", "33.333", "0")},
			wantLeftover: "0",
			wantSteps:    []string{"33.33"},
			wantPaid:     []string{"33.33"},
			wantSettled:  []bool{true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps, leftover := Allocate(d(tt.amount), tt.candidates)

			if !leftover.Equal(d(tt.wantLeftover)) {
				t.Errorf("leftover = %s, want %s", leftover, tt.wantLeftover)
			}
			if len(steps) != len(tt.wantSteps) {
				t.Fatalf("got %d steps, want %d", len(steps), len(tt.wantSteps))
			}
			for i, s := range steps {
				if !s.Applied.Equal(d(tt.wantSteps[i])) {
					t.Errorf("step %d applied %s, want %s", i, s.Applied, tt.wantSteps[i])
				}
			}
			for i, o := range tt.candidates {
				if !o.PaidAmount.Equal(d(tt.wantPaid[i])) {
					t.Errorf("%s paid = %s, want %s", o.ID, o.PaidAmount, tt.wantPaid[i])
				}
				if o.IsPaid != tt.wantSettled[i] {
					t.Errorf("%s is_paid = %v, want %v", o.ID, o.IsPaid, tt.wantSettled[i])
				}
				if o.PaidAmount.GreaterThan(o.Value) {
					t.Errorf("%s paid %s exceeds value %s", o.ID, o.PaidAmount, o.Value)
				}
			}
		})
	}
}

func TestAllocate_SequenceOfPaymentsOnOneObligation(t *testing.T) {
	o := obligation("o1", "100", "0")
	flips := 0
	prevPaid := decimal.Zero

	for _, amount := range []string{"10", "25.5", "0.01", "60", "20", "5"} {
		wasPaid := o.IsPaid
		if wasPaid {
			// Targeted payments reject settled obligations before allocating.
			break
		}
		Allocate(d(amount), []*models.Obligation{o})

		if o.PaidAmount.LessThan(prevPaid) {
			t.Fatalf("paid_amount decreased from %s to %s", prevPaid, o.PaidAmount)
		}
		if o.PaidAmount.GreaterThan(o.Value) {
			t.Fatalf("paid_amount %s exceeds value %s", o.PaidAmount, o.Value)
		}
		if !wasPaid && o.IsPaid {
			flips++
			if !o.Value.Sub(o.PaidAmount).LessThan(Tolerance) {
				t.Errorf("flipped to paid with %s remaining", o.Remaining())
			}
		}
		prevPaid = o.PaidAmount
	}

	if flips != 1 {
		t.Errorf("is_paid flipped %d times, want 1", flips)
	}
}

func TestAllocate_NoCandidates(t *testing.T) {
	steps, leftover := Allocate(d("12.345"), nil)
	if len(steps) != 0 {
		t.Errorf("expected no steps, got %d", len(steps))
	}
	if !leftover.Equal(d("12.35")) {
		t.Errorf("leftover = %s, want 12.35", leftover)
	}
}
