package calculator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/republica/internal/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sumShares(shares []models.Share) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s.Value)
	}
	return sum
}

func TestSplitEqually(t *testing.T) {
	tests := []struct {
		name         string
		total        decimal.Decimal
		members      []string
		wantErr      error
		validateFunc func(t *testing.T, shares []models.Share)
	}{
		{
			name:    "two members split evenly",
			total:   d("100"),
			members: []string{"alice", "bob"},
			validateFunc: func(t *testing.T, shares []models.Share) {
				for _, s := range shares {
					if !s.Value.Equal(d("50")) {
						t.Errorf("%s share = %s, want 50", s.MemberID, s.Value)
					}
				}
			},
		},
		{
			name:    "leftover cents go to the first members",
			total:   d("100"),
			members: []string{"alice", "bob", "charlie"},
			validateFunc: func(t *testing.T, shares []models.Share) {
				// 10000 cents / 3 = 3333 r 1
				want := []string{"33.34", "33.33", "33.33"}
				for i, s := range shares {
					if !s.Value.Equal(d(want[i])) {
						t.Errorf("share %d = %s, want %s", i, s.Value, want[i])
					}
				}
			},
		},
		{
			name:    "single member takes everything",
			total:   d("42.10"),
			members: []string{"alice"},
			validateFunc: func(t *testing.T, shares []models.Share) {
				if len(shares) != 1 || !shares[0].Value.Equal(d("42.10")) {
					t.Errorf("shares = %v, want one share of 42.10", shares)
				}
			},
		},
		{
			name:    "zero members should error",
			total:   d("100"),
			members: []string{},
			wantErr: ErrNoParticipants,
		},
		{
			name:    "zero total should error",
			total:   decimal.Zero,
			members: []string{"alice"},
			wantErr: ErrNonPositiveTotal,
		},
		{
			name:    "sub-cent total should error",
			total:   d("10.005"),
			members: []string{"alice"},
			wantErr: ErrSubCentAmount,
		},
		{
			name:    "total past int64 cents should error",
			total:   d("184467440737095516.17"),
			members: []string{"alice", "bob"},
			wantErr: ErrAmountTooLarge,
		},
		{
			name:    "maximum total is split exactly",
			total:   MaxAmount,
			members: []string{"alice", "bob", "charlie"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := SplitEqually(tt.total, tt.members)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SplitEqually() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if len(shares) != len(tt.members) {
				t.Fatalf("got %d shares, want %d", len(shares), len(tt.members))
			}
			if got := sumShares(shares); !got.Equal(tt.total) {
				t.Errorf("shares sum to %s, want %s", got, tt.total)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, shares)
			}
		})
	}
}

func TestSplitEqually_SumAlwaysMatchesTotal(t *testing.T) {
	members := []string{"a", "b", "c", "d", "e", "f", "g"}
	for cents := int64(1); cents <= 2500; cents += 37 {
		total := decimal.New(cents, -2)
		for n := 1; n <= len(members); n++ {
			shares, err := SplitEqually(total, members[:n])
			if err != nil {
				t.Fatalf("SplitEqually(%s, %d) failed: %v", total, n, err)
			}
			if got := sumShares(shares); !got.Equal(total) {
				t.Fatalf("SplitEqually(%s, %d) sums to %s", total, n, got)
			}
		}
	}
}

func TestValidateManualSplit(t *testing.T) {
	tests := []struct {
		name    string
		total   decimal.Decimal
		shares  []models.Share
		wantErr error
	}{
		{
			name:  "shares matching total",
			total: d("90"),
			shares: []models.Share{
				{MemberID: "alice", Value: d("60")},
				{MemberID: "bob", Value: d("30")},
			},
		},
		{
			name:  "zero share is allowed",
			total: d("90"),
			shares: []models.Share{
				{MemberID: "alice", Value: d("90")},
				{MemberID: "bob", Value: decimal.Zero},
			},
		},
		{
			name:  "sum below total",
			total: d("100"),
			shares: []models.Share{
				{MemberID: "alice", Value: d("60")},
				{MemberID: "bob", Value: d("30")},
			},
			wantErr: ErrSplitSumMismatch,
		},
		{
			name:  "duplicate member",
			total: d("100"),
			shares: []models.Share{
				{MemberID: "alice", Value: d("50")},
				{MemberID: "alice", Value: d("50")},
			},
			wantErr: ErrDuplicateShare,
		},
		{
			name:  "negative share",
			total: d("10"),
			shares: []models.Share{
				{MemberID: "alice", Value: d("20")},
				{MemberID: "bob", Value: d("-10")},
			},
			wantErr: ErrNegativeShare,
		},
		{
			name:    "no shares",
			total:   d("10"),
			wantErr: ErrEmptyManualSplits,
		},
		{
			name:    "non-positive total",
			total:   d("-1"),
			shares:  []models.Share{{MemberID: "alice", Value: d("-1")}},
			wantErr: ErrNonPositiveTotal,
		},
		{
			name:    "total above maximum",
			total:   MaxAmount.Add(d("0.01")),
			shares:  []models.Share{{MemberID: "alice", Value: MaxAmount.Add(d("0.01"))}},
			wantErr: ErrAmountTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateManualSplit(tt.total, tt.shares)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateManualSplit() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
