package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/republica/internal/models"
)

// Dashboard is a point-in-time financial snapshot for one member.
type Dashboard struct {
	FixedRent          decimal.Decimal
	VariableDebts      decimal.Decimal // Sum of remaining value over unpaid obligations
	MyCredits          decimal.Decimal // Sum of unsettled purchases
	CashboxBalance     decimal.Decimal // Group cash in minus cash out
	TotalGroupExpenses decimal.Decimal // Lifetime sum of the group's expenses
	TotalToPay         decimal.Decimal // FixedRent + VariableDebts - MyCredits, rounded
	UserBalance        decimal.Decimal // Positive = group owes the member
}

// NewDashboard derives the member totals from the aggregated sums.
func NewDashboard(fixedRent, variableDebts, myCredits, cashbox, totalExpenses decimal.Decimal) Dashboard {
	return Dashboard{
		FixedRent:          fixedRent,
		VariableDebts:      variableDebts,
		MyCredits:          myCredits,
		CashboxBalance:     cashbox,
		TotalGroupExpenses: totalExpenses,
		TotalToPay:         RoundCents(fixedRent.Add(variableDebts).Sub(myCredits)),
		UserBalance:        myCredits.Sub(variableDebts),
	}
}

// DebtorSummary lists the open obligations of one member.
type DebtorSummary struct {
	MemberID     string
	MemberName   string
	TotalOwed    decimal.Decimal
	PendingCount int
	Pending      []*models.Obligation
}

// SummarizeDebtors groups open obligations by member.
//
// Members are reported in the given order; members without unpaid obligations
// are omitted. Each member's obligations are ordered oldest first.
func SummarizeDebtors(members []*models.Member, open []*models.Obligation) []DebtorSummary {
	byMember := make(map[string][]*models.Obligation)
	for _, o := range open {
		if o.IsPaid {
			continue
		}
		byMember[o.MemberID] = append(byMember[o.MemberID], o)
	}

	var summaries []DebtorSummary
	for _, m := range members {
		pending := byMember[m.ID]
		if len(pending) == 0 {
			continue
		}
		sort.Slice(pending, func(i, j int) bool { return pending[i].Seq < pending[j].Seq })

		total := decimal.Zero
		for _, o := range pending {
			total = total.Add(o.Remaining())
		}

		summaries = append(summaries, DebtorSummary{
			MemberID:     m.ID,
			MemberName:   m.Name,
			TotalOwed:    total,
			PendingCount: len(pending),
			Pending:      pending,
		})
	}
	return summaries
}
