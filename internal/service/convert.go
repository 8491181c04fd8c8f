package service

import (
	"fmt"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/republica/internal/calculator"
	"github.com/mmynk/republica/internal/finance"
	"github.com/mmynk/republica/internal/models"
	"github.com/mmynk/republica/pkg/api"
)

// parseDate parses an optional wire date. Empty yields the zero time.
func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(api.DateLayout, value)
	if err != nil {
		return time.Time{}, connect.NewError(connect.CodeInvalidArgument,
			fmt.Errorf("%s must be YYYY-MM-DD, got %q", field, value))
	}
	return t, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(api.DateLayout)
}

func expenseToAPI(e *models.Expense) *api.Expense {
	return &api.Expense{
		ID:            e.ID,
		Description:   e.Description,
		Amount:        e.Amount,
		DueDate:       formatDate(e.DueDate),
		Category:      e.Category,
		SplitPolicy:   string(e.SplitPolicy),
		TemplateID:    e.TemplateID,
		BillingPeriod: e.BillingPeriod,
		CreatedAt:     e.CreatedAt,
	}
}

func obligationToAPI(o *models.Obligation) *api.Obligation {
	return &api.Obligation{
		ID:                 o.ID,
		MemberID:           o.MemberID,
		ExpenseID:          o.ExpenseID,
		ExpenseDescription: o.ExpenseDescription,
		Value:              o.Value,
		PaidAmount:         o.PaidAmount,
		IsPaid:             o.IsPaid,
	}
}

func obligationsToAPI(obligations []*models.Obligation) []*api.Obligation {
	out := make([]*api.Obligation, len(obligations))
	for i, o := range obligations {
		out[i] = obligationToAPI(o)
	}
	return out
}

func templateToAPI(t *models.ExpenseTemplate) *api.Template {
	return &api.Template{
		ID:          t.ID,
		Description: t.Description,
		BaseValue:   t.BaseValue,
		Category:    t.Category,
	}
}

func purchaseToAPI(p *models.Purchase) *api.Purchase {
	return &api.Purchase{
		ID:          p.ID,
		MemberID:    p.MemberID,
		Description: p.Description,
		Amount:      p.Amount,
		Date:        formatDate(p.Date),
		IsSettled:   p.IsSettled,
	}
}

func cashToAPI(t *models.CashTransaction) *api.CashTransaction {
	if t == nil {
		return nil
	}
	return &api.CashTransaction{
		ID:          t.ID,
		Description: t.Description,
		Amount:      t.Amount,
		Direction:   string(t.Direction),
		Date:        formatDate(t.Date),
	}
}

func dashboardToAPI(d *calculator.Dashboard) *api.GetDashboardResponse {
	return &api.GetDashboardResponse{
		FixedRent:          d.FixedRent,
		VariableDebts:      d.VariableDebts,
		MyCredits:          d.MyCredits,
		CashboxBalance:     d.CashboxBalance,
		TotalGroupExpenses: d.TotalGroupExpenses,
		TotalToPay:         d.TotalToPay,
		UserBalance:        d.UserBalance,
	}
}

func debtorToAPI(d calculator.DebtorSummary) *api.Debtor {
	return &api.Debtor{
		MemberID:     d.MemberID,
		MemberName:   d.MemberName,
		TotalOwed:    d.TotalOwed,
		PendingCount: d.PendingCount,
		Pending:      obligationsToAPI(d.Pending),
	}
}

func paymentResultToAPI(r *finance.PaymentResult) *api.ApplyPaymentResponse {
	resp := &api.ApplyPaymentResponse{
		Applied:  make([]*api.AppliedPayment, len(r.Applied)),
		Leftover: r.Leftover,
		Deposit:  cashToAPI(r.Deposit),
	}
	for i, a := range r.Applied {
		resp.Applied[i] = &api.AppliedPayment{
			ObligationID:       a.ObligationID,
			MemberID:           a.MemberID,
			ExpenseDescription: a.ExpenseDescription,
			Applied:            a.Applied,
			PaidAmount:         a.PaidAmount,
			Remaining:          a.Remaining,
			IsPaid:             a.IsPaid,
		}
	}
	return resp
}

func receiptToAPI(r *models.PaymentReceipt) *api.Payment {
	return &api.Payment{
		ID:           r.ID,
		ObligationID: r.ObligationID,
		MemberID:     r.MemberID,
		Amount:       r.Amount,
		ConfirmedBy:  r.ConfirmedBy,
		PaidAt:       r.PaidAt,
	}
}

func memberToAPI(m *models.Member) *api.Member {
	return &api.Member{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		GroupID:   m.GroupID,
		Role:      string(m.Role),
		FixedRent: m.FixedRent,
	}
}
