package service

import (
	"context"
	"fmt"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/republica/internal/finance"
	"github.com/mmynk/republica/internal/middleware"
	"github.com/mmynk/republica/internal/models"
	"github.com/mmynk/republica/pkg/api"
	"github.com/mmynk/republica/pkg/api/apiconnect"
)

var _ apiconnect.FinanceServiceHandler = (*FinanceService)(nil)

// FinanceService implements the Connect FinanceService on top of the ledger engine.
// The caller's identity is put in the context by middleware.RequireAuth.
type FinanceService struct {
	ledger *finance.Service
}

// NewFinanceService creates a new FinanceService.
func NewFinanceService(ledger *finance.Service) *FinanceService {
	return &FinanceService{ledger: ledger}
}

// CreateExpense handles expense creation and splitting.
func (s *FinanceService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	dueDate, err := parseDate("due_date", req.Msg.DueDate)
	if err != nil {
		return nil, err
	}

	shares := make([]models.Share, len(req.Msg.Shares))
	for i, share := range req.Msg.Shares {
		shares[i] = models.Share{MemberID: share.MemberID, Value: share.Value}
	}

	res, err := s.ledger.CreateExpense(ctx, middleware.GetIdentity(ctx), finance.ExpenseInput{
		Description: req.Msg.Description,
		Amount:      req.Msg.Amount,
		DueDate:     dueDate,
		Category:    req.Msg.Category,
		SplitPolicy: models.SplitPolicy(req.Msg.SplitPolicy),
		Shares:      shares,
	})
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}

	return connect.NewResponse(&api.CreateExpenseResponse{
		Expense:     expenseToAPI(res.Expense),
		Obligations: obligationsToAPI(res.Obligations),
	}), nil
}

// ListExpenses returns the caller's group expenses.
func (s *FinanceService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	expenses, err := s.ledger.ListExpenses(ctx, middleware.GetIdentity(ctx))
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}

	resp := &api.ListExpensesResponse{Expenses: make([]*api.Expense, len(expenses))}
	for i, e := range expenses {
		resp.Expenses[i] = expenseToAPI(e)
	}
	return connect.NewResponse(resp), nil
}

// CreateTemplate adds a recurring expense template.
func (s *FinanceService) CreateTemplate(ctx context.Context, req *connect.Request[api.CreateTemplateRequest]) (*connect.Response[api.CreateTemplateResponse], error) {
	t, err := s.ledger.CreateTemplate(ctx, middleware.GetIdentity(ctx), finance.TemplateInput{
		Description: req.Msg.Description,
		BaseValue:   req.Msg.BaseValue,
		Category:    req.Msg.Category,
	})
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}
	return connect.NewResponse(&api.CreateTemplateResponse{Template: templateToAPI(t)}), nil
}

// ListTemplates returns the group's templates.
func (s *FinanceService) ListTemplates(ctx context.Context, req *connect.Request[api.ListTemplatesRequest]) (*connect.Response[api.ListTemplatesResponse], error) {
	templates, err := s.ledger.ListTemplates(ctx, middleware.GetIdentity(ctx))
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}

	resp := &api.ListTemplatesResponse{Templates: make([]*api.Template, len(templates))}
	for i, t := range templates {
		resp.Templates[i] = templateToAPI(t)
	}
	return connect.NewResponse(resp), nil
}

// UpdateTemplate overwrites a template.
func (s *FinanceService) UpdateTemplate(ctx context.Context, req *connect.Request[api.UpdateTemplateRequest]) (*connect.Response[api.UpdateTemplateResponse], error) {
	t, err := s.ledger.UpdateTemplate(ctx, middleware.GetIdentity(ctx), req.Msg.TemplateID, finance.TemplateInput{
		Description: req.Msg.Description,
		BaseValue:   req.Msg.BaseValue,
		Category:    req.Msg.Category,
	})
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}
	return connect.NewResponse(&api.UpdateTemplateResponse{Template: templateToAPI(t)}), nil
}

// RunMonthlyBilling expands the group's templates for a month.
func (s *FinanceService) RunMonthlyBilling(ctx context.Context, req *connect.Request[api.RunMonthlyBillingRequest]) (*connect.Response[api.RunMonthlyBillingResponse], error) {
	res, err := s.ledger.RunMonthlyBilling(ctx, middleware.GetIdentity(ctx), finance.BillingOptions{
		Period:         req.Msg.Period,
		AllowDuplicate: req.Msg.AllowDuplicate,
	})
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}

	return connect.NewResponse(&api.RunMonthlyBillingResponse{
		Period:     res.Period,
		Generated:  res.Generated,
		Skipped:    res.Skipped,
		ExpenseIDs: res.ExpenseIDs,
	}), nil
}

// RecordPurchase stores a purchase made by the caller.
func (s *FinanceService) RecordPurchase(ctx context.Context, req *connect.Request[api.RecordPurchaseRequest]) (*connect.Response[api.RecordPurchaseResponse], error) {
	date, err := parseDate("date", req.Msg.Date)
	if err != nil {
		return nil, err
	}

	p, err := s.ledger.RecordPurchase(ctx, middleware.GetIdentity(ctx), finance.PurchaseInput{
		Description: req.Msg.Description,
		Amount:      req.Msg.Amount,
		Date:        date,
	})
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}
	return connect.NewResponse(&api.RecordPurchaseResponse{Purchase: purchaseToAPI(p)}), nil
}

// RecordCashTransaction appends a cash-box movement.
func (s *FinanceService) RecordCashTransaction(ctx context.Context, req *connect.Request[api.RecordCashTransactionRequest]) (*connect.Response[api.RecordCashTransactionResponse], error) {
	date, err := parseDate("date", req.Msg.Date)
	if err != nil {
		return nil, err
	}

	txn, err := s.ledger.RecordCashTransaction(ctx, middleware.GetIdentity(ctx), finance.CashInput{
		Description: req.Msg.Description,
		Amount:      req.Msg.Amount,
		Direction:   models.CashDirection(req.Msg.Direction),
		Date:        date,
	})
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}
	return connect.NewResponse(&api.RecordCashTransactionResponse{Transaction: cashToAPI(txn)}), nil
}

// ListCashTransactions returns the group's cash-box movements.
func (s *FinanceService) ListCashTransactions(ctx context.Context, req *connect.Request[api.ListCashTransactionsRequest]) (*connect.Response[api.ListCashTransactionsResponse], error) {
	txns, err := s.ledger.ListCashTransactions(ctx, middleware.GetIdentity(ctx))
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}

	resp := &api.ListCashTransactionsResponse{Transactions: make([]*api.CashTransaction, len(txns))}
	for i, t := range txns {
		resp.Transactions[i] = cashToAPI(t)
	}
	return connect.NewResponse(resp), nil
}

// GetDashboard returns the caller's financial snapshot.
func (s *FinanceService) GetDashboard(ctx context.Context, req *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	dashboard, err := s.ledger.GetDashboard(ctx, middleware.GetIdentity(ctx))
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}
	return connect.NewResponse(dashboardToAPI(dashboard)), nil
}

// ListDebtors returns the members with open obligations.
func (s *FinanceService) ListDebtors(ctx context.Context, req *connect.Request[api.ListDebtorsRequest]) (*connect.Response[api.ListDebtorsResponse], error) {
	debtors, err := s.ledger.ListDebtors(ctx, middleware.GetIdentity(ctx))
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}

	resp := &api.ListDebtorsResponse{Debtors: make([]*api.Debtor, len(debtors))}
	for i, d := range debtors {
		resp.Debtors[i] = debtorToAPI(d)
	}
	return connect.NewResponse(resp), nil
}

// ApplyPayment allocates a payment against one obligation or a member's open debt.
func (s *FinanceService) ApplyPayment(ctx context.Context, req *connect.Request[api.ApplyPaymentRequest]) (*connect.Response[api.ApplyPaymentResponse], error) {
	res, err := s.ledger.ApplyPayment(ctx, middleware.GetIdentity(ctx), finance.PaymentInput{
		ObligationID:     req.Msg.ObligationID,
		MemberID:         req.Msg.MemberID,
		Amount:           req.Msg.Amount,
		DepositRemainder: req.Msg.DepositRemainder,
	})
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}
	return connect.NewResponse(paymentResultToAPI(res)), nil
}

// ListFixedRents returns each member's fixed rent.
func (s *FinanceService) ListFixedRents(ctx context.Context, req *connect.Request[api.ListFixedRentsRequest]) (*connect.Response[api.ListFixedRentsResponse], error) {
	members, err := s.ledger.ListFixedRents(ctx, middleware.GetIdentity(ctx))
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}

	resp := &api.ListFixedRentsResponse{Rents: make([]*api.FixedRent, len(members))}
	for i, m := range members {
		resp.Rents[i] = &api.FixedRent{MemberID: m.ID, MemberName: m.Name, FixedRent: m.FixedRent}
	}
	return connect.NewResponse(resp), nil
}

// UpdateFixedRents sets several fixed rents atomically.
func (s *FinanceService) UpdateFixedRents(ctx context.Context, req *connect.Request[api.UpdateFixedRentsRequest]) (*connect.Response[api.UpdateFixedRentsResponse], error) {
	rents := make(map[string]decimal.Decimal, len(req.Msg.Rents))
	for _, r := range req.Msg.Rents {
		if r == nil {
			continue
		}
		if _, dup := rents[r.MemberID]; dup {
			return nil, connect.NewError(connect.CodeInvalidArgument,
				fmt.Errorf("member %s appears more than once", r.MemberID))
		}
		rents[r.MemberID] = r.FixedRent
	}

	if err := s.ledger.UpdateFixedRents(ctx, middleware.GetIdentity(ctx), rents); err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}
	return connect.NewResponse(&api.UpdateFixedRentsResponse{}), nil
}

// ListPayments returns the payment history visible to the caller.
func (s *FinanceService) ListPayments(ctx context.Context, req *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error) {
	receipts, err := s.ledger.ListPayments(ctx, middleware.GetIdentity(ctx))
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}

	resp := &api.ListPaymentsResponse{Payments: make([]*api.Payment, len(receipts))}
	for i, r := range receipts {
		resp.Payments[i] = receiptToAPI(r)
	}
	return connect.NewResponse(resp), nil
}
