package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/republica/pkg/api"
)

// FinanceServiceName is the fully-qualified name of the FinanceService.
const FinanceServiceName = "republica.v1.FinanceService"

// Procedure paths of the FinanceService.
const (
	FinanceServiceCreateExpenseProcedure         = "/republica.v1.FinanceService/CreateExpense"
	FinanceServiceListExpensesProcedure          = "/republica.v1.FinanceService/ListExpenses"
	FinanceServiceCreateTemplateProcedure        = "/republica.v1.FinanceService/CreateTemplate"
	FinanceServiceListTemplatesProcedure         = "/republica.v1.FinanceService/ListTemplates"
	FinanceServiceUpdateTemplateProcedure        = "/republica.v1.FinanceService/UpdateTemplate"
	FinanceServiceRunMonthlyBillingProcedure     = "/republica.v1.FinanceService/RunMonthlyBilling"
	FinanceServiceRecordPurchaseProcedure        = "/republica.v1.FinanceService/RecordPurchase"
	FinanceServiceRecordCashTransactionProcedure = "/republica.v1.FinanceService/RecordCashTransaction"
	FinanceServiceListCashTransactionsProcedure  = "/republica.v1.FinanceService/ListCashTransactions"
	FinanceServiceGetDashboardProcedure          = "/republica.v1.FinanceService/GetDashboard"
	FinanceServiceListDebtorsProcedure           = "/republica.v1.FinanceService/ListDebtors"
	FinanceServiceApplyPaymentProcedure          = "/republica.v1.FinanceService/ApplyPayment"
	FinanceServiceListFixedRentsProcedure        = "/republica.v1.FinanceService/ListFixedRents"
	FinanceServiceUpdateFixedRentsProcedure      = "/republica.v1.FinanceService/UpdateFixedRents"
	FinanceServiceListPaymentsProcedure          = "/republica.v1.FinanceService/ListPayments"
)

// FinanceServiceHandler is implemented by the server side of the FinanceService.
// Every procedure requires an authenticated caller.
type FinanceServiceHandler interface {
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	CreateTemplate(context.Context, *connect.Request[api.CreateTemplateRequest]) (*connect.Response[api.CreateTemplateResponse], error)
	ListTemplates(context.Context, *connect.Request[api.ListTemplatesRequest]) (*connect.Response[api.ListTemplatesResponse], error)
	UpdateTemplate(context.Context, *connect.Request[api.UpdateTemplateRequest]) (*connect.Response[api.UpdateTemplateResponse], error)
	RunMonthlyBilling(context.Context, *connect.Request[api.RunMonthlyBillingRequest]) (*connect.Response[api.RunMonthlyBillingResponse], error)
	RecordPurchase(context.Context, *connect.Request[api.RecordPurchaseRequest]) (*connect.Response[api.RecordPurchaseResponse], error)
	RecordCashTransaction(context.Context, *connect.Request[api.RecordCashTransactionRequest]) (*connect.Response[api.RecordCashTransactionResponse], error)
	ListCashTransactions(context.Context, *connect.Request[api.ListCashTransactionsRequest]) (*connect.Response[api.ListCashTransactionsResponse], error)
	GetDashboard(context.Context, *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error)
	ListDebtors(context.Context, *connect.Request[api.ListDebtorsRequest]) (*connect.Response[api.ListDebtorsResponse], error)
	ApplyPayment(context.Context, *connect.Request[api.ApplyPaymentRequest]) (*connect.Response[api.ApplyPaymentResponse], error)
	ListFixedRents(context.Context, *connect.Request[api.ListFixedRentsRequest]) (*connect.Response[api.ListFixedRentsResponse], error)
	UpdateFixedRents(context.Context, *connect.Request[api.UpdateFixedRentsRequest]) (*connect.Response[api.UpdateFixedRentsResponse], error)
	ListPayments(context.Context, *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error)
}

// NewFinanceServiceHandler builds an HTTP handler for every FinanceService procedure.
// It returns the path prefix to mount the handler on.
func NewFinanceServiceHandler(svc FinanceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
	mux := http.NewServeMux()
	mux.Handle(FinanceServiceCreateExpenseProcedure, connect.NewUnaryHandler(FinanceServiceCreateExpenseProcedure, svc.CreateExpense, opts...))
	mux.Handle(FinanceServiceListExpensesProcedure, connect.NewUnaryHandler(FinanceServiceListExpensesProcedure, svc.ListExpenses, opts...))
	mux.Handle(FinanceServiceCreateTemplateProcedure, connect.NewUnaryHandler(FinanceServiceCreateTemplateProcedure, svc.CreateTemplate, opts...))
	mux.Handle(FinanceServiceListTemplatesProcedure, connect.NewUnaryHandler(FinanceServiceListTemplatesProcedure, svc.ListTemplates, opts...))
	mux.Handle(FinanceServiceUpdateTemplateProcedure, connect.NewUnaryHandler(FinanceServiceUpdateTemplateProcedure, svc.UpdateTemplate, opts...))
	mux.Handle(FinanceServiceRunMonthlyBillingProcedure, connect.NewUnaryHandler(FinanceServiceRunMonthlyBillingProcedure, svc.RunMonthlyBilling, opts...))
	mux.Handle(FinanceServiceRecordPurchaseProcedure, connect.NewUnaryHandler(FinanceServiceRecordPurchaseProcedure, svc.RecordPurchase, opts...))
	mux.Handle(FinanceServiceRecordCashTransactionProcedure, connect.NewUnaryHandler(FinanceServiceRecordCashTransactionProcedure, svc.RecordCashTransaction, opts...))
	mux.Handle(FinanceServiceListCashTransactionsProcedure, connect.NewUnaryHandler(FinanceServiceListCashTransactionsProcedure, svc.ListCashTransactions, opts...))
	mux.Handle(FinanceServiceGetDashboardProcedure, connect.NewUnaryHandler(FinanceServiceGetDashboardProcedure, svc.GetDashboard, opts...))
	mux.Handle(FinanceServiceListDebtorsProcedure, connect.NewUnaryHandler(FinanceServiceListDebtorsProcedure, svc.ListDebtors, opts...))
	mux.Handle(FinanceServiceApplyPaymentProcedure, connect.NewUnaryHandler(FinanceServiceApplyPaymentProcedure, svc.ApplyPayment, opts...))
	mux.Handle(FinanceServiceListFixedRentsProcedure, connect.NewUnaryHandler(FinanceServiceListFixedRentsProcedure, svc.ListFixedRents, opts...))
	mux.Handle(FinanceServiceUpdateFixedRentsProcedure, connect.NewUnaryHandler(FinanceServiceUpdateFixedRentsProcedure, svc.UpdateFixedRents, opts...))
	mux.Handle(FinanceServiceListPaymentsProcedure, connect.NewUnaryHandler(FinanceServiceListPaymentsProcedure, svc.ListPayments, opts...))
	return "/" + FinanceServiceName + "/", mux
}

// FinanceServiceClient is a client for the FinanceService.
type FinanceServiceClient interface {
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	CreateTemplate(context.Context, *connect.Request[api.CreateTemplateRequest]) (*connect.Response[api.CreateTemplateResponse], error)
	ListTemplates(context.Context, *connect.Request[api.ListTemplatesRequest]) (*connect.Response[api.ListTemplatesResponse], error)
	UpdateTemplate(context.Context, *connect.Request[api.UpdateTemplateRequest]) (*connect.Response[api.UpdateTemplateResponse], error)
	RunMonthlyBilling(context.Context, *connect.Request[api.RunMonthlyBillingRequest]) (*connect.Response[api.RunMonthlyBillingResponse], error)
	RecordPurchase(context.Context, *connect.Request[api.RecordPurchaseRequest]) (*connect.Response[api.RecordPurchaseResponse], error)
	RecordCashTransaction(context.Context, *connect.Request[api.RecordCashTransactionRequest]) (*connect.Response[api.RecordCashTransactionResponse], error)
	ListCashTransactions(context.Context, *connect.Request[api.ListCashTransactionsRequest]) (*connect.Response[api.ListCashTransactionsResponse], error)
	GetDashboard(context.Context, *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error)
	ListDebtors(context.Context, *connect.Request[api.ListDebtorsRequest]) (*connect.Response[api.ListDebtorsResponse], error)
	ApplyPayment(context.Context, *connect.Request[api.ApplyPaymentRequest]) (*connect.Response[api.ApplyPaymentResponse], error)
	ListFixedRents(context.Context, *connect.Request[api.ListFixedRentsRequest]) (*connect.Response[api.ListFixedRentsResponse], error)
	UpdateFixedRents(context.Context, *connect.Request[api.UpdateFixedRentsRequest]) (*connect.Response[api.UpdateFixedRentsResponse], error)
	ListPayments(context.Context, *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error)
}

// NewFinanceServiceClient constructs a client for the FinanceService at baseURL
// (e.g. http://localhost:8080). Requests are JSON encoded.
func NewFinanceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) FinanceServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &financeServiceClient{
		createExpense:         connect.NewClient[api.CreateExpenseRequest, api.CreateExpenseResponse](httpClient, baseURL+FinanceServiceCreateExpenseProcedure, opts...),
		listExpenses:          connect.NewClient[api.ListExpensesRequest, api.ListExpensesResponse](httpClient, baseURL+FinanceServiceListExpensesProcedure, opts...),
		createTemplate:        connect.NewClient[api.CreateTemplateRequest, api.CreateTemplateResponse](httpClient, baseURL+FinanceServiceCreateTemplateProcedure, opts...),
		listTemplates:         connect.NewClient[api.ListTemplatesRequest, api.ListTemplatesResponse](httpClient, baseURL+FinanceServiceListTemplatesProcedure, opts...),
		updateTemplate:        connect.NewClient[api.UpdateTemplateRequest, api.UpdateTemplateResponse](httpClient, baseURL+FinanceServiceUpdateTemplateProcedure, opts...),
		runMonthlyBilling:     connect.NewClient[api.RunMonthlyBillingRequest, api.RunMonthlyBillingResponse](httpClient, baseURL+FinanceServiceRunMonthlyBillingProcedure, opts...),
		recordPurchase:        connect.NewClient[api.RecordPurchaseRequest, api.RecordPurchaseResponse](httpClient, baseURL+FinanceServiceRecordPurchaseProcedure, opts...),
		recordCashTransaction: connect.NewClient[api.RecordCashTransactionRequest, api.RecordCashTransactionResponse](httpClient, baseURL+FinanceServiceRecordCashTransactionProcedure, opts...),
		listCashTransactions:  connect.NewClient[api.ListCashTransactionsRequest, api.ListCashTransactionsResponse](httpClient, baseURL+FinanceServiceListCashTransactionsProcedure, opts...),
		getDashboard:          connect.NewClient[api.GetDashboardRequest, api.GetDashboardResponse](httpClient, baseURL+FinanceServiceGetDashboardProcedure, opts...),
		listDebtors:           connect.NewClient[api.ListDebtorsRequest, api.ListDebtorsResponse](httpClient, baseURL+FinanceServiceListDebtorsProcedure, opts...),
		applyPayment:          connect.NewClient[api.ApplyPaymentRequest, api.ApplyPaymentResponse](httpClient, baseURL+FinanceServiceApplyPaymentProcedure, opts...),
		listFixedRents:        connect.NewClient[api.ListFixedRentsRequest, api.ListFixedRentsResponse](httpClient, baseURL+FinanceServiceListFixedRentsProcedure, opts...),
		updateFixedRents:      connect.NewClient[api.UpdateFixedRentsRequest, api.UpdateFixedRentsResponse](httpClient, baseURL+FinanceServiceUpdateFixedRentsProcedure, opts...),
		listPayments:          connect.NewClient[api.ListPaymentsRequest, api.ListPaymentsResponse](httpClient, baseURL+FinanceServiceListPaymentsProcedure, opts...),
	}
}

type financeServiceClient struct {
	createExpense         *connect.Client[api.CreateExpenseRequest, api.CreateExpenseResponse]
	listExpenses          *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	createTemplate        *connect.Client[api.CreateTemplateRequest, api.CreateTemplateResponse]
	listTemplates         *connect.Client[api.ListTemplatesRequest, api.ListTemplatesResponse]
	updateTemplate        *connect.Client[api.UpdateTemplateRequest, api.UpdateTemplateResponse]
	runMonthlyBilling     *connect.Client[api.RunMonthlyBillingRequest, api.RunMonthlyBillingResponse]
	recordPurchase        *connect.Client[api.RecordPurchaseRequest, api.RecordPurchaseResponse]
	recordCashTransaction *connect.Client[api.RecordCashTransactionRequest, api.RecordCashTransactionResponse]
	listCashTransactions  *connect.Client[api.ListCashTransactionsRequest, api.ListCashTransactionsResponse]
	getDashboard          *connect.Client[api.GetDashboardRequest, api.GetDashboardResponse]
	listDebtors           *connect.Client[api.ListDebtorsRequest, api.ListDebtorsResponse]
	applyPayment          *connect.Client[api.ApplyPaymentRequest, api.ApplyPaymentResponse]
	listFixedRents        *connect.Client[api.ListFixedRentsRequest, api.ListFixedRentsResponse]
	updateFixedRents      *connect.Client[api.UpdateFixedRentsRequest, api.UpdateFixedRentsResponse]
	listPayments          *connect.Client[api.ListPaymentsRequest, api.ListPaymentsResponse]
}

func (c *financeServiceClient) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *financeServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *financeServiceClient) CreateTemplate(ctx context.Context, req *connect.Request[api.CreateTemplateRequest]) (*connect.Response[api.CreateTemplateResponse], error) {
	return c.createTemplate.CallUnary(ctx, req)
}

func (c *financeServiceClient) ListTemplates(ctx context.Context, req *connect.Request[api.ListTemplatesRequest]) (*connect.Response[api.ListTemplatesResponse], error) {
	return c.listTemplates.CallUnary(ctx, req)
}

func (c *financeServiceClient) UpdateTemplate(ctx context.Context, req *connect.Request[api.UpdateTemplateRequest]) (*connect.Response[api.UpdateTemplateResponse], error) {
	return c.updateTemplate.CallUnary(ctx, req)
}

func (c *financeServiceClient) RunMonthlyBilling(ctx context.Context, req *connect.Request[api.RunMonthlyBillingRequest]) (*connect.Response[api.RunMonthlyBillingResponse], error) {
	return c.runMonthlyBilling.CallUnary(ctx, req)
}

func (c *financeServiceClient) RecordPurchase(ctx context.Context, req *connect.Request[api.RecordPurchaseRequest]) (*connect.Response[api.RecordPurchaseResponse], error) {
	return c.recordPurchase.CallUnary(ctx, req)
}

func (c *financeServiceClient) RecordCashTransaction(ctx context.Context, req *connect.Request[api.RecordCashTransactionRequest]) (*connect.Response[api.RecordCashTransactionResponse], error) {
	return c.recordCashTransaction.CallUnary(ctx, req)
}

func (c *financeServiceClient) ListCashTransactions(ctx context.Context, req *connect.Request[api.ListCashTransactionsRequest]) (*connect.Response[api.ListCashTransactionsResponse], error) {
	return c.listCashTransactions.CallUnary(ctx, req)
}

func (c *financeServiceClient) GetDashboard(ctx context.Context, req *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	return c.getDashboard.CallUnary(ctx, req)
}

func (c *financeServiceClient) ListDebtors(ctx context.Context, req *connect.Request[api.ListDebtorsRequest]) (*connect.Response[api.ListDebtorsResponse], error) {
	return c.listDebtors.CallUnary(ctx, req)
}

func (c *financeServiceClient) ApplyPayment(ctx context.Context, req *connect.Request[api.ApplyPaymentRequest]) (*connect.Response[api.ApplyPaymentResponse], error) {
	return c.applyPayment.CallUnary(ctx, req)
}

func (c *financeServiceClient) ListFixedRents(ctx context.Context, req *connect.Request[api.ListFixedRentsRequest]) (*connect.Response[api.ListFixedRentsResponse], error) {
	return c.listFixedRents.CallUnary(ctx, req)
}

func (c *financeServiceClient) UpdateFixedRents(ctx context.Context, req *connect.Request[api.UpdateFixedRentsRequest]) (*connect.Response[api.UpdateFixedRentsResponse], error) {
	return c.updateFixedRents.CallUnary(ctx, req)
}

func (c *financeServiceClient) ListPayments(ctx context.Context, req *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error) {
	return c.listPayments.CallUnary(ctx, req)
}
