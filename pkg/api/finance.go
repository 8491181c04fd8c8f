package api

import "github.com/shopspring/decimal"

type Share struct {
	MemberID string          `json:"member_id"`
	Value    decimal.Decimal `json:"value"`
}

type Expense struct {
	ID            string          `json:"id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       string          `json:"due_date"`
	Category      string          `json:"category"`
	SplitPolicy   string          `json:"split_policy"`
	TemplateID    string          `json:"template_id,omitempty"`
	BillingPeriod string          `json:"billing_period,omitempty"`
	CreatedAt     int64           `json:"created_at"`
}

type Obligation struct {
	ID                 string          `json:"id"`
	MemberID           string          `json:"member_id"`
	ExpenseID          string          `json:"expense_id"`
	ExpenseDescription string          `json:"expense_description"`
	Value              decimal.Decimal `json:"value"`
	PaidAmount         decimal.Decimal `json:"paid_amount"`
	IsPaid             bool            `json:"is_paid"`
}

type CreateExpenseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"due_date"`
	Category    string          `json:"category"`
	SplitPolicy string          `json:"split_policy"`
	Shares      []Share         `json:"shares,omitempty"`
}

type CreateExpenseResponse struct {
	Expense     *Expense      `json:"expense"`
	Obligations []*Obligation `json:"obligations"`
}

type ListExpensesRequest struct{}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type Template struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	BaseValue   decimal.Decimal `json:"base_value"`
	Category    string          `json:"category"`
}

type CreateTemplateRequest struct {
	Description string          `json:"description"`
	BaseValue   decimal.Decimal `json:"base_value"`
	Category    string          `json:"category"`
}

type CreateTemplateResponse struct {
	Template *Template `json:"template"`
}

type ListTemplatesRequest struct{}

type ListTemplatesResponse struct {
	Templates []*Template `json:"templates"`
}

type UpdateTemplateRequest struct {
	TemplateID  string          `json:"template_id"`
	Description string          `json:"description"`
	BaseValue   decimal.Decimal `json:"base_value"`
	Category    string          `json:"category"`
}

type UpdateTemplateResponse struct {
	Template *Template `json:"template"`
}

type RunMonthlyBillingRequest struct {
	// Period is an optional YYYY-MM month; empty bills the current month.
	Period         string `json:"period,omitempty"`
	AllowDuplicate bool   `json:"allow_duplicate,omitempty"`
}

type RunMonthlyBillingResponse struct {
	Period     string   `json:"period"`
	Generated  int      `json:"generated"`
	Skipped    int      `json:"skipped"`
	ExpenseIDs []string `json:"expense_ids"`
}

type Purchase struct {
	ID          string          `json:"id"`
	MemberID    string          `json:"member_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	IsSettled   bool            `json:"is_settled"`
}

type RecordPurchaseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date,omitempty"`
}

type RecordPurchaseResponse struct {
	Purchase *Purchase `json:"purchase"`
}

type CashTransaction struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Direction   string          `json:"direction"`
	Date        string          `json:"date"`
}

type RecordCashTransactionRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Direction   string          `json:"direction"`
	Date        string          `json:"date,omitempty"`
}

type RecordCashTransactionResponse struct {
	Transaction *CashTransaction `json:"transaction"`
}

type ListCashTransactionsRequest struct{}

type ListCashTransactionsResponse struct {
	Transactions []*CashTransaction `json:"transactions"`
}

type GetDashboardRequest struct{}

type GetDashboardResponse struct {
	FixedRent          decimal.Decimal `json:"fixed_rent"`
	VariableDebts      decimal.Decimal `json:"variable_debts"`
	MyCredits          decimal.Decimal `json:"my_credits"`
	CashboxBalance     decimal.Decimal `json:"cashbox_balance"`
	TotalGroupExpenses decimal.Decimal `json:"total_group_expenses"`
	TotalToPay         decimal.Decimal `json:"total_to_pay"`
	UserBalance        decimal.Decimal `json:"user_balance"`
}

type Debtor struct {
	MemberID     string          `json:"member_id"`
	MemberName   string          `json:"member_name"`
	TotalOwed    decimal.Decimal `json:"total_owed"`
	PendingCount int             `json:"pending_count"`
	Pending      []*Obligation   `json:"pending"`
}

type ListDebtorsRequest struct{}

type ListDebtorsResponse struct {
	Debtors []*Debtor `json:"debtors"`
}

type ApplyPaymentRequest struct {
	ObligationID     string          `json:"obligation_id,omitempty"`
	MemberID         string          `json:"member_id,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	DepositRemainder bool            `json:"deposit_remainder,omitempty"`
}

type AppliedPayment struct {
	ObligationID       string          `json:"obligation_id"`
	MemberID           string          `json:"member_id"`
	ExpenseDescription string          `json:"expense_description"`
	Applied            decimal.Decimal `json:"applied"`
	PaidAmount         decimal.Decimal `json:"paid_amount"`
	Remaining          decimal.Decimal `json:"remaining"`
	IsPaid             bool            `json:"is_paid"`
}

type ApplyPaymentResponse struct {
	Applied  []*AppliedPayment `json:"applied"`
	Leftover decimal.Decimal   `json:"leftover"`
	Deposit  *CashTransaction  `json:"deposit,omitempty"`
}

type FixedRent struct {
	MemberID   string          `json:"member_id"`
	MemberName string          `json:"member_name,omitempty"`
	FixedRent  decimal.Decimal `json:"fixed_rent"`
}

type ListFixedRentsRequest struct{}

type ListFixedRentsResponse struct {
	Rents []*FixedRent `json:"rents"`
}

type UpdateFixedRentsRequest struct {
	Rents []*FixedRent `json:"rents"`
}

type UpdateFixedRentsResponse struct{}

type Payment struct {
	ID           string          `json:"id"`
	ObligationID string          `json:"obligation_id"`
	MemberID     string          `json:"member_id"`
	Amount       decimal.Decimal `json:"amount"`
	ConfirmedBy  string          `json:"confirmed_by"`
	PaidAt       int64           `json:"paid_at"`
}

type ListPaymentsRequest struct{}

type ListPaymentsResponse struct {
	Payments []*Payment `json:"payments"`
}
