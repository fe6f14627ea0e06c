package dto

import (
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines the data needed to record an expense.
type CreateExpenseRequest struct {
	Reference        string          `json:"reference" binding:"max=50"`
	Description      string          `json:"description" binding:"required,max=1000"`
	ExpenseAccountID string          `json:"expenseAccountID" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"required,decimal_positive"`
	Charges          decimal.Decimal `json:"charges" binding:"decimal_nonneg"`
	CurrencyCode     string          `json:"currencyCode" binding:"required,len=3,uppercase"`
	ExpenseDate      time.Time       `json:"expenseDate" binding:"required"`
}

// ExpenseResponse defines the data returned for an expense, including its derived status.
type ExpenseResponse struct {
	ExpenseID        string                `json:"expenseID"`
	Reference        string                `json:"reference"`
	Description      string                `json:"description"`
	ExpenseAccountID string                `json:"expenseAccountID"`
	Amount           decimal.Decimal       `json:"amount"`
	Charges          decimal.Decimal       `json:"charges"`
	CurrencyCode     string                `json:"currencyCode"`
	AmountBase       *decimal.Decimal      `json:"amountBase,omitempty"`
	ExpenseDate      time.Time             `json:"expenseDate"`
	Summary          domain.PaymentSummary `json:"summary"`
	CreatedAt        time.Time             `json:"createdAt"`
	CreatedBy        string                `json:"createdBy"`
}

// ToExpenseResponse converts an expense and its summary to the response DTO.
func ToExpenseResponse(e *domain.Expense, summary domain.PaymentSummary) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:        e.ExpenseID,
		Reference:        e.Reference,
		Description:      e.Description,
		ExpenseAccountID: e.ExpenseAccountID,
		Amount:           e.Amount,
		Charges:          e.Charges,
		CurrencyCode:     e.CurrencyCode,
		AmountBase:       e.AmountBase,
		ExpenseDate:      e.ExpenseDate,
		Summary:          summary,
		CreatedAt:        e.CreatedAt,
		CreatedBy:        e.CreatedBy,
	}
}

// RecordPaymentRequest defines the data needed to pay (part of) an expense.
type RecordPaymentRequest struct {
	PaymentDate      time.Time             `json:"paymentDate" binding:"required"`
	PaymentAccountID string                `json:"paymentAccountID" binding:"required"`
	Amount           decimal.Decimal       `json:"amount" binding:"required,decimal_positive"`
	PaymentMethod    domain.PaymentMethod  `json:"paymentMethod" binding:"required,oneof=cash bank_transfer cheque mobile_money card"`
	PaymentReference string                `json:"paymentReference" binding:"max=100"`
	Status           domain.ApprovalStatus `json:"status" binding:"omitempty,oneof=pending approved rejected"` // defaults to approved
}

// UpdatePaymentRequest defines the editable fields of a payment.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdatePaymentRequest struct {
	PaymentDate      *time.Time             `json:"paymentDate"`
	PaymentAccountID *string                `json:"paymentAccountID"`
	Amount           *decimal.Decimal       `json:"amount" binding:"omitempty,decimal_positive"`
	PaymentMethod    *domain.PaymentMethod  `json:"paymentMethod" binding:"omitempty,oneof=cash bank_transfer cheque mobile_money card"`
	PaymentReference *string                `json:"paymentReference" binding:"omitempty,max=100"`
	Status           *domain.ApprovalStatus `json:"status" binding:"omitempty,oneof=pending approved rejected"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID        string                `json:"paymentID"`
	ExpenseID        string                `json:"expenseID"`
	PaymentDate      time.Time             `json:"paymentDate"`
	PaymentAccountID string                `json:"paymentAccountID"`
	Amount           decimal.Decimal       `json:"amount"`
	PaymentMethod    domain.PaymentMethod  `json:"paymentMethod"`
	PaymentReference string                `json:"paymentReference"`
	VoucherNumber    string                `json:"voucherNumber"`
	Status           domain.ApprovalStatus `json:"status"`
	CreatedAt        time.Time             `json:"createdAt"`
	CreatedBy        string                `json:"createdBy"`
}

// ToPaymentResponse converts a domain.Payment to its response DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:        p.PaymentID,
		ExpenseID:        p.ExpenseID,
		PaymentDate:      p.PaymentDate,
		PaymentAccountID: p.PaymentAccountID,
		Amount:           p.Amount,
		PaymentMethod:    p.PaymentMethod,
		PaymentReference: p.PaymentReference,
		VoucherNumber:    p.VoucherNumber,
		Status:           p.Status,
		CreatedAt:        p.CreatedAt,
		CreatedBy:        p.CreatedBy,
	}
}
