package services

import (
	"context"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/dto"
)

// ExpenseSvcFacade defines operations on expenses.
type ExpenseSvcFacade interface {
	// CreateExpense records an expense, converting its amount to the base currency when a rate exists.
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error)

	// GetExpenseSummary returns the expense with its derived payment status.
	GetExpenseSummary(ctx context.Context, expenseID string) (*domain.Expense, domain.PaymentSummary, error)
}

// PaymentSvcFacade defines operations on payments against expenses.
type PaymentSvcFacade interface {
	// RecordPayment pays (part of) an expense. Amounts above the outstanding balance are rejected.
	RecordPayment(ctx context.Context, expenseID string, req dto.RecordPaymentRequest, userID string) (*domain.Payment, error)

	// UpdatePayment edits a payment and re-syncs its ledger entry.
	UpdatePayment(ctx context.Context, paymentID string, req dto.UpdatePaymentRequest, userID string) (*domain.Payment, error)

	// ListPayments returns the payments of an expense.
	ListPayments(ctx context.Context, expenseID string) ([]domain.Payment, error)
}

// SaleSvcFacade defines operations on sales documents.
type SaleSvcFacade interface {
	CreateSale(ctx context.Context, req dto.SaveSaleRequest, userID string) (*domain.Sale, error)
	UpdateSale(ctx context.Context, saleID string, req dto.SaveSaleRequest, userID string) (*domain.Sale, error)
	GetSale(ctx context.Context, saleID string) (*domain.Sale, error)
}
