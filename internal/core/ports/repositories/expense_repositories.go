package repositories

import (
	"context"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ExpenseRepositoryFacade defines persistence operations for expenses.
type ExpenseRepositoryFacade interface {
	SaveExpense(ctx context.Context, tx pgx.Tx, expense domain.Expense) error
	UpdateExpense(ctx context.Context, tx pgx.Tx, expense domain.Expense) error
	FindExpenseByID(ctx context.Context, tx pgx.Tx, expenseID string) (*domain.Expense, error)

	// FindExpenseByIDForUpdate locks the expense row so concurrent payments against it serialize.
	FindExpenseByIDForUpdate(ctx context.Context, tx pgx.Tx, expenseID string) (*domain.Expense, error)
}

// PaymentRepositoryFacade defines persistence operations for payments.
type PaymentRepositoryFacade interface {
	SavePayment(ctx context.Context, tx pgx.Tx, payment domain.Payment) error
	UpdatePayment(ctx context.Context, tx pgx.Tx, payment domain.Payment) error
	FindPaymentByID(ctx context.Context, tx pgx.Tx, paymentID string) (*domain.Payment, error)

	// ListPaymentsByExpense returns every payment of an expense, including rejected ones.
	ListPaymentsByExpense(ctx context.Context, tx pgx.Tx, expenseID string) ([]domain.Payment, error)
}

// SaleRepositoryFacade defines persistence operations for sales.
type SaleRepositoryFacade interface {
	SaveSale(ctx context.Context, tx pgx.Tx, sale domain.Sale) error
	UpdateSale(ctx context.Context, tx pgx.Tx, sale domain.Sale) error
	FindSaleByID(ctx context.Context, tx pgx.Tx, saleID string) (*domain.Sale, error)
}
