package services

import (
	"context"
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// TrialBalance generates a trial balance report as of a specific date
	TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error)

	// ProfitAndLoss generates a profit and loss report for a specific period
	ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.ProfitAndLossReport, error)

	// BalanceSheet generates a balance sheet report as of a specific date
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error)

	// Cashbook reports opening balance, receipts, payments and closing balance of a cash or bank account.
	Cashbook(ctx context.Context, accountID string, from, to time.Time) (*domain.CashbookReport, error)

	// FinancialSummary returns headline totals for a period.
	FinancialSummary(ctx context.Context, from, to time.Time) (*domain.FinancialSummary, error)
}
