package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/platform/config"
	"github.com/SscSPs/school_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// reportingService implements the ReportingService interface on top of ledger balances.
type reportingService struct {
	BaseService
	ledger      portssvc.LedgerCalculatorSvc
	accountRepo portsrepo.AccountReader
	currency    string
	codes       config.AccountCodes
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingCurrency sets the currency code stamped on summaries.
func WithReportingCurrency(code string) ReportingServiceOption {
	return func(s *reportingService) {
		s.currency = code
	}
}

// WithReportingAccountCodes sets the chart codes used for receivables and payables.
func WithReportingAccountCodes(codes config.AccountCodes) ReportingServiceOption {
	return func(s *reportingService) {
		s.codes = codes
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(ledger portssvc.LedgerCalculatorSvc, accountRepo portsrepo.AccountReader, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		ledger:      ledger,
		accountRepo: accountRepo,
		currency:    defaultBaseCurrency,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

func reportLine(t domain.AccountTotals) domain.ReportLine {
	return domain.ReportLine{
		AccountID:   t.Account.AccountID,
		AccountCode: t.Account.Code,
		AccountName: t.Account.Name,
		Amount:      t.NaturalBalance(),
	}
}

func withinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(domain.BalanceTolerance)
}

// TrialBalance generates a trial balance report as of a specific date
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error) {
	asOf = domain.DateOnly(asOf)
	balances, err := s.ledger.CalculateBalances(ctx, domain.Inception, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	report := &domain.TrialBalanceReport{
		AsOf:        asOf,
		Rows:        []domain.TrialBalanceRow{},
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, b := range balances {
		balance := b.NaturalBalance()
		if balance.IsZero() {
			continue
		}
		debit, credit := accounting.BalanceColumns(b.Account.AccountType, balance)
		report.Rows = append(report.Rows, domain.TrialBalanceRow{
			AccountID:   b.Account.AccountID,
			AccountCode: b.Account.Code,
			AccountName: b.Account.Name,
			AccountType: b.Account.AccountType,
			Debit:       debit,
			Credit:      credit,
		})
		report.TotalDebit = report.TotalDebit.Add(debit)
		report.TotalCredit = report.TotalCredit.Add(credit)
	}
	report.IsBalanced = withinTolerance(report.TotalDebit, report.TotalCredit)

	if !report.IsBalanced {
		s.LogWarn(ctx, "Trial balance does not balance",
			slog.String("as_of", asOf.Format("2006-01-02")),
			slog.String("debit", report.TotalDebit.String()),
			slog.String("credit", report.TotalCredit.String()))
	}
	s.LogInfo(ctx, "Trial balance report generated successfully",
		slog.String("as_of", asOf.Format("2006-01-02")),
		slog.Int("row_count", len(report.Rows)))
	return report, nil
}

// ProfitAndLoss generates a profit and loss report for a specific period
func (s *reportingService) ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.ProfitAndLossReport, error) {
	from, to = domain.DateOnly(from), domain.DateOnly(to)
	balances, err := s.ledger.CalculateBalances(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve profit and loss data: %w", err)
	}

	report := &domain.ProfitAndLossReport{
		From:     from,
		To:       to,
		Income:   domain.NewReportSection(),
		Expenses: domain.NewReportSection(),
	}
	for _, b := range balances {
		if b.NaturalBalance().IsZero() {
			continue
		}
		switch b.Account.AccountType {
		case domain.Income:
			report.Income.Add(reportLine(b))
		case domain.ExpenseType:
			report.Expenses.Add(reportLine(b))
		}
	}
	report.NetProfit = report.Income.Total.Sub(report.Expenses.Total)

	s.LogInfo(ctx, "Profit and loss report generated successfully",
		slog.String("from", from.Format("2006-01-02")),
		slog.String("to", to.Format("2006-01-02")),
		slog.Int("income_accounts", len(report.Income.Lines)),
		slog.Int("expense_accounts", len(report.Expenses.Lines)))
	return report, nil
}

// BalanceSheet generates a balance sheet report as of a specific date. Income and expense since
// inception are folded into equity as current earnings.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	asOf = domain.DateOnly(asOf)
	balances, err := s.ledger.CalculateBalances(ctx, domain.Inception, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve balance sheet data: %w", err)
	}

	report := &domain.BalanceSheetReport{
		AsOf:            asOf,
		Assets:          domain.NewCategorisedSection(),
		Liabilities:     domain.NewCategorisedSection(),
		Equity:          domain.NewReportSection(),
		CurrentEarnings: decimal.Zero,
	}
	for _, b := range balances {
		balance := b.NaturalBalance()
		if balance.IsZero() {
			continue
		}
		switch b.Account.AccountType {
		case domain.Asset:
			report.Assets.Add(b.Account.Category, reportLine(b))
		case domain.Liability:
			report.Liabilities.Add(b.Account.Category, reportLine(b))
		case domain.Equity:
			report.Equity.Add(reportLine(b))
		case domain.Income:
			report.CurrentEarnings = report.CurrentEarnings.Add(balance)
		case domain.ExpenseType:
			report.CurrentEarnings = report.CurrentEarnings.Sub(balance)
		}
	}
	report.TotalEquity = report.Equity.Total.Add(report.CurrentEarnings)
	report.TotalLiabilitiesEquity = report.Liabilities.Total.Add(report.TotalEquity)
	report.IsBalanced = withinTolerance(report.Assets.Total, report.TotalLiabilitiesEquity)

	if !report.IsBalanced {
		s.LogWarn(ctx, "Balance sheet does not balance",
			slog.String("as_of", asOf.Format("2006-01-02")),
			slog.String("assets", report.Assets.Total.String()),
			slog.String("liabilities_and_equity", report.TotalLiabilitiesEquity.String()))
	}
	s.LogInfo(ctx, "Balance sheet report generated successfully", slog.String("as_of", asOf.Format("2006-01-02")))
	return report, nil
}

func totalsFor(balances []domain.AccountTotals, accountID string) domain.LineTotals {
	for _, b := range balances {
		if b.Account.AccountID == accountID {
			return b.LineTotals
		}
	}
	return domain.LineTotals{Debit: decimal.Zero, Credit: decimal.Zero}
}

// Cashbook reports the movement of one cash or bank account over [from, to].
func (s *reportingService) Cashbook(ctx context.Context, accountID string, from, to time.Time) (*domain.CashbookReport, error) {
	from, to = domain.DateOnly(from), domain.DateOnly(to)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: end date is before start date", apperrors.ErrValidation)
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find cashbook account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	if account.AccountType != domain.Asset {
		return nil, fmt.Errorf("%w: cashbook requires a cash or bank account, %s is %s", apperrors.ErrValidation, account.Code, account.AccountType)
	}

	opening := decimal.Zero
	if from.After(domain.Inception) {
		before, err := s.ledger.CalculateBalances(ctx, domain.Inception, from.AddDate(0, 0, -1))
		if err != nil {
			return nil, fmt.Errorf("failed to calculate opening balance: %w", err)
		}
		opening = totalsFor(before, accountID).Difference()
	}
	period, err := s.ledger.CalculateBalances(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate cashbook movement: %w", err)
	}
	movement := totalsFor(period, accountID)

	report := &domain.CashbookReport{
		AccountID:      account.AccountID,
		AccountName:    account.Name,
		From:           from,
		To:             to,
		OpeningBalance: opening,
		Receipts:       movement.Debit,
		Payments:       movement.Credit,
		ClosingBalance: opening.Add(movement.Difference()),
	}
	s.LogInfo(ctx, "Cashbook report generated successfully",
		slog.String("account_id", accountID),
		slog.String("from", from.Format("2006-01-02")),
		slog.String("to", to.Format("2006-01-02")))
	return report, nil
}

// FinancialSummary returns period income and expenses alongside the position at the end of the
// period. Both are computed concurrently.
func (s *reportingService) FinancialSummary(ctx context.Context, from, to time.Time) (*domain.FinancialSummary, error) {
	from, to = domain.DateOnly(from), domain.DateOnly(to)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: end date is before start date", apperrors.ErrValidation)
	}

	var period, position []domain.AccountTotals
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		period, err = s.ledger.CalculateBalances(gctx, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		position, err = s.ledger.CalculateBalances(gctx, domain.Inception, to)
		return err
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to build financial summary")
		return nil, fmt.Errorf("failed to build financial summary: %w", err)
	}

	summary := &domain.FinancialSummary{
		From:        from,
		To:          to,
		Currency:    s.currency,
		Income:      decimal.Zero,
		Expenses:    decimal.Zero,
		Assets:      decimal.Zero,
		Liabilities: decimal.Zero,
		Receivables: decimal.Zero,
		Payables:    decimal.Zero,
	}
	for _, b := range period {
		switch b.Account.AccountType {
		case domain.Income:
			summary.Income = summary.Income.Add(b.NaturalBalance())
		case domain.ExpenseType:
			summary.Expenses = summary.Expenses.Add(b.NaturalBalance())
		}
	}
	summary.NetProfit = summary.Income.Sub(summary.Expenses)

	for _, b := range position {
		balance := b.NaturalBalance()
		switch b.Account.AccountType {
		case domain.Asset:
			summary.Assets = summary.Assets.Add(balance)
		case domain.Liability:
			summary.Liabilities = summary.Liabilities.Add(balance)
		}
		switch b.Account.Code {
		case s.codes.Receivable:
			summary.Receivables = balance
		case s.codes.Payable:
			summary.Payables = balance
		}
	}

	s.LogInfo(ctx, "Financial summary generated successfully",
		slog.String("from", from.Format("2006-01-02")),
		slog.String("to", to.Format("2006-01-02")))
	return summary, nil
}
