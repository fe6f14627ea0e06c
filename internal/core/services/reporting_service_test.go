package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/core/services"
	"github.com/SscSPs/school_ledger/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	ledger      *MockLedgerSvc
	accountRepo *MockAccountRepository
	service     portssvc.ReportingService
	ctx         context.Context

	cash, deposit, receivable, payable, equity, income, expense domain.Account
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.ledger = new(MockLedgerSvc)
	suite.accountRepo = new(MockAccountRepository)
	suite.ctx = context.Background()
	suite.service = services.NewReportingService(suite.ledger, suite.accountRepo,
		services.WithReportingCurrency("KES"),
		services.WithReportingAccountCodes(config.AccountCodes{
			Cash:                 "1100",
			Receivable:           "1200",
			Payable:              "2000",
			OpeningBalanceEquity: "3999",
			Income:               "4000",
		}),
	)

	shortTerm := domain.ShortTerm
	suite.cash = domain.Account{AccountID: "cash-id", Code: "1100", Name: "Cash", AccountType: domain.Asset, Category: &shortTerm}
	suite.deposit = domain.Account{AccountID: "bank-id", Code: "1150", Name: "Bank", AccountType: domain.Asset}
	suite.receivable = domain.Account{AccountID: "ar-id", Code: "1200", Name: "Fees Receivable", AccountType: domain.Asset, Category: &shortTerm}
	suite.payable = domain.Account{AccountID: "ap-id", Code: "2000", Name: "Accounts Payable", AccountType: domain.Liability}
	suite.equity = domain.Account{AccountID: "obe-id", Code: "3999", Name: "Opening Balance Equity", AccountType: domain.Equity}
	suite.income = domain.Account{AccountID: "income-id", Code: "4000", Name: "Tuition Income", AccountType: domain.Income}
	suite.expense = domain.Account{AccountID: "expense-id", Code: "5000", Name: "Supplies", AccountType: domain.ExpenseType}
}

func (suite *ReportingServiceTestSuite) TearDownTest() {
	suite.ledger.AssertExpectations(suite.T())
	suite.accountRepo.AssertExpectations(suite.T())
}

func totals(account domain.Account, debit, credit string) domain.AccountTotals {
	return domain.AccountTotals{Account: account, LineTotals: domain.LineTotals{Debit: dec(debit), Credit: dec(credit)}}
}

// position is a balanced ledger: cash 700, receivables 500, payables 200, opening equity 600,
// income 900 and expenses 500.
func (suite *ReportingServiceTestSuite) position() []domain.AccountTotals {
	return []domain.AccountTotals{
		totals(suite.cash, "900", "200"),
		totals(suite.deposit, "0", "0"),
		totals(suite.receivable, "500", "0"),
		totals(suite.payable, "300", "500"),
		totals(suite.equity, "0", "600"),
		totals(suite.income, "0", "900"),
		totals(suite.expense, "500", "0"),
	}
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_Balanced() {
	asOf := date(2024, time.June, 30)
	suite.ledger.On("CalculateBalances", suite.ctx, domain.Inception, asOf).Return(suite.position(), nil).Once()

	report, err := suite.service.TrialBalance(suite.ctx, asOf.Add(15*time.Hour))

	suite.Require().NoError(err)
	suite.Equal(asOf, report.AsOf)
	suite.Len(report.Rows, 6)
	suite.True(report.TotalDebit.Equal(dec("1700")))
	suite.True(report.TotalCredit.Equal(dec("1700")))
	suite.True(report.IsBalanced)

	for _, row := range report.Rows {
		suite.NotEqual("bank-id", row.AccountID)
		if row.AccountID == "ap-id" {
			suite.True(row.Debit.IsZero())
			suite.True(row.Credit.Equal(dec("200")))
		}
	}
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_Unbalanced() {
	asOf := date(2024, time.June, 30)
	suite.ledger.On("CalculateBalances", suite.ctx, domain.Inception, asOf).Return([]domain.AccountTotals{
		totals(suite.cash, "100", "0"),
		totals(suite.income, "0", "99"),
	}, nil).Once()

	report, err := suite.service.TrialBalance(suite.ctx, asOf)

	suite.Require().NoError(err)
	suite.False(report.IsBalanced)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_LedgerError() {
	asOf := date(2024, time.June, 30)
	suite.ledger.On("CalculateBalances", suite.ctx, domain.Inception, asOf).Return(nil, assert.AnError).Once()

	report, err := suite.service.TrialBalance(suite.ctx, asOf)

	suite.ErrorIs(err, assert.AnError)
	suite.Nil(report)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss() {
	from, to := date(2024, time.January, 1), date(2024, time.June, 30)
	suite.ledger.On("CalculateBalances", suite.ctx, from, to).Return(suite.position(), nil).Once()

	report, err := suite.service.ProfitAndLoss(suite.ctx, from, to)

	suite.Require().NoError(err)
	suite.Require().Len(report.Income.Lines, 1)
	suite.Require().Len(report.Expenses.Lines, 1)
	suite.Equal("4000", report.Income.Lines[0].AccountCode)
	suite.True(report.Income.Total.Equal(dec("900")))
	suite.True(report.Expenses.Total.Equal(dec("500")))
	suite.True(report.NetProfit.Equal(dec("400")))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_FoldsEarningsIntoEquity() {
	asOf := date(2024, time.June, 30)
	suite.ledger.On("CalculateBalances", suite.ctx, domain.Inception, asOf).Return(suite.position(), nil).Once()

	report, err := suite.service.BalanceSheet(suite.ctx, asOf)

	suite.Require().NoError(err)
	suite.True(report.Assets.Total.Equal(dec("1200")))
	suite.Len(report.Assets.ShortTerm.Lines, 2)
	suite.Empty(report.Assets.Uncategorised.Lines)
	suite.True(report.Liabilities.Total.Equal(dec("200")))
	suite.Len(report.Liabilities.Uncategorised.Lines, 1)
	suite.True(report.Equity.Total.Equal(dec("600")))
	suite.True(report.CurrentEarnings.Equal(dec("400")))
	suite.True(report.TotalEquity.Equal(dec("1000")))
	suite.True(report.TotalLiabilitiesEquity.Equal(dec("1200")))
	suite.True(report.IsBalanced)
}

func (suite *ReportingServiceTestSuite) TestCashbook_OpeningAndClosing() {
	from, to := date(2024, time.March, 1), date(2024, time.March, 31)
	suite.accountRepo.On("FindAccountByID", suite.ctx, "cash-id").Return(&suite.cash, nil).Once()
	suite.ledger.On("CalculateBalances", suite.ctx, domain.Inception, date(2024, time.February, 29)).Return([]domain.AccountTotals{
		totals(suite.cash, "1000", "250"),
		totals(suite.income, "0", "1000"),
	}, nil).Once()
	suite.ledger.On("CalculateBalances", suite.ctx, from, to).Return([]domain.AccountTotals{
		totals(suite.cash, "400", "600"),
	}, nil).Once()

	report, err := suite.service.Cashbook(suite.ctx, "cash-id", from, to)

	suite.Require().NoError(err)
	suite.Equal("Cash", report.AccountName)
	suite.True(report.OpeningBalance.Equal(dec("750")))
	suite.True(report.Receipts.Equal(dec("400")))
	suite.True(report.Payments.Equal(dec("600")))
	suite.True(report.ClosingBalance.Equal(dec("550")))
}

func (suite *ReportingServiceTestSuite) TestCashbook_NoMovement() {
	from, to := date(2024, time.March, 1), date(2024, time.March, 31)
	suite.accountRepo.On("FindAccountByID", suite.ctx, "bank-id").Return(&suite.deposit, nil).Once()
	suite.ledger.On("CalculateBalances", suite.ctx, domain.Inception, mock.AnythingOfType("time.Time")).Return([]domain.AccountTotals{}, nil).Once()
	suite.ledger.On("CalculateBalances", suite.ctx, from, to).Return([]domain.AccountTotals{}, nil).Once()

	report, err := suite.service.Cashbook(suite.ctx, "bank-id", from, to)

	suite.Require().NoError(err)
	suite.True(report.OpeningBalance.IsZero())
	suite.True(report.ClosingBalance.IsZero())
}

func (suite *ReportingServiceTestSuite) TestCashbook_RejectsNonAssetAccount() {
	suite.accountRepo.On("FindAccountByID", suite.ctx, "income-id").Return(&suite.income, nil).Once()

	report, err := suite.service.Cashbook(suite.ctx, "income-id", date(2024, time.March, 1), date(2024, time.March, 31))

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(report)
}

func (suite *ReportingServiceTestSuite) TestCashbook_InvalidRange() {
	report, err := suite.service.Cashbook(suite.ctx, "cash-id", date(2024, time.April, 1), date(2024, time.March, 31))

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(report)
}

func (suite *ReportingServiceTestSuite) TestCashbook_UnknownAccount() {
	suite.accountRepo.On("FindAccountByID", suite.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	report, err := suite.service.Cashbook(suite.ctx, "missing", date(2024, time.March, 1), date(2024, time.March, 31))

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(report)
}

func (suite *ReportingServiceTestSuite) TestFinancialSummary() {
	from, to := date(2024, time.April, 1), date(2024, time.June, 30)
	suite.ledger.On("CalculateBalances", mock.Anything, from, to).Return([]domain.AccountTotals{
		totals(suite.income, "0", "300"),
		totals(suite.expense, "120", "0"),
		totals(suite.cash, "300", "120"),
	}, nil).Once()
	suite.ledger.On("CalculateBalances", mock.Anything, domain.Inception, to).Return(suite.position(), nil).Once()

	summary, err := suite.service.FinancialSummary(suite.ctx, from, to)

	suite.Require().NoError(err)
	suite.Equal("KES", summary.Currency)
	suite.True(summary.Income.Equal(dec("300")))
	suite.True(summary.Expenses.Equal(dec("120")))
	suite.True(summary.NetProfit.Equal(dec("180")))
	suite.True(summary.Assets.Equal(dec("1200")))
	suite.True(summary.Liabilities.Equal(dec("200")))
	suite.True(summary.Receivables.Equal(dec("500")))
	suite.True(summary.Payables.Equal(dec("200")))
}

func (suite *ReportingServiceTestSuite) TestFinancialSummary_LedgerError() {
	from, to := date(2024, time.April, 1), date(2024, time.June, 30)
	suite.ledger.On("CalculateBalances", mock.Anything, from, to).Return(nil, assert.AnError).Maybe()
	suite.ledger.On("CalculateBalances", mock.Anything, domain.Inception, to).Return([]domain.AccountTotals{}, nil).Maybe()

	summary, err := suite.service.FinancialSummary(suite.ctx, from, to)

	suite.ErrorIs(err, assert.AnError)
	suite.Nil(summary)
}

func (suite *ReportingServiceTestSuite) TestFinancialSummary_InvalidRange() {
	summary, err := suite.service.FinancialSummary(suite.ctx, date(2024, time.July, 1), date(2024, time.June, 30))

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(summary)
}

func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
