package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/core/posting"
	"github.com/SscSPs/school_ledger/internal/core/services"
	"github.com/SscSPs/school_ledger/internal/platform/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PostingServiceTestSuite struct {
	suite.Suite
	ledger      *MockLedgerSvc
	journalRepo *MockJournalRepository
	accountRepo *MockAccountRepository
	audit       *MockAuditSvc
	service     portssvc.PostingSvc

	codes  config.AccountCodes
	chart  map[string]domain.Account
	userID string
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.ledger = new(MockLedgerSvc)
	suite.journalRepo = new(MockJournalRepository)
	suite.accountRepo = new(MockAccountRepository)
	suite.audit = new(MockAuditSvc)
	suite.codes = config.AccountCodes{Cash: "1100", Receivable: "1200", Payable: "2000", OpeningBalanceEquity: "3999", Income: "4000"}
	suite.service = services.NewPostingService(posting.NewEngine(), suite.ledger, suite.journalRepo, suite.accountRepo, suite.audit, suite.codes)

	suite.chart = map[string]domain.Account{
		"1100": {AccountID: "cash-id", Code: "1100", AccountType: domain.Asset, IsActive: true},
		"1200": {AccountID: "ar-id", Code: "1200", AccountType: domain.Asset, IsActive: true},
		"2000": {AccountID: "ap-id", Code: "2000", AccountType: domain.Liability, IsActive: true},
		"4000": {AccountID: "income-id", Code: "4000", AccountType: domain.Income, IsActive: true},
	}
	suite.userID = uuid.NewString()
}

func (suite *PostingServiceTestSuite) expectChart() {
	suite.accountRepo.On("FindAccountsByCodes", mock.Anything, mock.Anything, mock.Anything).Return(suite.chart, nil).Once()
}

func (suite *PostingServiceTestSuite) invoice(amount string) domain.Sale {
	return domain.Sale{
		SaleID:        uuid.NewString(),
		InvoiceNumber: "INV-0042",
		DocumentType:  domain.Invoice,
		Status:        domain.SaleUnpaid,
		Amount:        dec(amount),
		CurrencyCode:  "KES",
		SaleDate:      date(2025, 3, 10),
	}
}

func (suite *PostingServiceTestSuite) activeEntry(sale domain.Sale) *domain.JournalEntry {
	return &domain.JournalEntry{
		EntryID:   uuid.NewString(),
		EntryDate: sale.SaleDate,
		EntryType: domain.SalesEntry,
		Status:    domain.Posted,
		Origin:    domain.SaleOrigin(sale.SaleID),
		Lines: []domain.JournalEntryLine{
			{AccountID: "ar-id", Debit: sale.Amount, Credit: decimal.Zero},
			{AccountID: "income-id", Debit: decimal.Zero, Credit: sale.Amount},
		},
	}
}

func (suite *PostingServiceTestSuite) TestSync_NewInvoicePostsToReceivables() {
	sale := suite.invoice("1500")
	created := &domain.JournalEntry{EntryID: uuid.NewString()}

	suite.expectChart()
	suite.journalRepo.On("FindActiveEntryByOrigin", mock.Anything, mock.Anything, domain.SaleOrigin(sale.SaleID)).Return(nil, apperrors.ErrNotFound).Once()
	suite.ledger.On("CreateEntryInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(h domain.NewJournalEntry) bool {
		return h.Status == domain.Posted && h.EntryType == domain.SalesEntry && h.Origin.SaleID != nil && *h.Origin.SaleID == sale.SaleID
	}), mock.MatchedBy(func(lines []domain.JournalEntryLine) bool {
		return len(lines) == 2 && lines[0].AccountID == "ar-id" && lines[0].Debit.Equal(dec("1500")) &&
			lines[1].AccountID == "income-id" && lines[1].Credit.Equal(dec("1500"))
	})).Return(created, nil).Once()

	entry, err := suite.service.Sync(context.Background(), nil, posting.SaleSavedEvent{Sale: sale}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(created, entry)
	suite.ledger.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestSync_UnchangedSaleIsIdempotent() {
	sale := suite.invoice("1500")
	existing := suite.activeEntry(sale)

	suite.expectChart()
	suite.journalRepo.On("FindActiveEntryByOrigin", mock.Anything, mock.Anything, mock.Anything).Return(existing, nil).Once()

	entry, err := suite.service.Sync(context.Background(), nil, posting.SaleSavedEvent{Sale: sale}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(existing, entry)
	suite.ledger.AssertNotCalled(suite.T(), "ReverseEntryInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.ledger.AssertNotCalled(suite.T(), "CreateEntryInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestSync_ChangedAmountReversesAndReposts() {
	sale := suite.invoice("1500")
	existing := suite.activeEntry(sale)
	sale.Amount = dec("1750")
	created := &domain.JournalEntry{EntryID: uuid.NewString()}

	suite.expectChart()
	suite.journalRepo.On("FindActiveEntryByOrigin", mock.Anything, mock.Anything, mock.Anything).Return(existing, nil).Once()
	suite.ledger.On("ReverseEntryInTx", mock.Anything, mock.Anything, existing.EntryID, suite.userID, "source document changed").
		Return(&domain.JournalEntry{EntryID: uuid.NewString()}, nil).Once()
	suite.ledger.On("CreateEntryInTx", mock.Anything, mock.Anything, mock.Anything, mock.MatchedBy(func(lines []domain.JournalEntryLine) bool {
		return lines[0].Debit.Equal(dec("1750"))
	})).Return(created, nil).Once()

	entry, err := suite.service.Sync(context.Background(), nil, posting.SaleSavedEvent{Sale: sale}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(created, entry)
	suite.ledger.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestSync_ChangedDateReversesAndReposts() {
	sale := suite.invoice("1500")
	existing := suite.activeEntry(sale)
	sale.SaleDate = date(2025, 3, 11)

	suite.expectChart()
	suite.journalRepo.On("FindActiveEntryByOrigin", mock.Anything, mock.Anything, mock.Anything).Return(existing, nil).Once()
	suite.ledger.On("ReverseEntryInTx", mock.Anything, mock.Anything, existing.EntryID, suite.userID, mock.Anything).Return(&domain.JournalEntry{}, nil).Once()
	suite.ledger.On("CreateEntryInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(h domain.NewJournalEntry) bool {
		return h.EntryDate.Equal(date(2025, 3, 11))
	}), mock.Anything).Return(&domain.JournalEntry{}, nil).Once()

	_, err := suite.service.Sync(context.Background(), nil, posting.SaleSavedEvent{Sale: sale}, suite.userID)

	suite.Require().NoError(err)
	suite.ledger.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestSync_InvoiceToEstimateOnlyReverses() {
	sale := suite.invoice("1500")
	existing := suite.activeEntry(sale)
	sale.DocumentType = domain.Estimate

	suite.expectChart()
	suite.journalRepo.On("FindActiveEntryByOrigin", mock.Anything, mock.Anything, mock.Anything).Return(existing, nil).Once()
	suite.ledger.On("ReverseEntryInTx", mock.Anything, mock.Anything, existing.EntryID, suite.userID, mock.Anything).Return(&domain.JournalEntry{}, nil).Once()

	entry, err := suite.service.Sync(context.Background(), nil, posting.SaleSavedEvent{Sale: sale}, suite.userID)

	suite.Require().NoError(err)
	suite.Nil(entry)
	suite.ledger.AssertNotCalled(suite.T(), "CreateEntryInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestSync_EstimatePostsNothing() {
	sale := suite.invoice("1500")
	sale.DocumentType = domain.Estimate

	suite.expectChart()
	suite.journalRepo.On("FindActiveEntryByOrigin", mock.Anything, mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound).Once()

	entry, err := suite.service.Sync(context.Background(), nil, posting.SaleSavedEvent{Sale: sale}, suite.userID)

	suite.Require().NoError(err)
	suite.Nil(entry)
	suite.ledger.AssertNotCalled(suite.T(), "CreateEntryInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestSync_RejectedPaymentReversesItsEntry() {
	expense := domain.Expense{ExpenseID: uuid.NewString(), ExpenseAccountID: "exp-id", Description: "Chalk"}
	payment := domain.Payment{
		PaymentID:   uuid.NewString(),
		ExpenseID:   expense.ExpenseID,
		PaymentDate: date(2025, 4, 1),
		Amount:      dec("80"),
		Status:      domain.ApprovalRejected,
	}
	existing := &domain.JournalEntry{EntryID: uuid.NewString(), EntryDate: payment.PaymentDate, Status: domain.Posted}

	suite.expectChart()
	suite.journalRepo.On("FindActiveEntryByOrigin", mock.Anything, mock.Anything, domain.PaymentOrigin(payment.PaymentID)).Return(existing, nil).Once()
	suite.ledger.On("ReverseEntryInTx", mock.Anything, mock.Anything, existing.EntryID, suite.userID, mock.Anything).Return(&domain.JournalEntry{}, nil).Once()

	entry, err := suite.service.Sync(context.Background(), nil, posting.PaymentRecordedEvent{Payment: payment, Expense: expense}, suite.userID)

	suite.Require().NoError(err)
	suite.Nil(entry)
	suite.ledger.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestSync_OpeningBalancesCreateEquityAccount() {
	event := posting.OpeningBalancesSubmittedEvent{
		Date: date(2025, 1, 1),
		Lines: []domain.JournalEntryLine{
			{AccountID: "cash-id", Debit: dec("700"), Credit: decimal.Zero},
			{AccountID: "ap-id", Debit: decimal.Zero, Credit: dec("100")},
		},
	}
	created := &domain.JournalEntry{EntryID: uuid.NewString()}

	suite.expectChart()
	suite.accountRepo.On("SaveAccount", mock.Anything, mock.Anything, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == "3999" && a.AccountType == domain.Equity && a.IsActive
	})).Return(nil).Once()
	suite.audit.On("Record", mock.Anything, mock.Anything, auditAction(domain.ActionCreate, domain.ModelAccount)).Return(nil).Once()
	suite.ledger.On("CreateEntryInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(h domain.NewJournalEntry) bool {
		return h.EntryType == domain.OpeningBalanceEntry && h.Origin.IsZero()
	}), mock.MatchedBy(func(lines []domain.JournalEntryLine) bool {
		return len(lines) == 3 && lines[2].Credit.Equal(dec("600"))
	})).Return(created, nil).Once()

	entry, err := suite.service.Sync(context.Background(), nil, event, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(created, entry)
	suite.accountRepo.AssertExpectations(suite.T())
	suite.journalRepo.AssertNotCalled(suite.T(), "FindActiveEntryByOrigin", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestSync_MissingChartAccountIsValidationError() {
	delete(suite.chart, "1200")
	suite.expectChart()

	_, err := suite.service.Sync(context.Background(), nil, posting.SaleSavedEvent{Sale: suite.invoice("10")}, suite.userID)

	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func TestPostingService(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
