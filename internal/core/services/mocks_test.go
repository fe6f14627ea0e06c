package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Transaction manager ---

// fakeTxManager runs fn with a nil transaction and remembers how often it was asked to.
type fakeTxManager struct {
	calls int
}

var _ portsrepo.TransactionManager = (*fakeTxManager)(nil)

func (f *fakeTxManager) Begin(ctx context.Context) (pgx.Tx, error)    { return nil, nil }
func (f *fakeTxManager) Commit(ctx context.Context, tx pgx.Tx) error   { return nil }
func (f *fakeTxManager) Rollback(ctx context.Context, tx pgx.Tx) error { return nil }

func (f *fakeTxManager) RunInTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	f.calls++
	return fn(nil)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCodes(ctx context.Context, tx pgx.Tx, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, activeOnly bool) ([]domain.Account, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) HasPostings(ctx context.Context, tx pgx.Tx, accountID string) (bool, error) {
	args := m.Called(ctx, tx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	args := m.Called(ctx, tx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	args := m.Called(ctx, tx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, tx pgx.Tx, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, tx, accountID, userID, now)
	return args.Error(0)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, tx pgx.Tx, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindActiveEntryByOrigin(ctx context.Context, tx pgx.Tx, origin domain.EntryOrigin) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tx, origin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, filter portsrepo.JournalEntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) MarkPosted(ctx context.Context, tx pgx.Tx, entryID string, userID string, postedAt time.Time) error {
	args := m.Called(ctx, tx, entryID, userID, postedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) LinkReversal(ctx context.Context, tx pgx.Tx, originalID string, reversalID string, userID string, now time.Time) error {
	args := m.Called(ctx, tx, originalID, reversalID, userID, now)
	return args.Error(0)
}

func (m *MockJournalRepository) SumAccountLines(ctx context.Context, accountID string, start, end time.Time) (domain.LineTotals, error) {
	args := m.Called(ctx, accountID, start, end)
	return args.Get(0).(domain.LineTotals), args.Error(1)
}

func (m *MockJournalRepository) SumLinesByAccount(ctx context.Context, start, end time.Time) (map[string]domain.LineTotals, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.LineTotals), args.Error(1)
}

// --- Mock CounterRepository ---
type MockCounterRepository struct {
	mock.Mock
}

var _ portsrepo.CounterRepository = (*MockCounterRepository)(nil)

func (m *MockCounterRepository) NextValue(ctx context.Context, tx pgx.Tx, key string) (int64, error) {
	args := m.Called(ctx, tx, key)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

var _ portsrepo.ExpenseRepositoryFacade = (*MockExpenseRepository)(nil)

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	args := m.Called(ctx, tx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	args := m.Called(ctx, tx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, tx pgx.Tx, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, tx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindExpenseByIDForUpdate(ctx context.Context, tx pgx.Tx, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, tx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) SavePayment(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	args := m.Called(ctx, tx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdatePayment(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	args := m.Called(ctx, tx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, tx pgx.Tx, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, tx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByExpense(ctx context.Context, tx pgx.Tx, expenseID string) ([]domain.Payment, error) {
	args := m.Called(ctx, tx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

// --- Mock SaleRepository ---
type MockSaleRepository struct {
	mock.Mock
}

var _ portsrepo.SaleRepositoryFacade = (*MockSaleRepository)(nil)

func (m *MockSaleRepository) SaveSale(ctx context.Context, tx pgx.Tx, sale domain.Sale) error {
	args := m.Called(ctx, tx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) UpdateSale(ctx context.Context, tx pgx.Tx, sale domain.Sale) error {
	args := m.Called(ctx, tx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) FindSaleByID(ctx context.Context, tx pgx.Tx, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, tx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

var _ portsrepo.CurrencyRepositoryFacade = (*MockCurrencyRepository)(nil)

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*MockExchangeRateRepository)(nil)

func (m *MockExchangeRateRepository) FindRateOnOrBefore(ctx context.Context, fromCurrencyCode, toCurrencyCode string, date time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCurrencyCode, toCurrencyCode, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) LatestEffectiveDates(ctx context.Context, baseCurrencyCode string) (map[string]time.Time, error) {
	args := m.Called(ctx, baseCurrencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]time.Time), args.Error(1)
}

func (m *MockExchangeRateRepository) UpsertExchangeRate(ctx context.Context, tx pgx.Tx, rate domain.ExchangeRate) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, tx, rate)
	if fn, ok := args.Get(0).(func(domain.ExchangeRate) *domain.ExchangeRate); ok {
		return fn(rate), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

// --- Mock ActivityLogRepository ---
type MockActivityLogRepository struct {
	mock.Mock
}

var _ portsrepo.ActivityLogRepository = (*MockActivityLogRepository)(nil)

func (m *MockActivityLogRepository) LockChain(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockActivityLogRepository) LastHash(ctx context.Context, tx pgx.Tx) (string, error) {
	args := m.Called(ctx, tx)
	return args.String(0), args.Error(1)
}

func (m *MockActivityLogRepository) AppendLog(ctx context.Context, tx pgx.Tx, log *domain.ActivityLog) error {
	args := m.Called(ctx, tx, log)
	return args.Error(0)
}

func (m *MockActivityLogRepository) WalkLogs(ctx context.Context, fn func(domain.ActivityLog) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

func (m *MockActivityLogRepository) ListLogsForModel(ctx context.Context, modelType domain.ModelType, modelID string, limit int) ([]domain.ActivityLog, error) {
	args := m.Called(ctx, modelType, modelID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityLog), args.Error(1)
}

// --- Mock ExchangeRateCache ---
type MockRateCache struct {
	mock.Mock
}

var _ portsrepo.ExchangeRateCache = (*MockRateCache)(nil)

func (m *MockRateCache) Get(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, bool) {
	args := m.Called(ctx, from, to, date)
	return args.Get(0).(decimal.Decimal), args.Bool(1)
}

func (m *MockRateCache) Set(ctx context.Context, from, to string, date time.Time, rate decimal.Decimal) {
	m.Called(ctx, from, to, date, rate)
}

func (m *MockRateCache) InvalidatePair(ctx context.Context, from, to string) {
	m.Called(ctx, from, to)
}

// --- Mock AuditSvc ---
type MockAuditSvc struct {
	mock.Mock
}

var _ portssvc.AuditSvc = (*MockAuditSvc)(nil)

func (m *MockAuditSvc) Record(ctx context.Context, tx pgx.Tx, change domain.AuditChange) error {
	args := m.Called(ctx, tx, change)
	return args.Error(0)
}

func (m *MockAuditSvc) RecordAuthEvent(ctx context.Context, action domain.AuditAction, userID *string) error {
	args := m.Called(ctx, action, userID)
	return args.Error(0)
}

func (m *MockAuditSvc) Verify(ctx context.Context) domain.ChainReport {
	args := m.Called(ctx)
	return args.Get(0).(domain.ChainReport)
}

func (m *MockAuditSvc) History(ctx context.Context, modelType domain.ModelType, modelID string, limit int) ([]domain.ActivityLog, error) {
	args := m.Called(ctx, modelType, modelID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityLog), args.Error(1)
}

// auditAction matches an AuditChange by action and model type.
func auditAction(action domain.AuditAction, modelType domain.ModelType) any {
	return mock.MatchedBy(func(c domain.AuditChange) bool {
		return c.Action == action && c.ModelType == modelType
	})
}

// --- Mock LedgerSvc ---
type MockLedgerSvc struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerSvc)(nil)

func (m *MockLedgerSvc) CreateEntry(ctx context.Context, header domain.NewJournalEntry, lines []domain.JournalEntryLine) (*domain.JournalEntry, error) {
	args := m.Called(ctx, header, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerSvc) CreateEntryInTx(ctx context.Context, tx pgx.Tx, header domain.NewJournalEntry, lines []domain.JournalEntryLine) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tx, header, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerSvc) Post(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerSvc) ReverseEntry(ctx context.Context, entryID string, userID string, reason string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, userID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerSvc) ReverseEntryInTx(ctx context.Context, tx pgx.Tx, entryID string, userID string, reason string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tx, entryID, userID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerSvc) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerSvc) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalEntriesResponse), args.Error(1)
}

func (m *MockLedgerSvc) CalculateBalance(ctx context.Context, accountID string, start, end time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, start, end)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerSvc) CalculateBalances(ctx context.Context, start, end time.Time) ([]domain.AccountTotals, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountTotals), args.Error(1)
}

// --- Mock PostingSvc ---
type MockPostingSvc struct {
	mock.Mock
}

var _ portssvc.PostingSvc = (*MockPostingSvc)(nil)

func (m *MockPostingSvc) Sync(ctx context.Context, tx pgx.Tx, event portssvc.PostingEvent, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tx, event, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// --- Mock ExchangeRate reader ---
type MockExchangeRateReader struct {
	mock.Mock
}

var _ portssvc.ExchangeRateReaderSvc = (*MockExchangeRateReader)(nil)

func (m *MockExchangeRateReader) BaseCurrency() string {
	return m.Called().String(0)
}

func (m *MockExchangeRateReader) ConvertToBase(ctx context.Context, amount decimal.Decimal, from string, date time.Time) (*decimal.Decimal, error) {
	args := m.Called(ctx, amount, from, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*decimal.Decimal), args.Error(1)
}

func (m *MockExchangeRateReader) RateHealth(ctx context.Context, today time.Time) ([]domain.RateHealth, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RateHealth), args.Error(1)
}

func (m *MockExchangeRateReader) StaleAfterDays() int {
	return m.Called().Int(0)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// decimalEq matches a decimal argument by value rather than representation.
func decimalEq(want decimal.Decimal) any {
	return mock.MatchedBy(func(got decimal.Decimal) bool { return got.Equal(want) })
}
