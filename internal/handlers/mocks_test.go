package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/SscSPs/school_ledger/internal/handlers"
	"github.com/SscSPs/school_ledger/internal/platform/config"
	"github.com/SscSPs/school_ledger/internal/utils/authtoken"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) entry(args mock.Arguments) (*domain.JournalEntry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerService) CreateEntry(ctx context.Context, header domain.NewJournalEntry, lines []domain.JournalEntryLine) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, header, lines))
}

func (m *MockLedgerService) CreateEntryInTx(ctx context.Context, tx pgx.Tx, header domain.NewJournalEntry, lines []domain.JournalEntryLine) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, tx, header, lines))
}

func (m *MockLedgerService) Post(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, entryID, userID))
}

func (m *MockLedgerService) ReverseEntry(ctx context.Context, entryID string, userID string, reason string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, entryID, userID, reason))
}

func (m *MockLedgerService) ReverseEntryInTx(ctx context.Context, tx pgx.Tx, entryID string, userID string, reason string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, tx, entryID, userID, reason))
}

func (m *MockLedgerService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, entryID))
}

func (m *MockLedgerService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalEntriesResponse), args.Error(1)
}

func (m *MockLedgerService) CalculateBalance(ctx context.Context, accountID string, start, end time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, start, end)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerService) CalculateBalances(ctx context.Context, start, end time.Time) ([]domain.AccountTotals, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountTotals), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock OpeningBalanceService ---
type MockOpeningBalanceService struct {
	mock.Mock
}

func (m *MockOpeningBalanceService) SubmitOpeningBalances(ctx context.Context, req dto.OpeningBalancesRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var _ portssvc.OpeningBalanceSvc = (*MockOpeningBalanceService)(nil)

// --- Mock AuditService ---
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, tx pgx.Tx, change domain.AuditChange) error {
	return m.Called(ctx, tx, change).Error(0)
}

func (m *MockAuditService) RecordAuthEvent(ctx context.Context, action domain.AuditAction, userID *string) error {
	return m.Called(ctx, action, userID).Error(0)
}

func (m *MockAuditService) Verify(ctx context.Context) domain.ChainReport {
	return m.Called(ctx).Get(0).(domain.ChainReport)
}

func (m *MockAuditService) History(ctx context.Context, modelType domain.ModelType, modelID string, limit int) ([]domain.ActivityLog, error) {
	args := m.Called(ctx, modelType, modelID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityLog), args.Error(1)
}

var _ portssvc.AuditSvc = (*MockAuditService)(nil)

// newTestRouter registers every route against the given container, without swagger.
func newTestRouter(container *portssvc.ServiceContainer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers.RegisterRoutes(r, &config.Config{JWTSecret: testJWTSecret, IsProduction: true}, container, nil)
	return r
}

// generateTestToken creates a signed JWT for userID.
func generateTestToken(userID string) (string, error) {
	return authtoken.Issue(userID, testJWTSecret, time.Hour, "ledger-test")
}

// serve performs an authenticated request. An empty token sends no Authorization header.
func serve(r *gin.Engine, method, url, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, url, nil)
	} else {
		req, _ = http.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
