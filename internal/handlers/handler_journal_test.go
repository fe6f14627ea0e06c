package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type JournalHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	ledger      *MockLedgerService
	opening     *MockOpeningBalanceService
	audit       *MockAuditService
	userID      string
	token       string
	cashID      string
	feesID      string
	createEntry string
}

func (suite *JournalHandlerTestSuite) SetupTest() {
	suite.ledger = new(MockLedgerService)
	suite.opening = new(MockOpeningBalanceService)
	suite.audit = new(MockAuditService)
	suite.router = newTestRouter(&portssvc.ServiceContainer{
		Ledger:         suite.ledger,
		OpeningBalance: suite.opening,
		Audit:          suite.audit,
	})

	suite.userID = uuid.NewString()
	token, err := generateTestToken(suite.userID)
	suite.Require().NoError(err)
	suite.token = token

	suite.cashID = uuid.NewString()
	suite.feesID = uuid.NewString()
	suite.createEntry = fmt.Sprintf(`{
		"entryDate": "2024-03-01T00:00:00Z",
		"entryType": "adjustment",
		"description": "Term fees received",
		"post": true,
		"lines": [
			{"accountID": %q, "debit": "500.00"},
			{"accountID": %q, "credit": "500.00"}
		]
	}`, suite.cashID, suite.feesID)
}

func (suite *JournalHandlerTestSuite) TearDownTest() {
	suite.ledger.AssertExpectations(suite.T())
	suite.opening.AssertExpectations(suite.T())
	suite.audit.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) postedEntry() *domain.JournalEntry {
	posted := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	return &domain.JournalEntry{
		EntryID:   uuid.NewString(),
		EntryDate: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		Reference: "JE-000001",
		EntryType: domain.AdjustmentEntry,
		Status:    domain.Posted,
		PostedAt:  &posted,
		Lines: []domain.JournalEntryLine{
			{LineID: "l1", AccountID: suite.cashID, Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
			{LineID: "l2", AccountID: suite.feesID, Debit: decimal.Zero, Credit: decimal.NewFromInt(500)},
		},
	}
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_PostedDirectly() {
	entry := suite.postedEntry()
	suite.ledger.On("CreateEntry", mock.Anything,
		mock.MatchedBy(func(h domain.NewJournalEntry) bool {
			return h.Status == domain.Posted && h.CreatedBy == suite.userID && h.EntryType == domain.AdjustmentEntry
		}),
		mock.MatchedBy(func(lines []domain.JournalEntryLine) bool {
			return len(lines) == 2 && lines[0].AccountID == suite.cashID && lines[1].Credit.Equal(decimal.NewFromInt(500))
		}),
	).Return(entry, nil).Once()

	w := serve(suite.router, http.MethodPost, "/api/v1/journal-entries", suite.createEntry, suite.token)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(entry.EntryID, resp.EntryID)
	suite.Equal(domain.Posted, resp.Status)
	suite.True(resp.TotalDebit.Equal(resp.TotalCredit))
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_Unbalanced() {
	suite.ledger.On("CreateEntry", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: debits 500.00, credits 400.00", apperrors.ErrUnbalancedEntry)).Once()

	w := serve(suite.router, http.MethodPost, "/api/v1/journal-entries", suite.createEntry, suite.token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "unbalanced")
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_NoLines() {
	body := `{"entryDate":"2024-03-01T00:00:00Z","entryType":"adjustment","lines":[]}`

	w := serve(suite.router, http.MethodPost, "/api/v1/journal-entries", body, suite.token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.ledger.AssertNotCalled(suite.T(), "CreateEntry")
}

func (suite *JournalHandlerTestSuite) TestPostEntry_NotDraft() {
	entryID := uuid.NewString()
	suite.ledger.On("Post", mock.Anything, entryID, suite.userID).
		Return(nil, fmt.Errorf("%w: entry is already posted", apperrors.ErrConflict)).Once()

	w := serve(suite.router, http.MethodPost, "/api/v1/journal-entries/"+entryID+"/post", "", suite.token)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *JournalHandlerTestSuite) TestReverseEntry_WithReason() {
	original := suite.postedEntry()
	reversal := suite.postedEntry()
	reversal.EntryType = domain.ReversalEntry
	reversal.ReversesEntryID = &original.EntryID
	suite.ledger.On("ReverseEntry", mock.Anything, original.EntryID, suite.userID, "duplicate receipt").
		Return(reversal, nil).Once()

	w := serve(suite.router, http.MethodPost, "/api/v1/journal-entries/"+original.EntryID+"/reverse",
		`{"reason":"duplicate receipt"}`, suite.token)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.ReversesEntryID)
	suite.Equal(original.EntryID, *resp.ReversesEntryID)
}

func (suite *JournalHandlerTestSuite) TestReverseEntry_WithoutBody() {
	entryID := uuid.NewString()
	suite.ledger.On("ReverseEntry", mock.Anything, entryID, suite.userID, "").
		Return(suite.postedEntry(), nil).Once()

	w := serve(suite.router, http.MethodPost, "/api/v1/journal-entries/"+entryID+"/reverse", "", suite.token)

	suite.Equal(http.StatusCreated, w.Code)
}

func (suite *JournalHandlerTestSuite) TestSubmitOpeningBalances_NothingToPost() {
	suite.opening.On("SubmitOpeningBalances", mock.Anything, mock.Anything, suite.userID).Return(nil, nil).Once()

	body := fmt.Sprintf(`{"date":"2024-01-01T00:00:00Z","lines":[{"accountID":%q}]}`, suite.cashID)
	w := serve(suite.router, http.MethodPost, "/api/v1/opening-balances", body, suite.token)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *JournalHandlerTestSuite) TestAuditVerify_BrokenChain() {
	suite.audit.On("Verify", mock.Anything).Return(domain.ChainReport{
		Intact:  false,
		Checked: 3,
		Breaks:  []domain.ChainBreak{{ID: 2, Kind: domain.BreakContent}},
	}).Once()

	w := serve(suite.router, http.MethodGet, "/api/v1/audit/verify", "", suite.token)

	suite.Equal(http.StatusConflict, w.Code)
	var report domain.ChainReport
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &report))
	suite.Len(report.Breaks, 1)
}

func (suite *JournalHandlerTestSuite) TestAuditHistory_UnknownModelType() {
	w := serve(suite.router, http.MethodGet, "/api/v1/audit/invoice/abc", "", suite.token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.audit.AssertNotCalled(suite.T(), "History")
}

func (suite *JournalHandlerTestSuite) TestAuditHistory_DefaultLimit() {
	entryID := uuid.NewString()
	suite.audit.On("History", mock.Anything, domain.ModelJournalEntry, entryID, 50).Return(nil, nil).Once()

	w := serve(suite.router, http.MethodGet, "/api/v1/audit/journal_entry/"+entryID, "", suite.token)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())
}

func TestJournalHandler(t *testing.T) {
	suite.Run(t, new(JournalHandlerTestSuite))
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_NegativeLineRejected() {
	body := fmt.Sprintf(`{"entryDate":"2024-03-01T00:00:00Z","entryType":"adjustment",
		"lines":[{"accountID":%q,"debit":"-10"},{"accountID":%q,"credit":"-10"}]}`, suite.cashID, suite.feesID)

	w := serve(suite.router, http.MethodPost, "/api/v1/journal-entries", body, suite.token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "debit")
	suite.ledger.AssertNotCalled(suite.T(), "CreateEntry")
}

func (suite *JournalHandlerTestSuite) TestAuditAuthEvent_FailedLoginWithoutUser() {
	suite.audit.On("RecordAuthEvent", mock.Anything, domain.ActionLoginFailed, (*string)(nil)).Return(nil).Once()

	w := serve(suite.router, http.MethodPost, "/api/v1/audit/auth-events", `{"action":"login_failed","userID":""}`, suite.token)

	suite.Equal(http.StatusNoContent, w.Code)
}
