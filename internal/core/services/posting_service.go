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
	"github.com/SscSPs/school_ledger/internal/core/posting"
	"github.com/SscSPs/school_ledger/internal/platform/config"
	"github.com/SscSPs/school_ledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const openingBalanceEquityName = "Opening Balance Equity"

// postingService keeps the ledger in line with domain events.
type postingService struct {
	BaseService
	engine      *posting.Engine
	ledger      portssvc.LedgerWriterSvc
	journalRepo portsrepo.JournalReader
	accountRepo portsrepo.AccountRepositoryFacade
	audit       portssvc.AuditSvc
	codes       config.AccountCodes
}

// NewPostingService creates a new posting service. codes are the chart codes resolved into
// account ids for every event.
func NewPostingService(
	engine *posting.Engine,
	ledger portssvc.LedgerWriterSvc,
	journalRepo portsrepo.JournalReader,
	accountRepo portsrepo.AccountRepositoryFacade,
	audit portssvc.AuditSvc,
	codes config.AccountCodes,
) portssvc.PostingSvc {
	return &postingService{
		engine:      engine,
		ledger:      ledger,
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		audit:       audit,
		codes:       codes,
	}
}

var _ portssvc.PostingSvc = (*postingService)(nil)

// Sync builds the event's draft and reconciles it with the active entry of the same origin.
func (s *postingService) Sync(ctx context.Context, tx pgx.Tx, event portssvc.PostingEvent, userID string) (*domain.JournalEntry, error) {
	logger := s.GetLogger(ctx).With(slog.String("event", string(event.Kind())), slog.String("origin", event.Origin().String()))

	chart, err := s.resolveChart(ctx, tx, event.Kind() == posting.OpeningBalancesSubmitted, userID)
	if err != nil {
		return nil, err
	}
	draft, err := s.engine.Build(event, chart)
	if err != nil {
		logger.Warn("Posting rule rejected event", slog.String("error", err.Error()))
		return nil, err
	}

	origin := event.Origin()
	if origin.IsZero() {
		if draft == nil {
			return nil, nil
		}
		return s.create(ctx, tx, draft, userID)
	}

	existing, err := s.journalRepo.FindActiveEntryByOrigin(ctx, tx, origin)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to look up entry for origin", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to look up entry for %s: %w", origin, err)
		}
		existing = nil
	}

	switch {
	case existing == nil && draft == nil:
		logger.Debug("Event posts nothing")
		return nil, nil
	case existing == nil:
		return s.create(ctx, tx, draft, userID)
	case draft != nil && sameEntry(existing, draft):
		logger.Debug("Ledger already matches event", slog.String("entry_id", existing.EntryID))
		return existing, nil
	}

	if _, err := s.ledger.ReverseEntryInTx(ctx, tx, existing.EntryID, userID, "source document changed"); err != nil {
		return nil, err
	}
	logger.Info("Superseded ledger entry reversed", slog.String("entry_id", existing.EntryID))
	if draft == nil {
		return nil, nil
	}
	return s.create(ctx, tx, draft, userID)
}

func sameEntry(existing *domain.JournalEntry, draft *posting.Draft) bool {
	return domain.DateOnly(existing.EntryDate).Equal(domain.DateOnly(draft.EntryDate)) &&
		accounting.SameLines(existing.Lines, draft.Lines)
}

func (s *postingService) create(ctx context.Context, tx pgx.Tx, draft *posting.Draft, userID string) (*domain.JournalEntry, error) {
	return s.ledger.CreateEntryInTx(ctx, tx, domain.NewJournalEntry{
		EntryDate:   draft.EntryDate,
		EntryType:   draft.EntryType,
		Description: draft.Description,
		Status:      domain.Posted,
		CreatedBy:   userID,
		Origin:      draft.Origin,
	}, draft.Lines)
}

// resolveChart maps the configured chart codes to account ids. The opening balance equity account
// is created on demand for opening balance submissions.
func (s *postingService) resolveChart(ctx context.Context, tx pgx.Tx, ensureOpeningEquity bool, userID string) (posting.Chart, error) {
	codes := []string{s.codes.Cash, s.codes.Receivable, s.codes.Payable, s.codes.OpeningBalanceEquity, s.codes.Income}
	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, tx, codes)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve chart accounts")
		return posting.Chart{}, fmt.Errorf("failed to resolve chart accounts: %w", err)
	}

	id := func(code string) string {
		if acc, ok := accounts[code]; ok {
			return acc.AccountID
		}
		return ""
	}
	chart := posting.Chart{
		Cash:                 id(s.codes.Cash),
		Receivable:           id(s.codes.Receivable),
		Payable:              id(s.codes.Payable),
		OpeningBalanceEquity: id(s.codes.OpeningBalanceEquity),
		Income:               id(s.codes.Income),
	}

	if ensureOpeningEquity && chart.OpeningBalanceEquity == "" {
		acc, err := s.createOpeningBalanceEquity(ctx, tx, userID)
		if err != nil {
			return posting.Chart{}, err
		}
		chart.OpeningBalanceEquity = acc.AccountID
	}
	return chart, nil
}

func (s *postingService) createOpeningBalanceEquity(ctx context.Context, tx pgx.Tx, userID string) (*domain.Account, error) {
	account := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        s.codes.OpeningBalanceEquity,
		Name:        openingBalanceEquityName,
		AccountType: domain.Equity,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(userID, time.Now().UTC()),
	}
	if err := s.accountRepo.SaveAccount(ctx, tx, account); err != nil {
		s.LogError(ctx, err, "Failed to create opening balance equity account", slog.String("code", account.Code))
		return nil, fmt.Errorf("failed to create opening balance equity account: %w", err)
	}
	if err := s.audit.Record(ctx, tx, domain.AuditChange{
		Action:    domain.ActionCreate,
		ModelType: domain.ModelAccount,
		ModelID:   account.AccountID,
		After:     account,
	}); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Opening balance equity account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}
