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
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/SscSPs/school_ledger/internal/metrics"
	"github.com/SscSPs/school_ledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const defaultEntryPageSize = 20

// ledgerService provides the journal primitives: create, post, reverse and balances.
type ledgerService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountReader
	counterRepo portsrepo.CounterRepository
	audit       portssvc.AuditSvc
	metrics     *metrics.Metrics
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(
	txManager portsrepo.TransactionManager,
	journalRepo portsrepo.JournalRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	counterRepo portsrepo.CounterRepository,
	audit portssvc.AuditSvc,
	m *metrics.Metrics,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		txManager:   txManager,
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		counterRepo: counterRepo,
		audit:       audit,
		metrics:     m,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// CreateEntry validates and persists an entry in its own transaction.
func (s *ledgerService) CreateEntry(ctx context.Context, header domain.NewJournalEntry, lines []domain.JournalEntryLine) (*domain.JournalEntry, error) {
	var entry *domain.JournalEntry
	err := s.txManager.RunInTx(ctx, func(tx pgx.Tx) error {
		var err error
		entry, err = s.CreateEntryInTx(ctx, tx, header, lines)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// CreateEntryInTx validates and persists an entry inside the caller's transaction.
func (s *ledgerService) CreateEntryInTx(ctx context.Context, tx pgx.Tx, header domain.NewJournalEntry, lines []domain.JournalEntryLine) (*domain.JournalEntry, error) {
	if header.EntryType == domain.ReversalEntry && header.ReversesEntryID == nil {
		return nil, fmt.Errorf("%w: reversal entries are created by reversing an entry", apperrors.ErrValidation)
	}
	return s.createEntry(ctx, tx, header, lines, true)
}

// createEntry persists header and lines. requireActive is false for reversals, which must stay
// possible after an account was deactivated.
func (s *ledgerService) createEntry(ctx context.Context, tx pgx.Tx, header domain.NewJournalEntry, lines []domain.JournalEntryLine, requireActive bool) (*domain.JournalEntry, error) {
	if !header.EntryType.IsValid() {
		return nil, fmt.Errorf("%w: unknown entry type %q", apperrors.ErrValidation, header.EntryType)
	}
	if header.EntryDate.IsZero() {
		return nil, fmt.Errorf("%w: entry date is required", apperrors.ErrValidation)
	}
	if err := header.Origin.Validate(); err != nil {
		return nil, err
	}
	status := header.Status
	if status == "" {
		status = domain.Draft
	}
	if status != domain.Draft && status != domain.Posted {
		return nil, fmt.Errorf("%w: unknown entry status %q", apperrors.ErrValidation, status)
	}

	normalized, err := accounting.NormalizeLines(lines)
	if err != nil {
		s.metrics.EntryRejected("invalid_lines")
		return nil, err
	}
	if err := accounting.ValidateBalance(normalized); err != nil {
		s.metrics.EntryRejected("unbalanced")
		s.LogWarn(ctx, "Rejected unbalanced journal entry",
			slog.String("entry_type", string(header.EntryType)),
			slog.String("error", err.Error()))
		return nil, err
	}
	if err := s.checkAccounts(ctx, tx, normalized, requireActive); err != nil {
		s.metrics.EntryRejected("invalid_account")
		return nil, err
	}

	reference := header.Reference
	if reference == "" {
		seq, err := s.counterRepo.NextValue(ctx, tx, string(header.EntryType))
		if err != nil {
			s.LogError(ctx, err, "Failed to allocate journal reference", slog.String("entry_type", string(header.EntryType)))
			return nil, fmt.Errorf("failed to allocate journal reference: %w", err)
		}
		reference = domain.FormatReference(header.EntryType.ReferencePrefix(), seq)
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	entry := domain.JournalEntry{
		EntryID:         entryID,
		EntryDate:       domain.DateOnly(header.EntryDate),
		Reference:       reference,
		EntryType:       header.EntryType,
		Description:     header.Description,
		Status:          status,
		Origin:          header.Origin,
		ReversesEntryID: header.ReversesEntryID,
		AuditFields:     domain.NewAuditFields(header.CreatedBy, now),
	}
	if status == domain.Posted {
		entry.PostedAt = &now
	}
	entry.Lines = make([]domain.JournalEntryLine, len(normalized))
	for i, line := range normalized {
		line.LineID = uuid.NewString()
		line.EntryID = entryID
		entry.Lines[i] = line
	}

	if err := s.journalRepo.SaveEntry(ctx, tx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("reference", reference))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}
	if err := s.audit.Record(ctx, tx, domain.AuditChange{
		Action:    domain.ActionCreate,
		ModelType: domain.ModelJournalEntry,
		ModelID:   entryID,
		After:     entry,
	}); err != nil {
		return nil, err
	}

	if status == domain.Posted {
		s.metrics.EntryPosted(string(entry.EntryType))
	}
	s.LogInfo(ctx, "Journal entry created",
		slog.String("entry_id", entryID),
		slog.String("reference", reference),
		slog.String("status", string(status)),
		slog.String("origin", header.Origin.String()))
	return &entry, nil
}

// checkAccounts requires every referenced account to exist and, unless disabled, to be active.
func (s *ledgerService) checkAccounts(ctx context.Context, tx pgx.Tx, lines []domain.JournalEntryLine, requireActive bool) error {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.AccountID]; ok {
			continue
		}
		seen[l.AccountID] = struct{}{}
		ids = append(ids, l.AccountID)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, tx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for journal entry")
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range ids {
		acc, ok := accounts[id]
		if !ok {
			return fmt.Errorf("%w: account %s does not exist", apperrors.ErrValidation, id)
		}
		if requireActive && !acc.IsActive {
			return fmt.Errorf("%w: account %s (%s) is inactive", apperrors.ErrValidation, acc.Code, acc.Name)
		}
	}
	return nil
}

// Post moves a draft entry to posted.
func (s *ledgerService) Post(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	var posted *domain.JournalEntry
	err := s.txManager.RunInTx(ctx, func(tx pgx.Tx) error {
		entry, err := s.journalRepo.FindEntryByIDForUpdate(ctx, tx, entryID)
		if err != nil {
			return err
		}
		if entry.Status == domain.Posted {
			return fmt.Errorf("%w: journal entry %s is already posted", apperrors.ErrConflict, entry.Reference)
		}
		if err := accounting.ValidateBalance(entry.Lines); err != nil {
			s.metrics.EntryRejected("unbalanced")
			return err
		}
		if err := s.checkAccounts(ctx, tx, entry.Lines, true); err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := s.journalRepo.MarkPosted(ctx, tx, entryID, userID, now); err != nil {
			s.LogError(ctx, err, "Failed to mark journal entry posted", slog.String("entry_id", entryID))
			return fmt.Errorf("failed to post journal entry: %w", err)
		}

		before := *entry
		entry.Status = domain.Posted
		entry.PostedAt = &now
		entry.LastUpdatedAt = now
		entry.LastUpdatedBy = userID
		if err := s.audit.Record(ctx, tx, domain.AuditChange{
			Action:    domain.ActionPost,
			ModelType: domain.ModelJournalEntry,
			ModelID:   entryID,
			Before:    before,
			After:     *entry,
		}); err != nil {
			return err
		}
		posted = entry
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to post journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	s.metrics.EntryPosted(string(posted.EntryType))
	s.LogInfo(ctx, "Journal entry posted", slog.String("entry_id", entryID), slog.String("reference", posted.Reference))
	return posted, nil
}

// ReverseEntry posts an offsetting entry in its own transaction.
func (s *ledgerService) ReverseEntry(ctx context.Context, entryID string, userID string, reason string) (*domain.JournalEntry, error) {
	var reversal *domain.JournalEntry
	err := s.txManager.RunInTx(ctx, func(tx pgx.Tx) error {
		var err error
		reversal, err = s.ReverseEntryInTx(ctx, tx, entryID, userID, reason)
		return err
	})
	if err != nil {
		return nil, err
	}
	return reversal, nil
}

// ReverseEntryInTx posts a new entry swapping the debits and credits of a posted entry, dated on
// the original's date and linked to the same origin, and links the two entries.
func (s *ledgerService) ReverseEntryInTx(ctx context.Context, tx pgx.Tx, entryID string, userID string, reason string) (*domain.JournalEntry, error) {
	original, err := s.journalRepo.FindEntryByIDForUpdate(ctx, tx, entryID)
	if err != nil {
		return nil, err
	}
	switch {
	case original.Status != domain.Posted:
		return nil, fmt.Errorf("%w: only posted entries can be reversed", apperrors.ErrConflict)
	case original.EntryType == domain.ReversalEntry:
		return nil, fmt.Errorf("%w: a reversal cannot be reversed", apperrors.ErrConflict)
	case original.IsReversed():
		return nil, fmt.Errorf("%w: journal entry %s is already reversed", apperrors.ErrConflict, original.Reference)
	}

	swapped := make([]domain.JournalEntryLine, len(original.Lines))
	for i, line := range original.Lines {
		swapped[i] = line.Swapped()
	}
	description := fmt.Sprintf("Reversal of %s", original.Reference)
	if reason != "" {
		description += ": " + reason
	}

	reversal, err := s.createEntry(ctx, tx, domain.NewJournalEntry{
		EntryDate:       original.EntryDate,
		EntryType:       domain.ReversalEntry,
		Description:     description,
		Status:          domain.Posted,
		CreatedBy:       userID,
		Origin:          original.Origin,
		ReversesEntryID: &original.EntryID,
	}, swapped, false)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.journalRepo.LinkReversal(ctx, tx, original.EntryID, reversal.EntryID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to link reversal", slog.String("entry_id", original.EntryID))
		return nil, fmt.Errorf("failed to link reversal: %w", err)
	}

	before := *original
	original.ReversedByEntryID = &reversal.EntryID
	original.LastUpdatedAt = now
	original.LastUpdatedBy = userID
	if err := s.audit.Record(ctx, tx, domain.AuditChange{
		Action:    domain.ActionReverse,
		ModelType: domain.ModelJournalEntry,
		ModelID:   original.EntryID,
		Before:    before,
		After:     *original,
	}); err != nil {
		return nil, err
	}

	s.metrics.EntryReversed()
	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("entry_id", original.EntryID),
		slog.String("reversal_id", reversal.EntryID))
	return reversal, nil
}

// GetEntry retrieves an entry with its lines.
func (s *ledgerService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, nil, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

// ListEntries retrieves a page of entry headers, newest first.
func (s *ledgerService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultEntryPageSize
	}
	if params.From != nil && params.To != nil && params.To.Before(*params.From) {
		return nil, fmt.Errorf("%w: 'to' date is before 'from' date", apperrors.ErrValidation)
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, portsrepo.JournalEntryFilter{From: params.From, To: params.To}, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries", slog.Int("limit", limit))
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	resp := &dto.ListJournalEntriesResponse{
		Entries:   make([]dto.JournalEntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Entries[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	return resp, nil
}

// CalculateBalance returns the natural balance of one account over posted entries in [start, end].
func (s *ledgerService) CalculateBalance(ctx context.Context, accountID string, start, end time.Time) (decimal.Decimal, error) {
	start, end = domain.DateOnly(start), domain.DateOnly(end)
	if end.Before(start) {
		return decimal.Zero, fmt.Errorf("%w: end date is before start date", apperrors.ErrValidation)
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	totals, err := s.journalRepo.SumAccountLines(ctx, accountID, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account lines", slog.String("account_id", accountID))
		return decimal.Zero, fmt.Errorf("failed to calculate balance: %w", err)
	}
	return accounting.NaturalBalance(account.AccountType, totals.Debit, totals.Credit)
}

// CalculateBalances returns debit and credit totals of every account over [start, end] with one
// grouped query. Accounts without lines carry zero totals.
func (s *ledgerService) CalculateBalances(ctx context.Context, start, end time.Time) ([]domain.AccountTotals, error) {
	start, end = domain.DateOnly(start), domain.DateOnly(end)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date is before start date", apperrors.ErrValidation)
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for balances")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	sums, err := s.journalRepo.SumLinesByAccount(ctx, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum lines by account")
		return nil, fmt.Errorf("failed to calculate balances: %w", err)
	}

	totals := make([]domain.AccountTotals, len(accounts))
	for i, acc := range accounts {
		t, ok := sums[acc.AccountID]
		if !ok {
			t = domain.LineTotals{Debit: decimal.Zero, Credit: decimal.Zero}
		}
		totals[i] = domain.AccountTotals{Account: acc, LineTotals: t}
	}
	return totals, nil
}
