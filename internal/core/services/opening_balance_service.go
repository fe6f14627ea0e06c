package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/core/posting"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/jackc/pgx/v5"
)

type openingBalanceService struct {
	BaseService
	txManager portsrepo.TransactionManager
	posting   portssvc.PostingSvc
}

// NewOpeningBalanceService creates a new opening balance service.
func NewOpeningBalanceService(txManager portsrepo.TransactionManager, postingSvc portssvc.PostingSvc) portssvc.OpeningBalanceSvc {
	return &openingBalanceService{txManager: txManager, posting: postingSvc}
}

// SubmitOpeningBalances posts the submitted balances as one entry. Any difference between debits
// and credits is plugged to Opening Balance Equity.
func (s *openingBalanceService) SubmitOpeningBalances(ctx context.Context, req dto.OpeningBalancesRequest, userID string) (*domain.JournalEntry, error) {
	event := posting.OpeningBalancesSubmittedEvent{
		Date:        req.Date,
		Description: req.Description,
		Lines:       dto.ToDomainLines(req.Lines),
	}

	var entry *domain.JournalEntry
	err := s.txManager.RunInTx(ctx, func(tx pgx.Tx) error {
		var err error
		entry, err = s.posting.Sync(ctx, tx, event, userID)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to submit opening balances", slog.Int("lines", len(req.Lines)))
		return nil, err
	}

	if entry != nil {
		s.LogInfo(ctx, "Opening balances posted", slog.String("entry_id", entry.EntryID), slog.String("reference", entry.Reference))
	}
	return entry, nil
}
