package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// JournalEntryFilter narrows a journal listing.
type JournalEntryFilter struct {
	From *time.Time
	To   *time.Time
}

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindEntryByID retrieves an entry with its lines.
	FindEntryByID(ctx context.Context, tx pgx.Tx, entryID string) (*domain.JournalEntry, error)

	// FindEntryByIDForUpdate retrieves an entry with its lines and locks the header row.
	FindEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, entryID string) (*domain.JournalEntry, error)

	// FindActiveEntryByOrigin retrieves the entry linked to origin that has not been reversed.
	// Returns apperrors.ErrNotFound when there is none.
	FindActiveEntryByOrigin(ctx context.Context, tx pgx.Tx, origin domain.EntryOrigin) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entry headers, newest first, using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, filter JournalEntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveEntry persists an entry header and its lines.
	SaveEntry(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error

	// MarkPosted moves a draft entry to posted.
	MarkPosted(ctx context.Context, tx pgx.Tx, entryID string, userID string, postedAt time.Time) error

	// LinkReversal records that reversalID reverses originalID.
	LinkReversal(ctx context.Context, tx pgx.Tx, originalID string, reversalID string, userID string, now time.Time) error
}

// BalanceReader aggregates posted lines.
type BalanceReader interface {
	// SumAccountLines totals the posted lines of one account with entry dates in [start, end].
	SumAccountLines(ctx context.Context, accountID string, start, end time.Time) (domain.LineTotals, error)

	// SumLinesByAccount totals posted lines per account with entry dates in [start, end].
	// Accounts without lines are absent from the result.
	SumLinesByAccount(ctx context.Context, start, end time.Time) (map[string]domain.LineTotals, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	BalanceReader
}
