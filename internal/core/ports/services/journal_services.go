package services

import (
	"context"
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// LedgerWriterSvc defines the write primitives of the ledger.
type LedgerWriterSvc interface {
	// CreateEntry validates and persists an entry with its lines in its own transaction.
	CreateEntry(ctx context.Context, header domain.NewJournalEntry, lines []domain.JournalEntryLine) (*domain.JournalEntry, error)

	// CreateEntryInTx is CreateEntry inside the caller's transaction.
	CreateEntryInTx(ctx context.Context, tx pgx.Tx, header domain.NewJournalEntry, lines []domain.JournalEntryLine) (*domain.JournalEntry, error)

	// Post moves a draft entry to posted after re-checking its balance.
	Post(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error)

	// ReverseEntry posts a new entry that offsets a posted entry and links the two.
	ReverseEntry(ctx context.Context, entryID string, userID string, reason string) (*domain.JournalEntry, error)

	// ReverseEntryInTx is ReverseEntry inside the caller's transaction.
	ReverseEntryInTx(ctx context.Context, tx pgx.Tx, entryID string, userID string, reason string) (*domain.JournalEntry, error)
}

// LedgerReaderSvc defines read operations for journal data
type LedgerReaderSvc interface {
	// GetEntry retrieves an entry with its lines.
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entries, newest first.
	ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// LedgerCalculatorSvc defines balance computations over posted entries.
type LedgerCalculatorSvc interface {
	// CalculateBalance returns the natural balance of an account over posted entries dated in [start, end].
	CalculateBalance(ctx context.Context, accountID string, start, end time.Time) (decimal.Decimal, error)

	// CalculateBalances returns debit and credit totals for every account over [start, end], ordered by code.
	CalculateBalances(ctx context.Context, start, end time.Time) ([]domain.AccountTotals, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
// This is a facade for clients that need access to all operations
type LedgerSvcFacade interface {
	LedgerWriterSvc
	LedgerReaderSvc
	LedgerCalculatorSvc
}

// PostingSvc turns domain events into ledger entries.
type PostingSvc interface {
	// Sync brings the ledger in line with the event: it creates, replaces or reverses the entry
	// linked to the event's origin. Events without an origin always create a new entry.
	// It returns the active entry afterwards, or nil.
	Sync(ctx context.Context, tx pgx.Tx, event PostingEvent, userID string) (*domain.JournalEntry, error)
}

// OpeningBalanceSvc records the opening position of the books.
type OpeningBalanceSvc interface {
	SubmitOpeningBalances(ctx context.Context, req dto.OpeningBalancesRequest, userID string) (*domain.JournalEntry, error)
}
