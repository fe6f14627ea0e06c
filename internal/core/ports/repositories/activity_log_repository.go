package repositories

import (
	"context"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ActivityLogRepository persists the audit hash chain.
type ActivityLogRepository interface {
	// LockChain takes the transaction-scoped lock that serializes appends.
	LockChain(ctx context.Context, tx pgx.Tx) error

	// LastHash returns the hash of the newest row, or "" for an empty chain.
	LastHash(ctx context.Context, tx pgx.Tx) (string, error)

	// AppendLog inserts a sealed row and sets its ID.
	AppendLog(ctx context.Context, tx pgx.Tx, log *domain.ActivityLog) error

	// WalkLogs calls fn for every row in ascending id order, stopping at the first error.
	WalkLogs(ctx context.Context, fn func(domain.ActivityLog) error) error

	// ListLogsForModel returns the newest rows for one entity.
	ListLogsForModel(ctx context.Context, modelType domain.ModelType, modelID string, limit int) ([]domain.ActivityLog, error)
}
