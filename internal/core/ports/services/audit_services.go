package services

import (
	"context"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AuditSvc appends to and verifies the audit hash chain.
type AuditSvc interface {
	// Record appends a row for an entity mutation inside the caller's transaction.
	Record(ctx context.Context, tx pgx.Tx, change domain.AuditChange) error

	// RecordAuthEvent appends a login, logout or failed login row in its own transaction.
	RecordAuthEvent(ctx context.Context, action domain.AuditAction, userID *string) error

	// Verify walks the whole chain. It never fails; problems are reported in the result.
	Verify(ctx context.Context) domain.ChainReport

	// History returns the newest audit rows of one entity.
	History(ctx context.Context, modelType domain.ModelType, modelID string, limit int) ([]domain.ActivityLog, error)
}
