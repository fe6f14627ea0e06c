package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// Begin starts a new database transaction
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction
	Rollback(ctx context.Context, tx pgx.Tx) error

	// RunInTx runs fn inside a transaction. The transaction commits when fn returns nil
	// and rolls back otherwise.
	RunInTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// Repository methods that take a pgx.Tx run inside it; a nil tx runs against the pool.
