package pgsql

import (
	"context"
	"fmt"

	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCounterRepository struct {
	BaseRepository
}

func newPgxCounterRepository(pool *pgxpool.Pool) *PgxCounterRepository {
	return &PgxCounterRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CounterRepository = (*PgxCounterRepository)(nil)

// NextValue increments the counter for key and returns the new value. The row lock taken by the
// upsert serializes concurrent callers until their transaction ends.
func (r *PgxCounterRepository) NextValue(ctx context.Context, tx pgx.Tx, key string) (int64, error) {
	var value int64
	err := r.db(tx).QueryRow(ctx, `
		INSERT INTO document_counters (counter_key, last_value)
		VALUES ($1, 1)
		ON CONFLICT (counter_key) DO UPDATE SET last_value = document_counters.last_value + 1
		RETURNING last_value;`, key).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("failed to advance counter %s: %w", key, err)
	}
	return value, nil
}
