package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// CounterRepository hands out monotonic per-key sequence numbers for document references.
type CounterRepository interface {
	// NextValue increments the counter for key and returns the new value.
	NextValue(ctx context.Context, tx pgx.Tx, key string) (int64, error)
}
