package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRateCache is a best-effort cache of resolved rates. Implementations never fail; a miss
// falls through to the database.
type ExchangeRateCache interface {
	Get(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, bool)
	Set(ctx context.Context, from, to string, date time.Time, rate decimal.Decimal)
	InvalidatePair(ctx context.Context, from, to string)
}
