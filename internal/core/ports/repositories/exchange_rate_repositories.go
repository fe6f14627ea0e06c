package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindRateOnOrBefore retrieves the latest from→to rate effective on or before date.
	// Returns apperrors.ErrNotFound when there is none.
	FindRateOnOrBefore(ctx context.Context, fromCurrencyCode, toCurrencyCode string, date time.Time) (*domain.ExchangeRate, error)

	// LatestEffectiveDates returns, per foreign currency, the most recent effective date of a rate
	// between it and base in either direction.
	LatestEffectiveDates(ctx context.Context, baseCurrencyCode string) (map[string]time.Time, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// UpsertExchangeRate inserts the rate or replaces the one with the same pair and effective date.
	// It returns the stored row.
	UpsertExchangeRate(ctx context.Context, tx pgx.Tx, rate domain.ExchangeRate) (*domain.ExchangeRate, error)
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
// This is a facade for clients that need access to all operations
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
