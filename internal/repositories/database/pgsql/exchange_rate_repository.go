package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/school_ledger/internal/models"
	"github.com/SscSPs/school_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const exchangeRateColumns = `exchange_rate_id, from_currency_code, to_currency_code, rate, effective_date, source,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxExchangeRateRepository struct {
	BaseRepository
}

func newPgxExchangeRateRepository(pool *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

func scanExchangeRate(row pgx.Row) (models.ExchangeRate, error) {
	var m models.ExchangeRate
	err := row.Scan(
		&m.ExchangeRateID,
		&m.FromCurrencyCode,
		&m.ToCurrencyCode,
		&m.Rate,
		&m.EffectiveDate,
		&m.Source,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindRateOnOrBefore retrieves the latest from→to rate effective on or before date.
func (r *PgxExchangeRateRepository) FindRateOnOrBefore(ctx context.Context, fromCurrencyCode, toCurrencyCode string, date time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2 AND effective_date <= $3
		ORDER BY effective_date DESC
		LIMIT 1;
	`
	m, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, fromCurrencyCode, toCurrencyCode, domain.DateOnly(date)))
	if err != nil {
		return nil, notFound(err, "exchange rate", fromCurrencyCode+"->"+toCurrencyCode)
	}
	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

// LatestEffectiveDates returns the most recent effective date per foreign currency, counting
// rates in either direction against base.
func (r *PgxExchangeRateRepository) LatestEffectiveDates(ctx context.Context, baseCurrencyCode string) (map[string]time.Time, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT CASE WHEN from_currency_code = $1 THEN to_currency_code ELSE from_currency_code END AS currency_code,
		       MAX(effective_date)
		FROM exchange_rates
		WHERE from_currency_code = $1 OR to_currency_code = $1
		GROUP BY 1;`, baseCurrencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest rate dates: %w", err)
	}
	defer rows.Close()

	latest := make(map[string]time.Time)
	for rows.Next() {
		var code string
		var effective time.Time
		if err := rows.Scan(&code, &effective); err != nil {
			return nil, fmt.Errorf("failed to scan latest rate date: %w", err)
		}
		latest[code] = domain.DateOnly(effective)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating latest rate dates: %w", err)
	}
	return latest, nil
}

// UpsertExchangeRate inserts the rate or replaces the one for the same pair and date. A replaced
// row keeps its id and creation stamps.
func (r *PgxExchangeRateRepository) UpsertExchangeRate(ctx context.Context, tx pgx.Tx, rate domain.ExchangeRate) (*domain.ExchangeRate, error) {
	m := mapping.ToModelExchangeRate(rate)
	query := `
		INSERT INTO exchange_rates (` + exchangeRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (from_currency_code, to_currency_code, effective_date) DO UPDATE SET
			rate = EXCLUDED.rate,
			source = EXCLUDED.source,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		RETURNING ` + exchangeRateColumns + `;
	`
	stored, err := scanExchangeRate(r.db(tx).QueryRow(ctx, query,
		m.ExchangeRateID,
		m.FromCurrencyCode,
		m.ToCurrencyCode,
		m.Rate,
		m.EffectiveDate,
		m.Source,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert exchange rate %s->%s: %w", m.FromCurrencyCode, m.ToCurrencyCode, err)
	}
	result := mapping.ToDomainExchangeRate(stored)
	return &result, nil
}
