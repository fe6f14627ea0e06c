package services

import (
	"context"
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all available currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	// CreateCurrency persists a new currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}

// ExchangeRateReaderSvc defines conversion and rate inspection.
type ExchangeRateReaderSvc interface {
	// BaseCurrency returns the configured base currency code.
	BaseCurrency() string

	// ConvertToBase converts amount in from on date to the base currency. A zero date means today.
	// It returns nil without error when no rate is available.
	ConvertToBase(ctx context.Context, amount decimal.Decimal, from string, date time.Time) (*decimal.Decimal, error)

	// RateHealth reports the freshness of the latest rate of every active foreign currency.
	RateHealth(ctx context.Context, today time.Time) ([]domain.RateHealth, error)

	// StaleAfterDays returns the staleness threshold.
	StaleAfterDays() int
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// UpsertRate creates or replaces the rate of a pair on a date.
	UpsertRate(ctx context.Context, req dto.UpsertExchangeRateRequest, userID string) (*domain.ExchangeRate, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}
