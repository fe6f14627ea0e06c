package dto

import (
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertExchangeRateRequest defines the structure for creating or replacing a dated exchange rate.
type UpsertExchangeRateRequest struct {
	FromCurrencyCode string            `json:"fromCurrencyCode" binding:"required,len=3,uppercase"`
	ToCurrencyCode   string            `json:"toCurrencyCode" binding:"required,len=3,uppercase,nefield=FromCurrencyCode"`
	Rate             decimal.Decimal   `json:"rate" binding:"required,decimal_positive"`
	EffectiveDate    time.Time         `json:"effectiveDate" binding:"required"`
	Source           domain.RateSource `json:"source" binding:"omitempty,oneof=manual api"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID   string            `json:"exchangeRateID"`
	FromCurrencyCode string            `json:"fromCurrencyCode"`
	ToCurrencyCode   string            `json:"toCurrencyCode"`
	Rate             decimal.Decimal   `json:"rate"`
	EffectiveDate    time.Time         `json:"effectiveDate"`
	Source           domain.RateSource `json:"source"`
	CreatedAt        time.Time         `json:"createdAt"`
	CreatedBy        string            `json:"createdBy"`
	LastUpdatedAt    time.Time         `json:"lastUpdatedAt"`
	LastUpdatedBy    string            `json:"lastUpdatedBy"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:   rate.ExchangeRateID,
		FromCurrencyCode: rate.FromCurrencyCode,
		ToCurrencyCode:   rate.ToCurrencyCode,
		Rate:             rate.Rate,
		EffectiveDate:    rate.EffectiveDate,
		Source:           rate.Source,
		CreatedAt:        rate.CreatedAt,
		CreatedBy:        rate.CreatedBy,
		LastUpdatedAt:    rate.LastUpdatedAt,
		LastUpdatedBy:    rate.LastUpdatedBy,
	}
}

// ConvertParams defines the query of a conversion to the base currency.
type ConvertParams struct {
	Amount string     `form:"amount" binding:"required"`
	From   string     `form:"from" binding:"required,len=3,uppercase"`
	Date   *time.Time `form:"date" time_format:"2006-01-02" time_utc:"1"`
}

// ConvertResponse reports a conversion. Converted is null when no rate was available.
type ConvertResponse struct {
	Amount       decimal.Decimal  `json:"amount"`
	FromCurrency string           `json:"fromCurrency"`
	BaseCurrency string           `json:"baseCurrency"`
	Date         time.Time        `json:"date"`
	Converted    *decimal.Decimal `json:"converted"`
}

// RateHealthResponse lists the freshness of every active foreign currency.
type RateHealthResponse struct {
	BaseCurrency string              `json:"baseCurrency"`
	StaleAfter   int                 `json:"staleAfterDays"`
	Currencies   []domain.RateHealth `json:"currencies"`
}
