package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency represents a currency the school transacts in.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // ISO 4217 code, e.g. "KES"
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}

// RateSource records where an exchange rate came from.
type RateSource string

const (
	RateSourceManual RateSource = "manual"
	RateSourceAPI    RateSource = "api"
)

// IsValid reports whether s is a known rate source.
func (s RateSource) IsValid() bool {
	return s == RateSourceManual || s == RateSourceAPI
}

// ExchangeRate is the directional rate from one currency to another on a given date.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	EffectiveDate    time.Time       `json:"effectiveDate"`
	Source           RateSource      `json:"source"`
	AuditFields
}

// RateStatus is the freshness of the latest rate for a currency.
type RateStatus string

const (
	RateFresh   RateStatus = "fresh"
	RateStale   RateStatus = "stale"
	RateMissing RateStatus = "missing"
)

// RateHealth reports freshness for one currency against the base currency.
type RateHealth struct {
	CurrencyCode       string     `json:"currencyCode"`
	Status             RateStatus `json:"status"`
	LatestEffective    *time.Time `json:"latestEffective,omitempty"`
	DaysSinceEffective int        `json:"daysSinceEffective"`
}

// ClassifyRate decides the freshness of a rate last effective on latest, as seen on today.
func ClassifyRate(latest *time.Time, today time.Time, staleDays int) (RateStatus, int) {
	if latest == nil {
		return RateMissing, 0
	}
	days := int(DateOnly(today).Sub(DateOnly(*latest)).Hours() / 24)
	if days > staleDays {
		return RateStale, days
	}
	return RateFresh, days
}

// DateOnly truncates t to midnight UTC of its calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
