package models

// Currency represents a supported currency.
type Currency struct {
	CurrencyCode string `db:"currency_code"` // Primary Key (e.g., "KES")
	Symbol       string `db:"symbol"`
	Name         string `db:"name"`
	IsActive     bool   `db:"is_active"`
	AuditFields
}
