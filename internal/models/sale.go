package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale represents a row of the sales table.
type Sale struct {
	SaleID           string              `db:"sale_id"`
	InvoiceNumber    string              `db:"invoice_number"`
	DocumentType     string              `db:"document_type"`
	Status           string              `db:"status"`
	Amount           decimal.Decimal     `db:"amount"`
	CurrencyCode     string              `db:"currency_code"`
	AmountBase       decimal.NullDecimal `db:"amount_base"`
	SaleDate         time.Time           `db:"sale_date"`
	CustomerName     string              `db:"customer_name"`
	IncomeAccountID  *string             `db:"income_account_id"`
	DepositAccountID *string             `db:"deposit_account_id"`
	AuditFields
}
