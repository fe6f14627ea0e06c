package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a row of the expenses table.
type Expense struct {
	ExpenseID        string              `db:"expense_id"`
	Reference        string              `db:"reference"`
	Description      string              `db:"description"`
	ExpenseAccountID string              `db:"expense_account_id"`
	Amount           decimal.Decimal     `db:"amount"`
	Charges          decimal.Decimal     `db:"charges"`
	CurrencyCode     string              `db:"currency_code"`
	AmountBase       decimal.NullDecimal `db:"amount_base"`
	ExpenseDate      time.Time           `db:"expense_date"`
	AuditFields
}

// Payment represents a row of the payments table.
type Payment struct {
	PaymentID        string          `db:"payment_id"`
	ExpenseID        string          `db:"expense_id"`
	PaymentDate      time.Time       `db:"payment_date"`
	PaymentAccountID *string         `db:"payment_account_id"` // Nullable; the default cash account is used
	Amount           decimal.Decimal `db:"amount"`
	PaymentMethod    string          `db:"payment_method"`
	PaymentReference string          `db:"payment_reference"`
	VoucherNumber    string          `db:"voucher_number"`
	Status           string          `db:"status"`
	AuditFields
}
