package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset       AccountType = "asset"
	Liability   AccountType = "liability"
	Equity      AccountType = "equity"
	Income      AccountType = "income"
	ExpenseType AccountType = "expense"
)

// Account represents a row of the accounts table.
type Account struct {
	AccountID   string      `db:"account_id"`
	Code        string      `db:"code"`
	Name        string      `db:"name"`
	AccountType AccountType `db:"account_type"`
	Category    *string     `db:"category"` // Nullable
	IsActive    bool        `db:"is_active"`
	AuditFields
}
