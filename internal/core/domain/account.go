package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset       AccountType = "asset"
	Liability   AccountType = "liability"
	Equity      AccountType = "equity"
	Income      AccountType = "income"
	ExpenseType AccountType = "expense"
)

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Income, ExpenseType:
		return true
	}
	return false
}

// IsDebitNormal reports whether the natural balance of the type grows with debits.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == ExpenseType
}

// AccountCategory splits balance-sheet presentation of assets and liabilities.
type AccountCategory string

const (
	LongTerm  AccountCategory = "long_term"
	ShortTerm AccountCategory = "short_term"
)

// IsValid reports whether c is a known category.
func (c AccountCategory) IsValid() bool {
	return c == LongTerm || c == ShortTerm
}

// Account represents a ledger account in the chart of accounts.
// The type must not change once lines reference the account.
type Account struct {
	AccountID   string           `json:"accountID"`
	Code        string           `json:"code"` // unique, sortable classification code, e.g. "1100"
	Name        string           `json:"name"`
	AccountType AccountType      `json:"accountType"`
	Category    *AccountCategory `json:"category,omitempty"`
	IsActive    bool             `json:"isActive"`
	AuditFields
}
