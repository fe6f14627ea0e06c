package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft  JournalStatus = "draft"
	Posted JournalStatus = "posted"
)

// JournalEntry represents a row of journal_entries. Origin and reversal links are nullable.
type JournalEntry struct {
	EntryID           string        `db:"entry_id"`
	EntryDate         time.Time     `db:"entry_date"`
	Reference         string        `db:"reference"`
	EntryType         string        `db:"entry_type"`
	Description       string        `db:"description"`
	Status            JournalStatus `db:"status"`
	ExpenseID         *string       `db:"expense_id"`
	PaymentID         *string       `db:"payment_id"`
	SaleID            *string       `db:"sale_id"`
	ReversesEntryID   *string       `db:"reverses_entry_id"`
	ReversedByEntryID *string       `db:"reversed_by_entry_id"`
	PostedAt          *time.Time    `db:"posted_at"`
	AuditFields
}

// JournalEntryLine represents a row of journal_entry_lines.
type JournalEntryLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"journal_entry_id"`
	LineNo      int             `db:"line_no"`
	AccountID   string          `db:"account_id"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description string          `db:"description"`
}
