package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// EntryType classifies a journal entry and selects its reference prefix.
type EntryType string

const (
	OpeningBalanceEntry EntryType = "opening_balance"
	ExpensePaymentEntry EntryType = "expense_payment"
	SalesEntry          EntryType = "sales"
	AdjustmentEntry     EntryType = "adjustment"
	ReversalEntry       EntryType = "reversal"
)

var referencePrefixes = map[EntryType]string{
	OpeningBalanceEntry: "OB",
	ExpensePaymentEntry: "EP",
	SalesEntry:          "SL",
	AdjustmentEntry:     "ADJ",
	ReversalEntry:       "REV",
}

// IsValid reports whether t is a known entry type.
func (t EntryType) IsValid() bool {
	_, ok := referencePrefixes[t]
	return ok
}

// ReferencePrefix returns the prefix used when generating references for t.
func (t EntryType) ReferencePrefix() string {
	return referencePrefixes[t]
}

// FormatReference renders a generated reference, e.g. "OB-000123".
func FormatReference(prefix string, seq int64) string {
	return fmt.Sprintf("%s-%06d", prefix, seq)
}

// EntryStatus indicates the state of a journal entry. Posted is terminal.
type EntryStatus string

const (
	Draft  EntryStatus = "draft"
	Posted EntryStatus = "posted"
)

// EntryOrigin links an entry back to the domain object that produced it. At most one field is set.
type EntryOrigin struct {
	ExpenseID *string `json:"expenseID,omitempty"`
	PaymentID *string `json:"paymentID,omitempty"`
	SaleID    *string `json:"saleID,omitempty"`
}

// PaymentOrigin returns an origin pointing at a payment.
func PaymentOrigin(paymentID string) EntryOrigin {
	return EntryOrigin{PaymentID: &paymentID}
}

// SaleOrigin returns an origin pointing at a sale.
func SaleOrigin(saleID string) EntryOrigin {
	return EntryOrigin{SaleID: &saleID}
}

// ExpenseOrigin returns an origin pointing at an expense.
func ExpenseOrigin(expenseID string) EntryOrigin {
	return EntryOrigin{ExpenseID: &expenseID}
}

// IsZero reports whether no origin is set.
func (o EntryOrigin) IsZero() bool {
	return o.ExpenseID == nil && o.PaymentID == nil && o.SaleID == nil
}

// Validate checks that at most one origin key is set.
func (o EntryOrigin) Validate() error {
	set := 0
	for _, id := range []*string{o.ExpenseID, o.PaymentID, o.SaleID} {
		if id != nil {
			set++
		}
	}
	if set > 1 {
		return fmt.Errorf("%w: a journal entry can link to at most one origin", apperrors.ErrValidation)
	}
	return nil
}

// String renders the origin as "kind:id" for logs.
func (o EntryOrigin) String() string {
	switch {
	case o.PaymentID != nil:
		return "payment:" + *o.PaymentID
	case o.SaleID != nil:
		return "sale:" + *o.SaleID
	case o.ExpenseID != nil:
		return "expense:" + *o.ExpenseID
	}
	return "none"
}

// JournalEntryLine is a single debit or credit against one account.
type JournalEntryLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// IsEmpty reports whether both sides are zero. Such lines are dropped before persistence.
func (l JournalEntryLine) IsEmpty() bool {
	return l.Debit.IsZero() && l.Credit.IsZero()
}

// Validate checks a single line: an account, no negative amounts, and not both sides set.
func (l JournalEntryLine) Validate() error {
	if l.AccountID == "" {
		return fmt.Errorf("%w: line is missing an account", apperrors.ErrValidation)
	}
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return fmt.Errorf("%w: line amounts cannot be negative (account %s)", apperrors.ErrValidation, l.AccountID)
	}
	if l.Debit.IsPositive() && l.Credit.IsPositive() {
		return fmt.Errorf("%w: line cannot carry both a debit and a credit (account %s)", apperrors.ErrValidation, l.AccountID)
	}
	return nil
}

// Amount returns the nonzero side of the line.
func (l JournalEntryLine) Amount() decimal.Decimal {
	if l.Debit.IsPositive() {
		return l.Debit
	}
	return l.Credit
}

// Swapped returns a copy with debit and credit exchanged, used for reversals.
func (l JournalEntryLine) Swapped() JournalEntryLine {
	l.Debit, l.Credit = l.Credit, l.Debit
	return l
}

// LineTotals holds the debit and credit sums of a set of lines.
type LineTotals struct {
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

// Add returns the sum of two totals.
func (t LineTotals) Add(o LineTotals) LineTotals {
	return LineTotals{Debit: t.Debit.Add(o.Debit), Credit: t.Credit.Add(o.Credit)}
}

// Difference returns debit minus credit.
func (t LineTotals) Difference() decimal.Decimal {
	return t.Debit.Sub(t.Credit)
}

// JournalEntry represents a balanced financial event composed of lines.
type JournalEntry struct {
	EntryID           string             `json:"entryID"`
	EntryDate         time.Time          `json:"entryDate"`
	Reference         string             `json:"reference"`
	EntryType         EntryType          `json:"entryType"`
	Description       string             `json:"description"`
	Status            EntryStatus        `json:"status"`
	Origin            EntryOrigin        `json:"origin"`
	ReversesEntryID   *string            `json:"reversesEntryID,omitempty"`
	ReversedByEntryID *string            `json:"reversedByEntryID,omitempty"`
	PostedAt          *time.Time         `json:"postedAt,omitempty"`
	Lines             []JournalEntryLine `json:"lines,omitempty"`
	AuditFields
}

// Totals sums the entry's lines.
func (e *JournalEntry) Totals() LineTotals {
	totals := LineTotals{Debit: decimal.Zero, Credit: decimal.Zero}
	for _, l := range e.Lines {
		totals.Debit = totals.Debit.Add(l.Debit)
		totals.Credit = totals.Credit.Add(l.Credit)
	}
	return totals
}

// IsBalanced reports whether debits equal credits within BalanceTolerance.
func (e *JournalEntry) IsBalanced() bool {
	return e.Totals().Difference().Abs().LessThanOrEqual(BalanceTolerance)
}

// IsReversed reports whether a later entry reverses this one.
func (e *JournalEntry) IsReversed() bool {
	return e.ReversedByEntryID != nil
}

// NewJournalEntry is the header input of a journal entry.
type NewJournalEntry struct {
	EntryDate   time.Time
	EntryType   EntryType
	Description string
	Reference   string // generated when empty
	Status      EntryStatus
	CreatedBy   string
	Origin      EntryOrigin
	// ReversesEntryID is only set by the reversal path.
	ReversesEntryID *string
}
