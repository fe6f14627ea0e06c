package posting

import (
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
)

// EventKind selects the posting rule for an event.
type EventKind string

const (
	ExpenseRecorded          EventKind = "expense_recorded"
	PaymentRecorded          EventKind = "payment_recorded"
	SaleSaved                EventKind = "sale_saved"
	OpeningBalancesSubmitted EventKind = "opening_balances_submitted"
)

// Event is a domain event that may produce a journal entry.
type Event interface {
	Kind() EventKind
	// Origin links the resulting entry back to its source document. Zero for events
	// that are not tied to a document.
	Origin() domain.EntryOrigin
}

// ExpenseRecordedEvent is raised when an expense is created or edited.
type ExpenseRecordedEvent struct {
	Expense domain.Expense
}

func (ExpenseRecordedEvent) Kind() EventKind { return ExpenseRecorded }

func (e ExpenseRecordedEvent) Origin() domain.EntryOrigin {
	return domain.ExpenseOrigin(e.Expense.ExpenseID)
}

// PaymentRecordedEvent is raised when a payment against an expense is created or edited.
type PaymentRecordedEvent struct {
	Payment domain.Payment
	Expense domain.Expense
}

func (PaymentRecordedEvent) Kind() EventKind { return PaymentRecorded }

func (e PaymentRecordedEvent) Origin() domain.EntryOrigin {
	return domain.PaymentOrigin(e.Payment.PaymentID)
}

// SaleSavedEvent is raised when a sale is created or edited.
type SaleSavedEvent struct {
	Sale domain.Sale
}

func (SaleSavedEvent) Kind() EventKind { return SaleSaved }

func (e SaleSavedEvent) Origin() domain.EntryOrigin {
	return domain.SaleOrigin(e.Sale.SaleID)
}

// OpeningBalancesSubmittedEvent carries the opening position of the books.
type OpeningBalancesSubmittedEvent struct {
	Date        time.Time
	Description string
	Lines       []domain.JournalEntryLine
}

func (OpeningBalancesSubmittedEvent) Kind() EventKind { return OpeningBalancesSubmitted }

func (OpeningBalancesSubmittedEvent) Origin() domain.EntryOrigin { return domain.EntryOrigin{} }

// Draft is the journal entry a rule wants posted.
type Draft struct {
	EntryType   domain.EntryType
	EntryDate   time.Time
	Description string
	Origin      domain.EntryOrigin
	Lines       []domain.JournalEntryLine
}

// Chart holds the resolved account ids of the default chart roles.
// An empty id means the role is not configured.
type Chart struct {
	Cash                 string
	Receivable           string
	Payable              string
	OpeningBalanceEquity string
	Income               string
}
