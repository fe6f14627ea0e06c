package dto

import (
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one debit or credit line of a manual entry.
type JournalLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Debit       decimal.Decimal `json:"debit" binding:"decimal_nonneg"`
	Credit      decimal.Decimal `json:"credit" binding:"decimal_nonneg"`
	Description string          `json:"description" binding:"max=500"`
}

// CreateJournalEntryRequest defines the data needed to create a manual journal entry.
type CreateJournalEntryRequest struct {
	EntryDate   time.Time            `json:"entryDate" binding:"required"`
	EntryType   domain.EntryType     `json:"entryType" binding:"required,oneof=opening_balance expense_payment sales adjustment"`
	Description string               `json:"description" binding:"max=1000"`
	Reference   string               `json:"reference" binding:"max=50"` // generated when empty
	Post        bool                 `json:"post"`                       // create directly as posted
	Lines       []JournalLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ReverseJournalEntryRequest carries the optional reason of a reversal.
type ReverseJournalEntryRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// OpeningBalancesRequest submits the opening position of the books.
type OpeningBalancesRequest struct {
	Date        time.Time            `json:"date" binding:"required"`
	Description string               `json:"description" binding:"max=1000"`
	Lines       []JournalLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToDomainLines converts request lines into domain lines.
func ToDomainLines(lines []JournalLineRequest) []domain.JournalEntryLine {
	out := make([]domain.JournalEntryLine, len(lines))
	for i, l := range lines {
		out[i] = domain.JournalEntryLine{
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}
	return out
}

// JournalLineResponse is one persisted line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID           string                `json:"entryID"`
	EntryDate         time.Time             `json:"entryDate"`
	Reference         string                `json:"reference"`
	EntryType         domain.EntryType      `json:"entryType"`
	Description       string                `json:"description"`
	Status            domain.EntryStatus    `json:"status"`
	Origin            domain.EntryOrigin    `json:"origin"`
	ReversesEntryID   *string               `json:"reversesEntryID,omitempty"`
	ReversedByEntryID *string               `json:"reversedByEntryID,omitempty"`
	PostedAt          *time.Time            `json:"postedAt,omitempty"`
	TotalDebit        decimal.Decimal       `json:"totalDebit"`
	TotalCredit       decimal.Decimal       `json:"totalCredit"`
	Lines             []JournalLineResponse `json:"lines"`
	CreatedAt         time.Time             `json:"createdAt"`
	CreatedBy         string                `json:"createdBy"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO.
func ToJournalEntryResponse(entry *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(entry.Lines))
	for i, l := range entry.Lines {
		lines[i] = JournalLineResponse{
			LineID:      l.LineID,
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}
	totals := entry.Totals()
	return JournalEntryResponse{
		EntryID:           entry.EntryID,
		EntryDate:         entry.EntryDate,
		Reference:         entry.Reference,
		EntryType:         entry.EntryType,
		Description:       entry.Description,
		Status:            entry.Status,
		Origin:            entry.Origin,
		ReversesEntryID:   entry.ReversesEntryID,
		ReversedByEntryID: entry.ReversedByEntryID,
		PostedAt:          entry.PostedAt,
		TotalDebit:        totals.Debit,
		TotalCredit:       totals.Credit,
		Lines:             lines,
		CreatedAt:         entry.CreatedAt,
		CreatedBy:         entry.CreatedBy,
	}
}

// ListJournalEntriesParams defines query parameters for listing entries.
type ListJournalEntriesParams struct {
	Limit     int        `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string    `form:"nextToken"`
	From      *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To        *time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
}

// ListJournalEntriesResponse wraps a page of entries (without lines).
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}
