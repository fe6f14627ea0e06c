package mapping

import (
	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to a model JournalEntry.
// Lines are mapped separately with ToModelJournalEntryLines.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:           d.EntryID,
		EntryDate:         d.EntryDate,
		Reference:         d.Reference,
		EntryType:         string(d.EntryType),
		Description:       d.Description,
		Status:            models.JournalStatus(d.Status),
		ExpenseID:         d.Origin.ExpenseID,
		PaymentID:         d.Origin.PaymentID,
		SaleID:            d.Origin.SaleID,
		ReversesEntryID:   d.ReversesEntryID,
		ReversedByEntryID: d.ReversedByEntryID,
		PostedAt:          d.PostedAt,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry without lines.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     m.EntryID,
		EntryDate:   domain.DateOnly(m.EntryDate),
		Reference:   m.Reference,
		EntryType:   domain.EntryType(m.EntryType),
		Description: m.Description,
		Status:      domain.EntryStatus(m.Status),
		Origin: domain.EntryOrigin{
			ExpenseID: m.ExpenseID,
			PaymentID: m.PaymentID,
			SaleID:    m.SaleID,
		},
		ReversesEntryID:   m.ReversesEntryID,
		ReversedByEntryID: m.ReversedByEntryID,
		PostedAt:          m.PostedAt,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalEntryLines converts domain lines to model lines, numbering them in order.
func ToModelJournalEntryLines(entryID string, ds []domain.JournalEntryLine) []models.JournalEntryLine {
	ms := make([]models.JournalEntryLine, len(ds))
	for i, d := range ds {
		ms[i] = models.JournalEntryLine{
			LineID:      d.LineID,
			EntryID:     entryID,
			LineNo:      i + 1,
			AccountID:   d.AccountID,
			Debit:       d.Debit,
			Credit:      d.Credit,
			Description: d.Description,
		}
	}
	return ms
}

// ToDomainJournalEntryLine converts a model line to a domain line
func ToDomainJournalEntryLine(m models.JournalEntryLine) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
	}
}
