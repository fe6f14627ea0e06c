package domain_test

import (
	"testing"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func stringPtr(s string) *string { return &s }

func TestJournalEntryLine_Validate(t *testing.T) {
	tests := []struct {
		name    string
		line    domain.JournalEntryLine
		wantErr bool
	}{
		{name: "debit only", line: domain.JournalEntryLine{AccountID: "a", Debit: d("10"), Credit: decimal.Zero}},
		{name: "credit only", line: domain.JournalEntryLine{AccountID: "a", Debit: decimal.Zero, Credit: d("10")}},
		{name: "both sides", line: domain.JournalEntryLine{AccountID: "a", Debit: d("10"), Credit: d("5")}, wantErr: true},
		{name: "negative debit", line: domain.JournalEntryLine{AccountID: "a", Debit: d("-1"), Credit: decimal.Zero}, wantErr: true},
		{name: "missing account", line: domain.JournalEntryLine{Debit: d("1"), Credit: decimal.Zero}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.line.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestJournalEntryLine_IsEmptyAndSwapped(t *testing.T) {
	empty := domain.JournalEntryLine{AccountID: "a", Debit: decimal.Zero, Credit: decimal.Zero}
	assert.True(t, empty.IsEmpty())

	line := domain.JournalEntryLine{AccountID: "a", Debit: d("12.50"), Credit: decimal.Zero}
	assert.False(t, line.IsEmpty())
	swapped := line.Swapped()
	assert.True(t, swapped.Credit.Equal(d("12.50")))
	assert.True(t, swapped.Debit.IsZero())
	assert.True(t, line.Debit.Equal(d("12.50")), "original must not change")
}

func TestJournalEntry_IsBalanced(t *testing.T) {
	tests := []struct {
		name  string
		lines []domain.JournalEntryLine
		want  bool
	}{
		{
			name: "exact",
			lines: []domain.JournalEntryLine{
				{AccountID: "a", Debit: d("100"), Credit: decimal.Zero},
				{AccountID: "b", Debit: decimal.Zero, Credit: d("100")},
			},
			want: true,
		},
		{
			name: "within tolerance",
			lines: []domain.JournalEntryLine{
				{AccountID: "a", Debit: d("100.01"), Credit: decimal.Zero},
				{AccountID: "b", Debit: decimal.Zero, Credit: d("100")},
			},
			want: true,
		},
		{
			name: "outside tolerance",
			lines: []domain.JournalEntryLine{
				{AccountID: "a", Debit: d("100.02"), Credit: decimal.Zero},
				{AccountID: "b", Debit: decimal.Zero, Credit: d("100")},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := domain.JournalEntry{Lines: tt.lines}
			assert.Equal(t, tt.want, entry.IsBalanced())
		})
	}
}

func TestEntryOrigin_Validate(t *testing.T) {
	assert.NoError(t, domain.EntryOrigin{}.Validate())
	assert.NoError(t, domain.PaymentOrigin("p1").Validate())

	both := domain.EntryOrigin{PaymentID: stringPtr("p1"), SaleID: stringPtr("s1")}
	assert.ErrorIs(t, both.Validate(), apperrors.ErrValidation)
	assert.Equal(t, "sale:s1", domain.SaleOrigin("s1").String())
}

func TestEntryType_ReferencePrefix(t *testing.T) {
	assert.Equal(t, "OB", domain.OpeningBalanceEntry.ReferencePrefix())
	assert.Equal(t, "EP", domain.ExpensePaymentEntry.ReferencePrefix())
	assert.Equal(t, "SL", domain.SalesEntry.ReferencePrefix())
	assert.Equal(t, "ADJ", domain.AdjustmentEntry.ReferencePrefix())
	assert.Equal(t, "REV", domain.ReversalEntry.ReferencePrefix())
	assert.False(t, domain.EntryType("bogus").IsValid())
	assert.Equal(t, "OB-000123", domain.FormatReference("OB", 123))
}
