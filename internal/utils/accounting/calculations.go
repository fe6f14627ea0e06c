package accounting

import (
	"fmt"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NaturalBalance applies the account type's normal sign to debit and credit totals.
// This is used in both services and repositories to ensure consistent accounting logic.
//
//	ASSET/EXPENSE               -> debit - credit
//	LIABILITY/EQUITY/INCOME     -> credit - debit
func NaturalBalance(accountType domain.AccountType, debit, credit decimal.Decimal) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.ExpenseType:
		return debit.Sub(credit), nil
	case domain.Liability, domain.Equity, domain.Income:
		return credit.Sub(debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// BalanceColumns places a natural balance in the debit or credit column of a trial balance.
// A negative natural balance lands in the opposite column.
func BalanceColumns(accountType domain.AccountType, balance decimal.Decimal) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	positiveIsDebit := accountType.IsDebitNormal()
	if balance.IsNegative() {
		positiveIsDebit = !positiveIsDebit
		balance = balance.Abs()
	}
	if positiveIsDebit {
		return balance, credit
	}
	return debit, balance
}

// NormalizeLines validates lines, rounds amounts to cents and drops lines where both sides are zero.
func NormalizeLines(lines []domain.JournalEntryLine) ([]domain.JournalEntryLine, error) {
	kept := make([]domain.JournalEntryLine, 0, len(lines))
	for i, line := range lines {
		line.Debit = Round(line.Debit)
		line.Credit = Round(line.Credit)
		if line.IsEmpty() {
			continue
		}
		if err := line.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		kept = append(kept, line)
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("%w: journal entry must have at least one non-zero line", apperrors.ErrValidation)
	}
	return kept, nil
}

// SumLines returns the debit and credit totals of lines.
func SumLines(lines []domain.JournalEntryLine) domain.LineTotals {
	entry := domain.JournalEntry{Lines: lines}
	return entry.Totals()
}

// ValidateBalance checks that debits equal credits within domain.BalanceTolerance.
func ValidateBalance(lines []domain.JournalEntryLine) error {
	totals := SumLines(lines)
	diff := totals.Difference().Abs()
	if diff.GreaterThan(domain.BalanceTolerance) {
		return fmt.Errorf("%w: debits %s, credits %s, difference %s",
			apperrors.ErrUnbalancedEntry, totals.Debit.StringFixed(2), totals.Credit.StringFixed(2), diff.StringFixed(2))
	}
	return nil
}

// SameLines reports whether two line sets post the same amounts to the same accounts,
// ignoring order, ids and descriptions.
func SameLines(a, b []domain.JournalEntryLine) bool {
	if len(a) != len(b) {
		return false
	}
	net := make(map[string]decimal.Decimal, len(a))
	for _, l := range a {
		key := l.AccountID
		net[key] = net[key].Add(l.Debit).Sub(l.Credit)
	}
	for _, l := range b {
		key := l.AccountID
		net[key] = net[key].Sub(l.Debit).Add(l.Credit)
	}
	for _, v := range net {
		if !v.Round(domain.MoneyPlaces).IsZero() {
			return false
		}
	}
	return true
}

// Round rounds an amount to cents.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(domain.MoneyPlaces)
}
