package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the derived settlement state of an expense or sale. It is never stored.
type PaymentStatus string

const (
	Unpaid  PaymentStatus = "unpaid"
	Partial PaymentStatus = "partial"
	Paid    PaymentStatus = "paid"
)

// Expense is a cost incurred by the school. Its payment status is derived from linked payments.
type Expense struct {
	ExpenseID        string           `json:"expenseID"`
	Reference        string           `json:"reference"`
	Description      string           `json:"description"`
	ExpenseAccountID string           `json:"expenseAccountID"`
	Amount           decimal.Decimal  `json:"amount"`
	Charges          decimal.Decimal  `json:"charges"` // bank or processing fees on top of the amount
	CurrencyCode     string           `json:"currencyCode"`
	AmountBase       *decimal.Decimal `json:"amountBase,omitempty"` // nil when no rate was available
	ExpenseDate      time.Time        `json:"expenseDate"`
	AuditFields
}

// BaseAmount prefers the converted amount and falls back to the native amount.
func (e *Expense) BaseAmount() decimal.Decimal {
	if e.AmountBase != nil {
		return *e.AmountBase
	}
	return e.Amount
}

// TotalDue is the base amount plus charges.
func (e *Expense) TotalDue() decimal.Decimal {
	return e.BaseAmount().Add(e.Charges)
}

// PaymentSummary is the computed settlement view of a document.
type PaymentSummary struct {
	TotalDue    decimal.Decimal `json:"totalDue"`
	TotalPaid   decimal.Decimal `json:"totalPaid"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Status      PaymentStatus   `json:"status"`
}

// DerivePaymentStatus computes outstanding balance and status from what is due and what was paid.
//
//	outstanding = round(totalDue - totalPaid, 2)
//	paid     if outstanding <= 0.01
//	partial  if 0.01 < outstanding < totalDue
//	unpaid   otherwise
func DerivePaymentStatus(totalDue, totalPaid decimal.Decimal) PaymentSummary {
	outstanding := totalDue.Sub(totalPaid).Round(MoneyPlaces)
	status := Unpaid
	switch {
	case outstanding.LessThanOrEqual(BalanceTolerance):
		status = Paid
	case outstanding.LessThan(totalDue):
		status = Partial
	}
	return PaymentSummary{
		TotalDue:    totalDue,
		TotalPaid:   totalPaid,
		Outstanding: outstanding,
		Status:      status,
	}
}

// SummarizeExpense derives the payment summary of an expense from its payments.
// Rejected payments do not count towards the paid total.
func SummarizeExpense(expense Expense, payments []Payment) PaymentSummary {
	paid := decimal.Zero
	for _, p := range payments {
		if p.ExpenseID != expense.ExpenseID || !p.CountsTowardsBalance() {
			continue
		}
		paid = paid.Add(p.Amount)
	}
	return DerivePaymentStatus(expense.TotalDue(), paid)
}

// ExpenseCounterKey is the counter used to number expenses without a caller-supplied reference.
const ExpenseCounterKey = "expense"

// ExpensePrefix prefixes generated expense references, e.g. "EXP-000001".
const ExpensePrefix = "EXP"
