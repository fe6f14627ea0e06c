package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how a payment was settled.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCheque       PaymentMethod = "cheque"
	MethodMobileMoney  PaymentMethod = "mobile_money"
	MethodCard         PaymentMethod = "card"
)

// IsValid reports whether m is a known payment method.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodCheque, MethodMobileMoney, MethodCard:
		return true
	}
	return false
}

// ApprovalStatus is the approval workflow state of a payment. It is independent of the
// derived PaymentStatus of the expense being paid.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// IsValid reports whether s is a known approval status.
func (s ApprovalStatus) IsValid() bool {
	return s == ApprovalPending || s == ApprovalApproved || s == ApprovalRejected
}

// Payment settles (part of) an expense from a cash or bank account.
type Payment struct {
	PaymentID        string          `json:"paymentID"`
	ExpenseID        string          `json:"expenseID"`
	PaymentDate      time.Time       `json:"paymentDate"`
	PaymentAccountID string          `json:"paymentAccountID"` // the cash/bank source that is credited
	Amount           decimal.Decimal `json:"amount"`
	PaymentMethod    PaymentMethod   `json:"paymentMethod"`
	PaymentReference string          `json:"paymentReference"`
	VoucherNumber    string          `json:"voucherNumber"`
	Status           ApprovalStatus  `json:"status"`
	AuditFields
}

// CountsTowardsBalance reports whether the payment reduces the outstanding balance.
func (p Payment) CountsTowardsBalance() bool {
	return p.Status != ApprovalRejected
}

// VoucherCounterKey is the counter used to number payment vouchers.
const VoucherCounterKey = "payment_voucher"

// VoucherPrefix prefixes generated voucher numbers, e.g. "PV-000001".
const VoucherPrefix = "PV"
