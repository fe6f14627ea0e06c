package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType is the kind of sales document.
type DocumentType string

const (
	Invoice    DocumentType = "invoice"
	Estimate   DocumentType = "estimate"
	Quotation  DocumentType = "quotation"
	SalesOrder DocumentType = "sales_order"
	TillSale   DocumentType = "till_sale"
)

// IsValid reports whether d is a known document type.
func (d DocumentType) IsValid() bool {
	switch d {
	case Invoice, Estimate, Quotation, SalesOrder, TillSale:
		return true
	}
	return false
}

// PostsToLedger reports whether documents of this type affect the ledger.
// Only invoices and till sales are financial; the rest are drafts.
func (d DocumentType) PostsToLedger() bool {
	return d == Invoice || d == TillSale
}

// SaleStatus is the stored settlement status of a sale.
type SaleStatus string

const (
	SaleUnpaid    SaleStatus = "unpaid"
	SalePartial   SaleStatus = "partial"
	SalePaid      SaleStatus = "paid"
	SaleCancelled SaleStatus = "cancelled"
)

// IsValid reports whether s is a known sale status.
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleUnpaid, SalePartial, SalePaid, SaleCancelled:
		return true
	}
	return false
}

// Sale is an invoice, till sale or a non-financial sales document.
type Sale struct {
	SaleID           string           `json:"saleID"`
	InvoiceNumber    string           `json:"invoiceNumber"`
	DocumentType     DocumentType     `json:"documentType"`
	Status           SaleStatus       `json:"status"`
	Amount           decimal.Decimal  `json:"amount"`
	CurrencyCode     string           `json:"currencyCode"`
	AmountBase       *decimal.Decimal `json:"amountBase,omitempty"`
	SaleDate         time.Time        `json:"saleDate"`
	CustomerName     string           `json:"customerName"`
	IncomeAccountID  *string          `json:"incomeAccountID,omitempty"`  // overrides the default income account
	DepositAccountID *string          `json:"depositAccountID,omitempty"` // overrides the default cash/bank account
	AuditFields
}

// BaseAmount prefers the converted amount and falls back to the native amount.
func (s *Sale) BaseAmount() decimal.Decimal {
	if s.AmountBase != nil {
		return *s.AmountBase
	}
	return s.Amount
}

// IsSettledAtCreation reports whether the sale is received in cash rather than on account.
func (s *Sale) IsSettledAtCreation() bool {
	return s.DocumentType == TillSale || s.Status == SalePaid
}

// Summary reports the sale's outstanding amount. Till sales and paid invoices are settled;
// non-financial documents and cancelled sales owe nothing.
func (s *Sale) Summary() PaymentSummary {
	total := s.BaseAmount()
	switch {
	case !s.DocumentType.PostsToLedger() || s.Status == SaleCancelled:
		return PaymentSummary{TotalDue: decimal.Zero, TotalPaid: decimal.Zero, Outstanding: decimal.Zero, Status: Paid}
	case s.IsSettledAtCreation():
		return DerivePaymentStatus(total, total)
	case s.Status == SalePartial:
		// partial receipts are tracked outside the core; report the stored state
		return PaymentSummary{TotalDue: total, TotalPaid: decimal.Zero, Outstanding: total, Status: Partial}
	}
	return DerivePaymentStatus(total, decimal.Zero)
}
