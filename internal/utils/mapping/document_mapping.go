package mapping

import (
	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/models"
	"github.com/shopspring/decimal"
)

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func fromNullDecimal(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:        d.ExpenseID,
		Reference:        d.Reference,
		Description:      d.Description,
		ExpenseAccountID: d.ExpenseAccountID,
		Amount:           d.Amount,
		Charges:          d.Charges,
		CurrencyCode:     d.CurrencyCode,
		AmountBase:       toNullDecimal(d.AmountBase),
		ExpenseDate:      d.ExpenseDate,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:        m.ExpenseID,
		Reference:        m.Reference,
		Description:      m.Description,
		ExpenseAccountID: m.ExpenseAccountID,
		Amount:           m.Amount,
		Charges:          m.Charges,
		CurrencyCode:     m.CurrencyCode,
		AmountBase:       fromNullDecimal(m.AmountBase),
		ExpenseDate:      domain.DateOnly(m.ExpenseDate),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:        d.PaymentID,
		ExpenseID:        d.ExpenseID,
		PaymentDate:      d.PaymentDate,
		PaymentAccountID: nullableString(d.PaymentAccountID),
		Amount:           d.Amount,
		PaymentMethod:    string(d.PaymentMethod),
		PaymentReference: d.PaymentReference,
		VoucherNumber:    d.VoucherNumber,
		Status:           string(d.Status),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:        m.PaymentID,
		ExpenseID:        m.ExpenseID,
		PaymentDate:      domain.DateOnly(m.PaymentDate),
		PaymentAccountID: derefString(m.PaymentAccountID),
		Amount:           m.Amount,
		PaymentMethod:    domain.PaymentMethod(m.PaymentMethod),
		PaymentReference: m.PaymentReference,
		VoucherNumber:    m.VoucherNumber,
		Status:           domain.ApprovalStatus(m.Status),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentSlice converts a slice of model Payments to a slice of domain Payments
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}

// ToModelSale converts a domain Sale to a model Sale
func ToModelSale(d domain.Sale) models.Sale {
	return models.Sale{
		SaleID:           d.SaleID,
		InvoiceNumber:    d.InvoiceNumber,
		DocumentType:     string(d.DocumentType),
		Status:           string(d.Status),
		Amount:           d.Amount,
		CurrencyCode:     d.CurrencyCode,
		AmountBase:       toNullDecimal(d.AmountBase),
		SaleDate:         d.SaleDate,
		CustomerName:     d.CustomerName,
		IncomeAccountID:  d.IncomeAccountID,
		DepositAccountID: d.DepositAccountID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSale converts a model Sale to a domain Sale
func ToDomainSale(m models.Sale) domain.Sale {
	return domain.Sale{
		SaleID:           m.SaleID,
		InvoiceNumber:    m.InvoiceNumber,
		DocumentType:     domain.DocumentType(m.DocumentType),
		Status:           domain.SaleStatus(m.Status),
		Amount:           m.Amount,
		CurrencyCode:     m.CurrencyCode,
		AmountBase:       fromNullDecimal(m.AmountBase),
		SaleDate:         domain.DateOnly(m.SaleDate),
		CustomerName:     m.CustomerName,
		IncomeAccountID:  m.IncomeAccountID,
		DepositAccountID: m.DepositAccountID,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
