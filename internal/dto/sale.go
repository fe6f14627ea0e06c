package dto

import (
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaveSaleRequest defines the data needed to create or replace a sale.
type SaveSaleRequest struct {
	InvoiceNumber    string              `json:"invoiceNumber" binding:"required,max=50"`
	DocumentType     domain.DocumentType `json:"documentType" binding:"omitempty,oneof=invoice estimate quotation sales_order till_sale"`
	Status           domain.SaleStatus   `json:"status" binding:"omitempty,oneof=unpaid partial paid cancelled"`
	Amount           decimal.Decimal     `json:"amount" binding:"required,decimal_nonneg"`
	CurrencyCode     string              `json:"currencyCode" binding:"required,len=3,uppercase"`
	SaleDate         time.Time           `json:"saleDate" binding:"required"`
	CustomerName     string              `json:"customerName" binding:"max=255"`
	IncomeAccountID  *string             `json:"incomeAccountID"`
	DepositAccountID *string             `json:"depositAccountID"`
}

// SaleResponse defines the data returned for a sale.
type SaleResponse struct {
	SaleID           string                `json:"saleID"`
	InvoiceNumber    string                `json:"invoiceNumber"`
	DocumentType     domain.DocumentType   `json:"documentType"`
	Status           domain.SaleStatus     `json:"status"`
	Amount           decimal.Decimal       `json:"amount"`
	CurrencyCode     string                `json:"currencyCode"`
	AmountBase       *decimal.Decimal      `json:"amountBase,omitempty"`
	SaleDate         time.Time             `json:"saleDate"`
	CustomerName     string                `json:"customerName"`
	IncomeAccountID  *string               `json:"incomeAccountID,omitempty"`
	DepositAccountID *string               `json:"depositAccountID,omitempty"`
	Summary          domain.PaymentSummary `json:"summary"`
	CreatedAt        time.Time             `json:"createdAt"`
	CreatedBy        string                `json:"createdBy"`
}

// ToSaleResponse converts a domain.Sale to its response DTO.
func ToSaleResponse(s *domain.Sale) SaleResponse {
	return SaleResponse{
		SaleID:           s.SaleID,
		InvoiceNumber:    s.InvoiceNumber,
		DocumentType:     s.DocumentType,
		Status:           s.Status,
		Amount:           s.Amount,
		CurrencyCode:     s.CurrencyCode,
		AmountBase:       s.AmountBase,
		SaleDate:         s.SaleDate,
		CustomerName:     s.CustomerName,
		IncomeAccountID:  s.IncomeAccountID,
		DepositAccountID: s.DepositAccountID,
		Summary:          s.Summary(),
		CreatedAt:        s.CreatedAt,
		CreatedBy:        s.CreatedBy,
	}
}
