package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountTotals holds an account's debit and credit sums over a period.
type AccountTotals struct {
	Account Account
	LineTotals
}

// NaturalBalance returns the balance with the account type's normal sign.
func (a AccountTotals) NaturalBalance() decimal.Decimal {
	if a.Account.AccountType.IsDebitNormal() {
		return a.Debit.Sub(a.Credit)
	}
	return a.Credit.Sub(a.Debit)
}

// TrialBalanceRow is one account in a trial balance.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceReport lists every account with a nonzero balance as of a date.
type TrialBalanceReport struct {
	AsOf        time.Time         `json:"asOf"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	IsBalanced  bool              `json:"isBalanced"`
}

// ReportLine is one account amount in a statement section.
type ReportLine struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Amount      decimal.Decimal `json:"amount"`
}

// ReportSection groups statement lines with their total.
type ReportSection struct {
	Lines []ReportLine    `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// Add appends a line and accumulates the total.
func (s *ReportSection) Add(line ReportLine) {
	s.Lines = append(s.Lines, line)
	s.Total = s.Total.Add(line.Amount)
}

// NewReportSection returns an empty section with a zero total.
func NewReportSection() ReportSection {
	return ReportSection{Lines: []ReportLine{}, Total: decimal.Zero}
}

// ProfitAndLossReport covers income and expenses over a period.
type ProfitAndLossReport struct {
	From      time.Time       `json:"from"`
	To        time.Time       `json:"to"`
	Income    ReportSection   `json:"income"`
	Expenses  ReportSection   `json:"expenses"`
	NetProfit decimal.Decimal `json:"netProfit"`
}

// CategorisedSection splits a balance sheet side by account category.
type CategorisedSection struct {
	LongTerm      ReportSection   `json:"longTerm"`
	ShortTerm     ReportSection   `json:"shortTerm"`
	Uncategorised ReportSection   `json:"uncategorised"`
	Total         decimal.Decimal `json:"total"`
}

// NewCategorisedSection returns empty category sections.
func NewCategorisedSection() CategorisedSection {
	return CategorisedSection{
		LongTerm:      NewReportSection(),
		ShortTerm:     NewReportSection(),
		Uncategorised: NewReportSection(),
		Total:         decimal.Zero,
	}
}

// Add files the line under the account's category.
func (c *CategorisedSection) Add(category *AccountCategory, line ReportLine) {
	switch {
	case category == nil:
		c.Uncategorised.Add(line)
	case *category == LongTerm:
		c.LongTerm.Add(line)
	default:
		c.ShortTerm.Add(line)
	}
	c.Total = c.Total.Add(line.Amount)
}

// BalanceSheetReport is the financial position as of a date.
type BalanceSheetReport struct {
	AsOf                   time.Time          `json:"asOf"`
	Assets                 CategorisedSection `json:"assets"`
	Liabilities            CategorisedSection `json:"liabilities"`
	Equity                 ReportSection      `json:"equity"`
	CurrentEarnings        decimal.Decimal    `json:"currentEarnings"`
	TotalEquity            decimal.Decimal    `json:"totalEquity"`
	TotalLiabilitiesEquity decimal.Decimal    `json:"totalLiabilitiesAndEquity"`
	IsBalanced             bool               `json:"isBalanced"`
}

// CashbookReport is the movement of one cash or bank account over a period.
type CashbookReport struct {
	AccountID      string          `json:"accountID"`
	AccountName    string          `json:"accountName"`
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Receipts       decimal.Decimal `json:"receipts"`
	Payments       decimal.Decimal `json:"payments"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// FinancialSummary is a compact set of totals handed to external narrators.
type FinancialSummary struct {
	From        time.Time       `json:"from"`
	To          time.Time       `json:"to"`
	Currency    string          `json:"currency"`
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
	NetProfit   decimal.Decimal `json:"netProfit"`
	Assets      decimal.Decimal `json:"assets"`
	Liabilities decimal.Decimal `json:"liabilities"`
	Receivables decimal.Decimal `json:"receivables"`
	Payables    decimal.Decimal `json:"payables"`
}
