package posting

import (
	"fmt"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// Rule turns an event into a draft entry. A nil draft means nothing is posted.
type Rule interface {
	Build(event Event, chart Chart) (*Draft, error)
}

// RuleFunc adapts a function to a Rule.
type RuleFunc func(event Event, chart Chart) (*Draft, error)

func (f RuleFunc) Build(event Event, chart Chart) (*Draft, error) { return f(event, chart) }

// PaymentDebitMode chooses which account a payment debits.
type PaymentDebitMode string

const (
	DebitAccountsPayable PaymentDebitMode = "accounts_payable"
	DebitExpenseAccount  PaymentDebitMode = "expense_account"
)

// IsValid reports whether m is a known mode.
func (m PaymentDebitMode) IsValid() bool {
	return m == DebitAccountsPayable || m == DebitExpenseAccount
}

func requireRole(id, role string) error {
	if id == "" {
		return fmt.Errorf("%w: chart account for %s is not configured", apperrors.ErrValidation, role)
	}
	return nil
}

func debit(accountID string, amount decimal.Decimal, description string) domain.JournalEntryLine {
	return domain.JournalEntryLine{AccountID: accountID, Debit: amount, Credit: decimal.Zero, Description: description}
}

func credit(accountID string, amount decimal.Decimal, description string) domain.JournalEntryLine {
	return domain.JournalEntryLine{AccountID: accountID, Debit: decimal.Zero, Credit: amount, Description: description}
}

func wrongEvent(want EventKind, got Event) error {
	return fmt.Errorf("%w: rule for %s received %T", apperrors.ErrValidation, want, got)
}

// expenseRule posts nothing. Expenses hit the ledger when they are paid.
func expenseRule(event Event, _ Chart) (*Draft, error) {
	if _, ok := event.(ExpenseRecordedEvent); !ok {
		return nil, wrongEvent(ExpenseRecorded, event)
	}
	return nil, nil
}

// paymentRule debits payables (or the expense account) and credits the paying cash/bank account.
func paymentRule(mode PaymentDebitMode) RuleFunc {
	return func(event Event, chart Chart) (*Draft, error) {
		e, ok := event.(PaymentRecordedEvent)
		if !ok {
			return nil, wrongEvent(PaymentRecorded, event)
		}
		p := e.Payment
		if !p.CountsTowardsBalance() {
			return nil, nil
		}
		if !p.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
		}

		debitAccount := chart.Payable
		if mode == DebitExpenseAccount {
			debitAccount = e.Expense.ExpenseAccountID
		}
		if err := requireRole(debitAccount, string(mode)); err != nil {
			return nil, err
		}
		creditAccount := p.PaymentAccountID
		if creditAccount == "" {
			creditAccount = chart.Cash
		}
		if err := requireRole(creditAccount, "cash"); err != nil {
			return nil, err
		}

		description := fmt.Sprintf("Payment %s for %s", p.VoucherNumber, e.Expense.Description)
		amount := accounting.Round(p.Amount)
		return &Draft{
			EntryType:   domain.ExpensePaymentEntry,
			EntryDate:   p.PaymentDate,
			Description: description,
			Origin:      e.Origin(),
			Lines: []domain.JournalEntryLine{
				debit(debitAccount, amount, description),
				credit(creditAccount, amount, description),
			},
		}, nil
	}
}

// saleRule posts invoices to receivables and cash sales to the deposit account, crediting income.
func saleRule(event Event, chart Chart) (*Draft, error) {
	e, ok := event.(SaleSavedEvent)
	if !ok {
		return nil, wrongEvent(SaleSaved, event)
	}
	s := e.Sale
	s.DocumentType = ResolveDocumentType(s.DocumentType, s.InvoiceNumber)
	if !PostsToLedger(s.DocumentType) || s.Status == domain.SaleCancelled {
		return nil, nil
	}
	amount := accounting.Round(s.BaseAmount())
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: sale amount cannot be negative", apperrors.ErrValidation)
	}
	if amount.IsZero() {
		return nil, nil
	}

	incomeAccount := chart.Income
	if s.IncomeAccountID != nil && *s.IncomeAccountID != "" {
		incomeAccount = *s.IncomeAccountID
	}
	if err := requireRole(incomeAccount, "income"); err != nil {
		return nil, err
	}

	var debitAccount, role string
	if s.IsSettledAtCreation() {
		debitAccount, role = chart.Cash, "cash"
		if s.DepositAccountID != nil && *s.DepositAccountID != "" {
			debitAccount = *s.DepositAccountID
		}
	} else {
		debitAccount, role = chart.Receivable, "receivable"
	}
	if err := requireRole(debitAccount, role); err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Sale %s", s.InvoiceNumber)
	if s.CustomerName != "" {
		description += " - " + s.CustomerName
	}
	return &Draft{
		EntryType:   domain.SalesEntry,
		EntryDate:   s.SaleDate,
		Description: description,
		Origin:      e.Origin(),
		Lines: []domain.JournalEntryLine{
			debit(debitAccount, amount, description),
			credit(incomeAccount, amount, description),
		},
	}, nil
}

// openingBalanceRule posts the submitted lines and plugs any difference to Opening Balance Equity.
func openingBalanceRule(event Event, chart Chart) (*Draft, error) {
	e, ok := event.(OpeningBalancesSubmittedEvent)
	if !ok {
		return nil, wrongEvent(OpeningBalancesSubmitted, event)
	}
	lines, err := accounting.NormalizeLines(e.Lines)
	if err != nil {
		return nil, err
	}

	description := e.Description
	if description == "" {
		description = "Opening balances"
	}
	diff := accounting.SumLines(lines).Difference()
	if diff.Abs().GreaterThan(domain.BalanceTolerance) {
		if err := requireRole(chart.OpeningBalanceEquity, "opening balance equity"); err != nil {
			return nil, err
		}
		if diff.IsPositive() {
			lines = append(lines, credit(chart.OpeningBalanceEquity, diff, "Opening balance equity"))
		} else {
			lines = append(lines, debit(chart.OpeningBalanceEquity, diff.Neg(), "Opening balance equity"))
		}
	}

	return &Draft{
		EntryType:   domain.OpeningBalanceEntry,
		EntryDate:   e.Date,
		Description: description,
		Lines:       lines,
	}, nil
}
