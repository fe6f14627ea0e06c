package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/core/posting"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/SscSPs/school_ledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// expenseService records expenses and reports their derived payment status.
type expenseService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	expenseRepo portsrepo.ExpenseRepositoryFacade
	paymentRepo portsrepo.PaymentRepositoryFacade
	accountRepo portsrepo.AccountReader
	counterRepo portsrepo.CounterRepository
	fx          portssvc.ExchangeRateReaderSvc
	posting     portssvc.PostingSvc
	audit       portssvc.AuditSvc
}

// NewExpenseService creates a new expense service.
func NewExpenseService(
	txManager portsrepo.TransactionManager,
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	paymentRepo portsrepo.PaymentRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	counterRepo portsrepo.CounterRepository,
	fx portssvc.ExchangeRateReaderSvc,
	postingSvc portssvc.PostingSvc,
	audit portssvc.AuditSvc,
) portssvc.ExpenseSvcFacade {
	return &expenseService{
		txManager:   txManager,
		expenseRepo: expenseRepo,
		paymentRepo: paymentRepo,
		accountRepo: accountRepo,
		counterRepo: counterRepo,
		fx:          fx,
		posting:     postingSvc,
		audit:       audit,
	}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// CreateExpense records an expense. The amount is converted to the base currency when a rate
// exists; otherwise the base amount stays empty and the native amount is used for settlement.
func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}
	if req.Charges.IsNegative() {
		return nil, fmt.Errorf("%w: charges cannot be negative", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, req.ExpenseAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: expense account %s does not exist", apperrors.ErrValidation, req.ExpenseAccountID)
		}
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: expense account %s is inactive", apperrors.ErrValidation, account.Code)
	}
	if account.AccountType != domain.ExpenseType && account.AccountType != domain.Asset {
		return nil, fmt.Errorf("%w: account %s cannot carry expenses", apperrors.ErrValidation, account.Code)
	}

	amountBase, err := s.fx.ConvertToBase(ctx, req.Amount, req.CurrencyCode, req.ExpenseDate)
	if err != nil {
		return nil, err
	}

	expense := domain.Expense{
		ExpenseID:        uuid.NewString(),
		Reference:        req.Reference,
		Description:      req.Description,
		ExpenseAccountID: req.ExpenseAccountID,
		Amount:           accounting.Round(req.Amount),
		Charges:          accounting.Round(req.Charges),
		CurrencyCode:     req.CurrencyCode,
		AmountBase:       amountBase,
		ExpenseDate:      domain.DateOnly(req.ExpenseDate),
		AuditFields:      domain.NewAuditFields(userID, time.Now().UTC()),
	}

	err = s.txManager.RunInTx(ctx, func(tx pgx.Tx) error {
		if expense.Reference == "" {
			seq, err := s.counterRepo.NextValue(ctx, tx, domain.ExpenseCounterKey)
			if err != nil {
				return fmt.Errorf("failed to allocate expense reference: %w", err)
			}
			expense.Reference = domain.FormatReference(domain.ExpensePrefix, seq)
		}
		if err := s.expenseRepo.SaveExpense(ctx, tx, expense); err != nil {
			return err
		}
		if err := s.audit.Record(ctx, tx, domain.AuditChange{
			Action:    domain.ActionCreate,
			ModelType: domain.ModelExpense,
			ModelID:   expense.ExpenseID,
			After:     expense,
		}); err != nil {
			return err
		}
		_, err := s.posting.Sync(ctx, tx, posting.ExpenseRecordedEvent{Expense: expense}, userID)
		return err
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to record expense", slog.String("reference", expense.Reference))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Expense recorded",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("reference", expense.Reference),
		slog.Bool("converted", expense.AmountBase != nil))
	return &expense, nil
}

// GetExpenseSummary returns the expense and the status derived from its payments.
func (s *expenseService) GetExpenseSummary(ctx context.Context, expenseID string) (*domain.Expense, domain.PaymentSummary, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, nil, expenseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find expense", slog.String("expense_id", expenseID))
		}
		return nil, domain.PaymentSummary{}, err
	}
	payments, err := s.paymentRepo.ListPaymentsByExpense(ctx, nil, expenseID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments", slog.String("expense_id", expenseID))
		return nil, domain.PaymentSummary{}, fmt.Errorf("failed to list payments: %w", err)
	}
	return expense, domain.SummarizeExpense(*expense, payments), nil
}
