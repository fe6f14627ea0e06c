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
	"github.com/shopspring/decimal"
)

// paymentService records payments against expenses and keeps their ledger entries in sync.
type paymentService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	expenseRepo portsrepo.ExpenseRepositoryFacade
	paymentRepo portsrepo.PaymentRepositoryFacade
	counterRepo portsrepo.CounterRepository
	posting     portssvc.PostingSvc
	audit       portssvc.AuditSvc
}

// NewPaymentService creates a new payment service.
func NewPaymentService(
	txManager portsrepo.TransactionManager,
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	paymentRepo portsrepo.PaymentRepositoryFacade,
	counterRepo portsrepo.CounterRepository,
	postingSvc portssvc.PostingSvc,
	audit portssvc.AuditSvc,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		txManager:   txManager,
		expenseRepo: expenseRepo,
		paymentRepo: paymentRepo,
		counterRepo: counterRepo,
		posting:     postingSvc,
		audit:       audit,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func overpayment(amount, limit decimal.Decimal) error {
	return fmt.Errorf("%w: amount %s exceeds outstanding %s", apperrors.ErrOverpayment, amount.StringFixed(2), limit.StringFixed(2))
}

// RecordPayment pays (part of) an expense. The expense row stays locked until the transaction
// ends, so concurrent payments cannot both pass the outstanding check.
func (s *paymentService) RecordPayment(ctx context.Context, expenseID string, req dto.RecordPaymentRequest, userID string) (*domain.Payment, error) {
	amount := accounting.Round(req.Amount)
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	if !req.PaymentMethod.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, req.PaymentMethod)
	}
	status := req.Status
	if status == "" {
		status = domain.ApprovalApproved
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", apperrors.ErrValidation, status)
	}

	payment := domain.Payment{
		PaymentID:        uuid.NewString(),
		ExpenseID:        expenseID,
		PaymentDate:      domain.DateOnly(req.PaymentDate),
		PaymentAccountID: req.PaymentAccountID,
		Amount:           amount,
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: req.PaymentReference,
		Status:           status,
		AuditFields:      domain.NewAuditFields(userID, time.Now().UTC()),
	}

	err := s.txManager.RunInTx(ctx, func(tx pgx.Tx) error {
		expense, err := s.expenseRepo.FindExpenseByIDForUpdate(ctx, tx, expenseID)
		if err != nil {
			return err
		}
		existing, err := s.paymentRepo.ListPaymentsByExpense(ctx, tx, expenseID)
		if err != nil {
			return fmt.Errorf("failed to list payments: %w", err)
		}
		summary := domain.SummarizeExpense(*expense, existing)
		if payment.CountsTowardsBalance() && payment.Amount.GreaterThan(summary.Outstanding) {
			return overpayment(payment.Amount, summary.Outstanding)
		}

		seq, err := s.counterRepo.NextValue(ctx, tx, domain.VoucherCounterKey)
		if err != nil {
			return fmt.Errorf("failed to allocate voucher number: %w", err)
		}
		payment.VoucherNumber = domain.FormatReference(domain.VoucherPrefix, seq)

		if err := s.paymentRepo.SavePayment(ctx, tx, payment); err != nil {
			return err
		}
		if err := s.audit.Record(ctx, tx, domain.AuditChange{
			Action:    domain.ActionCreate,
			ModelType: domain.ModelPayment,
			ModelID:   payment.PaymentID,
			After:     payment,
		}); err != nil {
			return err
		}
		_, err = s.posting.Sync(ctx, tx, posting.PaymentRecordedEvent{Payment: payment, Expense: *expense}, userID)
		return err
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrOverpayment) {
			s.LogWarn(ctx, "Payment rejected as overpayment", slog.String("expense_id", expenseID), slog.String("error", err.Error()))
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to record payment", slog.String("expense_id", expenseID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("voucher", payment.VoucherNumber),
		slog.String("expense_id", expenseID))
	return &payment, nil
}

// UpdatePayment edits a payment and re-syncs its ledger entry. The new amount may use what is
// outstanding plus what the payment itself already settled.
func (s *paymentService) UpdatePayment(ctx context.Context, paymentID string, req dto.UpdatePaymentRequest, userID string) (*domain.Payment, error) {
	var updated domain.Payment
	err := s.txManager.RunInTx(ctx, func(tx pgx.Tx) error {
		// only the expense id is taken from this read; the payment itself is re-read under the lock
		found, err := s.paymentRepo.FindPaymentByID(ctx, tx, paymentID)
		if err != nil {
			return err
		}
		expense, err := s.expenseRepo.FindExpenseByIDForUpdate(ctx, tx, found.ExpenseID)
		if err != nil {
			return err
		}
		payments, err := s.paymentRepo.ListPaymentsByExpense(ctx, tx, found.ExpenseID)
		if err != nil {
			return fmt.Errorf("failed to list payments: %w", err)
		}
		current := findPayment(payments, paymentID)
		if current == nil {
			return fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, paymentID)
		}

		updated = *current
		if req.PaymentDate != nil {
			updated.PaymentDate = domain.DateOnly(*req.PaymentDate)
		}
		if req.PaymentAccountID != nil {
			updated.PaymentAccountID = *req.PaymentAccountID
		}
		if req.Amount != nil {
			updated.Amount = accounting.Round(*req.Amount)
		}
		if req.PaymentMethod != nil {
			updated.PaymentMethod = *req.PaymentMethod
		}
		if req.PaymentReference != nil {
			updated.PaymentReference = *req.PaymentReference
		}
		if req.Status != nil {
			updated.Status = *req.Status
		}
		if !updated.Amount.IsPositive() {
			return fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
		}
		if !updated.PaymentMethod.IsValid() || !updated.Status.IsValid() {
			return fmt.Errorf("%w: unknown payment method or status", apperrors.ErrValidation)
		}

		limit := domain.SummarizeExpense(*expense, payments).Outstanding
		if current.CountsTowardsBalance() {
			limit = limit.Add(current.Amount)
		}
		if updated.CountsTowardsBalance() && updated.Amount.GreaterThan(limit) {
			return overpayment(updated.Amount, limit)
		}

		updated.LastUpdatedAt = time.Now().UTC()
		updated.LastUpdatedBy = userID
		if err := s.paymentRepo.UpdatePayment(ctx, tx, updated); err != nil {
			return err
		}
		if err := s.audit.Record(ctx, tx, domain.AuditChange{
			Action:    domain.ActionUpdate,
			ModelType: domain.ModelPayment,
			ModelID:   paymentID,
			Before:    *current,
			After:     updated,
		}); err != nil {
			return err
		}
		_, err = s.posting.Sync(ctx, tx, posting.PaymentRecordedEvent{Payment: updated, Expense: *expense}, userID)
		return err
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrOverpayment) {
			s.LogWarn(ctx, "Payment update rejected as overpayment", slog.String("payment_id", paymentID), slog.String("error", err.Error()))
		} else if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to update payment", slog.String("payment_id", paymentID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Payment updated", slog.String("payment_id", paymentID), slog.String("status", string(updated.Status)))
	return &updated, nil
}

func findPayment(payments []domain.Payment, paymentID string) *domain.Payment {
	for i := range payments {
		if payments[i].PaymentID == paymentID {
			return &payments[i]
		}
	}
	return nil
}

// ListPayments returns every payment of an expense, rejected ones included.
func (s *paymentService) ListPayments(ctx context.Context, expenseID string) ([]domain.Payment, error) {
	if _, err := s.expenseRepo.FindExpenseByID(ctx, nil, expenseID); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListPaymentsByExpense(ctx, nil, expenseID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments", slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	if payments == nil {
		return []domain.Payment{}, nil
	}
	return payments, nil
}
