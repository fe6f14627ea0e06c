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
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// accountService manages the chart of accounts.
type accountService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	accountRepo portsrepo.AccountRepositoryFacade
	audit       portssvc.AuditSvc
}

// NewAccountService creates a new account service.
func NewAccountService(txManager portsrepo.TransactionManager, repo portsrepo.AccountRepositoryFacade, audit portssvc.AuditSvc) portssvc.AccountSvcFacade {
	return &accountService{txManager: txManager, accountRepo: repo, audit: audit}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func validateCategory(accountType domain.AccountType, category *domain.AccountCategory) error {
	if category == nil {
		return nil
	}
	if !category.IsValid() {
		return fmt.Errorf("%w: unknown account category %q", apperrors.ErrValidation, *category)
	}
	if accountType != domain.Asset && accountType != domain.Liability {
		return fmt.Errorf("%w: only asset and liability accounts take a category", apperrors.ErrValidation)
	}
	return nil
}

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}
	if err := validateCategory(req.AccountType, req.Category); err != nil {
		return nil, err
	}

	account := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        req.Code,
		Name:        req.Name,
		AccountType: req.AccountType,
		Category:    req.Category,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(creatorUserID, time.Now().UTC()),
	}

	err := s.txManager.RunInTx(ctx, func(tx pgx.Tx) error {
		if err := s.accountRepo.SaveAccount(ctx, tx, account); err != nil {
			return err
		}
		return s.audit.Record(ctx, tx, domain.AuditChange{
			Action:    domain.ActionCreate,
			ModelType: domain.ModelAccount,
			ModelID:   account.AccountID,
			After:     account,
		})
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save account", slog.String("code", account.Code))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		// ErrNotFound is an expected outcome
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves the chart of accounts ordered by code.
func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, params.ActiveOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// UpdateAccount renames or re-categorises an account. The type only changes while no line
// references the account.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	var updated domain.Account
	err := s.txManager.RunInTx(ctx, func(tx pgx.Tx) error {
		current, err := s.accountRepo.FindAccountByID(ctx, accountID)
		if err != nil {
			return err
		}
		updated = *current
		if req.Name != nil {
			updated.Name = *req.Name
		}
		if req.AccountType != nil && *req.AccountType != current.AccountType {
			if !req.AccountType.IsValid() {
				return fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, *req.AccountType)
			}
			hasPostings, err := s.accountRepo.HasPostings(ctx, tx, accountID)
			if err != nil {
				return fmt.Errorf("failed to check account postings: %w", err)
			}
			if hasPostings {
				return fmt.Errorf("%w: account %s has postings; its type cannot change", apperrors.ErrConflict, current.Code)
			}
			updated.AccountType = *req.AccountType
		}
		if req.Category != nil {
			updated.Category = req.Category
		}
		if err := validateCategory(updated.AccountType, updated.Category); err != nil {
			return err
		}
		updated.LastUpdatedAt = time.Now().UTC()
		updated.LastUpdatedBy = userID

		if err := s.accountRepo.UpdateAccount(ctx, tx, updated); err != nil {
			return err
		}
		return s.audit.Record(ctx, tx, domain.AuditChange{
			Action:    domain.ActionUpdate,
			ModelType: domain.ModelAccount,
			ModelID:   accountID,
			Before:    *current,
			After:     updated,
		})
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return &updated, nil
}

// DeactivateAccount marks an account as inactive.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	err := s.txManager.RunInTx(ctx, func(tx pgx.Tx) error {
		current, err := s.accountRepo.FindAccountByID(ctx, accountID)
		if err != nil {
			return err
		}
		if !current.IsActive {
			return fmt.Errorf("%w: account %s is already inactive", apperrors.ErrValidation, current.Code)
		}
		now := time.Now().UTC()
		if err := s.accountRepo.DeactivateAccount(ctx, tx, accountID, userID, now); err != nil {
			return err
		}
		after := *current
		after.IsActive = false
		after.LastUpdatedAt = now
		after.LastUpdatedBy = userID
		return s.audit.Record(ctx, tx, domain.AuditChange{
			Action:    domain.ActionUpdate,
			ModelType: domain.ModelAccount,
			ModelID:   accountID,
			Before:    *current,
			After:     after,
		})
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		}
		return err
	}

	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}
