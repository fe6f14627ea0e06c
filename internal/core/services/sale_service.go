package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
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

// saleService records sales documents and posts the financial ones.
type saleService struct {
	BaseService
	txManager portsrepo.TransactionManager
	saleRepo  portsrepo.SaleRepositoryFacade
	fx        portssvc.ExchangeRateReaderSvc
	posting   portssvc.PostingSvc
	audit     portssvc.AuditSvc
}

// NewSaleService creates a new sale service.
func NewSaleService(
	txManager portsrepo.TransactionManager,
	saleRepo portsrepo.SaleRepositoryFacade,
	fx portssvc.ExchangeRateReaderSvc,
	postingSvc portssvc.PostingSvc,
	audit portssvc.AuditSvc,
) portssvc.SaleSvcFacade {
	return &saleService{
		txManager: txManager,
		saleRepo:  saleRepo,
		fx:        fx,
		posting:   postingSvc,
		audit:     audit,
	}
}

var _ portssvc.SaleSvcFacade = (*saleService)(nil)

// applyRequest copies the request onto sale and converts its amount to the base currency.
func (s *saleService) applyRequest(ctx context.Context, sale *domain.Sale, req dto.SaveSaleRequest) error {
	if req.Amount.IsNegative() {
		return fmt.Errorf("%w: sale amount cannot be negative", apperrors.ErrValidation)
	}
	status := req.Status
	if status == "" {
		status = domain.SaleUnpaid
	}
	if !status.IsValid() {
		return fmt.Errorf("%w: unknown sale status %q", apperrors.ErrValidation, status)
	}
	// an empty type falls back to the invoice number prefix
	if req.DocumentType != "" && !req.DocumentType.IsValid() {
		return fmt.Errorf("%w: unknown document type %q", apperrors.ErrValidation, req.DocumentType)
	}

	amountBase, err := s.fx.ConvertToBase(ctx, req.Amount, req.CurrencyCode, req.SaleDate)
	if err != nil {
		return err
	}

	sale.InvoiceNumber = strings.TrimSpace(req.InvoiceNumber)
	sale.DocumentType = posting.ResolveDocumentType(req.DocumentType, sale.InvoiceNumber)
	sale.Status = status
	sale.Amount = accounting.Round(req.Amount)
	sale.CurrencyCode = req.CurrencyCode
	sale.AmountBase = amountBase
	sale.SaleDate = domain.DateOnly(req.SaleDate)
	sale.CustomerName = req.CustomerName
	sale.IncomeAccountID = req.IncomeAccountID
	sale.DepositAccountID = req.DepositAccountID
	return nil
}

// CreateSale records a sale and posts it when its document type is financial.
func (s *saleService) CreateSale(ctx context.Context, req dto.SaveSaleRequest, userID string) (*domain.Sale, error) {
	sale := domain.Sale{
		SaleID:      uuid.NewString(),
		AuditFields: domain.NewAuditFields(userID, time.Now().UTC()),
	}
	if err := s.applyRequest(ctx, &sale, req); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTx(ctx, func(tx pgx.Tx) error {
		if err := s.saleRepo.SaveSale(ctx, tx, sale); err != nil {
			return err
		}
		if err := s.audit.Record(ctx, tx, domain.AuditChange{
			Action:    domain.ActionCreate,
			ModelType: domain.ModelSale,
			ModelID:   sale.SaleID,
			After:     sale,
		}); err != nil {
			return err
		}
		_, err := s.posting.Sync(ctx, tx, posting.SaleSavedEvent{Sale: sale}, userID)
		return err
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to record sale", slog.String("invoice_number", sale.InvoiceNumber))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Sale recorded",
		slog.String("sale_id", sale.SaleID),
		slog.String("invoice_number", sale.InvoiceNumber),
		slog.String("document_type", string(sale.DocumentType)))
	return &sale, nil
}

// UpdateSale replaces a sale and re-syncs its ledger entry. Converting an invoice into an
// estimate or cancelling it reverses the entry.
func (s *saleService) UpdateSale(ctx context.Context, saleID string, req dto.SaveSaleRequest, userID string) (*domain.Sale, error) {
	var updated domain.Sale
	err := s.txManager.RunInTx(ctx, func(tx pgx.Tx) error {
		current, err := s.saleRepo.FindSaleByID(ctx, tx, saleID)
		if err != nil {
			return err
		}
		updated = *current
		if err := s.applyRequest(ctx, &updated, req); err != nil {
			return err
		}
		updated.LastUpdatedAt = time.Now().UTC()
		updated.LastUpdatedBy = userID

		if err := s.saleRepo.UpdateSale(ctx, tx, updated); err != nil {
			return err
		}
		if err := s.audit.Record(ctx, tx, domain.AuditChange{
			Action:    domain.ActionUpdate,
			ModelType: domain.ModelSale,
			ModelID:   saleID,
			Before:    *current,
			After:     updated,
		}); err != nil {
			return err
		}
		_, err = s.posting.Sync(ctx, tx, posting.SaleSavedEvent{Sale: updated}, userID)
		return err
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to update sale", slog.String("sale_id", saleID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Sale updated", slog.String("sale_id", saleID), slog.String("status", string(updated.Status)))
	return &updated, nil
}

// GetSale retrieves a sale.
func (s *saleService) GetSale(ctx context.Context, saleID string) (*domain.Sale, error) {
	sale, err := s.saleRepo.FindSaleByID(ctx, nil, saleID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find sale", slog.String("sale_id", saleID))
		}
		return nil, err
	}
	return sale, nil
}
