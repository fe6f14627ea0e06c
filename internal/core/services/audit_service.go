package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/metrics"
	"github.com/SscSPs/school_ledger/internal/middleware"
	"github.com/SscSPs/school_ledger/internal/utils/auditchain"
	"github.com/jackc/pgx/v5"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// auditService appends to the activity log hash chain.
type auditService struct {
	BaseService
	txManager portsrepo.TransactionManager
	repo      portsrepo.ActivityLogRepository
	registry  *auditchain.Registry
	metrics   *metrics.Metrics
	now       func() time.Time
}

// AuditServiceOption is a functional option for configuring the audit service
type AuditServiceOption func(*auditService)

// WithAuditRegistry replaces the default tracked-model registry.
func WithAuditRegistry(registry *auditchain.Registry) AuditServiceOption {
	return func(s *auditService) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// WithAuditMetrics reports appends and verification results to m.
func WithAuditMetrics(m *metrics.Metrics) AuditServiceOption {
	return func(s *auditService) {
		s.metrics = m
	}
}

// WithAuditClock overrides the clock used to stamp rows.
func WithAuditClock(now func() time.Time) AuditServiceOption {
	return func(s *auditService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewAuditService creates a new audit service.
func NewAuditService(txManager portsrepo.TransactionManager, repo portsrepo.ActivityLogRepository, options ...AuditServiceOption) portssvc.AuditSvc {
	svc := &auditService{
		txManager: txManager,
		repo:      repo,
		registry:  auditchain.DefaultRegistry(),
		now:       time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AuditSvc = (*auditService)(nil)

// Record appends an entity mutation to the chain. Without a transaction it opens its own, since
// the chain lock only holds for the lifetime of one.
func (s *auditService) Record(ctx context.Context, tx pgx.Tx, change domain.AuditChange) error {
	changes, ok, err := s.registry.BuildChanges(change)
	if err != nil {
		s.LogError(ctx, err, "Failed to build audit changes",
			slog.String("model_type", string(change.ModelType)),
			slog.String("model_id", change.ModelID))
		return err
	}
	if !ok {
		s.LogDebug(ctx, "Skipping audit row for timestamp-only update",
			slog.String("model_type", string(change.ModelType)),
			slog.String("model_id", change.ModelID))
		return nil
	}

	row := s.newRow(ctx, change.Action, change.ModelType, change.ModelID)
	row.Changes = changes

	if tx == nil {
		return s.txManager.RunInTx(ctx, func(tx pgx.Tx) error {
			return s.append(ctx, tx, &row)
		})
	}
	return s.append(ctx, tx, &row)
}

// RecordAuthEvent appends a login, logout or failed login row in its own transaction.
func (s *auditService) RecordAuthEvent(ctx context.Context, action domain.AuditAction, userID *string) error {
	if !action.IsAuthEvent() {
		return fmt.Errorf("%w: %q is not an authentication event", apperrors.ErrValidation, action)
	}
	modelID := ""
	if userID != nil {
		modelID = *userID
	}
	row := s.newRow(ctx, action, domain.ModelUser, modelID)
	if userID != nil {
		row.UserID = userID
	}
	return s.txManager.RunInTx(ctx, func(tx pgx.Tx) error {
		return s.append(ctx, tx, &row)
	})
}

func (s *auditService) newRow(ctx context.Context, action domain.AuditAction, modelType domain.ModelType, modelID string) domain.ActivityLog {
	meta := middleware.GetRequestMetaFromCtx(ctx)
	row := domain.ActivityLog{
		Action:    action,
		ModelType: modelType,
		ModelID:   modelID,
		IPAddress: meta.IPAddress,
		URL:       meta.URL,
		UserAgent: meta.UserAgent,
	}
	if meta.UserID != "" {
		userID := meta.UserID
		row.UserID = &userID
	}
	return row
}

// append seals the row against the current chain head. The advisory lock is held until the
// surrounding transaction ends, so the head cannot move between the read and the insert.
func (s *auditService) append(ctx context.Context, tx pgx.Tx, row *domain.ActivityLog) error {
	if err := s.repo.LockChain(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to lock audit chain")
		return fmt.Errorf("failed to lock audit chain: %w", err)
	}
	prevHash, err := s.repo.LastHash(ctx, tx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read audit chain head")
		return fmt.Errorf("failed to read audit chain head: %w", err)
	}
	if err := auditchain.Seal(row, prevHash, s.now()); err != nil {
		return fmt.Errorf("failed to seal audit row: %w", err)
	}
	if err := s.repo.AppendLog(ctx, tx, row); err != nil {
		s.LogError(ctx, err, "Failed to append audit row",
			slog.String("model_type", string(row.ModelType)),
			slog.String("model_id", row.ModelID))
		return fmt.Errorf("failed to append audit row: %w", err)
	}
	s.metrics.AuditAppended(string(row.ModelType))
	s.LogDebug(ctx, "Audit row appended",
		slog.Int64("id", row.ID),
		slog.String("action", string(row.Action)),
		slog.String("model_type", string(row.ModelType)))
	return nil
}

// Verify walks the chain from the genesis row.
func (s *auditService) Verify(ctx context.Context) domain.ChainReport {
	verifier := auditchain.NewVerifier()
	err := s.repo.WalkLogs(ctx, func(row domain.ActivityLog) error {
		verifier.Check(row)
		return nil
	})

	var report domain.ChainReport
	if err != nil {
		s.LogError(ctx, err, "Audit chain walk failed")
		report = verifier.Fail(err)
	} else {
		report = verifier.Report()
	}
	s.metrics.ChainVerified(len(report.Breaks))

	if !report.Intact {
		s.GetLogger(ctx).Error("Audit chain verification found breaks",
			slog.Int("checked", report.Checked),
			slog.Int("breaks", len(report.Breaks)))
	} else {
		s.LogInfo(ctx, "Audit chain verified", slog.Int("checked", report.Checked))
	}
	return report
}

// History returns the newest audit rows of one entity.
func (s *auditService) History(ctx context.Context, modelType domain.ModelType, modelID string, limit int) ([]domain.ActivityLog, error) {
	if !s.registry.IsTracked(modelType) {
		return nil, fmt.Errorf("%w: model type %q is not tracked", apperrors.ErrValidation, modelType)
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	logs, err := s.repo.ListLogsForModel(ctx, modelType, modelID, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit history",
			slog.String("model_type", string(modelType)),
			slog.String("model_id", modelID))
		return nil, fmt.Errorf("failed to list audit history: %w", err)
	}
	if logs == nil {
		return []domain.ActivityLog{}, nil
	}
	return logs, nil
}
