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
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/SscSPs/school_ledger/internal/metrics"
	"github.com/SscSPs/school_ledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// RatePrecision is the number of places kept when inverting a rate.
const RatePrecision int32 = 8

const (
	defaultBaseCurrency   = "KES"
	defaultStaleAfterDays = 3
)

// exchangeRateService converts amounts to the base currency using dated directional rates.
type exchangeRateService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
	audit        portssvc.AuditSvc
	cache        portsrepo.ExchangeRateCache
	metrics      *metrics.Metrics
	base         string
	staleDays    int
	now          func() time.Time
}

// ExchangeRateServiceOption is a functional option for configuring the exchange rate service
type ExchangeRateServiceOption func(*exchangeRateService)

// WithBaseCurrency sets the reporting currency.
func WithBaseCurrency(code string) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		if code = strings.ToUpper(strings.TrimSpace(code)); code != "" {
			s.base = code
		}
	}
}

// WithStaleAfterDays sets how old the latest rate may be before it is reported stale.
func WithStaleAfterDays(days int) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		if days >= 0 {
			s.staleDays = days
		}
	}
}

// WithRateCache enables the read-through rate cache.
func WithRateCache(cache portsrepo.ExchangeRateCache) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.cache = cache
	}
}

// WithExchangeRateMetrics reports lookup outcomes to m.
func WithExchangeRateMetrics(m *metrics.Metrics) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.metrics = m
	}
}

// WithExchangeRateClock overrides the clock used for "today".
func WithExchangeRateClock(now func() time.Time) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(
	txManager portsrepo.TransactionManager,
	rateRepo portsrepo.ExchangeRateRepositoryFacade,
	currencyRepo portsrepo.CurrencyReader,
	audit portssvc.AuditSvc,
	options ...ExchangeRateServiceOption,
) portssvc.ExchangeRateSvcFacade {
	svc := &exchangeRateService{
		txManager:    txManager,
		rateRepo:     rateRepo,
		currencyRepo: currencyRepo,
		audit:        audit,
		base:         defaultBaseCurrency,
		staleDays:    defaultStaleAfterDays,
		now:          time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

func (s *exchangeRateService) BaseCurrency() string { return s.base }

func (s *exchangeRateService) StaleAfterDays() int { return s.staleDays }

// ConvertToBase converts amount to the base currency with the latest rate effective on or before
// date. A missing rate is not an error: it returns nil and logs a warning.
func (s *exchangeRateService) ConvertToBase(ctx context.Context, amount decimal.Decimal, from string, date time.Time) (*decimal.Decimal, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	if len(from) != 3 {
		return nil, fmt.Errorf("%w: currency code must be 3 letters", apperrors.ErrValidation)
	}
	if date.IsZero() {
		date = s.now()
	}
	date = domain.DateOnly(date)

	if from == s.base {
		converted := accounting.Round(amount)
		return &converted, nil
	}

	rate, found, err := s.lookupRate(ctx, from, date)
	if err != nil {
		return nil, err
	}
	if !found {
		s.metrics.RateLookup("missing")
		s.LogWarn(ctx, "No exchange rate available; amount left unconverted",
			slog.String("error", apperrors.ErrMissingExchangeRate.Error()),
			slog.String("from", from),
			slog.String("to", s.base),
			slog.String("date", date.Format("2006-01-02")))
		return nil, nil
	}

	converted := accounting.Round(amount.Mul(rate))
	return &converted, nil
}

// lookupRate resolves the from→base rate: cache first, then whichever of the direct rate and
// the inverted base→from rate has the later effective date. A tie goes to the direct rate.
func (s *exchangeRateService) lookupRate(ctx context.Context, from string, date time.Time) (decimal.Decimal, bool, error) {
	if s.cache != nil {
		if rate, ok := s.cache.Get(ctx, from, s.base, date); ok {
			s.metrics.RateLookup("cache_hit")
			return rate, true, nil
		}
	}

	direct, err := s.findRate(ctx, from, s.base, date)
	if err != nil {
		return decimal.Zero, false, err
	}
	inverse, err := s.findRate(ctx, s.base, from, date)
	if err != nil {
		return decimal.Zero, false, err
	}
	if inverse != nil && !inverse.Rate.IsPositive() {
		inverse = nil
	}

	switch {
	case direct != nil && (inverse == nil || !inverse.EffectiveDate.After(direct.EffectiveDate)):
		s.metrics.RateLookup("direct")
		s.storeInCache(ctx, from, date, direct.Rate)
		return direct.Rate, true, nil
	case inverse != nil:
		rate := decimal.NewFromInt(1).DivRound(inverse.Rate, RatePrecision)
		s.metrics.RateLookup("inverse")
		s.storeInCache(ctx, from, date, rate)
		return rate, true, nil
	default:
		return decimal.Zero, false, nil
	}
}

// findRate returns nil without an error when no rate of the pair is effective on date.
func (s *exchangeRateService) findRate(ctx context.Context, from, to string, date time.Time) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindRateOnOrBefore(ctx, from, to, date)
	switch {
	case err == nil:
		return rate, nil
	case errors.Is(err, apperrors.ErrNotFound):
		return nil, nil
	default:
		s.LogError(ctx, err, "Failed to look up exchange rate", slog.String("from", from), slog.String("to", to))
		return nil, fmt.Errorf("failed to look up exchange rate: %w", err)
	}
}

func (s *exchangeRateService) storeInCache(ctx context.Context, from string, date time.Time, rate decimal.Decimal) {
	if s.cache != nil {
		s.cache.Set(ctx, from, s.base, date, rate)
	}
}

// RateHealth reports the freshness of every active foreign currency. It is advisory only.
func (s *exchangeRateService) RateHealth(ctx context.Context, today time.Time) ([]domain.RateHealth, error) {
	if today.IsZero() {
		today = s.now()
	}
	currencies, err := s.currencyRepo.ListCurrencies(ctx, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies for rate health")
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	latest, err := s.rateRepo.LatestEffectiveDates(ctx, s.base)
	if err != nil {
		s.LogError(ctx, err, "Failed to read latest rate dates")
		return nil, fmt.Errorf("failed to read latest rate dates: %w", err)
	}

	health := make([]domain.RateHealth, 0, len(currencies))
	for _, c := range currencies {
		if c.CurrencyCode == s.base {
			continue
		}
		var effective *time.Time
		if d, ok := latest[c.CurrencyCode]; ok {
			effective = &d
		}
		status, days := domain.ClassifyRate(effective, today, s.staleDays)
		health = append(health, domain.RateHealth{
			CurrencyCode:       c.CurrencyCode,
			Status:             status,
			LatestEffective:    effective,
			DaysSinceEffective: days,
		})
	}
	return health, nil
}

// UpsertRate creates or replaces the rate of a pair on a date.
func (s *exchangeRateService) UpsertRate(ctx context.Context, req dto.UpsertExchangeRateRequest, userID string) (*domain.ExchangeRate, error) {
	from := strings.ToUpper(strings.TrimSpace(req.FromCurrencyCode))
	to := strings.ToUpper(strings.TrimSpace(req.ToCurrencyCode))
	if !req.Rate.IsPositive() {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if from == to {
		return nil, fmt.Errorf("%w: from and to currency codes cannot be the same", apperrors.ErrValidation)
	}
	if req.EffectiveDate.IsZero() {
		return nil, fmt.Errorf("%w: effective date is required", apperrors.ErrValidation)
	}
	source := req.Source
	if source == "" {
		source = domain.RateSourceManual
	}
	if !source.IsValid() {
		return nil, fmt.Errorf("%w: unknown rate source %q", apperrors.ErrValidation, source)
	}
	for _, code := range []string{from, to} {
		if _, err := s.currencyRepo.FindCurrencyByCode(ctx, code); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: currency code '%s' not found", apperrors.ErrValidation, code)
			}
			return nil, fmt.Errorf("failed to validate currency '%s': %w", code, err)
		}
	}

	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             req.Rate.Round(RatePrecision),
		EffectiveDate:    domain.DateOnly(req.EffectiveDate),
		Source:           source,
		AuditFields:      domain.NewAuditFields(userID, time.Now().UTC()),
	}

	var stored *domain.ExchangeRate
	err := s.txManager.RunInTx(ctx, func(tx pgx.Tx) error {
		var err error
		stored, err = s.rateRepo.UpsertExchangeRate(ctx, tx, rate)
		if err != nil {
			return err
		}
		action := domain.ActionCreate
		if stored.ExchangeRateID != rate.ExchangeRateID {
			action = domain.ActionUpdate
		}
		return s.audit.Record(ctx, tx, domain.AuditChange{
			Action:    action,
			ModelType: domain.ModelExchangeRate,
			ModelID:   stored.ExchangeRateID,
			After:     *stored,
		})
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to upsert exchange rate", slog.String("from", from), slog.String("to", to))
		return nil, fmt.Errorf("failed to upsert exchange rate: %w", err)
	}

	if s.cache != nil {
		s.cache.InvalidatePair(ctx, from, to)
	}
	s.LogInfo(ctx, "Exchange rate saved",
		slog.String("from", from),
		slog.String("to", to),
		slog.String("rate", stored.Rate.String()),
		slog.String("effective_date", stored.EffectiveDate.Format("2006-01-02")))
	return stored, nil
}
