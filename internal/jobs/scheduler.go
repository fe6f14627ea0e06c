// Package jobs runs the periodic integrity checks of the ledger.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/robfig/cron/v3"
)

const defaultJobTimeout = 5 * time.Minute

// ChainVerifier walks the audit chain.
type ChainVerifier interface {
	Verify(ctx context.Context) domain.ChainReport
}

// RateHealthChecker reports exchange rate freshness.
type RateHealthChecker interface {
	RateHealth(ctx context.Context, today time.Time) ([]domain.RateHealth, error)
}

// Scheduler runs the audit verification and rate health checks on cron schedules.
type Scheduler struct {
	cron    *cron.Cron
	logger  *slog.Logger
	audit   ChainVerifier
	rates   RateHealthChecker
	timeout time.Duration
	now     func() time.Time
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithTimeout bounds a single job run.
func WithTimeout(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithClock overrides the clock used for the rate health check.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// NewScheduler creates a scheduler. Jobs are added with Register.
func NewScheduler(audit ChainVerifier, rates RateHealthChecker, logger *slog.Logger, options ...Option) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "jobs"))
	s := &Scheduler{
		logger:  logger,
		audit:   audit,
		rates:   rates,
		timeout: defaultJobTimeout,
		now:     time.Now,
	}
	for _, option := range options {
		option(s)
	}
	cronLog := cronLogger{logger: logger}
	s.cron = cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)
	return s
}

// Register adds the two checks. An empty spec leaves that check unscheduled.
func (s *Scheduler) Register(auditSpec, rateHealthSpec string) error {
	if auditSpec != "" {
		if _, err := s.cron.AddFunc(auditSpec, s.run("audit_verify", func(ctx context.Context) {
			s.VerifyAuditChain(ctx)
		})); err != nil {
			return fmt.Errorf("invalid audit verify schedule %q: %w", auditSpec, err)
		}
		s.logger.Info("Audit chain verification scheduled", slog.String("schedule", auditSpec))
	}
	if rateHealthSpec != "" {
		if _, err := s.cron.AddFunc(rateHealthSpec, s.run("rate_health", func(ctx context.Context) {
			s.CheckRateHealth(ctx)
		})); err != nil {
			return fmt.Errorf("invalid rate health schedule %q: %w", rateHealthSpec, err)
		}
		s.logger.Info("Rate health check scheduled", slog.String("schedule", rateHealthSpec))
	}
	return nil
}

// Len returns the number of scheduled jobs.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) run(name string, job func(ctx context.Context)) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		start := time.Now()
		job(ctx)
		s.logger.Debug("Job finished", slog.String("job", name), slog.Duration("elapsed", time.Since(start)))
	}
}

// VerifyAuditChain walks the chain and logs every break.
func (s *Scheduler) VerifyAuditChain(ctx context.Context) domain.ChainReport {
	report := s.audit.Verify(ctx)
	if report.Intact {
		return report
	}
	for _, b := range report.Breaks {
		s.logger.Error("Audit chain break",
			slog.Int64("id", b.ID),
			slog.String("kind", string(b.Kind)),
			slog.String("expected", b.Expected),
			slog.String("actual", b.Actual))
	}
	if report.Error != "" {
		s.logger.Error("Audit chain verification did not complete", slog.String("error", report.Error))
	}
	return report
}

// CheckRateHealth logs a warning for every stale or missing rate and returns those currencies.
func (s *Scheduler) CheckRateHealth(ctx context.Context) []domain.RateHealth {
	health, err := s.rates.RateHealth(ctx, s.now())
	if err != nil {
		s.logger.Error("Rate health check failed", slog.String("error", err.Error()))
		return nil
	}
	var unhealthy []domain.RateHealth
	for _, h := range health {
		if h.Status == domain.RateFresh {
			continue
		}
		unhealthy = append(unhealthy, h)
		attrs := []any{
			slog.String("currency", h.CurrencyCode),
			slog.String("status", string(h.Status)),
		}
		if h.LatestEffective != nil {
			attrs = append(attrs,
				slog.String("latest_effective", h.LatestEffective.Format("2006-01-02")),
				slog.Int("days_since_effective", h.DaysSinceEffective))
		}
		s.logger.Warn("Exchange rate needs attention", attrs...)
	}
	if len(unhealthy) == 0 {
		s.logger.Info("All exchange rates are fresh", slog.Int("currencies", len(health)))
	}
	return unhealthy
}

// cronLogger adapts slog to the cron logger interface.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append([]any{slog.String("error", err.Error())}, keysAndValues...)...)
}
