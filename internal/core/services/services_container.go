package services

import (
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/core/posting"
	"github.com/SscSPs/school_ledger/internal/metrics"
	"github.com/SscSPs/school_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// rateCache may be nil when Redis is not configured.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, rateCache portsrepo.ExchangeRateCache, m *metrics.Metrics) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Audit first; every writer records into the chain
	container.Audit = NewAuditService(repos.TxManager, repos.ActivityLogRepo, WithAuditMetrics(m))

	container.Account = NewAccountService(repos.TxManager, repos.AccountRepo, container.Audit)
	container.Currency = NewCurrencyService(repos.CurrencyRepo)

	rateOptions := []ExchangeRateServiceOption{
		WithBaseCurrency(cfg.BaseCurrency),
		WithStaleAfterDays(cfg.RateStaleDays),
		WithExchangeRateMetrics(m),
	}
	if rateCache != nil {
		rateOptions = append(rateOptions, WithRateCache(rateCache))
	}
	container.ExchangeRate = NewExchangeRateService(repos.TxManager, repos.ExchangeRateRepo, repos.CurrencyRepo, container.Audit, rateOptions...)

	container.Ledger = NewLedgerService(repos.TxManager, repos.JournalRepo, repos.AccountRepo, repos.CounterRepo, container.Audit, m)

	engine := posting.NewEngine(posting.WithPaymentDebitMode(posting.PaymentDebitMode(cfg.PaymentDebitMode)))
	container.Posting = NewPostingService(engine, container.Ledger, repos.JournalRepo, repos.AccountRepo, container.Audit, cfg.AccountCodes)
	container.OpeningBalance = NewOpeningBalanceService(repos.TxManager, container.Posting)

	container.Expense = NewExpenseService(repos.TxManager, repos.ExpenseRepo, repos.PaymentRepo, repos.AccountRepo,
		repos.CounterRepo, container.ExchangeRate, container.Posting, container.Audit)
	container.Payment = NewPaymentService(repos.TxManager, repos.ExpenseRepo, repos.PaymentRepo, repos.CounterRepo,
		container.Posting, container.Audit)
	container.Sale = NewSaleService(repos.TxManager, repos.SaleRepo, container.ExchangeRate, container.Posting, container.Audit)

	container.Reporting = NewReportingService(container.Ledger, repos.AccountRepo,
		WithReportingCurrency(container.ExchangeRate.BaseCurrency()),
		WithReportingAccountCodes(cfg.AccountCodes))

	return container
}
