package pgsql

import (
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:        &BaseRepository{Pool: dbPool},
		AccountRepo:      newPgxAccountRepository(dbPool),
		JournalRepo:      newPgxJournalRepository(dbPool),
		CounterRepo:      newPgxCounterRepository(dbPool),
		ExpenseRepo:      newPgxExpenseRepository(dbPool),
		PaymentRepo:      newPgxPaymentRepository(dbPool),
		SaleRepo:         newPgxSaleRepository(dbPool),
		CurrencyRepo:     newPgxCurrencyRepository(dbPool),
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
		ActivityLogRepo:  newPgxActivityLogRepository(dbPool),
	}
}
