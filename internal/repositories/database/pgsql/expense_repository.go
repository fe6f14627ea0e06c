package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/school_ledger/internal/models"
	"github.com/SscSPs/school_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const expenseColumns = `expense_id, reference, description, expense_account_id, amount, charges, currency_code,
	amount_base, expense_date, created_at, created_by, last_updated_at, last_updated_by`

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(pool *pgxpool.Pool) *PgxExpenseRepository {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

func scanExpense(row pgx.Row) (models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.Reference,
		&m.Description,
		&m.ExpenseAccountID,
		&m.Amount,
		&m.Charges,
		&m.CurrencyCode,
		&m.AmountBase,
		&m.ExpenseDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveExpense inserts a new expense.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	_, err := r.db(tx).Exec(ctx, `
		INSERT INTO expenses (`+expenseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`,
		m.ExpenseID,
		m.Reference,
		m.Description,
		m.ExpenseAccountID,
		m.Amount,
		m.Charges,
		m.CurrencyCode,
		m.AmountBase,
		m.ExpenseDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: expense reference %s already exists", apperrors.ErrDuplicate, m.Reference)
		}
		return fmt.Errorf("failed to save expense %s: %w", m.ExpenseID, err)
	}
	return nil
}

// UpdateExpense updates the editable fields of an expense.
func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	cmdTag, err := r.db(tx).Exec(ctx, `
		UPDATE expenses
		SET description = $1, expense_account_id = $2, amount = $3, charges = $4, currency_code = $5,
		    amount_base = $6, expense_date = $7, last_updated_at = $8, last_updated_by = $9
		WHERE expense_id = $10;`,
		m.Description,
		m.ExpenseAccountID,
		m.Amount,
		m.Charges,
		m.CurrencyCode,
		m.AmountBase,
		m.ExpenseDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.ExpenseID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", m.ExpenseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, m.ExpenseID)
	}
	return nil
}

func (r *PgxExpenseRepository) findExpense(ctx context.Context, tx pgx.Tx, expenseID string, forUpdate bool) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	m, err := scanExpense(r.db(tx).QueryRow(ctx, query, expenseID))
	if err != nil {
		return nil, notFound(err, "expense", expenseID)
	}
	expense := mapping.ToDomainExpense(m)
	return &expense, nil
}

// FindExpenseByID retrieves an expense by its ID.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, tx pgx.Tx, expenseID string) (*domain.Expense, error) {
	return r.findExpense(ctx, tx, expenseID, false)
}

// FindExpenseByIDForUpdate retrieves an expense and locks its row.
func (r *PgxExpenseRepository) FindExpenseByIDForUpdate(ctx context.Context, tx pgx.Tx, expenseID string) (*domain.Expense, error) {
	return r.findExpense(ctx, tx, expenseID, true)
}
