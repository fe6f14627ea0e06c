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

const paymentColumns = `payment_id, expense_id, payment_date, payment_account_id, amount, payment_method,
	payment_reference, voucher_number, status, created_at, created_by, last_updated_at, last_updated_by`

type PgxPaymentRepository struct {
	BaseRepository
}

func newPgxPaymentRepository(pool *pgxpool.Pool) *PgxPaymentRepository {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

func scanPayment(row pgx.Row) (models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.ExpenseID,
		&m.PaymentDate,
		&m.PaymentAccountID,
		&m.Amount,
		&m.PaymentMethod,
		&m.PaymentReference,
		&m.VoucherNumber,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePayment inserts a new payment.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	_, err := r.db(tx).Exec(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`,
		m.PaymentID,
		m.ExpenseID,
		m.PaymentDate,
		m.PaymentAccountID,
		m.Amount,
		m.PaymentMethod,
		m.PaymentReference,
		m.VoucherNumber,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: voucher number %s already exists", apperrors.ErrDuplicate, m.VoucherNumber)
		}
		return fmt.Errorf("failed to save payment %s: %w", m.PaymentID, err)
	}
	return nil
}

// UpdatePayment updates the editable fields of a payment.
func (r *PgxPaymentRepository) UpdatePayment(ctx context.Context, tx pgx.Tx, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	cmdTag, err := r.db(tx).Exec(ctx, `
		UPDATE payments
		SET payment_date = $1, payment_account_id = $2, amount = $3, payment_method = $4,
		    payment_reference = $5, status = $6, last_updated_at = $7, last_updated_by = $8
		WHERE payment_id = $9;`,
		m.PaymentDate,
		m.PaymentAccountID,
		m.Amount,
		m.PaymentMethod,
		m.PaymentReference,
		m.Status,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.PaymentID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment %s: %w", m.PaymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, m.PaymentID)
	}
	return nil
}

// FindPaymentByID retrieves a payment by its ID.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, tx pgx.Tx, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`
	m, err := scanPayment(r.db(tx).QueryRow(ctx, query, paymentID))
	if err != nil {
		return nil, notFound(err, "payment", paymentID)
	}
	payment := mapping.ToDomainPayment(m)
	return &payment, nil
}

// ListPaymentsByExpense returns every payment of an expense in payment date order.
func (r *PgxPaymentRepository) ListPaymentsByExpense(ctx context.Context, tx pgx.Tx, expenseID string) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE expense_id = $1 ORDER BY payment_date, created_at;`
	rows, err := r.db(tx).Query(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments of expense %s: %w", expenseID, err)
	}
	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Payment, error) {
		return scanPayment(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan payments: %w", err)
	}
	return mapping.ToDomainPaymentSlice(ms), nil
}
