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

const saleColumns = `sale_id, invoice_number, document_type, status, amount, currency_code, amount_base,
	sale_date, customer_name, income_account_id, deposit_account_id,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxSaleRepository struct {
	BaseRepository
}

func newPgxSaleRepository(pool *pgxpool.Pool) *PgxSaleRepository {
	return &PgxSaleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

// SaveSale inserts a new sale document.
func (r *PgxSaleRepository) SaveSale(ctx context.Context, tx pgx.Tx, sale domain.Sale) error {
	m := mapping.ToModelSale(sale)
	_, err := r.db(tx).Exec(ctx, `
		INSERT INTO sales (`+saleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);`,
		m.SaleID,
		m.InvoiceNumber,
		m.DocumentType,
		m.Status,
		m.Amount,
		m.CurrencyCode,
		m.AmountBase,
		m.SaleDate,
		m.CustomerName,
		m.IncomeAccountID,
		m.DepositAccountID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invoice number %s already exists", apperrors.ErrDuplicate, m.InvoiceNumber)
		}
		return fmt.Errorf("failed to save sale %s: %w", m.SaleID, err)
	}
	return nil
}

// UpdateSale updates the editable fields of a sale document.
func (r *PgxSaleRepository) UpdateSale(ctx context.Context, tx pgx.Tx, sale domain.Sale) error {
	m := mapping.ToModelSale(sale)
	cmdTag, err := r.db(tx).Exec(ctx, `
		UPDATE sales
		SET document_type = $1, status = $2, amount = $3, currency_code = $4, amount_base = $5,
		    sale_date = $6, customer_name = $7, income_account_id = $8, deposit_account_id = $9,
		    last_updated_at = $10, last_updated_by = $11
		WHERE sale_id = $12;`,
		m.DocumentType,
		m.Status,
		m.Amount,
		m.CurrencyCode,
		m.AmountBase,
		m.SaleDate,
		m.CustomerName,
		m.IncomeAccountID,
		m.DepositAccountID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.SaleID,
	)
	if err != nil {
		return fmt.Errorf("failed to update sale %s: %w", m.SaleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, m.SaleID)
	}
	return nil
}

// FindSaleByID retrieves a sale document by its ID.
func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, tx pgx.Tx, saleID string) (*domain.Sale, error) {
	var m models.Sale
	err := r.db(tx).QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE sale_id = $1;`, saleID).Scan(
		&m.SaleID,
		&m.InvoiceNumber,
		&m.DocumentType,
		&m.Status,
		&m.Amount,
		&m.CurrencyCode,
		&m.AmountBase,
		&m.SaleDate,
		&m.CustomerName,
		&m.IncomeAccountID,
		&m.DepositAccountID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, notFound(err, "sale", saleID)
	}
	sale := mapping.ToDomainSale(m)
	return &sale, nil
}
