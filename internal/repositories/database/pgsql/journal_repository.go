package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/school_ledger/internal/models"
	"github.com/SscSPs/school_ledger/internal/utils/mapping"
	"github.com/SscSPs/school_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const defaultPageSize = 20

const entryColumns = `entry_id, entry_date, reference, entry_type, description, status,
	expense_id, payment_id, sale_id, reverses_entry_id, reversed_by_entry_id, posted_at,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and their lines.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryDate,
		&m.Reference,
		&m.EntryType,
		&m.Description,
		&m.Status,
		&m.ExpenseID,
		&m.PaymentID,
		&m.SaleID,
		&m.ReversesEntryID,
		&m.ReversedByEntryID,
		&m.PostedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveEntry inserts the header and queues every line in a single batch.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO journal_entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);`,
		m.EntryID,
		m.EntryDate,
		m.Reference,
		m.EntryType,
		m.Description,
		m.Status,
		m.ExpenseID,
		m.PaymentID,
		m.SaleID,
		m.ReversesEntryID,
		m.ReversedByEntryID,
		m.PostedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	lineQuery := `
		INSERT INTO journal_entry_lines (line_id, journal_entry_id, line_no, account_id, debit, credit, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, line := range mapping.ToModelJournalEntryLines(m.EntryID, entry.Lines) {
		batch.Queue(lineQuery,
			line.LineID,
			line.EntryID,
			line.LineNo,
			line.AccountID,
			line.Debit,
			line.Credit,
			line.Description,
		)
	}

	br := r.db(tx).SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: journal entry reference %s already exists", apperrors.ErrDuplicate, m.Reference)
		}
		return apperrors.NewAppError(500, "failed to save journal entry "+m.EntryID, err)
	}
	return nil
}

func (r *PgxJournalRepository) findEntry(ctx context.Context, tx pgx.Tx, entryID string, forUpdate bool) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	m, err := scanEntry(r.db(tx).QueryRow(ctx, query, entryID))
	if err != nil {
		return nil, notFound(err, "journal entry", entryID)
	}
	entry := mapping.ToDomainJournalEntry(m)
	if err := r.attachLines(ctx, tx, []*domain.JournalEntry{&entry}); err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindEntryByID retrieves an entry with its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, tx pgx.Tx, entryID string) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, tx, entryID, false)
}

// FindEntryByIDForUpdate retrieves an entry with its lines and locks the header row.
func (r *PgxJournalRepository) FindEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, entryID string) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, tx, entryID, true)
}

// FindActiveEntryByOrigin retrieves the newest entry linked to origin that is neither reversed
// nor itself a reversal.
func (r *PgxJournalRepository) FindActiveEntryByOrigin(ctx context.Context, tx pgx.Tx, origin domain.EntryOrigin) (*domain.JournalEntry, error) {
	var column, id string
	switch {
	case origin.ExpenseID != nil:
		column, id = "expense_id", *origin.ExpenseID
	case origin.PaymentID != nil:
		column, id = "payment_id", *origin.PaymentID
	case origin.SaleID != nil:
		column, id = "sale_id", *origin.SaleID
	default:
		return nil, fmt.Errorf("%w: entry origin is empty", apperrors.ErrValidation)
	}

	query := `SELECT ` + entryColumns + ` FROM journal_entries
		WHERE ` + column + ` = $1 AND reversed_by_entry_id IS NULL AND reverses_entry_id IS NULL
		ORDER BY created_at DESC
		LIMIT 1
		FOR UPDATE;`
	m, err := scanEntry(r.db(tx).QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "journal entry for", origin.String())
	}
	entry := mapping.ToDomainJournalEntry(m)
	if err := r.attachLines(ctx, tx, []*domain.JournalEntry{&entry}); err != nil {
		return nil, err
	}
	return &entry, nil
}

// attachLines loads the lines of entries in line order.
func (r *PgxJournalRepository) attachLines(ctx context.Context, tx pgx.Tx, entries []*domain.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}
	ids := make([]string, len(entries))
	byID := make(map[string]*domain.JournalEntry, len(entries))
	for i, e := range entries {
		ids[i] = e.EntryID
		byID[e.EntryID] = e
	}

	rows, err := r.db(tx).Query(ctx, `
		SELECT line_id, journal_entry_id, line_no, account_id, debit, credit, description
		FROM journal_entry_lines
		WHERE journal_entry_id = ANY($1)
		ORDER BY journal_entry_id, line_no;`, ids)
	if err != nil {
		return apperrors.NewAppError(500, "failed to query journal entry lines", err)
	}
	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.JournalEntryLine, error) {
		var l models.JournalEntryLine
		err := row.Scan(&l.LineID, &l.EntryID, &l.LineNo, &l.AccountID, &l.Debit, &l.Credit, &l.Description)
		return l, err
	})
	if err != nil {
		return apperrors.NewAppError(500, "failed to scan journal entry lines", err)
	}
	for _, l := range lines {
		if e, ok := byID[l.EntryID]; ok {
			e.Lines = append(e.Lines, mapping.ToDomainJournalEntryLine(l))
		}
	}
	return nil
}

// ListEntries retrieves a page of entry headers, newest first. The token is the keyset of the
// last entry of the previous page.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, filter portsrepo.JournalEntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	var conditions []string
	var args []any
	if filter.From != nil {
		args = append(args, domain.DateOnly(*filter.From))
		conditions = append(conditions, "entry_date >= $"+strconv.Itoa(len(args)))
	}
	if filter.To != nil {
		args = append(args, domain.DateOnly(*filter.To))
		conditions = append(conditions, "entry_date <= $"+strconv.Itoa(len(args)))
	}
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		args = append(args, cursor.EntryDate, cursor.CreatedAt, cursor.EntryID)
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(entry_date, created_at, entry_id) < ($%d, $%d, $%d)", n-2, n-1, n))
	}

	query := `SELECT ` + entryColumns + ` FROM journal_entries`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	args = append(args, fetchLimit)
	query += ` ORDER BY entry_date DESC, created_at DESC, entry_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.JournalEntry, error) {
		return scanEntry(row)
	})
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to scan journal entries", err)
	}

	var nextTokenVal *string
	if len(ms) > limit {
		last := ms[limit-1]
		token := pagination.EncodeCursor(pagination.Cursor{
			EntryDate: last.EntryDate,
			CreatedAt: last.CreatedAt,
			EntryID:   last.EntryID,
		})
		nextTokenVal = &token
		ms = ms[:limit]
	}

	entries := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}
	return entries, nextTokenVal, nil
}

// MarkPosted moves a draft entry to posted.
func (r *PgxJournalRepository) MarkPosted(ctx context.Context, tx pgx.Tx, entryID string, userID string, postedAt time.Time) error {
	cmdTag, err := r.db(tx).Exec(ctx, `
		UPDATE journal_entries
		SET status = $1, posted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $4 AND status = $5;`,
		models.Posted, postedAt, userID, entryID, models.Draft)
	if err != nil {
		return fmt.Errorf("failed to post journal entry %s: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s is not a draft", apperrors.ErrConflict, entryID)
	}
	return nil
}

// LinkReversal records that reversalID reverses originalID.
func (r *PgxJournalRepository) LinkReversal(ctx context.Context, tx pgx.Tx, originalID string, reversalID string, userID string, now time.Time) error {
	cmdTag, err := r.db(tx).Exec(ctx, `
		UPDATE journal_entries
		SET reversed_by_entry_id = $1, last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $4 AND reversed_by_entry_id IS NULL;`,
		reversalID, now, userID, originalID)
	if err != nil {
		return fmt.Errorf("failed to link reversal of journal entry %s: %w", originalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s is already reversed", apperrors.ErrConflict, originalID)
	}
	return nil
}

// SumAccountLines totals the posted lines of one account with entry dates in [start, end].
func (r *PgxJournalRepository) SumAccountLines(ctx context.Context, accountID string, start, end time.Time) (domain.LineTotals, error) {
	var debit, credit decimal.Decimal
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.journal_entry_id
		WHERE l.account_id = $1 AND e.status = $2 AND e.entry_date BETWEEN $3 AND $4;`,
		accountID, models.Posted, domain.DateOnly(start), domain.DateOnly(end)).Scan(&debit, &credit)
	if err != nil {
		return domain.LineTotals{}, fmt.Errorf("failed to sum lines of account %s: %w", accountID, err)
	}
	return domain.LineTotals{Debit: debit, Credit: credit}, nil
}

// SumLinesByAccount totals posted lines per account with entry dates in [start, end].
func (r *PgxJournalRepository) SumLinesByAccount(ctx context.Context, start, end time.Time) (map[string]domain.LineTotals, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT l.account_id, SUM(l.debit), SUM(l.credit)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.journal_entry_id
		WHERE e.status = $1 AND e.entry_date BETWEEN $2 AND $3
		GROUP BY l.account_id;`,
		models.Posted, domain.DateOnly(start), domain.DateOnly(end))
	if err != nil {
		return nil, fmt.Errorf("failed to sum lines by account: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]domain.LineTotals)
	for rows.Next() {
		var accountID string
		var t domain.LineTotals
		if err := rows.Scan(&accountID, &t.Debit, &t.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan account totals: %w", err)
		}
		totals[accountID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account totals: %w", err)
	}
	return totals, nil
}
