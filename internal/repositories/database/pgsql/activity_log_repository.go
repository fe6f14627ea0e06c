package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/school_ledger/internal/models"
	"github.com/SscSPs/school_ledger/internal/utils/auditchain"
	"github.com/SscSPs/school_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// activityChainLockKey identifies the advisory lock that serializes chain appends.
const activityChainLockKey int64 = 0x6c656467657201

const activityLogColumns = `id, user_id, action, model_type, model_id, changes, ip_address, url, user_agent,
	prev_hash, hash, hash_salt, created_at`

type PgxActivityLogRepository struct {
	BaseRepository
}

func newPgxActivityLogRepository(pool *pgxpool.Pool) *PgxActivityLogRepository {
	return &PgxActivityLogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ActivityLogRepository = (*PgxActivityLogRepository)(nil)

func scanActivityLog(row pgx.Row) (models.ActivityLog, error) {
	var m models.ActivityLog
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.Action,
		&m.ModelType,
		&m.ModelID,
		&m.Changes,
		&m.IPAddress,
		&m.URL,
		&m.UserAgent,
		&m.PrevHash,
		&m.Hash,
		&m.HashSalt,
		&m.CreatedAt,
	)
	return m, err
}

// LockChain takes the transaction-scoped advisory lock. It is released on commit or rollback.
func (r *PgxActivityLogRepository) LockChain(ctx context.Context, tx pgx.Tx) error {
	if _, err := r.db(tx).Exec(ctx, `SELECT pg_advisory_xact_lock($1);`, activityChainLockKey); err != nil {
		return fmt.Errorf("failed to lock activity log chain: %w", err)
	}
	return nil
}

// LastHash returns the hash of the newest row, or the genesis hash for an empty chain.
func (r *PgxActivityLogRepository) LastHash(ctx context.Context, tx pgx.Tx) (string, error) {
	var hash string
	err := r.db(tx).QueryRow(ctx, `SELECT hash FROM activity_logs ORDER BY id DESC LIMIT 1;`).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auditchain.GenesisHash, nil
		}
		return "", fmt.Errorf("failed to read last activity log hash: %w", err)
	}
	return hash, nil
}

// AppendLog inserts a sealed row and sets its ID.
func (r *PgxActivityLogRepository) AppendLog(ctx context.Context, tx pgx.Tx, log *domain.ActivityLog) error {
	m, err := mapping.ToModelActivityLog(*log)
	if err != nil {
		return err
	}
	err = r.db(tx).QueryRow(ctx, `
		INSERT INTO activity_logs (user_id, action, model_type, model_id, changes, ip_address, url, user_agent,
		                           prev_hash, hash, hash_salt, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id;`,
		m.UserID,
		m.Action,
		m.ModelType,
		m.ModelID,
		m.Changes,
		m.IPAddress,
		m.URL,
		m.UserAgent,
		m.PrevHash,
		m.Hash,
		m.HashSalt,
		m.CreatedAt,
	).Scan(&log.ID)
	if err != nil {
		return fmt.Errorf("failed to append activity log: %w", err)
	}
	return nil
}

// WalkLogs streams every row in ascending id order.
func (r *PgxActivityLogRepository) WalkLogs(ctx context.Context, fn func(domain.ActivityLog) error) error {
	rows, err := r.Pool.Query(ctx, `SELECT `+activityLogColumns+` FROM activity_logs ORDER BY id;`)
	if err != nil {
		return fmt.Errorf("failed to query activity logs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanActivityLog(rows)
		if err != nil {
			return fmt.Errorf("failed to scan activity log: %w", err)
		}
		log, err := mapping.ToDomainActivityLog(m)
		if err != nil {
			return err
		}
		if err := fn(log); err != nil {
			return err
		}
	}
	return rows.Err()
}

// ListLogsForModel returns the newest rows for one entity.
func (r *PgxActivityLogRepository) ListLogsForModel(ctx context.Context, modelType domain.ModelType, modelID string, limit int) ([]domain.ActivityLog, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	rows, err := r.Pool.Query(ctx, `
		SELECT `+activityLogColumns+`
		FROM activity_logs
		WHERE model_type = $1 AND model_id = $2
		ORDER BY id DESC
		LIMIT $3;`, string(modelType), modelID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity logs for %s %s: %w", modelType, modelID, err)
	}
	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ActivityLog, error) {
		return scanActivityLog(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan activity logs: %w", err)
	}

	logs := make([]domain.ActivityLog, 0, len(ms))
	for _, m := range ms {
		log, err := mapping.ToDomainActivityLog(m)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, nil
}
