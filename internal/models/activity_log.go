package models

import "time"

// ActivityLog represents a row of the append-only activity_logs table.
// Changes holds the raw JSONB document, nil when the row carries no diff.
type ActivityLog struct {
	ID        int64     `db:"id"`
	UserID    *string   `db:"user_id"`
	Action    string    `db:"action"`
	ModelType string    `db:"model_type"`
	ModelID   string    `db:"model_id"`
	Changes   []byte    `db:"changes"`
	IPAddress string    `db:"ip_address"`
	URL       string    `db:"url"`
	UserAgent string    `db:"user_agent"`
	PrevHash  string    `db:"prev_hash"`
	Hash      string    `db:"hash"`
	HashSalt  string    `db:"hash_salt"`
	CreatedAt time.Time `db:"created_at"`
}
