package mapping

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/models"
)

// ToModelActivityLog converts a sealed domain ActivityLog to a model row.
func ToModelActivityLog(d domain.ActivityLog) (models.ActivityLog, error) {
	var changes []byte
	if !d.Changes.IsEmpty() {
		raw, err := json.Marshal(d.Changes)
		if err != nil {
			return models.ActivityLog{}, fmt.Errorf("marshal changes: %w", err)
		}
		changes = raw
	}
	return models.ActivityLog{
		ID:        d.ID,
		UserID:    d.UserID,
		Action:    string(d.Action),
		ModelType: string(d.ModelType),
		ModelID:   d.ModelID,
		Changes:   changes,
		IPAddress: d.IPAddress,
		URL:       d.URL,
		UserAgent: d.UserAgent,
		PrevHash:  d.PrevHash,
		Hash:      d.Hash,
		HashSalt:  d.HashSalt,
		CreatedAt: d.CreatedAt,
	}, nil
}

// ToDomainActivityLog converts a model row to a domain ActivityLog. Numbers inside the
// changes document keep their exact literals so the row re-hashes to its stored hash.
func ToDomainActivityLog(m models.ActivityLog) (domain.ActivityLog, error) {
	var changes *domain.Changes
	if len(m.Changes) > 0 && !bytes.Equal(m.Changes, []byte("null")) {
		dec := json.NewDecoder(bytes.NewReader(m.Changes))
		dec.UseNumber()
		changes = &domain.Changes{}
		if err := dec.Decode(changes); err != nil {
			return domain.ActivityLog{}, fmt.Errorf("decode changes of activity log %d: %w", m.ID, err)
		}
	}
	return domain.ActivityLog{
		ID:        m.ID,
		UserID:    m.UserID,
		Action:    domain.AuditAction(m.Action),
		ModelType: domain.ModelType(m.ModelType),
		ModelID:   m.ModelID,
		Changes:   changes,
		IPAddress: m.IPAddress,
		URL:       m.URL,
		UserAgent: m.UserAgent,
		PrevHash:  m.PrevHash,
		Hash:      m.Hash,
		HashSalt:  m.HashSalt,
		CreatedAt: m.CreatedAt,
	}, nil
}
