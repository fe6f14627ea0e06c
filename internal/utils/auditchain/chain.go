// Package auditchain computes and verifies the hash chain over activity log rows.
//
// Each row stores the hash of its predecessor. A row's own hash is
// hex(SHA256(canonicalJSON(payload) + salt)) where the salt is the row's creation
// timestamp in RFC3339Nano, kept alongside the row so the hash can be recomputed.
package auditchain

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
)

// GenesisHash is the prev_hash of the first row in the chain.
const GenesisHash = ""

// SaltFormat is the layout of the per-row salt.
const SaltFormat = time.RFC3339Nano

// payload returns the hashed fields of a row. The id, hash and salt are excluded.
func payload(row domain.ActivityLog) map[string]any {
	var changes any
	if !row.Changes.IsEmpty() {
		changes = row.Changes
	}
	var userID any
	if row.UserID != nil {
		userID = *row.UserID
	}
	return map[string]any{
		"user_id":    userID,
		"action":     string(row.Action),
		"model_type": string(row.ModelType),
		"model_id":   row.ModelID,
		"changes":    changes,
		"ip_address": row.IPAddress,
		"url":        row.URL,
		"user_agent": row.UserAgent,
		"prev_hash":  row.PrevHash,
	}
}

// Canonicalize renders v as JSON with sorted object keys and exact number literals, so
// that values read back from a JSONB column hash identically to the values written.
func Canonicalize(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal audit payload: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("decode audit payload: %w", err)
	}
	out, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("re-marshal audit payload: %w", err)
	}
	return out, nil
}

// ComputeHash returns the hash of row from its payload, prev hash and salt.
func ComputeHash(row domain.ActivityLog) (string, error) {
	canonical, err := Canonicalize(payload(row))
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(append(canonical, []byte(row.HashSalt)...))
	return hex.EncodeToString(sum[:]), nil
}

// Seal links row to prevHash, stamps its creation time and salt, and computes its hash.
func Seal(row *domain.ActivityLog, prevHash string, at time.Time) error {
	row.PrevHash = prevHash
	row.CreatedAt = at.UTC()
	row.HashSalt = row.CreatedAt.Format(SaltFormat)
	hash, err := ComputeHash(*row)
	if err != nil {
		return err
	}
	row.Hash = hash
	return nil
}

// Verifier walks rows in ascending id order and collects chain breaks.
type Verifier struct {
	lastHash string
	report   domain.ChainReport
}

// NewVerifier starts a verification at the genesis of the chain.
func NewVerifier() *Verifier {
	return &Verifier{
		lastHash: GenesisHash,
		report:   domain.ChainReport{Breaks: []domain.ChainBreak{}},
	}
}

// Check verifies the linkage and content hash of the next row.
func (v *Verifier) Check(row domain.ActivityLog) {
	v.report.Checked++
	if row.PrevHash != v.lastHash {
		v.report.Breaks = append(v.report.Breaks, domain.ChainBreak{
			ID:       row.ID,
			Kind:     domain.BreakLinkage,
			Expected: v.lastHash,
			Actual:   row.PrevHash,
		})
	}
	recomputed, err := ComputeHash(row)
	if err != nil || recomputed != row.Hash {
		v.report.Breaks = append(v.report.Breaks, domain.ChainBreak{
			ID:       row.ID,
			Kind:     domain.BreakContent,
			Expected: recomputed,
			Actual:   row.Hash,
		})
	}
	// continue from the stored hash so a single tampered row is reported once
	v.lastHash = row.Hash
}

// Report returns the verification result so far.
func (v *Verifier) Report() domain.ChainReport {
	report := v.report
	report.Intact = len(report.Breaks) == 0
	return report
}

// Fail records an error that stopped the walk. The chain is then reported as not intact.
func (v *Verifier) Fail(err error) domain.ChainReport {
	report := v.Report()
	report.Intact = false
	report.Error = err.Error()
	return report
}

// Verify checks a complete, id-ordered slice of rows.
func Verify(rows []domain.ActivityLog) domain.ChainReport {
	v := NewVerifier()
	for _, row := range rows {
		v.Check(row)
	}
	return v.Report()
}
