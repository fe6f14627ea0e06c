package auditchain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/utils/auditchain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildChain(t *testing.T, n int) []domain.ActivityLog {
	t.Helper()
	start := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	user := "user-1"
	rows := make([]domain.ActivityLog, 0, n)
	prev := auditchain.GenesisHash
	for i := 0; i < n; i++ {
		row := domain.ActivityLog{
			ID:        int64(i + 1),
			UserID:    &user,
			Action:    domain.ActionCreate,
			ModelType: domain.ModelExpense,
			ModelID:   "expense-" + string(rune('a'+i)),
			Changes:   &domain.Changes{After: map[string]any{"amount": "100.00", "description": "chalk"}},
			IPAddress: "10.0.0.1",
			URL:       "/api/v1/expenses",
			UserAgent: "test",
		}
		require.NoError(t, auditchain.Seal(&row, prev, start.Add(time.Duration(i)*time.Second)))
		prev = row.Hash
		rows = append(rows, row)
	}
	return rows
}

func TestVerify_IntactChain(t *testing.T) {
	rows := buildChain(t, 4)
	report := auditchain.Verify(rows)
	assert.True(t, report.Intact)
	assert.Equal(t, 4, report.Checked)
	assert.Empty(t, report.Breaks)
	assert.Equal(t, auditchain.GenesisHash, rows[0].PrevHash)
	assert.Equal(t, rows[0].Hash, rows[1].PrevHash)
	assert.Len(t, rows[0].Hash, 64)
}

func TestVerify_EmptyChain(t *testing.T) {
	report := auditchain.Verify(nil)
	assert.True(t, report.Intact)
	assert.Zero(t, report.Checked)
}

func TestVerify_TamperedContentOnLastRow(t *testing.T) {
	rows := buildChain(t, 3)
	rows[2].Changes.After["amount"] = "1.00"

	report := auditchain.Verify(rows)
	assert.False(t, report.Intact)
	require.Len(t, report.Breaks, 1)
	assert.Equal(t, int64(3), report.Breaks[0].ID)
	assert.Equal(t, domain.BreakContent, report.Breaks[0].Kind)
}

func TestVerify_RehashedRowBreaksLinkage(t *testing.T) {
	rows := buildChain(t, 3)
	rows[1].ModelID = "forged"
	hash, err := auditchain.ComputeHash(rows[1])
	require.NoError(t, err)
	rows[1].Hash = hash

	report := auditchain.Verify(rows)
	assert.False(t, report.Intact)
	require.Len(t, report.Breaks, 1)
	assert.Equal(t, int64(3), report.Breaks[0].ID)
	assert.Equal(t, domain.BreakLinkage, report.Breaks[0].Kind)
}

func TestVerify_DeletedRow(t *testing.T) {
	rows := buildChain(t, 3)
	rows = append(rows[:1], rows[2:]...)

	report := auditchain.Verify(rows)
	assert.False(t, report.Intact)
	require.Len(t, report.Breaks, 1)
	assert.Equal(t, domain.BreakLinkage, report.Breaks[0].Kind)
}

func TestComputeHash_StableAcrossKeyOrderAndSaltSensitive(t *testing.T) {
	row := domain.ActivityLog{
		Action:    domain.ActionUpdate,
		ModelType: domain.ModelAccount,
		ModelID:   "acc-1",
		Changes: &domain.Changes{
			Before: map[string]any{"name": "Bank", "code": "1100"},
			After:  map[string]any{"code": "1100", "name": "Main Bank"},
		},
		HashSalt: "2024-01-01T00:00:00Z",
	}
	h1, err := auditchain.ComputeHash(row)
	require.NoError(t, err)

	row.Changes = &domain.Changes{
		After:  map[string]any{"name": "Main Bank", "code": "1100"},
		Before: map[string]any{"code": "1100", "name": "Bank"},
	}
	h2, err := auditchain.ComputeHash(row)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	row.HashSalt = "2024-01-01T00:00:01Z"
	h3, err := auditchain.ComputeHash(row)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestVerifier_Fail(t *testing.T) {
	v := auditchain.NewVerifier()
	for _, row := range buildChain(t, 2) {
		v.Check(row)
	}
	report := v.Fail(assert.AnError)
	assert.False(t, report.Intact)
	assert.Equal(t, 2, report.Checked)
	assert.Equal(t, assert.AnError.Error(), report.Error)
}
