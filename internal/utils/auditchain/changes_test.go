package auditchain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/utils/auditchain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trackedUser struct {
	Name          string    `json:"name"`
	Password      string    `json:"password"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

func TestBuildChanges_UpdateKeepsOnlyChangedFields(t *testing.T) {
	r := auditchain.DefaultRegistry()
	before := domain.Account{AccountID: "a1", Code: "1100", Name: "Bank", AccountType: domain.Asset, IsActive: true}
	after := before
	after.Name = "Main Bank"
	after.LastUpdatedAt = time.Now()

	changes, ok, err := r.BuildChanges(domain.AuditChange{
		Action: domain.ActionUpdate, ModelType: domain.ModelAccount, ModelID: "a1", Before: before, After: after,
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Bank", changes.Before["name"])
	assert.Equal(t, "Main Bank", changes.After["name"])
	assert.NotContains(t, changes.After, "code")
}

func TestBuildChanges_TimestampOnlyUpdateSkipped(t *testing.T) {
	r := auditchain.DefaultRegistry()
	before := trackedUser{Name: "A", LastUpdatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	after := before
	after.LastUpdatedAt = before.LastUpdatedAt.Add(time.Hour)

	changes, ok, err := r.BuildChanges(domain.AuditChange{
		Action: domain.ActionUpdate, ModelType: domain.ModelUser, Before: before, After: after,
	})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, changes)
}

func TestBuildChanges_SensitiveFieldsRemoved(t *testing.T) {
	r := auditchain.DefaultRegistry()
	changes, ok, err := r.BuildChanges(domain.AuditChange{
		Action: domain.ActionCreate, ModelType: domain.ModelUser, After: trackedUser{Name: "A", Password: "hunter2"},
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Nil(t, changes.Before)
	assert.Equal(t, "A", changes.After["name"])
	assert.NotContains(t, changes.After, "password")
}

func TestBuildChanges_UntrackedModel(t *testing.T) {
	r := auditchain.NewRegistry()
	_, _, err := r.BuildChanges(domain.AuditChange{Action: domain.ActionCreate, ModelType: domain.ModelSale})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	r.Register(domain.ModelSale, auditchain.Policy{})
	assert.True(t, r.IsTracked(domain.ModelSale))
}
