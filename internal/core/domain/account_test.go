package domain_test

import (
	"testing"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestAccountType(t *testing.T) {
	cases := []struct {
		accountType domain.AccountType
		debitNormal bool
	}{
		{domain.Asset, true},
		{domain.Liability, false},
		{domain.Equity, false},
		{domain.Income, false},
		{domain.ExpenseType, true},
	}
	for _, tc := range cases {
		assert.True(t, tc.accountType.IsValid(), tc.accountType)
		assert.Equal(t, tc.debitNormal, tc.accountType.IsDebitNormal(), tc.accountType)
	}

	assert.Equal(t, domain.AccountType("expense"), domain.ExpenseType)
	assert.False(t, domain.AccountType("expenses").IsValid())
	assert.False(t, domain.AccountType("").IsValid())
}
