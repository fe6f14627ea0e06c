package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassifyRate(t *testing.T) {
	today := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)
	day := func(n int) *time.Time {
		v := today.AddDate(0, 0, -n)
		return &v
	}

	status, _ := domain.ClassifyRate(nil, today, 3)
	assert.Equal(t, domain.RateMissing, status)

	status, days := domain.ClassifyRate(day(3), today, 3)
	assert.Equal(t, domain.RateFresh, status)
	assert.Equal(t, 3, days)

	status, days = domain.ClassifyRate(day(4), today, 3)
	assert.Equal(t, domain.RateStale, status)
	assert.Equal(t, 4, days)
}
