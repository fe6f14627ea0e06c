package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	assert.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "KES", cfg.BaseCurrency)
	assert.Equal(t, 3, cfg.RateStaleDays)
	assert.Equal(t, PaymentDebitAccountsPayable, cfg.PaymentDebitMode)
	assert.Equal(t, AccountCodes{
		Cash:                 "1100",
		Receivable:           "1200",
		Payable:              "2000",
		OpeningBalanceEquity: "3999",
		Income:               "4000",
	}, cfg.AccountCodes)
	assert.Equal(t, 24*time.Hour, cfg.RedisCacheTTL)
	assert.Equal(t, "100-M", cfg.RateLimit)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "0 2 * * *", cfg.AuditVerifySchedule)
	assert.Equal(t, "0 6 * * *", cfg.RateHealthSchedule)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("BASE_CURRENCY", "usd")
	t.Setenv("RATE_STALE_DAYS", "7")
	t.Setenv("PAYMENT_DEBIT_MODE", "expense_account")
	t.Setenv("ACCOUNT_CODE_CASH", "1010")
	t.Setenv("REDIS_CACHE_TTL", "30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RATE_HEALTH_SCHEDULE", "off")

	cfg, err := LoadConfig()
	assert.NoError(t, err)

	assert.Equal(t, "USD", cfg.BaseCurrency)
	assert.Equal(t, 7, cfg.RateStaleDays)
	assert.Equal(t, PaymentDebitExpenseAccount, cfg.PaymentDebitMode)
	assert.Equal(t, "1010", cfg.AccountCodes.Cash)
	assert.Equal(t, 30*time.Minute, cfg.RedisCacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.RateHealthSchedule)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("BASE_CURRENCY", "EURO")
	t.Setenv("PAYMENT_DEBIT_MODE", "cash")
	t.Setenv("REDIS_CACHE_TTL", "soon")

	cfg, err := LoadConfig()
	assert.NoError(t, err)

	assert.Equal(t, "KES", cfg.BaseCurrency)
	assert.Equal(t, PaymentDebitAccountsPayable, cfg.PaymentDebitMode)
	assert.Equal(t, 24*time.Hour, cfg.RedisCacheTTL)
}
