package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Payment debit conventions accepted in PAYMENT_DEBIT_MODE.
const (
	PaymentDebitAccountsPayable = "accounts_payable"
	PaymentDebitExpenseAccount  = "expense_account"
)

// AccountCodes are the chart codes of the accounts the posting rules use by default.
type AccountCodes struct {
	Cash                 string
	Receivable           string
	Payable              string
	OpeningBalanceEquity string
	Income               string
}

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	MigrationsPath string
	Port           string
	IsProduction   bool
	JWTSecret      string

	BaseCurrency     string
	RateStaleDays    int
	PaymentDebitMode string
	AccountCodes     AccountCodes

	RedisURL      string
	RedisCacheTTL time.Duration

	RateLimit          string
	CORSAllowedOrigins []string

	// Cron specs of the background checks. Empty disables a job; set "off" in the environment.
	AuditVerifySchedule string
	RateHealthSchedule  string
}

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("MIGRATIONS_PATH", "migrations")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("BASE_CURRENCY", "KES")
	v.SetDefault("RATE_STALE_DAYS", 3)
	v.SetDefault("PAYMENT_DEBIT_MODE", PaymentDebitAccountsPayable)
	v.SetDefault("ACCOUNT_CODE_CASH", "1100")
	v.SetDefault("ACCOUNT_CODE_RECEIVABLE", "1200")
	v.SetDefault("ACCOUNT_CODE_PAYABLE", "2000")
	v.SetDefault("ACCOUNT_CODE_OPENING_BALANCE_EQUITY", "3999")
	v.SetDefault("ACCOUNT_CODE_INCOME", "4000")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_CACHE_TTL", "24h")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("AUDIT_VERIFY_SCHEDULE", "0 2 * * *")
	v.SetDefault("RATE_HEALTH_SCHEDULE", "0 6 * * *")
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	cfg.MigrationsPath = v.GetString("MIGRATIONS_PATH")

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = v.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.BaseCurrency = strings.ToUpper(strings.TrimSpace(v.GetString("BASE_CURRENCY")))
	if len(cfg.BaseCurrency) != 3 {
		log.Printf("Warning: Invalid BASE_CURRENCY ('%s'). Defaulting to KES.\n", cfg.BaseCurrency)
		cfg.BaseCurrency = "KES"
	}

	cfg.RateStaleDays = v.GetInt("RATE_STALE_DAYS")
	if cfg.RateStaleDays < 0 {
		log.Printf("Warning: Invalid RATE_STALE_DAYS (%d). Defaulting to 3.\n", cfg.RateStaleDays)
		cfg.RateStaleDays = 3
	}

	cfg.PaymentDebitMode = strings.ToLower(v.GetString("PAYMENT_DEBIT_MODE"))
	if cfg.PaymentDebitMode != PaymentDebitAccountsPayable && cfg.PaymentDebitMode != PaymentDebitExpenseAccount {
		log.Printf("Warning: Invalid PAYMENT_DEBIT_MODE ('%s'). Defaulting to %s.\n", cfg.PaymentDebitMode, PaymentDebitAccountsPayable)
		cfg.PaymentDebitMode = PaymentDebitAccountsPayable
	}

	cfg.AccountCodes = AccountCodes{
		Cash:                 v.GetString("ACCOUNT_CODE_CASH"),
		Receivable:           v.GetString("ACCOUNT_CODE_RECEIVABLE"),
		Payable:              v.GetString("ACCOUNT_CODE_PAYABLE"),
		OpeningBalanceEquity: v.GetString("ACCOUNT_CODE_OPENING_BALANCE_EQUITY"),
		Income:               v.GetString("ACCOUNT_CODE_INCOME"),
	}

	cfg.RedisURL = v.GetString("REDIS_URL")
	ttlStr := v.GetString("REDIS_CACHE_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl <= 0 {
		ttl = 24 * time.Hour
		log.Printf("Warning: Invalid value for REDIS_CACHE_TTL ('%s'). Defaulting to %s.\n", ttlStr, ttl.String())
	}
	cfg.RedisCacheTTL = ttl

	cfg.RateLimit = v.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.AuditVerifySchedule = schedule(v.GetString("AUDIT_VERIFY_SCHEDULE"))
	cfg.RateHealthSchedule = schedule(v.GetString("RATE_HEALTH_SCHEDULE"))

	return cfg
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func schedule(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, "off") {
		return ""
	}
	return raw
}
