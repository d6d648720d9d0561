package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"tablebanking/internal/domain/settings"
)

const (
	LockRedis = "redis"
	LockLocal = "local"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	// LockBackend serialises loan approvals across API replicas.
	LockBackend  string
	LockTTLSecs  int
	LockWaitSecs int

	// Ledger defaults; rows in the settings table override them.
	MaxLoanMultiplier    string
	DefaultInterestRate  string
	LoanStrategy         string
	FixedTermMonths      string
	FixedTermMonthlyRate string
	OverpaymentPolicy    string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	return &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "tablebanking"),
		MySQLUser: getenv("MYSQL_USER", "tablebanking"),
		MySQLPass: getenv("MYSQL_PASS", "tablebanking"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:      getenvInt("REDIS_DB", 0),
		IdempTTLSecs: getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),

		LockBackend:  getenv("LOCK_BACKEND", LockRedis),
		LockTTLSecs:  getenvInt("LOCK_TTL_SECONDS", 10),
		LockWaitSecs: getenvInt("LOCK_WAIT_SECONDS", 5),

		MaxLoanMultiplier:    os.Getenv("MAX_LOAN_MULTIPLIER"),
		DefaultInterestRate:  os.Getenv("DEFAULT_INTEREST_RATE"),
		LoanStrategy:         os.Getenv("LOAN_STRATEGY"),
		FixedTermMonths:      os.Getenv("FIXED_TERM_MONTHS"),
		FixedTermMonthlyRate: os.Getenv("FIXED_TERM_MONTHLY_RATE"),
		OverpaymentPolicy:    os.Getenv("OVERPAYMENT_POLICY"),
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.LockBackend {
	case LockRedis, LockLocal:
	default:
		return fmt.Errorf("invalid LOCK_BACKEND %q (want %s or %s)", c.LockBackend, LockRedis, LockLocal)
	}
	if c.LockTTLSecs <= 0 {
		return fmt.Errorf("invalid LOCK_TTL_SECONDS %d", c.LockTTLSecs)
	}
	return nil
}

// SettingOverrides returns the ledger settings given through the environment,
// keyed like the settings table. Unset variables are omitted.
func (c *Config) SettingOverrides() map[string]string {
	out := map[string]string{}
	put := func(k, v string) {
		if v != "" {
			out[k] = v
		}
	}
	put(settings.KeyMaxLoanMultiplier, c.MaxLoanMultiplier)
	put(settings.KeyDefaultInterestRate, c.DefaultInterestRate)
	put(settings.KeyLoanStrategy, c.LoanStrategy)
	put(settings.KeyFixedTermMonths, c.FixedTermMonths)
	put(settings.KeyFixedTermMonthlyRate, c.FixedTermMonthlyRate)
	put(settings.KeyOverpaymentPolicy, c.OverpaymentPolicy)
	return out
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATE/DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
