package database

import (
	"fmt"
	"net/url"
	"time"

	"github.com/Alijeyrad/health_companion/config"
)

// Config holds database connection and behavior settings
type Config struct {
	Path          string
	BusyTimeoutMs int

	// Connection pooling
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int

	// Migration control
	AutoMigrate bool

	// Query logging
	EnableLogging bool
}

// DSN returns a modernc.org/sqlite connection string. Foreign keys are
// switched on for every connection so that summary and follow-up rows are
// removed together with their note.
func (c Config) DSN() string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", c.busyTimeout()))
	q.Add("_pragma", "journal_mode(WAL)")
	q.Set("_time_format", "sqlite")
	return c.Path + "?" + q.Encode()
}

func (c Config) busyTimeout() int {
	if c.BusyTimeoutMs <= 0 {
		return 5000
	}
	return c.BusyTimeoutMs
}

// ConnMaxLifetime returns the connection max lifetime as a duration
func (c Config) ConnMaxLifetime() time.Duration {
	if c.ConnMaxLifetimeMin <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.ConnMaxLifetimeMin) * time.Minute
}

// DefaultConfig returns sensible defaults for database configuration
func DefaultConfig() Config {
	return Config{
		Path:               "health_companion.db",
		BusyTimeoutMs:      5000,
		MaxOpenConns:       1,
		MaxIdleConns:       1,
		ConnMaxLifetimeMin: 5,
		AutoMigrate:        true,
	}
}

// FromCentralConfig converts central config.DatabaseConfig to package Config
func FromCentralConfig(c config.DatabaseConfig) Config {
	return Config{
		Path:               c.Path,
		BusyTimeoutMs:      c.BusyTimeoutMs,
		MaxOpenConns:       c.Pool.MaxOpenConns,
		MaxIdleConns:       c.Pool.MaxIdleConns,
		ConnMaxLifetimeMin: c.Pool.ConnMaxLifetimeMin,
		AutoMigrate:        c.Migrations.AutoMigrate,
		EnableLogging:      c.Logging.Enabled,
	}
}
