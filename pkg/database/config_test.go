package database

import (
	"strings"
	"testing"
	"time"
)

func TestDSN(t *testing.T) {
	dsn := Config{Path: "/data/notes.db"}.DSN()

	if !strings.HasPrefix(dsn, "/data/notes.db?") {
		t.Errorf("DSN() = %q, want path prefix", dsn)
	}
	for _, want := range []string{"foreign_keys%281%29", "busy_timeout%285000%29", "_time_format=sqlite"} {
		if !strings.Contains(dsn, want) {
			t.Errorf("DSN() = %q, missing %q", dsn, want)
		}
	}
}

func TestConnMaxLifetime(t *testing.T) {
	if got := (Config{}).ConnMaxLifetime(); got != 5*time.Minute {
		t.Errorf("default ConnMaxLifetime() = %v", got)
	}
	if got := (Config{ConnMaxLifetimeMin: 2}).ConnMaxLifetime(); got != 2*time.Minute {
		t.Errorf("ConnMaxLifetime() = %v, want 2m", got)
	}
}
