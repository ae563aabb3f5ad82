// Package repotest opens throwaway migrated stores for tests.
package repotest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Alijeyrad/health_companion/internal/repo"
	"github.com/Alijeyrad/health_companion/pkg/database"
)

// New returns a client over a fresh SQLite file in t.TempDir.
func New(t testing.TB) *repo.Client {
	t.Helper()

	cfg := database.DefaultConfig()
	cfg.Path = filepath.Join(t.TempDir(), "test.db")

	client, err := database.NewEntClientFromConfig(cfg)
	if err != nil {
		t.Fatalf("open client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := client.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return client
}
