package database

import (
	"context"
	"path/filepath"
	"testing"

	coreconfig "github.com/m3rciful/rosterbot/core/config"
	"github.com/m3rciful/rosterbot/core/logger"
)

func TestSQLiteMigrateAndConnect(t *testing.T) {
	if err := logger.InitLogger(&coreconfig.Config{Logging: coreconfig.LoggingConfig{Level: "error"}}); err != nil {
		t.Fatalf("logger: %v", err)
	}
	cfg := Config{
		Driver:        DriverSQLite,
		Path:          filepath.Join(t.TempDir(), "nested", "roster.db"),
		MigrationsDir: "../../migrations",
	}
	if err := cfg.Normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	ctx := context.Background()

	db, err := Connect(ctx, cfg)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer db.Close()

	if err := RunMigrations(ctx, cfg); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// a second run is a no-op
	if err := RunMigrations(ctx, cfg); err != nil {
		t.Fatalf("migrate again: %v", err)
	}

	var n int
	if err := db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		t.Fatalf("users table: %v", err)
	}
	if n != 0 {
		t.Fatalf("rows = %d", n)
	}
}
