package database

import (
	"strings"
	"testing"
)

func TestNormalizeDefaults(t *testing.T) {
	cfg := Config{Host: "db", Name: "roster"}
	if err := cfg.Normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Driver != DriverPostgres || cfg.Port != "5432" || cfg.SSLMode != "disable" || cfg.MaxConnections != 10 {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.MigrationsDir != "migrations" {
		t.Fatalf("migrations dir = %q", cfg.MigrationsDir)
	}
}

func TestNormalizeSQLitePinsSingleConnection(t *testing.T) {
	cfg := Config{Driver: "SQLite", Path: "data/roster.db", MaxConnections: 20}
	if err := cfg.Normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Driver != DriverSQLite || cfg.MaxConnections != 1 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if dsn := cfg.sqliteDSN(); !strings.HasPrefix(dsn, "data/roster.db?") || !strings.Contains(dsn, "busy_timeout") {
		t.Fatalf("dsn = %q", dsn)
	}
}

func TestNormalizeRejects(t *testing.T) {
	for name, cfg := range map[string]Config{
		"postgres without host": {Driver: DriverPostgres, Name: "x"},
		"sqlite without path":   {Driver: DriverSQLite},
		"unknown driver":        {Driver: "mysql"},
	} {
		if err := cfg.Normalize(); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestPostgresURLEscapesCredentials(t *testing.T) {
	cfg := Config{Host: "db", Port: "5432", User: "bot", Password: "p@ss word", Name: "roster", SSLMode: "disable"}
	got := cfg.postgresURL()
	want := "postgres://bot:p%40ss%20word@db:5432/roster?sslmode=disable"
	if got != want {
		t.Fatalf("url = %s", got)
	}
	cfg.User = ""
	if got := cfg.postgresURL(); got != "postgres://db:5432/roster?sslmode=disable" {
		t.Fatalf("url = %s", got)
	}
}

func TestSelectApplied(t *testing.T) {
	files := []string{"000001_create_users.up.sql", "000002_index.up.sql", "000003_more.up.sql"}
	got := selectApplied(files, 1, 3)
	if len(got) != 2 || got[0] != "000002_index.up.sql" {
		t.Fatalf("applied = %v", got)
	}
	if selectApplied(files, 3, 3) != nil {
		t.Fatalf("expected nothing applied")
	}
	if parseVersion("junk.sql") != 0 {
		t.Fatalf("junk version parsed")
	}
}

func TestListMigrationFilesReadsRepoMigrations(t *testing.T) {
	for _, driver := range []string{DriverPostgres, DriverSQLite} {
		files := listMigrationFiles("../../migrations/" + driver)
		if len(files) == 0 || files[0] != "000001_create_users.up.sql" {
			t.Fatalf("%s migrations = %v", driver, files)
		}
	}
}
