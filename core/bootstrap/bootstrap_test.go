package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"

	coreconfig "github.com/m3rciful/rosterbot/core/config"
	coredatabase "github.com/m3rciful/rosterbot/core/database"
)

func noLogger(*coreconfig.Config) error { return nil }

func TestRunSkipsDatabaseForMemoryDriver(t *testing.T) {
	connected := false
	res, err := Run(context.Background(), Options{
		Config:     &coreconfig.Config{},
		Database:   coredatabase.Config{Driver: coredatabase.DriverMemory},
		LoggerInit: noLogger,
		Connect: func(context.Context, coredatabase.Config) (*sqlx.DB, error) {
			connected = true
			return nil, nil
		},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if connected || res.DB != nil {
		t.Fatalf("memory driver opened a database")
	}
	if err := res.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestRunReportsConnectFailure(t *testing.T) {
	boom := errors.New("refused")
	_, err := Run(context.Background(), Options{
		Config:     &coreconfig.Config{},
		Database:   coredatabase.Config{Driver: coredatabase.DriverPostgres},
		LoggerInit: noLogger,
		Connect: func(context.Context, coredatabase.Config) (*sqlx.DB, error) {
			return nil, boom
		},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped connect error, got %v", err)
	}
}

func TestRunMigratesSQLite(t *testing.T) {
	migrated := false
	res, err := Run(context.Background(), Options{
		Config:     &coreconfig.Config{},
		Database:   coredatabase.Config{Driver: coredatabase.DriverSQLite, Path: ":memory:"},
		LoggerInit: noLogger,
		Connect: func(ctx context.Context, cfg coredatabase.Config) (*sqlx.DB, error) {
			return sqlx.Open("sqlite", ":memory:")
		},
		Migrate: func(context.Context, coredatabase.Config) error {
			migrated = true
			return nil
		},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	defer res.Close()
	if !migrated || res.DB == nil {
		t.Fatalf("migrated=%v db=%v", migrated, res.DB)
	}
}

func TestRunRequiresConfig(t *testing.T) {
	if _, err := Run(context.Background(), Options{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRunSeedersStopsAtFirstFailure(t *testing.T) {
	var order []int
	boom := errors.New("boom")
	err := RunSeeders(context.Background(),
		SeederFunc(func(context.Context) error { order = append(order, 1); return nil }),
		nil,
		SeederFunc(func(context.Context) error { order = append(order, 2); return boom }),
		SeederFunc(func(context.Context) error { order = append(order, 3); return nil }),
	)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if len(order) != 2 {
		t.Fatalf("order = %v", order)
	}
}
