package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/m3rciful/rosterbot/core/logger"
)

// Seeder loads reference data once the storage is ready.
type Seeder interface {
	Seed(ctx context.Context) error
}

// SeederFunc adapts a bare function to the Seeder interface.
type SeederFunc func(ctx context.Context) error

// Seed executes the underlying function.
func (f SeederFunc) Seed(ctx context.Context) error {
	return f(ctx)
}

// RunSeeders executes seeders in order and stops at the first failure.
func RunSeeders(ctx context.Context, seeders ...Seeder) error {
	for i, s := range seeders {
		if s == nil {
			continue
		}
		if err := s.Seed(ctx); err != nil {
			return fmt.Errorf("bootstrap: seeder %d failed: %w", i, err)
		}
	}
	logger.Info(ctx, "db.seed", "seed.complete", slog.Int("seeders", len(seeders)))
	return nil
}
