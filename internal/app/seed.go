package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/m3rciful/rosterbot/core/bootstrap"
	"github.com/m3rciful/rosterbot/core/logger"
	"github.com/m3rciful/rosterbot/internal/domain"
)

const compSeed = "db.seed"

// operatorDirectory is the part of the directory the seeder needs.
type operatorDirectory interface {
	FindBySender(ctx context.Context, senderID int64) (*domain.User, error)
	SetOperator(ctx context.Context, senderID int64, operator bool) error
}

// OperatorSeeder promotes the configured operator ids that already have a record.
// Unknown ids are skipped; no record is ever created here.
func OperatorSeeder(users operatorDirectory, ids []int64) bootstrap.Seeder {
	return bootstrap.SeederFunc(func(ctx context.Context) error {
		promoted, skipped := 0, 0
		for _, id := range ids {
			u, err := users.FindBySender(ctx, id)
			if err != nil {
				return fmt.Errorf("seed operator %d: %w", id, err)
			}
			if u == nil {
				skipped++
				logger.Warn(ctx, compSeed, "operator.missing", slog.Int64("sender_id", id))
				continue
			}
			if u.IsOperator {
				continue
			}
			if err := users.SetOperator(ctx, id, true); err != nil {
				return fmt.Errorf("seed operator %d: %w", id, err)
			}
			promoted++
		}
		if len(ids) > 0 {
			logger.Info(ctx, compSeed, "operators.seeded",
				slog.Int("configured", len(ids)),
				slog.Int("promoted", promoted),
				slog.Int("skipped", skipped),
			)
		}
		return nil
	})
}
