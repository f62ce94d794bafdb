// Package access decides whether a sender is an operator.
package access

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/m3rciful/rosterbot/core/logger"
	"github.com/m3rciful/rosterbot/internal/domain"
)

// Finder looks up a record by sender; *directory.Gateway satisfies it.
type Finder interface {
	FindBySender(ctx context.Context, senderID int64) (*domain.User, error)
}

// Gate answers operator checks from the directory.
type Gate struct {
	users Finder
}

// New returns a Gate reading from users.
func New(users Finder) *Gate {
	return &Gate{users: users}
}

// IsOperator returns the record's operator flag and false for unknown senders.
// A lookup failure is returned as an error and never as false.
func (g *Gate) IsOperator(ctx context.Context, senderID int64) (bool, error) {
	u, err := g.users.FindBySender(ctx, senderID)
	if err != nil {
		logger.Warn(ctx, logger.CompAccess, "access.check_failed",
			slog.String("status", "fail"),
			slog.Int64("target_id", senderID),
			logger.Err(err),
		)
		return false, fmt.Errorf("operator check for %d: %w", senderID, err)
	}
	if u == nil {
		return false, nil
	}
	return u.IsOperator, nil
}
