// Package directory is the only way the roster services reach stored user records.
package directory

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/m3rciful/rosterbot/core/logger"
	"github.com/m3rciful/rosterbot/internal/domain"
)

// Store is the backing record store. Implementations return ErrNotFound and
// ErrDuplicate for the matching conditions; any other error is a store failure.
type Store interface {
	Insert(ctx context.Context, u domain.User) (domain.User, error)
	FindBySender(ctx context.Context, senderID int64) (*domain.User, error)
	// ListNonOperators returns records in insertion order.
	ListNonOperators(ctx context.Context) ([]domain.User, error)
	SetOperator(ctx context.Context, senderID int64, operator bool) error
	Delete(ctx context.Context, senderID int64) error
	Ping(ctx context.Context) error
}

// Gateway exposes the directory operations. It never retries.
type Gateway struct {
	store Store
}

// New returns a Gateway over store.
func New(store Store) *Gateway {
	return &Gateway{store: store}
}

// Create stores a complete record for a finished registration.
func (g *Gateway) Create(ctx context.Context, reg domain.Registration) (domain.User, error) {
	start := time.Now()
	u, err := g.store.Insert(ctx, reg.User())
	if err != nil {
		err = classify("create user", err)
		g.logFailure(ctx, "user.create_failed", reg.SenderID, err)
		return domain.User{}, err
	}
	logger.Info(ctx, logger.CompDirectory, "user.created",
		slog.String("status", "ok"),
		slog.Int64("target_id", u.SenderID),
		slog.Duration("duration", time.Since(start)),
	)
	return u, nil
}

// FindBySender returns the record for senderID, or nil when there is none.
func (g *Gateway) FindBySender(ctx context.Context, senderID int64) (*domain.User, error) {
	u, err := g.store.FindBySender(ctx, senderID)
	if err != nil {
		err = classify("find user", err)
		g.logFailure(ctx, "user.find_failed", senderID, err)
		return nil, err
	}
	return u, nil
}

// ListNonOperators returns every record without the operator flag, in insertion order.
func (g *Gateway) ListNonOperators(ctx context.Context) ([]domain.User, error) {
	users, err := g.store.ListNonOperators(ctx)
	if err != nil {
		err = classify("list users", err)
		g.logFailure(ctx, "user.list_failed", 0, err)
		return nil, err
	}
	if logger.ShouldSampleDebug() {
		logger.Debug(ctx, logger.CompDirectory, "user.listed", slog.Int("count", len(users)))
	}
	return users, nil
}

// SetOperator updates the operator flag of an existing record.
func (g *Gateway) SetOperator(ctx context.Context, senderID int64, operator bool) error {
	if err := g.store.SetOperator(ctx, senderID, operator); err != nil {
		err = classify("set operator", err)
		g.logFailure(ctx, "user.promote_failed", senderID, err)
		return err
	}
	logger.Info(ctx, logger.CompDirectory, "user.operator_set",
		slog.String("status", "ok"),
		slog.Int64("target_id", senderID),
		slog.Bool("operator", operator),
	)
	return nil
}

// Remove deletes the record for senderID.
func (g *Gateway) Remove(ctx context.Context, senderID int64) error {
	if err := g.store.Delete(ctx, senderID); err != nil {
		err = classify("remove user", err)
		g.logFailure(ctx, "user.remove_failed", senderID, err)
		return err
	}
	logger.Info(ctx, logger.CompDirectory, "user.removed",
		slog.String("status", "ok"),
		slog.Int64("target_id", senderID),
	)
	return nil
}

// Ping checks the backing store.
func (g *Gateway) Ping(ctx context.Context) error {
	return classify("ping", g.store.Ping(ctx))
}

func (g *Gateway) logFailure(ctx context.Context, event string, senderID int64, err error) {
	attrs := []slog.Attr{
		slog.String("status", "fail"),
		slog.String("err_code", errCode(err)),
		logger.Err(err),
	}
	if senderID != 0 {
		attrs = append(attrs, slog.Int64("target_id", senderID))
	}
	if errors.Is(err, ErrStoreUnavailable) {
		logger.Error(ctx, logger.CompDirectory, event, attrs...)
		return
	}
	logger.Debug(ctx, logger.CompDirectory, event, attrs...)
}
