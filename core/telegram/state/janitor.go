package state

import (
	"context"
	"log/slog"
	"time"

	"github.com/m3rciful/rosterbot/core/logger"
)

// StartJanitor sweeps mgr every interval until ctx is done. onExpire, when set, is
// called for each evicted session that still had a dialogue running.
func StartJanitor(ctx context.Context, mgr Manager, interval, ttl time.Duration, onExpire func(context.Context, Expired)) {
	if mgr == nil || interval <= 0 || ttl <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				evicted := mgr.Sweep(now, ttl)
				abandoned := 0
				for _, e := range evicted {
					if !e.Stage.Active() {
						continue
					}
					abandoned++
					if onExpire != nil {
						onExpire(ctx, e)
					}
				}
				if len(evicted) > 0 {
					logger.Info(ctx, logger.CompSession, "session.sweep",
						slog.Int("count", len(evicted)),
						slog.Int("abandoned", abandoned),
						slog.Int("total", mgr.Len()),
					)
				}
			}
		}
	}()
}
