package helpers

import (
	"context"

	"github.com/m3rciful/rosterbot/core/logger"

	tele "gopkg.in/telebot.v4"
)

// ctxKey is the tele.Context store key holding the per-update logging context.
const ctxKey = "roster.ctx"

// StoreContext caches ctx on c so later handlers log with the same rid and metadata.
func StoreContext(c tele.Context, ctx context.Context) {
	if c != nil && ctx != nil {
		c.Set(ctxKey, ctx)
	}
}

// ContextFrom returns the context cached by StoreContext.
func ContextFrom(c tele.Context) (context.Context, bool) {
	if c == nil {
		return nil, false
	}
	ctx, ok := c.Get(ctxKey).(context.Context)
	return ctx, ok && ctx != nil
}

// BuildContext returns the cached context or derives one from the update: rid,
// update id, sender id and session (chat) id. The result is cached on c.
func BuildContext(c tele.Context) context.Context {
	if ctx, ok := ContextFrom(c); ok {
		return ctx
	}

	var sessionID, senderID int64
	if chat := c.Chat(); chat != nil {
		sessionID = chat.ID
	}
	if sender := c.Sender(); sender != nil {
		senderID = sender.ID
	}
	updateID := c.Update().ID

	rid, _ := c.Get("rid").(string)
	if rid == "" {
		rid = logger.BuildRID(updateID, sessionID, senderID)
	}
	ctx := logger.WithUpdateMeta(logger.WithRID(context.Background(), rid), updateID, senderID, sessionID)
	StoreContext(c, ctx)
	return ctx
}

// WithHandler tags the update context with the handler name.
func WithHandler(c tele.Context, handler string) context.Context {
	ctx := BuildContext(c)
	if handler != "" {
		ctx = logger.WithHandler(ctx, handler)
		StoreContext(c, ctx)
	}
	return ctx
}
