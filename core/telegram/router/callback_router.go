package router

import (
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v4"

	tg "github.com/m3rciful/rosterbot/core/telegram"
	"github.com/m3rciful/rosterbot/core/telegram/callbacks"
	"github.com/m3rciful/rosterbot/core/telegram/middleware"
)

// CallbackRoute answers every inline button press and hands it to the registry's
// callback handler.
func CallbackRoute(reg *tg.Registry) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		if c.Callback() == nil {
			return nil
		}
		// stops the client spinner; the answer carries no text
		_ = c.Respond()

		key := callbacks.CallbackKey(c)
		name := "callback." + normalizeHandlerName(key)
		extras := []slog.Attr{slog.String("cb_key", key)}

		h := reg.CallbackHandler()
		if h == nil {
			logHandlerSummary(c, name, start, "skip", "not_found", nil, extras...)
			return nil
		}
		return handleWithSummary(c, name, start, func() error {
			return h(c)
		}, extras...)
	}
	return tg.Route{
		Endpoint: tele.OnCallback,
		Handler:  middleware.RecoverMiddleware(handler),
	}
}
