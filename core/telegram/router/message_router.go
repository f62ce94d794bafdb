package router

import (
	"time"

	tele "gopkg.in/telebot.v4"

	tg "github.com/m3rciful/rosterbot/core/telegram"
	"github.com/m3rciful/rosterbot/core/telegram/middleware"
)

// TextRoutes routes every text message that no command route claimed to the registry's
// text fallback. Unknown slash commands arrive here too.
func TextRoutes(reg *tg.Registry) []tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		fb := reg.TextFallback()
		if fb == nil {
			logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
			return nil
		}
		return handleWithSummary(c, "text", start, func() error {
			return fb(c)
		})
	}

	return []tg.Route{{
		Endpoint: tele.OnText,
		Handler:  middleware.RecoverMiddleware(handler),
	}}
}
