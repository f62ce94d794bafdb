package helpers

import (
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/rosterbot/core/logger"
	"github.com/m3rciful/rosterbot/core/telegram/sender"
)

var globalDispatcher atomic.Pointer[sender.Dispatcher]

// SetDispatcher wires the asynchronous sender used by helper functions.
func SetDispatcher(d *sender.Dispatcher) {
	globalDispatcher.Store(d)
}

func currentDispatcher() *sender.Dispatcher {
	return globalDispatcher.Load()
}

// ChatKey returns the ordering key for outbound calls made on behalf of c.
func ChatKey(c tele.Context) int64 {
	if chat := c.Chat(); chat != nil {
		return chat.ID
	}
	if user := c.Sender(); user != nil {
		return user.ID
	}
	return 0
}

// sendAsync queues run behind earlier sends for the same chat, waiting for room when
// the chat's shard is full. Only a closed dispatcher makes run execute inline.
func sendAsync(c tele.Context, action, endpoint string, run func() error) error {
	disp := currentDispatcher()
	if disp == nil {
		return run()
	}

	ctx := BuildContext(c)
	err := disp.Enqueue(ctx, ChatKey(c), action, endpoint, run)
	if errors.Is(err, sender.ErrQueueClosed) {
		logger.Warn(ctx, "tg.sender", "queue.closed_inline",
			slog.String("action", action),
			slog.String("endpoint", endpoint),
		)
		return run()
	}
	return err
}

// SendText sends raw text (no parse mode) with optional reply markup to the current chat.
func SendText(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	CountMessage(c, markup != nil)
	return sendAsync(c, "send.text", "sendMessage", func() error {
		if markup != nil {
			return c.Send(text, markup)
		}
		return c.Send(text)
	})
}

// EditText replaces the text and inline keyboard of the message the callback came from.
// Without a callback message it falls back to sending a new message.
func EditText(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if cb := c.Callback(); cb == nil || cb.Message == nil {
		return SendText(c, text, markup)
	}
	CountMessage(c, markup != nil)
	return sendAsync(c, "edit.text", "editMessageText", func() error {
		var err error
		if markup != nil {
			err = c.Edit(text, markup)
		} else {
			err = c.Edit(text, &tele.ReplyMarkup{})
		}
		if IsNotModified(err) {
			return nil
		}
		return err
	})
}

// IsNotModified reports the Bot API refusal to apply an edit that changes nothing.
func IsNotModified(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
