// Package bot adapts Telegram updates to the transport-neutral roster services.
package bot

import (
	"context"
	"strings"

	tele "gopkg.in/telebot.v4"

	tg "github.com/m3rciful/rosterbot/core/telegram"
	"github.com/m3rciful/rosterbot/core/telegram/callbacks"
	"github.com/m3rciful/rosterbot/core/telegram/commands"
	tghelpers "github.com/m3rciful/rosterbot/core/telegram/helpers"
	"github.com/m3rciful/rosterbot/core/telegram/keyboard"
	"github.com/m3rciful/rosterbot/internal/dispatch"
	"github.com/m3rciful/rosterbot/internal/menu"
	"github.com/m3rciful/rosterbot/internal/transport"
)

// Handler consumes inbound events; *dispatch.Dispatcher satisfies it.
type Handler interface {
	Handle(ctx context.Context, ev transport.Event, t transport.Transport) error
}

// Adapter turns tele.Context values into events and replies.
type Adapter struct {
	handler Handler
}

// New returns an Adapter feeding h.
func New(h Handler) *Adapter {
	return &Adapter{handler: h}
}

// Register publishes the dispatcher's commands and points the callback and text routes
// at the adapter.
func (a *Adapter) Register(reg *tg.Registry, cmds []dispatch.Command) {
	for _, cmd := range cmds {
		reg.RegisterCommand("/"+cmd.Name, commands.Command{
			Handler:      a.HandleText,
			Description:  cmd.Description,
			OperatorOnly: cmd.Access == dispatch.AccessOperator,
			Aliases:      cmd.Aliases,
		})
	}
	reg.SetCallbackHandler(a.HandleCallback)
	reg.SetTextFallback(a.HandleText)
}

// HandleText forwards a text or command message.
func (a *Adapter) HandleText(c tele.Context) error {
	ev, ok := TextEvent(c)
	if !ok {
		return nil
	}
	return a.handler.Handle(tghelpers.BuildContext(c), ev, chatTransport{c: c})
}

// HandleCallback forwards an inline button press.
func (a *Adapter) HandleCallback(c tele.Context) error {
	ev, ok := CallbackEvent(c)
	if !ok {
		return nil
	}
	return a.handler.Handle(tghelpers.BuildContext(c), ev, chatTransport{c: c})
}

// LimitedReply tells the sender that the rate limiter dropped their update, so a
// registration answer is resent instead of silently lost. Button presses get a toast.
func LimitedReply(c tele.Context) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: menu.SlowDown})
	}
	if c.Chat() == nil {
		return nil
	}
	return tghelpers.SendText(c, menu.SlowDown, nil)
}

// TextEvent extracts a text event. Messages without a sender or chat are skipped.
func TextEvent(c tele.Context) (transport.Event, bool) {
	msg := c.Message()
	if msg == nil || c.Sender() == nil || c.Chat() == nil {
		return transport.Event{}, false
	}
	return transport.Event{
		SessionID: c.Chat().ID,
		SenderID:  c.Sender().ID,
		Kind:      transport.KindText,
		Payload:   msg.Text,
	}, true
}

// CallbackEvent extracts an action event from a button press.
func CallbackEvent(c tele.Context) (transport.Event, bool) {
	cb := c.Callback()
	if cb == nil || cb.Sender == nil {
		return transport.Event{}, false
	}
	session := cb.Sender.ID
	if cb.Message != nil && cb.Message.Chat != nil {
		session = cb.Message.Chat.ID
	}
	return transport.Event{
		SessionID: session,
		SenderID:  cb.Sender.ID,
		Kind:      transport.KindAction,
		Payload:   strings.TrimSpace(callbacks.CallbackPayload(c)),
	}, true
}

// Markup renders controls as an inline keyboard whose buttons carry their tokens as
// raw callback data. Empty controls render as nil.
func Markup(controls *transport.Controls) *tele.ReplyMarkup {
	if controls.Empty() {
		return nil
	}
	rows := make([][]keyboard.InlineBtn, 0, len(controls.Rows))
	for _, row := range controls.Rows {
		btns := make([]keyboard.InlineBtn, 0, len(row))
		for _, b := range row {
			btns = append(btns, keyboard.InlineBtn{Text: b.Text, Data: b.Token})
		}
		rows = append(rows, btns)
	}
	return keyboard.InlineButtonsRows(rows...)
}

// chatTransport answers in the chat the update came from through the ordered sender.
type chatTransport struct {
	c tele.Context
}

func (t chatTransport) Reply(_ context.Context, _ int64, text string, controls *transport.Controls) error {
	return tghelpers.SendText(t.c, text, Markup(controls))
}

func (t chatTransport) EditCurrent(_ context.Context, _ int64, text string, controls *transport.Controls) error {
	return tghelpers.EditText(t.c, text, Markup(controls))
}
