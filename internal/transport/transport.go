// Package transport describes what the roster services need from a chat transport:
// already parsed inbound events and two outbound effects.
package transport

import "context"

// Kind tells text messages apart from button presses.
type Kind string

const (
	// KindText is a plain or command text message.
	KindText Kind = "text"
	// KindAction is an inline button press carrying an action token.
	KindAction Kind = "action"
)

// Event is one inbound update.
type Event struct {
	SessionID int64
	SenderID  int64
	Kind      Kind
	// Payload is the message text or the action token.
	Payload string
}

// Button is a single inline control.
type Button struct {
	Text  string
	Token string
}

// Controls are rows of inline buttons attached to a message.
type Controls struct {
	Rows [][]Button
}

// Row appends a row when it holds at least one button.
func (c *Controls) Row(buttons ...Button) {
	if len(buttons) == 0 {
		return
	}
	c.Rows = append(c.Rows, buttons)
}

// Empty reports whether there is nothing to render.
func (c *Controls) Empty() bool {
	return c == nil || len(c.Rows) == 0
}

// Transport delivers replies to a session.
type Transport interface {
	// Reply sends a new message.
	Reply(ctx context.Context, sessionID int64, text string, controls *Controls) error
	// EditCurrent rewrites the message the triggering button belongs to.
	EditCurrent(ctx context.Context, sessionID int64, text string, controls *Controls) error
}
