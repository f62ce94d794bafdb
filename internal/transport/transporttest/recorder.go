// Package transporttest provides a Transport that records outbound effects.
package transporttest

import (
	"context"
	"sync"

	"github.com/m3rciful/rosterbot/internal/transport"
)

// Op names an outbound effect.
type Op string

const (
	OpReply Op = "reply"
	OpEdit  Op = "edit"
)

// Message is one recorded effect.
type Message struct {
	Op        Op
	SessionID int64
	Text      string
	Controls  *transport.Controls
}

// Tokens flattens the button tokens of the message.
func (m Message) Tokens() []string {
	if m.Controls == nil {
		return nil
	}
	var out []string
	for _, row := range m.Controls.Rows {
		for _, b := range row {
			out = append(out, b.Token)
		}
	}
	return out
}

// Recorder implements transport.Transport and keeps every effect in order.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
	// Err, when set, is returned from every call after recording it.
	Err error
}

// Reply records a reply.
func (r *Recorder) Reply(_ context.Context, sessionID int64, text string, controls *transport.Controls) error {
	return r.record(OpReply, sessionID, text, controls)
}

// EditCurrent records an edit.
func (r *Recorder) EditCurrent(_ context.Context, sessionID int64, text string, controls *transport.Controls) error {
	return r.record(OpEdit, sessionID, text, controls)
}

func (r *Recorder) record(op Op, sessionID int64, text string, controls *transport.Controls) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Op: op, SessionID: sessionID, Text: text, Controls: controls})
	return r.Err
}

// Messages returns a copy of the recorded effects.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}

// Last returns the most recent effect; ok is false when nothing was recorded.
func (r *Recorder) Last() (Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return Message{}, false
	}
	return r.messages[len(r.messages)-1], true
}

// Reset drops the recorded effects.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = nil
}
