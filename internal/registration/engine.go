// Package registration drives the self-registration dialogue: name, then email, then
// phone, then a single directory create.
package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/looplab/fsm"

	"github.com/m3rciful/rosterbot/core/logger"
	"github.com/m3rciful/rosterbot/core/telegram/state"
	"github.com/m3rciful/rosterbot/internal/directory"
	"github.com/m3rciful/rosterbot/internal/domain"
	"github.com/m3rciful/rosterbot/internal/menu"
	"github.com/m3rciful/rosterbot/internal/transport"
)

// Terminal stages. They are never stored: the dialogue fields are cleared instead.
const (
	StageCompleted state.Stage = "completed"
	StageAbandoned state.Stage = "abandoned"
)

// Dialogue events.
const (
	EventBegin  = "begin"
	EventText   = "text"
	EventExpire = "expire"
)

var transitions = fsm.Events{
	{Name: EventBegin, Src: []string{string(state.StageIdle)}, Dst: string(state.StageAwaitingName)},
	{Name: EventText, Src: []string{string(state.StageAwaitingName)}, Dst: string(state.StageAwaitingEmail)},
	{Name: EventText, Src: []string{string(state.StageAwaitingEmail)}, Dst: string(state.StageAwaitingPhone)},
	{Name: EventText, Src: []string{string(state.StageAwaitingPhone)}, Dst: string(StageCompleted)},
	{Name: EventExpire, Src: []string{
		string(state.StageAwaitingName),
		string(state.StageAwaitingEmail),
		string(state.StageAwaitingPhone),
	}, Dst: string(StageAbandoned)},
}

// Next evaluates the transition table for (from, event).
func Next(ctx context.Context, from state.Stage, event string) (state.Stage, error) {
	if from == "" {
		from = state.StageIdle
	}
	machine := fsm.NewFSM(string(from), transitions, fsm.Callbacks{})
	if err := machine.Event(ctx, event); err != nil {
		return from, fmt.Errorf("dialogue %s from %s: %w", event, from, err)
	}
	return state.Stage(machine.Current()), nil
}

// Creator stores the finished registration; *directory.Gateway satisfies it.
type Creator interface {
	Create(ctx context.Context, reg domain.Registration) (domain.User, error)
}

// Engine runs one dialogue per session on top of the session store.
type Engine struct {
	users    Creator
	sessions state.Manager
}

// New returns an Engine.
func New(users Creator, sessions state.Manager) *Engine {
	return &Engine{users: users, sessions: sessions}
}

// Active reports whether the session has a dialogue waiting for input.
func (e *Engine) Active(sessionID int64) bool {
	return e.sessions.InProgress(sessionID)
}

// Begin starts a dialogue, discarding any unfinished one, and asks for the name.
func (e *Engine) Begin(ctx context.Context, ev transport.Event, t transport.Transport) error {
	e.sessions.ClearDialogue(ev.SessionID)
	to, err := Next(ctx, state.StageIdle, EventBegin)
	if err != nil {
		return err
	}
	e.sessions.SetStage(ev.SessionID, to)
	e.logTransition(ctx, state.StageIdle, to, EventBegin)

	if err := t.Reply(ctx, ev.SessionID, menu.Welcome, nil); err != nil {
		return err
	}
	return t.Reply(ctx, ev.SessionID, menu.AskName, nil)
}

// Handle feeds a text message to the running dialogue. handled is false when the
// session has no dialogue.
func (e *Engine) Handle(ctx context.Context, ev transport.Event, t transport.Transport) (bool, error) {
	from := e.sessions.GetStage(ev.SessionID)
	if !from.Active() {
		return false, nil
	}
	to, err := Next(ctx, from, EventText)
	if err != nil {
		return true, err
	}
	e.logTransition(ctx, from, to, EventText)

	switch to {
	case state.StageAwaitingEmail:
		e.sessions.Update(ev.SessionID, func(s *state.Session) {
			s.Collected.Name = ev.Payload
			s.Stage = to
		})
		return true, t.Reply(ctx, ev.SessionID, menu.AskEmail, nil)
	case state.StageAwaitingPhone:
		e.sessions.Update(ev.SessionID, func(s *state.Session) {
			s.Collected.Email = ev.Payload
			s.Stage = to
		})
		return true, t.Reply(ctx, ev.SessionID, menu.AskPhone, nil)
	case StageCompleted:
		return true, e.complete(ctx, ev, t)
	}
	return true, fmt.Errorf("dialogue reached unexpected stage %s", to)
}

func (e *Engine) complete(ctx context.Context, ev transport.Event, t transport.Transport) error {
	collected := e.sessions.Get(ev.SessionID).Collected
	e.sessions.ClearDialogue(ev.SessionID)

	reg := domain.Registration{
		SenderID:    ev.SenderID,
		FullName:    collected.Name,
		Email:       collected.Email,
		PhoneNumber: ev.Payload,
	}
	_, err := e.users.Create(ctx, reg)
	switch {
	case err == nil:
		logger.Info(ctx, logger.CompRegistration, "dialogue.completed",
			slog.String("status", "ok"),
			slog.Int64("target_id", ev.SenderID),
		)
	case errors.Is(err, directory.ErrDuplicate):
		logger.Warn(ctx, logger.CompRegistration, "dialogue.duplicate",
			slog.String("status", "fail"),
			slog.String("err_code", "duplicate"),
			slog.Int64("target_id", ev.SenderID),
		)
	default:
		logger.Error(ctx, logger.CompRegistration, "dialogue.create_failed",
			slog.String("status", "fail"),
			slog.Int64("target_id", ev.SenderID),
			logger.Err(err),
		)
		return nil
	}
	return t.Reply(ctx, ev.SessionID, menu.User, nil)
}

// Expire moves an evicted dialogue to the abandoned stage. The session store has
// already dropped its data.
func (e *Engine) Expire(ctx context.Context, expired state.Expired) {
	to, err := Next(ctx, expired.Stage, EventExpire)
	if err != nil {
		logger.Debug(ctx, logger.CompRegistration, "dialogue.expire_skipped", logger.Err(err))
		return
	}
	logger.Info(ctx, logger.CompRegistration, "dialogue.abandoned",
		slog.Int64("session_id", expired.SessionID),
		slog.String("from", string(expired.Stage)),
		slog.String("to", string(to)),
		slog.Duration("idle", expired.IdleFor),
	)
}

func (e *Engine) logTransition(ctx context.Context, from, to state.Stage, event string) {
	logger.Debug(ctx, logger.CompRegistration, "dialogue.transition",
		slog.String("from", string(from)),
		slog.String("to", string(to)),
		slog.String("action", event),
	)
}
