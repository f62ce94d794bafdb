// Package dispatch is the single entry point for inbound events. It routes commands
// through the operator gate, button presses to the action router, and everything else
// to a running registration dialogue.
package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/m3rciful/rosterbot/core/logger"
	"github.com/m3rciful/rosterbot/internal/actions"
	"github.com/m3rciful/rosterbot/internal/domain"
	"github.com/m3rciful/rosterbot/internal/menu"
	"github.com/m3rciful/rosterbot/internal/transport"
)

// Access describes who may run a command.
type Access int

const (
	// AccessEntry is the start command: it branches on role and registration.
	AccessEntry Access = iota
	// AccessPublic commands run for everyone.
	AccessPublic
	// AccessUser commands are refused for operators.
	AccessUser
	// AccessOperator commands are refused for everyone else.
	AccessOperator
)

// Command describes one named command.
type Command struct {
	Name        string
	Description string
	Access      Access
	Aliases     []string
	run         func(ctx context.Context, d *Dispatcher, ev transport.Event, t transport.Transport, operator bool) error
}

// Finder looks up records; *directory.Gateway satisfies it.
type Finder interface {
	FindBySender(ctx context.Context, senderID int64) (*domain.User, error)
}

// Authorizer answers operator checks; *access.Gate satisfies it.
type Authorizer interface {
	IsOperator(ctx context.Context, senderID int64) (bool, error)
}

// Dialogue is the registration engine.
type Dialogue interface {
	Begin(ctx context.Context, ev transport.Event, t transport.Transport) error
	Handle(ctx context.Context, ev transport.Event, t transport.Transport) (bool, error)
}

// Actions is the action router.
type Actions interface {
	Handle(ctx context.Context, ev transport.Event, t transport.Transport) error
	ShowList(ctx context.Context, ev transport.Event, t transport.Transport) error
	ShowPicker(ctx context.Context, ev transport.Event, t transport.Transport, kind actions.Kind) error
}

// Deps wires a Dispatcher.
type Deps struct {
	Users    Finder
	Gate     Authorizer
	Dialogue Dialogue
	Actions  Actions
}

// Dispatcher routes inbound events.
type Dispatcher struct {
	users    Finder
	gate     Authorizer
	dialogue Dialogue
	actions  Actions
	commands []Command
	byName   map[string]*Command
}

// New returns a Dispatcher with the built-in command set.
func New(d Deps) *Dispatcher {
	dp := &Dispatcher{
		users:    d.Users,
		gate:     d.Gate,
		dialogue: d.Dialogue,
		actions:  d.Actions,
		commands: builtinCommands(),
		byName:   make(map[string]*Command),
	}
	for i := range dp.commands {
		cmd := &dp.commands[i]
		dp.byName[cmd.Name] = cmd
		for _, alias := range cmd.Aliases {
			dp.byName[alias] = cmd
		}
	}
	return dp
}

// Commands returns the command table, used to publish the bot command menu.
func (d *Dispatcher) Commands() []Command {
	return append([]Command(nil), d.commands...)
}

// Handle processes one inbound event.
func (d *Dispatcher) Handle(ctx context.Context, ev transport.Event, t transport.Transport) error {
	if ev.Kind == transport.KindAction {
		return d.actions.Handle(ctx, ev, t)
	}
	if name, ok := ParseCommand(ev.Payload); ok {
		if cmd, known := d.byName[name]; known {
			return d.run(ctx, cmd, ev, t)
		}
	}
	handled, err := d.dialogue.Handle(ctx, ev, t)
	if !handled && err == nil {
		logger.Debug(ctx, logger.CompDispatch, "text.ignored", slog.String("outcome", "ignored"))
	}
	return err
}

func (d *Dispatcher) run(ctx context.Context, cmd *Command, ev transport.Event, t transport.Transport) error {
	ctx = logger.WithHandler(ctx, cmd.Name)
	operator, err := d.gate.IsOperator(ctx, ev.SenderID)
	if err != nil {
		logger.Error(ctx, logger.CompDispatch, "command.check_failed",
			slog.String("status", "fail"),
			slog.String("command", cmd.Name),
			logger.Err(err),
		)
		return errors.Join(err, t.Reply(ctx, ev.SessionID, menu.Failure, nil))
	}

	refused := (cmd.Access == AccessOperator && !operator) || (cmd.Access == AccessUser && operator)
	if refused {
		logger.Info(ctx, logger.CompDispatch, "command.refused",
			slog.String("status", "refused"),
			slog.String("command", cmd.Name),
		)
		return t.Reply(ctx, ev.SessionID, menu.Refusal, nil)
	}

	logger.Debug(ctx, logger.CompDispatch, "command.accepted", slog.String("command", cmd.Name))
	return cmd.run(ctx, d, ev, t, operator)
}

// ParseCommand extracts the command name from "/name@bot args". ok is false for
// text that is not a command.
func ParseCommand(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", false
	}
	head, _, _ := strings.Cut(text[1:], " ")
	head, _, _ = strings.Cut(head, "\n")
	head, _, _ = strings.Cut(head, "@")
	if head == "" {
		return "", false
	}
	return strings.ToLower(head), true
}
