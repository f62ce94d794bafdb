package dispatch

import (
	"context"
	"errors"

	"github.com/m3rciful/rosterbot/internal/actions"
	"github.com/m3rciful/rosterbot/internal/menu"
	"github.com/m3rciful/rosterbot/internal/transport"
)

func builtinCommands() []Command {
	return []Command{
		{Name: "start", Description: "Register or open your menu", Access: AccessEntry, run: runStart},
		{Name: "commands", Description: "List commands you can use", Access: AccessPublic, Aliases: []string{"help"}, run: runMenu},
		{Name: "myid", Description: "Get your telegram ID", Access: AccessUser, run: runMyID},
		{Name: "myprofile", Description: "View your profile", Access: AccessUser, run: runMyProfile},
		{Name: "listusers", Description: "List all users", Access: AccessOperator, run: runListUsers},
		{Name: "promote", Description: "Promote a user to admin", Access: AccessOperator, run: runPicker(actions.KindPromote)},
		{Name: "remove", Description: "Remove a user", Access: AccessOperator, run: runPicker(actions.KindRemove)},
	}
}

func runStart(ctx context.Context, d *Dispatcher, ev transport.Event, t transport.Transport, operator bool) error {
	if operator {
		return t.Reply(ctx, ev.SessionID, menu.Operator, nil)
	}
	u, err := d.users.FindBySender(ctx, ev.SenderID)
	if err != nil {
		return reportFailure(ctx, ev, t, err)
	}
	if u != nil {
		return t.Reply(ctx, ev.SessionID, menu.User, nil)
	}
	return d.dialogue.Begin(ctx, ev, t)
}

func runMenu(ctx context.Context, _ *Dispatcher, ev transport.Event, t transport.Transport, operator bool) error {
	return t.Reply(ctx, ev.SessionID, menu.For(operator), nil)
}

func runMyID(ctx context.Context, _ *Dispatcher, ev transport.Event, t transport.Transport, _ bool) error {
	return t.Reply(ctx, ev.SessionID, menu.SenderID(ev.SenderID), nil)
}

func runMyProfile(ctx context.Context, d *Dispatcher, ev transport.Event, t transport.Transport, _ bool) error {
	u, err := d.users.FindBySender(ctx, ev.SenderID)
	if err != nil {
		return reportFailure(ctx, ev, t, err)
	}
	if u == nil {
		return nil
	}
	return t.Reply(ctx, ev.SessionID, menu.Profile(*u), nil)
}

func runListUsers(ctx context.Context, d *Dispatcher, ev transport.Event, t transport.Transport, _ bool) error {
	return d.actions.ShowList(ctx, ev, t)
}

func runPicker(kind actions.Kind) func(context.Context, *Dispatcher, transport.Event, transport.Transport, bool) error {
	return func(ctx context.Context, d *Dispatcher, ev transport.Event, t transport.Transport, _ bool) error {
		return d.actions.ShowPicker(ctx, ev, t, kind)
	}
}

func reportFailure(ctx context.Context, ev transport.Event, t transport.Transport, err error) error {
	return errors.Join(err, t.Reply(ctx, ev.SessionID, menu.Failure, nil))
}
