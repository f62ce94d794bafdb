// Package actions decodes inline button tokens and runs the operator actions behind
// them: promote, remove, and list navigation.
package actions

import (
	"context"
	"errors"
	"log/slog"

	"github.com/m3rciful/rosterbot/core/logger"
	"github.com/m3rciful/rosterbot/core/telegram/state"
	"github.com/m3rciful/rosterbot/internal/directory"
	"github.com/m3rciful/rosterbot/internal/domain"
	"github.com/m3rciful/rosterbot/internal/menu"
	"github.com/m3rciful/rosterbot/internal/pagination"
	"github.com/m3rciful/rosterbot/internal/transport"
)

// Directory is the part of *directory.Gateway the router uses.
type Directory interface {
	FindBySender(ctx context.Context, senderID int64) (*domain.User, error)
	ListNonOperators(ctx context.Context) ([]domain.User, error)
	SetOperator(ctx context.Context, senderID int64, operator bool) error
	Remove(ctx context.Context, senderID int64) error
}

// Authorizer answers operator checks; *access.Gate satisfies it.
type Authorizer interface {
	IsOperator(ctx context.Context, senderID int64) (bool, error)
}

// Deps wires a Router.
type Deps struct {
	Users    Directory
	Gate     Authorizer
	Sessions state.Manager
	PageSize int
}

// Router handles button presses and renders the operator listings.
type Router struct {
	users    Directory
	gate     Authorizer
	sessions state.Manager
	pageSize int
}

// New returns a Router. A non-positive page size falls back to pagination.DefaultSize.
func New(d Deps) *Router {
	size := d.PageSize
	if size <= 0 {
		size = pagination.DefaultSize
	}
	return &Router{users: d.Users, gate: d.Gate, sessions: d.Sessions, pageSize: size}
}

// Handle decodes ev.Payload and runs the action. Malformed tokens are dropped without a reply.
func (r *Router) Handle(ctx context.Context, ev transport.Event, t transport.Transport) error {
	tok := Parse(ev.Payload)
	if tok.Kind == KindMalformed {
		logger.Debug(ctx, logger.CompActions, "action.malformed",
			slog.String("outcome", "ignored"),
			slog.String("token", logger.SanitizeLimit(ev.Payload, 64)),
		)
		return nil
	}

	allowed, err := r.gate.IsOperator(ctx, ev.SenderID)
	if err != nil {
		return errors.Join(err, t.Reply(ctx, ev.SessionID, menu.Failure, nil))
	}
	if !allowed {
		logger.Info(ctx, logger.CompActions, "action.refused",
			slog.String("status", "refused"),
			slog.String("kind", tok.Kind.String()),
		)
		return t.Reply(ctx, ev.SessionID, menu.Refusal, nil)
	}

	switch tok.Kind {
	case KindPromote:
		return r.promote(ctx, ev, t, tok.Param)
	case KindRemove:
		return r.remove(ctx, ev, t, tok.Param)
	case KindPageNext:
		return r.navigate(ctx, ev, t, int(tok.Param)+1)
	case KindPagePrev:
		return r.navigate(ctx, ev, t, int(tok.Param)-1)
	}
	return nil
}

func (r *Router) promote(ctx context.Context, ev transport.Event, t transport.Transport, senderID int64) error {
	u, err := r.users.FindBySender(ctx, senderID)
	if err != nil {
		return errors.Join(err, t.Reply(ctx, ev.SessionID, menu.Failure, nil))
	}
	if u == nil {
		return r.notFound(ctx, ev, t, KindPromote, senderID)
	}
	if err := r.users.SetOperator(ctx, senderID, true); err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return r.notFound(ctx, ev, t, KindPromote, senderID)
		}
		return errors.Join(err, t.Reply(ctx, ev.SessionID, menu.Failure, nil))
	}
	logger.Info(ctx, logger.CompActions, "action.promoted",
		slog.String("status", "ok"),
		slog.Int64("target_id", senderID),
	)
	return t.Reply(ctx, ev.SessionID, menu.Promoted(*u), nil)
}

func (r *Router) remove(ctx context.Context, ev transport.Event, t transport.Transport, senderID int64) error {
	u, err := r.users.FindBySender(ctx, senderID)
	if err != nil {
		return errors.Join(err, t.Reply(ctx, ev.SessionID, menu.Failure, nil))
	}
	if u == nil {
		return r.notFound(ctx, ev, t, KindRemove, senderID)
	}
	if err := r.users.Remove(ctx, senderID); err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return r.notFound(ctx, ev, t, KindRemove, senderID)
		}
		return errors.Join(err, t.Reply(ctx, ev.SessionID, menu.Failure, nil))
	}
	logger.Info(ctx, logger.CompActions, "action.removed",
		slog.String("status", "ok"),
		slog.Int64("target_id", senderID),
	)
	return t.Reply(ctx, ev.SessionID, menu.Removed, nil)
}

func (r *Router) notFound(ctx context.Context, ev transport.Event, t transport.Transport, kind Kind, senderID int64) error {
	logger.Info(ctx, logger.CompActions, "action.not_found",
		slog.String("status", "not_found"),
		slog.String("kind", kind.String()),
		slog.Int64("target_id", senderID),
	)
	return t.Reply(ctx, ev.SessionID, menu.NotFound, nil)
}

// navigate re-fetches the listing, so changes made since the last page are visible.
func (r *Router) navigate(ctx context.Context, ev transport.Event, t transport.Transport, page int) error {
	if page < 0 {
		logger.Debug(ctx, logger.CompActions, "action.page_out_of_range",
			slog.String("outcome", "ignored"),
			slog.Int("page", page),
		)
		return nil
	}
	text, controls, err := r.listing(ctx, page)
	if err != nil {
		return errors.Join(err, t.Reply(ctx, ev.SessionID, menu.Failure, nil))
	}
	r.sessions.SetPage(ev.SessionID, page)
	return t.EditCurrent(ctx, ev.SessionID, text, controls)
}

// ShowList replies with the first page of non-operators and resets the session page.
func (r *Router) ShowList(ctx context.Context, ev transport.Event, t transport.Transport) error {
	text, controls, err := r.listing(ctx, 0)
	if err != nil {
		return errors.Join(err, t.Reply(ctx, ev.SessionID, menu.Failure, nil))
	}
	r.sessions.SetPage(ev.SessionID, 0)
	return t.Reply(ctx, ev.SessionID, text, controls)
}

func (r *Router) listing(ctx context.Context, page int) (string, *transport.Controls, error) {
	users, err := r.users.ListNonOperators(ctx)
	if err != nil {
		return "", nil, err
	}
	res := pagination.Page(users, page, r.pageSize)

	var nav []transport.Button
	if res.HasPrev {
		nav = append(nav, transport.Button{Text: menu.PrevLabel, Token: Prev(page).Encode()})
	}
	if res.HasNext {
		nav = append(nav, transport.Button{Text: menu.NextLabel, Token: Next(page).Encode()})
	}
	controls := &transport.Controls{}
	controls.Row(nav...)

	logger.Debug(ctx, logger.CompActions, "list.rendered",
		slog.Int("page", page),
		slog.Int("visible", len(res.Visible)),
		slog.Int("total", len(users)),
	)
	if controls.Empty() {
		return menu.Listing(res.Visible), nil, nil
	}
	return menu.Listing(res.Visible), controls, nil
}

// ShowPicker replies with one button per non-operator for the promote or remove action.
func (r *Router) ShowPicker(ctx context.Context, ev transport.Event, t transport.Transport, kind Kind) error {
	var prompt string
	var build func(int64) Token
	switch kind {
	case KindPromote:
		prompt, build = menu.PickPromo, Promote
	case KindRemove:
		prompt, build = menu.PickRemove, Remove
	default:
		return errors.New("picker supports promote and remove only")
	}

	users, err := r.users.ListNonOperators(ctx)
	if err != nil {
		return errors.Join(err, t.Reply(ctx, ev.SessionID, menu.Failure, nil))
	}
	if len(users) == 0 {
		return t.Reply(ctx, ev.SessionID, menu.NoUsers, nil)
	}
	controls := &transport.Controls{}
	for _, u := range users {
		controls.Row(transport.Button{Text: menu.PickerLabel(u), Token: build(u.SenderID).Encode()})
	}
	return t.Reply(ctx, ev.SessionID, prompt, controls)
}
