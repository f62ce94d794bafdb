package app

import (
	"context"
	"strings"
	"testing"

	"github.com/m3rciful/rosterbot/internal/directory/memstore"
	"github.com/m3rciful/rosterbot/internal/domain"
	"github.com/m3rciful/rosterbot/internal/menu"
	"github.com/m3rciful/rosterbot/internal/transport"
	"github.com/m3rciful/rosterbot/internal/transport/transporttest"
)

func testConfig(operators ...int64) *Config {
	cfg := &Config{}
	cfg.Telegram.Token = "1:test"
	cfg.Telegram.OperatorIDs = operators
	cfg.Database.Driver = "memory"
	if err := cfg.Normalize(); err != nil {
		panic(err)
	}
	return cfg
}

func send(t *testing.T, a *App, rec *transporttest.Recorder, sender int64, kind transport.Kind, payload string) {
	t.Helper()
	ev := transport.Event{SessionID: sender, SenderID: sender, Kind: kind, Payload: payload}
	if err := a.Dispatcher.Handle(context.Background(), ev, rec); err != nil {
		t.Fatalf("%q: %v", payload, err)
	}
}

func TestRegistrationThenOperatorPromotes(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	if _, err := store.Insert(ctx, domain.User{SenderID: 1, FullName: "Root", IsOperator: false}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	a, err := Build(ctx, testConfig(1, 99), store)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer a.seq.Close()

	op, _ := a.Users.FindBySender(ctx, 1)
	if op == nil || !op.IsOperator {
		t.Fatalf("seeded operator = %+v", op)
	}
	if u, _ := a.Users.FindBySender(ctx, 99); u != nil {
		t.Fatalf("seeder created a record for an unknown id")
	}

	rec := &transporttest.Recorder{}
	for _, msg := range []string{"/start", "Ann Lee", "ann@example.org", "+100"} {
		send(t, a, rec, 7, transport.KindText, msg)
	}
	if last, _ := rec.Last(); last.Text != menu.User {
		t.Fatalf("after registration got %q", last.Text)
	}

	rec.Reset()
	send(t, a, rec, 1, transport.KindText, "/promote")
	picker, _ := rec.Last()
	tokens := picker.Tokens()
	if len(tokens) != 1 || tokens[0] != "promote_7" {
		t.Fatalf("picker tokens = %v", tokens)
	}
	send(t, a, rec, 1, transport.KindAction, "promote_7")
	if reply, _ := rec.Last(); !strings.Contains(reply.Text, "Ann Lee") {
		t.Fatalf("promotion reply = %q", reply.Text)
	}
	u, _ := a.Users.FindBySender(ctx, 7)
	if u == nil || !u.IsOperator {
		t.Fatalf("user not promoted: %+v", u)
	}
}

func TestTelegramRunOptions(t *testing.T) {
	a, err := Build(context.Background(), testConfig(), memstore.New())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	opts, err := a.TelegramRunOptions()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	// 7 commands, 1 alias, callback and text routes
	if len(opts.Routes) != 10 {
		t.Fatalf("routes = %d", len(opts.Routes))
	}
	names := make([]string, 0, len(opts.Middlewares))
	for _, mw := range opts.Middlewares {
		names = append(names, mw.Name)
	}
	if got := strings.Join(names, ","); got != "recover,sequencer,logger,metrics" {
		t.Fatalf("middlewares = %s", got)
	}
	if opts.Sequencer == nil || opts.OnStart == nil || opts.OnStop == nil {
		t.Fatalf("runtime hooks missing")
	}
	opts.Sequencer.Close()
	if err := a.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
