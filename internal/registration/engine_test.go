package registration

import (
	"context"
	"fmt"
	"testing"

	"github.com/m3rciful/rosterbot/core/telegram/state"
	"github.com/m3rciful/rosterbot/internal/directory"
	"github.com/m3rciful/rosterbot/internal/directory/memstore"
	"github.com/m3rciful/rosterbot/internal/domain"
	"github.com/m3rciful/rosterbot/internal/menu"
	"github.com/m3rciful/rosterbot/internal/transport"
	"github.com/m3rciful/rosterbot/internal/transport/transporttest"
)

type countingCreator struct {
	next  Creator
	calls []domain.Registration
}

func (c *countingCreator) Create(ctx context.Context, reg domain.Registration) (domain.User, error) {
	c.calls = append(c.calls, reg)
	return c.next.Create(ctx, reg)
}

func text(sender int64, payload string) transport.Event {
	return transport.Event{SessionID: sender, SenderID: sender, Kind: transport.KindText, Payload: payload}
}

func TestTransitionTable(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		from  state.Stage
		event string
		to    state.Stage
		ok    bool
	}{
		{state.StageIdle, EventBegin, state.StageAwaitingName, true},
		{state.StageAwaitingName, EventText, state.StageAwaitingEmail, true},
		{state.StageAwaitingEmail, EventText, state.StageAwaitingPhone, true},
		{state.StageAwaitingPhone, EventText, StageCompleted, true},
		{state.StageAwaitingEmail, EventExpire, StageAbandoned, true},
		{state.StageIdle, EventText, state.StageIdle, false},
		{state.StageIdle, EventExpire, state.StageIdle, false},
		{state.StageAwaitingName, EventBegin, state.StageAwaitingName, false},
	}
	for _, tc := range cases {
		got, err := Next(ctx, tc.from, tc.event)
		if tc.ok != (err == nil) {
			t.Fatalf("%s/%s: err=%v", tc.from, tc.event, err)
		}
		if got != tc.to {
			t.Fatalf("%s/%s: got %s want %s", tc.from, tc.event, got, tc.to)
		}
	}
}

func TestDialogueCreatesRecord(t *testing.T) {
	ctx := context.Background()
	gw := directory.New(memstore.New())
	creator := &countingCreator{next: gw}
	sessions := state.NewMemoryManager()
	eng := New(creator, sessions)
	rec := &transporttest.Recorder{}

	if err := eng.Begin(ctx, text(42, "/start"), rec); err != nil {
		t.Fatalf("begin: %v", err)
	}
	steps := []struct {
		in   string
		want string
	}{
		{"Ada", menu.AskEmail},
		{"ada@x.com", menu.AskPhone},
		{"555", menu.User},
	}
	for _, step := range steps {
		handled, err := eng.Handle(ctx, text(42, step.in), rec)
		if err != nil || !handled {
			t.Fatalf("handle %q: handled=%v err=%v", step.in, handled, err)
		}
		last, _ := rec.Last()
		if last.Text != step.want {
			t.Fatalf("after %q got reply %q want %q", step.in, last.Text, step.want)
		}
	}

	msgs := rec.Messages()
	if len(msgs) != 5 || msgs[0].Text != menu.Welcome || msgs[1].Text != menu.AskName {
		t.Fatalf("unexpected conversation: %+v", msgs)
	}
	if len(creator.calls) != 1 {
		t.Fatalf("expected exactly one create, got %d", len(creator.calls))
	}
	u, err := gw.FindBySender(ctx, 42)
	if err != nil || u == nil {
		t.Fatalf("record missing: %v", err)
	}
	want := domain.User{SenderID: 42, FullName: "Ada", Email: "ada@x.com", PhoneNumber: "555"}
	if u.SenderID != want.SenderID || u.FullName != want.FullName || u.Email != want.Email ||
		u.PhoneNumber != want.PhoneNumber || u.IsOperator {
		t.Fatalf("unexpected record: %+v", u)
	}
	if eng.Active(42) {
		t.Fatalf("dialogue must be finished")
	}
	if handled, _ := eng.Handle(ctx, text(42, "more"), rec); handled {
		t.Fatalf("text after completion must not be handled")
	}
}

func TestDialogueKeepsFieldsVerbatim(t *testing.T) {
	ctx := context.Background()
	creator := &countingCreator{next: directory.New(memstore.New())}
	eng := New(creator, state.NewMemoryManager())
	rec := &transporttest.Recorder{}

	_ = eng.Begin(ctx, text(1, "/start"), rec)
	for _, in := range []string{"  Ada Lovelace ", "not-an-email", "+1 (555)"} {
		if _, err := eng.Handle(ctx, text(1, in), rec); err != nil {
			t.Fatalf("handle: %v", err)
		}
	}
	got := creator.calls[0]
	if got.FullName != "  Ada Lovelace " || got.Email != "not-an-email" || got.PhoneNumber != "+1 (555)" {
		t.Fatalf("fields changed: %+v", got)
	}
}

func TestDuplicateStillTerminates(t *testing.T) {
	ctx := context.Background()
	gw := directory.New(memstore.New())
	if _, err := gw.Create(ctx, domain.Registration{SenderID: 7, FullName: "First"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	creator := &countingCreator{next: gw}
	eng := New(creator, state.NewMemoryManager())
	rec := &transporttest.Recorder{}

	_ = eng.Begin(ctx, text(7, "/start"), rec)
	for _, in := range []string{"Second", "s@x", "1"} {
		if _, err := eng.Handle(ctx, text(7, in), rec); err != nil {
			t.Fatalf("duplicate must not surface as an error: %v", err)
		}
	}
	if eng.Active(7) {
		t.Fatalf("dialogue must terminate after a duplicate")
	}
	if len(creator.calls) != 1 {
		t.Fatalf("expected one create call, got %d", len(creator.calls))
	}
	prompts := 0
	for _, m := range rec.Messages() {
		if m.Text == menu.AskName {
			prompts++
		}
	}
	if prompts != 1 {
		t.Fatalf("duplicate must not restart the dialogue, name prompts: %d", prompts)
	}
	u, _ := gw.FindBySender(ctx, 7)
	if u.FullName != "First" {
		t.Fatalf("existing record overwritten: %+v", u)
	}
}

type unavailableCreator struct{ calls int }

func (c *unavailableCreator) Create(context.Context, domain.Registration) (domain.User, error) {
	c.calls++
	return domain.User{}, fmt.Errorf("insert user: %w", directory.ErrStoreUnavailable)
}

func TestStoreFailureEndsDialogueWithoutMenu(t *testing.T) {
	ctx := context.Background()
	creator := &unavailableCreator{}
	eng := New(creator, state.NewMemoryManager())
	rec := &transporttest.Recorder{}

	_ = eng.Begin(ctx, text(9, "/start"), rec)
	for _, in := range []string{"Nine", "n@x", "9"} {
		handled, err := eng.Handle(ctx, text(9, in), rec)
		if err != nil {
			t.Fatalf("store failure must not surface as an error: %v", err)
		}
		if !handled {
			t.Fatalf("%q not handled by the dialogue", in)
		}
	}
	if eng.Active(9) {
		t.Fatal("dialogue must terminate after a store failure")
	}
	if creator.calls != 1 {
		t.Fatalf("expected one create call, got %d", creator.calls)
	}
	for _, m := range rec.Messages() {
		if m.Text == menu.User {
			t.Fatalf("user menu sent after a failed create: %+v", rec.Messages())
		}
	}
	if handled, _ := eng.Handle(ctx, text(9, "again"), rec); handled {
		t.Fatal("text after the failed dialogue must not be consumed")
	}
}

func TestBeginRestartsDialogue(t *testing.T) {
	ctx := context.Background()
	sessions := state.NewMemoryManager()
	eng := New(&countingCreator{next: directory.New(memstore.New())}, sessions)
	rec := &transporttest.Recorder{}

	_ = eng.Begin(ctx, text(3, "/start"), rec)
	_, _ = eng.Handle(ctx, text(3, "Old"), rec)
	_ = eng.Begin(ctx, text(3, "/start"), rec)

	s := sessions.Get(3)
	if s.Stage != state.StageAwaitingName || s.Collected.Name != "" {
		t.Fatalf("restart kept old progress: %+v", s)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	eng := New(&countingCreator{next: directory.New(memstore.New())}, state.NewMemoryManager())
	rec := &transporttest.Recorder{}

	_ = eng.Begin(ctx, text(1, "/start"), rec)
	_ = eng.Begin(ctx, text(2, "/start"), rec)
	_, _ = eng.Handle(ctx, text(1, "One"), rec)

	if !eng.Active(2) {
		t.Fatalf("session 2 lost its dialogue")
	}
	if handled, _ := eng.Handle(ctx, text(9, "stray"), rec); handled {
		t.Fatalf("session without dialogue handled text")
	}
}
