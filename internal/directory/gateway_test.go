package directory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m3rciful/rosterbot/internal/directory"
	"github.com/m3rciful/rosterbot/internal/directory/memstore"
	"github.com/m3rciful/rosterbot/internal/domain"
)

type brokenStore struct{ err error }

func (b brokenStore) Insert(context.Context, domain.User) (domain.User, error) {
	return domain.User{}, b.err
}
func (b brokenStore) FindBySender(context.Context, int64) (*domain.User, error) { return nil, b.err }
func (b brokenStore) ListNonOperators(context.Context) ([]domain.User, error)   { return nil, b.err }
func (b brokenStore) SetOperator(context.Context, int64, bool) error            { return b.err }
func (b brokenStore) Delete(context.Context, int64) error                       { return b.err }
func (b brokenStore) Ping(context.Context) error                                { return b.err }

func TestGatewayLifecycle(t *testing.T) {
	ctx := context.Background()
	gw := directory.New(memstore.New())

	created, err := gw.Create(ctx, domain.Registration{SenderID: 42, FullName: "Ada", Email: "ada@x.com", PhoneNumber: "555"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.IsOperator {
		t.Fatalf("new record must not be an operator")
	}

	if _, err := gw.Create(ctx, domain.Registration{SenderID: 42, FullName: "Again"}); !errors.Is(err, directory.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	u, err := gw.FindBySender(ctx, 42)
	if err != nil || u == nil {
		t.Fatalf("find: %v %v", u, err)
	}
	if u.FullName != "Ada" || u.Email != "ada@x.com" || u.PhoneNumber != "555" {
		t.Fatalf("unexpected record: %+v", u)
	}

	missing, err := gw.FindBySender(ctx, 7)
	if err != nil || missing != nil {
		t.Fatalf("expected nil, nil for unknown sender, got %v %v", missing, err)
	}

	if err := gw.SetOperator(ctx, 42, true); err != nil {
		t.Fatalf("set operator: %v", err)
	}
	list, err := gw.ListNonOperators(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("operators must not be listed, got %d", len(list))
	}

	if err := gw.SetOperator(ctx, 7, true); !errors.Is(err, directory.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := gw.Remove(ctx, 42); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := gw.Remove(ctx, 42); !errors.Is(err, directory.ErrNotFound) {
		t.Fatalf("second remove: expected ErrNotFound, got %v", err)
	}
}

func TestGatewayListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	gw := directory.New(memstore.New())
	for _, id := range []int64{30, 10, 20} {
		if _, err := gw.Create(ctx, domain.Registration{SenderID: id}); err != nil {
			t.Fatalf("create %d: %v", id, err)
		}
	}
	list, err := gw.ListNonOperators(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []int64{30, 10, 20}
	for i, u := range list {
		if u.SenderID != want[i] {
			t.Fatalf("position %d: got %d want %d", i, u.SenderID, want[i])
		}
	}
}

func TestGatewayWrapsStoreFailures(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("connection refused")
	gw := directory.New(brokenStore{err: cause})

	checks := map[string]error{}
	_, checks["create"] = gw.Create(ctx, domain.Registration{SenderID: 1})
	_, checks["find"] = gw.FindBySender(ctx, 1)
	_, checks["list"] = gw.ListNonOperators(ctx)
	checks["set"] = gw.SetOperator(ctx, 1, true)
	checks["remove"] = gw.Remove(ctx, 1)
	checks["ping"] = gw.Ping(ctx)

	for op, err := range checks {
		if !errors.Is(err, directory.ErrStoreUnavailable) {
			t.Errorf("%s: expected ErrStoreUnavailable, got %v", op, err)
		}
		if !errors.Is(err, cause) {
			t.Errorf("%s: cause lost: %v", op, err)
		}
		if errors.Is(err, directory.ErrNotFound) {
			t.Errorf("%s: store failure must not read as not found", op)
		}
	}
}

func TestGatewayKeepsSentinels(t *testing.T) {
	gw := directory.New(brokenStore{err: directory.ErrNotFound})
	err := gw.Remove(context.Background(), 1)
	if !errors.Is(err, directory.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if errors.Is(err, directory.ErrStoreUnavailable) {
		t.Fatalf("not found must not be marked unavailable")
	}
}
