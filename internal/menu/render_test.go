package menu

import (
	"strings"
	"testing"

	"github.com/m3rciful/rosterbot/internal/domain"
)

func TestListing(t *testing.T) {
	if got := Listing(nil); got != NoUsers {
		t.Fatalf("empty listing = %q", got)
	}
	got := Listing([]domain.User{
		{SenderID: 1, FullName: "Ada", Email: "a@x", PhoneNumber: "1"},
		{SenderID: 2, FullName: "Bob", Email: "b@x", PhoneNumber: "2"},
	})
	if strings.Count(got, "---") != 2 {
		t.Fatalf("expected two separators: %q", got)
	}
	if !strings.HasPrefix(got, "ID: 1\nFull Name: Ada\n") {
		t.Fatalf("unexpected first entry: %q", got)
	}
	if strings.HasSuffix(got, "\n") {
		t.Fatalf("trailing newline kept: %q", got)
	}
}

func TestLabels(t *testing.T) {
	u := domain.User{SenderID: 42, FullName: "Ada"}
	if got := PickerLabel(u); got != "Ada ( ID: 42 )" {
		t.Fatalf("label = %q", got)
	}
	if got := Promoted(u); got != "Ada has been promoted!" {
		t.Fatalf("promoted = %q", got)
	}
	if For(true) != Operator || For(false) != User {
		t.Fatalf("menu selection mixed up")
	}
}
