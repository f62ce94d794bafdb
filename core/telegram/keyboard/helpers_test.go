package keyboard

import "testing"

func TestRawDataButtons(t *testing.T) {
	m := InlineButtonsRows(
		[]InlineBtn{{Text: "Ann", Data: "promote_1"}},
		nil,
		[]InlineBtn{{Text: "Previous", Data: "prev_0"}, {Text: "Next", Data: "next_2"}},
	)
	if len(m.InlineKeyboard) != 2 {
		t.Fatalf("rows = %d", len(m.InlineKeyboard))
	}
	if got := m.InlineKeyboard[0][0].Data; got != "promote_1" {
		t.Fatalf("data = %q", got)
	}
	if got := m.InlineKeyboard[1][1].Data; got != "next_2" {
		t.Fatalf("data = %q", got)
	}
	if u := m.InlineKeyboard[1][0].Unique; u != "" {
		t.Fatalf("raw buttons must not carry a unique, got %q", u)
	}
}

func TestNoRowsRendersEmptyKeyboard(t *testing.T) {
	if m := InlineButtonsRows(); len(m.InlineKeyboard) != 0 {
		t.Fatalf("keyboard = %+v", m.InlineKeyboard)
	}
}
