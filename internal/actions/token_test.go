package actions

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		raw  string
		want Token
	}{
		{"promote_42", Token{Kind: KindPromote, Param: 42}},
		{"remove_7", Token{Kind: KindRemove, Param: 7}},
		{"next_0", Token{Kind: KindPageNext, Param: 0}},
		{"prev_3", Token{Kind: KindPagePrev, Param: 3}},
		{"", Token{}},
		{"promote", Token{}},
		{"promote_", Token{}},
		{"promote_-1", Token{}},
		{"promote_+1", Token{}},
		{"promote_4x", Token{}},
		{"demote_1", Token{}},
		{"next_1_2", Token{}},
		{"next_99999999999", Token{}},
		{"promote_99999999999999999999", Token{}},
	}
	for _, tc := range cases {
		if got := Parse(tc.raw); got != tc.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tc.raw, got, tc.want)
		}
	}
}

func TestEncodeParses(t *testing.T) {
	for _, tok := range []Token{Promote(42), Remove(1), Next(2), Prev(1)} {
		if got := Parse(tok.Encode()); got != tok {
			t.Errorf("%s decoded as %+v", tok.Encode(), got)
		}
	}
	if got := Promote(42).Encode(); got != "promote_42" {
		t.Fatalf("wire form = %q", got)
	}
}
