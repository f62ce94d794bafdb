package pagination

import "testing"

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPageVisibleLength(t *testing.T) {
	for n := 0; n <= 10; n++ {
		items := seq(n)
		for p := 0; p*DefaultSize < n; p++ {
			got := Page(items, p, DefaultSize)
			want := min(DefaultSize, n-p*DefaultSize)
			if len(got.Visible) != want {
				t.Fatalf("n=%d p=%d: visible=%d want %d", n, p, len(got.Visible), want)
			}
			if got.Visible[0] != p*DefaultSize {
				t.Fatalf("n=%d p=%d: first=%d", n, p, got.Visible[0])
			}
		}
	}
}

func TestPageFlags(t *testing.T) {
	for n := 0; n <= 10; n++ {
		items := seq(n)
		for p := -1; p <= 5; p++ {
			got := Page(items, p, DefaultSize)
			if got.HasPrev != (p > 0) {
				t.Errorf("n=%d p=%d: HasPrev=%v", n, p, got.HasPrev)
			}
			if got.HasNext != ((p+1)*DefaultSize < n) {
				t.Errorf("n=%d p=%d: HasNext=%v", n, p, got.HasNext)
			}
		}
	}
}

func TestPageOutOfRangeIsEmpty(t *testing.T) {
	got := Page(seq(5), 4, DefaultSize)
	if len(got.Visible) != 0 {
		t.Fatalf("expected empty page, got %v", got.Visible)
	}
	if !got.HasPrev || got.HasNext {
		t.Fatalf("flags: prev=%v next=%v", got.HasPrev, got.HasNext)
	}
	if got.Visible == nil {
		t.Fatalf("visible must be an empty slice, not nil")
	}
}

func TestPageFiveItems(t *testing.T) {
	items := seq(5)
	first := Page(items, 0, 3)
	if len(first.Visible) != 3 || first.HasPrev || !first.HasNext {
		t.Fatalf("page 0: %+v", first)
	}
	second := Page(items, 1, 3)
	if len(second.Visible) != 2 || !second.HasPrev || second.HasNext {
		t.Fatalf("page 1: %+v", second)
	}
}

func TestPageDoesNotAliasInput(t *testing.T) {
	items := seq(6)
	got := Page(items, 1, 3)
	got.Visible[0] = 100
	if items[3] != 3 {
		t.Fatalf("input mutated: %v", items)
	}
	again := Page(items, 1, 3)
	if again.Visible[0] != 3 {
		t.Fatalf("second call differs: %v", again.Visible)
	}
}
