package logger

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestParseSampleRatio(t *testing.T) {
	cases := []struct {
		in       string
		num, den int
	}{
		{"1/50", 1, 50},
		{" 3 / 10 ", 3, 10},
		{"10", 1, 10},
		{"20", 1, 20},
		{"0", 0, 0},
		{"-4", 0, 0},
		{"", 0, 0},
		{"all", 0, 0},
		{"OFF", 0, 0},
		{"x/y", 0, 0},
		{"junk", 0, 0},
	}
	for _, tc := range cases {
		num, den := parseSampleRatio(tc.in)
		if num != tc.num || den != tc.den {
			t.Errorf("parseSampleRatio(%q) = %d/%d, want %d/%d", tc.in, num, den, tc.num, tc.den)
		}
	}
}

func TestRatioSampler(t *testing.T) {
	cases := []struct {
		num, den, events, want int
	}{
		{1, 3, 9, 3},
		{2, 5, 10, 4},
		{5, 2, 4, 4},
		{0, 0, 7, 7},
	}
	for _, tc := range cases {
		s := newRatioSampler(tc.num, tc.den)
		allowed := 0
		for i := 0; i < tc.events; i++ {
			if s.Allow() {
				allowed++
			}
		}
		if allowed != tc.want {
			t.Fatalf("%d/%d over %d events: allowed = %d, want %d", tc.num, tc.den, tc.events, allowed, tc.want)
		}
	}

	s := newRatioSampler(1, 100)
	s.Allow()
	s.Set(0, 0)
	if !s.Allow() {
		t.Fatal("disabled sampler must allow everything")
	}
}

func TestAsyncWriterFlushAfterClose(t *testing.T) {
	buf := &bytes.Buffer{}
	aw := newAsyncWriter([]io.Writer{buf}, 16)
	if err := aw.Write([]byte("line\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := aw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := aw.Flush(); err != nil {
		t.Fatalf("flush after close: %v", err)
	}
	if err := aw.Write([]byte("late\n")); !errors.Is(err, errWriterClosed) {
		t.Fatalf("write after close: %v", err)
	}
	if buf.String() != "line\n" {
		t.Fatalf("output = %q", buf.String())
	}
}

type failingSink struct{}

func (failingSink) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestAsyncWriterReportsSinkError(t *testing.T) {
	aw := newAsyncWriter([]io.Writer{failingSink{}}, 16)
	if err := aw.Write([]byte("line\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := aw.Flush(); err == nil {
		t.Fatal("flush must surface the sink error")
	}
	if err := aw.Close(); err == nil {
		t.Fatal("close must surface the sink error")
	}
}

func TestPreviewList(t *testing.T) {
	got, cut := PreviewList([]string{"a", "b", "c"}, 2)
	if got != "a, b" || !cut {
		t.Fatalf("PreviewList = %q, %v", got, cut)
	}
	got, cut = PreviewList([]string{"a"}, 6)
	if got != "a" || cut {
		t.Fatalf("PreviewList = %q, %v", got, cut)
	}
}
