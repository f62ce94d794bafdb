package logger

import (
	"strconv"
	"strings"
	"sync"
)

// ratioSampler lets n out of every d debug events through. A zero ratio lets all through.
type ratioSampler struct {
	mu   sync.Mutex
	n, d uint64
	seen uint64
}

func newRatioSampler(n, d int) *ratioSampler {
	s := &ratioSampler{}
	s.Set(n, d)
	return s
}

// Set replaces the ratio and restarts the window.
func (s *ratioSampler) Set(n, d int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen = 0
	if n <= 0 || d <= 0 {
		s.n, s.d = 0, 0
		return
	}
	s.n, s.d = uint64(min(n, d)), uint64(d)
}

// Allow counts one event and reports whether it falls inside the window's first n slots.
func (s *ratioSampler) Allow() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.d == 0 {
		return true
	}
	slot := s.seen % s.d
	s.seen++
	return slot < s.n
}

// parseSampleRatio reads "n/d", a bare "d" meaning 1/d, "all" or "off".
// Unparsable input yields (0, 0), which disables sampling.
func parseSampleRatio(raw string) (int, int) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" || raw == "all" || raw == "off" {
		return 0, 0
	}
	if head, tail, ok := strings.Cut(raw, "/"); ok {
		n, errN := strconv.Atoi(strings.TrimSpace(head))
		d, errD := strconv.Atoi(strings.TrimSpace(tail))
		if errN != nil || errD != nil {
			return 0, 0
		}
		return n, d
	}
	d, err := strconv.Atoi(raw)
	if err != nil || d <= 0 {
		return 0, 0
	}
	return 1, d
}
