package state

import (
	"sort"
	"sync"
	"time"
)

type memoryManager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	now      func() time.Time
}

// NewMemoryManager constructs the in-memory Manager.
func NewMemoryManager() Manager {
	return &memoryManager{
		sessions: make(map[int64]*Session),
		now:      time.Now,
	}
}

// Get returns the session, or an idle one when none is stored.
func (m *memoryManager) Get(sessionID int64) Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[sessionID]; ok {
		return *s
	}
	return Session{Stage: StageIdle}
}

func (m *memoryManager) Update(sessionID int64, fn func(*Session)) Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.session(sessionID)
	if fn != nil {
		fn(s)
	}
	s.TouchedAt = m.now()
	return *s
}

// session must be called with the write lock held.
func (m *memoryManager) session(sessionID int64) *Session {
	s, ok := m.sessions[sessionID]
	if !ok {
		s = &Session{Stage: StageIdle}
		m.sessions[sessionID] = s
	}
	return s
}

func (m *memoryManager) SetStage(sessionID int64, st Stage) {
	m.Update(sessionID, func(s *Session) { s.Stage = st })
}

// GetStage returns StageIdle for unknown sessions.
func (m *memoryManager) GetStage(sessionID int64) Stage {
	return m.Get(sessionID).Stage
}

func (m *memoryManager) InProgress(sessionID int64) bool {
	return m.GetStage(sessionID).Active()
}

func (m *memoryManager) ClearDialogue(sessionID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[sessionID]; ok {
		s.Stage = StageIdle
		s.Collected = Collected{}
		s.TouchedAt = m.now()
	}
}

func (m *memoryManager) SetPage(sessionID int64, page int) {
	m.Update(sessionID, func(s *Session) { s.Page = page })
}

func (m *memoryManager) GetPage(sessionID int64) int {
	return m.Get(sessionID).Page
}

// Clear removes the entire session.
func (m *memoryManager) Clear(sessionID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

func (m *memoryManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep returns the removed sessions ordered by id.
func (m *memoryManager) Sweep(now time.Time, ttl time.Duration) []Expired {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Expired
	for id, s := range m.sessions {
		idle := now.Sub(s.TouchedAt)
		if idle <= ttl {
			continue
		}
		out = append(out, Expired{SessionID: id, Stage: s.Stage, IdleFor: idle})
		delete(m.sessions, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SessionID < out[j].SessionID })
	return out
}
