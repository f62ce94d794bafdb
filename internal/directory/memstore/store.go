// Package memstore keeps user records in process memory. Records are lost on restart.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/m3rciful/rosterbot/internal/directory"
	"github.com/m3rciful/rosterbot/internal/domain"
)

// Store is a mutex guarded slice of records kept in insertion order.
type Store struct {
	mu     sync.RWMutex
	nextID int64
	users  []domain.User
	now    func() time.Time
}

// New returns an empty Store.
func New() *Store {
	return &Store{now: time.Now}
}

// Insert appends u unless its sender is already registered.
func (s *Store) Insert(_ context.Context, u domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(u.SenderID) >= 0 {
		return domain.User{}, directory.ErrDuplicate
	}
	s.nextID++
	u.ID = s.nextID
	u.CreatedAt = s.now().UTC()
	s.users = append(s.users, u)
	return u, nil
}

// FindBySender returns a copy of the record, or nil.
func (s *Store) FindBySender(_ context.Context, senderID int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(senderID)
	if i < 0 {
		return nil, nil
	}
	u := s.users[i]
	return &u, nil
}

// ListNonOperators returns copies in insertion order.
func (s *Store) ListNonOperators(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		if !u.IsOperator {
			out = append(out, u)
		}
	}
	return out, nil
}

// SetOperator updates the flag in place.
func (s *Store) SetOperator(_ context.Context, senderID int64, operator bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(senderID)
	if i < 0 {
		return directory.ErrNotFound
	}
	s.users[i].IsOperator = operator
	return nil
}

// Delete removes the record keeping the order of the rest.
func (s *Store) Delete(_ context.Context, senderID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(senderID)
	if i < 0 {
		return directory.ErrNotFound
	}
	s.users = append(s.users[:i], s.users[i+1:]...)
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) indexOf(senderID int64) int {
	for i, u := range s.users {
		if u.SenderID == senderID {
			return i
		}
	}
	return -1
}
