// Package sequencer serialises inbound updates per chat while letting different
// chats progress in parallel.
package sequencer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/rosterbot/core/logger"
)

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("sequencer: closed")

const component = "tg.sequencer"

// Sequencer runs submitted functions on a fixed set of workers. Functions sharing a key
// always land on the same worker and run in submission order.
type Sequencer struct {
	shards []chan func()
	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// New starts shards workers, each with a buffer of queue pending functions.
func New(shards, queue int) *Sequencer {
	if shards <= 0 {
		shards = 8
	}
	if queue <= 0 {
		queue = 128
	}
	s := &Sequencer{shards: make([]chan func(), shards)}
	s.wg.Add(shards)
	for i := range s.shards {
		s.shards[i] = make(chan func(), queue)
		go s.worker(s.shards[i])
	}
	return s
}

// Submit queues fn behind every earlier function with the same key. It blocks while the
// shard's buffer is full.
func (s *Sequencer) Submit(key int64, fn func()) error {
	if fn == nil {
		return errors.New("sequencer: nil func")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	s.shards[shardFor(key, len(s.shards))] <- fn
	return nil
}

// Close drains pending work and stops the workers.
func (s *Sequencer) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for _, ch := range s.shards {
		close(ch)
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Sequencer) worker(in <-chan func()) {
	defer s.wg.Done()
	for fn := range in {
		run(fn)
	}
}

func run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(context.Background(), component, "panic",
				slog.String("panic", fmt.Sprint(r)),
			)
		}
	}()
	fn()
}

func shardFor(key int64, n int) int {
	if key < 0 {
		key = -key
	}
	if key < 0 {
		key = 0
	}
	return int(key % int64(n))
}

// Middleware hands every update to the sequencer keyed by its chat and returns
// immediately. Updates without a chat are keyed by their sender.
func (s *Sequencer) Middleware() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			key := Key(c)
			err := s.Submit(key, func() {
				if err := next(c); err != nil {
					logger.Warn(context.Background(), component, "handler.error",
						slog.Int64("key", key),
						logger.Err(err),
					)
				}
			})
			if err != nil {
				logger.Warn(context.Background(), component, "submit.rejected",
					slog.Int64("key", key),
					logger.Err(err),
				)
			}
			return nil
		}
	}
}

// Key returns the ordering key of an update.
func Key(c tele.Context) int64 {
	if c == nil {
		return 0
	}
	if chat := c.Chat(); chat != nil {
		return chat.ID
	}
	if sender := c.Sender(); sender != nil {
		return sender.ID
	}
	return 0
}
