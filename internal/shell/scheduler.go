package shell

import (
	"context"
	"sync"
	"time"
)

// Scheduler runs delayed callbacks on behalf of a session. Closing it
// stops pending timers; a callback that loses the race with Close
// observes the cancelled context and returns without running.
type Scheduler struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	timers map[uint64]*time.Timer
	nextID uint64
}

// NewScheduler creates a scheduler bound to parent. Cancelling parent
// has the same effect as Close.
func NewScheduler(parent context.Context) *Scheduler {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Scheduler{
		ctx:    ctx,
		cancel: cancel,
		timers: make(map[uint64]*time.Timer),
	}
}

// Schedule runs fn once after delay. It returns false if the scheduler is closed.
func (s *Scheduler) Schedule(delay time.Duration, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx.Err() != nil {
		return false
	}

	id := s.nextID
	s.nextID++
	s.timers[id] = time.AfterFunc(delay, func() {
		// a chained step is registered before this one is forgotten
		defer func() {
			s.mu.Lock()
			delete(s.timers, id)
			s.mu.Unlock()
		}()

		if s.ctx.Err() != nil {
			return
		}
		fn()
	})
	return true
}

// Sequence runs steps one after another, delay apart, starting delay from
// now. Each step is scheduled only after the previous one ran, so steps of
// one sequence never reorder.
func (s *Scheduler) Sequence(delay time.Duration, steps ...func()) bool {
	if len(steps) == 0 {
		return s.ctx.Err() == nil
	}
	return s.Schedule(delay, func() {
		steps[0]()
		if len(steps) > 1 {
			s.Sequence(delay, steps[1:]...)
		}
	})
}

// Pending returns the number of callbacks that have not finished.
// It stays above zero for the whole run of a Sequence.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Done is closed when the scheduler is closed
func (s *Scheduler) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Close cancels every pending callback
func (s *Scheduler) Close() {
	s.cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
