package checkout

import (
	"sync"
	"time"
)

// Auto-advance delays. Touch input gets a longer window because the tap
// that made the choice is still settling when the step would move on.
const (
	AdvanceDelayPointer = 400 * time.Millisecond
	AdvanceDelayTouch   = 700 * time.Millisecond
)

// advanceScheduler owns the builder's pending auto-advance. Every Schedule
// or Cancel bumps a generation counter; a fired timer only acts if its
// generation is still current, so a stale timer from an abandoned step can
// never fire after the user has moved on.
type advanceScheduler struct {
	mu    sync.Mutex
	gen   uint64
	timer *time.Timer
}

// Schedule arms fn after d, replacing any pending advance. It returns the
// generation token the timer will check at fire time.
func (s *advanceScheduler) Schedule(d time.Duration, fn func()) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	g := s.gen
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(d, func() {
		s.mu.Lock()
		live := s.gen == g
		s.mu.Unlock()
		if live {
			fn()
		}
	})
	return g
}

// Cancel invalidates any pending advance. Safe to call repeatedly; a second
// cancel after the timer is gone is a no-op.
func (s *advanceScheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Generation exposes the current token, for tests asserting staleness.
func (s *advanceScheduler) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}
