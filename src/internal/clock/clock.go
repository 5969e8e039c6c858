// FILE: logforge/src/internal/clock/clock.go
package clock

import (
	"context"
	"sync"
	"time"
)

// Clock is the engine's time source and suspension mechanism. Production
// code uses System; tests substitute Simulated to fast-forward virtual
// time instead of waiting on real timers.
type Clock interface {
	Now() time.Time

	// Sleep suspends the caller for d or until ctx is cancelled,
	// returning ctx.Err() in the latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

// System is the wall-clock implementation.
type System struct{}

func NewSystem() *System {
	return &System{}
}

func (s *System) Now() time.Time {
	return time.Now()
}

func (s *System) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Simulated is a virtual clock. Sleep advances the clock immediately,
// so a loop that would take minutes of wall time completes in
// microseconds while still observing the same sequence of timestamps.
type Simulated struct {
	mu  sync.Mutex
	now time.Time
}

func NewSimulated(start time.Time) *Simulated {
	return &Simulated{now: start}
}

func (s *Simulated) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *Simulated) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}

	s.mu.Lock()
	s.now = s.now.Add(d)
	s.mu.Unlock()
	return nil
}

// Advance moves the clock forward without a sleeper.
func (s *Simulated) Advance(d time.Duration) {
	s.mu.Lock()
	s.now = s.now.Add(d)
	s.mu.Unlock()
}
