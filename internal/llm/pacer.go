package llm

import (
	"context"
	"sync"
	"time"
)

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

// RealClock is the wall-clock implementation used in production.
type RealClock struct{}

// Now returns the current wall-clock time.
func (RealClock) Now() time.Time { return time.Now() }

// Sleep blocks for d or until ctx is done, whichever comes first.
func (RealClock) Sleep(ctx context.Context, d time.Duration) error {
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

// Pacer enforces a minimum interval between outbound model calls. It holds
// a single process-wide "last call" timestamp behind a mutex, so concurrent
// requests serialize through it rather than sharing ambient state.
type Pacer struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
	clock    Clock
}

// NewPacer creates a Pacer with the given minimum interval. A nil clock
// defaults to the wall clock.
func NewPacer(interval time.Duration, clock Clock) *Pacer {
	if clock == nil {
		clock = RealClock{}
	}
	return &Pacer{interval: interval, clock: clock}
}

// Wait blocks until at least the configured interval has elapsed since the
// previous call returned, then records the new timestamp. Returns early
// with ctx.Err() if the context is cancelled while waiting.
func (p *Pacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.clock.Now()
	if !p.last.IsZero() {
		if wait := p.interval - now.Sub(p.last); wait > 0 {
			if err := p.clock.Sleep(ctx, wait); err != nil {
				return err
			}
		}
	}
	p.last = p.clock.Now()
	return nil
}
