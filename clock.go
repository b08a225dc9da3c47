package ambient

import (
	"context"
	"sync"
	"time"
)

// FrameClock invokes a requested callback once, on the next display refresh,
// with the frame timestamp measured from the clock's origin. The engine
// re-requests after every tick; Cancel drops a pending request.
type FrameClock interface {
	Request(fn func(now time.Duration))
	Cancel()
}

// DefaultFrameInterval is the refresh interval used when no clock is given.
const DefaultFrameInterval = time.Second / 60

// --- ManualClock ---

// ManualClock is a deterministic FrameClock advanced explicitly with Step.
// Used by tests, scripted scenarios and headless rendering.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Duration
	pending func(time.Duration)
}

// NewManualClock returns a ManualClock at time zero.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// Request implements FrameClock.
func (c *ManualClock) Request(fn func(now time.Duration)) {
	c.mu.Lock()
	c.pending = fn
	c.mu.Unlock()
}

// Cancel implements FrameClock.
func (c *ManualClock) Cancel() {
	c.mu.Lock()
	c.pending = nil
	c.mu.Unlock()
}

// Now returns the current clock time.
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Pending reports whether a callback is waiting for the next frame.
func (c *ManualClock) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

// Step advances the clock by dt and fires the pending callback, if any.
// It reports whether a callback fired.
func (c *ManualClock) Step(dt time.Duration) bool {
	c.mu.Lock()
	c.now += dt
	now := c.now
	fn := c.pending
	c.pending = nil
	c.mu.Unlock()

	if fn == nil {
		return false
	}
	fn(now)
	return true
}

// Run calls Step n times and returns how many callbacks fired.
func (c *ManualClock) Run(n int, dt time.Duration) int {
	fired := 0
	for i := 0; i < n; i++ {
		if c.Step(dt) {
			fired++
		}
	}
	return fired
}

// --- TickerClock ---

// TickerClock is a FrameClock driven by a time.Ticker on a single goroutine.
// Callbacks run on that goroutine one at a time, so ticks never overlap; a
// slow callback delays the next tick rather than being preempted.
type TickerClock struct {
	interval time.Duration
	origin   time.Time

	mu      sync.Mutex
	pending func(time.Duration)

	cancel context.CancelFunc
	done   chan struct{}
}

// NewTickerClock starts a clock ticking every interval until ctx is done or
// Close is called. A non-positive interval selects DefaultFrameInterval.
func NewTickerClock(ctx context.Context, interval time.Duration) *TickerClock {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	ctx, cancel := context.WithCancel(ctx)
	c := &TickerClock{
		interval: interval,
		origin:   time.Now(),
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go c.loop(ctx)
	return c
}

func (c *TickerClock) loop(ctx context.Context) {
	defer close(c.done)
	t := time.NewTicker(c.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			c.mu.Lock()
			fn := c.pending
			c.pending = nil
			c.mu.Unlock()
			if fn != nil {
				fn(now.Sub(c.origin))
			}
		}
	}
}

// Request implements FrameClock.
func (c *TickerClock) Request(fn func(now time.Duration)) {
	c.mu.Lock()
	c.pending = fn
	c.mu.Unlock()
}

// Cancel implements FrameClock.
func (c *TickerClock) Cancel() {
	c.mu.Lock()
	c.pending = nil
	c.mu.Unlock()
}

// Close stops the ticker goroutine and waits for it to exit. It must not be
// called from inside a frame callback.
func (c *TickerClock) Close() {
	c.cancel()
	<-c.done
}

// Done is closed once the ticker goroutine has exited.
func (c *TickerClock) Done() <-chan struct{} {
	return c.done
}
