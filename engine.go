package ambient

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"
)

// FrameState is the frame scheduler state. The only transitions are
// Idle -> Running -> Stopped and Idle -> Stopped; Stopped is terminal.
type FrameState uint8

const (
	StateIdle    FrameState = iota // constructed or initialized, not animating
	StateRunning                   // a frame is requested on the clock
	StateStopped                   // terminal; a new Engine is needed to animate again
)

// String returns the state name.
func (s FrameState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "invalid"
	}
}

// Signals are the host inputs read once by Init.
type Signals struct {
	// ReducedMotion renders a single inert frame and keeps the engine from
	// animating.
	ReducedMotion bool
	// Tier is the device capability tier, consulted when the performance
	// mode is auto. TierUnknown defers to the engine's classifier.
	Tier Tier
}

// Status is a point-in-time view of the engine.
type Status struct {
	State    FrameState
	Tier     Tier
	Degraded bool // the surface was lost and the engine stopped itself
	Static   bool // reduced motion: one inert frame, no animation
	Disposed bool
	Err      error // the failure behind Degraded
}

// Stats are cumulative counters since Init.
type Stats struct {
	Frames  uint64
	Spawned uint64
	Removed uint64
	Alive   int
}

// Engine simulates and renders one particle layer onto one surface. All
// simulation state is owned by the engine and only mutated inside a frame
// tick; lifecycle calls wait for an in-flight tick to finish.
type Engine struct {
	mu sync.Mutex

	opts engineOptions
	base Config // sanitized, before tier scaling
	cfg  Config // effective, after tier scaling
	tier Tier

	state       FrameState
	initialized bool
	static      bool
	degraded    bool
	disposed    bool
	lastErr     error

	surface   Surface
	bounds    Bounds
	particles []Particle
	emitter   *emitter
	fade      *layerFade

	clock     FrameClock
	ownsClock bool
	lastFrame time.Duration
	haveFrame bool

	stats Stats
}

// NewEngine creates an idle engine with cfg. Invalid values are clamped with
// a warning; the configuration never changes afterwards.
func NewEngine(cfg Config, opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	e := &Engine{opts: o}
	e.base = cfg.sanitize(e.logger())
	e.cfg = e.base
	return e
}

// logger returns the per-engine logger or the package logger.
func (e *Engine) logger() *slog.Logger {
	if e.opts.logger != nil {
		return e.opts.logger
	}
	return Logger()
}

// initialCapacity sizes the particle buffer for the expected population;
// append grows it towards MaxParticles on demand.
func initialCapacity(cfg Config) int {
	return min(cfg.MaxParticles, max(cfg.ParticleCount, 64))
}

// Init takes ownership of surface, resolves the performance tier and scales
// the configuration. With reduced motion it draws one inert frame and the
// engine will never animate. Init may be called again while idle, e.g. after
// a capability change, which resets the particle buffer.
func (e *Engine) Init(surface Surface, sig Signals) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case e.disposed:
		return ErrDisposed
	case e.state == StateRunning:
		return ErrRunning
	case e.state == StateStopped:
		return ErrStopped
	}

	e.tier = ResolveTier(e.base.PerformanceMode, sig.Tier, e.opts.classifier)
	e.cfg = Scale(e.base, e.tier)
	e.static = sig.ReducedMotion
	e.surface = surface
	e.particles = make([]Particle, 0, initialCapacity(e.cfg))
	e.emitter = newEmitter(e.cfg, e.opts.rng)
	e.stats = Stats{}
	e.initialized = true

	if surface == nil {
		e.failLocked(ErrSurfaceUnavailable)
		return ErrSurfaceUnavailable
	}
	w, h := surface.Size()
	e.bounds = Bounds{Width: float64(w), Height: float64(h)}

	e.logger().Info("ambient: initialized",
		slog.String("tier", e.tier.String()),
		slog.Int("maxParticles", e.cfg.MaxParticles),
		slog.Float64("emissionRate", e.cfg.EmissionRate),
		slog.Bool("reducedMotion", e.static),
		slog.Int("width", w), slog.Int("height", h))

	if e.static {
		if err := clearSurface(surface, e.cfg.Background); err != nil {
			e.failLocked(err)
			return err
		}
	}
	e.emitLocked(EventInitialized, nil)
	return nil
}

// Start begins animating. It is a no-op while running or under reduced
// motion. Once stopped, an engine cannot be restarted.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case e.disposed:
		return ErrDisposed
	case e.state == StateStopped:
		return ErrStopped
	case !e.initialized:
		return ErrNotInitialized
	case e.state == StateRunning:
		return nil
	case e.static:
		e.logger().Debug("ambient: start ignored under reduced motion")
		return nil
	}

	if e.opts.clock != nil {
		e.clock = e.opts.clock
	} else {
		e.clock = NewTickerClock(context.Background(), DefaultFrameInterval)
		e.ownsClock = true
	}

	e.state = StateRunning
	e.haveFrame = false
	e.emitter.reset()
	e.fade = newLayerFade(e.cfg.FadeIn, e.opts.fadeEase)
	if e.cfg.Seed {
		e.seedLocked()
	}

	e.clock.Request(e.frame)
	e.logger().Info("ambient: started", slog.Int("seeded", len(e.particles)))
	e.emitLocked(EventStarted, nil)
	return nil
}

// seedLocked fills the buffer up to ParticleCount at once. Remaining lives
// are staggered so the seeded population does not expire in one frame.
func (e *Engine) seedLocked() {
	for len(e.particles) < e.cfg.ParticleCount && len(e.particles) < e.cfg.MaxParticles {
		p := e.emitter.spawn(e.bounds)
		p.Life = p.MaxLife * (0.25 + 0.75*e.opts.rng.Float64())
		p.Opacity = opacityFor(p.Life, p.MaxLife, e.cfg.MaxOpacity)
		e.particles = append(e.particles, p)
		e.stats.Spawned++
	}
}

// frame is the clock callback: emission, integration, render, reschedule.
func (e *Engine) frame(now time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateRunning {
		return
	}

	var dt float64
	if e.haveFrame {
		dt = float64(now-e.lastFrame) / float64(time.Millisecond)
	}
	e.lastFrame = now
	e.haveFrame = true

	var stats frameStats
	var t0 time.Time
	debug := e.cfg.Debug
	if debug {
		t0 = time.Now()
	}

	if p, ok := e.emitter.maybeSpawn(now, len(e.particles), e.cfg.MaxParticles, e.bounds); ok {
		e.particles = append(e.particles, p)
		e.stats.Spawned++
		stats.spawned = 1
	}

	if debug {
		stats.emitTime = time.Since(t0)
		t0 = time.Now()
	}

	stats.step = clampDelta(dt, e.cfg.MaxFrameDelta)
	var removed int
	e.particles, removed = integrate(e.particles, stats.step, e.bounds, e.cfg.MaxOpacity)
	e.stats.Removed += uint64(removed)
	stats.removed = removed

	if debug {
		stats.integrateTime = time.Since(t0)
		t0 = time.Now()
	}

	alpha := e.fade.update(stats.step)
	if err := render(e.surface, e.particles, e.cfg.Color, e.cfg.Background, alpha); err != nil {
		e.failLocked(err)
		return
	}

	e.stats.Frames++
	if debug {
		stats.renderTime = time.Since(t0)
		stats.alive = len(e.particles)
		e.debugCheckPopulation()
		e.debugLog(stats)
	}

	e.clock.Request(e.frame)
}

// failLocked records a surface failure: the scheduler stops and the engine
// reports a degraded status instead of propagating the error into the host.
func (e *Engine) failLocked(err error) {
	e.lastErr = err
	e.degraded = true
	e.logger().Warn("ambient: surface unavailable, stopping", slog.Any("err", err))
	e.haltLocked()
	e.particles = e.particles[:0]
	e.emitLocked(EventDegraded, err)
	e.emitLocked(EventStopped, nil)
}

// haltLocked moves to the terminal state and releases the frame clock.
func (e *Engine) haltLocked() {
	e.state = StateStopped
	if e.clock != nil {
		e.clock.Cancel()
		if tc, ok := e.clock.(*TickerClock); ok && e.ownsClock {
			// Non-blocking: haltLocked may run on the ticker goroutine.
			tc.cancel()
		}
	}
	e.clock = nil
	e.ownsClock = false
}

// Stop halts the frame loop after any in-flight tick and clears the surface.
// Stop is idempotent. A stopped engine cannot be restarted.
func (e *Engine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.disposed || e.state == StateStopped {
		return nil
	}
	e.haltLocked()
	e.particles = e.particles[:0]
	if err := clearSurface(e.surface, e.cfg.Background); err != nil {
		e.logger().Warn("ambient: clear on stop failed", slog.Any("err", err))
	}
	e.logger().Info("ambient: stopped")
	e.emitLocked(EventStopped, nil)
	return nil
}

// Resize updates the bounds particles wrap into. Surfaces implementing
// Resizer are resized too. Calls before Init, after Dispose or with
// non-positive dimensions are ignored.
func (e *Engine) Resize(width, height int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.disposed || !e.initialized || e.surface == nil {
		return
	}
	if width <= 0 || height <= 0 {
		e.logger().Debug("ambient: resize ignored", slog.Int("width", width), slog.Int("height", height))
		return
	}
	if r, ok := e.surface.(Resizer); ok {
		if err := r.Resize(width, height); err != nil {
			e.logger().Warn("ambient: surface resize failed", slog.Any("err", err))
		}
	}
	e.bounds.Resize(float64(width), float64(height))
	if e.static {
		if err := clearSurface(e.surface, e.cfg.Background); err != nil {
			e.logger().Warn("ambient: clear on resize failed", slog.Any("err", err))
		}
	}
	e.emitLocked(EventResized, nil)
}

// Dispose stops the engine and releases the surface. It is idempotent and
// safe to call after the host has torn the surface down: a failing clear is
// absorbed.
func (e *Engine) Dispose() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.disposed {
		return
	}
	if e.state == StateRunning {
		e.haltLocked()
		if err := clearSurface(e.surface, e.cfg.Background); err != nil {
			e.logger().Debug("ambient: clear on dispose failed", slog.Any("err", err))
		}
	}
	e.state = StateStopped
	e.disposed = true
	e.surface = nil
	e.particles = nil
	e.emitLocked(EventDisposed, nil)
}

func (e *Engine) emitLocked(t EventType, err error) {
	if e.opts.sink == nil {
		return
	}
	e.opts.sink.EmitEvent(LifecycleEvent{
		Type:   t,
		State:  e.state,
		Tier:   e.tier,
		Width:  e.bounds.Width,
		Height: e.bounds.Height,
		Alive:  len(e.particles),
		Static: e.static,
		Err:    err,
	})
}

// Status returns the current engine status.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Status{
		State:    e.state,
		Tier:     e.tier,
		Degraded: e.degraded,
		Static:   e.static,
		Disposed: e.disposed,
		Err:      e.lastErr,
	}
}

// State returns the frame scheduler state.
func (e *Engine) State() FrameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Stats returns cumulative counters since the last Init.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.stats
	s.Alive = len(e.particles)
	return s
}

// Particles returns a copy of the live particle buffer.
func (e *Engine) Particles() []Particle {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Particle, len(e.particles))
	copy(out, e.particles)
	return out
}

// Len returns the number of live particles.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.particles)
}

// Config returns the sanitized configuration given to NewEngine.
func (e *Engine) Config() Config {
	return e.base
}

// EffectiveConfig returns the tier-scaled configuration in use since Init.
func (e *Engine) EffectiveConfig() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// Bounds returns the current wrap bounds.
func (e *Engine) Bounds() Bounds {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bounds
}
