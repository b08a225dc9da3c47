package ambient

import (
	"math"
	"math/rand/v2"
	"time"
)

// emitter decides once per frame whether a particle is spawned. At most one
// particle is spawned per call; there is no burst catch-up after a stall or
// after the population cap is relieved.
type emitter struct {
	interval time.Duration // zero disables emission
	last     time.Duration
	primed   bool // set once the gate has opened

	lifetime   Range
	speed      Range
	size       float64
	jitter     float64
	maxOpacity float64
	rng        *rand.Rand
}

func newEmitter(cfg Config, rng *rand.Rand) *emitter {
	e := &emitter{
		lifetime:   cfg.Lifetime,
		speed:      cfg.Speed,
		size:       cfg.ParticleSize,
		jitter:     cfg.SizeJitter,
		maxOpacity: cfg.MaxOpacity,
		rng:        rng,
	}
	if cfg.EmissionRate > 0 {
		e.interval = emissionInterval(cfg.EmissionRate)
	}
	return e
}

// emissionInterval converts a positive rate to the gate interval, saturating
// at 1ns for huge rates and at the largest Duration for tiny ones.
func emissionInterval(rate float64) time.Duration {
	iv := float64(time.Second) / rate
	switch {
	case iv < 1:
		return time.Nanosecond
	case iv >= math.MaxInt64:
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(iv)
}

// maybeSpawn opens the rate gate when at least one interval has elapsed since
// the last opening and records now as the opening time, whether or not the
// cap allows a spawn. A particle is returned only when the gate opened and
// alive < limit.
func (e *emitter) maybeSpawn(now time.Duration, alive, limit int, b Bounds) (Particle, bool) {
	if e.interval <= 0 {
		return Particle{}, false
	}
	if e.primed && now-e.last < e.interval {
		return Particle{}, false
	}
	e.primed = true
	e.last = now
	if alive >= limit {
		return Particle{}, false
	}
	return e.spawn(b), true
}

// reset forgets the last opening so the next call fires immediately.
func (e *emitter) reset() {
	e.primed = false
	e.last = 0
}

// spawn builds a particle at a uniform position inside b with a uniform
// direction over [0, 2π).
func (e *emitter) spawn(b Bounds) Particle {
	angle := e.rng.Float64() * 2 * math.Pi
	speed := e.speed.Random(e.rng)
	life := e.lifetime.Random(e.rng)
	if life <= 0 {
		life = DefaultLifetime.Min
	}

	size := e.size
	if e.jitter > 0 {
		size *= 1 + e.jitter*(2*e.rng.Float64()-1)
	}

	return Particle{
		X:       e.rng.Float64() * max(b.Width, 0),
		Y:       e.rng.Float64() * max(b.Height, 0),
		VX:      math.Cos(angle) * speed,
		VY:      math.Sin(angle) * speed,
		Size:    size,
		Opacity: opacityFor(life, life, e.maxOpacity),
		Life:    life,
		MaxLife: life,
	}
}
