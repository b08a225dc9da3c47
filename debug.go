package ambient

import (
	"log/slog"
	"time"
)

// frameStats holds per-frame phase timings. Only populated when
// Config.Debug is set.
type frameStats struct {
	emitTime      time.Duration
	integrateTime time.Duration
	renderTime    time.Duration
	step          float64 // integration step in ms after clamping
	spawned       int
	removed       int
	alive         int
}

// debugLog reports a frame's timings at debug level.
func (e *Engine) debugLog(stats frameStats) {
	if !e.cfg.Debug {
		return
	}
	total := stats.emitTime + stats.integrateTime + stats.renderTime
	e.logger().Debug("ambient: frame",
		slog.Uint64("frame", e.stats.Frames),
		slog.Duration("emit", stats.emitTime),
		slog.Duration("integrate", stats.integrateTime),
		slog.Duration("render", stats.renderTime),
		slog.Duration("total", total),
		slog.Float64("step_ms", stats.step),
		slog.Int("spawned", stats.spawned),
		slog.Int("removed", stats.removed),
		slog.Int("alive", stats.alive),
	)
}

// debugCheckPopulation warns if the live count exceeds the tier-scaled cap.
func (e *Engine) debugCheckPopulation() {
	if !e.cfg.Debug {
		return
	}
	if n := len(e.particles); n > e.cfg.MaxParticles {
		e.logger().Warn("ambient: population exceeds cap",
			slog.Int("alive", n), slog.Int("max", e.cfg.MaxParticles))
	}
}
