package ambient

import (
	"log/slog"
	"math/rand/v2"

	"github.com/tanema/gween/ease"
)

// Option configures an Engine during creation.
//
// Example:
//
//	clock := ambient.NewManualClock()
//	e := ambient.NewEngine(cfg, ambient.WithClock(clock), ambient.WithLogger(slog.Default()))
type Option func(*engineOptions)

type engineOptions struct {
	clock       FrameClock
	rng         *rand.Rand
	logger      *slog.Logger
	sink        EventSink
	classifier  Classifier
	snapshotDir string
	fadeEase    ease.TweenFunc
}

func defaultOptions() engineOptions {
	return engineOptions{
		classifier:  CPUClassifier{},
		snapshotDir: "snapshots",
	}
}

// WithClock sets the frame clock. Without it, Start creates a TickerClock at
// DefaultFrameInterval that the engine owns and closes on Stop.
func WithClock(c FrameClock) Option {
	return func(o *engineOptions) {
		o.clock = c
	}
}

// WithRand sets the random source used for spawning. Pass a seeded source
// for reproducible simulations.
func WithRand(r *rand.Rand) Option {
	return func(o *engineOptions) {
		o.rng = r
	}
}

// WithSeed is WithRand with a PCG source seeded from seed.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithLogger sets a per-engine logger, overriding the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *engineOptions) {
		o.logger = l
	}
}

// WithEventSink registers an observer for lifecycle events.
func WithEventSink(s EventSink) Option {
	return func(o *engineOptions) {
		o.sink = s
	}
}

// WithClassifier replaces the CPU-count classifier consulted when the
// performance mode is auto and Init receives TierUnknown.
func WithClassifier(c Classifier) Option {
	return func(o *engineOptions) {
		o.classifier = c
	}
}

// WithSnapshotDir sets the directory Snapshot writes PNG files to.
func WithSnapshotDir(dir string) Option {
	return func(o *engineOptions) {
		o.snapshotDir = dir
	}
}

// WithFadeEase sets the easing function of the fade-in configured with
// Config.FadeIn. The default is ease.OutQuad.
func WithFadeEase(fn ease.TweenFunc) Option {
	return func(o *engineOptions) {
		o.fadeEase = fn
	}
}
