package ambient

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// Defaults applied by DefaultConfig and by sanitize for missing values.
const (
	DefaultParticleCount = 50
	DefaultParticleSize  = 2.0
	DefaultEmissionRate  = 10.0
	DefaultMaxParticles  = 100
	DefaultSizeJitter    = 0.2
	DefaultMaxFrameDelta = 100.0 // milliseconds

	// MaxParticlesLimit is the largest accepted MaxParticles. Larger values
	// are clamped with a warning.
	MaxParticlesLimit = 1 << 20

	minParticleSize = 0.5
)

// DefaultLifetime is the lifetime band of a new particle, in milliseconds.
var DefaultLifetime = Range{Min: 2000, Max: 5000}

// DefaultSpeed is the speed band of a new particle, in pixels per second.
var DefaultSpeed = Range{Min: 10, Max: 40}

// Config controls one engine instance. It is copied at construction and
// never changes for the lifetime of the engine.
type Config struct {
	// ParticleCount is the population spawned at once on Start when Seed is
	// set. Without Seed it only sizes the initial buffer; emission fills it
	// up to MaxParticles at EmissionRate.
	ParticleCount int `json:"particleCount"`
	// ParticleSize is the base particle radius in pixels.
	ParticleSize float64 `json:"particleSize"`
	// Color fills every particle of this engine.
	Color Color `json:"color"`
	// EmissionRate is the number of particles spawned per second while below
	// the population cap.
	EmissionRate float64 `json:"emissionRate"`
	// MaxParticles is the hard population ceiling before tier scaling.
	MaxParticles int `json:"maxParticles"`
	// PerformanceMode selects a tier or defers to the capability signal.
	PerformanceMode PerformanceMode `json:"performanceMode"`

	// Lifetime is the range of particle lifetimes in milliseconds.
	Lifetime Range `json:"lifetime"`
	// Speed is the range of initial particle speeds in pixels per second.
	Speed Range `json:"speed"`
	// SizeJitter is the fractional radius variation around ParticleSize.
	SizeJitter float64 `json:"sizeJitter"`
	// MaxOpacity is the display opacity of a particle at full life.
	MaxOpacity float64 `json:"maxOpacity"`
	// MaxFrameDelta caps the elapsed time of one integration step, in
	// milliseconds. Zero selects DefaultMaxFrameDelta.
	MaxFrameDelta float64 `json:"maxFrameDelta"`
	// Seed spawns ParticleCount particles at once when the engine starts.
	Seed bool `json:"seed"`
	// Background is the clear color for surfaces that clear to a color.
	// The zero value clears to transparent.
	Background Color `json:"background"`
	// FadeIn fades the whole particle layer in over this many milliseconds
	// after Start. Zero disables the fade.
	FadeIn float64 `json:"fadeIn"`
	// Debug logs per-frame timing stats at debug level.
	Debug bool `json:"debug"`
}

// DefaultConfig returns a Config with every field set to its default.
func DefaultConfig() Config {
	return Config{
		ParticleCount:   DefaultParticleCount,
		ParticleSize:    DefaultParticleSize,
		Color:           ColorWhite,
		EmissionRate:    DefaultEmissionRate,
		MaxParticles:    DefaultMaxParticles,
		PerformanceMode: ModeAuto,
		Lifetime:        DefaultLifetime,
		Speed:           DefaultSpeed,
		SizeJitter:      DefaultSizeJitter,
		MaxOpacity:      DefaultMaxOpacity,
		MaxFrameDelta:   DefaultMaxFrameDelta,
	}
}

// LoadConfig parses JSON configuration on top of DefaultConfig. Keys that are
// absent keep their defaults.
func LoadConfig(jsonData []byte) (Config, error) {
	return LoadConfigOver(DefaultConfig(), jsonData)
}

// LoadConfigOver parses JSON configuration on top of base, so a host can keep
// its own defaults for keys the file leaves out.
func LoadConfigOver(base Config, jsonData []byte) (Config, error) {
	if err := json.Unmarshal(jsonData, &base); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return base, nil
}

// sanitize clamps invalid values to the minimum viable setting and logs a
// warning for each correction. It never fails.
func (c Config) sanitize(log *slog.Logger) Config {
	warn := func(field string, got, used any) {
		log.Warn("ambient: invalid config value clamped",
			slog.String("field", field), slog.Any("got", got), slog.Any("used", used))
	}

	if c.MaxParticles <= 0 {
		warn("maxParticles", c.MaxParticles, 1)
		c.MaxParticles = 1
	}
	if c.MaxParticles > MaxParticlesLimit {
		warn("maxParticles", c.MaxParticles, MaxParticlesLimit)
		c.MaxParticles = MaxParticlesLimit
	}
	if c.ParticleSize <= 0 {
		warn("particleSize", c.ParticleSize, minParticleSize)
		c.ParticleSize = minParticleSize
	}
	if c.ParticleCount < 0 {
		warn("particleCount", c.ParticleCount, 0)
		c.ParticleCount = 0
	}
	if c.ParticleCount > c.MaxParticles {
		warn("particleCount", c.ParticleCount, c.MaxParticles)
		c.ParticleCount = c.MaxParticles
	}
	if c.EmissionRate < 0 {
		warn("emissionRate", c.EmissionRate, 0)
		c.EmissionRate = 0
	}
	if c.Lifetime.Max <= 0 {
		c.Lifetime = DefaultLifetime
	}
	if c.Lifetime.Min <= 0 || c.Lifetime.Min > c.Lifetime.Max {
		fixed := Range{Min: c.Lifetime.Max, Max: c.Lifetime.Max}
		warn("lifetime", c.Lifetime, fixed)
		c.Lifetime = fixed
	}
	if c.Speed.Min < 0 || c.Speed.Min > c.Speed.Max {
		warn("speed", c.Speed, DefaultSpeed)
		c.Speed = DefaultSpeed
	}
	if c.SizeJitter < 0 || c.SizeJitter >= 1 {
		warn("sizeJitter", c.SizeJitter, DefaultSizeJitter)
		c.SizeJitter = DefaultSizeJitter
	}
	if c.MaxOpacity <= 0 || c.MaxOpacity > 1 {
		c.MaxOpacity = DefaultMaxOpacity
	}
	if c.MaxFrameDelta <= 0 {
		c.MaxFrameDelta = DefaultMaxFrameDelta
	}
	if c.FadeIn < 0 {
		c.FadeIn = 0
	}
	return c
}
