package ambient

import (
	"fmt"
	"math"
	"runtime"
	"strings"
)

// Tier is a coarse device performance classification.
type Tier uint8

const (
	TierUnknown Tier = iota // no classification available
	TierHigh                // full population and emission
	TierMedium              // 70% of the base configuration
	TierLow                 // 40% of the base configuration
)

// String returns the lowercase tier name.
func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	case TierLow:
		return "low"
	default:
		return "unknown"
	}
}

// PerformanceMode selects a tier explicitly or defers to the capability
// classifier with ModeAuto.
type PerformanceMode uint8

const (
	ModeAuto   PerformanceMode = iota // use the capability tier from Signals
	ModeHigh                          // force TierHigh
	ModeMedium                        // force TierMedium
	ModeLow                           // force TierLow
)

// String returns the lowercase mode name.
func (m PerformanceMode) String() string {
	switch m {
	case ModeHigh:
		return "high"
	case ModeMedium:
		return "medium"
	case ModeLow:
		return "low"
	default:
		return "auto"
	}
}

// ParsePerformanceMode parses "auto", "high", "medium" or "low".
func ParsePerformanceMode(s string) (PerformanceMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ModeAuto, nil
	case "high":
		return ModeHigh, nil
	case "medium":
		return ModeMedium, nil
	case "low":
		return ModeLow, nil
	}
	return ModeAuto, fmt.Errorf("parse performance mode %q: unknown mode", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *PerformanceMode) UnmarshalText(text []byte) error {
	parsed, err := ParsePerformanceMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (m PerformanceMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Multipliers scale the base configuration for a tier.
type Multipliers struct {
	ParticleCount float64
	EmissionRate  float64
	MaxParticles  float64
}

var tierMultipliers = [...]Multipliers{
	TierUnknown: {1.0, 1.0, 1.0},
	TierHigh:    {1.0, 1.0, 1.0},
	TierMedium:  {0.7, 0.7, 0.7},
	TierLow:     {0.4, 0.4, 0.4},
}

// MultipliersFor returns the scaling multipliers for t. Unknown tiers scale
// like TierHigh.
func MultipliersFor(t Tier) Multipliers {
	if int(t) >= len(tierMultipliers) {
		return tierMultipliers[TierHigh]
	}
	return tierMultipliers[t]
}

// ResolveTier picks the effective tier: an explicit mode wins, ModeAuto uses
// the signalled capability tier and falls back to classifier when that is
// unknown.
func ResolveTier(mode PerformanceMode, signalled Tier, classifier Classifier) Tier {
	switch mode {
	case ModeHigh:
		return TierHigh
	case ModeMedium:
		return TierMedium
	case ModeLow:
		return TierLow
	}
	if signalled != TierUnknown {
		return signalled
	}
	if classifier != nil {
		if t := classifier.Classify(); t != TierUnknown {
			return t
		}
	}
	return TierHigh
}

// Scale applies the tier multipliers to cfg once. Counts are floored;
// MaxParticles never drops below 1 and ParticleCount never exceeds it.
func Scale(cfg Config, t Tier) Config {
	m := MultipliersFor(t)
	cfg.ParticleCount = floorCount(float64(cfg.ParticleCount) * m.ParticleCount)
	cfg.MaxParticles = max(floorCount(float64(cfg.MaxParticles)*m.MaxParticles), 1)
	cfg.EmissionRate *= m.EmissionRate
	if cfg.ParticleCount > cfg.MaxParticles {
		cfg.ParticleCount = cfg.MaxParticles
	}
	return cfg
}

// floorCount floors v, absorbing float error such as 0.7*100 = 69.999...
func floorCount(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(math.Floor(v + 1e-9))
}

// Classifier yields a device capability tier.
type Classifier interface {
	Classify() Tier
}

// ClassifierFunc adapts a plain function to Classifier.
type ClassifierFunc func() Tier

// Classify calls f.
func (f ClassifierFunc) Classify() Tier { return f() }

// CPUClassifier classifies by logical CPU count: 8 or more is high, 4 or more
// is medium, anything less is low.
type CPUClassifier struct {
	// NumCPU overrides runtime.NumCPU when non-nil.
	NumCPU func() int
}

// Classify implements Classifier.
func (c CPUClassifier) Classify() Tier {
	n := runtime.NumCPU()
	if c.NumCPU != nil {
		n = c.NumCPU()
	}
	switch {
	case n >= 8:
		return TierHigh
	case n >= 4:
		return TierMedium
	case n > 0:
		return TierLow
	}
	return TierUnknown
}
