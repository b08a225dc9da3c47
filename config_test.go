package ambient

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ParticleCount != 50 || cfg.MaxParticles != 100 {
		t.Errorf("counts = (%d, %d), want (50, 100)", cfg.ParticleCount, cfg.MaxParticles)
	}
	assertNear(t, "ParticleSize", cfg.ParticleSize, 2)
	assertNear(t, "EmissionRate", cfg.EmissionRate, 10)
	assertNear(t, "MaxOpacity", cfg.MaxOpacity, 0.7)
	if cfg.PerformanceMode != ModeAuto {
		t.Errorf("PerformanceMode = %v, want auto", cfg.PerformanceMode)
	}
	if cfg.Color != ColorWhite {
		t.Errorf("Color = %+v, want white", cfg.Color)
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{
		"particleCount": 20,
		"color": "#ff0000",
		"performanceMode": "low",
		"lifetime": {"min": 1000, "max": 1500},
		"seed": true
	}`))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ParticleCount != 20 {
		t.Errorf("ParticleCount = %d, want 20", cfg.ParticleCount)
	}
	if cfg.PerformanceMode != ModeLow {
		t.Errorf("PerformanceMode = %v, want low", cfg.PerformanceMode)
	}
	assertNear(t, "Color.R", cfg.Color.R, 1)
	assertNear(t, "Color.G", cfg.Color.G, 0)
	assertNear(t, "Lifetime.Min", cfg.Lifetime.Min, 1000)
	assertNear(t, "Lifetime.Max", cfg.Lifetime.Max, 1500)
	if !cfg.Seed {
		t.Error("Seed should be set")
	}

	// Absent keys keep their defaults.
	if cfg.MaxParticles != DefaultMaxParticles {
		t.Errorf("MaxParticles = %d, want default %d", cfg.MaxParticles, DefaultMaxParticles)
	}
	assertNear(t, "EmissionRate", cfg.EmissionRate, DefaultEmissionRate)
}

func TestLoadConfigErrors(t *testing.T) {
	for _, in := range []string{
		`{`,
		`{"performanceMode": "turbo"}`,
		`{"color": "blue"}`,
		`{"particleCount": "many"}`,
	} {
		if _, err := LoadConfig([]byte(in)); err == nil {
			t.Errorf("LoadConfig(%s) should fail", in)
		}
	}
}

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestSanitizeClampsInvalidValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxParticles = 0
	cfg.ParticleSize = -1
	cfg.EmissionRate = -5
	cfg.Lifetime = Range{Min: 3000, Max: 1000}
	cfg.Speed = Range{Min: -1, Max: 5}
	cfg.SizeJitter = 1.5
	cfg.MaxOpacity = 3
	cfg.MaxFrameDelta = -1
	cfg.FadeIn = -10

	log, buf := captureLogger()
	got := cfg.sanitize(log)

	if got.MaxParticles != 1 {
		t.Errorf("MaxParticles = %d, want 1", got.MaxParticles)
	}
	if got.ParticleCount != 1 {
		t.Errorf("ParticleCount = %d, want 1 (clamped to MaxParticles)", got.ParticleCount)
	}
	assertNear(t, "ParticleSize", got.ParticleSize, 0.5)
	assertNear(t, "EmissionRate", got.EmissionRate, 0)
	if got.Lifetime != (Range{Min: 1000, Max: 1000}) {
		t.Errorf("Lifetime = %+v, want {1000 1000}", got.Lifetime)
	}
	if got.Speed != DefaultSpeed {
		t.Errorf("Speed = %+v, want default", got.Speed)
	}
	assertNear(t, "SizeJitter", got.SizeJitter, DefaultSizeJitter)
	assertNear(t, "MaxOpacity", got.MaxOpacity, DefaultMaxOpacity)
	assertNear(t, "MaxFrameDelta", got.MaxFrameDelta, DefaultMaxFrameDelta)
	assertNear(t, "FadeIn", got.FadeIn, 0)

	out := buf.String()
	for _, field := range []string{"maxParticles", "particleSize", "particleCount", "emissionRate", "lifetime", "speed", "sizeJitter"} {
		if !strings.Contains(out, "field="+field) {
			t.Errorf("expected a warning for %s, got:\n%s", field, out)
		}
	}
	if !strings.Contains(out, "level=WARN") {
		t.Errorf("expected WARN level records, got:\n%s", out)
	}
}

func TestSanitizeValidConfigIsSilent(t *testing.T) {
	log, buf := captureLogger()
	got := DefaultConfig().sanitize(log)
	if got != DefaultConfig() {
		t.Errorf("sanitize changed a valid config: %+v", got)
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected log output: %s", buf.String())
	}
}

func TestNewEngineSanitizes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ParticleCount = 500
	cfg.MaxParticles = 100

	log, buf := captureLogger()
	e := NewEngine(cfg, WithLogger(log))
	if got := e.Config().ParticleCount; got != 100 {
		t.Errorf("ParticleCount = %d, want 100", got)
	}
	if !strings.Contains(buf.String(), "ambient: invalid config value clamped") {
		t.Errorf("expected clamp warning, got: %s", buf.String())
	}
}

func TestSanitizeCapsMaxParticles(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxParticles = 1 << 40

	log, buf := captureLogger()
	got := cfg.sanitize(log)
	if got.MaxParticles != MaxParticlesLimit {
		t.Errorf("MaxParticles = %d, want %d", got.MaxParticles, MaxParticlesLimit)
	}
	if !strings.Contains(buf.String(), "field=maxParticles") {
		t.Errorf("expected a maxParticles warning, got:\n%s", buf.String())
	}
}

func TestLoadConfigOver(t *testing.T) {
	base := DefaultConfig()
	base.Seed = true
	base.Background = Color{R: 0.02, G: 0.03, B: 0.06, A: 1}

	cfg, err := LoadConfigOver(base, []byte(`{"particleCount": 12}`))
	if err != nil {
		t.Fatalf("LoadConfigOver: %v", err)
	}
	if cfg.ParticleCount != 12 {
		t.Errorf("ParticleCount = %d, want 12", cfg.ParticleCount)
	}
	if !cfg.Seed || cfg.Background != base.Background {
		t.Errorf("keys absent from the JSON lost the base values: %+v", cfg)
	}
	if !base.Seed || base.ParticleCount != DefaultParticleCount {
		t.Error("base was modified")
	}

	if _, err := LoadConfigOver(base, []byte(`{`)); err == nil {
		t.Error("expected an error for invalid JSON")
	}
}
