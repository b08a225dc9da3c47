package ambient

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestLayerFadeDisabled(t *testing.T) {
	if f := newLayerFade(0, nil); f != nil {
		t.Fatal("zero duration should disable the fade")
	}
	var f *layerFade
	assertNear(t, "nil fade", f.update(16), 1)
}

func TestLayerFadeLinear(t *testing.T) {
	f := newLayerFade(1000, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	if a := f.update(500); a < 0.49 || a > 0.51 {
		t.Errorf("alpha at half = %f, want ~0.5", a)
	}
	assertNear(t, "done", f.update(500), 1)
	if !f.done {
		t.Error("expected done after full duration")
	}
	assertNear(t, "after done", f.update(100), 1)
}

func TestLayerFadeMonotonic(t *testing.T) {
	f := newLayerFade(300, nil)
	prev := 0.0
	for i := 0; i < 30; i++ {
		a := f.update(16)
		if a < prev {
			t.Fatalf("step %d: alpha %f decreased from %f", i, a, prev)
		}
		if a < 0 || a > 1 {
			t.Fatalf("alpha %f outside [0, 1]", a)
		}
		prev = a
	}
	assertNear(t, "final", prev, 1)
}

func TestLayerFadeZeroStep(t *testing.T) {
	f := newLayerFade(200, ease.Linear)
	assertNear(t, "zero step", f.update(0), 0)
}
