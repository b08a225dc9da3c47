package ambient

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// layerFade animates the alpha of the whole particle layer from 0 to 1 after
// Start. Particle opacity itself is untouched; the layer alpha is applied at
// render time only.
type layerFade struct {
	tween *gween.Tween
	alpha float64
	done  bool
}

// newLayerFade returns nil when durationMs is not positive.
func newLayerFade(durationMs float64, fn ease.TweenFunc) *layerFade {
	if durationMs <= 0 {
		return nil
	}
	if fn == nil {
		fn = ease.OutQuad
	}
	return &layerFade{
		tween: gween.New(0, 1, float32(durationMs/1000), fn),
	}
}

// update advances the fade by dtMs and returns the current layer alpha.
// A nil fade is fully opaque.
func (f *layerFade) update(dtMs float64) float64 {
	if f == nil {
		return 1
	}
	if f.done {
		return 1
	}
	val, finished := f.tween.Update(float32(dtMs / 1000))
	f.alpha = clamp01(float64(val))
	if finished {
		f.done = true
		f.alpha = 1
	}
	return f.alpha
}
