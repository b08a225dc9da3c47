package ambient

import "math"

// Bounds tracks the current surface dimensions and wraps positions into them.
type Bounds struct {
	Width, Height float64
}

// Resize updates the stored dimensions. Existing particles are not moved;
// they re-wrap on their next update.
func (b *Bounds) Resize(width, height float64) {
	b.Width = width
	b.Height = height
}

// Wrap returns (x, y) folded into [0, Width) x [0, Height). A particle leaving
// one edge re-enters at the opposite edge, including for displacements larger
// than a full span.
func (b Bounds) Wrap(x, y float64) (float64, float64) {
	return wrapAxis(x, b.Width), wrapAxis(y, b.Height)
}

// Contains reports whether (x, y) lies inside the half-open bounds.
func (b Bounds) Contains(x, y float64) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

func wrapAxis(v, span float64) float64 {
	if span <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v >= 0 && v < span {
		return v
	}
	v = math.Mod(v, span)
	if v < 0 {
		v += span
	}
	// v+span can round up to exactly span for tiny negative v.
	if v >= span {
		v = 0
	}
	return v
}
