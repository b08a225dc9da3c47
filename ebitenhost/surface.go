package ebitenhost

import (
	"fmt"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/williamjxj/ambient"
)

// Surface is an ambient.Surface backed by an offscreen ebiten.Image. The
// engine draws into it from Game.Update; Game.Draw composites it onto the
// screen.
type Surface struct {
	canvas    *ebiten.Image
	antialias bool
	released  atomic.Bool
}

// NewSurface allocates a canvas of the given size.
func NewSurface(width, height int) *Surface {
	return &Surface{
		canvas:    ebiten.NewImage(max(width, 1), max(height, 1)),
		antialias: true,
	}
}

// Canvas returns the offscreen image the particles are drawn into.
func (s *Surface) Canvas() *ebiten.Image {
	return s.canvas
}

// Size implements ambient.Surface.
func (s *Surface) Size() (int, int) {
	if s.released.Load() {
		return 0, 0
	}
	b := s.canvas.Bounds()
	return b.Dx(), b.Dy()
}

// Clear implements ambient.Surface.
func (s *Surface) Clear(bg ambient.Color) error {
	if s.released.Load() {
		return ambient.ErrSurfaceUnavailable
	}
	if bg.A <= 0 {
		s.canvas.Clear()
		return nil
	}
	s.canvas.Fill(bg.NRGBA())
	return nil
}

// FillCircle implements ambient.Surface.
func (s *Surface) FillCircle(x, y, radius float64, c ambient.Color) {
	if s.released.Load() {
		return
	}
	vector.DrawFilledCircle(s.canvas, float32(x), float32(y), float32(radius), c.NRGBA(), s.antialias)
}

// Resize implements ambient.Resizer by reallocating the canvas.
func (s *Surface) Resize(width, height int) error {
	if s.released.Load() {
		return ambient.ErrSurfaceUnavailable
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("ebitenhost: invalid canvas size %dx%d", width, height)
	}
	b := s.canvas.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return nil
	}
	old := s.canvas
	s.canvas = ebiten.NewImage(width, height)
	old.Deallocate()
	return nil
}

// Release deallocates the canvas. Every later drawing call reports
// ambient.ErrSurfaceUnavailable. Release is idempotent.
func (s *Surface) Release() {
	if s.released.Swap(true) {
		return
	}
	s.canvas.Deallocate()
}
