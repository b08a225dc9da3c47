// Package ggsurface provides a headless ambient.Surface backed by the gogpu/gg
// software rasterizer. It is used for snapshots, tests and any host that
// composites the particle layer itself.
package ggsurface

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
	"github.com/williamjxj/ambient"
)

// Surface draws particles into a gg.Context.
type Surface struct {
	dc     *gg.Context
	closed bool
	err    error // first fill error of the current frame
}

// New creates a surface with its own context of the given size.
func New(width, height int) *Surface {
	return &Surface{dc: gg.NewContext(width, height)}
}

// FromContext wraps an existing context. The surface takes ownership of it
// and closes it in Close.
func FromContext(dc *gg.Context) *Surface {
	return &Surface{dc: dc}
}

// Context returns the underlying gg context.
func (s *Surface) Context() *gg.Context {
	return s.dc
}

// Size implements ambient.Surface.
func (s *Surface) Size() (int, int) {
	if s.closed {
		return 0, 0
	}
	return s.dc.Width(), s.dc.Height()
}

// Clear implements ambient.Surface. A zero-alpha background clears to
// transparent.
func (s *Surface) Clear(bg ambient.Color) error {
	if s.closed {
		return ambient.ErrSurfaceUnavailable
	}
	s.err = nil
	if bg.A <= 0 {
		s.dc.Clear()
		return nil
	}
	s.dc.ClearWithColor(toRGBA(bg))
	return nil
}

// FillCircle implements ambient.Surface.
func (s *Surface) FillCircle(x, y, radius float64, c ambient.Color) {
	if s.closed {
		return
	}
	s.dc.SetRGBA(c.R, c.G, c.B, c.A)
	s.dc.DrawCircle(x, y, radius)
	if err := s.dc.Fill(); err != nil && s.err == nil {
		s.err = err
	}
}

// Present implements ambient.Presenter. It reports the first fill error of
// the frame.
func (s *Surface) Present() error {
	if s.closed {
		return ambient.ErrSurfaceUnavailable
	}
	if err := s.dc.FlushGPU(); err != nil {
		return fmt.Errorf("ggsurface: flush: %w", err)
	}
	if err := s.err; err != nil {
		s.err = nil
		return fmt.Errorf("ggsurface: fill: %w", err)
	}
	return nil
}

// Resize implements ambient.Resizer. The pixel contents are discarded.
func (s *Surface) Resize(width, height int) error {
	if s.closed {
		return ambient.ErrSurfaceUnavailable
	}
	return s.dc.Resize(width, height)
}

// Image implements ambient.Imager.
func (s *Surface) Image() image.Image {
	if s.closed {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	return s.dc.Image()
}

// Pixel returns the stored color at (x, y).
func (s *Surface) Pixel(x, y int) ambient.Color {
	if s.closed {
		return ambient.Color{}
	}
	c := s.dc.ResizeTarget().GetPixel(x, y)
	return ambient.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// SavePNG writes the surface contents to path.
func (s *Surface) SavePNG(path string) error {
	if s.closed {
		return ambient.ErrSurfaceUnavailable
	}
	return s.dc.SavePNG(path)
}

// Close releases the context. Afterwards every drawing call reports
// ambient.ErrSurfaceUnavailable. Close is idempotent.
func (s *Surface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.dc.Close()
}

func toRGBA(c ambient.Color) gg.RGBA {
	return gg.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
