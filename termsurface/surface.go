// Package termsurface provides an ambient.Surface that draws particles as
// glyphs on a tcell terminal screen.
//
// The surface exposes a virtual pixel grid: every terminal cell covers
// CellWidth x CellHeight surface pixels, so particle sizes and speeds keep
// roughly the same proportions as on a raster surface.
package termsurface

import (
	"math"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/williamjxj/ambient"
)

// Default virtual cell size in surface pixels.
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// Glyphs used for increasing particle opacity.
var glyphs = [...]rune{'·', '•', '●'}

// Surface draws onto a tcell.Screen.
type Surface struct {
	screen tcell.Screen

	CellWidth, CellHeight int

	bg    ambient.Color
	alpha []float64 // strongest alpha drawn into each cell this frame
	cols  int
	rows  int

	released atomic.Bool
}

// New wraps an initialized screen. The caller keeps responsibility for
// screen.Init and screen.Fini.
func New(screen tcell.Screen) *Surface {
	s := &Surface{
		screen:     screen,
		CellWidth:  DefaultCellWidth,
		CellHeight: DefaultCellHeight,
	}
	s.syncSize()
	return s
}

// Release marks the screen as gone (e.g. after Fini). Every later Clear
// reports ambient.ErrSurfaceUnavailable. Safe to call from any goroutine.
func (s *Surface) Release() {
	s.released.Store(true)
}

func (s *Surface) syncSize() {
	cols, rows := s.screen.Size()
	if cols != s.cols || rows != s.rows || len(s.alpha) != cols*rows {
		s.cols, s.rows = cols, rows
		s.alpha = make([]float64, max(cols*rows, 0))
	}
}

// Size implements ambient.Surface in virtual pixels.
func (s *Surface) Size() (int, int) {
	if s.released.Load() {
		return 0, 0
	}
	cols, rows := s.screen.Size()
	return cols * s.CellWidth, rows * s.CellHeight
}

// Clear implements ambient.Surface.
func (s *Surface) Clear(bg ambient.Color) error {
	if s.released.Load() {
		return ambient.ErrSurfaceUnavailable
	}
	s.syncSize()
	s.bg = bg
	clear(s.alpha)
	s.screen.Fill(' ', s.backgroundStyle())
	return nil
}

// FillCircle implements ambient.Surface. Every cell whose center lies inside
// the circle gets a glyph; a particle smaller than a cell still marks the
// cell it falls in.
func (s *Surface) FillCircle(x, y, radius float64, c ambient.Color) {
	if s.released.Load() || s.cols == 0 || s.rows == 0 {
		return
	}
	cw, ch := float64(s.CellWidth), float64(s.CellHeight)

	cx := int(math.Floor(x / cw))
	cy := int(math.Floor(y / ch))
	s.plot(cx, cy, c)

	x0 := int(math.Floor((x - radius) / cw))
	x1 := int(math.Floor((x + radius) / cw))
	y0 := int(math.Floor((y - radius) / ch))
	y1 := int(math.Floor((y + radius) / ch))
	r2 := radius * radius
	for row := y0; row <= y1; row++ {
		for col := x0; col <= x1; col++ {
			if col == cx && row == cy {
				continue
			}
			dx := (float64(col)+0.5)*cw - x
			dy := (float64(row)+0.5)*ch - y
			if dx*dx+dy*dy <= r2 {
				s.plot(col, row, c)
			}
		}
	}
}

func (s *Surface) plot(col, row int, c ambient.Color) {
	if col < 0 || col >= s.cols || row < 0 || row >= s.rows {
		return
	}
	i := row*s.cols + col
	if c.A <= s.alpha[i] {
		return
	}
	s.alpha[i] = c.A

	style := s.backgroundStyle().Foreground(blend(s.bg, c))
	s.screen.SetContent(col, row, glyphFor(c.A), nil, style)
}

// Present implements ambient.Presenter.
func (s *Surface) Present() error {
	if s.released.Load() {
		return ambient.ErrSurfaceUnavailable
	}
	s.screen.Show()
	return nil
}

// Resize implements ambient.Resizer. Terminal dimensions are owned by the
// terminal; only the per-cell buffers are reallocated.
func (s *Surface) Resize(int, int) error {
	if s.released.Load() {
		return ambient.ErrSurfaceUnavailable
	}
	s.syncSize()
	return nil
}

func (s *Surface) backgroundStyle() tcell.Style {
	if s.bg.A <= 0 {
		return tcell.StyleDefault
	}
	return tcell.StyleDefault.Background(toColor(s.bg))
}

// glyphFor picks a denser glyph for a more opaque particle.
func glyphFor(a float64) rune {
	i := int(a * float64(len(glyphs)) / ambient.DefaultMaxOpacity)
	return glyphs[min(max(i, 0), len(glyphs)-1)]
}

// blend composites c over bg at c's alpha. A transparent background blends
// toward black.
func blend(bg, c ambient.Color) tcell.Color {
	a := c.A
	mix := func(b, f float64) float64 { return b + (f-b)*a }
	return toColor(ambient.Color{
		R: mix(bg.R*bg.A, c.R),
		G: mix(bg.G*bg.A, c.G),
		B: mix(bg.B*bg.A, c.B),
		A: 1,
	})
}

func toColor(c ambient.Color) tcell.Color {
	n := c.NRGBA()
	return tcell.NewRGBColor(int32(n.R), int32(n.G), int32(n.B))
}
