package ambient

import (
	"errors"
	"image"
)

// Errors reported by the engine. Callers match them with errors.Is.
var (
	// ErrSurfaceUnavailable reports a drawable surface that cannot be
	// acquired or was lost mid-session.
	ErrSurfaceUnavailable = errors.New("ambient: surface unavailable")
	// ErrStopped is returned by Start once the engine has stopped. A fresh
	// engine is required to animate again.
	ErrStopped = errors.New("ambient: engine stopped")
	// ErrDisposed is returned by lifecycle calls after Dispose.
	ErrDisposed = errors.New("ambient: engine disposed")
	// ErrNotInitialized is returned by Start before Init.
	ErrNotInitialized = errors.New("ambient: engine not initialized")
	// ErrRunning is returned by Init while the engine is running.
	ErrRunning = errors.New("ambient: engine running")
)

// Surface is the 2D raster target the engine draws on. The engine owns it
// exclusively between Init and Stop or Dispose.
type Surface interface {
	// Size returns the surface dimensions in pixels.
	Size() (width, height int)
	// Clear erases the whole surface to bg. It returns an error wrapping
	// ErrSurfaceUnavailable if the surface is gone.
	Clear(bg Color) error
	// FillCircle draws a filled circle. Alpha is carried in c.A.
	FillCircle(x, y, radius float64, c Color)
}

// Presenter is implemented by surfaces that need an explicit flush after a
// frame has been drawn (e.g. a terminal screen).
type Presenter interface {
	Present() error
}

// Resizer is implemented by surfaces that own their backing store and can
// reallocate it when the engine is resized.
type Resizer interface {
	Resize(width, height int) error
}

// Imager is implemented by surfaces whose pixels can be read back. Snapshots
// require it.
type Imager interface {
	Image() image.Image
}
