package ambient

import (
	"errors"
	"fmt"
)

// render clears s to bg and draws one filled circle per particle, tinted with
// c at the particle's opacity scaled by layerAlpha. It only reads buf.
//
// A panicking surface is reported as ErrSurfaceUnavailable so that a host
// teardown race cannot take the frame loop down with it.
func render(s Surface, buf []Particle, c, bg Color, layerAlpha float64) (err error) {
	if s == nil {
		return ErrSurfaceUnavailable
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSurfaceUnavailable, r)
		}
	}()

	if err := s.Clear(bg); err != nil {
		return surfaceError("clear", err)
	}
	for i := range buf {
		p := &buf[i]
		a := p.Opacity * layerAlpha
		if a <= 0 {
			continue
		}
		s.FillCircle(p.X, p.Y, p.Size, c.WithAlpha(a))
	}
	if pr, ok := s.(Presenter); ok {
		if err := pr.Present(); err != nil {
			return surfaceError("present", err)
		}
	}
	return nil
}

// clearSurface leaves s visually inert.
func clearSurface(s Surface, bg Color) (err error) {
	if s == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSurfaceUnavailable, r)
		}
	}()
	if err := s.Clear(bg); err != nil {
		return surfaceError("clear", err)
	}
	if pr, ok := s.(Presenter); ok {
		if err := pr.Present(); err != nil {
			return surfaceError("present", err)
		}
	}
	return nil
}

func surfaceError(op string, err error) error {
	if errors.Is(err, ErrSurfaceUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrSurfaceUnavailable, err)
}
