package ambient

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"strings"

	"github.com/gogpu/gg"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at surface submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default particle color.
var ColorWhite = Color{1, 1, 1, 1}

// ParseColor parses a hex color in one of the forms "#rgb", "#rgba",
// "#rrggbb" or "#rrggbbaa". The leading '#' is optional.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return Color{}, fmt.Errorf("parse color %q: unsupported length", s)
	}
	for i := 0; i < len(hex); i++ {
		c := hex[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return Color{}, fmt.Errorf("parse color %q: invalid digit %q", s, c)
		}
	}
	c := gg.Hex(hex)
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}, nil
}

// UnmarshalText implements encoding.TextUnmarshaler so colors can be given
// as hex strings in JSON configuration.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	n := c.NRGBA()
	return []byte(fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)), nil
}

// WithAlpha returns c with its alpha multiplied by a.
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(c.A * a)
	return c
}

// NRGBA converts c to a straight-alpha 8-bit color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// Range is a general-purpose min/max range.
// Used by Config for lifetimes and speeds.
type Range struct {
	Min, Max float64
}

// Random returns a float64 in [Min, Max] drawn from rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
