package ambient

import (
	"math"
	"math/rand/v2"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// circle is one FillCircle call recorded by recordingSurface.
type circle struct {
	x, y, r float64
	c       Color
}

// recordingSurface is an in-memory Surface that records the last frame.
type recordingSurface struct {
	w, h     int
	clears   int
	presents int
	circles  []circle
	resized  [][2]int

	fail    error  // returned by Clear when non-nil
	panics  bool   // Clear panics, as a torn-down host surface might
	onClear func() // called at the start of every Clear
}

func (s *recordingSurface) Size() (int, int) { return s.w, s.h }

func (s *recordingSurface) Clear(Color) error {
	if s.onClear != nil {
		s.onClear()
	}
	if s.panics {
		panic("surface torn down")
	}
	if s.fail != nil {
		return s.fail
	}
	s.clears++
	s.circles = s.circles[:0]
	return nil
}

func (s *recordingSurface) FillCircle(x, y, r float64, c Color) {
	s.circles = append(s.circles, circle{x, y, r, c})
}

func (s *recordingSurface) Present() error {
	s.presents++
	return nil
}

func (s *recordingSurface) Resize(w, h int) error {
	s.w, s.h = w, h
	s.resized = append(s.resized, [2]int{w, h})
	return nil
}

func TestOpacityFor(t *testing.T) {
	assertNear(t, "full life", opacityFor(2000, 2000, DefaultMaxOpacity), 0.7)
	assertNear(t, "half life", opacityFor(1000, 2000, DefaultMaxOpacity), 0.35)
	assertNear(t, "over max", opacityFor(3000, 2000, DefaultMaxOpacity), 0.7)
	assertNear(t, "dead", opacityFor(-10, 2000, DefaultMaxOpacity), 0)
	assertNear(t, "zero maxLife", opacityFor(10, 0, DefaultMaxOpacity), 0)
	assertNear(t, "uncapped", opacityFor(500, 1000, 1), 0.5)
}

func TestParticleAlive(t *testing.T) {
	p := Particle{Life: 1, MaxLife: 10}
	if !p.Alive() {
		t.Error("particle with life 1 should be alive")
	}
	p.Life = 0
	if p.Alive() {
		t.Error("particle with life 0 should not be alive")
	}
}

func TestRemoveAtSwapPops(t *testing.T) {
	buf := []Particle{{X: 0}, {X: 1}, {X: 2}, {X: 3}}
	buf = removeAt(buf, 1)
	if len(buf) != 3 {
		t.Fatalf("len = %d, want 3", len(buf))
	}
	if buf[1].X != 3 {
		t.Errorf("buf[1].X = %v, want 3 (last element moved into the hole)", buf[1].X)
	}

	buf = removeAt(buf, len(buf)-1)
	if len(buf) != 2 || buf[0].X != 0 || buf[1].X != 3 {
		t.Errorf("after removing last: %+v", buf)
	}
}

func TestColorWithAlpha(t *testing.T) {
	c := Color{R: 0.2, G: 0.4, B: 0.6, A: 0.5}.WithAlpha(0.5)
	assertNear(t, "A", c.A, 0.25)
	assertNear(t, "R", c.R, 0.2)

	c = ColorWhite.WithAlpha(2)
	assertNear(t, "clamped A", c.A, 1)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff8000")
	if err != nil {
		t.Fatalf("ParseColor: %v", err)
	}
	assertNear(t, "R", c.R, 1)
	assertNear(t, "G", c.G, 128.0/255)
	assertNear(t, "B", c.B, 0)
	assertNear(t, "A", c.A, 1)

	c, err = ParseColor("0f08")
	if err != nil {
		t.Fatalf("ParseColor short form: %v", err)
	}
	assertNear(t, "short G", c.G, 1)
	assertNear(t, "short A", c.A, 136.0/255)

	for _, bad := range []string{"", "#12", "#12345", "#gg0000", "red"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) should fail", bad)
		}
	}
}

func TestColorTextRoundTrip(t *testing.T) {
	var c Color
	if err := c.UnmarshalText([]byte("#10203040")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	text, err := c.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	if string(text) != "#10203040" {
		t.Errorf("MarshalText = %q, want #10203040", text)
	}
}

func TestRangeRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	r := Range{10, 20}
	for i := 0; i < 100; i++ {
		v := r.Random(rng)
		if v < 10 || v > 20 {
			t.Fatalf("Random() = %f, outside [10, 20]", v)
		}
	}

	// Equal min/max.
	r2 := Range{5, 5}
	for i := 0; i < 10; i++ {
		if r2.Random(rng) != 5 {
			t.Fatal("Random() with Min==Max should return Min")
		}
	}

	// Same seed, same sequence.
	a, b := rand.New(rand.NewPCG(7, 7)), rand.New(rand.NewPCG(7, 7))
	for i := 0; i < 10; i++ {
		if r.Random(a) != r.Random(b) {
			t.Fatal("Random() is not reproducible from a seeded source")
		}
	}
}
