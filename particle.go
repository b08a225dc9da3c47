package ambient

// DefaultMaxOpacity caps the display opacity of a particle at full life.
const DefaultMaxOpacity = 0.7

// Particle holds the simulation state of one dot. Records live in the
// engine's buffer and are only handed out as copies.
type Particle struct {
	X, Y    float64
	VX, VY  float64 // units per second
	Size    float64 // radius
	Opacity float64 // derived from Life/MaxLife every integration step
	Life    float64 // remaining lifetime in milliseconds
	MaxLife float64 // initial lifetime in milliseconds
}

// Alive reports whether the particle still has life left.
func (p *Particle) Alive() bool {
	return p.Life > 0
}

// opacityFor maps remaining life to display opacity.
func opacityFor(life, maxLife, maxOpacity float64) float64 {
	if maxLife <= 0 {
		return 0
	}
	return clamp01(life/maxLife) * maxOpacity
}

// removeAt swap-pops index i out of the buffer. Order is not preserved.
func removeAt(buf []Particle, i int) []Particle {
	last := len(buf) - 1
	buf[i] = buf[last]
	return buf[:last]
}
