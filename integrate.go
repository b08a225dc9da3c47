package ambient

// integrate advances every particle by dtMs milliseconds, recomputes its
// opacity, wraps it into b and then removes dead particles in one swap-pop
// compaction pass. It returns the shortened buffer and the number removed.
// A non-positive dtMs leaves the buffer untouched.
func integrate(buf []Particle, dtMs float64, b Bounds, maxOpacity float64) ([]Particle, int) {
	if dtMs <= 0 {
		return buf, 0
	}
	dt := dtMs / 1000

	dead := 0
	for i := range buf {
		p := &buf[i]
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.Life -= dtMs
		p.Opacity = opacityFor(p.Life, p.MaxLife, maxOpacity)
		p.X, p.Y = b.Wrap(p.X, p.Y)
		if p.Life <= 0 {
			dead++
		}
	}
	if dead == 0 {
		return buf, 0
	}

	removed := 0
	i := 0
	for i < len(buf) {
		if buf[i].Life <= 0 {
			buf = removeAt(buf, i)
			removed++
			continue
		}
		i++
	}
	return buf, removed
}

// clampDelta applies the per-step delta policy: negative deltas become zero
// and spikes (e.g. after the host was backgrounded) are capped at limit.
func clampDelta(dtMs, limit float64) float64 {
	if dtMs <= 0 {
		return 0
	}
	if limit > 0 && dtMs > limit {
		return limit
	}
	return dtMs
}
