package render

// WaveformRing maps a byte-scale time-domain window onto a closed radial
// polyline of WavePoints points around the base radius.
type WaveformRing struct {
	radii [WavePoints]float64
}

func NewWaveformRing() *WaveformRing {
	return &WaveformRing{}
}

// Update recomputes the point radii. Samples are byte scale: 128 is the
// zero line, so a flat mid-scale window puts every point exactly on the
// base radius regardless of pulse.
func (r *WaveformRing) Update(samples []float64, geo *SurfaceGeometry, pulse float64) {
	minDim := geo.MinDim()
	waveAmp := minDim*0.06 + pulse*minDim*0.08

	m := len(samples)
	for i := range r.radii {
		if m == 0 {
			r.radii[i] = geo.BaseRadius
			continue
		}
		idx := i * m / WavePoints
		val := (samples[idx] - 128) / 128
		r.radii[i] = geo.BaseRadius + val*waveAmp
	}
}

// Radii exposes the point radii; index i sits at angle i/WavePoints * 2pi
// plus the global rotation. The polyline closes from the last point back
// to the first.
func (r *WaveformRing) Radii() []float64 {
	return r.radii[:]
}

// StrokeWidth returns the ring's stroke width for the given pulse.
func (r *WaveformRing) StrokeWidth(pulse float64) float64 {
	return 2 + pulse*2
}
