// Package render maps per-frame audio data onto radial geometry and draws
// the composed scene: particle cloud, spectrum ring, waveform ring.
package render

// Design constants for the composition. These are fixed by the visual
// design, not configuration.
const (
	// ParticleCount is the fixed size of the particle field.
	ParticleCount = 70
	// SpectrumBars is the number of radial bars, independent of bin count.
	SpectrumBars = 128
	// WavePoints is the number of points on the closed waveform ring.
	WavePoints = 256

	// baseRadiusRatio derives the ring radius from the surface size.
	baseRadiusRatio = 0.12
	// baseRadiusEpsilon is the change in base radius (px) below which a
	// resize does not count as material and keeps the particle field.
	baseRadiusEpsilon = 1.0

	rotationBase      = 0.0009
	rotationPulseGain = 0.006
)

// SurfaceGeometry is the per-attachment surface state: dimensions, derived
// center and base radius, and the global rotation accumulator. A tick reads
// one consistent snapshot for the whole frame; resizes mutate it between
// ticks only.
type SurfaceGeometry struct {
	Width   float64
	Height  float64
	CenterX float64
	CenterY float64

	// BaseRadius anchors the waveform ring and the spectrum bars.
	// Recomputed only on resize or source change, never mid-frame.
	BaseRadius float64

	// Rotation is a monotonic accumulator driven by the pulse. It wraps
	// implicitly through the trig functions and is reset only on a full
	// pipeline restart.
	Rotation float64
}

// NewSurfaceGeometry computes geometry for a surface of w x h device pixels.
func NewSurfaceGeometry(w, h int) SurfaceGeometry {
	g := SurfaceGeometry{}
	g.Resize(w, h)
	return g
}

// Resize updates the dimensions and derived values. It reports whether the
// base radius moved by more than the material threshold, in which case the
// caller reinitializes the particle field.
func (g *SurfaceGeometry) Resize(w, h int) bool {
	g.Width = float64(w)
	g.Height = float64(h)
	g.CenterX = g.Width / 2
	g.CenterY = g.Height / 2

	old := g.BaseRadius
	g.BaseRadius = g.MinDim() * baseRadiusRatio

	delta := g.BaseRadius - old
	if delta < 0 {
		delta = -delta
	}
	return delta > baseRadiusEpsilon
}

// MinDim returns the smaller surface dimension, the scale reference for
// all reactive lengths.
func (g *SurfaceGeometry) MinDim() float64 {
	if g.Width < g.Height {
		return g.Width
	}
	return g.Height
}

// Advance accumulates rotation for one tick. Rotation only ever increases.
func (g *SurfaceGeometry) Advance(pulse float64) {
	g.Rotation += rotationBase + pulse*rotationPulseGain
}
