package render

import (
	"math"
	"math/rand"
	"time"
)

// particleDrift is the pulse contribution to per-tick angular advance.
const particleDrift = 0.0008

// Particle is one drifting point of the cloud. Everything but BaseAngle is
// fixed at creation; drawable size and alpha are derived per frame from the
// pulse and never stored.
type Particle struct {
	BaseAngle     float64 // advances every tick
	Distance      float64 // fixed radial offset from center
	Size          float64 // base radius
	BaseAlpha     float64 // opacity floor
	RotationSpeed float64 // per-particle angular drift rate
	PulseMul      float64 // per-particle pulse sensitivity
}

// ParticleField owns a fixed-size particle collection. Particles are never
// destroyed individually; the whole collection is replaced when the source
// changes or the surface's base radius moves materially.
type ParticleField struct {
	particles []Particle
	rng       *rand.Rand
}

// NewParticleField creates an empty field. A nil rng gets a time-seeded
// source; tests pass a seeded one for reproducible layouts.
func NewParticleField(rng *rand.Rand) *ParticleField {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &ParticleField{rng: rng}
}

// Initialize replaces the collection with count fresh particles scattered
// around baseRadius.
func (f *ParticleField) Initialize(count int, baseRadius float64) {
	particles := make([]Particle, count)
	for i := range particles {
		particles[i] = Particle{
			BaseAngle:     f.rng.Float64() * 2 * math.Pi,
			Distance:      baseRadius + 20 + f.rng.Float64()*240,
			Size:          6 + f.rng.Float64()*30,
			BaseAlpha:     0.06 + f.rng.Float64()*0.22,
			RotationSpeed: (f.rng.Float64() - 0.5) * 0.002,
			PulseMul:      0.6 + f.rng.Float64()*1.4,
		}
	}
	f.particles = particles
}

// Advance moves every particle's base angle for one tick.
func (f *ParticleField) Advance(pulse float64) {
	for i := range f.particles {
		f.particles[i].BaseAngle += f.particles[i].RotationSpeed + pulse*particleDrift
	}
}

// Len returns the current collection size.
func (f *ParticleField) Len() int {
	return len(f.particles)
}

// Particles exposes the collection for drawing. Callers must not retain
// the slice across Initialize calls.
func (f *ParticleField) Particles() []Particle {
	return f.particles
}

// Drawable derives the frame values for particle index i: the draw angle
// folds in the global rotation with a small per-index spread, size swells
// with the pulse, and alpha brightens toward (but never past) 1.
func (p Particle) Drawable(i int, pulse, globalRotation float64) (angle, size, alpha float64) {
	angle = p.BaseAngle + globalRotation*(0.6+float64(i%5)*0.02)
	size = p.Size * (1 + pulse*0.9*p.PulseMul)
	alpha = p.BaseAlpha * (0.6 + pulse*1.5)
	if alpha > 1 {
		alpha = 1
	}
	return angle, size, alpha
}
