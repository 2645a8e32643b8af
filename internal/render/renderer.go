// SPDX-License-Identifier: MIT
package render

import (
	"errors"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ErrNoSurface is returned when drawing is attempted without a target.
// Rendering cannot proceed without one, so callers treat it as fatal.
var ErrNoSurface = errors.New("render: no drawing surface")

var (
	backgroundOuter = color.RGBA{R: 8, G: 10, B: 18, A: 255}
	backgroundInner = color.RGBA{R: 24, G: 28, B: 52, A: 255}
	particleTint    = color.RGBA{R: 190, G: 214, B: 255, A: 255}
	waveformTint    = color.RGBA{R: 120, G: 220, B: 255, A: 255}
	glowTint        = color.RGBA{R: 255, G: 240, B: 220, A: 255}
)

// backgroundSteps is the number of concentric fills approximating the
// radial background gradient.
const backgroundSteps = 24

// Renderer composes the scene in a fixed stage order: background,
// particles, spectrum bars, waveform ring, center glow. Every stage builds
// its own draw options, so no blend mode or transform leaks between
// stages and the order stays independent.
type Renderer struct {
	field    *ParticleField
	spectrum *SpectrumRing
	wave     *WaveformRing

	// layer is the offscreen target for the additive particle pass,
	// recreated whenever the surface size changes.
	layer *ebiten.Image
}

func NewRenderer(field *ParticleField, spectrum *SpectrumRing, wave *WaveformRing) *Renderer {
	return &Renderer{
		field:    field,
		spectrum: spectrum,
		wave:     wave,
	}
}

// Draw paints one composed frame onto screen using a consistent geometry
// snapshot taken by the caller at tick start.
func (r *Renderer) Draw(screen *ebiten.Image, geo *SurfaceGeometry, pulse float64) error {
	if screen == nil {
		return ErrNoSurface
	}

	r.drawBackground(screen, geo, pulse)
	r.drawParticles(screen, geo, pulse)
	r.drawSpectrum(screen, geo)
	r.drawWaveform(screen, geo, pulse)
	r.drawCenterGlow(screen, geo, pulse)
	return nil
}

// drawBackground approximates a radial gradient with concentric fills,
// largest first. The inner stop brightens with the pulse.
func (r *Renderer) drawBackground(screen *ebiten.Image, geo *SurfaceGeometry, pulse float64) {
	screen.Fill(backgroundOuter)

	inner := lerpRGB(backgroundInner, color.RGBA{R: 60, G: 70, B: 120, A: 255}, pulse)
	maxR := geo.MinDim() * 0.75
	for i := backgroundSteps; i >= 1; i-- {
		t := float64(i) / backgroundSteps
		c := lerpRGB(inner, backgroundOuter, t)
		vector.DrawFilledCircle(screen,
			float32(geo.CenterX), float32(geo.CenterY),
			float32(maxR*t), c, false)
	}
}

// drawParticles renders the cloud onto an offscreen layer and composites
// it additively, so overlapping particles accumulate brightness.
func (r *Renderer) drawParticles(screen *ebiten.Image, geo *SurfaceGeometry, pulse float64) {
	w, h := int(geo.Width), int(geo.Height)
	if w <= 0 || h <= 0 {
		return
	}
	if r.layer == nil || r.layer.Bounds().Dx() != w || r.layer.Bounds().Dy() != h {
		r.layer = ebiten.NewImage(w, h)
	}
	r.layer.Clear()

	for i, p := range r.field.Particles() {
		angle, size, alpha := p.Drawable(i, pulse, geo.Rotation)
		x := float32(geo.CenterX + math.Cos(angle)*p.Distance)
		y := float32(geo.CenterY + math.Sin(angle)*p.Distance)

		// Glow halo first, then the core on top. The halo widens with
		// the pulse, standing in for a blur radius.
		halo := size * (1.8 + pulse*1.4)
		vector.DrawFilledCircle(r.layer, x, y, float32(halo), withAlpha(particleTint, alpha*0.22), true)
		vector.DrawFilledCircle(r.layer, x, y, float32(size), withAlpha(particleTint, alpha), true)
	}

	op := &ebiten.DrawImageOptions{}
	op.Blend = ebiten.BlendLighter
	screen.DrawImage(r.layer, op)
}

// drawSpectrum renders the radial bars with normal blending.
func (r *Renderer) drawSpectrum(screen *ebiten.Image, geo *SurfaceGeometry) {
	for _, bar := range r.spectrum.Bars() {
		if bar.Length <= 0 {
			continue
		}
		a := bar.Angle + geo.Rotation
		cos, sin := math.Cos(a), math.Sin(a)
		x0 := float32(geo.CenterX + cos*geo.BaseRadius)
		y0 := float32(geo.CenterY + sin*geo.BaseRadius)
		x1 := float32(geo.CenterX + cos*(geo.BaseRadius+bar.Length))
		y1 := float32(geo.CenterY + sin*(geo.BaseRadius+bar.Length))

		c := hslToRGB(bar.Hue, 0.8, bar.Lightness/100)
		vector.StrokeLine(screen, x0, y0, x1, y1, float32(bar.Width), c, true)
	}
}

// drawWaveform strokes the closed ring twice: a wide translucent pass for
// glow, then the main stroke.
func (r *Renderer) drawWaveform(screen *ebiten.Image, geo *SurfaceGeometry, pulse float64) {
	radii := r.wave.Radii()
	strokeW := r.wave.StrokeWidth(pulse)

	for pass := 0; pass < 2; pass++ {
		width := float32(strokeW)
		c := waveformTint
		if pass == 0 {
			width = float32(strokeW * 3)
			c = withAlpha(waveformTint, 0.25)
		}
		for i := 0; i < len(radii); i++ {
			j := (i + 1) % len(radii)
			a0 := float64(i)/WavePoints*2*math.Pi + geo.Rotation
			a1 := float64(j)/WavePoints*2*math.Pi + geo.Rotation
			x0 := float32(geo.CenterX + math.Cos(a0)*radii[i])
			y0 := float32(geo.CenterY + math.Sin(a0)*radii[i])
			x1 := float32(geo.CenterX + math.Cos(a1)*radii[j])
			y1 := float32(geo.CenterY + math.Sin(a1)*radii[j])
			vector.StrokeLine(screen, x0, y0, x1, y1, width, c, true)
		}
	}
}

// drawCenterGlow paints the small pulsing core as layered translucent
// circles.
func (r *Renderer) drawCenterGlow(screen *ebiten.Image, geo *SurfaceGeometry, pulse float64) {
	radius := geo.BaseRadius * 0.3 * (1 + pulse)
	cx, cy := float32(geo.CenterX), float32(geo.CenterY)

	vector.DrawFilledCircle(screen, cx, cy, float32(radius*1.8), withAlpha(glowTint, 0.08+pulse*0.1), true)
	vector.DrawFilledCircle(screen, cx, cy, float32(radius), withAlpha(glowTint, 0.18+pulse*0.25), true)
	vector.DrawFilledCircle(screen, cx, cy, float32(radius*0.4), withAlpha(glowTint, 0.35+pulse*0.4), true)
}
