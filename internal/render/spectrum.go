package render

import "math"

// Bar is one radial spectrum bar, fully derived per frame.
type Bar struct {
	Value     float64 // averaged magnitude in [0, 1]
	Length    float64 // radial extent in px
	Angle     float64 // anchor angle before global rotation
	Width     float64
	Hue       float64 // degrees; capped below the red wraparound
	Lightness float64 // percent
}

// SpectrumRing maps a magnitude spectrum onto SpectrumBars radial bars.
// The bar count never varies with the input length: short spectra read
// single bins, missing bins read zero.
type SpectrumRing struct {
	bars [SpectrumBars]Bar
}

func NewSpectrumRing() *SpectrumRing {
	return &SpectrumRing{}
}

// Update recomputes every bar from the magnitude array for the current
// geometry and pulse.
func (r *SpectrumRing) Update(mags []float64, geo *SurfaceGeometry, pulse float64) {
	minDim := geo.MinDim()
	maxBarLen := minDim*0.28 + pulse*minDim*0.18
	width := minDim / 300
	if width < 1.6 {
		width = 1.6
	}

	step := len(mags) / SpectrumBars
	for i := range r.bars {
		var v float64
		if step > 0 {
			var sum float64
			for j := i * step; j < (i+1)*step && j < len(mags); j++ {
				sum += mags[j]
			}
			v = sum / float64(step)
		} else if i < len(mags) {
			// Fewer bins than bars: one bin per bar, the rest stay flat.
			v = mags[i]
		}

		frac := float64(i) / SpectrumBars
		r.bars[i] = Bar{
			Value:     v,
			Length:    v * maxBarLen,
			Angle:     frac * 2 * math.Pi,
			Width:     width,
			Hue:       math.Round(frac * 320),
			Lightness: 45 + v*20,
		}
	}
}

// Bars exposes the computed bars for drawing.
func (r *SpectrumRing) Bars() []Bar {
	return r.bars[:]
}
