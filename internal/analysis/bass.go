package analysis

// Bass extraction constants. The pulse drives most reactive visual
// parameters, so these are design constants rather than configuration.
const (
	// smoothingAlpha is the exponential smoothing factor per tick.
	smoothingAlpha = 0.08
	// pulseGain scales the smoothed bass before clamping to [0, 1].
	pulseGain = 1.6
	// bassBinFraction selects the share of low bins that count as bass.
	bassBinFraction = 0.06
	// minBassBins is the floor on that selection for short spectra.
	minBassBins = 4
)

// BassEnergy reduces a magnitude spectrum to a single smoothed pulse value
// per frame. State persists for the lifetime of one source attachment and
// is reset when the source is replaced.
type BassEnergy struct {
	smoothed float64
}

func NewBassEnergy() *BassEnergy {
	return &BassEnergy{}
}

// Pulse folds the lowest bins of mags into the smoothing state and returns
// the clamped pulse. An empty or all-zero spectrum decays toward zero;
// there is no error path.
func (b *BassEnergy) Pulse(mags []float64) float64 {
	var raw float64
	if n := len(mags); n > 0 {
		count := int(float64(n) * bassBinFraction)
		if count < minBassBins {
			count = minBassBins
		}
		if count > n {
			count = n
		}
		var sum float64
		for _, v := range mags[:count] {
			sum += v
		}
		raw = sum / float64(count)
	}

	b.smoothed = b.smoothed*(1-smoothingAlpha) + raw*smoothingAlpha

	pulse := b.smoothed * pulseGain
	if pulse < 0 {
		pulse = 0
	}
	if pulse > 1 {
		pulse = 1
	}
	return pulse
}

// Smoothed exposes the raw smoothing state, mainly for tests.
func (b *BassEnergy) Smoothed() float64 {
	return b.smoothed
}

// Reset clears the smoothing state. Called when the audio source changes
// so a new attachment starts from silence.
func (b *BassEnergy) Reset() {
	b.smoothed = 0
}
