package render

import (
	"math"
	"testing"
)

func TestSpectrumRingBarCountFixed(t *testing.T) {
	t.Parallel()

	geo := NewSurfaceGeometry(960, 640)
	ring := NewSpectrumRing()

	for _, bins := range []int{0, 16, 128, 1024} {
		ring.Update(make([]float64, bins), &geo, 0)
		if got := len(ring.Bars()); got != SpectrumBars {
			t.Errorf("bins=%d: got %d bars, want %d", bins, got, SpectrumBars)
		}
	}
}

func TestSpectrumRingSilence(t *testing.T) {
	t.Parallel()

	geo := NewSurfaceGeometry(960, 640)
	ring := NewSpectrumRing()
	ring.Update(make([]float64, 1024), &geo, 0)

	for i, bar := range ring.Bars() {
		if bar.Length != 0 {
			t.Errorf("bar %d: Length = %v, want 0 for silence", i, bar.Length)
		}
		if bar.Lightness != 45 {
			t.Errorf("bar %d: Lightness = %v, want 45 for silence", i, bar.Lightness)
		}
	}
}

func TestSpectrumRingBlockAverage(t *testing.T) {
	t.Parallel()

	geo := NewSurfaceGeometry(960, 640)
	ring := NewSpectrumRing()

	// 1024 bins, 8 per bar. Fill the first block so bar 0 averages 0.5 and
	// every other bar stays silent.
	mags := make([]float64, 1024)
	for j := 0; j < 8; j++ {
		mags[j] = 0.5
	}
	ring.Update(mags, &geo, 0)

	bars := ring.Bars()
	if math.Abs(bars[0].Value-0.5) > 1e-12 {
		t.Errorf("bar 0 Value = %v, want 0.5", bars[0].Value)
	}
	minDim := geo.MinDim()
	wantLen := 0.5 * (minDim * 0.28)
	if math.Abs(bars[0].Length-wantLen) > 1e-9 {
		t.Errorf("bar 0 Length = %v, want %v", bars[0].Length, wantLen)
	}
	if bars[1].Value != 0 {
		t.Errorf("bar 1 Value = %v, want 0", bars[1].Value)
	}
}

func TestSpectrumRingFewerBinsThanBars(t *testing.T) {
	t.Parallel()

	geo := NewSurfaceGeometry(960, 640)
	ring := NewSpectrumRing()

	mags := []float64{1, 0.5}
	ring.Update(mags, &geo, 0)

	bars := ring.Bars()
	if bars[0].Value != 1 || bars[1].Value != 0.5 {
		t.Errorf("leading bars = %v, %v, want 1, 0.5", bars[0].Value, bars[1].Value)
	}
	for i := 2; i < SpectrumBars; i++ {
		if bars[i].Value != 0 {
			t.Errorf("bar %d: Value = %v, want 0 past the bin count", i, bars[i].Value)
		}
	}
}

func TestSpectrumRingPulseExtendsBars(t *testing.T) {
	t.Parallel()

	geo := NewSurfaceGeometry(960, 640)
	ring := NewSpectrumRing()

	mags := make([]float64, 512)
	for i := range mags {
		mags[i] = 1
	}

	ring.Update(mags, &geo, 0)
	quiet := ring.Bars()[0].Length
	ring.Update(mags, &geo, 1)
	loud := ring.Bars()[0].Length

	minDim := geo.MinDim()
	if math.Abs(quiet-minDim*0.28) > 1e-9 {
		t.Errorf("quiet max length = %v, want %v", quiet, minDim*0.28)
	}
	if math.Abs(loud-minDim*0.46) > 1e-9 {
		t.Errorf("loud max length = %v, want %v", loud, minDim*0.46)
	}
}

func TestSpectrumRingHueRange(t *testing.T) {
	t.Parallel()

	geo := NewSurfaceGeometry(960, 640)
	ring := NewSpectrumRing()
	ring.Update(make([]float64, 1024), &geo, 0)

	bars := ring.Bars()
	for i, bar := range bars {
		want := math.Round(float64(i) / SpectrumBars * 320)
		if bar.Hue != want {
			t.Errorf("bar %d: Hue = %v, want %v", i, bar.Hue, want)
		}
	}
	if last := bars[SpectrumBars-1].Hue; last > 320 {
		t.Errorf("last hue = %v, want <= 320", last)
	}
}

func TestSpectrumRingWidthFloor(t *testing.T) {
	t.Parallel()

	// min dimension 120 gives 0.4px before the floor kicks in.
	geo := NewSurfaceGeometry(120, 400)
	ring := NewSpectrumRing()
	ring.Update(make([]float64, 256), &geo, 0)

	if w := ring.Bars()[0].Width; w != 1.6 {
		t.Errorf("Width = %v, want floor 1.6 on a small surface", w)
	}

	geo = NewSurfaceGeometry(900, 900)
	ring.Update(make([]float64, 256), &geo, 0)
	if w := ring.Bars()[0].Width; w != 3.0 {
		t.Errorf("Width = %v, want 3.0 on a 900px surface", w)
	}
}

func TestSpectrumRingUpdateAllocs(t *testing.T) {
	geo := NewSurfaceGeometry(960, 640)
	ring := NewSpectrumRing()
	mags := make([]float64, 1024)

	allocs := testing.AllocsPerRun(100, func() {
		ring.Update(mags, &geo, 0.5)
	})
	if allocs > 0 {
		t.Errorf("Update allocated %v times per run, want 0", allocs)
	}
}
