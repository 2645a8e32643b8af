package render

import (
	"math"
	"testing"
)

func TestWaveformRingPointCount(t *testing.T) {
	t.Parallel()

	geo := NewSurfaceGeometry(960, 640)
	ring := NewWaveformRing()
	ring.Update(make([]float64, 2048), &geo, 0)

	if got := len(ring.Radii()); got != WavePoints {
		t.Errorf("got %d points, want %d", got, WavePoints)
	}
}

func TestWaveformRingFlatWindow(t *testing.T) {
	t.Parallel()

	geo := NewSurfaceGeometry(960, 640)
	ring := NewWaveformRing()

	samples := make([]float64, 2048)
	for i := range samples {
		samples[i] = 128
	}

	// A mid-scale window must sit exactly on the base radius even at full
	// pulse, because the amplitude term multiplies a zero deviation.
	for _, pulse := range []float64{0, 0.5, 1} {
		ring.Update(samples, &geo, pulse)
		for i, r := range ring.Radii() {
			if r != geo.BaseRadius {
				t.Fatalf("pulse=%v point %d: radius = %v, want exactly %v", pulse, i, r, geo.BaseRadius)
			}
		}
	}
}

func TestWaveformRingDeviation(t *testing.T) {
	t.Parallel()

	geo := NewSurfaceGeometry(960, 640)
	ring := NewWaveformRing()

	// Full-scale positive samples push every point out by the full wave
	// amplitude; full-scale negative pulls in by (128-0)/128 = 1 as well.
	const pulse = 0.25
	minDim := geo.MinDim()
	waveAmp := minDim*0.06 + pulse*minDim*0.08

	samples := make([]float64, 512)
	for i := range samples {
		samples[i] = 256
	}
	ring.Update(samples, &geo, pulse)
	for i, r := range ring.Radii() {
		if math.Abs(r-(geo.BaseRadius+waveAmp)) > 1e-9 {
			t.Fatalf("point %d: radius = %v, want %v", i, r, geo.BaseRadius+waveAmp)
		}
	}

	for i := range samples {
		samples[i] = 0
	}
	ring.Update(samples, &geo, pulse)
	for i, r := range ring.Radii() {
		if math.Abs(r-(geo.BaseRadius-waveAmp)) > 1e-9 {
			t.Fatalf("point %d: radius = %v, want %v", i, r, geo.BaseRadius-waveAmp)
		}
	}
}

func TestWaveformRingEmptyWindow(t *testing.T) {
	t.Parallel()

	geo := NewSurfaceGeometry(960, 640)
	ring := NewWaveformRing()
	ring.Update(nil, &geo, 1)

	for i, r := range ring.Radii() {
		if r != geo.BaseRadius {
			t.Errorf("point %d: radius = %v, want base radius for empty window", i, r)
		}
	}
}

func TestWaveformRingStrokeWidth(t *testing.T) {
	t.Parallel()

	ring := NewWaveformRing()
	tests := []struct {
		pulse float64
		want  float64
	}{
		{0, 2},
		{0.5, 3},
		{1, 4},
	}
	for _, tt := range tests {
		if got := ring.StrokeWidth(tt.pulse); got != tt.want {
			t.Errorf("StrokeWidth(%v) = %v, want %v", tt.pulse, got, tt.want)
		}
	}
}

func TestWaveformRingUpdateAllocs(t *testing.T) {
	geo := NewSurfaceGeometry(960, 640)
	ring := NewWaveformRing()
	samples := make([]float64, 2048)

	allocs := testing.AllocsPerRun(100, func() {
		ring.Update(samples, &geo, 0.5)
	})
	if allocs > 0 {
		t.Errorf("Update allocated %v times per run, want 0", allocs)
	}
}
