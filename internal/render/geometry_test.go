package render

import (
	"math"
	"testing"
)

func TestNewSurfaceGeometry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		w, h       int
		wantCX     float64
		wantCY     float64
		wantRadius float64
	}{
		{"landscape", 960, 640, 480, 320, 640 * 0.12},
		{"portrait", 640, 960, 320, 480, 640 * 0.12},
		{"square", 800, 800, 400, 400, 800 * 0.12},
		{"tiny", 10, 10, 5, 5, 1.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := NewSurfaceGeometry(tt.w, tt.h)
			if g.CenterX != tt.wantCX || g.CenterY != tt.wantCY {
				t.Errorf("center = (%v, %v), want (%v, %v)", g.CenterX, g.CenterY, tt.wantCX, tt.wantCY)
			}
			if math.Abs(g.BaseRadius-tt.wantRadius) > 1e-9 {
				t.Errorf("BaseRadius = %v, want %v", g.BaseRadius, tt.wantRadius)
			}
			if g.Rotation != 0 {
				t.Errorf("fresh geometry Rotation = %v, want 0", g.Rotation)
			}
		})
	}
}

func TestSurfaceGeometryResizeMaterial(t *testing.T) {
	t.Parallel()

	g := NewSurfaceGeometry(960, 640)

	// A resize that moves the base radius by well over a pixel is material.
	if !g.Resize(960, 900) {
		t.Error("large resize not reported as material")
	}

	// One extra pixel on the minimum dimension moves the radius by 0.12px,
	// below the material threshold.
	if g.Resize(960, 901) {
		t.Error("sub-threshold resize reported as material")
	}

	// Same dimensions again: no change at all.
	if g.Resize(960, 901) {
		t.Error("no-op resize reported as material")
	}
}

func TestSurfaceGeometryResizeKeepsRotation(t *testing.T) {
	t.Parallel()

	g := NewSurfaceGeometry(960, 640)
	for i := 0; i < 100; i++ {
		g.Advance(0.5)
	}
	before := g.Rotation

	g.Resize(400, 300)
	if g.Rotation != before {
		t.Errorf("Rotation changed across resize: %v -> %v", before, g.Rotation)
	}
}

func TestSurfaceGeometryAdvanceMonotonic(t *testing.T) {
	t.Parallel()

	g := NewSurfaceGeometry(960, 640)
	prev := g.Rotation
	pulses := []float64{0, 0.1, 0, 1, 0.3, 0, 0}
	for _, p := range pulses {
		g.Advance(p)
		if g.Rotation <= prev {
			t.Fatalf("rotation did not increase at pulse %v: %v -> %v", p, prev, g.Rotation)
		}
		prev = g.Rotation
	}

	// Zero pulse still advances by the base rate.
	g2 := NewSurfaceGeometry(960, 640)
	g2.Advance(0)
	if math.Abs(g2.Rotation-0.0009) > 1e-12 {
		t.Errorf("zero-pulse advance = %v, want 0.0009", g2.Rotation)
	}
}

func TestSurfaceGeometryMinDim(t *testing.T) {
	t.Parallel()

	g := NewSurfaceGeometry(300, 700)
	if got := g.MinDim(); got != 300 {
		t.Errorf("MinDim() = %v, want 300", got)
	}
	g.Resize(700, 300)
	if got := g.MinDim(); got != 300 {
		t.Errorf("MinDim() after resize = %v, want 300", got)
	}
}
