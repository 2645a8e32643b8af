package utils

import (
	"math"
	"testing"
)

func TestGenerateSineWaveBounds(t *testing.T) {
	t.Parallel()

	buf := GenerateSineWave(4096, 44100, 440)
	if len(buf) != 4096 {
		t.Fatalf("expected 4096 samples, got %d", len(buf))
	}
	for i, v := range buf {
		if math.Abs(v) > 0.9+1e-9 {
			t.Fatalf("sample %d out of range: %f", i, v)
		}
	}
}

func TestFindPeakBin(t *testing.T) {
	t.Parallel()

	mags := []float64{0.1, 0.2, 0.9, 0.3, 0.05}
	if got := FindPeakBin(mags, 0, len(mags)-1); got != 2 {
		t.Errorf("expected peak bin 2, got %d", got)
	}
	// Range clamping.
	if got := FindPeakBin(mags, -5, 100); got != 2 {
		t.Errorf("expected clamped peak bin 2, got %d", got)
	}
	if got := FindPeakBin(nil, 0, 10); got != 0 {
		t.Errorf("expected 0 for empty input, got %d", got)
	}
}

func TestMockTransportRecords(t *testing.T) {
	t.Parallel()

	mt := &MockTransport{}
	if err := mt.Send(map[string]float64{"pulse": 0.5}); err != nil {
		t.Fatalf("unexpected send error: %v", err)
	}
	if mt.SendCount != 1 || mt.LastData == nil {
		t.Errorf("payload not recorded: count=%d data=%v", mt.SendCount, mt.LastData)
	}
	if err := mt.Close(); err != nil || !mt.Closed {
		t.Error("expected transport to close cleanly")
	}
}
