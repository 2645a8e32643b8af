package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"visualizer/internal/config"
)

// writeTestWAV encodes a mono 16-bit sine and returns its path.
func writeTestWAV(t *testing.T, sampleRate, frames int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating test WAV: %v", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:   make([]int, frames),
	}
	for i := range buf.Data {
		v := math.Sin(2 * math.Pi * 440 * float64(i) / float64(sampleRate))
		buf.Data[i] = int(v * 30000)
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("writing test WAV: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("closing test WAV: %v", err)
	}
	return path
}

func TestDecodeWAVRoundTrip(t *testing.T) {
	t.Parallel()

	path := writeTestWAV(t, 44100, 4410)
	samples, rate, err := decodeFile(path)
	if err != nil {
		t.Fatalf("decodeFile: %v", err)
	}
	if rate != 44100 {
		t.Errorf("expected sample rate 44100, got %d", rate)
	}
	if len(samples) != 4410 {
		t.Errorf("expected 4410 mono frames, got %d", len(samples))
	}

	var peak float64
	for _, v := range samples {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak < 0.8 || peak > 1.0 {
		t.Errorf("expected near full-scale sine after decode, peak = %v", peak)
	}
}

// TestFileSourceProgressDuringPlayback reads Progress from one goroutine
// while the output callback advances the position from another, the same
// split as the real callback thread and the draw thread.
func TestFileSourceProgressDuringPlayback(t *testing.T) {
	t.Parallel()

	const (
		totalSamples = 1 << 16
		bufFrames    = 256
	)
	s := &FileSource{
		path:       "tone.wav",
		samples:    make([]float64, totalSamples),
		sampleRate: 44100,
		tap:        NewTap(config.TapRingSize),
		monoBuf:    make([]float64, bufFrames),
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		out := make([]float32, bufFrames)
		// One extra callback past the end sets the finished flag.
		for i := 0; i <= totalSamples/bufFrames; i++ {
			s.process(out)
		}
	}()

	var last float64
	for {
		select {
		case <-done:
			if got := s.Progress(); got != 1 {
				t.Errorf("Progress after playback = %v, want 1", got)
			}
			if !s.Finished() {
				t.Error("source not finished after consuming all samples")
			}
			return
		default:
			p := s.Progress()
			if p < last {
				t.Fatalf("progress went backwards: %v -> %v", last, p)
			}
			if p < 0 || p > 1 {
				t.Fatalf("progress out of range: %v", p)
			}
			last = p
		}
	}
}

func TestDecodeRejectsUnknownExtension(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tone.ogg")
	if err := os.WriteFile(path, []byte("not audio"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := decodeFile(path); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestDecodeRejectsGarbageWAV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.wav")
	if err := os.WriteFile(path, []byte("RIFFgarbage"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := decodeFile(path); err == nil {
		t.Error("expected error for invalid WAV data")
	}
}
