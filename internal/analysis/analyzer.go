// SPDX-License-Identifier: MIT

// Package analysis turns raw audio samples into the per-frame arrays the
// renderer consumes: a normalized magnitude spectrum and a byte-scale
// time-domain window, plus the smoothed bass pulse derived from them.
package analysis

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"

	"visualizer/internal/audio"
	"visualizer/internal/log"
	"visualizer/pkg/bitint"
)

// spectrumScale compresses FFT amplitudes into a visually useful range.
// Magnitudes are sqrt-compressed before scaling so quiet content still
// registers; the result is clamped to [0, 1].
const spectrumScale = 2.0

// FrameSource supplies the two fixed-length arrays the pipeline reads once
// per tick. Implementations refresh on demand and treat a stale underlying
// signal as flat input, never as an error.
type FrameSource interface {
	// Refresh recomputes the arrays from the most recent audio, if any
	// arrived since the last call.
	Refresh()
	// FrequencyMagnitudes copies the normalized [0,1] spectrum into dst
	// and returns the number of bins written.
	FrequencyMagnitudes(dst []float64) int
	// TimeSamples copies the byte-scale [0,255] time-domain window into
	// dst and returns the number of samples written.
	TimeSamples(dst []float64) int
	// Bins returns the spectrum length (half the analysis window).
	Bins() int
	// WindowSize returns the time-domain window length.
	WindowSize() int
}

// Analyzer computes FFT frames from an audio.Tap. All buffers are
// allocated once; Refresh runs on the render tick and performs no
// allocations.
type Analyzer struct {
	fftSize    int
	sampleRate float64
	tap        *audio.Tap

	fft    *fourier.FFT
	window []float64

	raw     []float64    // latest time window, mono [-1, 1]
	input   []float64    // windowed copy fed to the FFT
	coeffs  []complex128 // FFT output, fftSize/2+1 values
	mags    []float64    // normalized magnitudes, fftSize/2 values
	samples []float64    // byte-scale time window, fftSize values

	lastPushed uint64
}

var _ FrameSource = (*Analyzer)(nil)

// NewAnalyzer creates an analyzer over the given tap. fftSize must be a
// power of 2; it doubles as the time-domain window length.
func NewAnalyzer(fftSize int, sampleRate float64, windowName string, tap *audio.Tap) (*Analyzer, error) {
	if !bitint.IsPowerOfTwo(fftSize) {
		return nil, fmt.Errorf("fft size must be a power of 2, got %d", fftSize)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %f", sampleRate)
	}
	if tap == nil {
		return nil, fmt.Errorf("analyzer requires a tap")
	}

	coeffs := make([]float64, fftSize)
	if err := applyWindow(coeffs, windowName); err != nil {
		return nil, err
	}

	bins := fftSize / 2
	a := &Analyzer{
		fftSize:    fftSize,
		sampleRate: sampleRate,
		tap:        tap,
		fft:        fourier.NewFFT(fftSize),
		window:     coeffs,
		raw:        make([]float64, fftSize),
		input:      make([]float64, fftSize),
		coeffs:     make([]complex128, bins+1),
		mags:       make([]float64, bins),
		samples:    make([]float64, fftSize),
	}

	// A fresh analyzer reads as silence: flat spectrum, mid-scale wave.
	for i := range a.samples {
		a.samples[i] = 128
	}

	log.Debugf("analysis: analyzer ready (window %d, %.0f Hz, %s)", fftSize, sampleRate, windowName)
	return a, nil
}

// Refresh recomputes the frame arrays from the tap. If no audio arrived
// since the previous call the arrays are left as they are, which renders
// as a settled frame rather than an error.
func (a *Analyzer) Refresh() {
	pushed := a.tap.Pushed()
	if pushed == a.lastPushed {
		return
	}
	a.lastPushed = pushed

	a.tap.Snapshot(a.raw)

	for i, v := range a.raw {
		a.input[i] = v * a.window[i]

		b := 128 + v*128
		if b < 0 {
			b = 0
		} else if b > 255 {
			b = 255
		}
		a.samples[i] = b
	}

	a.fft.Coefficients(a.coeffs, a.input)

	norm := 2.0 / float64(a.fftSize)
	for i := range a.mags {
		amp := cmplx.Abs(a.coeffs[i]) * norm
		v := math.Sqrt(amp) * spectrumScale
		if v > 1 {
			v = 1
		}
		a.mags[i] = v
	}
}

func (a *Analyzer) FrequencyMagnitudes(dst []float64) int {
	n := copy(dst, a.mags)
	return n
}

func (a *Analyzer) TimeSamples(dst []float64) int {
	n := copy(dst, a.samples)
	return n
}

func (a *Analyzer) Bins() int       { return len(a.mags) }
func (a *Analyzer) WindowSize() int { return a.fftSize }

// FrequencyForBin returns the center frequency (Hz) for a bin index.
func (a *Analyzer) FrequencyForBin(binIndex int) float64 {
	if binIndex < 0 || binIndex >= len(a.mags) {
		return 0
	}
	return float64(binIndex) * (a.sampleRate / float64(a.fftSize))
}

// applyWindow fills coeffs with the named window function's coefficients.
func applyWindow(coeffs []float64, name string) error {
	for i := range coeffs {
		coeffs[i] = 1.0
	}
	switch strings.ToLower(name) {
	case "hann", "hanning", "":
		window.Hann(coeffs)
	case "hamming":
		window.Hamming(coeffs)
	case "blackman":
		window.Blackman(coeffs)
	case "blackmannuttall":
		window.BlackmanNuttall(coeffs)
	case "nuttall":
		window.Nuttall(coeffs)
	case "lanczos":
		window.Lanczos(coeffs)
	case "bartletthann":
		window.BartlettHann(coeffs)
	default:
		return fmt.Errorf("unknown FFT window function: %q", name)
	}
	return nil
}
