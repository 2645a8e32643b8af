// SPDX-License-Identifier: MIT

// Package pipeline owns the capture -> analysis -> render lifecycle. A
// pipeline is attached to one audio source and one surface at a time;
// attaching a new source tears the previous chain down completely before
// building the next, so stale ticks can never mix data from two sources.
package pipeline

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"visualizer/internal/analysis"
	"visualizer/internal/audio"
	applog "visualizer/internal/log"
	"visualizer/internal/render"
	"visualizer/internal/transport"
)

// State is the pipeline lifecycle phase.
type State uint8

const (
	StateIdle State = iota
	StateAttaching
	StateRunning
	StateTearingDown
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAttaching:
		return "attaching"
	case StateRunning:
		return "running"
	case StateTearingDown:
		return "tearing-down"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// ErrSourceUnavailable wraps source start failures. The pipeline stays in
// the attaching state so the caller can retry with another source.
var ErrSourceUnavailable = errors.New("pipeline: source unavailable")

// Frame is the per-tick payload published to the configured transport.
type Frame struct {
	Pulse float64   `json:"pulse"`
	RMS   float64   `json:"rms"`
	Bars  []float64 `json:"bars"`
}

// Options configures analysis for subsequent attachments.
type Options struct {
	FFTSize int    // power of two; also the analysis window length
	Window  string // window function name, e.g. "hann"
	Seed    int64  // particle layout seed; 0 means time-seeded
}

// Pipeline wires one audio source through the analyzer into the scene
// components and the renderer. All methods are safe for concurrent use;
// ticks and lifecycle calls serialize on one mutex.
type Pipeline struct {
	opts  Options
	clock Clock
	sink  transport.Transport

	mu    sync.Mutex
	state State

	source audio.Source
	// analyzer is held through the FrameSource interface; ticks only need
	// the per-frame arrays, and tests substitute a stub.
	analyzer analysis.FrameSource
	bass     *analysis.BassEnergy
	pulse    float64

	geo      render.SurfaceGeometry
	field    *render.ParticleField
	spectrum *render.SpectrumRing
	wave     *render.WaveformRing
	renderer *render.Renderer

	// Scratch buffers sized at attach, reused every tick.
	mags    []float64
	samples []float64
}

// New creates an idle pipeline. The sink may be nil, in which case frames
// are rendered but not published.
func New(clock Clock, sink transport.Transport, opts Options) *Pipeline {
	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewSource(opts.Seed))
	}
	field := render.NewParticleField(rng)
	spectrum := render.NewSpectrumRing()
	wave := render.NewWaveformRing()

	return &Pipeline{
		opts:     opts,
		clock:    clock,
		sink:     sink,
		bass:     analysis.NewBassEnergy(),
		field:    field,
		spectrum: spectrum,
		wave:     wave,
		renderer: render.NewRenderer(field, spectrum, wave),
	}
}

// Attach starts src, builds the analysis chain for a w x h surface, and
// begins ticking. If the pipeline is not idle it is torn down first. A
// source that fails to start leaves the pipeline attaching; the caller
// may retry Attach with another source.
func (p *Pipeline) Attach(src audio.Source, w, h int) error {
	p.teardown()

	p.mu.Lock()
	defer p.mu.Unlock()

	p.state = StateAttaching

	if err := src.Start(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, src.Describe(), err)
	}

	analyzer, err := analysis.NewAnalyzer(p.opts.FFTSize, src.SampleRate(), p.opts.Window, src.Tap())
	if err != nil {
		// Configuration errors are not retriable; release the source.
		if stopErr := src.Stop(); stopErr != nil {
			applog.Warnf("pipeline: stopping source after failed attach: %v", stopErr)
		}
		p.state = StateIdle
		return fmt.Errorf("pipeline: attach %s: %w", src.Describe(), err)
	}

	p.source = src
	p.analyzer = analyzer
	p.mags = make([]float64, analyzer.Bins())
	p.samples = make([]float64, analyzer.WindowSize())

	// A new attachment is a full restart: rotation, smoothing history and
	// particle layout all reset.
	p.bass.Reset()
	p.pulse = 0
	p.geo = render.NewSurfaceGeometry(w, h)
	p.field.Initialize(render.ParticleCount, p.geo.BaseRadius)

	p.state = StateRunning
	p.clock.Start(p.Tick)

	applog.Infof("pipeline: attached %s (%dx%d, fft %d)", src.Describe(), w, h, p.opts.FFTSize)
	return nil
}

// Detach tears the pipeline down to idle. Safe to call in any state, any
// number of times.
func (p *Pipeline) Detach() {
	p.teardown()
}

// teardown stops tick delivery, disconnects the analyzer, then stops the
// source, in that order. The clock stops outside the state mutex so an
// in-flight tick can observe the tearing-down state and bail instead of
// deadlocking against the stop.
func (p *Pipeline) teardown() {
	p.mu.Lock()
	if p.state == StateIdle {
		p.mu.Unlock()
		return
	}
	p.state = StateTearingDown
	p.mu.Unlock()

	p.clock.Stop()

	p.mu.Lock()
	defer p.mu.Unlock()

	p.analyzer = nil
	if p.source != nil {
		if err := p.source.Stop(); err != nil {
			applog.Warnf("pipeline: stopping source: %v", err)
		}
		p.source = nil
	}
	p.bass.Reset()
	p.pulse = 0
	p.state = StateIdle
	applog.Infof("pipeline: detached")
}

// Tick advances one frame: refresh analysis, update the pulse, advance
// the scene, publish the payload. A tick outside the running state is a
// no-op.
func (p *Pipeline) Tick() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateRunning {
		return
	}

	p.analyzer.Refresh()
	n := p.analyzer.FrequencyMagnitudes(p.mags)
	mags := p.mags[:n]
	m := p.analyzer.TimeSamples(p.samples)
	samples := p.samples[:m]

	p.pulse = p.bass.Pulse(mags)
	p.geo.Advance(p.pulse)
	p.field.Advance(p.pulse)
	p.spectrum.Update(mags, &p.geo, p.pulse)
	p.wave.Update(samples, &p.geo, p.pulse)

	if p.sink != nil {
		if err := p.sink.Send(p.frame(samples)); err != nil {
			applog.Debugf("pipeline: publish: %v", err)
		}
	}
}

// frame builds a publishable payload. Bars are copied because transports
// may serialize asynchronously while the next tick rewrites the ring.
func (p *Pipeline) frame(samples []float64) Frame {
	bars := p.spectrum.Bars()
	values := make([]float64, len(bars))
	for i, b := range bars {
		values[i] = b.Value
	}

	var sum float64
	for _, s := range samples {
		v := (s - 128) / 128
		sum += v * v
	}
	var rms float64
	if len(samples) > 0 {
		rms = math.Sqrt(sum / float64(len(samples)))
	}

	return Frame{Pulse: p.pulse, RMS: rms, Bars: values}
}

// Draw renders the current scene onto screen. Outside the running state
// nothing is drawn and no error is returned; an idle window simply stays
// on its last cleared frame.
func (p *Pipeline) Draw(screen *ebiten.Image) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateRunning {
		return nil
	}
	geo := p.geo
	return p.renderer.Draw(screen, &geo, p.pulse)
}

// Resize updates surface geometry. A material change in base radius
// rebuilds the particle layout; sub-pixel changes keep it.
func (p *Pipeline) Resize(w, h int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	material := p.geo.Resize(w, h)
	if material && p.state == StateRunning {
		p.field.Initialize(render.ParticleCount, p.geo.BaseRadius)
	}
}

// State returns the current lifecycle phase.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Pulse returns the most recent pulse value in [0, 1].
func (p *Pipeline) Pulse() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pulse
}

// Source returns the attached source, or nil when idle.
func (p *Pipeline) Source() audio.Source {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.source
}
