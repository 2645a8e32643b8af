// SPDX-License-Identifier: MIT
package audio

import (
	"fmt"
	"time"

	"github.com/gordonklaus/portaudio"

	"visualizer/internal/config"
	"visualizer/internal/log"
)

// defaultGateThreshold is the peak amplitude below which a captured buffer
// is considered silence and not pushed into the tap. Keeping silence out of
// the tap lets the analyzer's staleness check settle the visuals instead of
// rendering the noise floor.
const defaultGateThreshold = 0.001

// CaptureSource records from a PortAudio input device into a Tap.
type CaptureSource struct {
	cfg     *config.Config
	device  *portaudio.DeviceInfo
	latency time.Duration
	stream  *portaudio.Stream
	tap     *Tap

	gateEnabled   bool
	gateThreshold float32

	rec recorder
}

// NewCaptureSource resolves the configured input device. The stream is not
// opened until Start.
func NewCaptureSource(cfg *config.Config) (*CaptureSource, error) {
	device, err := InputDevice(cfg.DeviceID)
	if err != nil {
		return nil, err
	}

	s := &CaptureSource{
		cfg:           cfg,
		device:        device,
		tap:           NewTap(config.TapRingSize),
		gateEnabled:   true,
		gateThreshold: defaultGateThreshold,
	}
	if cfg.LowLatency {
		s.latency = device.DefaultLowInputLatency
	} else {
		s.latency = device.DefaultHighInputLatency
	}
	return s, nil
}

func (s *CaptureSource) Start() error {
	if s.stream != nil {
		return fmt.Errorf("capture already started")
	}

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   s.device,
			Channels: s.cfg.Channels,
			Latency:  s.latency,
		},
		FramesPerBuffer: s.cfg.FramesPerBuffer,
		SampleRate:      s.cfg.SampleRate,
	}

	stream, err := portaudio.OpenStream(params, s.process)
	if err != nil {
		return fmt.Errorf("failed to open input stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return fmt.Errorf("failed to start input stream: %w", err)
	}
	s.stream = stream

	log.Infof("audio: capturing from %q at %.0f Hz", s.device.Name, s.cfg.SampleRate)
	return nil
}

// Stop halts capture and closes the stream. Idempotent: the stream pointer
// doubles as the "still connected" flag.
func (s *CaptureSource) Stop() error {
	if s.stream == nil {
		return nil
	}
	if err := s.rec.stop(); err != nil {
		log.Warnf("audio: stopping recorder: %v", err)
	}
	if err := s.stream.Stop(); err != nil {
		return err
	}
	if err := s.stream.Close(); err != nil {
		return err
	}
	s.stream = nil
	return nil
}

func (s *CaptureSource) SampleRate() float64 { return s.cfg.SampleRate }
func (s *CaptureSource) Tap() *Tap           { return s.tap }

func (s *CaptureSource) Describe() string {
	return fmt.Sprintf("capture:%s", s.device.Name)
}

// process is the real-time input callback. No allocations; the only writes
// are into pre-sized buffers.
func (s *CaptureSource) process(in []float32) {
	s.rec.write(in)

	if s.gateEnabled {
		var peak float32
		for _, v := range in {
			if v < 0 {
				v = -v
			}
			if v > peak {
				peak = v
			}
		}
		if peak <= s.gateThreshold {
			return
		}
	}

	s.tap.PushInterleaved(in, s.cfg.Channels)
}

// SetGateThreshold adjusts the silence gate in [0, 1]. Zero disables it.
func (s *CaptureSource) SetGateThreshold(threshold float64) {
	if threshold < 0 {
		threshold = 0
	}
	if threshold > 1 {
		threshold = 1
	}
	s.gateThreshold = float32(threshold)
	s.gateEnabled = threshold > 0
}
